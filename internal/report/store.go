package report

import (
	"sort"
	"sync"
	"time"
)

// CycleSummary is the stored outcome of one monitoring cycle, shaped for
// JSON serialization by the status API.
type CycleSummary struct {
	// CycleID is the correlation ID the cycle logged under.
	CycleID string `json:"cycle_id"`

	// StartedAt is when the cycle began.
	StartedAt time.Time `json:"started_at"`

	// DurationMs is how long the cycle took, in milliseconds.
	DurationMs int64 `json:"duration_ms"`

	// BatchID is the monitored batch.
	BatchID string `json:"batch_id"`

	// Assignments is the number of completed assignments observed.
	Assignments int `json:"assignments"`

	// Workers is the number of distinct workers with completed assignments.
	Workers int `json:"workers"`

	// Disqualified lists workers disqualified during this cycle.
	Disqualified []string `json:"disqualified"`

	// AlreadyDisqualified is the number of workers that held the
	// qualification before the cycle ran.
	AlreadyDisqualified int `json:"already_disqualified"`

	// DryRun reports whether grants were suppressed.
	DryRun bool `json:"dry_run"`
}

// WorkerRecord is the stored per-worker view from the latest cycle.
type WorkerRecord struct {
	// WorkerID identifies the worker.
	WorkerID string `json:"worker_id"`

	// Completed is the worker's completed-assignment tally.
	Completed int `json:"completed"`

	// Disqualified reports whether the worker holds (or was just granted)
	// the disqualifying qualification.
	Disqualified bool `json:"disqualified"`

	// UpdatedAt is when the record was last rebuilt.
	UpdatedAt time.Time `json:"updated_at"`
}

// MemoryStore is a thread-safe in-memory store of the latest cycle results.
//
// Each Update replaces the previous cycle wholesale; the store carries no
// history. Accessors return snapshots, so callers can never observe a
// cycle mid-write.
type MemoryStore struct {
	mu      sync.RWMutex
	latest  *CycleSummary
	workers map[string]WorkerRecord
}

// NewMemoryStore creates an empty [MemoryStore], immediately ready for use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		workers: make(map[string]WorkerRecord),
	}
}

// Update replaces the stored cycle summary and worker records.
func (m *MemoryStore) Update(summary CycleSummary, workers []WorkerRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.latest = &summary
	m.workers = make(map[string]WorkerRecord, len(workers))
	for _, w := range workers {
		m.workers[w.WorkerID] = w
	}
}

// Latest returns the most recent cycle summary.
// The second return value is false if no cycle has completed yet.
func (m *MemoryStore) Latest() (CycleSummary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.latest == nil {
		return CycleSummary{}, false
	}
	return *m.latest, true
}

// Workers returns a snapshot of all worker records, sorted by worker ID.
// The returned slice is a copy; modifications do not affect the store.
func (m *MemoryStore) Workers() []WorkerRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]WorkerRecord, 0, len(m.workers))
	for _, w := range m.workers {
		records = append(records, w)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].WorkerID < records[j].WorkerID
	})
	return records
}
