package turkgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/turkgate/turkgate/internal/report"
	"github.com/turkgate/turkgate/internal/status"
)

const defaultPollInterval = 2 * time.Minute

// Monitor enforces the per-worker completion cap on a batch of HITs.
//
// Monitor polls the platform on a fixed interval: each cycle lists the
// batch's completed assignments, tallies them per worker, and grants the
// disqualifying qualification to every worker strictly over the cap who
// does not already hold it. It is created with [New] and driven by
// [Monitor.Start].
//
// The typical lifecycle is:
//
//	mon, err := turkgate.New(
//	    turkgate.WithPlatform(client),
//	    turkgate.WithBatchID("3954555"),
//	    turkgate.WithQualificationTypeID("3XB6FJ8KPXAMPLE"),
//	    turkgate.WithMaxAssignments(10),
//	)
//	if err != nil {
//	    slog.Error("failed to create monitor", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	if err := mon.Start(ctx); err != nil {
//	    os.Exit(1)
//	}
type Monitor struct {
	platform            Platform
	batchID             string
	qualificationTypeID string
	maxAssignments      int
	pollInterval        time.Duration
	dryRun              bool
	statusPort          int
	logger              *slog.Logger
	callbacks           []func(Disqualification)
	store               *report.MemoryStore
}

// Disqualification describes one qualification grant issued (or, in
// dry-run mode, withheld) by a cycle. It is the payload delivered to
// [WithOnDisqualify] callbacks.
type Disqualification struct {
	// WorkerID is the disqualified worker.
	WorkerID string

	// Completed is the tally that pushed the worker over the cap.
	Completed int

	// CycleID correlates the disqualification with the cycle's log records.
	CycleID string

	// DryRun reports whether the grant was actually issued.
	DryRun bool
}

// CycleReport is the outcome of a single monitoring cycle.
type CycleReport struct {
	// ID is the cycle's correlation ID, present on all its log records.
	ID string

	// StartedAt is when the cycle began.
	StartedAt time.Time

	// Duration is how long the cycle took, including platform calls.
	Duration time.Duration

	// Tally maps worker ID to completed-assignment count for this cycle.
	Tally map[string]int

	// Disqualified lists the workers disqualified this cycle, sorted.
	Disqualified []string

	// AlreadyDisqualified lists workers that held the qualification before
	// the cycle ran, as reported by the platform.
	AlreadyDisqualified []string

	// DryRun reports whether qualification grants were suppressed.
	DryRun bool
}

// New creates a [Monitor] with the given options.
//
// [WithPlatform], [WithBatchID], [WithQualificationTypeID], and
// [WithMaxAssignments] are required. The poll interval defaults to
// 2 minutes and the logger to [slog.Default].
func New(opts ...Option) (*Monitor, error) {
	cfg := &monitorConfig{
		pollInterval: defaultPollInterval,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.platform == nil {
		return nil, errors.New("a platform client is required")
	}
	if cfg.batchID == "" {
		return nil, errors.New("a batch id is required")
	}
	if cfg.qualificationTypeID == "" {
		return nil, errors.New("a qualification type id is required")
	}
	if cfg.maxAssignments == 0 {
		return nil, errors.New("a max assignments threshold is required")
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Monitor{
		platform:            cfg.platform,
		batchID:             cfg.batchID,
		qualificationTypeID: cfg.qualificationTypeID,
		maxAssignments:      cfg.maxAssignments,
		pollInterval:        cfg.pollInterval,
		dryRun:              cfg.dryRun,
		statusPort:          cfg.statusPort,
		logger:              logger,
		callbacks:           cfg.callbacks,
		store:               report.NewMemoryStore(),
	}, nil
}

// Start runs the monitoring loop until the context is cancelled or a
// platform call fails.
//
// Start blocks. It logs the workers already holding the disqualifying
// qualification, runs one cycle immediately, then one per poll interval.
// If a status port is configured, the HTTP status server is started first
// and shut down when Start returns.
//
// Returns nil on context cancellation. Any platform error aborts the loop
// and is returned; there is no retry or backoff. Restarting after a
// failure is safe since each cycle re-derives its state from the platform.
func (m *Monitor) Start(ctx context.Context) error {
	m.logger.Info("monitor starting",
		"batch_id", m.batchID,
		"max_assignments", m.maxAssignments,
		"poll_interval", m.pollInterval.String(),
		"dry_run", m.dryRun,
	)

	if ctx.Err() != nil {
		return nil
	}

	// the status server must not outlive the loop: cancel its context when
	// Start returns, not just when the caller's context does
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if m.statusPort > 0 {
		srv := status.NewServer(m.store, m.statusPort, m.logger)
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("failed to start status server: %w", err)
		}
		m.logger.Info("status server listening", "port", m.statusPort)
	}

	initial, err := m.platform.ListDisqualified(ctx, m.qualificationTypeID)
	if err != nil {
		return fmt.Errorf("failed to fetch initial blacklist: %w", err)
	}
	if len(initial) > 0 {
		m.logger.Info("initial blacklist", "workers", len(initial))
		for _, workerID := range initial {
			m.logger.Info("worker already disqualified", "worker_id", workerID)
		}
	}

	if err := m.cycleOrShutdown(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped")
			return nil
		case <-ticker.C:
			if err := m.cycleOrShutdown(ctx); err != nil {
				return err
			}
		}
	}
}

// cycleOrShutdown runs one cycle, treating context cancellation mid-cycle
// as a clean shutdown rather than a failure.
func (m *Monitor) cycleOrShutdown(ctx context.Context) error {
	if _, err := m.RunCycle(ctx); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			m.logger.Info("monitor stopped")
			return nil
		}
		return err
	}
	return nil
}

// RunCycle performs one fetch-tally-act cycle and returns its report.
//
// The cycle re-queries the platform for workers already holding the
// qualification and skips them, so repeated cycles over unchanged data
// issue at most one grant per offending worker until the platform's own
// listing reflects the grant. Exactly one grant is issued per offending
// worker per cycle, never one per excess assignment.
//
// The first platform error aborts the cycle; a failed fetch means no
// tally is computed and no grants are attempted.
func (m *Monitor) RunCycle(ctx context.Context) (CycleReport, error) {
	cycleID := uuid.NewString()
	started := time.Now()
	logger := m.logger.With("cycle_id", cycleID)

	disqualified, err := m.platform.ListDisqualified(ctx, m.qualificationTypeID)
	if err != nil {
		return CycleReport{}, fmt.Errorf("failed to list disqualified workers: %w", err)
	}
	holders := make(map[string]bool, len(disqualified))
	for _, workerID := range disqualified {
		holders[workerID] = true
	}

	assignments, err := m.platform.ListBatchAssignments(ctx, m.batchID)
	if err != nil {
		return CycleReport{}, fmt.Errorf("failed to list batch assignments: %w", err)
	}
	if len(assignments) == 0 {
		logger.Warn("no completed assignments found for batch", "batch_id", m.batchID)
	}

	tally := TallyCompleted(assignments)

	var acted []string
	for _, workerID := range OverLimit(tally, m.maxAssignments, holders) {
		if !m.dryRun {
			if err := m.platform.Disqualify(ctx, workerID, m.qualificationTypeID); err != nil {
				return CycleReport{}, fmt.Errorf("failed to disqualify worker %q: %w", workerID, err)
			}
		}
		acted = append(acted, workerID)
		logger.Info("worker disqualified",
			"worker_id", workerID,
			"completed", tally[workerID],
			"max_assignments", m.maxAssignments,
			"dry_run", m.dryRun,
		)

		d := Disqualification{
			WorkerID:  workerID,
			Completed: tally[workerID],
			CycleID:   cycleID,
			DryRun:    m.dryRun,
		}
		for _, cb := range m.callbacks {
			m.invokeCallbackSafe(cb, d)
		}
	}

	rep := CycleReport{
		ID:                  cycleID,
		StartedAt:           started,
		Duration:            time.Since(started),
		Tally:               tally,
		Disqualified:        acted,
		AlreadyDisqualified: disqualified,
		DryRun:              m.dryRun,
	}
	m.storeReport(rep, holders, len(assignments))

	logger.Debug("cycle complete",
		"workers", len(tally),
		"assignments", len(assignments),
		"disqualified", len(acted),
		"duration_ms", rep.Duration.Milliseconds(),
	)
	return rep, nil
}

// storeReport rebuilds the report store from this cycle's observations.
func (m *Monitor) storeReport(rep CycleReport, holders map[string]bool, assignments int) {
	now := time.Now()

	acted := make(map[string]bool, len(rep.Disqualified))
	for _, workerID := range rep.Disqualified {
		acted[workerID] = true
	}

	records := make([]report.WorkerRecord, 0, len(rep.Tally))
	for workerID, count := range rep.Tally {
		records = append(records, report.WorkerRecord{
			WorkerID:     workerID,
			Completed:    count,
			Disqualified: holders[workerID] || (acted[workerID] && !rep.DryRun),
			UpdatedAt:    now,
		})
	}

	m.store.Update(report.CycleSummary{
		CycleID:             rep.ID,
		StartedAt:           rep.StartedAt,
		DurationMs:          rep.Duration.Milliseconds(),
		BatchID:             m.batchID,
		Assignments:         assignments,
		Workers:             len(rep.Tally),
		Disqualified:        rep.Disqualified,
		AlreadyDisqualified: len(rep.AlreadyDisqualified),
		DryRun:              rep.DryRun,
	}, records)
}

// invokeCallbackSafe calls a disqualification callback with panic recovery.
// Panics are logged with a correlation ID but do not propagate.
func (m *Monitor) invokeCallbackSafe(cb func(Disqualification), d Disqualification) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			m.logger.Error("disqualification callback panicked",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"worker_id", d.WorkerID,
				"cycle_id", d.CycleID,
				"stack", string(debug.Stack()),
			)
		}
	}()
	cb(d)
}

// BatchID returns the batch the monitor watches.
func (m *Monitor) BatchID() string {
	return m.batchID
}

// MaxAssignments returns the configured completion cap.
func (m *Monitor) MaxAssignments() int {
	return m.maxAssignments
}

// PollInterval returns the configured sleep between cycles.
func (m *Monitor) PollInterval() time.Duration {
	return m.pollInterval
}
