package status

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/turkgate/turkgate/internal/report"
)

func newTestServer(store *report.MemoryStore) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(store, 0, logger).routes()
}

func TestHandleHealthz(t *testing.T) {
	handler := newTestServer(report.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestHandleStatus_NoCyclesYet(t *testing.T) {
	handler := newTestServer(report.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleStatus_ReturnsLatestSummary(t *testing.T) {
	store := report.NewMemoryStore()
	store.Update(report.CycleSummary{
		CycleID:      "c1",
		BatchID:      "3954555",
		Workers:      3,
		Assignments:  25,
		Disqualified: []string{"A"},
	}, nil)

	handler := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var summary report.CycleSummary
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if summary.CycleID != "c1" {
		t.Errorf("CycleID = %q, want %q", summary.CycleID, "c1")
	}
	if summary.BatchID != "3954555" {
		t.Errorf("BatchID = %q, want %q", summary.BatchID, "3954555")
	}
	if len(summary.Disqualified) != 1 || summary.Disqualified[0] != "A" {
		t.Errorf("Disqualified = %v, want [A]", summary.Disqualified)
	}
}

func TestHandleWorkers(t *testing.T) {
	store := report.NewMemoryStore()
	store.Update(report.CycleSummary{CycleID: "c1"}, []report.WorkerRecord{
		{WorkerID: "B", Completed: 3},
		{WorkerID: "A", Completed: 12, Disqualified: true},
	})

	handler := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/api/workers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var workers []report.WorkerRecord
	if err := json.NewDecoder(rec.Body).Decode(&workers); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(workers) != 2 {
		t.Fatalf("len(workers) = %d, want 2", len(workers))
	}
	// sorted by worker ID
	if workers[0].WorkerID != "A" || workers[1].WorkerID != "B" {
		t.Errorf("order = [%s %s], want [A B]", workers[0].WorkerID, workers[1].WorkerID)
	}
	if !workers[0].Disqualified {
		t.Error("workers[0].Disqualified = false, want true")
	}
}

func TestRoutes_UnknownPath(t *testing.T) {
	handler := newTestServer(report.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
