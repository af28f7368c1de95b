package turkgate

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// monitorConfig holds mutable state during Monitor construction.
type monitorConfig struct {
	platform            Platform
	batchID             string
	qualificationTypeID string
	maxAssignments      int
	pollInterval        time.Duration
	dryRun              bool
	statusPort          int
	logger              *slog.Logger
	callbacks           []func(Disqualification)
}

// Option is a function that configures a [Monitor] during construction.
//
// Option implements the functional options pattern. Options return an
// error if validation fails; [New] stops at the first failing option.
type Option func(*monitorConfig) error

// WithPlatform sets the platform client the monitor polls and acts
// through. Required.
func WithPlatform(p Platform) Option {
	return func(cfg *monitorConfig) error {
		if p == nil {
			return errors.New("platform cannot be nil")
		}
		cfg.platform = p
		return nil
	}
}

// WithBatchID sets the batch of HITs to monitor. Required.
func WithBatchID(id string) Option {
	return func(cfg *monitorConfig) error {
		if id == "" {
			return errors.New("batch id cannot be empty")
		}
		cfg.batchID = id
		return nil
	}
}

// WithQualificationTypeID sets the qualification granted to workers who
// exceed the cap. The qualification must already exist on the platform and
// the batch's HITs must be published with a requirement that excludes
// holders. Required.
func WithQualificationTypeID(id string) Option {
	return func(cfg *monitorConfig) error {
		if id == "" {
			return errors.New("qualification type id cannot be empty")
		}
		cfg.qualificationTypeID = id
		return nil
	}
}

// WithMaxAssignments sets the completion cap. A worker is disqualified only
// when their completed-assignment tally strictly exceeds n; a worker at
// exactly n keeps access. Required, must be positive.
func WithMaxAssignments(n int) Option {
	return func(cfg *monitorConfig) error {
		if n <= 0 {
			return errors.New("max assignments must be positive")
		}
		cfg.maxAssignments = n
		return nil
	}
}

// WithPollInterval sets the sleep between monitoring cycles.
// Defaults to 2 minutes if not specified.
//
// Returns an error if the duration is zero or negative.
func WithPollInterval(d time.Duration) Option {
	return func(cfg *monitorConfig) error {
		if d <= 0 {
			return errors.New("poll interval must be positive")
		}
		cfg.pollInterval = d
		return nil
	}
}

// WithDryRun makes the monitor tally and report without issuing any
// qualification grants. Useful for auditing a batch before enforcing.
func WithDryRun(dryRun bool) Option {
	return func(cfg *monitorConfig) error {
		cfg.dryRun = dryRun
		return nil
	}
}

// WithStatusPort enables the HTTP status server on the given port.
//
// The server exposes the latest cycle report and per-worker records as
// JSON (GET /api/status, GET /api/workers). Disabled when not set.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithStatusPort(port int) Option {
	return func(cfg *monitorConfig) error {
		if port < 1 || port > 65535 {
			return fmt.Errorf("status port must be between 1 and 65535, got %d", port)
		}
		cfg.statusPort = port
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the monitor.
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *monitorConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithOnDisqualify registers a function called after each disqualification
// (or, in dry-run mode, each would-be disqualification).
//
// Multiple callbacks may be registered; they execute in registration order,
// synchronously within the cycle. Panics inside callbacks are recovered and
// logged with a correlation ID; they do not abort the cycle.
//
// Nil callbacks are silently ignored.
func WithOnDisqualify(cb func(Disqualification)) Option {
	return func(cfg *monitorConfig) error {
		if cb == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.callbacks = append(cfg.callbacks, cb)
		return nil
	}
}
