// Package status serves the monitor's read-only HTTP status API.
//
// This package is internal to turkgate. The server exposes the latest
// cycle summary and per-worker records as JSON for operators and process
// supervisors; it never mutates monitor state. It is only started when a
// status port is configured.
package status
