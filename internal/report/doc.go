// Package report provides in-memory storage for monitoring cycle results.
//
// This package is internal to turkgate. It holds the most recent cycle
// summary and a per-worker record map, both rebuilt from each cycle's
// observations. The store backs the HTTP status server; it is not a ledger
// and is discarded with the process.
package report
