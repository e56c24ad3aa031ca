// Package store persists an audit log of SIFU evaluations.
//
// Reliability figures feed SIL classification decisions, so every
// aggregation run can be recorded: run identifier, timestamp, SIFU name,
// effective demand mode, both totals, the classified band and whether a
// degraded approximation was involved. The log is append-only; the engine
// itself never reads it back during computation.
//
// Storage is a single SQLite database in WAL mode with one writer
// connection, created on first open.
package store
