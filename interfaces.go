// interfaces.go: public interfaces for intset
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package intset

// IntSet is the contract shared by every variant (A, B, C, D). All methods
// must be safe for concurrent use by callers from the fixed pool of thread
// ids the set was constructed with.
type IntSet interface {
	// InsertIfAbsent inserts key if it is not already present. Returns true
	// iff the key was newly inserted.
	InsertIfAbsent(tid int, key int32) bool

	// Erase removes key if present. Returns true iff the key was present and
	// removed.
	Erase(tid int, key int32) bool

	// SumOfKeys returns the sum of all present keys at some
	// quiescent-respecting instant. Only linearizable when the caller is the
	// sole active thread.
	SumOfKeys() int64

	// Stats returns a snapshot of set statistics.
	Stats() SetStats

	// Close releases any resources held by the set. Fixed-capacity variants
	// implement this as a no-op to satisfy the interface uniformly.
	Close() error
}

// SetStats provides a snapshot of set statistics.
type SetStats struct {
	// ApproxSize is, for variant D, the striped count of successful inserts
	// (migrated keys included) into the current table version; erases are
	// not subtracted from it (see TombstoneSize). For A/B/C it is the number
	// of present keys, counted by a full scan.
	ApproxSize int64

	// TombstoneSize is the striped-counter estimate of tombstones written
	// into the current table version. Always 0 for variants A/B/C, which
	// do not track it.
	TombstoneSize int64

	// Capacity is the current table capacity.
	Capacity int

	// ExpansionCount is the number of table versions published by
	// expansion; it is incremented at publication, before migration into
	// the new version finishes. Always 0 for fixed-capacity variants.
	ExpansionCount int64

	// Generation identifies the current table version (variant D only), for
	// correlating Stats snapshots with the Logger call that announced the
	// version. Empty for fixed-capacity variants.
	Generation string
}

// Logger defines a minimal, zero-overhead-by-default logging interface used
// only for diagnostics — never for control flow. The only call site is an
// Info line when ResizableSet publishes a new table version.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger is a logger that does nothing. Used as default to avoid nil checks.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}
func (NoOpLogger) Info(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Warn(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider provides current time with caching for performance. It is
// consulted only to timestamp MetricsCollector calls and never influences
// set correctness.
type TimeProvider interface {
	Now() int64
}

// MetricsCollector receives operation instrumentation. Implementations must
// be fast and safe for concurrent use from every worker thread.
type MetricsCollector interface {
	// RecordProbeCount reports how many slots a single InsertIfAbsent,
	// Erase, or SumOfKeys scan touched. operation is one of "insert",
	// "erase", or "sum".
	RecordProbeCount(probeCount int, operation string)

	// RecordInsert reports the latency and outcome of an InsertIfAbsent call.
	RecordInsert(latencyNanos int64, inserted bool)

	// RecordErase reports the latency and outcome of an Erase call.
	RecordErase(latencyNanos int64, erased bool)

	// RecordExpansion reports a completed table expansion (variant D only).
	RecordExpansion(oldCapacity, newCapacity int, durationNanos int64)

	// RecordChunkMigrated reports a completed migration chunk (variant D only).
	RecordChunkMigrated(chunkIndex int, keysMoved int)
}

// NoOpMetricsCollector is a MetricsCollector that does nothing. Used as the
// default so instrumentation costs nothing when not configured.
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) RecordProbeCount(probeCount int, operation string)       {}
func (NoOpMetricsCollector) RecordInsert(latencyNanos int64, inserted bool)          {}
func (NoOpMetricsCollector) RecordErase(latencyNanos int64, erased bool)             {}
func (NoOpMetricsCollector) RecordExpansion(oldCapacity, newCapacity int, durationNanos int64) {}
func (NoOpMetricsCollector) RecordChunkMigrated(chunkIndex int, keysMoved int)       {}
