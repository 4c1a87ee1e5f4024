// config.go: configuration for intset
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package intset

import (
	"github.com/agilira/go-timecache"
)

// Default tuning constants for the resizable variant.
const (
	// DefaultLoadFactor is the (approxSize+tombstoneSize)/capacity ratio that
	// triggers expansion in the resizable variant.
	DefaultLoadFactor = 0.85

	// DefaultExpansionRate is the multiplier applied to the live key count
	// when sizing a new table during expansion.
	DefaultExpansionRate = 7
)

// Config holds configuration parameters shared by every IntSet variant.
type Config struct {
	// NumThreads is the maximum number of distinct thread ids that will ever
	// be passed to InsertIfAbsent/Erase. Must be > 0.
	NumThreads int

	// Capacity is the initial number of slots in the backing table.
	// Must be > 0.
	Capacity int

	// LoadFactor is the occupancy ratio (including tombstones) that triggers
	// expansion. Only consulted by the resizable variant. Default: DefaultLoadFactor.
	LoadFactor float64

	// ExpansionRate scales the live key count when computing the new table's
	// capacity during expansion. Only consulted by the resizable variant.
	// Default: DefaultExpansionRate.
	ExpansionRate int

	// StrictMode turns programmer errors (sentinel keys, and for the
	// resizable variant out-of-range tids) into panics; without it such a
	// call returns false and leaves the set unchanged. Default: false.
	StrictMode bool

	// Logger receives a diagnostic, non-blocking log call each time the
	// resizable variant publishes a new table version. If nil, NoOpLogger
	// is used.
	Logger Logger

	// TimeProvider supplies timestamps for MetricsCollector calls. It never
	// participates in set correctness. If nil, a go-timecache-backed
	// provider is used.
	TimeProvider TimeProvider

	// MetricsCollector receives probe-count and expansion instrumentation.
	// If nil, NoOpMetricsCollector is used (zero overhead).
	MetricsCollector MetricsCollector
}

// Validate normalizes zero-value fields to their defaults. It never returns
// a non-nil error for NumThreads/Capacity <= 0 set by zero-valuing a Config
// literal; those are caller programmer errors surfaced by the constructors
// themselves (see errors.go), not by Validate.
func (c *Config) Validate() error {
	if c.LoadFactor <= 0 || c.LoadFactor >= 1 {
		c.LoadFactor = DefaultLoadFactor
	}

	if c.ExpansionRate <= 0 {
		c.ExpansionRate = DefaultExpansionRate
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}

	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}

	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults for the given
// thread count and initial capacity.
func DefaultConfig(numThreads, capacity int) Config {
	cfg := Config{
		NumThreads:    numThreads,
		Capacity:      capacity,
		LoadFactor:    DefaultLoadFactor,
		ExpansionRate: DefaultExpansionRate,
		Logger:        NoOpLogger{},
		TimeProvider:  &systemTimeProvider{},
		MetricsCollector: NoOpMetricsCollector{},
	}
	return cfg
}

// systemTimeProvider is the default time provider using go-timecache.
// This provides substantially faster time access than time.Now() with zero
// allocations, which matters here because every ResizableSet InsertIfAbsent
// and Erase call samples it twice for latency metrics.
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
