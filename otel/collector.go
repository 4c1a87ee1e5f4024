// collector.go: OpenTelemetry-backed MetricsCollector for intset.
//
// Grounded on agilira/balios's otel/collector.go: the same instrument shapes
// (latency histograms, operation counters), the same Options/Option functional
// configuration, and the same nil-provider validation, adapted from cache
// hit/miss/eviction metrics to probe/insert/erase/expansion metrics.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"github.com/agilira/intset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsCollector implements intset.MetricsCollector using OpenTelemetry.
//
// Thread-safety: safe for concurrent use by multiple goroutines. The
// underlying OTEL instruments are thread-safe and lock-free.
type OTelMetricsCollector struct {
	probeCount        metric.Int64Histogram
	insertLatency     metric.Int64Histogram
	eraseLatency      metric.Int64Histogram
	insertedTotal     metric.Int64Counter
	notInsertedTotal  metric.Int64Counter
	erasedTotal       metric.Int64Counter
	notErasedTotal    metric.Int64Counter
	expansionsTotal   metric.Int64Counter
	expansionDuration metric.Int64Histogram
	chunksMigrated    metric.Int64Counter
	keysMigrated      metric.Int64Counter
}

// Options configures an OTelMetricsCollector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/agilira/intset"
	MeterName string
}

// Option is a functional option for configuring OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom meter name, useful for distinguishing metrics
// from multiple set instances.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewOTelMetricsCollector creates a new OpenTelemetry metrics collector for
// an intset.IntSet. provider must not be nil.
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{MeterName: "github.com/agilira/intset"}
	for _, opt := range opts {
		opt(&options)
	}

	meter := provider.Meter(options.MeterName)
	c := &OTelMetricsCollector{}

	var err error
	c.probeCount, err = meter.Int64Histogram(
		"intset_probe_count",
		metric.WithDescription("Number of slots touched by a single insert/erase/sum scan"),
		metric.WithUnit("{slot}"),
	)
	if err != nil {
		return nil, err
	}

	c.insertLatency, err = meter.Int64Histogram(
		"intset_insert_latency_ns",
		metric.WithDescription("Latency of InsertIfAbsent calls in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	c.eraseLatency, err = meter.Int64Histogram(
		"intset_erase_latency_ns",
		metric.WithDescription("Latency of Erase calls in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	c.insertedTotal, err = meter.Int64Counter(
		"intset_insert_success_total",
		metric.WithDescription("Total number of keys newly inserted"),
	)
	if err != nil {
		return nil, err
	}

	c.notInsertedTotal, err = meter.Int64Counter(
		"intset_insert_duplicate_total",
		metric.WithDescription("Total number of InsertIfAbsent calls that found the key already present"),
	)
	if err != nil {
		return nil, err
	}

	c.erasedTotal, err = meter.Int64Counter(
		"intset_erase_success_total",
		metric.WithDescription("Total number of keys removed"),
	)
	if err != nil {
		return nil, err
	}

	c.notErasedTotal, err = meter.Int64Counter(
		"intset_erase_miss_total",
		metric.WithDescription("Total number of Erase calls that found nothing to remove"),
	)
	if err != nil {
		return nil, err
	}

	c.expansionsTotal, err = meter.Int64Counter(
		"intset_expansions_total",
		metric.WithDescription("Total number of completed table expansions (variant D only)"),
	)
	if err != nil {
		return nil, err
	}

	c.expansionDuration, err = meter.Int64Histogram(
		"intset_expansion_duration_ns",
		metric.WithDescription("Wall-clock duration of helpExpansion calls in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	c.chunksMigrated, err = meter.Int64Counter(
		"intset_chunks_migrated_total",
		metric.WithDescription("Total number of migration chunks completed"),
	)
	if err != nil {
		return nil, err
	}

	c.keysMigrated, err = meter.Int64Counter(
		"intset_keys_migrated_total",
		metric.WithDescription("Total number of keys moved from an old table version into a new one"),
	)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// RecordProbeCount records how many slots a single scan touched, tagged by
// operation ("insert", "erase", or "sum").
func (c *OTelMetricsCollector) RecordProbeCount(probeCount int, operation string) {
	c.probeCount.Record(context.Background(), int64(probeCount),
		metric.WithAttributes(attribute.String("operation", operation)))
}

// RecordInsert records the latency and outcome of an InsertIfAbsent call.
func (c *OTelMetricsCollector) RecordInsert(latencyNanos int64, inserted bool) {
	ctx := context.Background()
	c.insertLatency.Record(ctx, latencyNanos)
	if inserted {
		c.insertedTotal.Add(ctx, 1)
	} else {
		c.notInsertedTotal.Add(ctx, 1)
	}
}

// RecordErase records the latency and outcome of an Erase call.
func (c *OTelMetricsCollector) RecordErase(latencyNanos int64, erased bool) {
	ctx := context.Background()
	c.eraseLatency.Record(ctx, latencyNanos)
	if erased {
		c.erasedTotal.Add(ctx, 1)
	} else {
		c.notErasedTotal.Add(ctx, 1)
	}
}

// RecordExpansion records a completed table expansion (variant D only).
func (c *OTelMetricsCollector) RecordExpansion(oldCapacity, newCapacity int, durationNanos int64) {
	ctx := context.Background()
	c.expansionsTotal.Add(ctx, 1,
		metric.WithAttributes(
			attribute.Int("old_capacity", oldCapacity),
			attribute.Int("new_capacity", newCapacity),
		))
	c.expansionDuration.Record(ctx, durationNanos)
}

// RecordChunkMigrated records a completed migration chunk (variant D only).
func (c *OTelMetricsCollector) RecordChunkMigrated(chunkIndex int, keysMoved int) {
	ctx := context.Background()
	c.chunksMigrated.Add(ctx, 1)
	c.keysMigrated.Add(ctx, int64(keysMoved))
}

var _ intset.MetricsCollector = (*OTelMetricsCollector)(nil)
