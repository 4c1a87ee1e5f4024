// Package otel provides OpenTelemetry integration for intset metrics.
//
// # Overview
//
// This package implements the intset.MetricsCollector interface using
// OpenTelemetry, exposing probe-length histograms, insert/erase outcome
// counters, and expansion/migration instrumentation for the resizable
// variant (D).
//
// The package is a separate module so that applications which don't need
// metrics collection don't pay for the OTEL dependencies; the intset core
// has no import of this package.
//
// # Quick Start
//
//	import (
//	    "github.com/agilira/intset"
//	    intsetotel "github.com/agilira/intset/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	defer provider.Shutdown(context.Background())
//
//	collector, err := intsetotel.NewOTelMetricsCollector(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := intset.DefaultConfig(8, 1024)
//	cfg.MetricsCollector = collector
//	s, _ := intset.NewResizableSet(cfg)
//
// # Metrics Exposed
//
//   - intset_probe_count: histogram of slots touched per insert/erase/sum scan
//   - intset_insert_latency_ns / intset_erase_latency_ns: operation latency
//   - intset_insert_success_total / intset_insert_duplicate_total
//   - intset_erase_success_total / intset_erase_miss_total
//   - intset_expansions_total / intset_expansion_duration_ns (variant D)
//   - intset_chunks_migrated_total / intset_keys_migrated_total (variant D)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel
