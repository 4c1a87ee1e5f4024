// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"testing"

	"github.com/agilira/intset"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// TestOTelMetricsCollector_Interface verifies OTelMetricsCollector implements
// intset.MetricsCollector.
func TestOTelMetricsCollector_Interface(t *testing.T) {
	var _ intset.MetricsCollector = (*OTelMetricsCollector)(nil)
}

func TestNewOTelMetricsCollector(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}
	if collector == nil {
		t.Fatal("NewOTelMetricsCollector() returned nil")
	}
}

func TestNewOTelMetricsCollector_NilProvider(t *testing.T) {
	collector, err := NewOTelMetricsCollector(nil)
	if err == nil {
		t.Fatal("NewOTelMetricsCollector(nil) should return error")
	}
	if collector != nil {
		t.Fatal("NewOTelMetricsCollector(nil) should return nil collector")
	}
}

func TestOTelMetricsCollector_RecordInsert(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.RecordInsert(1000, true)
	collector.RecordInsert(2000, false)
	collector.RecordInsert(1500, true)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}

	var foundLatency, foundSuccess, foundDuplicate bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch m.Name {
			case "intset_insert_latency_ns":
				foundLatency = true
				hist, ok := m.Data.(metricdata.Histogram[int64])
				if !ok {
					t.Errorf("Expected Histogram[int64], got %T", m.Data)
					continue
				}
				var total uint64
				for _, dp := range hist.DataPoints {
					total += dp.Count
				}
				if total != 3 {
					t.Errorf("Expected 3 operations, got %d", total)
				}
			case "intset_insert_success_total":
				foundSuccess = true
				sum, ok := m.Data.(metricdata.Sum[int64])
				if !ok || len(sum.DataPoints) == 0 || sum.DataPoints[0].Value != 2 {
					t.Errorf("Expected 2 successful inserts, got %v", m.Data)
				}
			case "intset_insert_duplicate_total":
				foundDuplicate = true
				sum, ok := m.Data.(metricdata.Sum[int64])
				if !ok || len(sum.DataPoints) == 0 || sum.DataPoints[0].Value != 1 {
					t.Errorf("Expected 1 duplicate insert, got %v", m.Data)
				}
			}
		}
	}

	if !foundLatency {
		t.Error("intset_insert_latency_ns metric not found")
	}
	if !foundSuccess {
		t.Error("intset_insert_success_total metric not found")
	}
	if !foundDuplicate {
		t.Error("intset_insert_duplicate_total metric not found")
	}
}

func TestOTelMetricsCollector_RecordErase(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.RecordErase(300, true)
	collector.RecordErase(600, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}

	var foundLatency bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "intset_erase_latency_ns" {
				foundLatency = true
				hist, ok := m.Data.(metricdata.Histogram[int64])
				if !ok {
					t.Errorf("Expected Histogram[int64], got %T", m.Data)
					continue
				}
				var total uint64
				for _, dp := range hist.DataPoints {
					total += dp.Count
				}
				if total != 2 {
					t.Errorf("Expected 2 operations, got %d", total)
				}
			}
		}
	}

	if !foundLatency {
		t.Error("intset_erase_latency_ns metric not found")
	}
}

func TestOTelMetricsCollector_RecordExpansion(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.RecordExpansion(64, 448, 5000)
	collector.RecordChunkMigrated(1, 8)
	collector.RecordChunkMigrated(2, 8)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}

	var foundExpansions, foundChunks, foundKeys bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch m.Name {
			case "intset_expansions_total":
				foundExpansions = true
			case "intset_chunks_migrated_total":
				foundChunks = true
				sum, ok := m.Data.(metricdata.Sum[int64])
				if !ok || len(sum.DataPoints) == 0 || sum.DataPoints[0].Value != 2 {
					t.Errorf("Expected 2 chunks migrated, got %v", m.Data)
				}
			case "intset_keys_migrated_total":
				foundKeys = true
				sum, ok := m.Data.(metricdata.Sum[int64])
				if !ok || len(sum.DataPoints) == 0 || sum.DataPoints[0].Value != 16 {
					t.Errorf("Expected 16 keys migrated, got %v", m.Data)
				}
			}
		}
	}

	if !foundExpansions {
		t.Error("intset_expansions_total metric not found")
	}
	if !foundChunks {
		t.Error("intset_chunks_migrated_total metric not found")
	}
	if !foundKeys {
		t.Error("intset_keys_migrated_total metric not found")
	}
}

func TestOTelMetricsCollector_RecordProbeCount(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.RecordProbeCount(1, "insert")
	collector.RecordProbeCount(3, "erase")
	collector.RecordProbeCount(64, "sum")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}

	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "intset_probe_count" {
				found = true
				hist, ok := m.Data.(metricdata.Histogram[int64])
				if !ok {
					t.Errorf("Expected Histogram[int64], got %T", m.Data)
					continue
				}
				var total uint64
				for _, dp := range hist.DataPoints {
					total += dp.Count
				}
				if total != 3 {
					t.Errorf("Expected 3 recordings, got %d", total)
				}
			}
		}
	}

	if !found {
		t.Error("intset_probe_count metric not found")
	}
}

func TestOTelMetricsCollector_WithMeterName(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewOTelMetricsCollector(provider, WithMeterName("custom_meter"))
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}
	if collector == nil {
		t.Fatal("NewOTelMetricsCollector() returned nil")
	}
}
