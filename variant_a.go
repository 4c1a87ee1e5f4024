// variant_a.go: per-slot mutex, locked and released at every probed slot.
//
// Grounded on the original source's AlgorithmA (original_source/alg_a.h):
// a mutex per slot is acquired before inspecting it and released after
// acting on it, for every probed slot.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package intset

import (
	"sync"
)

// VariantASet is a fixed-capacity hash set that locks the mutex guarding
// each probed slot before inspecting or mutating it.
type VariantASet struct {
	capacity int
	slots    []int32
	mutexes  []sync.Mutex
	cfg      Config
}

// NewVariantA constructs a fixed-capacity set using per-slot mutexes.
func NewVariantA(cfg Config) (*VariantASet, error) {
	if cfg.NumThreads <= 0 {
		return nil, NewErrInvalidNumThreads(cfg.NumThreads)
	}
	if cfg.Capacity <= 0 {
		return nil, NewErrInvalidCapacity(cfg.Capacity)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slots := make([]int32, cfg.Capacity)
	for i := range slots {
		slots[i] = sentinelEmptyABC
	}

	return &VariantASet{
		capacity: cfg.Capacity,
		slots:    slots,
		mutexes:  make([]sync.Mutex, cfg.Capacity),
		cfg:      cfg,
	}, nil
}

// InsertIfAbsent tries to insert key. Returns true iff it was newly inserted.
func (s *VariantASet) InsertIfAbsent(tid int, key int32) bool {
	if !isValidKeyABC(key) {
		panicOrError(s.cfg.StrictMode, NewErrInvalidKey(key))
		return false
	}

	start := int(mix(key)) % s.capacity
	probes := 0
	for i := 0; i < s.capacity; i++ {
		index := (start + i) % s.capacity
		probes++

		s.mutexes[index].Lock()
		found := s.slots[index]
		switch {
		case found == key:
			s.mutexes[index].Unlock()
			s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
			return false
		case found == sentinelEmptyABC:
			s.slots[index] = key
			s.mutexes[index].Unlock()
			s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
			return true
		default:
			s.mutexes[index].Unlock()
		}
	}
	s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
	return false
}

// Erase removes key if present. Returns true iff it was present and removed.
func (s *VariantASet) Erase(tid int, key int32) bool {
	if !isValidKeyABC(key) {
		panicOrError(s.cfg.StrictMode, NewErrInvalidKey(key))
		return false
	}

	start := int(mix(key)) % s.capacity
	probes := 0
	for i := 0; i < s.capacity; i++ {
		index := (start + i) % s.capacity
		probes++

		s.mutexes[index].Lock()
		found := s.slots[index]
		switch {
		case found == sentinelEmptyABC:
			s.mutexes[index].Unlock()
			s.cfg.MetricsCollector.RecordProbeCount(probes, "erase")
			return false
		case found == key:
			s.slots[index] = sentinelTombstoneABC
			s.mutexes[index].Unlock()
			s.cfg.MetricsCollector.RecordProbeCount(probes, "erase")
			return true
		default:
			s.mutexes[index].Unlock()
		}
	}
	s.cfg.MetricsCollector.RecordProbeCount(probes, "erase")
	return false
}

// SumOfKeys sums all present keys by locking and releasing each slot in turn.
func (s *VariantASet) SumOfKeys() int64 {
	var sum int64
	for i := 0; i < s.capacity; i++ {
		s.mutexes[i].Lock()
		v := s.slots[i]
		s.mutexes[i].Unlock()
		if v != sentinelEmptyABC && v != sentinelTombstoneABC {
			sum += int64(v)
		}
	}
	s.cfg.MetricsCollector.RecordProbeCount(s.capacity, "sum")
	return sum
}

// Stats returns a snapshot derived from a full scan; VariantASet does not
// maintain striped counters (only variant D does).
func (s *VariantASet) Stats() SetStats {
	var live int64
	for i := 0; i < s.capacity; i++ {
		s.mutexes[i].Lock()
		v := s.slots[i]
		s.mutexes[i].Unlock()
		if v != sentinelEmptyABC && v != sentinelTombstoneABC {
			live++
		}
	}
	return SetStats{ApproxSize: live, Capacity: s.capacity}
}

// Close is a no-op; VariantASet holds no background resources.
func (s *VariantASet) Close() error { return nil }

var _ IntSet = (*VariantASet)(nil)
