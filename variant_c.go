// variant_c.go: lock-free, single CAS per slot, fixed capacity.
//
// Grounded on original_source/alg_c.h: every slot is an atomic int; insert
// and erase each perform at most one CAS per probed slot and never block.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package intset

import "sync/atomic"

// VariantCSet is a fixed-capacity, lock-free hash set using a single CAS
// per probed slot.
type VariantCSet struct {
	capacity int
	slots    []atomic.Int32
	cfg      Config
}

// NewVariantC constructs a fixed-capacity, lock-free set.
func NewVariantC(cfg Config) (*VariantCSet, error) {
	if cfg.NumThreads <= 0 {
		return nil, NewErrInvalidNumThreads(cfg.NumThreads)
	}
	if cfg.Capacity <= 0 {
		return nil, NewErrInvalidCapacity(cfg.Capacity)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &VariantCSet{
		capacity: cfg.Capacity,
		slots:    make([]atomic.Int32, cfg.Capacity),
		cfg:      cfg,
	}
	for i := range s.slots {
		s.slots[i].Store(sentinelEmptyABC)
	}
	return s, nil
}

// InsertIfAbsent tries to insert key. Returns true iff it was newly inserted.
func (s *VariantCSet) InsertIfAbsent(tid int, key int32) bool {
	if !isValidKeyABC(key) {
		panicOrError(s.cfg.StrictMode, NewErrInvalidKey(key))
		return false
	}

	start := int(mix(key)) % s.capacity
	probes := 0
	for i := 0; i < s.capacity; i++ {
		index := (start + i) % s.capacity
		probes++

		found := s.slots[index].Load()
		if found == key {
			s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
			return false
		}
		if found == sentinelEmptyABC {
			if s.slots[index].CompareAndSwap(sentinelEmptyABC, key) {
				s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
				return true
			}
			if s.slots[index].Load() == key {
				s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
				return false
			}
			// Otherwise another thread claimed this slot with a different
			// key; advance to the next probe position.
		}
	}
	s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
	return false
}

// Erase removes key if present. Returns true iff it was present and removed.
func (s *VariantCSet) Erase(tid int, key int32) bool {
	if !isValidKeyABC(key) {
		panicOrError(s.cfg.StrictMode, NewErrInvalidKey(key))
		return false
	}

	start := int(mix(key)) % s.capacity
	probes := 0
	for i := 0; i < s.capacity; i++ {
		index := (start + i) % s.capacity
		probes++

		found := s.slots[index].Load()
		if found == sentinelEmptyABC {
			s.cfg.MetricsCollector.RecordProbeCount(probes, "erase")
			return false
		}
		if found == key {
			ok := s.slots[index].CompareAndSwap(key, sentinelTombstoneABC)
			s.cfg.MetricsCollector.RecordProbeCount(probes, "erase")
			return ok
		}
	}
	s.cfg.MetricsCollector.RecordProbeCount(probes, "erase")
	return false
}

// SumOfKeys sums all present keys via relaxed loads.
func (s *VariantCSet) SumOfKeys() int64 {
	var sum int64
	for i := 0; i < s.capacity; i++ {
		v := s.slots[i].Load()
		if v != sentinelEmptyABC && v != sentinelTombstoneABC {
			sum += int64(v)
		}
	}
	s.cfg.MetricsCollector.RecordProbeCount(s.capacity, "sum")
	return sum
}

// Stats returns a snapshot derived from a full scan.
func (s *VariantCSet) Stats() SetStats {
	var live int64
	for i := 0; i < s.capacity; i++ {
		v := s.slots[i].Load()
		if v != sentinelEmptyABC && v != sentinelTombstoneABC {
			live++
		}
	}
	return SetStats{ApproxSize: live, Capacity: s.capacity}
}

// Close is a no-op; VariantCSet holds no background resources.
func (s *VariantCSet) Close() error { return nil }

var _ IntSet = (*VariantCSet)(nil)
