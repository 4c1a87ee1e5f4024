// variant_b.go: optimistic unsynchronized read, locked publish.
//
// Grounded on original_source/alg_b.h: each probe reads the slot without
// synchronization first; only a promising outcome (EMPTY for insert, a key
// match for erase) is confirmed and published under the slot's mutex. The
// "unsynchronized" read still uses a relaxed atomic load rather than a bare
// slice read, since a torn read is permitted by some memory models even
// though the C++ original does not bother.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package intset

import (
	"sync"
	"sync/atomic"
)

// VariantBSet is a fixed-capacity hash set that probes optimistically and
// only takes a per-slot mutex to publish a write.
type VariantBSet struct {
	capacity int
	slots    []atomic.Int32
	mutexes  []sync.Mutex
	cfg      Config
}

// NewVariantB constructs a fixed-capacity set using optimistic probing with
// locked publish.
func NewVariantB(cfg Config) (*VariantBSet, error) {
	if cfg.NumThreads <= 0 {
		return nil, NewErrInvalidNumThreads(cfg.NumThreads)
	}
	if cfg.Capacity <= 0 {
		return nil, NewErrInvalidCapacity(cfg.Capacity)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &VariantBSet{
		capacity: cfg.Capacity,
		slots:    make([]atomic.Int32, cfg.Capacity),
		mutexes:  make([]sync.Mutex, cfg.Capacity),
		cfg:      cfg,
	}
	for i := range s.slots {
		s.slots[i].Store(sentinelEmptyABC)
	}
	return s, nil
}

// InsertIfAbsent tries to insert key. Returns true iff it was newly inserted.
func (s *VariantBSet) InsertIfAbsent(tid int, key int32) bool {
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
		switch {
		case found == key:
			// Safe to linearize at this unsynchronized read: once a slot
			// holds key, it only ever transitions to TOMBSTONE, never to a
			// different user key.
			s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
			return false
		case found == sentinelEmptyABC:
			s.mutexes[index].Lock()
			if s.slots[index].Load() == sentinelEmptyABC {
				s.slots[index].Store(key)
				s.mutexes[index].Unlock()
				s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
				return true
			}
			s.mutexes[index].Unlock()
			// Slot changed underneath us; re-read and decide whether to
			// advance, without losing this probe position's outcome.
			refound := s.slots[index].Load()
			if refound == key {
				s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
				return false
			}
		}
	}
	s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
	return false
}

// Erase removes key if present. Returns true iff it was present and removed.
func (s *VariantBSet) Erase(tid int, key int32) bool {
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
		switch {
		case found == sentinelEmptyABC:
			s.cfg.MetricsCollector.RecordProbeCount(probes, "erase")
			return false
		case found == key:
			s.mutexes[index].Lock()
			if s.slots[index].Load() == key {
				s.slots[index].Store(sentinelTombstoneABC)
				s.mutexes[index].Unlock()
				s.cfg.MetricsCollector.RecordProbeCount(probes, "erase")
				return true
			}
			s.mutexes[index].Unlock()
		}
	}
	s.cfg.MetricsCollector.RecordProbeCount(probes, "erase")
	return false
}

// SumOfKeys sums all present keys via unsynchronized reads.
func (s *VariantBSet) SumOfKeys() int64 {
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
func (s *VariantBSet) Stats() SetStats {
	var live int64
	for i := 0; i < s.capacity; i++ {
		v := s.slots[i].Load()
		if v != sentinelEmptyABC && v != sentinelTombstoneABC {
			live++
		}
	}
	return SetStats{ApproxSize: live, Capacity: s.capacity}
}

// Close is a no-op; VariantBSet holds no background resources.
func (s *VariantBSet) Close() error { return nil }

var _ IntSet = (*VariantBSet)(nil)
