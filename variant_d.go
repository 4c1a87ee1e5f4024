// variant_d.go: lock-free, resizable set with cooperative chunked migration.
//
// Grounded on original_source/alg_d.h's AlgorithmD. The original's recursive
// restarts ("call insertIfAbsent on itself after observing a MARKED cell")
// are expressed here as a loop on the outer state machine, since Go gives
// no tail-call guarantee.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package intset

import "sync/atomic"

// ResizableSet is a lock-free hash set that expands its backing table when
// occupancy (including tombstones) crosses Config.LoadFactor, migrating the
// old table into the new one cooperatively across whichever threads call
// InsertIfAbsent/Erase next.
type ResizableSet struct {
	currentTable   atomic.Pointer[tableVersion]
	numThreads     int
	expansionCount atomic.Int64
	cfg            Config
}

// NewResizableSet constructs a resizable set with the given initial capacity.
func NewResizableSet(cfg Config) (*ResizableSet, error) {
	if cfg.NumThreads <= 0 {
		return nil, NewErrInvalidNumThreads(cfg.NumThreads)
	}
	if cfg.Capacity <= 0 {
		return nil, NewErrInvalidCapacity(cfg.Capacity)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &ResizableSet{numThreads: cfg.NumThreads, cfg: cfg}
	s.currentTable.Store(newInitialTable(cfg.Capacity, cfg.NumThreads))
	return s, nil
}

// InsertIfAbsent tries to insert key. Returns true iff it was newly inserted.
func (s *ResizableSet) InsertIfAbsent(tid int, key int32) bool {
	if tid < 0 || tid >= s.numThreads {
		_ = panicOrError(s.cfg.StrictMode, NewErrInvalidTid(tid, s.numThreads))
		return false
	}
	if !isValidKeyD(key) {
		_ = panicOrError(s.cfg.StrictMode, NewErrInvalidKey(key))
		return false
	}

	begin := s.cfg.TimeProvider.Now()
	result := s.insertD(tid, key, false)
	s.cfg.MetricsCollector.RecordInsert(s.cfg.TimeProvider.Now()-begin, result)
	return result
}

// Erase removes key if present. Returns true iff it was present and removed.
func (s *ResizableSet) Erase(tid int, key int32) bool {
	if tid < 0 || tid >= s.numThreads {
		_ = panicOrError(s.cfg.StrictMode, NewErrInvalidTid(tid, s.numThreads))
		return false
	}
	if !isValidKeyD(key) {
		_ = panicOrError(s.cfg.StrictMode, NewErrInvalidKey(key))
		return false
	}

	begin := s.cfg.TimeProvider.Now()
	result := s.eraseD(tid, key)
	s.cfg.MetricsCollector.RecordErase(s.cfg.TimeProvider.Now()-begin, result)
	return result
}

// SumOfKeys sums all present keys in the currently active table version.
func (s *ResizableSet) SumOfKeys() int64 {
	t := s.currentTable.Load()
	var sum int64
	for i := 0; i < t.capacity; i++ {
		v := t.data[i].Load()
		if v != sentinelEmptyD && v != sentinelTombstoneD {
			sum += int64(v)
		}
	}
	s.cfg.MetricsCollector.RecordProbeCount(t.capacity, "sum")
	return sum
}

// Stats returns a snapshot of the current table version's counters.
func (s *ResizableSet) Stats() SetStats {
	t := s.currentTable.Load()
	return SetStats{
		ApproxSize:     t.approxSize.get(),
		TombstoneSize:  t.tombstoneSize.get(),
		Capacity:       t.capacity,
		ExpansionCount: s.expansionCount.Load(),
		Generation:     t.generation.String(),
	}
}

// Close releases resources held by the set. ResizableSet has no background
// goroutines — migration is driven cooperatively by callers — and retired
// table versions become unreachable (and garbage-collected) once no
// in-flight operation still holds a snapshot, so Close is a no-op that
// exists to satisfy IntSet uniformly.
func (s *ResizableSet) Close() error { return nil }

// expandAsNeeded helps complete any migration in progress for t, then
// starts a new expansion if t's occupancy (including tombstones) has
// crossed the load factor. Returns true iff any expansion was triggered or
// helped, signaling the caller to restart against the latest currentTable.
func (s *ResizableSet) expandAsNeeded(tid int, t *tableVersion) bool {
	helped := s.helpExpansion(tid, t)

	threshold := int64(float64(t.capacity) * s.cfg.LoadFactor)
	if t.approxSize.get()+t.tombstoneSize.get() >= threshold {
		s.startExpansion(tid, t)
		return true
	}
	return helped
}

// insertD is the outer state machine for InsertIfAbsent, expressed as a
// restart loop instead of recursion. expansionMode is set only by migrate's
// re-insertion of a key into a freshly created table, which by construction
// is not yet migrating and contains no marked cells.
func (s *ResizableSet) insertD(tid int, key int32, expansionMode bool) bool {
	h := mix(key)

	for {
		t := s.currentTable.Load()
		probes := 0
		restart := false

		for i := 0; i < t.capacity; i++ {
			if !expansionMode && s.expandAsNeeded(tid, t) {
				restart = true
				break
			}

			index := int((h + uint32(i)) % uint32(t.capacity))
			probes++
			found := t.data[index].Load()

			if !expansionMode && found&markedMask != 0 {
				restart = true
				break
			}
			if found == key {
				s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
				return false
			}
			if found == sentinelEmptyD {
				if t.data[index].CompareAndSwap(sentinelEmptyD, key) {
					t.approxSize.inc(tid)
					s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
					return true
				}
				found = t.data[index].Load()
				if !expansionMode && found&markedMask != 0 {
					restart = true
					break
				}
				if found == key {
					s.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
					return false
				}
				// Otherwise another thread claimed this slot with a
				// different key; advance to the next probe position.
			}
		}

		if restart {
			continue
		}

		// Table full along this chain without finding EMPTY or a match:
		// trigger expansion and restart.
		s.startExpansion(tid, t)
	}
}

// eraseD is the outer state machine for Erase, expressed as a restart loop.
func (s *ResizableSet) eraseD(tid int, key int32) bool {
	h := mix(key)

	for {
		t := s.currentTable.Load()
		probes := 0
		restart := false

		for i := 0; i < t.capacity; i++ {
			if s.expandAsNeeded(tid, t) {
				restart = true
				break
			}

			index := int((h + uint32(i)) % uint32(t.capacity))
			probes++
			found := t.data[index].Load()

			if found&markedMask != 0 {
				restart = true
				break
			}
			if found == sentinelEmptyD {
				s.cfg.MetricsCollector.RecordProbeCount(probes, "erase")
				return false
			}
			if found == key {
				if t.data[index].CompareAndSwap(key, sentinelTombstoneD) {
					t.tombstoneSize.inc(tid)
					s.cfg.MetricsCollector.RecordProbeCount(probes, "erase")
					return true
				}
				found = t.data[index].Load()
				if found&markedMask != 0 {
					restart = true
					break
				}
				if found == sentinelTombstoneD || found == sentinelEmptyD {
					s.cfg.MetricsCollector.RecordProbeCount(probes, "erase")
					return false
				}
			}
		}

		if restart {
			continue
		}

		s.startExpansion(tid, t)
	}
}

var _ IntSet = (*ResizableSet)(nil)
