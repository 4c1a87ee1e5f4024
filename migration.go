// migration.go: table versions and the cooperative chunked migration
// protocol used by the resizable variant (D).
//
// Grounded on original_source/alg_d.h's nested `table` type and its
// helpExpansion/startExpansion/migrate methods. The source's migrate
// decrements its loop index on a failed mark CAS to retry; here the loop
// simply does not advance the index on that failure, which gets the same
// retry without the decrement.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package intset

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// tableVersion is one generation of the backing array for ResizableSet. At
// most two coexist during migration: the active version and the one it is
// draining (reachable through old/oldCapacity).
type tableVersion struct {
	data []atomic.Int32
	old  []atomic.Int32 // previous version's data, or nil
	generation     uuid.UUID
	capacity       int
	oldCapacity    int
	partitionSize  int
	approxSize     *stripedCounter
	tombstoneSize  *stripedCounter
	chunksClaimed  atomic.Int64
	chunksDone     atomic.Int64
}

// newInitialTable builds the first version a ResizableSet publishes at
// construction: no predecessor, freshly zeroed data (the zero value of
// atomic.Int32 is 0, which is sentinelEmptyD).
func newInitialTable(capacity, numThreads int) *tableVersion {
	partitionSize := capacity / numThreads
	if partitionSize <= 0 {
		partitionSize = 1
	}
	return &tableVersion{
		data:          make([]atomic.Int32, capacity),
		capacity:      capacity,
		partitionSize: partitionSize,
		approxSize:    newStripedCounter(numThreads),
		tombstoneSize: newStripedCounter(numThreads),
		generation:    uuid.New(),
	}
}

// newExpandedTable builds the next version during expansion: newCapacity is
// max((approxSize-tombstoneSize)*EXPANSION_RATE, old.capacity), computed in
// 64 bits to avoid overflowing int on large tables.
func newExpandedTable(old *tableVersion, expansionRate, numThreads int) *tableVersion {
	live := old.approxSize.get() - old.tombstoneSize.get()
	newCapacity := live * int64(expansionRate)
	if newCapacity < int64(old.capacity) {
		newCapacity = int64(old.capacity)
	}

	partitionSize := int(newCapacity) / numThreads
	if partitionSize <= 0 {
		partitionSize = 1
	}

	return &tableVersion{
		data:          make([]atomic.Int32, newCapacity),
		old:           old.data,
		capacity:      int(newCapacity),
		oldCapacity:   old.capacity,
		partitionSize: partitionSize,
		approxSize:    newStripedCounter(numThreads),
		tombstoneSize: newStripedCounter(numThreads),
		generation:    uuid.New(),
	}
}

// totalChunks returns how many migration chunks this version's predecessor
// is partitioned into.
func (t *tableVersion) totalChunks() int {
	if t.oldCapacity == 0 {
		return 0
	}
	return (t.oldCapacity + t.partitionSize - 1) / t.partitionSize
}

// helpExpansion claims and migrates chunks of t's predecessor until every
// chunk is claimed, then busy-waits until every claimed chunk is fully
// migrated. It reports whether there was any predecessor work to help with.
func (s *ResizableSet) helpExpansion(tid int, t *tableVersion) bool {
	total := t.totalChunks()
	if total == 0 {
		return false
	}

	helped := false
	for t.chunksClaimed.Load() < int64(total) {
		myChunk := t.chunksClaimed.Add(1)
		helped = true
		if myChunk <= int64(total) {
			s.migrate(tid, t, int(myChunk))
			t.chunksDone.Add(1)
		}
	}
	for t.chunksDone.Load() < int64(total) {
		// Spin until every claimed chunk has finished migrating. Bounded:
		// each chunk is O(partitionSize) work, completed by some thread.
	}
	return helped
}

// startExpansion allocates and publishes the next table version if t is
// still current, then helps drain whichever version is current by the time
// it returns.
func (s *ResizableSet) startExpansion(tid int, t *tableVersion) {
	published := false
	if s.currentTable.Load() == t {
		tNew := newExpandedTable(t, s.cfg.ExpansionRate, s.numThreads)
		if s.currentTable.CompareAndSwap(t, tNew) {
			published = true
			s.expansionCount.Add(1)
			s.cfg.Logger.Info("expansion started",
				"generation", tNew.generation,
				"oldCapacity", t.capacity,
				"newCapacity", tNew.capacity)
		}
		// Else: another thread already advanced past t; tNew was never
		// published, holds no references anyone else can see, and is
		// reclaimed by the garbage collector.
	}

	current := s.currentTable.Load()
	start := s.cfg.TimeProvider.Now()
	s.helpExpansion(tid, current)
	if published {
		s.cfg.MetricsCollector.RecordExpansion(t.capacity, current.capacity, s.cfg.TimeProvider.Now()-start)
	}
}

// migrate freezes and moves one chunk of t's predecessor into t.data.
func (s *ResizableSet) migrate(tid int, t *tableVersion, chunk int) {
	start := (chunk - 1) * t.partitionSize
	end := start + t.partitionSize
	if end > t.oldCapacity {
		end = t.oldCapacity
	}

	moved := 0
	for i := start; i < end; {
		key := t.old[i].Load()
		if key == sentinelTombstoneD {
			i++
			continue
		}

		if !t.old[i].CompareAndSwap(key, key|markedMask) {
			// The value changed since we read it. Chunks are claimed by one
			// thread each, so the change came from a concurrent insert or
			// erase still working on the old version; re-observe and retry
			// without advancing until the mark is published.
			continue
		}

		if key != sentinelEmptyD && key != sentinelTombstoneD {
			if !s.insertD(tid, key, true) {
				panic(NewErrMigrationInvariant(key, t.oldCapacity, t.capacity))
			}
			moved++
		}
		i++
	}

	s.cfg.MetricsCollector.RecordChunkMigrated(chunk, moved)
}
