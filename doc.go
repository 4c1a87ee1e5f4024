// Package intset provides a family of concurrent, open-addressed hash sets
// storing 32-bit integer keys, progressing from coarse-grained locking to a
// lock-free, resizable table with cooperative migration.
//
// # Overview
//
// Four variants implement the same IntSet contract:
//
//   - VariantA: per-slot mutex, locked and released at every probed slot.
//   - VariantB: optimistic unsynchronized read, locked publish.
//   - VariantC: lock-free, single CAS per slot, fixed capacity.
//   - ResizableSet (variant D): lock-free with cooperative chunked
//     migration; the only variant that resizes.
//
// All four share linear probing over an array of slots, EMPTY/TOMBSTONE
// sentinels, and a full-table scan for SumOfKeys.
//
// # Quick Start
//
//	s, err := intset.NewResizableSet(intset.Config{NumThreads: 8, Capacity: 1024})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Close()
//
//	s.InsertIfAbsent(0, 42)
//	s.Erase(0, 42)
//	total := s.SumOfKeys()
//
// # Structured Errors
//
// Programmer errors (sentinel keys, and for ResizableSet out-of-range thread
// ids) make the operation return false without touching the set; the
// github.com/agilira/go-errors-backed error built for them (see errors.go) is
// not returned to the caller. With Config.StrictMode set, they panic with
// that error instead.
//
// # Observability
//
// Logger and MetricsCollector are injectable, zero-overhead-by-default
// interfaces (see interfaces.go) used only for diagnostics: the Logger
// receives one line when ResizableSet publishes a new table version, and the
// MetricsCollector receives probe counts, insert/erase outcomes, expansions
// and completed migration chunks. Neither participates in set correctness.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package intset
