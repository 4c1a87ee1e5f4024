// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package intset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestVariantA_InsertIfAbsent_Basic(t *testing.T) {
	s, err := NewVariantA(DefaultConfig(4, 64))
	require.NoError(t, err)

	assert.True(t, s.InsertIfAbsent(0, 42))
	assert.False(t, s.InsertIfAbsent(0, 42), "duplicate insert must return false")
	assert.Equal(t, int64(42), s.SumOfKeys())
}

func TestVariantA_Erase(t *testing.T) {
	s, err := NewVariantA(DefaultConfig(4, 64))
	require.NoError(t, err)

	require.True(t, s.InsertIfAbsent(0, 7))
	assert.True(t, s.Erase(0, 7))
	assert.False(t, s.Erase(0, 7), "second erase must return false")
	assert.True(t, s.InsertIfAbsent(0, 7), "re-insert after erase must succeed")
}

func TestVariantA_TombstoneProbe(t *testing.T) {
	// Scenario 5: k1, k2 must collide. NumThreads=1 is enough here since the
	// probe chain interaction is single-threaded.
	s, err := NewVariantA(DefaultConfig(1, 8))
	require.NoError(t, err)

	var k1, k2 int32 = 1, 3 // both map to slot 7 mod 8 under mix()
	require.True(t, s.InsertIfAbsent(0, k1))
	require.True(t, s.InsertIfAbsent(0, k2))
	require.True(t, s.Erase(0, k1))
	assert.False(t, s.InsertIfAbsent(0, k2), "k2 is still present")
	assert.True(t, s.InsertIfAbsent(0, k1), "k1 must be insertable again past its tombstone")
}

func TestVariantA_ConcurrentDisjointInserts(t *testing.T) {
	const numThreads = 8
	const perThread = 128
	s, err := NewVariantA(DefaultConfig(numThreads, 1024))
	require.NoError(t, err)

	var g errgroup.Group
	for tid := 0; tid < numThreads; tid++ {
		tid := tid
		g.Go(func() error {
			base := int32(tid*perThread + 1)
			for i := 0; i < perThread; i++ {
				if !s.InsertIfAbsent(tid, base+int32(i)) {
					t.Errorf("unexpected duplicate insert of %d", base+int32(i))
				}
			}
			for i := 0; i < perThread/2; i++ {
				s.Erase(tid, base+int32(i))
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var want int64
	for tid := 0; tid < numThreads; tid++ {
		base := int32(tid*perThread + 1)
		for i := perThread / 2; i < perThread; i++ {
			want += int64(base + int32(i))
		}
	}
	assert.Equal(t, want, s.SumOfKeys())
}

func TestVariantA_ConcurrentRaceSameKeys(t *testing.T) {
	const numThreads = 16
	const numKeys = 1000
	s, err := NewVariantA(DefaultConfig(numThreads, 4096))
	require.NoError(t, err)

	successes := newStripedCounter(numThreads)

	var g errgroup.Group
	for tid := 0; tid < numThreads; tid++ {
		tid := tid
		g.Go(func() error {
			for k := int32(1); k <= numKeys; k++ {
				if s.InsertIfAbsent(tid, k) {
					successes.inc(tid)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(numKeys), successes.get(), "exactly one winner per key")

	var want int64
	for k := int32(1); k <= numKeys; k++ {
		want += int64(k)
	}
	assert.Equal(t, want, s.SumOfKeys())
}

func TestVariantA_InvalidKeyNonStrict(t *testing.T) {
	s, err := NewVariantA(DefaultConfig(1, 16))
	require.NoError(t, err)
	assert.False(t, s.InsertIfAbsent(0, sentinelEmptyABC))
}

func TestVariantA_InvalidKeyStrictPanics(t *testing.T) {
	cfg := DefaultConfig(1, 16)
	cfg.StrictMode = true
	s, err := NewVariantA(cfg)
	require.NoError(t, err)
	assert.Panics(t, func() { s.InsertIfAbsent(0, sentinelTombstoneABC) })
}
