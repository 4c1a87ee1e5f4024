// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package intset

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestPaddedCounterLane_FillsCacheLine(t *testing.T) {
	var lane paddedCounterLane
	assert.GreaterOrEqual(t, unsafe.Sizeof(lane), uintptr(cacheLineSize),
		"each lane must occupy at least one cache line to avoid false sharing")
}

func TestStripedCounter_IncGet(t *testing.T) {
	c := newStripedCounter(4)
	assert.Equal(t, int64(0), c.get())

	c.inc(0)
	c.inc(1)
	c.inc(1)
	c.inc(3)
	assert.Equal(t, int64(4), c.get())
}

func TestStripedCounter_ConcurrentIncrements(t *testing.T) {
	const numThreads = 8
	const perThread = 5000
	c := newStripedCounter(numThreads)

	var g errgroup.Group
	for tid := 0; tid < numThreads; tid++ {
		tid := tid
		g.Go(func() error {
			for i := 0; i < perThread; i++ {
				c.inc(tid)
			}
			return nil
		})
	}
	require := assert.New(t)
	require.NoError(g.Wait())
	require.Equal(int64(numThreads*perThread), c.get())
}
