// hashing.go: shared sentinels and hash mixer for every variant.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package intset

// Sentinels for variants A, B, and C: legal keys are any int32 other than
// these two.
const (
	sentinelEmptyABC     int32 = -2
	sentinelTombstoneABC int32 = -1
)

// Sentinels and mark bit for variant D: legal keys are integers in
// [1, 0x7FFFFFFE] with the high bit clear.
const (
	sentinelEmptyD     int32 = 0
	sentinelTombstoneD int32 = 0x7FFFFFFF
	markedMask         int32 = -0x80000000 // high bit set, i.e. 0x80000000 as int32
)

// mix is the murmur3 32-bit finalizer. Grounded on the original source's
// murmur3(key) (util.h, not retrieved, but its call sites in
// alg_a.h..alg_d.h confirm a 32-bit finalizer over the raw key); this is
// the textbook finalizer that function wraps.
func mix(key int32) uint32 {
	h := uint32(key)
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// isValidKeyABC reports whether key is a legal user key for variants A/B/C.
func isValidKeyABC(key int32) bool {
	return key != sentinelEmptyABC && key != sentinelTombstoneABC
}

// isValidKeyD reports whether key is a legal user key for variant D: in
// [1, 0x7FFFFFFE] with the high bit clear.
func isValidKeyD(key int32) bool {
	if key&markedMask != 0 {
		return false
	}
	return key != sentinelEmptyD && key != sentinelTombstoneD
}
