package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"

	"golang.org/x/exp/rand"
)

// Sample returns k items drawn uniformly without replacement, in draw order.
// When k is not smaller than len(items) a copy of items is returned unchanged.
func Sample[T any](rng *rand.Rand, items []T, k int) []T {
	if k <= 0 || k >= len(items) {
		return append([]T(nil), items...)
	}
	picked := make([]T, 0, k)
	for _, i := range rng.Perm(len(items))[:k] {
		picked = append(picked, items[i])
	}
	return picked
}

// FirstMax returns the index of the first item with the strictly largest
// value, or -1 for an empty slice.
func FirstMax[T any](items []T, value func(T) int) int {
	best := -1
	var bestValue int
	for i, item := range items {
		if v := value(item); best < 0 || v > bestValue {
			best = i
			bestValue = v
		}
	}
	return best
}

// NewSeed reads a seed from crypto/rand, falling back to the clock.
func NewSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Mix derives an independent seed for the given coordinates (splitmix64).
func Mix(seed uint64, coords ...uint64) uint64 {
	x := seed
	for _, c := range coords {
		x += 0x9e3779b97f4a7c15 ^ c
		x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
		x = (x ^ (x >> 27)) * 0x94d049bb133111eb
		x ^= x >> 31
	}
	return x
}
