// Package pad provides cache-line-padded primitives used to keep hot
// counters from false-sharing a cache line with their neighbors.
package pad

import "sync/atomic"

// AtomicInt64 is an atomic 64-bit int padded to occupy its own cache line.
type AtomicInt64 struct {
	_ [56]byte
	v atomic.Int64
	_ [56]byte
}

// Load acquire-loads the value.
func (a *AtomicInt64) Load() int64 { return a.v.Load() }

// Store release-stores the value.
func (a *AtomicInt64) Store(val int64) { a.v.Store(val) }

// Add atomically adds delta and returns the new value.
func (a *AtomicInt64) Add(delta int64) int64 { return a.v.Add(delta) }

// CompareAndSwap atomically swaps old for new if the current value is old.
func (a *AtomicInt64) CompareAndSwap(old, new int64) bool {
	return a.v.CompareAndSwap(old, new)
}

// Int64 is a plain int64 padded to occupy its own cache line, for
// single-writer counters that don't need atomicity (e.g. a producer's own
// cached view of a gating sequence).
type Int64 struct {
	_   [56]byte
	Val int64
	_   [56]byte
}
