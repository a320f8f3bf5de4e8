// Package avail implements the multi-producer availability buffer: a
// per-slot "which lap published this slot" marker that lets a barrier
// resolve the highest contiguously-published index without the producers
// having to race each other to advance a shared cursor.
package avail

import "sync/atomic"

// Buffer tracks, for each physical slot, which lap (sequence >> indexShift)
// last published into it.
type Buffer struct {
	flags      []int32
	indexMask  int64
	indexShift uint
}

// New returns a Buffer sized for a ring of the given capacity (a power of
// two) with the given bit-shift (log2(capacity)) used to compute laps.
func New(capacity int64, indexShift uint) *Buffer {
	b := &Buffer{
		flags:      make([]int32, capacity),
		indexMask:  capacity - 1,
		indexShift: indexShift,
	}
	for i := range b.flags {
		b.flags[i] = -1
	}
	return b
}

func (b *Buffer) index(seq int64) int64 { return seq & b.indexMask }
func (b *Buffer) lap(seq int64) int32   { return int32(seq >> b.indexShift) }

// SetAvailable marks seq as published.
func (b *Buffer) SetAvailable(seq int64) {
	atomic.StoreInt32(&b.flags[b.index(seq)], b.lap(seq))
}

// IsAvailable reports whether seq has been published.
func (b *Buffer) IsAvailable(seq int64) bool {
	return atomic.LoadInt32(&b.flags[b.index(seq)]) == b.lap(seq)
}

// HighestContiguous scans forward from lowerBound through availableSequence
// (inclusive) and returns the highest index such that every index in
// [lowerBound, that index] is available. Returns lowerBound-1 if lowerBound
// itself isn't available yet.
func (b *Buffer) HighestContiguous(lowerBound, availableSequence int64) int64 {
	for seq := lowerBound; seq <= availableSequence; seq++ {
		if !b.IsAvailable(seq) {
			return seq - 1
		}
	}
	return availableSequence
}
