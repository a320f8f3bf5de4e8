package disruptor

import "sync/atomic"

// Sequencer owns a fixed-size ring of payload slots, a claim strategy, and
// a wait strategy. Producers call Claim/Publish; consumers build
// SequenceBarriers from it and read slots with Get.
type Sequencer[T any] struct {
	capacity int64
	mask     int64
	buffer   []T
	claim    claimStrategy
	wait     WaitStrategy
	claiming atomic.Bool
}

// Capacity returns the ring's fixed size.
func (s *Sequencer[T]) Capacity() int64 { return s.capacity }

// Claim reserves the next single index for writing. Blocks according to
// the Sequencer's wait/yield configuration until capacity is available.
func (s *Sequencer[T]) Claim() int64 {
	_, hi := s.ClaimN(1)
	return hi
}

// ClaimN reserves n contiguous indices, returning the inclusive range
// [lo, hi].
func (s *Sequencer[T]) ClaimN(n int64) (lo, hi int64) {
	s.claiming.Store(true)
	hi = s.claim.claim(n)
	lo = hi - n + 1
	return lo, hi
}

// Publish makes index i visible to consumers.
func (s *Sequencer[T]) Publish(i int64) {
	s.PublishRange(i, i)
}

// PublishRange makes every index in [lo, hi] visible to consumers.
func (s *Sequencer[T]) PublishRange(lo, hi int64) {
	s.claim.publish(lo, hi)
	s.wait.SignalAllWhenBlocking()
}

// Get returns an unchecked pointer into the slot array at i & (capacity-1).
// The caller must have claimed i (for a write) or observed i published via
// a SequenceBarrier (for a read).
func (s *Sequencer[T]) Get(i int64) *T {
	return &s.buffer[i&s.mask]
}

// Cursor acquire-loads the sequencer's cursor. For a multi-producer
// Sequencer this is the highest *claimed* index, not necessarily the
// highest contiguously published one; go through a SequenceBarrier to
// observe the latter.
func (s *Sequencer[T]) Cursor() int64 {
	return s.claim.cursor().Get()
}

// SetGatingSequences replaces the gating set: the consumer Sequences that
// bound how far ahead producers may claim. Must be called before the first
// Claim; calling it after panics, since that ordering is a programmer
// error the design does not attempt to detect on the hot path otherwise.
func (s *Sequencer[T]) SetGatingSequences(gating ...*Sequence) {
	if s.claiming.Load() {
		panic("disruptor: SetGatingSequences called after Claim")
	}
	s.claim.setGatingSequences(gating)
}

// NewBarrier returns a SequenceBarrier bound to this Sequencer's cursor,
// claim strategy, and wait strategy, additionally gated on dependents (for
// pipelined consumer stages).
func (s *Sequencer[T]) NewBarrier(dependents ...*Sequence) *SequenceBarrier {
	return newSequenceBarrier(s.claim, s.wait, dependents)
}
