package disruptor

import "github.com/unihoper/disruptor/internal/pad"

// InitialSequence is the value every Sequence starts at: "no index has been
// published or consumed yet".
const InitialSequence int64 = -1

// Sequence is a cache-line-padded atomic counter shared between exactly one
// writer and arbitrarily many readers. A Sequencer's cursor and every
// consumer's position are Sequences.
type Sequence struct {
	v pad.AtomicInt64
}

// NewSequence returns a Sequence initialized to InitialSequence.
func NewSequence() *Sequence {
	s := &Sequence{}
	s.v.Store(InitialSequence)
	return s
}

// Get acquire-loads the current value.
func (s *Sequence) Get() int64 { return s.v.Load() }

// Load is an alias for Get, so *Sequence satisfies gate.Sequence.
func (s *Sequence) Load() int64 { return s.Get() }

// Set release-stores v.
func (s *Sequence) Set(v int64) { s.v.Store(v) }

// IncrementAndGet adds delta and returns the new value.
func (s *Sequence) IncrementAndGet(delta int64) int64 { return s.v.Add(delta) }

// CompareAndSwap atomically sets the value to new if it is currently old.
func (s *Sequence) CompareAndSwap(old, new int64) bool {
	return s.v.CompareAndSwap(old, new)
}
