package disruptor

import "runtime"

// SequencerBuilder builds a Sequencer[T], the generic core the rest of this
// module's Handler/Distributor composition and the SingleProducer/
// MultiProducer convenience wrappers are all built on. Mirrors the
// teacher's fluent Builder[T]/SingleProducerBuilder[T] construction style.
type SequencerBuilder[T any] struct {
	capacity      int64
	multiProducer bool
	wait          WaitStrategy
	producerYield func(spins int)
}

// NewSequencerBuilder returns a builder for a Sequencer of the given
// capacity, which must be a positive power of two.
func NewSequencerBuilder[T any](capacity int64) *SequencerBuilder[T] {
	return &SequencerBuilder[T]{capacity: capacity}
}

// WithMultiProducer selects the multi-producer claim strategy. Default is
// single-producer.
func (b *SequencerBuilder[T]) WithMultiProducer() *SequencerBuilder[T] {
	b.multiProducer = true
	return b
}

// WithWaitStrategy overrides the consumer-side WaitStrategy. Default is
// BusySpinWaitStrategy.
func (b *SequencerBuilder[T]) WithWaitStrategy(w WaitStrategy) *SequencerBuilder[T] {
	b.wait = w
	return b
}

// WithProducerYield overrides how Claim yields when the ring is full.
// yield receives the number of times it has been called so far within the
// current Claim call. Default spins 1<<14 times between each
// runtime.Gosched, matching the teacher's default writerYield.
func (b *SequencerBuilder[T]) WithProducerYield(yield func(spins int)) *SequencerBuilder[T] {
	b.producerYield = yield
	return b
}

// Build validates the configuration and returns the Sequencer.
func (b *SequencerBuilder[T]) Build() (*Sequencer[T], error) {
	if b.capacity <= 0 || b.capacity&(b.capacity-1) != 0 {
		logBuildError("SequencerBuilder", ErrCapacity)
		return nil, ErrCapacity
	}
	wait := b.wait
	if wait == nil {
		wait = BusySpinWaitStrategy{}
	}
	yield := b.producerYield
	if yield == nil {
		yield = func(spins int) {
			const spinMask = (1 << 14) - 1
			if spins&spinMask == 0 {
				runtime.Gosched()
			}
		}
	}
	var claim claimStrategy
	if b.multiProducer {
		claim = newMultiProducerClaim(b.capacity, yield)
	} else {
		claim = newSingleProducerClaim(b.capacity, yield)
	}
	return &Sequencer[T]{
		capacity: b.capacity,
		mask:     b.capacity - 1,
		buffer:   make([]T, b.capacity),
		claim:    claim,
		wait:     wait,
	}, nil
}
