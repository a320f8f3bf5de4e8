package disruptor

// MultiProducerBuilder builds a MultiProducer, a multi-producer,
// single-consumer pull queue. Kept as a thin convenience wrapper over the
// generic Sequencer/SequenceBarrier core configured for multiple producers,
// matching the teacher's original MultiProducer shape.
type MultiProducerBuilder[T any] struct {
	size  int64
	yield func(spins int)
	wait  WaitStrategy
}

// NewMultiProducerBuilder returns a builder of MultiProducer.
func NewMultiProducerBuilder[T any]() *MultiProducerBuilder[T] {
	return &MultiProducerBuilder[T]{}
}

// WithSize sets the ring buffer size. size must be a power of two.
func (b *MultiProducerBuilder[T]) WithSize(size int64) *MultiProducerBuilder[T] {
	b.size = size
	return b
}

// WithYield customizes how Produce yields while the ring is full, or while
// racing other producers for the next claim.
func (b *MultiProducerBuilder[T]) WithYield(yield func(spins int)) *MultiProducerBuilder[T] {
	b.yield = yield
	return b
}

// WithWaitStrategy customizes how Consume waits for new data. Default is
// BusySpinWaitStrategy.
func (b *MultiProducerBuilder[T]) WithWaitStrategy(w WaitStrategy) *MultiProducerBuilder[T] {
	b.wait = w
	return b
}

// Build builds the MultiProducer. Returns ErrCapacity if size is not a
// positive power of two.
func (b *MultiProducerBuilder[T]) Build() (*MultiProducer[T], error) {
	builder := NewSequencerBuilder[T](b.size).WithMultiProducer()
	if b.yield != nil {
		builder = builder.WithProducerYield(b.yield)
	}
	if b.wait != nil {
		builder = builder.WithWaitStrategy(b.wait)
	}
	seq, err := builder.Build()
	if err != nil {
		return nil, err
	}
	consumer := NewSequence()
	seq.SetGatingSequences(consumer)
	return &MultiProducer[T]{
		seq:      seq,
		barrier:  seq.NewBarrier(),
		consumer: consumer,
		nextRead: InitialSequence,
	}, nil
}

// MultiProducer is a multi-producer, single-consumer lock-free ring buffer
// exposing a pull API. Produce is safe to call concurrently from any number
// of goroutines; Consume must only ever be called from one goroutine at a
// time, the same single-consumer contract the teacher's version carries.
type MultiProducer[T any] struct {
	seq      *Sequencer[T]
	barrier  *SequenceBarrier
	consumer *Sequence
	nextRead int64
}

// Produce adds an item to the buffer, blocking until the buffer is no
// longer full according to the Sequencer's configured yield.
func (mp *MultiProducer[T]) Produce(data T) {
	i := mp.seq.Claim()
	*mp.seq.Get(i) = data
	mp.seq.Publish(i)
}

// Consume retrieves the next item from the buffer, blocking until data is
// available according to the Sequencer's configured wait strategy.
func (mp *MultiProducer[T]) Consume() T {
	target := mp.nextRead + 1
	_, _ = mp.barrier.WaitFor(target)
	data := *mp.seq.Get(target)
	mp.nextRead = target
	mp.consumer.Set(target)
	return data
}
