package disruptor

// SingleProducerBuilder builds a SingleProducer, a single-producer,
// single-consumer pull queue. Kept as a thin convenience wrapper over the
// generic Sequencer/SequenceBarrier core for callers who just want
// Produce/Consume and don't need direct Claim/Publish access, matching the
// teacher's original SingleProducer shape.
type SingleProducerBuilder[T any] struct {
	size  int64
	yield func(spins int)
	wait  WaitStrategy
}

// NewSingleProducerBuilder returns a builder of SingleProducer.
func NewSingleProducerBuilder[T any]() *SingleProducerBuilder[T] {
	return &SingleProducerBuilder[T]{}
}

// WithSize sets the ring buffer size. size must be a power of two.
func (b *SingleProducerBuilder[T]) WithSize(size int64) *SingleProducerBuilder[T] {
	b.size = size
	return b
}

// WithYield customizes how Produce yields while the ring is full. The
// default matches the Sequencer's default producer yield.
func (b *SingleProducerBuilder[T]) WithYield(yield func(spins int)) *SingleProducerBuilder[T] {
	b.yield = yield
	return b
}

// WithWaitStrategy customizes how Consume waits for new data. Default is
// BusySpinWaitStrategy.
func (b *SingleProducerBuilder[T]) WithWaitStrategy(w WaitStrategy) *SingleProducerBuilder[T] {
	b.wait = w
	return b
}

// Build builds the SingleProducer. Returns ErrCapacity if size is not a
// positive power of two.
func (b *SingleProducerBuilder[T]) Build() (*SingleProducer[T], error) {
	builder := NewSequencerBuilder[T](b.size)
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
	return &SingleProducer[T]{
		seq:      seq,
		barrier:  seq.NewBarrier(),
		consumer: consumer,
		nextRead: InitialSequence,
	}, nil
}

// SingleProducer is a single-producer, single-consumer lock-free ring
// buffer exposing a pull API. Produce and Consume must each be called from
// only one goroutine at a time; calling Produce from more than one
// goroutine concurrently is the one invariant this type cannot check for
// you, the same contract the teacher's version carries.
type SingleProducer[T any] struct {
	seq      *Sequencer[T]
	barrier  *SequenceBarrier
	consumer *Sequence
	nextRead int64
}

// Produce adds an item to the buffer, blocking until the buffer is no
// longer full according to the Sequencer's configured yield.
func (sp *SingleProducer[T]) Produce(data T) {
	i := sp.seq.Claim()
	*sp.seq.Get(i) = data
	sp.seq.Publish(i)
}

// Consume retrieves the next item from the buffer, blocking until data is
// available according to the Sequencer's configured wait strategy.
func (sp *SingleProducer[T]) Consume() T {
	target := sp.nextRead + 1
	// Nothing ever calls Alert on this barrier, since a plain
	// producer/consumer queue has no cooperative-cancellation surface, so
	// the error return is always nil here.
	_, _ = sp.barrier.WaitFor(target)
	data := *sp.seq.Get(target)
	sp.nextRead = target
	sp.consumer.Set(target)
	return data
}
