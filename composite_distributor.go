package disruptor

import "time"

// CompositeDistributor is a SequentialDistributor that also knows how to
// attach a ParallelDistributor (or any other nested Distributor) as one of
// its handlers, wrapping it in a Connector. Grounded on the original
// implementation's CompositeHandler, which nests other handlers and owns
// whatever it constructs for them.
type CompositeDistributor[T any] struct {
	*SequentialDistributor[T]
}

// NewCompositeDistributor returns an empty CompositeDistributor.
func NewCompositeDistributor[T any]() *CompositeDistributor[T] {
	return &CompositeDistributor[T]{SequentialDistributor: NewSequentialDistributor[T]()}
}

// AttachParallel builds a ParallelDistributor of the given capacity,
// registers handlers on it, and attaches it (via a Connector) as the next
// handler in this CompositeDistributor's sequence. Returns the
// ParallelDistributor so the caller can additionally Pause/Resume it.
func (c *CompositeDistributor[T]) AttachParallel(capacity int64, handlers []Handler[T], opts ...ParallelDistributorOption) (*ParallelDistributor[T], error) {
	pd, err := NewParallelDistributor[T](capacity, opts...)
	if err != nil {
		return nil, err
	}
	for _, h := range handlers {
		pd.AddHandler(h)
	}
	c.AddHandler(NewConnector[T](pd))
	return pd, nil
}

// AttachAsyncSequential runs handlers as a SequentialDistributor on a
// single dedicated goroutine (rather than one goroutine per handler),
// attached as the next handler in this CompositeDistributor's sequence.
// Grounded on the original implementation's AsyncHandler wrapping a
// SequentialHandler: one thread, several handlers run in order on it.
func (c *CompositeDistributor[T]) AttachAsyncSequential(capacity int64, handlers []Handler[T], opts ...ParallelDistributorOption) (*ParallelDistributor[T], error) {
	inner := NewSequentialDistributor[T](handlers...)
	return c.AttachParallel(capacity, []Handler[T]{NewConnector[T](inner)}, opts...)
}

// handlerGroup is one stage of a CompositeDistributorBuilder: either a
// SequentialDistributor running in-thread, or a ParallelDistributor with
// its own dedicated goroutine per handler.
type handlerGroup[T any] struct {
	parallel bool
	capacity int64
	handlers []Handler[T]
	opts     []ParallelDistributorOption
}

// CompositeDistributorBuilder assembles a CompositeDistributor from an
// ordered list of handler groups, validating the group list up front
// instead of failing lazily on the first Attach call. Grounded on the
// teacher's fluent *Builder[T] construction style, generalized to a
// multi-stage pipeline of stages instead of a single ring.
type CompositeDistributorBuilder[T any] struct {
	groups []handlerGroup[T]
}

// NewCompositeDistributorBuilder returns an empty builder.
func NewCompositeDistributorBuilder[T any]() *CompositeDistributorBuilder[T] {
	return &CompositeDistributorBuilder[T]{}
}

// WithSequentialGroup adds a stage that runs handlers in-thread, in order.
func (b *CompositeDistributorBuilder[T]) WithSequentialGroup(handlers ...Handler[T]) *CompositeDistributorBuilder[T] {
	b.groups = append(b.groups, handlerGroup[T]{handlers: handlers})
	return b
}

// WithParallelGroup adds a stage that runs each handler on its own
// goroutine, fed from an internal ring of the given capacity.
func (b *CompositeDistributorBuilder[T]) WithParallelGroup(capacity int64, handlers []Handler[T], opts ...ParallelDistributorOption) *CompositeDistributorBuilder[T] {
	b.groups = append(b.groups, handlerGroup[T]{parallel: true, capacity: capacity, handlers: handlers, opts: opts})
	return b
}

// Build validates every group and assembles the CompositeDistributor.
// Returns ErrMissingHandlerGroup if no group was ever added, or
// ErrEmptyHandlerGroup if a declared group has zero handlers.
func (b *CompositeDistributorBuilder[T]) Build() (*CompositeDistributor[T], error) {
	if len(b.groups) == 0 {
		logBuildError("CompositeDistributorBuilder", ErrMissingHandlerGroup)
		return nil, ErrMissingHandlerGroup
	}
	c := NewCompositeDistributor[T]()
	for _, g := range b.groups {
		if len(g.handlers) == 0 {
			logBuildError("CompositeDistributorBuilder", ErrEmptyHandlerGroup)
			return nil, ErrEmptyHandlerGroup
		}
		if !g.parallel {
			for _, h := range g.handlers {
				c.AddHandler(h)
			}
			continue
		}
		if _, err := c.AttachParallel(g.capacity, g.handlers, g.opts...); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// defaultDrainGrace is the grace period StopDefault allows for a drain
// before escalating to an immediate stop.
const defaultDrainGrace = 2 * time.Second

// StopDefault is Stop with defaultDrainGrace.
func (c *CompositeDistributor[T]) StopDefault() {
	c.Stop(defaultDrainGrace)
}

// Stop signals a drain-to-current-cursor, waits up to grace for every
// handler to finish, and escalates to an immediate stop if that deadline
// passes. grace <= 0 means wait indefinitely for the drain.
func (c *CompositeDistributor[T]) Stop(grace time.Duration) {
	c.Signal(DefaultStopSignal)
	if grace <= 0 {
		c.Join()
		return
	}
	done := make(chan struct{})
	go func() {
		c.Join()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(grace):
		c.Signal(StopImmediatelySignal)
		<-done
	}
}
