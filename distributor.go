package disruptor

import "reflect"

// Distributor fans a payload out to one or more Handlers and drives their
// lifecycle. Mirrors the original implementation's handler.hpp composition:
// SingleDistributor wraps exactly one handler, SequentialDistributor wraps
// many run in-thread in registration order, and ParallelDistributor (in
// parallel_distributor.go) runs each on its own goroutine.
type Distributor[T any] interface {
	// AddHandler registers h. Returns h on success, and also when h is
	// already registered (idempotent no-op). Returns nil if h was rejected
	// (SingleDistributor already holds a different handler, or a
	// ParallelDistributor has already started). Must be called before Start.
	AddHandler(h Handler[T]) Handler[T]

	// RemoveHandler unregisters h. Returns h if it was present and removed,
	// nil otherwise. Must be called before Start.
	RemoveHandler(h Handler[T]) Handler[T]

	Distribute(item *T)
	Start()
	Signal(stop StopSignal)
	Join()
}

// handlerIdentity reports whether a and b are the same registered handler,
// without risking the runtime panic that comparing two interface values
// holding an uncomparable dynamic type (e.g. HandlerFunc) would cause.
func handlerIdentity[T any](a, b Handler[T]) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || !ta.Comparable() {
		return false
	}
	if ta != reflect.TypeOf(b) {
		return false
	}
	return a == b
}

// SingleDistributor holds at most one Handler, forwarding directly to it.
// Grounded on the teacher's SingleReaderFunc/SingleConsumer pattern of a
// one-handler ring consumer, generalized to the Handler[T] interface.
type SingleDistributor[T any] struct {
	h Handler[T]
}

// NewSingleDistributor returns a SingleDistributor, optionally pre-loaded
// with h (nil is allowed; AddHandler can register one later).
func NewSingleDistributor[T any](h Handler[T]) *SingleDistributor[T] {
	return &SingleDistributor[T]{h: h}
}

func (d *SingleDistributor[T]) AddHandler(h Handler[T]) Handler[T] {
	if d.h != nil && !handlerIdentity(d.h, h) {
		return nil
	}
	d.h = h
	return h
}

func (d *SingleDistributor[T]) RemoveHandler(h Handler[T]) Handler[T] {
	if d.h == nil || !handlerIdentity(d.h, h) {
		return nil
	}
	d.h = nil
	return h
}

func (d *SingleDistributor[T]) Distribute(item *T) {
	if d.h != nil {
		d.h.Process(item)
	}
}

func (d *SingleDistributor[T]) Start() {
	if d.h != nil {
		d.h.Start()
	}
}

func (d *SingleDistributor[T]) Signal(stop StopSignal) {
	if d.h != nil {
		d.h.Signal(stop)
	}
}

func (d *SingleDistributor[T]) Join() {
	if d.h != nil {
		d.h.Join()
	}
}

// SequentialDistributor runs every registered Handler in-thread, in
// registration order, for each Distribute call. Grounded on the original
// implementation's SequentialHandler, which composes several handlers
// without spawning threads of its own.
type SequentialDistributor[T any] struct {
	handlers []Handler[T]
}

// NewSequentialDistributor returns a SequentialDistributor pre-loaded with
// handlers, in the given order.
func NewSequentialDistributor[T any](handlers ...Handler[T]) *SequentialDistributor[T] {
	d := &SequentialDistributor[T]{}
	for _, h := range handlers {
		d.AddHandler(h)
	}
	return d
}

func (d *SequentialDistributor[T]) AddHandler(h Handler[T]) Handler[T] {
	for _, existing := range d.handlers {
		if handlerIdentity(existing, h) {
			return h
		}
	}
	d.handlers = append(d.handlers, h)
	return h
}

func (d *SequentialDistributor[T]) RemoveHandler(h Handler[T]) Handler[T] {
	for i, existing := range d.handlers {
		if handlerIdentity(existing, h) {
			d.handlers = append(d.handlers[:i], d.handlers[i+1:]...)
			return h
		}
	}
	return nil
}

func (d *SequentialDistributor[T]) Distribute(item *T) {
	for _, h := range d.handlers {
		h.Process(item)
	}
}

func (d *SequentialDistributor[T]) Start() {
	for _, h := range d.handlers {
		h.Start()
	}
}

func (d *SequentialDistributor[T]) Signal(stop StopSignal) {
	for _, h := range d.handlers {
		h.Signal(stop)
	}
}

func (d *SequentialDistributor[T]) Join() {
	for _, h := range d.handlers {
		h.Join()
	}
}

// Connector adapts a Distributor[T] into a Handler[T], letting a
// CompositeDistributor nest a ParallelDistributor (or any other
// Distributor) as a leaf handler of an outer SequentialDistributor. This is
// the generic form of the original implementation's AsyncGateway: it
// forwards Process to Distribute and every lifecycle call straight through.
type Connector[T any] struct {
	d Distributor[T]
}

// NewConnector wraps d as a Handler.
func NewConnector[T any](d Distributor[T]) *Connector[T] {
	return &Connector[T]{d: d}
}

func (c *Connector[T]) Process(item *T)        { c.d.Distribute(item) }
func (c *Connector[T]) Start()                 { c.d.Start() }
func (c *Connector[T]) Signal(stop StopSignal) { c.d.Signal(stop) }
func (c *Connector[T]) Join()                  { c.d.Join() }
