package disruptor

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/unihoper/disruptor/internal/closer"
)

const (
	// defaultWorkerWaitTimeout bounds how long an AsyncHandlerWrapper's
	// WaitFor call can block before re-checking pause/stop state. Keeping a
	// timeout on by default means a drain-to-already-claimed stop request
	// can always be observed promptly instead of depending on new data
	// arriving to unblock the wait.
	defaultWorkerWaitTimeout = 5 * time.Millisecond

	// defaultPauseCheckInterval is how often a paused worker re-polls its
	// pause flag.
	defaultPauseCheckInterval = time.Millisecond
)

// asyncHandlerWrapper runs one Handler on a dedicated goroutine against a
// ParallelDistributor's internal Sequencer, the generic form of the
// original implementation's AsyncHandler: its own consumer Sequence gates
// the producer side, and it polls a stop target instead of being killed
// out-of-band.
type asyncHandlerWrapper[T any] struct {
	handler Handler[T]
	seq     *Sequencer[T]
	cur     *Sequence

	paused     atomic.Bool
	stopAt     atomic.Int64
	barrierRef atomic.Pointer[SequenceBarrier]

	waitTimeout        time.Duration
	pauseCheckInterval time.Duration
}

func newAsyncHandlerWrapper[T any](h Handler[T], seq *Sequencer[T], waitTimeout, pauseCheckInterval time.Duration) *asyncHandlerWrapper[T] {
	w := &asyncHandlerWrapper[T]{
		handler:            h,
		seq:                seq,
		cur:                NewSequence(),
		waitTimeout:        waitTimeout,
		pauseCheckInterval: pauseCheckInterval,
	}
	w.stopAt.Store(int64(DefaultStopSignal))
	return w
}

func (w *asyncHandlerWrapper[T]) pause()  { w.paused.Store(true) }
func (w *asyncHandlerWrapper[T]) resume() { w.paused.Store(false) }

func (w *asyncHandlerWrapper[T]) signal(stop StopSignal) {
	w.stopAt.Store(int64(stop))
	if stop == StopImmediatelySignal {
		if b := w.barrierRef.Load(); b != nil {
			b.Alert()
		}
	}
}

func (w *asyncHandlerWrapper[T]) run() {
	w.handler.Start()
	defer w.handler.Join()

	barrier := w.seq.NewBarrier()
	w.barrierRef.Store(barrier)

	idx := InitialSequence
	defer func() { logWorkerStopped(StopSignal(w.stopAt.Load()), idx) }()

	for {
		for StopSignal(w.stopAt.Load()) == DefaultStopSignal && w.paused.Load() {
			time.Sleep(w.pauseCheckInterval)
		}

		if StopSignal(w.stopAt.Load()) == StopImmediatelySignal {
			return
		}

		var cursor int64
		var err error
		if w.waitTimeout > 0 {
			cursor, err = barrier.WaitForTimeout(idx+1, w.waitTimeout)
			if err == ErrAlerted {
				return
			}
			// ErrWaitTimeout: cursor is the last-observed value, which may
			// be < idx+1; the processing loop below is then a no-op and we
			// fall through to the stop check, matching the drain-with-
			// nothing-left-to-drain case.
		} else {
			cursor, err = barrier.WaitFor(idx + 1)
			if err == ErrAlerted {
				return
			}
		}

		for i := idx + 1; i <= cursor; i++ {
			w.handler.Process(w.seq.Get(i))
			idx = i
		}
		w.cur.Set(idx)

		if stop := StopSignal(w.stopAt.Load()); stop != DefaultStopSignal && idx >= int64(stop) {
			return
		}
	}
}

// ParallelDistributor runs each registered Handler on its own goroutine,
// feeding all of them from one internal multi-producer Sequencer so a
// single Distribute call fans out without any handler blocking another.
// Grounded on the original implementation's ParallelDistributor, which owns
// an internal RingBuffer<T> plus one AsyncHandler per registered handler.
type ParallelDistributor[T any] struct {
	seq      *Sequencer[T]
	mu       sync.Mutex
	wrappers []*asyncHandlerWrapper[T]
	started  closer.Latch
	wg       sync.WaitGroup
	pool     *ants.Pool

	waitTimeout        time.Duration
	pauseCheckInterval time.Duration
}

// parallelDistributorConfig collects ParallelDistributorOption settings
// before the internal Sequencer and ParallelDistributor are built.
type parallelDistributorConfig struct {
	waitTimeout        time.Duration
	pauseCheckInterval time.Duration
	internalWait       WaitStrategy
	pool               *ants.Pool
}

// ParallelDistributorOption configures a ParallelDistributor at
// construction.
type ParallelDistributorOption func(*parallelDistributorConfig)

// WithWorkerWaitTimeout overrides the default per-worker WaitFor timeout.
// Pass 0 to wait indefinitely (only safe if Signal(DefaultStopSignal) is
// never used to drain down to an already-reached target).
func WithWorkerWaitTimeout(d time.Duration) ParallelDistributorOption {
	return func(c *parallelDistributorConfig) { c.waitTimeout = d }
}

// WithPauseCheckInterval overrides how often a paused worker re-polls.
func WithPauseCheckInterval(d time.Duration) ParallelDistributorOption {
	return func(c *parallelDistributorConfig) { c.pauseCheckInterval = d }
}

// WithInternalWaitStrategy overrides the WaitStrategy used by the
// distributor's internal Sequencer. Default is BusySpinWaitStrategy.
func WithInternalWaitStrategy(w WaitStrategy) ParallelDistributorOption {
	return func(c *parallelDistributorConfig) { c.internalWait = w }
}

// WithGoroutinePool runs every worker on pool instead of a bare `go`
// statement, so many ParallelDistributors in one process can share a
// bounded set of live goroutines. Grounded on gnet's pkg/pool/goroutine
// wrapper around the same library; a worker occupies its pool slot until
// it is stopped, since asyncHandlerWrapper.run doesn't return before then.
func WithGoroutinePool(pool *ants.Pool) ParallelDistributorOption {
	return func(c *parallelDistributorConfig) { c.pool = pool }
}

// NewParallelDistributor returns a ParallelDistributor backed by an
// internal multi-producer ring of the given capacity, which must be a
// positive power of two.
func NewParallelDistributor[T any](capacity int64, opts ...ParallelDistributorOption) (*ParallelDistributor[T], error) {
	cfg := parallelDistributorConfig{
		waitTimeout:        defaultWorkerWaitTimeout,
		pauseCheckInterval: defaultPauseCheckInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	builder := NewSequencerBuilder[T](capacity).WithMultiProducer()
	if cfg.internalWait != nil {
		builder = builder.WithWaitStrategy(cfg.internalWait)
	}
	seq, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ParallelDistributor[T]{
		seq:                seq,
		pool:               cfg.pool,
		waitTimeout:        cfg.waitTimeout,
		pauseCheckInterval: cfg.pauseCheckInterval,
	}, nil
}

func (d *ParallelDistributor[T]) AddHandler(h Handler[T]) Handler[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started.IsClosed() {
		return nil
	}
	for _, w := range d.wrappers {
		if handlerIdentity[T](w.handler, h) {
			return h
		}
	}
	w := newAsyncHandlerWrapper(h, d.seq, d.waitTimeout, d.pauseCheckInterval)
	d.wrappers = append(d.wrappers, w)
	return h
}

func (d *ParallelDistributor[T]) RemoveHandler(h Handler[T]) Handler[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started.IsClosed() {
		return nil
	}
	for i, w := range d.wrappers {
		if handlerIdentity[T](w.handler, h) {
			d.wrappers = append(d.wrappers[:i], d.wrappers[i+1:]...)
			return h
		}
	}
	return nil
}

func (d *ParallelDistributor[T]) Distribute(item *T) {
	if !d.started.IsClosed() {
		return
	}
	i := d.seq.Claim()
	*d.seq.Get(i) = *item
	d.seq.Publish(i)
}

func (d *ParallelDistributor[T]) Start() {
	if !d.started.Close() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	gating := make([]*Sequence, len(d.wrappers))
	for i, w := range d.wrappers {
		gating[i] = w.cur
	}
	d.seq.SetGatingSequences(gating...)
	for _, w := range d.wrappers {
		w := w // each task must run its own wrapper, not the loop's last one
		d.wg.Add(1)
		task := func() {
			defer d.wg.Done()
			w.run()
		}
		if d.pool == nil {
			go task()
			continue
		}
		// A full non-blocking pool rejects Submit; fall back to a bare
		// goroutine so a worker is never silently dropped.
		if err := d.pool.Submit(task); err != nil {
			logWorkerPoolRejected(err)
			go task()
		}
	}
}

// Signal tells every worker to stop. DefaultStopSignal means drain through
// whatever has been claimed as of this call; StopImmediatelySignal means
// stop without draining.
func (d *ParallelDistributor[T]) Signal(stop StopSignal) {
	target := stop
	if stop == DefaultStopSignal {
		target = StopSignal(d.seq.Cursor())
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, w := range d.wrappers {
		w.signal(target)
	}
}

// SignalPauseAll pauses every worker's consumption without signaling a stop.
func (d *ParallelDistributor[T]) SignalPauseAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, w := range d.wrappers {
		w.pause()
	}
}

// SignalResumeAll resumes every paused worker.
func (d *ParallelDistributor[T]) SignalResumeAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, w := range d.wrappers {
		w.resume()
	}
}

func (d *ParallelDistributor[T]) Join() {
	d.wg.Wait()
}
