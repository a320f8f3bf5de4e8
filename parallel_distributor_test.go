package disruptor

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
)

type syncRecordingHandler struct {
	mu        sync.Mutex
	processed []int
	started   bool
	joined    bool
}

func (r *syncRecordingHandler) Process(item *int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed = append(r.processed, *item)
}
func (r *syncRecordingHandler) Start()                 { r.mu.Lock(); r.started = true; r.mu.Unlock() }
func (r *syncRecordingHandler) Signal(_ StopSignal)     {}
func (r *syncRecordingHandler) Join()                   { r.mu.Lock(); r.joined = true; r.mu.Unlock() }
func (r *syncRecordingHandler) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.processed...)
}

func TestParallelDistributor_FanOutToEachHandlerIndependently(t *testing.T) {
	d, err := NewParallelDistributor[int](16, WithWorkerWaitTimeout(time.Millisecond))
	if err != nil {
		t.Fatalf("NewParallelDistributor() error = %v", err)
	}
	h1 := &syncRecordingHandler{}
	h2 := &syncRecordingHandler{}
	d.AddHandler(h1)
	d.AddHandler(h2)
	d.Start()

	for i := 0; i < 10; i++ {
		v := i
		d.Distribute(&v)
	}

	d.Signal(DefaultStopSignal)
	d.Join()

	for _, h := range []*syncRecordingHandler{h1, h2} {
		got := h.snapshot()
		sort.Ints(got)
		if len(got) != 10 {
			t.Fatalf("handler processed %d items, want 10: %v", len(got), got)
		}
		for i, v := range got {
			if v != i {
				t.Fatalf("handler did not process every item exactly once: %v", got)
			}
		}
		if !h.started {
			t.Fatalf("handler Start() was not called")
		}
		if !h.joined {
			t.Fatalf("handler Join() was not called")
		}
	}
}

func TestParallelDistributor_WithGoroutinePoolRunsWorkersOnThePool(t *testing.T) {
	pool, err := ants.NewPool(4)
	if err != nil {
		t.Fatalf("ants.NewPool() error = %v", err)
	}
	defer pool.Release()

	d, err := NewParallelDistributor[int](16, WithWorkerWaitTimeout(time.Millisecond), WithGoroutinePool(pool))
	if err != nil {
		t.Fatalf("NewParallelDistributor() error = %v", err)
	}
	h := &syncRecordingHandler{}
	d.AddHandler(h)
	d.Start()

	for i := 0; i < 5; i++ {
		v := i
		d.Distribute(&v)
	}
	d.Signal(DefaultStopSignal)
	d.Join()

	got := h.snapshot()
	sort.Ints(got)
	if len(got) != 5 {
		t.Fatalf("handler processed %d items via the pool, want 5: %v", len(got), got)
	}
	if pool.Running() != 0 {
		t.Fatalf("pool still reports %d running workers after Join()", pool.Running())
	}
}

func TestParallelDistributor_AddHandlerAfterStartIsRejected(t *testing.T) {
	d, err := NewParallelDistributor[int](8)
	if err != nil {
		t.Fatalf("NewParallelDistributor() error = %v", err)
	}
	d.Start()
	defer func() {
		d.Signal(StopImmediatelySignal)
		d.Join()
	}()

	if got := d.AddHandler(&syncRecordingHandler{}); got != nil {
		t.Fatalf("AddHandler() after Start() = %v, want nil", got)
	}
}

func TestParallelDistributor_StopImmediatelyDoesNotRequireDraining(t *testing.T) {
	d, err := NewParallelDistributor[int](1024, WithWorkerWaitTimeout(time.Millisecond))
	if err != nil {
		t.Fatalf("NewParallelDistributor() error = %v", err)
	}
	blocked := make(chan struct{})
	release := make(chan struct{})
	h := HandlerFunc[int](func(item *int) {
		close(blocked)
		<-release
	})
	d.AddHandler(h)
	d.Start()

	v := 1
	d.Distribute(&v)
	<-blocked

	d.Signal(StopImmediatelySignal)
	close(release)

	joined := make(chan struct{})
	go func() {
		d.Join()
		close(joined)
	}()

	select {
	case <-joined:
	case <-time.After(time.Second):
		t.Fatalf("Join() never returned after StopImmediatelySignal")
	}
}

func TestParallelDistributor_PauseStopsConsumptionUntilResumed(t *testing.T) {
	d, err := NewParallelDistributor[int](16, WithWorkerWaitTimeout(time.Millisecond), WithPauseCheckInterval(time.Millisecond))
	if err != nil {
		t.Fatalf("NewParallelDistributor() error = %v", err)
	}
	h := &syncRecordingHandler{}
	d.AddHandler(h)
	d.Start()

	d.SignalPauseAll()
	v := 1
	d.Distribute(&v)

	time.Sleep(30 * time.Millisecond)
	if got := h.snapshot(); len(got) != 0 {
		t.Fatalf("handler processed %v while paused, want nothing", got)
	}

	d.SignalResumeAll()

	deadline := time.After(time.Second)
	for {
		if len(h.snapshot()) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("handler never processed the item after Resume")
		case <-time.After(time.Millisecond):
		}
	}

	d.Signal(StopImmediatelySignal)
	d.Join()
}
