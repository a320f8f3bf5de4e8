package disruptor

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/unihoper/disruptor/internal/gate"
)

// waitResult distinguishes a normal return from a timeout or an alert.
type waitResult int

const (
	waitOK waitResult = iota
	waitTimedOut
	waitAlerted
)

// alertFlag is the shared cooperative-cancellation flag a SequenceBarrier
// hands to its WaitStrategy on every call.
type alertFlag struct {
	v atomic.Bool
}

func (a *alertFlag) set(v bool) { a.v.Store(v) }
func (a *alertFlag) isSet() bool { return a.v.Load() }

// WaitStrategy blocks a consumer until a target index is visible, subject
// to an optional timeout and a cooperative alert. Implementations must be
// safe for concurrent use by multiple barriers built atop the same
// Sequencer.
type WaitStrategy interface {
	// WaitFor blocks until target is visible given dependents, or the
	// barrier is alerted.
	WaitFor(target int64, cursor *Sequence, dependents []*Sequence, alert *alertFlag) (int64, waitResult)

	// WaitForTimeout is WaitFor bounded by timeout. On timeout it returns
	// the last observed value (which may be < target) and waitTimedOut.
	WaitForTimeout(target int64, cursor *Sequence, dependents []*Sequence, alert *alertFlag, timeout time.Duration) (int64, waitResult)

	// SignalAllWhenBlocking wakes any waiters parked on a condition
	// variable. A no-op for spin/yield/sleep strategies. Called by every
	// Publish.
	SignalAllWhenBlocking()
}

// visibleCursor computes min(cursor.Get(), dependents...), the position a
// consumer may not read past.
func visibleCursor(cursor *Sequence, dependents []*Sequence) int64 {
	if len(dependents) == 0 {
		return cursor.Get()
	}
	seqs := make([]gate.Sequence, 0, len(dependents)+1)
	seqs = append(seqs, cursor)
	for _, d := range dependents {
		seqs = append(seqs, d)
	}
	return gate.Minimum(seqs)
}

// BusySpinWaitStrategy is the tightest, lowest-latency wait: a pure
// acquire-load loop with no yielding. The default for latency-sensitive
// rings, including every internal ParallelDistributor ring.
type BusySpinWaitStrategy struct{}

func (BusySpinWaitStrategy) WaitFor(target int64, cursor *Sequence, dependents []*Sequence, alert *alertFlag) (int64, waitResult) {
	for {
		if alert.isSet() {
			return visibleCursor(cursor, dependents), waitAlerted
		}
		if v := visibleCursor(cursor, dependents); v >= target {
			return v, waitOK
		}
	}
}

func (BusySpinWaitStrategy) WaitForTimeout(target int64, cursor *Sequence, dependents []*Sequence, alert *alertFlag, timeout time.Duration) (int64, waitResult) {
	deadline := time.Now().Add(timeout)
	for {
		if alert.isSet() {
			return visibleCursor(cursor, dependents), waitAlerted
		}
		v := visibleCursor(cursor, dependents)
		if v >= target {
			return v, waitOK
		}
		if time.Now().After(deadline) {
			return v, waitTimedOut
		}
	}
}

func (BusySpinWaitStrategy) SignalAllWhenBlocking() {}

// YieldingWaitStrategy spins for a bounded number of iterations, then
// yields the goroutine via runtime.Gosched, matching the teacher's default
// writerYield closure (spin mask before Gosched).
type YieldingWaitStrategy struct {
	// SpinTries is how many busy iterations run before each Gosched. Zero
	// means the default of 100, mirroring the teacher's 1<<14 spin mask
	// scaled down for a yield-class strategy rather than a pure spin.
	SpinTries int
}

func (y YieldingWaitStrategy) spinTries() int {
	if y.SpinTries > 0 {
		return y.SpinTries
	}
	return 100
}

func (y YieldingWaitStrategy) WaitFor(target int64, cursor *Sequence, dependents []*Sequence, alert *alertFlag) (int64, waitResult) {
	tries := y.spinTries()
	counter := 0
	for {
		if alert.isSet() {
			return visibleCursor(cursor, dependents), waitAlerted
		}
		if v := visibleCursor(cursor, dependents); v >= target {
			return v, waitOK
		}
		counter++
		if counter >= tries {
			counter = 0
			runtime.Gosched()
		}
	}
}

func (y YieldingWaitStrategy) WaitForTimeout(target int64, cursor *Sequence, dependents []*Sequence, alert *alertFlag, timeout time.Duration) (int64, waitResult) {
	tries := y.spinTries()
	counter := 0
	deadline := time.Now().Add(timeout)
	for {
		if alert.isSet() {
			return visibleCursor(cursor, dependents), waitAlerted
		}
		v := visibleCursor(cursor, dependents)
		if v >= target {
			return v, waitOK
		}
		if time.Now().After(deadline) {
			return v, waitTimedOut
		}
		counter++
		if counter >= tries {
			counter = 0
			runtime.Gosched()
		}
	}
}

func (YieldingWaitStrategy) SignalAllWhenBlocking() {}

// SleepingWaitStrategy naps between checks, trading latency for near-zero
// CPU usage while still avoiding a mutex. Grounded in the teacher's
// internal/reader 50-microsecond sleep-on-empty idiom.
type SleepingWaitStrategy struct {
	// Interval between checks. Zero means the teacher's default of 50µs.
	Interval time.Duration
}

func (s SleepingWaitStrategy) interval() time.Duration {
	if s.Interval > 0 {
		return s.Interval
	}
	return 50 * time.Microsecond
}

func (s SleepingWaitStrategy) WaitFor(target int64, cursor *Sequence, dependents []*Sequence, alert *alertFlag) (int64, waitResult) {
	for {
		if alert.isSet() {
			return visibleCursor(cursor, dependents), waitAlerted
		}
		if v := visibleCursor(cursor, dependents); v >= target {
			return v, waitOK
		}
		time.Sleep(s.interval())
	}
}

func (s SleepingWaitStrategy) WaitForTimeout(target int64, cursor *Sequence, dependents []*Sequence, alert *alertFlag, timeout time.Duration) (int64, waitResult) {
	deadline := time.Now().Add(timeout)
	for {
		if alert.isSet() {
			return visibleCursor(cursor, dependents), waitAlerted
		}
		v := visibleCursor(cursor, dependents)
		if v >= target {
			return v, waitOK
		}
		if time.Now().After(deadline) {
			return v, waitTimedOut
		}
		time.Sleep(s.interval())
	}
}

func (SleepingWaitStrategy) SignalAllWhenBlocking() {}

// BlockingWaitStrategy parks waiters on a condition variable and wakes them
// when a producer publishes. Lowest CPU usage, highest latency; required
// for WaitForTimeout users who want the goroutine fully descheduled rather
// than polling.
type BlockingWaitStrategy struct {
	mu   sync.Mutex
	cond *sync.Cond
}

// NewBlockingWaitStrategy returns a ready-to-use BlockingWaitStrategy.
func NewBlockingWaitStrategy() *BlockingWaitStrategy {
	w := &BlockingWaitStrategy{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *BlockingWaitStrategy) WaitFor(target int64, cursor *Sequence, dependents []*Sequence, alert *alertFlag) (int64, waitResult) {
	if v := visibleCursor(cursor, dependents); v >= target {
		return v, waitOK
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		if alert.isSet() {
			return visibleCursor(cursor, dependents), waitAlerted
		}
		if v := visibleCursor(cursor, dependents); v >= target {
			return v, waitOK
		}
		w.cond.Wait()
	}
}

func (w *BlockingWaitStrategy) WaitForTimeout(target int64, cursor *Sequence, dependents []*Sequence, alert *alertFlag, timeout time.Duration) (int64, waitResult) {
	if v := visibleCursor(cursor, dependents); v >= target {
		return v, waitOK
	}
	deadline := time.Now().Add(timeout)
	timer := time.AfterFunc(timeout, w.SignalAllWhenBlocking)
	defer timer.Stop()
	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		if alert.isSet() {
			return visibleCursor(cursor, dependents), waitAlerted
		}
		v := visibleCursor(cursor, dependents)
		if v >= target {
			return v, waitOK
		}
		if !time.Now().Before(deadline) {
			return v, waitTimedOut
		}
		w.cond.Wait()
	}
}

// SignalAllWhenBlocking wakes every waiter. Called by Publish after every
// release-store of the cursor/availability buffer.
func (w *BlockingWaitStrategy) SignalAllWhenBlocking() {
	w.mu.Lock()
	w.cond.Broadcast()
	w.mu.Unlock()
}
