package disruptor

import "time"

// SequenceBarrier is a consumer's view over a Sequencer's cursor plus any
// upstream consumer Sequences it additionally depends on. Stateless between
// calls except for the shared alert flag.
type SequenceBarrier struct {
	cur        *Sequence
	dependents []*Sequence
	wait       WaitStrategy
	claim      claimStrategy
	alert      alertFlag
}

func newSequenceBarrier(claim claimStrategy, wait WaitStrategy, dependents []*Sequence) *SequenceBarrier {
	return &SequenceBarrier{
		cur:        claim.cursor(),
		dependents: dependents,
		wait:       wait,
		claim:      claim,
	}
}

// WaitFor blocks until a value >= n is visible, or the barrier is alerted.
// The returned value is the highest contiguously-published index actually
// observed, which is >= n on success.
func (b *SequenceBarrier) WaitFor(n int64) (int64, error) {
	for {
		raw, res := b.wait.WaitFor(n, b.cur, b.dependents, &b.alert)
		if res == waitAlerted {
			return raw, ErrAlerted
		}
		// A multi-producer cursor can be ahead of the published slots; keep
		// waiting until n itself has been published.
		if hi := b.claim.highestPublishedSequence(n, raw); hi >= n {
			return hi, nil
		}
	}
}

// WaitForTimeout is WaitFor bounded by timeout. On timeout it returns the
// last observed value (which may be < n) and ErrWaitTimeout.
func (b *SequenceBarrier) WaitForTimeout(n int64, timeout time.Duration) (int64, error) {
	deadline := time.Now().Add(timeout)
	for {
		raw, res := b.wait.WaitForTimeout(n, b.cur, b.dependents, &b.alert, time.Until(deadline))
		switch res {
		case waitAlerted:
			return raw, ErrAlerted
		case waitTimedOut:
			return raw, ErrWaitTimeout
		}
		hi := b.claim.highestPublishedSequence(n, raw)
		if hi >= n {
			return hi, nil
		}
		if !time.Now().Before(deadline) {
			return hi, ErrWaitTimeout
		}
	}
}

// Alert tells any in-flight or future WaitFor/WaitForTimeout call to return
// promptly with ErrAlerted.
func (b *SequenceBarrier) Alert() {
	b.alert.set(true)
	b.wait.SignalAllWhenBlocking()
}

// ClearAlert resets the alert flag.
func (b *SequenceBarrier) ClearAlert() {
	b.alert.set(false)
}

// Cursor is a convenience passthrough to the bound cursor/dependents
// minimum, without waiting.
func (b *SequenceBarrier) Cursor() int64 {
	return visibleCursor(b.cur, b.dependents)
}
