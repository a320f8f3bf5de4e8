package disruptor

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleProducerClaim_ClaimWithoutGating(t *testing.T) {
	c := newSingleProducerClaim(8, func(int) {})
	if got := c.claim(1); got != 0 {
		t.Fatalf("first claim(1) = %d, want 0", got)
	}
	if got := c.claim(3); got != 3 {
		t.Fatalf("claim(3) = %d, want 3", got)
	}
}

func TestSingleProducerClaim_PublishSetsCursor(t *testing.T) {
	c := newSingleProducerClaim(8, func(int) {})
	c.claim(4)
	c.publish(0, 3)
	if got := c.cursor().Get(); got != 3 {
		t.Fatalf("cursor().Get() = %d, want 3", got)
	}
}

func TestSingleProducerClaim_GatingBlocksWhenRingFull(t *testing.T) {
	var spins atomic.Int64
	c := newSingleProducerClaim(2, func(int) { spins.Add(1) })
	consumer := NewSequence()
	c.setGatingSequences([]*Sequence{consumer})

	// Fill both slots: next becomes 1 (indices 0,1).
	c.claim(2)

	released := make(chan struct{})
	go func() {
		// Requesting one more slot needs consumer to have read index 0.
		c.claim(1)
		close(released)
	}()

	for spins.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	select {
	case <-released:
		t.Fatalf("claim(1) returned before the gating consumer advanced")
	default:
	}

	consumer.Set(0)

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatalf("claim(1) never returned after consumer advanced")
	}
}

func TestSingleProducerClaim_HighestPublishedSequenceIsIdentity(t *testing.T) {
	c := newSingleProducerClaim(8, func(int) {})
	if got := c.highestPublishedSequence(0, 7); got != 7 {
		t.Fatalf("highestPublishedSequence(0, 7) = %d, want 7", got)
	}
}
