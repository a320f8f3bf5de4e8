package disruptor

import (
	"math/bits"
	"sync/atomic"

	"github.com/unihoper/disruptor/internal/avail"
)

// multiProducerClaim is the claim strategy for a Sequencer built with
// WithMultiProducer. Multiple producer goroutines race to extend a shared
// atomic counter; each publish marks its own slots available in a
// per-slot availability buffer rather than trying to CAS a shared cursor
// forward, so producers never block each other past the capacity check
// (grounded in the availability-buffer design, see DESIGN.md).
type multiProducerClaim struct {
	capacity int64
	claimed  *Sequence // highest index any producer has claimed (optimistic)
	buf      *avail.Buffer
	yield    func(spins int)

	gating atomic.Pointer[[]*Sequence]
}

func newMultiProducerClaim(capacity int64, yield func(int)) *multiProducerClaim {
	return &multiProducerClaim{
		capacity: capacity,
		claimed:  NewSequence(),
		buf:      avail.New(capacity, uint(bits.Len64(uint64(capacity))-1)),
		yield:    yield,
	}
}

func (c *multiProducerClaim) cursor() *Sequence { return c.claimed }

func (c *multiProducerClaim) setGatingSequences(gating []*Sequence) {
	g := append([]*Sequence(nil), gating...)
	c.gating.Store(&g)
}

func (c *multiProducerClaim) claim(n int64) int64 {
	for {
		current := c.claimed.Get()
		next := current + n
		gatingPtr := c.gating.Load()
		if gatingPtr != nil && len(*gatingPtr) > 0 {
			wrapPoint := next - c.capacity
			spins := 0
			for wrapPoint > minOfGating(*gatingPtr) {
				spins++
				c.yield(spins)
			}
		}
		if c.claimed.CompareAndSwap(current, next) {
			return next
		}
		// Lost the race to another producer; retry with a fresh view.
	}
}

func (c *multiProducerClaim) publish(lo, hi int64) {
	for seq := lo; seq <= hi; seq++ {
		c.buf.SetAvailable(seq)
	}
}

func (c *multiProducerClaim) highestPublishedSequence(lowerBound, availableSequence int64) int64 {
	return c.buf.HighestContiguous(lowerBound, availableSequence)
}
