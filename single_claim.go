package disruptor

import "sync/atomic"

// singleProducerClaim is the claim strategy for a Sequencer built without
// WithMultiProducer. Its "next to claim" counter and cached gating minimum
// are plain int64s — legal because only one producer goroutine ever calls
// claim, matching the teacher's single_producer.go non-atomic fast path.
type singleProducerClaim struct {
	capacity int64
	cur      *Sequence
	yield    func(spins int)

	next            int64
	cachedGatingMin int64
	gating          atomic.Pointer[[]*Sequence]
}

func newSingleProducerClaim(capacity int64, yield func(int)) *singleProducerClaim {
	return &singleProducerClaim{
		capacity:        capacity,
		cur:             NewSequence(),
		yield:           yield,
		next:            InitialSequence,
		cachedGatingMin: InitialSequence,
	}
}

func (c *singleProducerClaim) cursor() *Sequence { return c.cur }

func (c *singleProducerClaim) setGatingSequences(gating []*Sequence) {
	g := append([]*Sequence(nil), gating...)
	c.gating.Store(&g)
}

func (c *singleProducerClaim) claim(n int64) int64 {
	target := c.next + n
	gatingPtr := c.gating.Load()
	if gatingPtr != nil && len(*gatingPtr) > 0 {
		wrapPoint := target - c.capacity
		spins := 0
		for wrapPoint > c.cachedGatingMin {
			c.cachedGatingMin = minOfGating(*gatingPtr)
			if wrapPoint > c.cachedGatingMin {
				spins++
				c.yield(spins)
			}
		}
	}
	c.next = target
	return target
}

func (c *singleProducerClaim) publish(_, hi int64) {
	// The index alone encodes "everything <= hi is published" because only
	// one producer exists.
	c.cur.Set(hi)
}

func (c *singleProducerClaim) highestPublishedSequence(_, availableSequence int64) int64 {
	return availableSequence
}
