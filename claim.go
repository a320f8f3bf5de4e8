package disruptor

import "github.com/unihoper/disruptor/internal/gate"

// claimStrategy assigns monotonically increasing indices to producers and
// enforces ring capacity against the slowest gating Sequence. Sequencer[T]
// delegates Claim/Publish/Cursor to whichever strategy its Builder selected.
type claimStrategy interface {
	// claim reserves n slots and returns the highest index reserved.
	claim(n int64) int64

	// publish makes [lo, hi] visible. For single-producer this is a plain
	// cursor store; for multi-producer this marks the availability buffer
	// (the cursor itself only tracks the highest *claimed* index).
	publish(lo, hi int64)

	// cursor is the Sequence a SequenceBarrier waits on.
	cursor() *Sequence

	// setGatingSequences replaces the gating set. Must be called before any
	// claim.
	setGatingSequences(gating []*Sequence)

	// highestPublishedSequence resolves the true highest contiguously
	// published index in [lowerBound, availableSequence]. For
	// single-producer this is the identity function, since the cursor
	// already IS the publish point.
	highestPublishedSequence(lowerBound, availableSequence int64) int64
}

func minOfGating(gating []*Sequence) int64 {
	seqs := make([]gate.Sequence, len(gating))
	for i, g := range gating {
		seqs[i] = g
	}
	return gate.Minimum(seqs)
}
