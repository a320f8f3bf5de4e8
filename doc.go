// Package disruptor provides a generic, lock-free ring buffer for
// in-process message passing, modeled on the LMAX Disruptor: a fixed-size
// ring of pre-allocated slots, a Sequencer that hands producers contiguous
// claims against a cursor gated by the slowest consumer, and a
// SequenceBarrier consumers wait on for the next contiguously-published
// index.
//
// SingleProducer and MultiProducer are thin pull-queue wrappers over the
// generic core for callers who just want Produce/Consume. Handler,
// Distributor, and ParallelDistributor build a push-style fan-out/pipeline
// layer on top of the same core, letting several handlers consume the same
// published stream independently, each on its own goroutine, without a
// slow handler blocking a fast one.
//
// If for some reason you have Go code that needs to process messages at
// sub-microsecond latency, where shaving every nanosecond counts, then
// consider the disruptor pattern.
package disruptor
