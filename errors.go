package disruptor

import "errors"

// Construction errors.
var (
	// ErrCapacity is returned when a ring capacity is not a positive power
	// of two.
	ErrCapacity = errors.New("disruptor: capacity must be a positive power of two")

	// ErrMissingHandlerGroup is returned when a CompositeDistributorBuilder
	// is built without any handler group at all.
	ErrMissingHandlerGroup = errors.New("disruptor: missing handler group(s)")

	// ErrEmptyHandlerGroup is returned when a handler group was declared but
	// contains zero handlers.
	ErrEmptyHandlerGroup = errors.New("disruptor: handler group is empty")
)

// Barrier wait errors.
var (
	// ErrWaitTimeout is returned by SequenceBarrier.WaitForTimeout when the
	// timeout elapses before the target sequence became visible. The
	// returned value is the last observed cursor, which the caller must
	// compare against its requested target.
	ErrWaitTimeout = errors.New("disruptor: wait for sequence timed out")

	// ErrAlerted is returned by WaitFor/WaitForTimeout when the barrier was
	// alerted while waiting, distinguishing cooperative cancellation from a
	// timeout.
	ErrAlerted = errors.New("disruptor: barrier was alerted")
)

// StopSignal is the value passed to Distributor.Signal. It is an int64
// newtype purely for self-documentation at call sites: passing a raw
// claimed index where a StopSignal is expected would be a silent bug the
// compiler can't catch either way, but the distinct type at least makes
// intent visible on read.
type StopSignal int64

const (
	// DefaultStopSignal means "no explicit stop requested yet" when read
	// from a worker's stop target, and "drain through whatever has been
	// claimed as of this call" when passed to Signal. Distinct from
	// InitialSequence so a legitimately-claimed index of -1 never aliases a
	// "not requested" stop target.
	DefaultStopSignal StopSignal = -2

	// StopImmediatelySignal tells every worker to stop on its next loop
	// iteration without draining any further claimed-but-unprocessed
	// indices.
	StopImmediatelySignal StopSignal = -3
)
