// Package closer provides a padded one-way atomic latch. Adapted from the
// teacher's internal/closer package, which modeled a ring buffer's own
// open/closed state; generalized here to back any permanent state
// transition that only ever happens once (a ParallelDistributor only ever
// starts once).
package closer

import "sync/atomic"

const (
	open   = 0
	closed = 1
)

// Latch is a padded one-way atomic flag. Its zero value is open.
type Latch struct {
	x atomic.Int64
	_ [56]byte
}

// IsClosed reports whether Close has already latched this flag shut.
func (l *Latch) IsClosed() bool {
	return l.x.Load() == closed
}

// Close latches the flag shut. It returns true the first time it succeeds
// and false on every call after, so callers can use it directly as a
// compare-and-swap guard instead of checking IsClosed first.
func (l *Latch) Close() bool {
	return l.x.CompareAndSwap(open, closed)
}
