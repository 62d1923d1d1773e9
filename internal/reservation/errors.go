package reservation

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced through reservation futures. Matches the
// teacher's internal/core/connmgr/errors.go convention of a sentinel
// var (...) block per package.
var (
	// ErrShuttingDown is returned when a reservation is attempted after, or
	// observed to race with, Manager.Shutdown.
	ErrShuttingDown = errors.New("reservation: shutting down")

	// ErrAlreadyShuttingDown is logged (not returned through a future) when
	// Shutdown is called a second time.
	ErrAlreadyShuttingDown = errors.New("reservation: already shutting down")

	// ErrInterrupted is returned when a waiter task's context is cancelled
	// while it is blocked acquiring a semaphore.
	ErrInterrupted = errors.New("reservation: interrupted while acquiring permits")
)

// ArgumentError reports a synchronous, caller-bug validation failure: a
// request that could never succeed against the configured maxima, or a
// convenience-overload call with no configuration to compute permits from.
// ArgumentErrors are raised at the call site, never delivered through a
// future — an over-capacity request is a programming error, not a runtime
// condition.
type ArgumentError struct {
	msg string
}

func (e *ArgumentError) Error() string { return e.msg }

func newArgumentError(format string, args ...any) *ArgumentError {
	return &ArgumentError{msg: fmt.Sprintf(format, args...)}
}
