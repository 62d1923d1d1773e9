package reservation

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// class identifies one of the three permit pools a reservation draws from.
type class int

const (
	classUDP class = iota
	classTCP
	classPermanentTCP
)

func (c class) String() string {
	switch c {
	case classUDP:
		return "udp"
	case classTCP:
		return "tcp"
	case classPermanentTCP:
		return "permanent_tcp"
	default:
		return "unknown"
	}
}

// permitPool is a fair counting semaphore bounding the number of permits of
// one class in use at a time. It wraps golang.org/x/sync/semaphore.Weighted,
// which queues blocked Acquire callers in arrival order — the fairness §4.1
// requires, "otherwise we see connection timeouts due to unfairness if
// busy."
type permitPool struct {
	class class
	max   int64
	sem   *semaphore.Weighted
	inUse atomic.Int64 // tracked separately; Weighted exposes no counter
}

func newPermitPool(c class, max int) *permitPool {
	return &permitPool{
		class: c,
		max:   int64(max),
		sem:   semaphore.NewWeighted(int64(max)),
	}
}

// acquire blocks until n permits are available or ctx is done.
func (p *permitPool) acquire(ctx context.Context, n int) error {
	if n == 0 {
		return nil
	}
	if err := p.sem.Acquire(ctx, int64(n)); err != nil {
		return err
	}
	p.inUse.Add(int64(n))
	return nil
}

// acquireUninterruptible blocks until n permits are available. It ignores
// cancellation by construction: passing context.Background() means there is
// nothing for a caller to cancel. Used only on the shutdown path, where
// completion is the proof that every outstanding permit has been returned.
func (p *permitPool) acquireUninterruptible(n int) {
	if n == 0 {
		return
	}
	// Background() never carries a deadline or cancellation, so this call
	// cannot return early; it waits exactly as long as it takes for all
	// outstanding permits to be released.
	_ = p.sem.Acquire(context.Background(), int64(n))
	p.inUse.Add(int64(n))
}

// release returns n permits to the pool, waking any blocked waiters as
// appropriate.
func (p *permitPool) release(n int) {
	if n == 0 {
		return
	}
	p.inUse.Add(-int64(n))
	p.sem.Release(int64(n))
}

// available reports the current best-effort count of free permits. This is
// inherently racy under concurrent acquire/release and is intended for
// metrics and diagnostics, not for correctness decisions.
func (p *permitPool) available() int64 {
	return p.max - p.inUse.Load()
}
