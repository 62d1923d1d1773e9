package reservation

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// EventLoopGroup is the externally-owned worker pool a ChannelCreator is
// bound to. A group passed to New is held as a non-owning reference and the
// manager never shuts it down; the caller that supplied it owns its
// lifetime. When New is given no group, the manager builds a default pool,
// owns it, and closes it once its shutdown reacquisition completes.
type EventLoopGroup interface {
	// Submit runs fn asynchronously on the pool. Submit does not block on
	// fn's completion, but may block briefly if the pool is at capacity.
	// A caller-supplied group closed before every issued ChannelCreator has
	// been shut down is a caller error: Submit silently drops fn once the
	// group is closed, so that ChannelCreator's done future never completes
	// and Manager.Shutdown's reacquisition blocks on it forever.
	Submit(fn func())

	// Close stops accepting new work and waits for in-flight work to
	// finish.
	Close()
}

// defaultEventLoopGroup is a bounded goroutine pool used when a Manager is
// constructed without an explicit EventLoopGroup.
//
// Grounded on pgvanniekerk-ezworker's EzWorker: a semaphore bounds
// concurrency, a WaitGroup tracks in-flight work for a graceful Close. This
// package doesn't need EzWorker's generic message channel or resize
// support, so the shape is reduced to just Submit/Close.
type defaultEventLoopGroup struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewEventLoopGroup returns a bounded goroutine pool suitable for standalone
// use of this package. concurrency must be at least 1.
func NewEventLoopGroup(concurrency int) EventLoopGroup {
	if concurrency < 1 {
		concurrency = 1
	}
	return &defaultEventLoopGroup{sem: semaphore.NewWeighted(int64(concurrency))}
}

func (g *defaultEventLoopGroup) Submit(fn func()) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.wg.Add(1)
	g.mu.Unlock()

	go func() {
		defer g.wg.Done()
		_ = g.sem.Acquire(context.Background(), 1)
		defer g.sem.Release(1)
		fn()
	}()
}

func (g *defaultEventLoopGroup) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.wg.Wait()
}
