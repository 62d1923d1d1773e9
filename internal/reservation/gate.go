package reservation

import "sync"

// gate is the lifecycle gate guarding the accepting → draining transition.
// It is not protecting any data of its own — it serializes the moment at
// which shutdown becomes visible to every future "check the flag, then
// enqueue" sequence performed by Create/CreatePermanent.
//
// The write lock is taken only by Shutdown, to flip shutdown to true exactly
// once. The read lock is taken by every reservation operation and by the
// live-set removal callback; they may all proceed concurrently with each
// other, just not with the flag flip.
type gate struct {
	mu       sync.RWMutex
	shutdown bool
}

// rlock acquires the read side and reports the current shutdown state.
// Callers must call runlock when done, typically via defer.
func (g *gate) rlock() (shuttingDown bool) {
	g.mu.RLock()
	return g.shutdown
}

func (g *gate) runlock() {
	g.mu.RUnlock()
}

// close flips shutdown to true, if it was not already, and reports whether
// this call was the one that performed the transition. Once shutdown is
// true it never becomes false again.
func (g *gate) close() (transitioned bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.shutdown {
		return false
	}
	g.shutdown = true
	return true
}

// isShutdown reports the current state without taking a lock held across
// any other operation. Safe to call at any time.
func (g *gate) isShutdown() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.shutdown
}
