package reservation

import "context"

// shortLivedWaiter is the waiterTask behind Create: acquire udpPermits UDP
// permits, then tcpPermits TCP permits, in that order. If the second
// acquisition fails — context cancelled while waiting — the first is rolled
// back before the caller's future is failed, so a failed reservation never
// leaks permits.
type shortLivedWaiter struct {
	mgr        *Manager
	future     *Future[*ChannelCreator]
	done       *Future[struct{}]
	udpPermits int
	tcpPermits int
	ctx        context.Context
}

// run executes under the gate's read lock for its entire body — re-check-
// then-act, mirroring WaitReservation.run()'s read.lock()/read.unlock()
// bracket in the original. Holding the lock across the acquire calls below
// is what closes the race the lock exists to prevent: without it, a task
// dequeued just before Shutdown sets the flag could still add a fresh
// creator to the live set after Shutdown has already snapshotted it.
func (w *shortLivedWaiter) run() {
	shuttingDown := w.mgr.gate.rlock()
	defer w.mgr.gate.runlock()
	if shuttingDown {
		w.future.Complete(nil, ErrShuttingDown)
		return
	}

	if err := w.mgr.udp.acquire(w.ctx, w.udpPermits); err != nil {
		w.future.Complete(nil, translateAcquireErr(err))
		return
	}
	if err := w.mgr.tcp.acquire(w.ctx, w.tcpPermits); err != nil {
		w.mgr.udp.release(w.udpPermits)
		w.future.Complete(nil, translateAcquireErr(err))
		return
	}

	cc := newChannelCreator(w.mgr.group, w.done, w.udpPermits, w.tcpPermits, w.mgr.cfg.ChannelClient)
	w.mgr.addToLiveSet(cc)
	w.mgr.publishPoolMetrics()
	w.future.Complete(cc, nil)
}

func (w *shortLivedWaiter) fail(err error) {
	w.future.Complete(nil, err)
}

// permanentWaiter is the waiterTask behind CreatePermanent: acquire permits
// permits from the permanent TCP pool.
type permanentWaiter struct {
	mgr     *Manager
	future  *Future[*ChannelCreator]
	done    *Future[struct{}]
	permits int
	ctx     context.Context
}

// run executes under the gate's read lock for its entire body; see
// shortLivedWaiter.run for why.
func (w *permanentWaiter) run() {
	shuttingDown := w.mgr.gate.rlock()
	defer w.mgr.gate.runlock()
	if shuttingDown {
		w.future.Complete(nil, ErrShuttingDown)
		return
	}

	if err := w.mgr.permanentTCP.acquire(w.ctx, w.permits); err != nil {
		w.future.Complete(nil, translateAcquireErr(err))
		return
	}

	cc := newChannelCreator(w.mgr.group, w.done, 0, w.permits, w.mgr.cfg.ChannelClient)
	w.mgr.addToLiveSet(cc)
	w.mgr.publishPoolMetrics()
	w.future.Complete(cc, nil)
}

func (w *permanentWaiter) fail(err error) {
	w.future.Complete(nil, err)
}

// translateAcquireErr maps a context cancellation from a blocked semaphore
// acquire onto the package's own sentinel, so callers never need to
// recognize context.Canceled/DeadlineExceeded themselves.
func translateAcquireErr(err error) error {
	if err == nil {
		return nil
	}
	return ErrInterrupted
}
