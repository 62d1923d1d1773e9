// Package reservation implements the connection reservation manager: the
// concurrency-control subsystem that gates creation of outbound network
// channels (short-lived UDP, short-lived TCP, long-lived TCP) against fixed
// capacity budgets, hands out reserved ChannelCreator handles asynchronously,
// and coordinates a shutdown that drains in-flight reservations and
// already-issued handles.
//
// This package is internal; the importable surface is the root
// github.com/dep2p/connreserve package, which re-exports the types and
// constructors below.
//
// # Components
//
//   - permitPool: three fair counting semaphores (UDP, TCP, permanent TCP).
//   - gate: a reader/writer lock guarding the accepting → draining
//     transition.
//   - executor: a single-worker FIFO queue that serializes permit
//     acquisition across concurrent callers.
//   - Manager: the public surface tying the three together.
//
// # Usage
//
//	mgr, err := reservation.New(reservation.DefaultConfig(), nil, nil)
//	if err != nil {
//	    return err
//	}
//	fut, err := mgr.Create(ctx, 1, 1)
//	if err != nil {
//	    return err
//	}
//	cc, err := fut.Wait(ctx)
//	if err != nil {
//	    return err
//	}
//	defer cc.Shutdown()
//
// A ChannelCreator keeps its permits reserved until it is shut down, either
// by its holder calling Shutdown or by Manager.Shutdown, which shuts down
// every creator still live when it runs.
package reservation
