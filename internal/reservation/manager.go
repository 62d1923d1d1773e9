package reservation

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/connreserve/pkg/lib/log"
)

var logger = log.Logger("reservation/manager")

// Manager is the reservation core's public surface: it accepts reservation
// requests, enqueues waiter tasks on its serial executor, tracks issued
// ChannelCreators in a live set, and orchestrates shutdown.
//
// Grounded method-for-method on
// original_source/.../net/tomp2p/connection/Reservation.java.
type Manager struct {
	cfg Config

	udp          *permitPool
	tcp          *permitPool
	permanentTCP *permitPool

	gate gate
	exec *serialExecutor

	group     EventLoopGroup
	ownsGroup bool

	liveMu sync.Mutex
	live   map[uuid.UUID]*ChannelCreator

	reservationDone *Future[struct{}]

	metrics *metrics
}

// New constructs a Manager with the given Config. group is the externally
// owned worker pool ChannelCreators are bound to; if nil, Manager creates
// and owns a small default pool, closing it once shutdown has fully
// drained. reg, if non-nil, receives this Manager's Prometheus metrics.
func New(cfg Config, group EventLoopGroup, reg prometheus.Registerer) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("reservation: invalid config: %w", err)
	}

	ownsGroup := false
	if group == nil {
		group = NewEventLoopGroup(4)
		ownsGroup = true
	}

	m := &Manager{
		cfg:             cfg,
		udp:             newPermitPool(classUDP, cfg.MaxUDP),
		tcp:             newPermitPool(classTCP, cfg.MaxTCP),
		permanentTCP:    newPermitPool(classPermanentTCP, cfg.MaxPermanentTCP),
		exec:            newSerialExecutor(),
		group:           group,
		ownsGroup:       ownsGroup,
		live:            make(map[uuid.UUID]*ChannelCreator),
		reservationDone: NewFuture[struct{}](),
		metrics:         newMetrics(reg),
	}
	m.publishPoolMetrics()
	return m, nil
}

// PendingRequests returns the number of reservation requests that have been
// scheduled on the serial executor but not yet serviced.
func (m *Manager) PendingRequests() int {
	n := m.exec.pendingRequests()
	m.metrics.setPending(n)
	return n
}

// Create reserves udpPermits short-lived UDP permits and tcpPermits
// short-lived TCP permits, returning a future that resolves to a
// ChannelCreator once both are acquired. ctx bounds only the wait for
// permits, not the validation below it.
//
// udpPermits and tcpPermits exceeding the configured maxima is a
// programming error: Create reports it synchronously via the returned
// error rather than through the future.
func (m *Manager) Create(ctx context.Context, udpPermits, tcpPermits int) (*Future[*ChannelCreator], error) {
	if udpPermits < 0 || udpPermits > m.cfg.MaxUDP {
		return nil, newArgumentError("cannot acquire more UDP permits (%d) than maximum %d", udpPermits, m.cfg.MaxUDP)
	}
	if tcpPermits < 0 || tcpPermits > m.cfg.MaxTCP {
		return nil, newArgumentError("cannot acquire more TCP permits (%d) than maximum %d", tcpPermits, m.cfg.MaxTCP)
	}

	future := NewFuture[*ChannelCreator]()

	shuttingDown := m.gate.rlock()
	defer m.gate.runlock()
	if shuttingDown {
		future.Complete(nil, ErrShuttingDown)
		return future, nil
	}

	done := NewFuture[struct{}]()
	// Must be added first: the permit release must precede any other
	// listener that might observe the shut-down state (see
	// ChannelCreator.ShutdownFuture).
	done.AddListenerFirst(func(_ struct{}, _ error) {
		m.udp.release(udpPermits)
		m.tcp.release(tcpPermits)
		m.publishPoolMetrics()
	})

	task := &shortLivedWaiter{
		mgr:        m,
		future:     future,
		done:       done,
		udpPermits: udpPermits,
		tcpPermits: tcpPermits,
		ctx:        ctx,
	}
	if !m.exec.submit(task) {
		// Lost a race with Shutdown between the rlock check above and
		// here; treat identically to observing shutdown directly.
		future.Complete(nil, ErrShuttingDown)
	}
	return future, nil
}

// CreatePermanent reserves n long-lived TCP permits, returning a future
// that resolves to a ChannelCreator once they are acquired.
func (m *Manager) CreatePermanent(ctx context.Context, n int) (*Future[*ChannelCreator], error) {
	if n < 0 || n > m.cfg.MaxPermanentTCP {
		return nil, newArgumentError("cannot acquire more permanent TCP permits (%d) than maximum %d", n, m.cfg.MaxPermanentTCP)
	}

	future := NewFuture[*ChannelCreator]()

	shuttingDown := m.gate.rlock()
	defer m.gate.runlock()
	if shuttingDown {
		future.Complete(nil, ErrShuttingDown)
		return future, nil
	}

	done := NewFuture[struct{}]()
	done.AddListenerFirst(func(_ struct{}, _ error) {
		m.permanentTCP.release(n)
		m.publishPoolMetrics()
	})

	task := &permanentWaiter{
		mgr:     m,
		future:  future,
		done:    done,
		permits: n,
		ctx:     ctx,
	}
	if !m.exec.submit(task) {
		future.Complete(nil, ErrShuttingDown)
	}
	return future, nil
}

// CreateFromConfig computes the UDP/TCP permits needed for routing and/or
// request traffic from abstract configurations and delegates to Create.
// Either of routing or request may be nil, but not both.
func (m *Manager) CreateFromConfig(ctx context.Context, routing *RoutingConfiguration, request *RequestConfiguration, conn ConnectionConfiguration) (*Future[*ChannelCreator], error) {
	if routing == nil && request == nil {
		return nil, newArgumentError("both routing and request configuration cannot be nil")
	}

	var udpNeeded, tcpNeeded int
	if request != nil {
		if conn.ForceUDP {
			udpNeeded = request.Parallel
		} else {
			tcpNeeded = request.Parallel
		}
	}
	if routing != nil {
		if !conn.ForceTCP {
			udpNeeded = max(udpNeeded, routing.Parallel)
		} else {
			tcpNeeded = max(tcpNeeded, routing.Parallel)
		}
	}

	return m.Create(ctx, udpNeeded, tcpNeeded)
}

// removeFromLiveSet is the live-set bookkeeping callback attached to every
// issued ChannelCreator's shutdown future. During global teardown it steps
// aside: the shutdown orchestrator snapshots the live set and must not see
// entries vanish underneath it.
func (m *Manager) removeFromLiveSet(cc *ChannelCreator) {
	shuttingDown := m.gate.rlock()
	defer m.gate.runlock()
	if shuttingDown {
		return
	}
	m.liveMu.Lock()
	delete(m.live, cc.ID())
	m.liveMu.Unlock()
	m.publishLiveMetric()
}

func (m *Manager) addToLiveSet(cc *ChannelCreator) {
	m.liveMu.Lock()
	m.live[cc.ID()] = cc
	m.liveMu.Unlock()
	m.publishLiveMetric()

	cc.ShutdownFuture().AddListener(func(struct{}, error) {
		m.removeFromLiveSet(cc)
	})
}

// Shutdown transitions the manager into the draining state. The first call
// drains every pending reservation request with ErrShuttingDown, shuts down
// every live ChannelCreator, and — once every permit of every class has
// been reacquired, proving none remains outstanding — completes and
// returns the reservation-done future. Later calls return the same future
// without restarting the process.
func (m *Manager) Shutdown() *Future[struct{}] {
	if !m.gate.close() {
		logger.Info("shutdown called again", "err", ErrAlreadyShuttingDown)
		return m.reservationDone
	}

	m.metrics.incShutdowns()
	m.exec.drain(ErrShuttingDown)

	m.liveMu.Lock()
	snapshot := make([]*ChannelCreator, 0, len(m.live))
	for _, cc := range m.live {
		snapshot = append(snapshot, cc)
	}
	m.liveMu.Unlock()

	n := len(snapshot)
	if n == 0 {
		m.finishShutdown()
		return m.reservationDone
	}

	var completed atomic.Int64
	for _, cc := range snapshot {
		// This listener is registered before Shutdown is called on cc, so
		// it always runs after the permit-release listener registered at
		// reservation time (AddListenerFirst) but is itself ordered
		// relative to other listeners by registration time only.
		cc.ShutdownFuture().AddListener(func(struct{}, error) {
			if completed.Add(1) == int64(n) {
				m.finishShutdown()
			}
		})
		cc.Shutdown()
	}
	return m.reservationDone
}

// ShutdownFuture returns the reservation-done future, the same object
// Shutdown returns.
func (m *Manager) ShutdownFuture() *Future[struct{}] {
	return m.reservationDone
}

// finishShutdown performs the global permit reacquisition: blocking,
// uninterruptible acquisition of every permit of every class. Its
// completion is the proof that no ChannelCreator still holds permits —
// every one of them must have been returned via the release listener
// first. Once the reacquisition has succeeded the permits are handed back,
// so after shutdown completes every pool reports its full capacity.
func (m *Manager) finishShutdown() {
	m.group.Submit(func() {
		m.udp.acquireUninterruptible(m.cfg.MaxUDP)
		m.tcp.acquireUninterruptible(m.cfg.MaxTCP)
		m.permanentTCP.acquireUninterruptible(m.cfg.MaxPermanentTCP)
		m.udp.release(m.cfg.MaxUDP)
		m.tcp.release(m.cfg.MaxTCP)
		m.permanentTCP.release(m.cfg.MaxPermanentTCP)
		m.publishPoolMetrics()

		if m.ownsGroup {
			// Closing from within a task submitted to the pool being
			// closed is safe here: Close only waits for in-flight work
			// (this closure) to return before it returns itself.
			go m.group.Close()
		}

		m.reservationDone.Complete(struct{}{}, nil)
	})
}

func (m *Manager) publishPoolMetrics() {
	m.metrics.setAvailable(classUDP, m.udp.available())
	m.metrics.setAvailable(classTCP, m.tcp.available())
	m.metrics.setAvailable(classPermanentTCP, m.permanentTCP.available())
}

func (m *Manager) publishLiveMetric() {
	m.liveMu.Lock()
	n := len(m.live)
	m.liveMu.Unlock()
	m.metrics.setLive(n)
}
