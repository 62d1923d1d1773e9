package reservation

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dep2p/connreserve/pkg/lib/log"
)

var ccLogger = log.Logger("reservation/channelcreator")

// ChannelCreator is an opaque handle representing a reservation of permits
// for subsequent channel construction. It owns (udpPermits, tcpPermits) for
// short-lived reservations, or (0, permanentPermits) for permanent ones.
//
// Transport implementation is out of scope for this module (spec.md §1
// excludes "Netty channel-handler stubs"): Shutdown does not open or close
// real sockets. It runs the ChannelClientConfig.OnShutdown hook, if any,
// then completes ShutdownFuture — which is exactly the seam a real
// transport layer plugs socket teardown into.
type ChannelCreator struct {
	id uuid.UUID

	group EventLoopGroup
	cfg   ChannelClientConfig

	udpPermits int
	tcpPermits int

	done *Future[struct{}]

	once sync.Once
}

func newChannelCreator(group EventLoopGroup, done *Future[struct{}], udpPermits, tcpPermits int, cfg ChannelClientConfig) *ChannelCreator {
	return &ChannelCreator{
		id:         uuid.New(),
		group:      group,
		cfg:        cfg,
		udpPermits: udpPermits,
		tcpPermits: tcpPermits,
		done:       done,
	}
}

// ID returns a stable identity for this ChannelCreator, used for log
// correlation and introspection — distinct from its memory address, which
// is not a useful handle once the creator has been garbage collected.
func (c *ChannelCreator) ID() uuid.UUID { return c.id }

// UDPPermits returns the number of UDP permits this creator owns.
func (c *ChannelCreator) UDPPermits() int { return c.udpPermits }

// TCPPermits returns the number of TCP permits this creator owns (short-
// lived TCP permits, or permanent TCP permits if this creator was issued by
// CreatePermanent).
func (c *ChannelCreator) TCPPermits() int { return c.tcpPermits }

// Shutdown initiates teardown of this channel creator. It is safe to call
// more than once; only the first call has any effect. The creator's permits
// stay reserved until Shutdown runs, called either by the holder or, for a
// creator still live at that point, by Manager.Shutdown.
func (c *ChannelCreator) Shutdown() {
	c.once.Do(func() {
		ccLogger.Debug("channel creator shutting down", "id", log.TruncateID(c.id.String(), 8), "udp", c.udpPermits, "tcp", c.tcpPermits)
		if c.group != nil {
			// Run the teardown hook on the event loop group, consistent
			// with channel I/O in a real transport running there too.
			c.group.Submit(func() {
				if c.cfg.OnShutdown != nil {
					c.cfg.OnShutdown()
				}
				c.done.Complete(struct{}{}, nil)
			})
			return
		}
		if c.cfg.OnShutdown != nil {
			c.cfg.OnShutdown()
		}
		c.done.Complete(struct{}{}, nil)
	})
}

// ShutdownFuture returns the future that completes once this creator's
// teardown has finished. Completing it triggers the permit-release listener
// registered at reservation time — that listener was registered first (see
// Future.AddListenerFirst), so it always observes completion before any
// listener added later by Manager.Shutdown's live-set bookkeeping.
func (c *ChannelCreator) ShutdownFuture() *Future[struct{}] {
	return c.done
}
