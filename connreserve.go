// Package connreserve is the public surface of the connection reservation
// manager: a fair, class-separated permit pool for outgoing UDP and TCP
// connection attempts, with graceful, quiescence-proven shutdown.
//
// The implementation lives in internal/reservation, following the
// teacher's own layering (internal/core/connmgr wrapped by the root dep2p
// package) — this file is a thin facade re-exporting the types and
// constructors callers need, so the real logic is importable only through
// this module's own API, never reached into directly.
package connreserve

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/connreserve/internal/reservation"
)

// Manager is the reservation core's public surface. See
// internal/reservation.Manager for the full method-level documentation.
type Manager = reservation.Manager

// Config configures a Manager's three permit pools. See
// internal/reservation.Config.
type Config = reservation.Config

// ChannelClientConfig is opaque configuration forwarded to every
// ChannelCreator a Manager constructs. See
// internal/reservation.ChannelClientConfig.
type ChannelClientConfig = reservation.ChannelClientConfig

// ChannelCreator is the handle returned once a reservation's permits have
// been acquired. See internal/reservation.ChannelCreator.
type ChannelCreator = reservation.ChannelCreator

// Future is the single-completion cell used throughout this package's
// asynchronous API. See internal/reservation.Future.
type Future[T any] = reservation.Future[T]

// EventLoopGroup is the externally-owned worker pool ChannelCreators run
// their teardown hooks on. See internal/reservation.EventLoopGroup.
type EventLoopGroup = reservation.EventLoopGroup

// RoutingConfiguration, RequestConfiguration and ConnectionConfiguration
// drive the CreateFromConfig convenience overload. See
// internal/reservation's same-named types.
type (
	RoutingConfiguration    = reservation.RoutingConfiguration
	RequestConfiguration    = reservation.RequestConfiguration
	ConnectionConfiguration = reservation.ConnectionConfiguration
)

// Sentinel errors re-exported for callers that want to errors.Is against
// them without importing the internal package directly.
var (
	ErrShuttingDown        = reservation.ErrShuttingDown
	ErrAlreadyShuttingDown = reservation.ErrAlreadyShuttingDown
	ErrInterrupted         = reservation.ErrInterrupted
)

// DefaultConfig returns a Config with modest, non-zero maxima.
func DefaultConfig() Config {
	return reservation.DefaultConfig()
}

// NewEventLoopGroup returns a bounded goroutine pool suitable for
// standalone use of this package.
func NewEventLoopGroup(concurrency int) EventLoopGroup {
	return reservation.NewEventLoopGroup(concurrency)
}

// New constructs a Manager with the given Config. group may be nil, in
// which case the Manager creates and owns a small default pool. reg may be
// nil to disable Prometheus metrics entirely.
func New(cfg Config, group EventLoopGroup, reg prometheus.Registerer) (*Manager, error) {
	return reservation.New(cfg, group, reg)
}
