package reservation

import (
	"errors"

	"go.uber.org/multierr"
)

// ChannelClientConfig is opaque configuration forwarded verbatim to every
// ChannelCreator this manager constructs. The reservation manager never
// inspects it; it exists purely to be carried through to whatever transport
// layer a ChannelCreator's OnShutdown hook belongs to.
type ChannelClientConfig struct {
	// OnShutdown, if non-nil, is invoked once by a ChannelCreator's
	// Shutdown, before its shutdown-done future completes. A real
	// transport layer plugs real socket teardown in here; tests and
	// standalone use leave it nil.
	OnShutdown func()
}

// Config configures a Manager's three permit pools and the configuration
// forwarded to issued ChannelCreators.
//
// Mirrors internal/core/connmgr's Config / DefaultConfig / Validate / With*
// shape.
type Config struct {
	// MaxUDP is the maximum number of short-lived UDP permits outstanding
	// at once.
	MaxUDP int

	// MaxTCP is the maximum number of short-lived TCP permits outstanding
	// at once.
	MaxTCP int

	// MaxPermanentTCP is the maximum number of long-lived TCP permits
	// outstanding at once.
	MaxPermanentTCP int

	// ChannelClient is forwarded verbatim to every ChannelCreator this
	// manager constructs.
	ChannelClient ChannelClientConfig
}

// DefaultConfig returns a Config with modest, non-zero maxima — suitable
// for tests and examples, not sized for any particular deployment.
func DefaultConfig() Config {
	return Config{
		MaxUDP:          32,
		MaxTCP:          32,
		MaxPermanentTCP: 8,
	}
}

// Validate checks that the configured maxima are non-negative, reporting
// every violation at once (via multierr) rather than just the first —
// useful when a config comes from a file and the caller wants to fix
// everything in one pass.
func (c Config) Validate() error {
	var err error
	if c.MaxUDP < 0 {
		err = multierr.Append(err, errors.New("reservation: MaxUDP must be non-negative"))
	}
	if c.MaxTCP < 0 {
		err = multierr.Append(err, errors.New("reservation: MaxTCP must be non-negative"))
	}
	if c.MaxPermanentTCP < 0 {
		err = multierr.Append(err, errors.New("reservation: MaxPermanentTCP must be non-negative"))
	}
	return err
}

// WithMaxUDP returns a copy of c with MaxUDP set.
func (c Config) WithMaxUDP(n int) Config {
	c.MaxUDP = n
	return c
}

// WithMaxTCP returns a copy of c with MaxTCP set.
func (c Config) WithMaxTCP(n int) Config {
	c.MaxTCP = n
	return c
}

// WithMaxPermanentTCP returns a copy of c with MaxPermanentTCP set.
func (c Config) WithMaxPermanentTCP(n int) Config {
	c.MaxPermanentTCP = n
	return c
}

// WithChannelClient returns a copy of c with ChannelClient set.
func (c Config) WithChannelClient(cc ChannelClientConfig) Config {
	c.ChannelClient = cc
	return c
}

// RoutingConfiguration carries the parallelism requested for routing
// (lookup-style) traffic, used by Manager.CreateFromConfig.
type RoutingConfiguration struct {
	// Parallel is the number of connections routing wants in parallel.
	Parallel int
}

// RequestConfiguration carries the parallelism requested for P2P request
// traffic, used by Manager.CreateFromConfig.
type RequestConfiguration struct {
	// Parallel is the number of connections the request wants in parallel.
	Parallel int
}

// ConnectionConfiguration controls whether routing/request traffic is
// forced onto UDP or TCP, used by Manager.CreateFromConfig.
type ConnectionConfiguration struct {
	// ForceUDP forces request traffic onto UDP.
	ForceUDP bool
	// ForceTCP forces routing traffic onto TCP.
	ForceTCP bool
}
