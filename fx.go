package connreserve

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dep2p/connreserve/internal/reservation"
)

// Module returns the fx module wiring a Manager, its EventLoopGroup, and
// its shutdown lifecycle hook together.
func Module() fx.Option {
	return reservation.Module()
}

// WithZapLogger adapts a *zap.Logger into fx's own event logger.
func WithZapLogger(l *zap.Logger) fx.Option {
	return reservation.WithZapLogger(l)
}
