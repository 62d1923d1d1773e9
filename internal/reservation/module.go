package reservation

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus"
)

// Module returns the fx module wiring a Manager, its EventLoopGroup, and its
// shutdown lifecycle hook together. Mirrors connmgr.Module's
// Provide(...)/Invoke(registerLifecycle) shape.
func Module() fx.Option {
	return fx.Module("reservation",
		fx.Provide(
			ProvideEventLoopGroup,
			ProvideManager,
		),
		fx.Invoke(registerLifecycle),
	)
}

// eventLoopGroupInput carries ProvideEventLoopGroup's fx-resolved Lifecycle,
// so the pool it constructs can register its own closer rather than relying
// on some other provider to know it needs closing.
type eventLoopGroupInput struct {
	fx.In
	LC fx.Lifecycle
}

// ProvideEventLoopGroup supplies the default bounded goroutine pool used
// when nothing else in the fx graph provides one. Since this module's own
// Manager never closes a group that was passed to New (see EventLoopGroup's
// doc comment), the pool constructed here
// registers its own OnStop hook to close itself — ownership stays tied to
// whoever constructs the pool, not to whichever component happens to use
// it. A caller that overrides this provider with their own EventLoopGroup
// is responsible for that group's lifecycle instead; this hook never runs
// for a pool ProvideEventLoopGroup did not itself construct.
func ProvideEventLoopGroup(input eventLoopGroupInput) EventLoopGroup {
	group := NewEventLoopGroup(4)
	input.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			group.Close()
			return nil
		},
	})
	return group
}

// managerInput carries ProvideManager's fx-resolved dependencies. Reg is
// optional: mirroring connmgr/module.go's Scheduler/SubnetLimiter
// optional:"true" collaborators, an fx graph with no Prometheus registerer
// provided resolves Reg to nil instead of failing app.Start, and New
// already treats a nil registerer as "disable metrics."
type managerInput struct {
	fx.In
	Config Config
	Group  EventLoopGroup
	Reg    prometheus.Registerer `optional:"true"`
}

// ProvideManager constructs a Manager from the fx-supplied Config,
// EventLoopGroup, and an optional Prometheus registerer.
func ProvideManager(input managerInput) (*Manager, error) {
	return New(input.Config, input.Group, input.Reg)
}

type lifecycleInput struct {
	fx.In
	LC      fx.Lifecycle
	Manager *Manager
}

// registerLifecycle ties Manager.Shutdown to fx's OnStop, blocking until the
// global permit reacquisition proves every outstanding reservation has been
// torn down.
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_, err := input.Manager.Shutdown().Wait(ctx)
			return err
		},
	})
}

// WithZapLogger adapts a *zap.Logger into fx's own event logger, the same
// bridge the teacher's root fx.go wires up for its own module graph.
func WithZapLogger(l *zap.Logger) fx.Option {
	return fx.WithLogger(func() fxevent.Logger {
		return &fxevent.ZapLogger{Logger: l}
	})
}
