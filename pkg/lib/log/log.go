// Package log provides the logging façade used across the reservation core.
//
// It wraps the standard library's log/slog so that every component logs
// through a small, consistent API instead of reaching for slog directly.
package log

import (
	"context"
	"log/slog"
	"os"
)

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger resolves slog.Default() on every call rather than capturing it
// at construction time, so swapping the default logger (e.g. a test harness
// redirecting output via slog.SetDefault) takes effect for loggers handed
// out earlier too.
type LazyLogger struct {
	component string
}

// Debug logs at debug level, tagged with the logger's component.
func (l *LazyLogger) Debug(msg string, args ...any) {
	slog.Default().With("component", l.component).Debug(msg, args...)
}

// Info logs at info level, tagged with the logger's component.
func (l *LazyLogger) Info(msg string, args ...any) {
	slog.Default().With("component", l.component).Info(msg, args...)
}

// Warn logs at warn level, tagged with the logger's component.
func (l *LazyLogger) Warn(msg string, args ...any) {
	slog.Default().With("component", l.component).Warn(msg, args...)
}

// Error logs at error level, tagged with the logger's component.
func (l *LazyLogger) Error(msg string, args ...any) {
	slog.Default().With("component", l.component).Error(msg, args...)
}

// DebugContext logs at debug level with a context, tagged with the component.
func (l *LazyLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	slog.Default().With("component", l.component).DebugContext(ctx, msg, args...)
}

// InfoContext logs at info level with a context, tagged with the component.
func (l *LazyLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	slog.Default().With("component", l.component).InfoContext(ctx, msg, args...)
}

// With returns a slog.Logger carrying the component tag plus extra attrs.
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return slog.Default().With("component", l.component).With(args...)
}

// Logger returns a component-scoped LazyLogger.
//
//	var logger = log.Logger("reservation/manager")
//	logger.Info("reservation created", "udp", udp, "tcp", tcp)
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

// TruncateID safely truncates an identifier for log output, avoiding a
// slice-bounds panic when id is shorter than maxLen.
func TruncateID(id string, maxLen int) string {
	if len(id) <= maxLen {
		return id
	}
	return id[:maxLen]
}

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}
