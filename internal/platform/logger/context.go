package logger

import (
	"context"
	"log/slog"
)

// contextKey is an unexported type to avoid collisions with other packages'
// context values.
type contextKey struct{}

var loggerKey = contextKey{}

// WithLogger returns a new context carrying the given logger.
// Handlers use this to thread a request-scoped logger (e.g. one annotated
// with a trace ID) down into stores and services.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext retrieves the logger from the context.
// Falls back to slog.Default() when the context carries no logger.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger from the context, falling back
// to the provided default instead of the process-wide one.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
