package logging

import (
	"context"
	"log/slog"
)

// Attribute keys attached to the context logger.
const (
	KeyRequestID     = "request_id"
	KeyCorrelationID = "correlation_id"
	KeyTraceID       = "trace_id"
	KeyUserID        = "user_id"
)

type ctxKey struct{}

var defaultLogger = slog.Default()

// FromContext returns the logger stored by WithContext, or the default
// logger. A nil ctx is allowed.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return logger
		}
	}

	return defaultLogger
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// With stores a copy of the context logger carrying key=value. Empty values
// are skipped.
func With(ctx context.Context, key, value string) context.Context {
	if value == "" {
		return ctx
	}

	return WithContext(ctx, FromContext(ctx).With(slog.String(key, value)))
}

// SetDefault replaces the logger returned when ctx carries none, and the slog
// default with it.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
