// Package middleware provides HTTP middleware for the Gin framework.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/inspire-quotes/internal/platform/logging"
)

const (
	// HeaderRequestID identifies a single request.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID ties together every request of one client action,
	// including the outbound generative call.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin.Context key for the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin.Context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyCorrelationID
)

type idSpec struct {
	header string
	ginKey string
	ctxKey ctxKey
	logKey string
}

var (
	requestIDSpec = idSpec{
		header: HeaderRequestID,
		ginKey: ContextKeyRequestID,
		ctxKey: ctxKeyRequestID,
		logKey: logging.KeyRequestID,
	}
	correlationIDSpec = idSpec{
		header: HeaderCorrelationID,
		ginKey: ContextKeyCorrelationID,
		ctxKey: ctxKeyCorrelationID,
		logKey: logging.KeyCorrelationID,
	}
)

// RequestID extracts X-Request-ID or generates a UUID, echoes it on the
// response and stores it in both contexts and the context logger.
func RequestID() gin.HandlerFunc {
	return idMiddleware(requestIDSpec)
}

// CorrelationID is RequestID for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(correlationIDSpec)
}

func idMiddleware(spec idSpec) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(spec.header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(spec.ginKey, id)
		c.Header(spec.header, id)

		ctx := context.WithValue(c.Request.Context(), spec.ctxKey, id)
		c.Request = c.Request.WithContext(logging.With(ctx, spec.logKey, id))

		c.Next()
	}
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID stored by CorrelationID, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

// RequestIDFromContext is used by client adapters to propagate the ID.
func RequestIDFromContext(ctx context.Context) string {
	return idFromContext(ctx, ctxKeyRequestID)
}

// CorrelationIDFromContext is used by client adapters to propagate the ID.
func CorrelationIDFromContext(ctx context.Context) string {
	return idFromContext(ctx, ctxKeyCorrelationID)
}

// ContextWithRequestID stores a request ID outside of an HTTP request, for
// work started by the bootstrap.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

func idFromContext(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}
