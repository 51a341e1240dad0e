package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/inspire-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/inspire-quotes/internal/platform/logging"
)

// Recovery turns a panic into a 500 with the standard error envelope and
// logs the stack. It must run first so it covers every later middleware.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctx := c.Request.Context()
			traceID := TraceID(ctx)

			ctxLogger := logging.FromContext(ctx)
			if ctxLogger == slog.Default() && logger != nil {
				ctxLogger = logger
			}

			ctxLogger.Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("trace_id", traceID),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			resp := dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred")
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp.WithTraceID(traceID))
		}()

		c.Next()
	}
}

// TraceID returns the active OpenTelemetry trace id, or "".
func TraceID(ctx context.Context) string {
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}
