package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/inspire-quotes/internal/platform/logging"
)

// opsPrefix marks the probe and metrics routes, which are never logged.
const opsPrefix = "/-/"

// Logging logs one line per completed request through the context logger,
// which already carries request_id and correlation_id. 5xx responses log at
// error, 4xx at warn. Paths under /-/ and any extra skipPaths are ignored.
func Logging(logger *slog.Logger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok || strings.HasPrefix(path, opsPrefix) {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		ctx := c.Request.Context()
		ctxLogger := logging.FromContext(ctx)
		if ctxLogger == slog.Default() && logger != nil {
			ctxLogger = logger
		}

		status := c.Writer.Status()
		latency := time.Since(start)

		ctxLogger.Log(ctx, levelForStatus(status), "request completed",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
