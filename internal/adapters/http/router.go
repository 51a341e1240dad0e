package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/inspire-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/http/middleware"
	"github.com/jsamuelsen/inspire-quotes/internal/platform/telemetry"
)

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	Logger *slog.Logger

	// AppName labels spans and HTTP metrics.
	AppName string

	HealthHandler *handlers.HealthHandler
	QuoteHandler  *handlers.QuoteHandler

	// Timeout applies to /api/v1 only; probes are never cut short. Zero
	// disables it.
	Timeout time.Duration
}

// SetupRouter installs middleware and routes. Middleware order:
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry
//  5. Logging (skips /-/ probes)
//
// Routes:
//   - /-/live, /-/ready, /-/build, /-/metrics
//   - /api/v1/state, /api/v1/quotes/generate, /api/v1/quotes/save
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.AppName)...)
	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(apiV1)
	}
}
