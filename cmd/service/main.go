// Package main is the entry point for the service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/inspire-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/clients/acl"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/docstore"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/flags"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/http"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/identity"
	"github.com/jsamuelsen/inspire-quotes/internal/app"
	"github.com/jsamuelsen/inspire-quotes/internal/platform/config"
	"github.com/jsamuelsen/inspire-quotes/internal/platform/logging"
	"github.com/jsamuelsen/inspire-quotes/internal/platform/telemetry"
	"github.com/jsamuelsen/inspire-quotes/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	quoteMetrics, err := telemetry.NewQuoteMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("registering quote metrics: %w", err)
	}

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Create the generative API client (ACL pattern)
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Generator.Endpoint,
		ServiceName: acl.GeminiServiceName,
		Timeout:     cfg.Client.Timeout,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc:    acl.APIKeyAuth(cfg.Generator.APIKey),
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	gemini := acl.NewGeminiClient(httpClient, cfg.Generator.Model, logger)
	if err := healthRegistry.Register(gemini); err != nil {
		return fmt.Errorf("registering generative client health check: %w", err)
	}

	// 7. Session, backend bootstrap and quote state (application layer)
	featureFlags := flags.New(cfg.Features)
	session := app.NewSessionManager(featureFlags, logger)
	defer session.Close()

	bootstrap := app.NewBootstrap(
		app.BootstrapConfig{
			BackendConfig:    cfg.Backend.Config,
			AppID:            cfg.Backend.AppID,
			InitialAuthToken: cfg.Backend.Token,
		},
		backendOpener(logger),
		session,
		logger,
	)
	defer func() {
		if closeErr := bootstrap.Close(); closeErr != nil {
			logger.Error("backend close error", slog.Any("error", closeErr))
		}
	}()

	if err := healthRegistry.Register(bootstrap); err != nil {
		return fmt.Errorf("registering backend health check: %w", err)
	}

	view := app.NewView()
	quotes := app.NewQuoteApp(
		session,
		view,
		app.NewGenerator(gemini, view, featureFlags, quoteMetrics, logger),
		app.NewPersister(app.PersisterConfig{
			Session: session,
			Store:   bootstrap.Store,
			AppID:   bootstrap.AppID(),
			View:    view,
			Exec:    app.NewExecutor(logger),
			Metrics: quoteMetrics,
			Logger:  logger,
		}),
	)

	// 8. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	quoteHandler := handlers.NewQuoteHandler(quotes)

	// 9. Create HTTP server and router
	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		AppName:       cfg.App.Name,
		HealthHandler: healthHandler,
		QuoteHandler:  quoteHandler,
		Timeout:       cfg.Server.RequestTimeout,
	})

	// 10. Start server (non-blocking); requests see loading until the
	// backend is up.
	serverErr, err := server.Start()
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	// 11. Open the backend in the background. A failure leaves the session
	// FAILED and is reported by /-/ready; the server keeps running.
	go func() {
		_ = bootstrap.Run(ctx)
	}()

	// 12. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// backendOpener opens the local identity service and the configured
// document store.
func backendOpener(logger *slog.Logger) app.Opener {
	return app.Opener{
		OpenAuth: func(_ context.Context, opts app.AuthOptions) (ports.AuthService, error) {
			return identity.New(identity.Options{
				TokenSecret: opts.TokenSecret,
				TokenIssuer: opts.TokenIssuer,
				Logger:      logger,
			}), nil
		},
		OpenStore: func(ctx context.Context, opts app.StoreOptions) (ports.DocumentStore, error) {
			store, err := docstore.Open(ctx, docstore.Options{
				Driver:    opts.Driver,
				Path:      opts.Path,
				RedisAddr: opts.RedisAddr,
				RedisDB:   opts.RedisDB,
				Logger:    logger,
			})
			if err != nil {
				return nil, err
			}

			return store, nil
		},
	}
}

// waitForShutdown blocks until a shutdown signal is received or the server
// fails, then drains in-flight requests.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if !ok {
			return errors.New("server stopped unexpectedly")
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
