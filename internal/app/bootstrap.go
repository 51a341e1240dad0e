package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
	"github.com/jsamuelsen/inspire-quotes/internal/ports"
)

// DefaultAppID namespaces saved quotes when no app id is configured.
const DefaultAppID = "default-quote-app-id"

// BootstrapConfig is everything needed to reach the backend.
type BootstrapConfig struct {
	// BackendConfig is a JSON object, see BackendOptions. Empty means {}.
	BackendConfig string
	AppID         string

	// InitialAuthToken is tried as a custom token before anonymous sign-in.
	InitialAuthToken string
}

// BackendOptions is the decoded backend config blob.
type BackendOptions struct {
	ProjectID string       `json:"projectId"`
	Store     StoreOptions `json:"store"`
	Auth      AuthOptions  `json:"auth"`
}

// StoreOptions selects the document store driver.
type StoreOptions struct {
	Driver    string `json:"driver"`
	Path      string `json:"path"`
	RedisAddr string `json:"redisAddr"`
	RedisDB   int    `json:"redisDb"`
}

// AuthOptions configures custom token verification.
type AuthOptions struct {
	TokenSecret string `json:"tokenSecret"`
	TokenIssuer string `json:"tokenIssuer"`
}

// ParseOptions decodes the backend config blob. Unknown keys are an error
// so typos surface at startup.
func ParseOptions(blob string) (BackendOptions, error) {
	var opts BackendOptions

	blob = strings.TrimSpace(blob)
	if blob == "" {
		return opts, nil
	}

	dec := json.NewDecoder(strings.NewReader(blob))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&opts); err != nil {
		return BackendOptions{}, fmt.Errorf("%w: %w", domain.ErrBackendConfig, err)
	}

	return opts, nil
}

// Opener builds the backend handles. Both functions are required.
type Opener struct {
	OpenAuth  func(ctx context.Context, opts AuthOptions) (ports.AuthService, error)
	OpenStore func(ctx context.Context, opts StoreOptions) (ports.DocumentStore, error)
}

// Bootstrap opens the backend once and hands the auth handle to the session
// manager. On failure the session is marked failed and nothing is retried.
type Bootstrap struct {
	cfg     BootstrapConfig
	opener  Opener
	session *SessionManager
	logger  *slog.Logger

	once   sync.Once
	err    error
	mu     sync.RWMutex
	ran    bool
	auth   ports.AuthService
	store  ports.DocumentStore
	closer sync.Once
}

// NewBootstrap applies DefaultAppID.
func NewBootstrap(cfg BootstrapConfig, opener Opener, session *SessionManager, logger *slog.Logger) *Bootstrap {
	if cfg.AppID == "" {
		cfg.AppID = DefaultAppID
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Bootstrap{
		cfg:     cfg,
		opener:  opener,
		session: session,
		logger:  logger.With(slog.String("component", "app.Bootstrap")),
	}
}

// AppID is the configured or default app id.
func (b *Bootstrap) AppID() string {
	return b.cfg.AppID
}

// Run opens the auth and store handles concurrently and attaches the session
// listener. Later calls return the first result.
func (b *Bootstrap) Run(ctx context.Context) error {
	b.once.Do(func() {
		b.err = b.run(ctx)

		b.mu.Lock()
		b.ran = true
		b.mu.Unlock()

		if b.err != nil {
			b.session.MarkFailed()
			b.logger.ErrorContext(ctx, "backend initialization failed", slog.Any("error", b.err))
		}
	})

	return b.err
}

func (b *Bootstrap) run(ctx context.Context) error {
	opts, err := ParseOptions(b.cfg.BackendConfig)
	if err != nil {
		return err
	}

	if b.opener.OpenAuth == nil || b.opener.OpenStore == nil {
		return fmt.Errorf("%w: no backend opener configured", domain.ErrBackendConfig)
	}

	// Handles that opened before the other failed are closed below.
	var (
		openedMu    sync.Mutex
		openedAuth  ports.AuthService
		openedStore ports.DocumentStore
	)

	auth, store, err := Parallel2(ctx,
		func(ctx context.Context) (ports.AuthService, error) {
			a, err := b.opener.OpenAuth(ctx, opts.Auth)
			if err != nil {
				return nil, fmt.Errorf("open auth: %w", err)
			}
			openedMu.Lock()
			openedAuth = a
			openedMu.Unlock()
			return a, nil
		},
		func(ctx context.Context) (ports.DocumentStore, error) {
			s, err := b.opener.OpenStore(ctx, opts.Store)
			if err != nil {
				return nil, fmt.Errorf("open store: %w", err)
			}
			openedMu.Lock()
			openedStore = s
			openedMu.Unlock()
			return s, nil
		},
	)
	if err != nil {
		closeQuietly(openedAuth)
		closeQuietly(openedStore)
		return err
	}

	b.mu.Lock()
	b.auth = auth
	b.store = store
	b.mu.Unlock()

	b.logger.InfoContext(ctx, "backend initialized",
		slog.String("project_id", opts.ProjectID),
		slog.String("app_id", b.cfg.AppID),
		slog.String("store_driver", opts.Store.Driver),
	)

	b.session.Attach(auth, b.cfg.InitialAuthToken)

	return nil
}

// Store returns the document store, or nil until Run has succeeded.
func (b *Bootstrap) Store() ports.DocumentStore {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.store
}

// Name implements ports.HealthChecker.
func (b *Bootstrap) Name() string {
	return "backend"
}

// Check reports the bootstrap outcome and, once up, the store's own health.
func (b *Bootstrap) Check(ctx context.Context) error {
	b.mu.RLock()
	ran, store := b.ran, b.store
	b.mu.RUnlock()

	if !ran {
		return domain.NewUnavailableError("backend", "not initialized")
	}
	if b.err != nil {
		return domain.NewUnavailableError("backend", b.err.Error())
	}

	if hc, ok := store.(ports.HealthChecker); ok {
		return hc.Check(ctx)
	}

	return nil
}

// Close releases the auth and store handles. Safe to call more than once.
func (b *Bootstrap) Close() error {
	var errs []error

	b.closer.Do(func() {
		b.mu.RLock()
		auth, store := b.auth, b.store
		b.mu.RUnlock()

		for _, h := range []any{auth, store} {
			if c, ok := h.(io.Closer); ok {
				if err := c.Close(); err != nil {
					errs = append(errs, err)
				}
			}
		}
	})

	return errors.Join(errs...)
}

func closeQuietly(h any) {
	if c, ok := h.(io.Closer); ok {
		_ = c.Close()
	}
}
