package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/inspire-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/clients/acl"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/docstore"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/flags"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/identity"
	"github.com/jsamuelsen/inspire-quotes/internal/app"
	"github.com/jsamuelsen/inspire-quotes/internal/platform/config"
	"github.com/jsamuelsen/inspire-quotes/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeModel stands in for the generative endpoint.
type fakeModel struct {
	server *httptest.Server

	mu     sync.Mutex
	status int
	body   string
	calls  int
}

func newFakeModel(t testing.TB) *fakeModel {
	t.Helper()

	m := &fakeModel{}
	m.replyWith("Keep going.", "Anon")

	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		m.mu.Lock()
		m.calls++
		status, body := m.status, m.body
		m.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(m.server.Close)

	return m
}

func (m *fakeModel) respond(status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.status, m.body = status, body
}

func (m *fakeModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls
}

func (m *fakeModel) replyWith(quote, author string) {
	text := `Quote: "` + quote + `" Author: ` + author
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	m.respond(http.StatusOK, string(b))
}

// stackConfig varies the backend for one test.
type stackConfig struct {
	BackendConfig string
	Token         string
	Features      map[string]bool

	// Deferred leaves the backend unopened until run is called.
	Deferred bool
}

// stack is the whole service wired in process: real auth, memory store,
// real generative client against fakeModel.
type stack struct {
	engine    *gin.Engine
	model     *fakeModel
	store     *docstore.MemoryStore
	session   *app.SessionManager
	bootstrap *app.Bootstrap

	timersMu sync.Mutex
	timers   []func()
}

func newStack(t testing.TB, cfg stackConfig) *stack {
	t.Helper()

	logger := discardLogger()
	s := &stack{
		model: newFakeModel(t),
		store: docstore.NewMemoryStore(),
	}

	client, err := clients.New(&clients.Config{
		BaseURL:     s.model.server.URL,
		ServiceName: acl.GeminiServiceName,
		Timeout:     2 * time.Second,
		Circuit:     config.CircuitBreakerConfig{MaxFailures: 100, Timeout: time.Second, HalfOpenLimit: 1},
		AuthFunc:    acl.APIKeyAuth("test-key"),
		Logger:      logger,
	})
	require.NoError(t, err)
	gemini := acl.NewGeminiClient(client, "gemini-2.0-flash", logger)

	featureFlags := flags.New(cfg.Features)
	s.session = app.NewSessionManager(featureFlags, logger)
	view := app.NewView()

	s.bootstrap = app.NewBootstrap(
		app.BootstrapConfig{BackendConfig: cfg.BackendConfig, AppID: "test-app", InitialAuthToken: cfg.Token},
		app.Opener{
			OpenAuth: func(_ context.Context, opts app.AuthOptions) (ports.AuthService, error) {
				return identity.New(identity.Options{TokenSecret: opts.TokenSecret, TokenIssuer: opts.TokenIssuer, Logger: logger}), nil
			},
			OpenStore: func(context.Context, app.StoreOptions) (ports.DocumentStore, error) {
				return s.store, nil
			},
		},
		s.session,
		logger,
	)
	t.Cleanup(func() {
		s.session.Close()
		_ = s.bootstrap.Close()
	})

	quotes := app.NewQuoteApp(
		s.session,
		view,
		app.NewGenerator(gemini, view, featureFlags, nil, logger),
		app.NewPersister(app.PersisterConfig{
			Session:   s.session,
			Store:     s.bootstrap.Store,
			AppID:     s.bootstrap.AppID(),
			View:      view,
			Logger:    logger,
			AfterFunc: s.afterFunc,
		}),
	)

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(gemini))
	require.NoError(t, registry.Register(s.bootstrap))

	s.engine = gin.New()
	SetupRouter(s.engine, RouterConfig{
		Logger:        logger,
		AppName:       "inspire-quotes-test",
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "")),
		QuoteHandler:  handlers.NewQuoteHandler(quotes),
		Timeout:       5 * time.Second,
	})

	if !cfg.Deferred {
		s.run()
	}

	return s
}

func (s *stack) run() {
	_ = s.bootstrap.Run(context.Background())
}

func (s *stack) afterFunc(_ time.Duration, f func()) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()

	s.timers = append(s.timers, f)
}

func (s *stack) fireTimers() {
	s.timersMu.Lock()
	pending := s.timers
	s.timers = nil
	s.timersMu.Unlock()

	for _, f := range pending {
		f()
	}
}

// waitReady blocks until the auth listener has opened the loading gate.
func (s *stack) waitReady(t testing.TB) {
	t.Helper()

	require.Eventually(t, func() bool {
		return !s.session.Loading(context.Background()) && s.session.Session().Ready
	}, 2*time.Second, 5*time.Millisecond)
}

func (s *stack) do(method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}
