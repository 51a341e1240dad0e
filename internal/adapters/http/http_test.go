package http

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/inspire-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/inspire-quotes/internal/adapters/identity"
	"github.com/jsamuelsen/inspire-quotes/internal/domain"
	"github.com/jsamuelsen/inspire-quotes/internal/platform/config"
	"github.com/jsamuelsen/inspire-quotes/internal/ports"
)

func decodeState(t *testing.T, w *httptest.ResponseRecorder) dto.StateResponse {
	t.Helper()

	var s dto.StateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s), w.Body.String())

	return s
}

func TestRouter_GenerateAndSave(t *testing.T) {
	s := newStack(t, stackConfig{})
	s.waitReady(t)

	state := decodeState(t, s.do(http.MethodGet, "/api/v1/state"))
	assert.Equal(t, domain.PlaceholderText, state.Quote.Text)
	assert.False(t, state.Loading)
	assert.True(t, state.Session.Ready)
	userID := state.Session.UserID
	require.NotEmpty(t, userID)

	s.model.replyWith("Stay hungry, stay foolish.", "Steve Jobs")
	w := s.do(http.MethodPost, "/api/v1/quotes/generate")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	state = decodeState(t, w)
	assert.Equal(t, "Stay hungry, stay foolish.", state.Quote.Text)
	assert.Equal(t, "Steve Jobs", state.Quote.Author)
	assert.Empty(t, state.QuoteError)
	assert.False(t, state.IsGenerating)

	w = s.do(http.MethodPost, "/api/v1/quotes/save")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.MsgSaved, decodeState(t, w).SaveMessage)

	docs, err := s.store.Documents(context.Background(), "artifacts/test-app/users/"+userID+"/quotes")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	for _, rec := range docs {
		assert.Equal(t, "Stay hungry, stay foolish.", rec.Text)
		assert.Equal(t, "Steve Jobs", rec.Author)
		_, err := time.Parse(domain.ISO8601Millis, rec.CreatedAt)
		assert.NoError(t, err)
	}

	s.fireTimers()
	assert.Empty(t, decodeState(t, s.do(http.MethodGet, "/api/v1/state")).SaveMessage)
}

func TestRouter_GenerationFailures(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantQuoteText string
		wantQuoteErr  string
	}{
		{
			name:          "no candidates",
			status:        http.StatusOK,
			body:          `{"candidates":[]}`,
			wantQuoteText: domain.MalformedQuoteText,
			wantQuoteErr:  domain.MsgGenerationFailed,
		},
		{
			name:          "error envelope",
			status:        http.StatusBadRequest,
			body:          `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`,
			wantQuoteText: domain.MalformedQuoteText,
			wantQuoteErr:  domain.MsgGenerationFailed,
		},
		{
			name:          "undecodable body",
			status:        http.StatusBadGateway,
			body:          `<html>bad gateway</html>`,
			wantQuoteText: domain.ExceptionQuoteText,
			wantQuoteErr:  "An error occurred: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStack(t, stackConfig{})
			s.waitReady(t)
			s.model.respond(tt.status, tt.body)

			w := s.do(http.MethodPost, "/api/v1/quotes/generate")
			require.Equal(t, http.StatusOK, w.Code)

			state := decodeState(t, w)
			assert.Equal(t, tt.wantQuoteText, state.Quote.Text)
			assert.Empty(t, state.Quote.Author)
			assert.True(t, strings.HasPrefix(state.QuoteError, tt.wantQuoteErr), state.QuoteError)
			assert.False(t, state.IsGenerating)
		})
	}
}

func TestRouter_SavePreconditions(t *testing.T) {
	s := newStack(t, stackConfig{})
	s.waitReady(t)

	w := s.do(http.MethodPost, "/api/v1/quotes/save")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.MsgNothingToSave, decodeState(t, w).SaveMessage)
	assert.Empty(t, s.timers, "precondition failures do not schedule a clear")
}

func TestRouter_BackendFailure(t *testing.T) {
	s := newStack(t, stackConfig{BackendConfig: "{not json"})

	state := decodeState(t, s.do(http.MethodGet, "/api/v1/state"))
	assert.False(t, state.Loading)
	assert.False(t, state.Session.Ready)
	assert.Equal(t, string(domain.AuthFailed), state.Session.State)

	s.model.replyWith("Onward.", "Me")
	w := s.do(http.MethodPost, "/api/v1/quotes/generate")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/quotes/save")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.MsgNotReady, decodeState(t, w).SaveMessage)

	w = s.do(http.MethodGet, "/-/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "backend")
}

func TestRouter_RejectsWhileLoading(t *testing.T) {
	s := newStack(t, stackConfig{Deferred: true})

	state := decodeState(t, s.do(http.MethodGet, "/api/v1/state"))
	assert.True(t, state.Loading)

	for _, path := range []string{"/api/v1/quotes/generate", "/api/v1/quotes/save"} {
		w := s.do(http.MethodPost, path)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
		assert.Contains(t, w.Body.String(), dto.ErrorCodeUnavailable, path)
	}
	assert.Zero(t, s.model.callCount())

	s.run()
	s.waitReady(t)

	w := s.do(http.MethodPost, "/api/v1/quotes/generate")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, s.model.callCount())
}

func TestRouter_CustomToken(t *testing.T) {
	token, err := identity.IssueCustomToken("s3cret", "", "user-42", time.Minute)
	require.NoError(t, err)

	s := newStack(t, stackConfig{
		BackendConfig: `{"projectId":"demo","auth":{"tokenSecret":"s3cret"}}`,
		Token:         token,
	})
	s.waitReady(t)

	state := decodeState(t, s.do(http.MethodGet, "/api/v1/state"))
	assert.Equal(t, "user-42", state.Session.UserID)
	assert.Equal(t, string(domain.AuthAuthenticated), state.Session.State)
}

func TestRouter_RejectedTokenFallsBackToAnonymous(t *testing.T) {
	s := newStack(t, stackConfig{
		BackendConfig: `{"auth":{"tokenSecret":"s3cret"}}`,
		Token:         "not-a-jwt",
	})
	s.waitReady(t)

	state := decodeState(t, s.do(http.MethodGet, "/api/v1/state"))
	assert.NotEmpty(t, state.Session.UserID)
	assert.NotEqual(t, "user-42", state.Session.UserID)
}

func TestRouter_Readiness(t *testing.T) {
	s := newStack(t, stackConfig{})
	s.waitReady(t)

	w := s.do(http.MethodGet, "/-/ready")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "generative-api")
	assert.Contains(t, w.Body.String(), "backend")
}

func TestRouter_RequestIDs(t *testing.T) {
	s := newStack(t, stackConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestSetupRouter_Routes(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		Logger:        discardLogger(),
		AppName:       "inspire-quotes-test",
		HealthHandler: handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.BuildInfo{}),
		QuoteHandler:  handlers.NewQuoteHandler(nil),
	})

	routes := make(map[string]bool)
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /api/v1/state",
		"POST /api/v1/quotes/generate",
		"POST /api/v1/quotes/save",
	} {
		assert.True(t, routes[want], "missing route: %s", want)
	}
}

func TestSetupRouter_NilHandlers(t *testing.T) {
	require.NotPanics(t, func() {
		SetupRouter(gin.New(), RouterConfig{Logger: discardLogger(), AppName: "x"})
	})
}

func testServerConfig(maxBody int64) *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		MaxRequestSize: maxBody,
	}
}

func TestServer_StartShutdown(t *testing.T) {
	srv := New(testServerConfig(1<<20), discardLogger())
	srv.Engine().GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	assert.Equal(t, "127.0.0.1:0", srv.Addr())

	errCh, err := srv.Start()
	require.NoError(t, err)
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr())

	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err, ok := <-errCh:
		assert.False(t, ok, "channel closes without an error, got %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to stop")
	}
}

func TestServer_StartBindFailure(t *testing.T) {
	first := New(testServerConfig(1<<20), discardLogger())
	_, err := first.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	cfg := testServerConfig(1 << 20)
	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	cfg.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	_, err = New(cfg, discardLogger()).Start()
	assert.Error(t, err)
}

func TestServer_MaxBodySize(t *testing.T) {
	srv := New(testServerConfig(10), discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("short")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 100))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
