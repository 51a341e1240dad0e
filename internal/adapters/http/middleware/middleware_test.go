package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/inspire-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/inspire-quotes/internal/platform/logging"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func init() {
	gin.SetMode(gin.TestMode)
}

// withLogger installs a JSON logger writing to buf as the request logger.
func withLogger(buf *bytes.Buffer) gin.HandlerFunc {
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	}
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestIDMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		mw     gin.HandlerFunc
		header string
		get    func(*gin.Context) string
		fromCx func(context.Context) string
	}{
		{"request id", RequestID(), HeaderRequestID, GetRequestID, RequestIDFromContext},
		{"correlation id", CorrelationID(), HeaderCorrelationID, GetCorrelationID, CorrelationIDFromContext},
	}

	for _, tt := range tests {
		t.Run(tt.name+" generated", func(t *testing.T) {
			var fromGin, fromCtx string

			r := gin.New()
			r.Use(tt.mw)
			r.GET("/", func(c *gin.Context) {
				fromGin = tt.get(c)
				fromCtx = tt.fromCx(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

			echoed := w.Header().Get(tt.header)
			assert.Regexp(t, uuidPattern, echoed)
			assert.Equal(t, echoed, fromGin)
			assert.Equal(t, echoed, fromCtx)
		})

		t.Run(tt.name+" propagated", func(t *testing.T) {
			r := gin.New()
			r.Use(tt.mw)
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(tt.header, "client-supplied")

			w := serve(r, req)
			assert.Equal(t, "client-supplied", w.Header().Get(tt.header))
		})
	}
}

func TestIDMiddleware_EnrichesLogger(t *testing.T) {
	var buf bytes.Buffer

	r := gin.New()
	r.Use(withLogger(&buf), RequestID(), CorrelationID())
	r.GET("/", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("handled")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	req.Header.Set(HeaderCorrelationID, "corr-1")
	serve(r, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "corr-1", entry["correlation_id"])
}

func TestIDFromContext_Missing(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, CorrelationIDFromContext(nil)) //nolint:staticcheck // nil guard
	assert.Equal(t, "boot-1", RequestIDFromContext(ContextWithRequestID(context.Background(), "boot-1")))
}

func TestLogging(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusConflict, "WARN"},
		{http.StatusServiceUnavailable, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer

			r := gin.New()
			r.Use(withLogger(&buf), Logging(nil))
			r.POST("/api/v1/quotes/generate", func(c *gin.Context) { c.Status(tt.status) })

			serve(r, httptest.NewRequest(http.MethodPost, "/api/v1/quotes/generate", nil))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "/api/v1/quotes/generate", entry["route"])
			assert.InDelta(t, tt.status, entry["status"], 0)
		})
	}
}

func TestLogging_SkipsOpsAndListedPaths(t *testing.T) {
	var buf bytes.Buffer

	r := gin.New()
	r.Use(withLogger(&buf), Logging(nil, "/favicon.ico"))
	r.GET("/-/live", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/favicon.ico", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodGet, "/-/live", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))

	assert.Empty(t, buf.String())
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer

	r := gin.New()
	r.Use(Recovery(slog.New(slog.NewJSONHandler(&buf, nil))))
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
	assert.NotContains(t, w.Body.String(), "kaboom")

	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "kaboom")
}

func TestSimpleTimeout(t *testing.T) {
	var deadline time.Time
	var ok bool

	r := gin.New()
	r.Use(SimpleTimeout(5 * time.Second))
	r.GET("/", func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}

func TestTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
}
