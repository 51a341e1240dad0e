package acl

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/inspire-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/inspire-quotes/internal/domain"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		resp   *http.Response
		errIn  error
		is     func(error) bool
		substr string
	}{
		{
			name:  "circuit open",
			errIn: clients.ErrCircuitOpen,
			is:    domain.IsUnavailable, substr: "circuit breaker open",
		},
		{
			name:  "transport failure",
			errIn: errors.New("connection refused"),
			is:    domain.IsUnavailable, substr: "connection refused",
		},
		{
			name: "nil response",
			is:   domain.IsUnavailable, substr: "no response",
		},
		{
			name: "bad request with envelope",
			resp: response(http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`),
			is:   domain.IsValidation, substr: "API key not valid",
		},
		{
			name: "permission denied",
			resp: response(http.StatusForbidden, `{"error":{"code":403,"message":"denied","status":"PERMISSION_DENIED"}}`),
			is:   domain.IsForbidden, substr: "denied",
		},
		{
			name: "unauthorized",
			resp: response(http.StatusUnauthorized, ``),
			is:   domain.IsForbidden, substr: "authentication required",
		},
		{
			name: "model not found",
			resp: response(http.StatusNotFound, `{"error":{"code":404,"message":"models/x is not found","status":"NOT_FOUND"}}`),
			is:   domain.IsNotFound,
		},
		{
			name: "quota exhausted",
			resp: response(http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`),
			is:   domain.IsUnavailable, substr: "rate limit",
		},
		{
			name: "server error without body",
			resp: response(http.StatusBadGateway, `<html>bad gateway</html>`),
			is:   domain.IsUnavailable, substr: "status 502",
		},
		{
			name: "unknown 4xx",
			resp: response(http.StatusTeapot, ``),
			is:   domain.IsValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(tt.resp, tt.errIn, GeminiServiceName, opGenerate)

			require.Error(t, err)
			assert.True(t, tt.is(err), "unexpected error kind: %v", err)
			if tt.substr != "" {
				assert.Contains(t, err.Error(), tt.substr)
			}
		})
	}
}

func TestMapHTTPError_SuccessIsNil(t *testing.T) {
	assert.NoError(t, MapHTTPError(response(http.StatusOK, `{}`), nil, GeminiServiceName, opGenerate))
	assert.NoError(t, MapStatus(http.StatusNoContent, nil, GeminiServiceName, opGenerate))
}

func TestParseErrorResponse(t *testing.T) {
	got := ParseErrorResponse(strings.NewReader(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
	require.NotNil(t, got)
	assert.Equal(t, 500, got.Error.Code)
	assert.Equal(t, "boom", got.Error.Message)
	assert.Equal(t, "INTERNAL", got.Error.Status)

	assert.Nil(t, ParseErrorResponse(nil))
	assert.Nil(t, ParseErrorResponse(strings.NewReader(``)))
	assert.Nil(t, ParseErrorResponse(strings.NewReader(`not json`)))
	assert.Nil(t, ParseErrorResponse(strings.NewReader(`{"candidates":[]}`)))
}

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	got, err := Decode[payload]([]byte(`{"name":"ada"}`))
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Name)

	_, err = Decode[payload]([]byte(`{`))
	assert.ErrorContains(t, err, "decoding response")
}

func TestExchange_OK(t *testing.T) {
	assert.True(t, (&Exchange{Status: 200}).OK())
	assert.True(t, (&Exchange{Status: 204}).OK())
	assert.False(t, (&Exchange{Status: 301}).OK())
	assert.False(t, (&Exchange{Status: 500}).OK())
}
