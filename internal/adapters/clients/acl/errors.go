package acl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/inspire-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/inspire-quotes/internal/domain"
)

// ErrorResponse is the Google API error envelope:
// {"error":{"code":400,"message":"...","status":"INVALID_ARGUMENT"}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the body of ErrorResponse.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Google RPC status names that carry more meaning than the HTTP status.
const (
	StatusInvalidArgument    = "INVALID_ARGUMENT"
	StatusFailedPrecondition = "FAILED_PRECONDITION"
	StatusNotFound           = "NOT_FOUND"
	StatusPermissionDenied   = "PERMISSION_DENIED"
	StatusUnauthenticated    = "UNAUTHENTICATED"
	StatusResourceExhausted  = "RESOURCE_EXHAUSTED"
	StatusUnavailable        = "UNAVAILABLE"
)

// ParseErrorResponse decodes an error envelope. It returns nil when the body
// is not JSON or carries neither a message nor a status.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.Error.Message == "" && errResp.Error.Status == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError turns a failed exchange into a domain error. clientErr wins
// over resp; a 2xx response maps to nil.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	var body []byte
	if resp.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	}

	return MapStatus(resp.StatusCode, body, serviceName, operation)
}

// MapStatus maps a status code and an already read body to a domain error,
// or nil for 2xx.
func MapStatus(status int, body []byte, serviceName, operation string) error {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	return mapStatus(status, ParseErrorResponse(bytes.NewReader(body)), serviceName, operation)
}

func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))
	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

func mapStatus(status int, errResp *ErrorResponse, serviceName, operation string) error {
	message := fmt.Sprintf("%s failed with status %d", operation, status)
	rpcStatus := ""
	if errResp != nil {
		if errResp.Error.Message != "" {
			message = errResp.Error.Message
		}
		rpcStatus = errResp.Error.Status
	}

	switch {
	case rpcStatus == StatusResourceExhausted || status == http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")
	case rpcStatus == StatusUnauthenticated || status == http.StatusUnauthorized:
		return domain.NewForbiddenError(operation, "authentication required")
	case rpcStatus == StatusPermissionDenied || status == http.StatusForbidden:
		return domain.NewForbiddenError(operation, message)
	case rpcStatus == StatusNotFound || status == http.StatusNotFound:
		return domain.NewNotFoundError(serviceName, operation)
	case rpcStatus == StatusFailedPrecondition || status == http.StatusConflict:
		return domain.NewConflictError(operation, message)
	case rpcStatus == StatusInvalidArgument || status == http.StatusBadRequest:
		return domain.NewValidationError("", message)
	case status >= http.StatusInternalServerError || rpcStatus == StatusUnavailable:
		return domain.NewUnavailableError(serviceName, message)
	default:
		return domain.NewValidationError("", message)
	}
}
