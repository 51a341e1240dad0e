// Package clients provides the instrumented HTTP client used by outbound
// adapters. Its errors describe infrastructure failures; the acl package
// turns them into domain errors.
package clients

import "errors"

var (
	// ErrCircuitOpen is returned without sending when the breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRequestFailed wraps a transport-level failure.
	ErrRequestFailed = errors.New("request failed")
)
