package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jsamuelsen/inspire-quotes/internal/adapters/clients"
)

// maxBodyBytes caps how much of a downstream response is read.
const maxBodyBytes = 1 << 20

// Exchange is a completed request whose body has been read in full.
type Exchange struct {
	Status int
	Body   []byte
}

// OK reports a 2xx status.
func (e *Exchange) OK() bool {
	return e.Status >= 200 && e.Status < 300
}

// BaseAdapter is embedded by service adapters. It owns the client and the
// downstream name used in domain errors.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter wraps client for serviceName.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
	}
}

// Client returns the underlying HTTP client.
func (a *BaseAdapter) Client() *clients.Client {
	return a.client
}

// ServiceName returns the downstream name.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// PostJSON encodes payload, posts it to path and reads the response. Only a
// failure to get a response is an error, already mapped to a domain error;
// interpreting the status is left to the caller.
func (a *BaseAdapter) PostJSON(ctx context.Context, path string, payload any, operation string) (*Exchange, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", operation, err)
	}

	resp, err := a.client.Post(ctx, path, bytes.NewReader(data))
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, MapHTTPError(nil, fmt.Errorf("reading body: %w", err), a.serviceName, operation)
	}

	return &Exchange{Status: resp.StatusCode, Body: body}, nil
}

// Decode unmarshals data into a new T.
func Decode[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &out, nil
}
