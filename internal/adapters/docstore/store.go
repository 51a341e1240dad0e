// Package docstore holds the append-only document store adapters. Documents
// are addressed by slash-separated collection paths such as
// artifacts/{appId}/users/{userId}/quotes and get a generated UUID id.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
	"github.com/jsamuelsen/inspire-quotes/internal/ports"
)

// Drivers accepted by Open.
const (
	DriverDisk   = "disk"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// DefaultDiskPath is used by the disk driver when no path is configured.
const DefaultDiskPath = "./data"

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown document store driver")

// Store is a document store with a health check and a lifetime.
type Store interface {
	ports.DocumentStore
	ports.HealthChecker

	// Documents returns every record under collectionPath, keyed by id.
	Documents(ctx context.Context, collectionPath string) (map[string]domain.PersistedQuoteRecord, error)

	Close() error
}

// Options selects and configures a driver.
type Options struct {
	Driver    string
	Path      string
	RedisAddr string
	RedisDB   int
	Logger    *slog.Logger
}

// Open builds the configured store. An empty driver means disk.
func Open(ctx context.Context, opts Options) (Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch opts.Driver {
	case "", DriverDisk:
		path := opts.Path
		if path == "" {
			path = DefaultDiskPath
		}
		return NewDiskStore(path, logger), nil
	case DriverRedis:
		s, err := NewRedisStore(ctx, opts.RedisAddr, opts.RedisDB, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

func validateCollection(path string) error {
	if path == "" || strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") {
		return domain.NewValidationError("collectionPath", "must be a relative slash-separated path")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return domain.NewValidationError("collectionPath", "contains an empty or relative segment")
		}
	}

	return nil
}
