package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
)

// RedisStore keeps each collection in one hash; the field is the document id
// and the value its JSON encoding.
type RedisStore struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// NewRedisStore connects to addr, which may be a redis:// URL or a bare
// host:port. The connection is verified with PING.
func NewRedisStore(ctx context.Context, addr string, db int, logger *slog.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "docstore.RedisStore"))

	opt, err := redis.ParseURL(addr)
	if err != nil {
		logger.Debug("redis address is not a URL, using it as host:port", slog.String("addr", addr))
		opt = &redis.Options{
			Addr: addr,
			DB:   db,
		}
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, domain.NewUnavailableError("redis", err.Error())
	}

	return &RedisStore{rdb: rdb, logger: logger}, nil
}

// AddDocument stores record under a new id in the collection's hash.
func (s *RedisStore) AddDocument(ctx context.Context, collectionPath string, record domain.PersistedQuoteRecord) (string, error) {
	if err := validateCollection(collectionPath); err != nil {
		return "", err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encoding record: %w", err)
	}

	id := uuid.NewString()
	if err := s.rdb.HSet(ctx, hashKey(collectionPath), id, data).Err(); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}

	s.logger.DebugContext(ctx, "document written",
		slog.String("collection", collectionPath),
		slog.String("id", id),
	)

	return id, nil
}

// Documents returns the whole collection hash decoded.
func (s *RedisStore) Documents(ctx context.Context, collectionPath string) (map[string]domain.PersistedQuoteRecord, error) {
	if err := validateCollection(collectionPath); err != nil {
		return nil, err
	}

	raw, err := s.rdb.HGetAll(ctx, hashKey(collectionPath)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading collection: %w", err)
	}

	out := make(map[string]domain.PersistedQuoteRecord, len(raw))
	for id, v := range raw {
		var rec domain.PersistedQuoteRecord
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", id, err)
		}
		out[id] = rec
	}

	return out, nil
}

// Name implements ports.HealthChecker.
func (s *RedisStore) Name() string {
	return "document-store"
}

// Check pings the server.
func (s *RedisStore) Check(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func hashKey(collectionPath string) string {
	return strings.ReplaceAll(collectionPath, "/", ":")
}
