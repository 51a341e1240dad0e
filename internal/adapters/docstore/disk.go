package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
)

const (
	docExt       = ".json"
	diskCacheMax = 1024 * 1024
)

// DiskStore keeps one JSON file per document under BasePath, mirroring the
// collection path as directories.
type DiskStore struct {
	d        *diskv.Diskv
	basePath string
	logger   *slog.Logger
}

// NewDiskStore opens a diskv store rooted at basePath.
func NewDiskStore(basePath string, logger *slog.Logger) *DiskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPath,
			InverseTransform:  pathToKey,
			CacheSizeMax:      diskCacheMax,
		}),
		basePath: basePath,
		logger:   logger.With(slog.String("component", "docstore.DiskStore")),
	}
}

// AddDocument writes record as {collectionPath}/{uuid}.json.
func (s *DiskStore) AddDocument(_ context.Context, collectionPath string, record domain.PersistedQuoteRecord) (string, error) {
	if err := validateCollection(collectionPath); err != nil {
		return "", err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encoding record: %w", err)
	}

	id := uuid.NewString()
	if err := s.d.Write(collectionPath+"/"+id, data); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}

	s.logger.Debug("document written",
		slog.String("collection", collectionPath),
		slog.String("id", id),
	)

	return id, nil
}

// Documents reads every document directly inside collectionPath.
func (s *DiskStore) Documents(ctx context.Context, collectionPath string) (map[string]domain.PersistedQuoteRecord, error) {
	if err := validateCollection(collectionPath); err != nil {
		return nil, err
	}

	prefix := collectionPath + "/"
	out := make(map[string]domain.PersistedQuoteRecord)

	for key := range s.d.KeysPrefix(prefix, ctx.Done()) {
		id := strings.TrimPrefix(key, prefix)
		if strings.Contains(id, "/") {
			continue
		}

		data, err := s.d.Read(key)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", key, err)
		}

		var rec domain.PersistedQuoteRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", key, err)
		}

		out[id] = rec
	}

	return out, ctx.Err()
}

// Name implements ports.HealthChecker.
func (s *DiskStore) Name() string {
	return "document-store"
}

// Check reports whether the base directory can be created and written.
func (s *DiskStore) Check(context.Context) error {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return fmt.Errorf("document store path: %w", err)
	}

	f, err := os.CreateTemp(s.basePath, ".health-*")
	if err != nil {
		return fmt.Errorf("document store not writable: %w", err)
	}

	name := f.Name()
	_ = f.Close()

	return os.Remove(name)
}

// Close is a no-op; diskv holds no open handles.
func (s *DiskStore) Close() error {
	return nil
}

func keyToPath(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")

	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + docExt,
	}
}

func pathToKey(pk *diskv.PathKey) string {
	name := strings.TrimSuffix(pk.FileName, docExt)
	if len(pk.Path) == 0 {
		return name
	}

	return strings.Join(pk.Path, "/") + "/" + name
}
