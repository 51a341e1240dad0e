package docstore

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
)

// MemoryStore is a process-local store, used in tests and for throwaway runs.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]domain.PersistedQuoteRecord
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]domain.PersistedQuoteRecord)}
}

func (s *MemoryStore) AddDocument(_ context.Context, collectionPath string, record domain.PersistedQuoteRecord) (string, error) {
	if err := validateCollection(collectionPath); err != nil {
		return "", err
	}

	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[collectionPath]
	if !ok {
		coll = make(map[string]domain.PersistedQuoteRecord)
		s.collections[collectionPath] = coll
	}
	coll[id] = record

	return id, nil
}

func (s *MemoryStore) Documents(_ context.Context, collectionPath string) (map[string]domain.PersistedQuoteRecord, error) {
	if err := validateCollection(collectionPath); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.PersistedQuoteRecord, len(s.collections[collectionPath]))
	maps.Copy(out, s.collections[collectionPath])

	return out, nil
}

func (s *MemoryStore) Name() string { return "document-store" }

func (s *MemoryStore) Check(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
