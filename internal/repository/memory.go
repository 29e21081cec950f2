package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/forgo/chapel/internal/model"
)

// MemoryStore implements DocumentStore in process memory.
// Records are returned in insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	name        string
	collections map[string][]model.Document
}

// NewMemoryStore creates an empty in-memory document store
func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{
		name:        name,
		collections: make(map[string][]model.Document),
	}
}

// Name returns the configured store name
func (s *MemoryStore) Name() string {
	return s.name
}

// Ping always succeeds
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Insert stores a copy of doc under a new id
func (s *MemoryStore) Insert(ctx context.Context, collection string, doc model.Document) (string, error) {
	if !isIdentifier(collection) {
		return "", fmt.Errorf("%w: invalid collection name %q", ErrStoreWrite, collection)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	stored := copyDocument(doc)
	id := uuid.NewString()
	stored[model.FieldID] = id

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], stored)
	s.mu.Unlock()

	return id, nil
}

// Query returns copies of at most limit matching documents
func (s *MemoryStore) Query(ctx context.Context, collection string, filter model.Filter, limit int) ([]model.Document, error) {
	if err := checkQuery(collection, filter, limit); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]model.Document, 0)
	for _, doc := range s.collections[collection] {
		if !matchesFilter(doc, filter) {
			continue
		}
		docs = append(docs, copyDocument(doc))
		if len(docs) == limit {
			break
		}
	}
	return docs, nil
}

// Collections lists every collection that holds at least one document
func (s *MemoryStore) Collections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
