package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/recuperacredito/recupera-go/internal/dataset"
)

// DatasetStore keeps uploaded datasets in memory, keyed by id. Uploads are
// session-scoped working copies, not durable storage.
type DatasetStore struct {
	mu     sync.RWMutex
	tables map[string]*dataset.Table
}

// NewDatasetStore creates an empty store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{tables: make(map[string]*dataset.Table)}
}

// Put stores a table and returns its generated id.
func (s *DatasetStore) Put(t *dataset.Table) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.tables[id] = t
	s.mu.Unlock()
	return id
}

// Get returns the table for the given id.
func (s *DatasetStore) Get(id string) (*dataset.Table, bool) {
	s.mu.RLock()
	t, ok := s.tables[id]
	s.mu.RUnlock()
	return t, ok
}

// Len returns the number of stored datasets.
func (s *DatasetStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}
