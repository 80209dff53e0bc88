package storage

import (
	"context"
	"errors"
	"sync"

	printingapp "github.com/foodcrm/backend/internal/application/printing"
)

// StubArchiveStorage is an in-memory implementation of ArchiveStorage.
// Used when object storage is disabled and in tests; uploads are kept
// in a map so exports still work without a bucket.
type StubArchiveStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubArchiveStorage creates a new StubArchiveStorage
func NewStubArchiveStorage() *StubArchiveStorage {
	return &StubArchiveStorage{
		objects: make(map[string][]byte),
	}
}

// Ensure StubArchiveStorage implements ArchiveStorage
var _ printingapp.ArchiveStorage = (*StubArchiveStorage)(nil)

// Upload stores the document in memory
func (s *StubArchiveStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[storageKey] = buf
	return nil
}

// Get returns an uploaded document (for testing)
func (s *StubArchiveStorage) Get(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[storageKey]
	return data, ok
}
