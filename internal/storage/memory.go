// internal/storage/memory.go
package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store. State is lost on restart, so it is
// only suitable for tests and throwaway sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

// Get retrieves a value by key
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}

	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

// Set stores a value under key
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.values[key] = cp
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}
