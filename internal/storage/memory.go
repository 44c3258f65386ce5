// Package storage provides key-value persistence for user preferences.
package storage

import (
	"sync"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// Compile-time interface check.
var _ domain.KVStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory key-value store. Safe for concurrent access.
// Nothing survives the process; used in tests and with -store=memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	log    *logger.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
		log:    log,
	}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key, overwriting any previous value.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("set %s (%d bytes)", key, len(value))
	s.values[key] = value
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
