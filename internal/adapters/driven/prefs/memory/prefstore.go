// Package memory provides an in-memory preference store for tests and
// ephemeral sessions.
package memory

import (
	"sync"

	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
)

// Ensure PrefStore implements the interface.
var _ driven.PrefStore = (*PrefStore)(nil)

// PrefStore holds preferences in memory. Nothing is persisted.
type PrefStore struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewPrefStore creates an empty in-memory preference store.
func NewPrefStore() *PrefStore {
	return &PrefStore{data: make(map[string]any)}
}

// Get retrieves a preference value by key.
func (s *PrefStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string preference value.
func (s *PrefStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}
	str, _ := val.(string)
	return str
}

// GetBool retrieves a boolean preference value.
func (s *PrefStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}
	b, _ := val.(bool)
	return b
}

// Set stores a preference value.
func (s *PrefStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
