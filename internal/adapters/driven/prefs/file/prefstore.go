// Package file provides a TOML-backed preference store.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
)

// Ensure PrefStore implements the interface.
var _ driven.PrefStore = (*PrefStore)(nil)

// PrefStore persists user preferences in a TOML file. Every Set writes
// through immediately so a crash never loses a chosen style or voice.
type PrefStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewPrefStore creates a TOML-backed preference store.
// If dir is empty, defaults to ~/.tarot42/prefs.toml.
func NewPrefStore(dir string) (*PrefStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".tarot42")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	s := &PrefStore{
		filePath: filepath.Join(dir, "prefs.toml"),
		data:     make(map[string]any),
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
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

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetBool retrieves a boolean preference value.
func (s *PrefStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// Set stores a preference value and persists immediately.
func (s *PrefStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// save writes preferences to the TOML file (caller must hold lock).
func (s *PrefStore) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// load reads preferences from the TOML file. A missing file is fine;
// the store starts empty.
func (s *PrefStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}
	if loaded != nil {
		s.data = loaded
	}
	return nil
}

// Path returns the preference file path.
func (s *PrefStore) Path() string {
	return s.filePath
}
