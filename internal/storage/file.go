package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// Compile-time interface check.
var _ domain.KVStore = (*FileStore)(nil)

// FileStore keeps all keys in a single JSON object on disk, the terminal
// equivalent of browser local storage. Every Set rewrites the file so a
// crash never loses an acknowledged write. Safe for concurrent access.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
	log    *logger.Logger
}

// OpenFileStore loads path if it exists. A missing file starts empty. An
// unreadable or corrupt file is logged and also starts empty; its contents
// are replaced on the next write.
func OpenFileStore(path string, log *logger.Logger) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("storage: empty path")
	}
	s := &FileStore{
		path:   path,
		values: make(map[string]string),
		log:    log,
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Debug("store %s does not exist yet", path)
	case err != nil:
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	case len(data) > 0:
		if err := json.Unmarshal(data, &s.values); err != nil {
			log.Warn("store %s is corrupt, starting empty: %v", path, err)
			s.values = make(map[string]string)
		}
	}

	log.Debug("opened store %s (%d keys)", path, len(s.values))
	return s, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key and flushes the file.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value
	if err := s.flushLocked(); err != nil {
		// Keep memory and disk consistent.
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	s.log.Debug("set %s (%d bytes)", key, len(value))
	return nil
}

// Delete removes key and flushes the file.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	if !had {
		return nil
	}
	delete(s.values, key)
	if err := s.flushLocked(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

// flushLocked writes the values to a temp file and renames it over the
// store. Must be called with s.mu held.
func (s *FileStore) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: replace %s: %w", s.path, err)
	}
	return nil
}
