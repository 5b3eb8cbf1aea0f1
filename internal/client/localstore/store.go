// Package localstore is a small file-backed key-value store. The portal
// client keeps its session flags and cached course data here so they survive
// restarts. Writes always hit disk before in-memory state is updated.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists string keys to JSON values in a single file.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// Open loads the store file, creating an empty store when the file does not
// exist yet.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "./portal-state.json"
	}
	s := &Store{path: path, data: make(map[string]json.RawMessage)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	return s, nil
}

// Get decodes the value stored under key into dest. It returns false when
// the key is absent.
func (s *Store) Get(key string, dest interface{}) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// GetString reads a plain string value, returning "" when absent.
func (s *Store) GetString(key string) string {
	var v string
	if ok, err := s.Get(key, &v); !ok || err != nil {
		return ""
	}
	return v
}

// Set persists the value under key. The file write happens before the
// in-memory map changes, so a failed write leaves the previous state intact.
func (s *Store) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]json.RawMessage, len(s.data)+1)
	for k, v := range s.data {
		next[k] = v
	}
	next[key] = raw

	if err := s.flush(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// Delete removes keys. Like Set, disk state changes first.
func (s *Store) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]json.RawMessage, len(s.data))
	for k, v := range s.data {
		next[k] = v
	}
	for _, key := range keys {
		delete(next, key)
	}

	if err := s.flush(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// flush writes via a temp file and rename so the store file is never torn.
func (s *Store) flush(data map[string]json.RawMessage) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prepare state directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
