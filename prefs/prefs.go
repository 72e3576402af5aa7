package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrEmptyPath is returned by NewFileStore for an empty path.
var ErrEmptyPath = errors.New("prefs: empty path")

// FileStore keeps integer preferences in a YAML document on disk.
// Values set with SetInt are held in memory until Save writes the file.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]int
}

// NewFileStore opens the YAML file at path. A missing file yields an empty
// store; the file and its directory are created on the first Save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	fs := &FileStore{path: path, values: make(map[string]int)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fs, nil
	case err != nil:
		return nil, fmt.Errorf("prefs: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fs.values); err != nil {
		return nil, fmt.Errorf("prefs: decode %s: %w", path, err)
	}
	if fs.values == nil {
		fs.values = make(map[string]int)
	}
	return fs, nil
}

// Path returns the backing file.
func (fs *FileStore) Path() string { return fs.path }

// GetInt returns the value under key.
func (fs *FileStore) GetInt(key string) (int, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	v, ok := fs.values[key]
	return v, ok, nil
}

// SetInt stages v under key.
func (fs *FileStore) SetInt(key string, v int) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.values[key] = v
	return nil
}

// Save writes all values to disk. The document is written to a temporary
// file in the same directory and renamed over the target.
func (fs *FileStore) Save() error {
	fs.mu.Lock()
	data, err := yaml.Marshal(fs.values)
	fs.mu.Unlock()
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("prefs: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("prefs: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("prefs: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("prefs: close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		return fmt.Errorf("prefs: replace %s: %w", fs.path, err)
	}
	return nil
}

// MemoryStore is a Store without persistence, for tests and for runs
// started without a preferences file.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]int
	saves  int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

// GetInt returns the value under key.
func (m *MemoryStore) GetInt(key string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// SetInt stores v under key.
func (m *MemoryStore) SetInt(key string, v int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = v
	return nil
}

// Save counts the call; there is nothing to flush.
func (m *MemoryStore) Save() error {
	m.mu.Lock()
	m.saves++
	m.mu.Unlock()
	return nil
}

// Saves reports how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
