// Package localstore provides a filesystem-backed storage provider.
package localstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/weavekit/weavekit/internal/catalog"
	"github.com/weavekit/weavekit/internal/manifest"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

const defaultPath = "data"

// Store persists values as files under a root directory. The directory is
// created lazily on first write so constructing the component has no
// filesystem side effects.
type Store struct {
	dir string
}

// NewStore builds the store from component settings.
func NewStore(settings manifest.Settings) (*Store, error) {
	dir := defaultPath
	if v, ok := settings.String("path"); ok {
		dir = v
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// Put writes value under key.
func (s *Store) Put(key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory %s: %w", s.dir, err)
	}
	return os.WriteFile(filepath.Join(s.dir, key), value, 0o644)
}

// Get reads the value stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, key))
}

// Keys lists all stored keys, sorted.
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			keys = append(keys, e.Name())
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Register registers the constructor with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterConstructor("NewLocalStore", NewStore)
}
