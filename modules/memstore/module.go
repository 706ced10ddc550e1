// Package memstore provides an in-memory storage provider, mostly useful for
// tests and ephemeral deployments.
package memstore

import (
	"sync"

	"github.com/weavekit/weavekit/internal/catalog"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// Store is a concurrency-safe in-memory key/value store.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Put stores value under key.
func (s *Store) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Get returns the value stored under key.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Delete removes key.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Register registers the constructor with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterConstructor("NewMemStore", NewStore)
}
