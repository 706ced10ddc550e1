// Package provider implements the categorized provider registry.
//
// The registry is a category → name → instance view over beans the context
// owns. It is populated once during startup and read-mostly afterwards, so
// lookups are safe from arbitrary worker goroutines. Registration conflicts
// are loud: two live providers claiming the same (category, name) key abort
// startup rather than silently shadowing each other, because silent
// overwrites hide misconfiguration when providers are composed from several
// modules.
package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/weavekit/weavekit/internal/ctxlog"
)

// ErrDuplicateRegistration is returned when two enabled providers with equal
// priority claim the same (category, name) key.
var ErrDuplicateRegistration = errors.New("duplicate provider registration")

// Entry is one provider registration.
type Entry struct {
	Category string
	Name     string
	Priority int
	Instance any
}

// Registry stores provider instances keyed by (category, name).
type Registry struct {
	mu         sync.RWMutex
	categories map[string]map[string]Entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		categories: make(map[string]map[string]Entry),
	}
}

// Register files an entry under its (category, name) key.
//
// When the key is already occupied, priority arbitrates: a strictly higher
// priority overrides the existing entry, a strictly lower one is ignored,
// and equal priorities are a fatal misconfiguration.
func (r *Registry) Register(ctx context.Context, entry Entry) error {
	logger := ctxlog.FromContext(ctx)

	if entry.Category == "" || entry.Name == "" {
		return fmt.Errorf("provider registration requires category and name, got (%q, %q)", entry.Category, entry.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.categories[entry.Category]
	if !ok {
		bucket = make(map[string]Entry)
		r.categories[entry.Category] = bucket
	}

	existing, occupied := bucket[entry.Name]
	if occupied {
		switch {
		case entry.Priority > existing.Priority:
			logger.Debug("Provider overridden by higher priority.",
				"category", entry.Category, "name", entry.Name,
				"old_priority", existing.Priority, "new_priority", entry.Priority)
		case entry.Priority < existing.Priority:
			logger.Debug("Provider shadowed by existing higher priority.",
				"category", entry.Category, "name", entry.Name,
				"priority", entry.Priority, "existing_priority", existing.Priority)
			return nil
		default:
			return fmt.Errorf("%w: (%s, %s) claimed twice at priority %d",
				ErrDuplicateRegistration, entry.Category, entry.Name, entry.Priority)
		}
	}

	bucket[entry.Name] = entry
	logger.Debug("Provider registered.", "category", entry.Category, "name", entry.Name)
	return nil
}

// Get returns the provider instance under (category, name), or nil when
// absent. Callers distinguish "not registered" from "wrong type" with a
// runtime type check (see Lookup), supporting optional-provider patterns.
func (r *Registry) Get(category, name string) any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, ok := r.categories[category]
	if !ok {
		return nil
	}
	entry, ok := bucket[name]
	if !ok {
		return nil
	}
	return entry.Instance
}

// Lookup is the typed companion of Get:
//
//	chat, ok := provider.Lookup[ChatClient](reg, "llm", "openai")
func Lookup[T any](r *Registry, category, name string) (T, bool) {
	var zero T
	inst := r.Get(category, name)
	if inst == nil {
		return zero, false
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// All returns a read-only snapshot of every provider in a category.
func (r *Registry) All(category string) map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, ok := r.categories[category]
	if !ok {
		return map[string]any{}
	}

	snapshot := make(map[string]any, len(bucket))
	for name, entry := range bucket {
		snapshot[name] = entry.Instance
	}
	return snapshot
}

// Categories returns the sorted list of categories holding at least one
// provider.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cats := make([]string, 0, len(r.categories))
	for c, bucket := range r.categories {
		if len(bucket) > 0 {
			cats = append(cats, c)
		}
	}
	sort.Strings(cats)
	return cats
}

// Clear empties the registry. Instances are owned by the context, so
// clearing only drops the views; it exists for shutdown and test teardown.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = make(map[string]map[string]Entry)
}
