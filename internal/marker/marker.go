// Package marker defines the closed set of component markers and their
// single-level derivation table.
//
// A marker is the declarative tag a component manifest carries. Markers form
// a tiny hierarchy: every marker other than the base Component derives from
// exactly one parent, and derivation is resolved through a static table
// rather than any runtime introspection. Provider-category markers
// additionally carry the registry category their components are filed under.
package marker

import (
	"fmt"
	"sort"
)

// Kind identifies a single marker.
type Kind string

const (
	// Component is the base marker. Every other marker derives from it.
	Component Kind = "component"

	// Service tags plain infrastructure components with no registry category.
	Service Kind = "service"

	// Agent tags orchestration components with no registry category.
	Agent Kind = "agent"

	// LLM tags language-model providers (registry category "llm").
	LLM Kind = "llm"

	// Storage tags storage providers (registry category "storage").
	Storage Kind = "storage"

	// Embedding tags embedding-model providers (registry category "embedding").
	Embedding Kind = "embedding"

	// Tool tags tool providers (registry category "tool").
	Tool Kind = "tool"
)

// entry describes one row of the static marker table.
type entry struct {
	parent   Kind
	category string
}

// table is the definitive marker list. Parent links are one level deep at
// most; a category is only set for provider markers.
var table = map[Kind]entry{
	Component: {},
	Service:   {parent: Component},
	Agent:     {parent: Component},
	LLM:       {parent: Component, category: "llm"},
	Storage:   {parent: Component, category: "storage"},
	Embedding: {parent: Component, category: "embedding"},
	Tool:      {parent: Component, category: "tool"},
}

// Parse validates a manifest marker string against the closed marker list.
func Parse(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := table[k]; !ok {
		return "", fmt.Errorf("unknown marker %q", s)
	}
	return k, nil
}

// Parent returns the marker this kind derives from, or the empty Kind for
// the base marker.
func (k Kind) Parent() Kind {
	return table[k].parent
}

// Is reports whether k matches base directly or derives from it. Derivation
// is one level deep: a derived marker matches its parent but nothing above.
func (k Kind) Is(base Kind) bool {
	if k == base {
		return true
	}
	return table[k].parent == base && base != ""
}

// Category returns the provider-registry category for provider markers, or
// the empty string for markers that do not categorize.
func (k Kind) Category() string {
	return table[k].category
}

// IsProvider reports whether the marker files its components into the
// provider registry.
func (k Kind) IsProvider() bool {
	return table[k].category != ""
}

// String returns the manifest spelling of the marker.
func (k Kind) String() string {
	return string(k)
}

// ProviderKinds returns the fixed list of provider-category markers, sorted
// by name for deterministic iteration.
func ProviderKinds() []Kind {
	kinds := make([]Kind, 0, len(table))
	for k, e := range table {
		if e.category != "" {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
