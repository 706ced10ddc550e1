// Package manifest defines the declarative component descriptor model and
// the HCL loader that produces it.
//
// A manifest file carries a component's wiring metadata: which marker it is
// tagged with, its registry name and category, its priority, and whether it
// is enabled. The Go constructor the descriptor points at is registered
// separately, at compile time, through the catalog package; the manifest only
// names it.
package manifest

import (
	"unicode"
	"unicode/utf8"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/weavekit/weavekit/internal/marker"
)

// Settings holds the evaluated attributes of a component's `settings` block.
// The container satisfies a constructor parameter of this type from the
// component's own descriptor, so each component sees only its own settings.
type Settings map[string]cty.Value

// String returns the string value for key, with ok reporting whether the key
// exists and converts cleanly.
func (s Settings) String(key string) (string, bool) {
	return convertTo[string](s, key)
}

// Int returns the integer value for key.
func (s Settings) Int(key string) (int, bool) {
	return convertTo[int](s, key)
}

// Bool returns the boolean value for key.
func (s Settings) Bool(key string) (bool, bool) {
	return convertTo[bool](s, key)
}

func convertTo[T any](s Settings, key string) (T, bool) {
	var out T
	val, ok := s[key]
	if !ok || val.IsNull() {
		return out, false
	}
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return out, false
	}
	return out, true
}

// Descriptor is the format-agnostic representation of one discovered
// component. Scanning produces descriptors; the container and the provider
// registry consume them.
type Descriptor struct {
	// TypeLabel is the declared type name, the manifest block label.
	TypeLabel string

	// Marker is the resolved marker kind.
	Marker marker.Kind

	// Category is the provider category derived from the marker, or empty
	// for non-provider components.
	Category string

	// Name is the registry name. Defaults to the lowercase-first transform
	// of TypeLabel when the manifest does not set one.
	Name string

	// Constructor names the Go constructor symbol in the catalog.
	Constructor string

	// Priority arbitrates same-(category, name) overrides; higher wins.
	Priority int

	// Enabled components participate in wiring; disabled ones are inert
	// but still discoverable.
	Enabled bool

	// Optional marks a component whose constructor may legitimately be
	// absent from the build (an optional dependency); such components are
	// skipped silently during scanning.
	Optional bool

	// Settings holds the component's evaluated settings block, if any.
	Settings Settings

	// Source is the manifest file path the descriptor was loaded from.
	Source string
}

// defaultName lower-cases the first rune of a type label, the conventional
// type-name-to-bean-name transform.
func defaultName(typeLabel string) string {
	r, size := utf8.DecodeRuneInString(typeLabel)
	if r == utf8.RuneError {
		return typeLabel
	}
	return string(unicode.ToLower(r)) + typeLabel[size:]
}
