// Package catalog holds the compile-time half of component discovery.
//
// Manifests name their Go constructors by symbol; the catalog is where
// compiled-in modules register those symbols. During startup the scanner
// matches each descriptor's constructor symbol against the catalog, and a
// descriptor whose symbol was never compiled in is skipped.
package catalog

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
)

// Module is the interface all compiled-in component packages implement to
// contribute their constructors to a catalog.
type Module interface {
	Register(c *Catalog)
}

// ModuleFunc adapts a plain function to the Module interface.
type ModuleFunc func(c *Catalog)

// Register implements Module.
func (f ModuleFunc) Register(c *Catalog) { f(c) }

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Catalog maps constructor symbols to their Go functions for a single
// application instance.
type Catalog struct {
	constructors map[string]reflect.Value
}

// New creates and initializes an empty Catalog.
func New() *Catalog {
	return &Catalog{
		constructors: make(map[string]reflect.Value),
	}
}

// RegisterConstructor registers a constructor function under a symbol. The
// function must return (T) or (T, error). Registering a duplicate symbol or
// a non-constructor is a programmer error and panics.
func (c *Catalog) RegisterConstructor(symbol string, fn any) {
	if _, exists := c.constructors[symbol]; exists {
		panic(fmt.Sprintf("constructor with symbol '%s' already registered", symbol))
	}

	val := reflect.ValueOf(fn)
	if err := validateConstructor(val); err != nil {
		panic(fmt.Sprintf("constructor '%s': %v", symbol, err))
	}

	slog.Debug("Registering constructor.", "symbol", symbol, "type", val.Type().String())
	c.constructors[symbol] = val
}

// Constructor looks up a registered constructor by symbol.
func (c *Catalog) Constructor(symbol string) (reflect.Value, bool) {
	fn, ok := c.constructors[symbol]
	return fn, ok
}

// Symbols returns all registered constructor symbols, sorted.
func (c *Catalog) Symbols() []string {
	symbols := make([]string, 0, len(c.constructors))
	for s := range c.constructors {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// validateConstructor checks the (T) or (T, error) shape shared by every
// constructor the container can call.
func validateConstructor(val reflect.Value) error {
	if !val.IsValid() || val.Kind() != reflect.Func {
		return fmt.Errorf("must be a function, got %v", val.Kind())
	}

	typ := val.Type()
	switch typ.NumOut() {
	case 1:
		// (T)
	case 2:
		if !typ.Out(1).Implements(errType) {
			return fmt.Errorf("second return value must implement error, got %s", typ.Out(1))
		}
	default:
		return fmt.Errorf("must return (T) or (T, error), got %d return values", typ.NumOut())
	}

	if typ.IsVariadic() {
		return fmt.Errorf("variadic constructors are not supported")
	}

	return nil
}
