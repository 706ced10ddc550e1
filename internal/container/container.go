// Package container implements the dependency-injection context.
//
// Beans are produced by constructor functions. The context inspects each
// constructor's parameter types, resolves every dependency depth-first before
// the dependent constructor runs, and memoizes the resulting singletons, so
// instantiation order is a topological sort of the dependency graph computed
// lazily on demand. Cycles are detected with an explicit resolving stack and
// reported with the full chain instead of overflowing the call stack.
//
// The context is built and started single-threaded; after Start it is
// read-mostly and GetBean is safe from arbitrary goroutines.
package container

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/weavekit/weavekit/internal/ctxlog"
	"github.com/weavekit/weavekit/internal/manifest"
)

var (
	errType      = reflect.TypeOf((*error)(nil)).Elem()
	settingsType = reflect.TypeOf(manifest.Settings(nil))
)

// nameKey scopes named lookups. Component names are unique per provider
// category, not globally, so two providers in different categories may share
// a name.
type nameKey struct {
	category string
	name     string
}

// beanDefinition holds everything needed to instantiate one bean.
type beanDefinition struct {
	descriptor  *manifest.Descriptor // nil for factories
	constructor reflect.Value
	paramTypes  []reflect.Type
	outType     reflect.Type
	state       State
}

// Context owns every instantiated bean. The provider registry only holds
// views into the same instances.
type Context struct {
	mu sync.RWMutex

	definitions map[reflect.Type]*beanDefinition
	names       map[nameKey]reflect.Type
	singletons  map[reflect.Type]reflect.Value

	started bool
}

// New creates an empty Context ready for registration.
func New() *Context {
	return &Context{
		definitions: make(map[reflect.Type]*beanDefinition),
		names:       make(map[nameKey]reflect.Type),
		singletons:  make(map[reflect.Type]reflect.Value),
	}
}

// RegisterSingleton registers an externally constructed value under its own
// dynamic type. Used for bootstrap values the container did not create.
func (c *Context) RegisterSingleton(instance any) error {
	return c.RegisterSingletonAs(reflect.TypeOf(instance), instance)
}

// RegisterSingletonAs registers an externally constructed value under an
// explicit type, typically an interface the value implements.
func (c *Context) RegisterSingletonAs(t reflect.Type, instance any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return ErrContextStarted
	}
	if t == nil {
		return fmt.Errorf("singleton type must not be nil")
	}
	val := reflect.ValueOf(instance)
	if !val.Type().AssignableTo(t) {
		return fmt.Errorf("instance of type %s is not assignable to %s", val.Type(), t)
	}
	if _, exists := c.singletons[t]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBean, t)
	}
	if _, exists := c.definitions[t]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBean, t)
	}

	c.singletons[t] = val
	return nil
}

// RegisterFactory registers a lazy constructor of shape func(deps...) (T) or
// func(deps...) (T, error). The constructor is invoked at most once, on the
// first resolution of T, and the result is memoized.
func (c *Context) RegisterFactory(fn any) error {
	ctor := reflect.ValueOf(fn)
	if err := checkConstructor(ctor); err != nil {
		return err
	}
	return c.register(&beanDefinition{
		constructor: ctor,
		paramTypes:  paramTypesOf(ctor),
		outType:     ctor.Type().Out(0),
		state:       StateDiscovered,
	}, nameKey{})
}

// RegisterComponent registers a discovered component: its constructor plus
// the descriptor carrying name and provider metadata. Components are eagerly
// instantiated by Start.
func (c *Context) RegisterComponent(desc *manifest.Descriptor, ctor reflect.Value) error {
	if err := checkConstructor(ctor); err != nil {
		return fmt.Errorf("component %q: %w", desc.TypeLabel, err)
	}
	return c.register(&beanDefinition{
		descriptor:  desc,
		constructor: ctor,
		paramTypes:  paramTypesOf(ctor),
		outType:     ctor.Type().Out(0),
		state:       StateDiscovered,
	}, nameKey{category: desc.Category, name: desc.Name})
}

func (c *Context) register(def *beanDefinition, k nameKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return ErrContextStarted
	}
	if _, exists := c.definitions[def.outType]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBean, def.outType)
	}
	if _, exists := c.singletons[def.outType]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBean, def.outType)
	}
	if k.name != "" {
		if _, exists := c.names[k]; exists {
			if k.category != "" {
				return fmt.Errorf("%w: named %q in category %q", ErrDuplicateBean, k.name, k.category)
			}
			return fmt.Errorf("%w: named %q", ErrDuplicateBean, k.name)
		}
		c.names[k] = def.outType
	}

	c.definitions[def.outType] = def
	return nil
}

// Start eagerly instantiates every registered component in dependency order
// and seals the context against further registration. Any wiring failure is
// fatal: the context must not be used after Start returns an error.
func (c *Context) Start(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return ErrContextStarted
	}

	// Deterministic instantiation entry order; actual construction order is
	// still dictated by the dependency graph.
	types := make([]reflect.Type, 0, len(c.definitions))
	for t, def := range c.definitions {
		if def.descriptor != nil {
			types = append(types, t)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })

	for _, t := range types {
		if _, err := c.resolve(t, nil); err != nil {
			return err
		}
		logger.Debug("Component instantiated.", "type", t.String())
	}

	c.started = true
	logger.Debug("Context started.", "beans", len(c.singletons))
	return nil
}

// Started reports whether Start has completed.
func (c *Context) Started() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.started
}

// MarkRegistered transitions an instantiated bean to the registered state
// once its instance has been filed into the provider registry.
func (c *Context) MarkRegistered(category, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.names[nameKey{category: category, name: name}]
	if !ok {
		return
	}
	if def, ok := c.definitions[t]; ok && def.state == StateInstantiated {
		def.state = StateRegistered
	}
}

// BeanInfo is a read-only snapshot of one bean definition, used by
// introspection consumers.
type BeanInfo struct {
	Type     string `json:"type"`
	Name     string `json:"name,omitempty"`
	Marker   string `json:"marker,omitempty"`
	Category string `json:"category,omitempty"`
	State    string `json:"state"`
}

// Beans returns a snapshot of all bean definitions, sorted by type.
func (c *Context) Beans() []BeanInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	infos := make([]BeanInfo, 0, len(c.definitions))
	for t, def := range c.definitions {
		info := BeanInfo{Type: t.String(), State: def.state.String()}
		if def.descriptor != nil {
			info.Name = def.descriptor.Name
			info.Marker = def.descriptor.Marker.String()
			info.Category = def.descriptor.Category
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Type < infos[j].Type })
	return infos
}

// checkConstructor validates the func(deps...) (T) or (T, error) shape.
func checkConstructor(ctor reflect.Value) error {
	if !ctor.IsValid() || ctor.Kind() != reflect.Func {
		return fmt.Errorf("constructor must be a function")
	}
	typ := ctor.Type()
	if typ.IsVariadic() {
		return fmt.Errorf("variadic constructors are not supported")
	}
	switch typ.NumOut() {
	case 1:
	case 2:
		if !typ.Out(1).Implements(errType) {
			return fmt.Errorf("second return value must implement error")
		}
	default:
		return fmt.Errorf("constructor must return (T) or (T, error)")
	}
	return nil
}

func paramTypesOf(ctor reflect.Value) []reflect.Type {
	typ := ctor.Type()
	params := make([]reflect.Type, typ.NumIn())
	for i := 0; i < typ.NumIn(); i++ {
		params[i] = typ.In(i)
	}
	return params
}
