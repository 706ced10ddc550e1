package container

import (
	"fmt"
	"reflect"
	"strings"
)

// GetBean returns the bean for the given type, lazily constructing it when a
// factory is registered but not yet materialized. Unknown types yield
// ErrBeanNotFound.
func (c *Context) GetBean(t reflect.Type) (any, error) {
	// Fast path: the common post-startup read.
	c.mu.RLock()
	if inst, ok := c.singletons[t]; ok {
		c.mu.RUnlock()
		return inst.Interface(), nil
	}
	_, known := c.definitions[t]
	c.mu.RUnlock()

	if !known {
		return nil, fmt.Errorf("%w: %s", ErrBeanNotFound, t)
	}

	// Slow path: a lazy factory firing for the first time. The write lock
	// plus the re-check in resolve guarantee at-most-once construction even
	// under concurrent lookups.
	c.mu.Lock()
	defer c.mu.Unlock()

	val, err := c.resolve(t, nil)
	if err != nil {
		return nil, err
	}
	return val.Interface(), nil
}

// GetBeanNamed returns the bean registered under the given bare name,
// searching every category. Names are only unique within a category, so a
// bare name shared across categories is ambiguous and the caller must use
// GetBeanIn instead.
func (c *Context) GetBeanNamed(name string) (any, error) {
	c.mu.RLock()
	var matches []reflect.Type
	for k, t := range c.names {
		if k.name == name {
			matches = append(matches, t)
		}
	}
	c.mu.RUnlock()

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: named %q", ErrBeanNotFound, name)
	case 1:
		return c.GetBean(matches[0])
	default:
		return nil, fmt.Errorf("%w: %q is registered in %d categories", ErrAmbiguousName, name, len(matches))
	}
}

// GetBeanIn returns the bean registered under name within the given provider
// category. Plain components live under the empty category.
func (c *Context) GetBeanIn(category, name string) (any, error) {
	c.mu.RLock()
	t, ok := c.names[nameKey{category: category, name: name}]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: named %q in category %q", ErrBeanNotFound, name, category)
	}
	return c.GetBean(t)
}

// Bean is a generic helper that resolves a typed bean from the context:
//
//	store, err := container.Bean[*localstore.Store](ctx)
func Bean[T any](c *Context) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()

	inst, err := c.GetBean(t)
	if err != nil {
		return zero, err
	}

	out, ok := inst.(T)
	if !ok {
		return zero, fmt.Errorf("%w: cannot convert %T to %s", ErrBeanNotFound, inst, t)
	}
	return out, nil
}

// resolve walks the dependency graph depth-first, memoizing singletons. The
// stack carries the chain of types currently under construction; re-entering
// a type on the stack is a cycle. Must be called with the write lock held.
func (c *Context) resolve(t reflect.Type, stack []reflect.Type) (reflect.Value, error) {
	if inst, ok := c.singletons[t]; ok {
		return inst, nil
	}

	def, ok := c.definitions[t]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnresolvedDependency, t)
	}

	switch def.state {
	case StateResolving:
		return reflect.Value{}, c.circularError(t, stack)
	case StateFailed:
		return reflect.Value{}, fmt.Errorf("bean %s previously failed to construct", t)
	}

	def.state = StateResolving
	stack = append(stack, t)

	args := make([]reflect.Value, len(def.paramTypes))
	for i, paramType := range def.paramTypes {
		// A component's own settings are a contextual dependency, satisfied
		// from its descriptor rather than the type table.
		if paramType == settingsType && def.descriptor != nil {
			args[i] = reflect.ValueOf(def.descriptor.Settings)
			continue
		}

		dep, err := c.resolve(paramType, stack)
		if err != nil {
			def.state = StateFailed
			return reflect.Value{}, err
		}
		args[i] = dep
	}

	results := def.constructor.Call(args)
	if len(results) == 2 && !results[1].IsNil() {
		def.state = StateFailed
		return reflect.Value{}, fmt.Errorf("constructing %s: %w", t, results[1].Interface().(error))
	}

	instance := results[0]
	c.singletons[t] = instance
	def.state = StateInstantiated
	return instance, nil
}

// circularError formats the full dependency chain, e.g. "A -> B -> A".
func (c *Context) circularError(t reflect.Type, stack []reflect.Type) error {
	chain := make([]string, 0, len(stack)+1)

	// Trim the stack to the segment that actually forms the cycle.
	start := 0
	for i, s := range stack {
		if s == t {
			start = i
			break
		}
	}
	for _, s := range stack[start:] {
		chain = append(chain, s.String())
	}
	chain = append(chain, t.String())

	return fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(chain, " -> "))
}
