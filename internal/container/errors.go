package container

import "errors"

var (
	// ErrBeanNotFound is returned by GetBean/GetBeanNamed when no bean is
	// registered for the requested type or name. It is a recoverable lookup
	// failure, distinct from the fatal wiring errors below.
	ErrBeanNotFound = errors.New("bean not found")

	// ErrAmbiguousName is returned by GetBeanNamed when a bare name matches
	// beans in more than one category; GetBeanIn disambiguates.
	ErrAmbiguousName = errors.New("ambiguous bean name")

	// ErrUnresolvedDependency is returned during wiring when a constructor
	// parameter type has no registered provider. It aborts startup.
	ErrUnresolvedDependency = errors.New("unresolved dependency")

	// ErrCircularDependency is returned when the constructor dependency
	// graph contains a cycle. The error message names the full chain.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrDuplicateBean is returned when a bean for the same type or name is
	// registered more than once.
	ErrDuplicateBean = errors.New("duplicate bean registration")

	// ErrContextStarted is returned when registration is attempted after
	// Start has sealed the context.
	ErrContextStarted = errors.New("context already started")
)
