package container

// State tracks a bean definition through its lifecycle. Failed is terminal;
// a failed definition aborts startup and is never retried.
type State int

const (
	// StateDiscovered means the definition is registered but untouched.
	StateDiscovered State = iota

	// StateResolving means the definition is on the current resolution
	// stack; seeing it again from below signals a cycle.
	StateResolving

	// StateInstantiated means the constructor ran and the singleton is
	// cached.
	StateInstantiated

	// StateRegistered means the instance has additionally been filed into
	// the provider registry. No bean mutates past this point.
	StateRegistered

	// StateFailed means the constructor or one of its dependencies failed.
	StateFailed
)

// String returns the human-readable name of the state.
func (s State) String() string {
	switch s {
	case StateDiscovered:
		return "discovered"
	case StateResolving:
		return "resolving"
	case StateInstantiated:
		return "instantiated"
	case StateRegistered:
		return "registered"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
