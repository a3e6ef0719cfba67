package validation

import (
	"fmt"
	"sort"
	"sync"
)

// CheckFunc evaluates a value against an expectation. The subject is the
// opaque execution context supplied by the caller (typically the owning
// model); it is passed through unmodified so checks can reference sibling
// state. Checks return an error only for structural problems such as a
// malformed expectation; a failed validation is expressed via the Result.
type CheckFunc func(value, expectation, subject any) (Result, error)

// Definition is one named validator held by a Registry.
type Definition struct {
	Name           string
	Check          CheckFunc
	DefaultMessage string
}

// Registry maps validator names to their definitions. It is shared by
// every validation call made through an engine that holds it. Lookups
// are safe for concurrent use; registration is expected to happen during
// single-threaded startup but is guarded anyway. Definitions live for
// the registry's lifetime and are only ever overridden, never removed.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register stores a validator definition under name. It fails with
// ErrDuplicateValidator if the name is already taken, leaving the
// existing definition untouched. Use Override to replace deliberately.
func (r *Registry) Register(name string, check CheckFunc, defaultMessage string) error {
	if name == "" || check == nil {
		return fmt.Errorf("%w: name and check function are required", ErrInvalidDefinition)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateValidator, name)
	}

	r.defs[name] = Definition{Name: name, Check: check, DefaultMessage: defaultMessage}
	return nil
}

// MustRegister is Register that panics on error, for startup wiring.
func (r *Registry) MustRegister(name string, check CheckFunc, defaultMessage string) {
	if err := r.Register(name, check, defaultMessage); err != nil {
		panic(err)
	}
}

// Override stores a validator definition under name, replacing any
// existing one. Subsequent lookups see only the new definition.
func (r *Registry) Override(name string, check CheckFunc, defaultMessage string) error {
	if name == "" || check == nil {
		return fmt.Errorf("%w: name and check function are required", ErrInvalidDefinition)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.defs[name] = Definition{Name: name, Check: check, DefaultMessage: defaultMessage}
	return nil
}

// Lookup returns the definition registered under name, or
// ErrUnknownValidator.
func (r *Registry) Lookup(name string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownValidator, name)
	}
	return def, nil
}

// Names returns the registered validator names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
