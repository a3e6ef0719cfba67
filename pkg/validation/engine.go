package validation

import (
	"fmt"
	"sort"
)

// RuleSpec maps validator names to their expectations. The reserved
// MessageKey entry carries a custom error message shared by every check
// in the spec.
type RuleSpec map[string]any

// RuleSet is an ordered sequence of rule specs applied to one attribute.
type RuleSet []RuleSpec

// Config maps attribute names to their rule sets. Attributes absent
// from the config are always valid.
type Config map[string]RuleSet

// Engine evaluates attribute records against a validation config using
// a shared validator registry. By default the registry is pre-populated
// with the built-in validators.
type Engine struct {
	registry *Registry
}

// Option configures engine creation.
type Option func(*Engine)

// WithRegistry sets the validator registry shared by all calls made
// through the engine. Nil registries are ignored.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// New creates an engine. Without options it uses a fresh registry
// holding the built-in validators.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = NewDefaultRegistry()
	}
	return e
}

// Registry returns the engine's validator registry, e.g. to register
// custom validators during application setup.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Validate checks every attribute present in attrs against its rule set
// in cfg and returns the aggregated failures, or nil when everything
// passed. Attributes without a rule set are skipped; rule sets for
// attributes absent from attrs are never evaluated. The subject is
// passed through to every check function unmodified.
//
// Validate is a pure function of its inputs: it mutates neither attrs
// nor cfg and performs no I/O. Attributes are processed in sorted name
// order so the result is deterministic. A non-nil error means a rule
// spec was structurally broken (e.g. an unregistered validator name);
// no partial failure map is returned in that case.
func (e *Engine) Validate(attrs map[string]any, cfg Config, subject any) (Errors, error) {
	if len(attrs) == 0 || len(cfg) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	var result Errors
	for _, name := range names {
		set, ok := cfg[name]
		if !ok || len(set) == 0 {
			continue
		}

		failures, err := e.EvaluateSet(set, attrs[name], subject)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		if len(failures) == 0 {
			continue
		}

		if result == nil {
			result = make(Errors)
		}
		result[name] = failures
	}

	return result, nil
}
