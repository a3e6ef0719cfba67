// Package validation implements a declarative, registry-driven validation
// engine for named attribute values.
//
// A Config maps attribute names to rule sets; a rule set is an ordered
// sequence of rule specs, each mapping validator names to expectations.
// The engine resolves validator names through a Registry, evaluates every
// declared rule against the attribute's current value, and aggregates
// failures into an Errors map keyed by attribute name.
//
// # Architecture
//
// Evaluation is layered: the Engine iterates attributes, the rule-set
// evaluator normalizes and orders rule specs, and the single-rule
// evaluator resolves one validator and interprets its Result. The
// Registry is the only shared state; it is safe for concurrent lookups
// and is expected to be populated during startup.
//
// Core building blocks:
//   - Registry   – named validator definitions (check func + default message)
//   - CheckFunc  – evaluates one value against one expectation
//   - Result     – tagged check outcome: valid, invalid, or a rich error payload
//   - RuleSpec   – validator name → expectation mapping, plus an optional
//     "message" key overriding default messages for the whole spec
//   - Errors     – attribute name → de-duplicated failure list, implements error
//
// # Usage
//
//	engine := validation.New()
//	errs, err := engine.Validate(map[string]any{
//	    "email":    "a@b.com",
//	    "password": "secret",
//	}, validation.Config{
//	    "email":    {{"required": true, "format": "email"}},
//	    "password": {{"minLength": 8, "message": "too weak"}},
//	}, nil)
//	if err != nil {
//	    // a rule spec referenced an unregistered validator
//	}
//	if errs != nil {
//	    // errs["password"] == []any{"too weak"}
//	}
//
// # Error Handling
//
// Structural problems (unknown validator names, malformed expectations)
// are programmer errors and abort the call via the error return.
// Validation failures are the routine negative outcome and are always
// returned as data, never as a Go error.
//
// The engine performs no I/O, keeps no hidden state beyond registry
// lookups, and never mutates its inputs: identical inputs always yield
// equal results.
package validation
