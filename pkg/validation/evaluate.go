package validation

import (
	"fmt"
	"reflect"
	"sort"
)

// MessageKey is the reserved rule-spec key carrying a custom error
// message. It overrides the default message of every check inside the
// spec and is never treated as a validator name.
const MessageKey = "message"

// evaluateRule resolves one named validator and applies it to a value.
// It returns nil when the value is acceptable, otherwise the failure
// items produced by the check. ErrUnknownValidator and structural check
// errors propagate to the caller.
func (e *Engine) evaluateRule(name string, value, expectation any, customMessage string, subject any) ([]any, error) {
	def, err := e.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	res, err := def.Check(value, expectation, subject)
	if err != nil {
		return nil, fmt.Errorf("validator %q: %w", name, err)
	}

	switch {
	case res.valid:
		return nil, nil
	case res.hasPayload:
		return expandPayload(res.payload), nil
	default:
		msg := customMessage
		if msg == "" {
			msg = res.message
		}
		if msg == "" {
			msg = def.DefaultMessage
		}
		if msg == "" {
			msg = fallbackMessage
		}
		return []any{msg}, nil
	}
}

// EvaluateSpec runs every check declared in one rule spec against a
// value. The reserved "message" key is removed from the checks and its
// value shared by all of them; remaining keys run in sorted order so
// results are deterministic. Returns nil when nothing failed, otherwise
// the stable-unique failure list.
func (e *Engine) EvaluateSpec(spec RuleSpec, value, subject any) ([]any, error) {
	customMessage, _ := spec[MessageKey].(string)

	names := make([]string, 0, len(spec))
	for name := range spec {
		if name == MessageKey {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var failures []any
	for _, name := range names {
		items, err := e.evaluateRule(name, value, spec[name], customMessage, subject)
		if err != nil {
			return nil, err
		}
		failures = append(failures, items...)
	}

	return dedupe(failures), nil
}

// EvaluateSet evaluates an ordered sequence of rule specs against a
// value, flattening the per-spec results into a single stable-unique
// failure list. Returns nil when every spec passed.
func (e *Engine) EvaluateSet(set RuleSet, value, subject any) ([]any, error) {
	var failures []any
	for _, spec := range set {
		items, err := e.EvaluateSpec(spec, value, subject)
		if err != nil {
			return nil, err
		}
		failures = append(failures, items...)
	}

	return dedupe(failures), nil
}

// expandPayload converts a check's error payload into failure items:
// slices contribute one item per element, anything else one item.
func expandPayload(payload any) []any {
	rv := reflect.ValueOf(payload)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{payload}
	}

	items := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items = append(items, rv.Index(i).Interface())
	}
	return items
}

// dedupe removes repeated failure items, keeping first-occurrence order.
// Strings are matched by value; structured payloads by deep equality.
func dedupe(items []any) []any {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]any, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, item)
			continue
		}

		dup := false
		for _, kept := range out {
			if reflect.DeepEqual(kept, item) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, item)
		}
	}
	return out
}
