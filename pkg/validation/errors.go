package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDuplicateValidator is returned when registering a validator name
	// that already exists without forcing an override.
	ErrDuplicateValidator = errors.New("validator already registered")

	// ErrUnknownValidator is returned when a rule spec references a name
	// absent from the registry.
	ErrUnknownValidator = errors.New("unknown validator")

	// ErrInvalidDefinition is returned when a validator is registered with
	// an empty name or a nil check function.
	ErrInvalidDefinition = errors.New("invalid validator definition")
)

// Errors maps attribute names to their validation failures. A nil map
// means the attribute record passed validation. Every entry holds at
// least one item, items never repeat within an entry, and first-occurrence
// order is preserved. Items are usually strings; composite validators may
// store structured payloads such as ItemError.
type Errors map[string][]any

// Error implements the error interface.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, attr := range e.Attributes() {
		for _, item := range e[attr] {
			parts = append(parts, fmt.Sprintf("%s: %v", attr, item))
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether the attribute has any failures.
func (e Errors) Has(attr string) bool {
	return len(e[attr]) > 0
}

// Get returns the failure list for an attribute, or nil.
func (e Errors) Get(attr string) []any {
	return e[attr]
}

// Messages returns the string failures for an attribute, skipping any
// structured payload items.
func (e Errors) Messages(attr string) []string {
	var messages []string
	for _, item := range e[attr] {
		if s, ok := item.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}

// Attributes returns the failing attribute names in sorted order.
func (e Errors) Attributes() []string {
	attrs := make([]string, 0, len(e))
	for attr := range e {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	return attrs
}

// IsEmpty returns true if there are no validation failures.
func (e Errors) IsEmpty() bool {
	return len(e) == 0
}

// ItemError records the failures of one item inside a collection, by
// its position in the collection.
type ItemError struct {
	Index  int
	Errors Errors
}
