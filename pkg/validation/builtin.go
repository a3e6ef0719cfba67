package validation

import (
	"fmt"
	"reflect"
)

// Built-in validator names.
const (
	Required   = "required"
	MinLength  = "minLength"
	MaxLength  = "maxLength"
	Format     = "format"
	Fn         = "fn"
	Collection = "collection"
)

// SelfValidator is implemented by values that can validate their own
// state, such as a model holding its own rule config. The collection
// validator drives it for every item it inspects.
type SelfValidator interface {
	Validate() (Errors, error)
}

// ItemProvider exposes the validatable items of a container, e.g. a
// typed collection wrapping an item slice.
type ItemProvider interface {
	Items() []SelfValidator
}

// NewDefaultRegistry creates a registry pre-populated with the built-in
// validators.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(Required, checkRequired, "Is required")
	r.MustRegister(MinLength, checkMinLength, "Is too short")
	r.MustRegister(MaxLength, checkMaxLength, "Is too long")
	r.MustRegister(Format, checkFormat, "Is invalid")
	r.MustRegister(Fn, checkFn, "")
	r.MustRegister(Collection, checkCollection, "")
	return r
}

func checkRequired(value, _, _ any) (Result, error) {
	if truthy(value) {
		return Valid(), nil
	}
	return Invalid(), nil
}

func checkMinLength(value, expectation, _ any) (Result, error) {
	min, err := intExpectation(MinLength, expectation)
	if err != nil {
		return Result{}, err
	}
	if n, ok := lengthOf(value); ok && truthy(value) && n >= min {
		return Valid(), nil
	}
	return Invalid(), nil
}

func checkMaxLength(value, expectation, _ any) (Result, error) {
	max, err := intExpectation(MaxLength, expectation)
	if err != nil {
		return Result{}, err
	}
	if n, ok := lengthOf(value); ok && truthy(value) && n <= max {
		return Valid(), nil
	}
	return Invalid(), nil
}

func checkFormat(value, expectation, _ any) (Result, error) {
	match, err := matcherFor(expectation)
	if err != nil {
		return Result{}, err
	}

	s, ok := value.(string)
	if !ok {
		return Invalid(), nil
	}
	if match(s) {
		return Valid(), nil
	}
	return Invalid(), nil
}

// checkFn delegates to a caller-supplied function and interprets its raw
// return the three-way: exactly true is valid, falsy values are plain
// invalid, and any other value is the error payload verbatim.
func checkFn(value, expectation, subject any) (Result, error) {
	var raw any
	switch fn := expectation.(type) {
	case func(any) any:
		raw = fn(value)
	case func(any, any) any:
		raw = fn(value, subject)
	case CheckFunc:
		return fn(value, nil, subject)
	default:
		return Result{}, fmt.Errorf("fn: expectation must be a function, got %T", expectation)
	}

	if b, ok := raw.(bool); ok && b {
		return Valid(), nil
	}
	if !truthy(raw) {
		return Invalid(), nil
	}
	return InvalidPayload(raw), nil
}

// checkCollection validates every item of a collection. The items come
// from the expectation when it carries any, otherwise from the attribute
// value itself. All items pass: valid. Otherwise the payload is one
// ItemError per failing item, in item order.
func checkCollection(value, expectation, _ any) (Result, error) {
	items, err := collectionItems(expectation)
	if err != nil {
		return Result{}, err
	}
	if items == nil {
		if items, err = collectionItems(value); err != nil {
			return Result{}, err
		}
	}

	var failed []any
	for i, item := range items {
		itemErrs, err := item.Validate()
		if err != nil {
			return Result{}, fmt.Errorf("collection item %d: %w", i, err)
		}
		if !itemErrs.IsEmpty() {
			failed = append(failed, ItemError{Index: i, Errors: itemErrs})
		}
	}

	if len(failed) == 0 {
		return Valid(), nil
	}
	return InvalidPayload(failed), nil
}

// collectionItems extracts self-validating items from v: directly from
// a []SelfValidator, through an ItemProvider, or reflectively from any
// slice or array whose elements implement SelfValidator. Non-collection
// values yield no items.
func collectionItems(v any) ([]SelfValidator, error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case []SelfValidator:
		return c, nil
	case ItemProvider:
		return c.Items(), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, nil
	}

	items := make([]SelfValidator, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		item, ok := elem.(SelfValidator)
		if !ok {
			return nil, fmt.Errorf("collection: item %d (%T) cannot validate itself", i, elem)
		}
		items = append(items, item)
	}
	return items, nil
}

// truthy reports whether a value counts as present: nil, false, zero
// numbers and empty strings do not; everything else does, including
// empty but non-nil containers.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return !rv.IsZero()
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return !rv.IsNil()
	}
	return true
}

// lengthOf returns the length of values with a length notion: strings,
// slices, arrays and maps. All other types report false and fail
// length-based rules.
func lengthOf(value any) (int, bool) {
	if s, ok := value.(string); ok {
		return len(s), true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

// intExpectation coerces a rule expectation into an int. YAML decoding
// yields int, programmatic configs may carry any integer width.
func intExpectation(name string, expectation any) (int, error) {
	switch n := expectation.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s: expectation must be an integer, got %T", name, expectation)
	}
}
