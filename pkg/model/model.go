package model

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/validkit/pkg/validation"
)

// attrState is the last observed validity of one attribute.
type attrState struct {
	valid    bool
	failures []any
}

// Model is a goroutine-safe attribute record bound to a rule config.
// It satisfies validation.SelfValidator, so models can be items of a
// collection rule.
type Model struct {
	id       uuid.UUID
	engine   *validation.Engine
	rules    validation.Config
	notifier *Notifier
	log      *slog.Logger

	mu       sync.RWMutex
	attrs    map[string]any
	validity map[string]attrState

	// validateMu serializes validation passes so validity diffs and the
	// events derived from them stay consistent. It is separate from mu:
	// check functions may read the model through the subject while a
	// pass is running.
	validateMu sync.Mutex
}

// Option configures model creation.
type Option func(*Model)

// WithID sets the model identity carried by validity events.
func WithID(id uuid.UUID) Option {
	return func(m *Model) {
		if id != uuid.Nil {
			m.id = id
		}
	}
}

// WithEngine sets the validation engine. Nil engines are ignored.
func WithEngine(e *validation.Engine) Option {
	return func(m *Model) {
		if e != nil {
			m.engine = e
		}
	}
}

// WithRules sets the validation config applied on every pass.
func WithRules(cfg validation.Config) Option {
	return func(m *Model) { m.rules = cfg }
}

// WithAttributes seeds the model's initial attribute values.
func WithAttributes(attrs map[string]any) Option {
	return func(m *Model) {
		for name, value := range attrs {
			m.attrs[name] = value
		}
	}
}

// WithNotifier sets the validity-event notifier. Nil is ignored.
func WithNotifier(n *Notifier) Option {
	return func(m *Model) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithLogger sets the logger used for debug tracing of validation
// passes. Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates a model. Defaults: random identity, an engine with the
// built-in validators, a notifier buffering 8 events per subscriber,
// and discarded logs.
func New(opts ...Option) *Model {
	m := &Model{
		id:       uuid.New(),
		attrs:    make(map[string]any),
		validity: make(map[string]attrState),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.engine == nil {
		m.engine = validation.New()
	}
	if m.notifier == nil {
		m.notifier = NewNotifier(8)
	}
	return m
}

// ID returns the model identity.
func (m *Model) ID() uuid.UUID { return m.id }

// Notifier returns the notifier delivering this model's validity events.
func (m *Model) Notifier() *Notifier { return m.notifier }

// Rules returns the model's validation config.
func (m *Model) Rules() validation.Config { return m.rules }

// Set stores an attribute value.
func (m *Model) Set(name string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attrs[name] = value
}

// Get returns an attribute value and whether the model holds it.
func (m *Model) Get(name string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.attrs[name]
	return value, ok
}

// Attributes returns a copy of the current attribute record.
func (m *Model) Attributes() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	attrs := make(map[string]any, len(m.attrs))
	for name, value := range m.attrs {
		attrs[name] = value
	}
	return attrs
}

// Validate runs the engine over a snapshot of all attributes and
// returns the failures, or nil when the model is valid. Every attribute
// whose validity or failure list changed since the previous pass is
// announced through the notifier. The model itself is the subject seen
// by check functions.
func (m *Model) Validate() (validation.Errors, error) {
	m.validateMu.Lock()
	defer m.validateMu.Unlock()

	attrs := m.Attributes()
	errs, err := m.engine.Validate(attrs, m.rules, m)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m.record(name, errs.Get(name))
	}

	m.log.Debug("validation pass",
		slog.String("model_id", m.id.String()),
		slog.Int("attributes", len(attrs)),
		slog.Int("failing", len(errs)),
	)
	return errs, nil
}

// ValidateAttr re-checks a single attribute against its rule set and
// returns its failures, or nil. Attributes the model does not hold are
// never validated; asking for one is an error. Validity changes are
// announced like in a full pass.
func (m *Model) ValidateAttr(name string) ([]any, error) {
	m.validateMu.Lock()
	defer m.validateMu.Unlock()

	value, ok := m.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}

	failures, err := m.engine.EvaluateSet(m.rules[name], value, m)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", name, err)
	}

	m.record(name, failures)
	return failures, nil
}

// IsValid reports the last observed validity of an attribute. Unchecked
// attributes count as valid.
func (m *Model) IsValid(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, known := m.validity[name]
	return !known || state.valid
}

// record updates an attribute's validity state and publishes an event
// when it changed. Callers hold validateMu.
func (m *Model) record(name string, failures []any) {
	valid := len(failures) == 0

	m.mu.Lock()
	prev, known := m.validity[name]
	changed := !known || prev.valid != valid || !reflect.DeepEqual(prev.failures, failures)
	if changed {
		m.validity[name] = attrState{valid: valid, failures: failures}
	}
	m.mu.Unlock()

	if changed {
		m.notifier.Publish(ValidityEvent{
			ModelID:  m.id,
			Attr:     name,
			Valid:    valid,
			Messages: failures,
		})
	}
}
