package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit/pkg/validation"
)

func TestEngine_Validate(t *testing.T) {
	engine := validation.New()

	t.Run("empty config is always valid", func(t *testing.T) {
		errs, err := engine.Validate(map[string]any{"name": "", "age": 0}, validation.Config{}, nil)
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("empty attribute record is always valid", func(t *testing.T) {
		errs, err := engine.Validate(nil, validation.Config{
			"name": {{validation.Required: true}},
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("required rejects empty string", func(t *testing.T) {
		errs, err := engine.Validate(map[string]any{"name": ""}, validation.Config{
			"name": {{validation.Required: true}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, validation.Errors{"name": {"Is required"}}, errs)
	})

	t.Run("minLength fails for values without a length", func(t *testing.T) {
		errs, err := engine.Validate(map[string]any{"age": 5}, validation.Config{
			"age": {{validation.MinLength: 3}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, validation.Errors{"age": {"Is too short"}}, errs)
	})

	t.Run("valid email format passes", func(t *testing.T) {
		errs, err := engine.Validate(map[string]any{"email": "a@b.com"}, validation.Config{
			"email": {{validation.Format: "email"}},
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("every failing rule spec contributes in order", func(t *testing.T) {
		errs, err := engine.Validate(map[string]any{"pwd": "abcdef"}, validation.Config{
			"pwd": {
				{validation.MinLength: 8, "message": "short"},
				{validation.MaxLength: 4, "message": "long"},
			},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, validation.Errors{"pwd": {"short", "long"}}, errs)
	})

	t.Run("fn error string appears verbatim", func(t *testing.T) {
		errs, err := engine.Validate(map[string]any{"field": "whatever"}, validation.Config{
			"field": {{validation.Fn: func(any) any { return "custom error" }}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, validation.Errors{"field": {"custom error"}}, errs)
	})

	t.Run("spec message overrides the default", func(t *testing.T) {
		errs, err := engine.Validate(map[string]any{"name": ""}, validation.Config{
			"name": {{validation.Required: true, "message": "give me a name"}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, validation.Errors{"name": {"give me a name"}}, errs)
	})

	t.Run("duplicate failures collapse to one message", func(t *testing.T) {
		errs, err := engine.Validate(map[string]any{"name": ""}, validation.Config{
			"name": {
				{validation.Required: true},
				{validation.Required: true},
			},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, validation.Errors{"name": {"Is required"}}, errs)
	})

	t.Run("attributes without rules are skipped", func(t *testing.T) {
		errs, err := engine.Validate(map[string]any{"name": "ok", "junk": nil}, validation.Config{
			"name": {{validation.Required: true}},
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("rules for absent attributes are never evaluated", func(t *testing.T) {
		errs, err := engine.Validate(map[string]any{"name": "ok"}, validation.Config{
			"name":  {{validation.Required: true}},
			"email": {{validation.Required: true}},
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("unknown validator aborts the call", func(t *testing.T) {
		_, err := engine.Validate(map[string]any{"name": "x"}, validation.Config{
			"name": {{"nonexistent": true}},
		}, nil)
		require.ErrorIs(t, err, validation.ErrUnknownValidator)
		assert.Contains(t, err.Error(), `attribute "name"`)
	})

	t.Run("is deterministic for identical inputs", func(t *testing.T) {
		attrs := map[string]any{"name": "", "pwd": "abc", "email": "a@b.com"}
		cfg := validation.Config{
			"name":  {{validation.Required: true}},
			"pwd":   {{validation.MinLength: 8}},
			"email": {{validation.Format: "email"}},
		}

		first, err := engine.Validate(attrs, cfg, nil)
		require.NoError(t, err)
		second, err := engine.Validate(attrs, cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("does not mutate its inputs", func(t *testing.T) {
		attrs := map[string]any{"name": ""}
		cfg := validation.Config{"name": {{validation.Required: true, "message": "m"}}}

		_, err := engine.Validate(attrs, cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": ""}, attrs)
		assert.Equal(t, validation.Config{"name": {{validation.Required: true, "message": "m"}}}, cfg)
	})

	t.Run("subject reaches check functions", func(t *testing.T) {
		type account struct{ admin bool }
		subject := &account{admin: true}

		errs, err := engine.Validate(map[string]any{"role": "root"}, validation.Config{
			"role": {{validation.Fn: func(_, subj any) any {
				return subj.(*account).admin
			}}},
		}, subject)
		require.NoError(t, err)
		assert.Nil(t, errs)
	})
}

func TestEngine_CustomValidator(t *testing.T) {
	t.Run("registered validator participates in validation", func(t *testing.T) {
		registry := validation.NewDefaultRegistry()
		require.NoError(t, registry.Register("even", func(value, _, _ any) (validation.Result, error) {
			n, ok := value.(int)
			if ok && n%2 == 0 {
				return validation.Valid(), nil
			}
			return validation.Invalid(), nil
		}, "Must be even"))

		engine := validation.New(validation.WithRegistry(registry))

		errs, err := engine.Validate(map[string]any{"count": 3}, validation.Config{
			"count": {{"even": true}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, validation.Errors{"count": {"Must be even"}}, errs)

		errs, err = engine.Validate(map[string]any{"count": 4}, validation.Config{
			"count": {{"even": true}},
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("InvalidMessage yields to the spec message", func(t *testing.T) {
		registry := validation.NewDefaultRegistry()
		require.NoError(t, registry.Register("never", func(_, _, _ any) (validation.Result, error) {
			return validation.InvalidMessage("from the check"), nil
		}, "from the definition"))

		engine := validation.New(validation.WithRegistry(registry))

		errs, err := engine.Validate(map[string]any{"x": 1}, validation.Config{
			"x": {{"never": true}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, validation.Errors{"x": {"from the check"}}, errs)

		errs, err = engine.Validate(map[string]any{"x": 1}, validation.Config{
			"x": {{"never": true, "message": "from the spec"}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, validation.Errors{"x": {"from the spec"}}, errs)
	})

	t.Run("falls back to the literal Invalid", func(t *testing.T) {
		registry := validation.NewDefaultRegistry()
		require.NoError(t, registry.Register("never", alwaysInvalid, ""))

		engine := validation.New(validation.WithRegistry(registry))

		errs, err := engine.Validate(map[string]any{"x": 1}, validation.Config{
			"x": {{"never": true}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, validation.Errors{"x": {"Invalid"}}, errs)
	})
}

func TestErrors(t *testing.T) {
	t.Run("formats a readable message", func(t *testing.T) {
		errs := validation.Errors{"email": {"Is required", "Is invalid"}}
		assert.Equal(t, "validation failed: email: Is required; email: Is invalid", errs.Error())
	})

	t.Run("zero value reports bare failure", func(t *testing.T) {
		var errs validation.Errors
		assert.Equal(t, "validation failed", errs.Error())
		assert.True(t, errs.IsEmpty())
	})

	t.Run("field helpers", func(t *testing.T) {
		errs := validation.Errors{
			"email": {"Is required"},
			"items": {validation.ItemError{Index: 1, Errors: validation.Errors{"name": {"Is required"}}}, "broken"},
		}

		assert.True(t, errs.Has("email"))
		assert.False(t, errs.Has("name"))
		assert.Equal(t, []any{"Is required"}, errs.Get("email"))
		assert.Equal(t, []string{"broken"}, errs.Messages("items"))
		assert.Equal(t, []string{"email", "items"}, errs.Attributes())
	})
}
