// Package model provides a self-validating attribute record on top of
// the validation engine, with asynchronous notification of per-attribute
// validity changes for observing views.
//
// A Model owns a mutable set of named attributes and a rule config.
// Validate runs the engine over a snapshot of the attributes and, for
// every attribute whose validity or failure messages changed since the
// previous pass, publishes a ValidityEvent through the model's Notifier.
// The engine itself stays synchronous; only event delivery is deferred.
//
// # Usage
//
//	m := model.New(
//	    model.WithRules(validation.Config{
//	        "email": {{"required": true, "format": "email"}},
//	    }),
//	)
//	sub := m.Notifier().Subscribe(ctx)
//	defer sub.Close()
//
//	m.Set("email", "not-an-email")
//	errs, err := m.Validate()
//	// errs.Has("email") == true; sub.Events() delivers the change
//
// Models implement validation.SelfValidator, so a model can be an item
// of another model's collection rule.
//
// All Model methods are safe for concurrent use. Event delivery is
// non-blocking: a subscriber that stops draining its channel is dropped
// rather than stalling validation.
package model
