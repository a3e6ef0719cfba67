package validation

// fallbackMessage is used when neither the rule spec, the check result,
// nor the validator definition carries a message.
const fallbackMessage = "Invalid"

// Result is the tagged outcome of a check function. A check either
// accepts the value, rejects it and defers to the message fallback chain
// (spec message → result message → definition default → "Invalid"), or
// rejects it with a concrete error payload that bypasses messages
// entirely. The payload variant is the escape hatch composite validators
// use to emit structured failures, e.g. indexed sub-errors.
type Result struct {
	valid      bool
	message    string
	payload    any
	hasPayload bool
}

// Valid reports the value as acceptable.
func Valid() Result {
	return Result{valid: true}
}

// Invalid rejects the value; the message is resolved through the
// fallback chain.
func Invalid() Result {
	return Result{}
}

// InvalidMessage rejects the value with a message that takes precedence
// over the validator's default, but not over a rule-spec message.
func InvalidMessage(message string) Result {
	return Result{message: message}
}

// InvalidPayload rejects the value with a concrete error payload used
// verbatim. A slice payload expands into one failure item per element;
// anything else becomes a single item.
func InvalidPayload(payload any) Result {
	return Result{payload: payload, hasPayload: payload != nil}
}
