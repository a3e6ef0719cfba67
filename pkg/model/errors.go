package model

import "errors"

// ErrUnknownAttribute is returned when a partial validation names an
// attribute the model does not hold.
var ErrUnknownAttribute = errors.New("unknown attribute")
