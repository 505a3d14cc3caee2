package tracker

import "errors"

// Common errors.
var (
	ErrUnknownKey  = errors.New("unknown tracker key")
	ErrUnknownMode = errors.New("unknown tracking mode")
	ErrNotScalar   = errors.New("value is not scalar-like")
)
