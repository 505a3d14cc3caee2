package model

import "errors"

// Common errors.
var (
	ErrNotCompiled = errors.New("model is not compiled, call Compile before Fit")
	ErrNoTrainData = errors.New("no train dataloader supplied")
	ErrNoLoss      = errors.New("no loss configured")
	ErrBadBatch    = errors.New("unsupported batch layout")
	ErrNoParams    = errors.New("learner does not expose parameters, pass a constructed optimizer")
)
