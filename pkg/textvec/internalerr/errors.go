package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrUnknownStage     = errors.New("unknown pipeline stage")
	ErrNotFitted        = errors.New("not fitted")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidInput     = errors.New("invalid input")
)
