package domain

import "errors"

// Failure kinds surfaced by the comparison engine. Callers match with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidJurisdiction = errors.New("invalid jurisdiction")
	ErrLimitLookupFailure  = errors.New("limit lookup failure")
)
