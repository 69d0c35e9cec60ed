package scoring

import "errors"

// Sentinel errors returned by the scoring core.
var (
	// ErrInvalidInput marks blank resume text, blank job description or a negative
	// experience requirement. It is a client error and must not be retried.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidConfiguration marks weights that are negative, non-finite or unknown.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
