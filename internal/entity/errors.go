package entity

import "errors"

// Domain errors
var (
	// Song version errors
	ErrVersionNotFound = errors.New("song version not found")
	ErrRevisionLimit   = errors.New("revision limit exceeded")

	// Job errors
	ErrJobNotFound = errors.New("job not found")

	// Provider errors
	ErrProviderRejected    = errors.New("music provider rejected the request")
	ErrProviderUnavailable = errors.New("music provider unavailable")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
