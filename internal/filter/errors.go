package filter

import "errors"

// Configuration errors returned by the factories.
var (
	ErrEmptyBlacklist = errors.New("blacklist is empty")
	ErrCutoffRange    = errors.New("cutoff must be between 0 and 1 (exclusive)")
	ErrInvalidRange   = errors.New("invalid characters in range")
	ErrEmptyRange     = errors.New("no line lengths received")
	ErrInvalidPattern = errors.New("invalid pattern")
)
