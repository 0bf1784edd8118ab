package ai

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrVectorCount is returned when an embedder returns a different number
	// of vectors than texts it was given.
	ErrVectorCount = errors.New("embedder returned wrong number of vectors")
)
