package server

import "errors"

var (
	// ErrServiceRequired is returned when a service is not provided.
	ErrServiceRequired = errors.New("service required")
)
