// Package apperr defines the error taxonomy of the query path. Handlers
// map these onto HTTP statuses; everything else wraps and propagates.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or too-short user input (400).
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks an unknown document or analysis id (404).
	ErrNotFound = errors.New("not found")
	// ErrUpstreamModel marks an embedding or generation API failure
	// after its single retry (500, user-safe message only).
	ErrUpstreamModel = errors.New("upstream model error")
)

// Validationf builds a user-facing validation error.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// NotFoundf builds a not-found error.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// Upstream wraps a provider failure. The cause is for server logs; the
// wrapped sentinel is what handlers branch on.
func Upstream(cause error) error {
	return fmt.Errorf("%w: %v", ErrUpstreamModel, cause)
}
