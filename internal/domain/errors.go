package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidItem signals an item that failed validation.
	ErrInvalidItem = errors.New("invalid item")
	// ErrInvalidQuery signals malformed search parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrFacetsNotSupported signals a facet request against the cached searcher.
	ErrFacetsNotSupported = errors.New("facets not supported")
	// ErrBackendUnavailable signals that the search backend could not serve a request.
	ErrBackendUnavailable = errors.New("search backend unavailable")
)

// FieldError wraps ErrInvalidItem with the offending field name.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidItem.Error(), e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidItem }

// NewFieldError creates a validation error for a single item field.
func NewFieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
