package common

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Services return these (usually wrapped with field
// detail via fmt.Errorf and %w); handlers map them to HTTP status codes.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidName         = errors.New("name produces an empty slug")
	ErrAllocationExhausted = errors.New("slug allocation attempts exhausted")
	ErrConflict            = errors.New("conflicts with existing resource")
)

// NotFoundf wraps ErrNotFound with detail identifying the missing resource.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Validationf wraps ErrValidation with detail identifying the offending field.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// Conflictf wraps ErrConflict with detail about the colliding resource.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}
