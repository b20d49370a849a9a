package models

import "fmt"

// ValidationError reports a malformed or missing required field encountered
// while constructing or normalizing a single record. It is fatal for that
// record only, never for a whole batch.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation: field %q: %s: %v", e.Field, e.Msg, e.Err)
	}
	return fmt.Sprintf("validation: field %q: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}
