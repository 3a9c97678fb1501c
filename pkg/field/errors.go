package field

import (
	"errors"
	"fmt"
)

// ValidationError reports a value rejected by a field descriptor. It is the
// only error class the resolution engine can surface: all read paths are
// total, only storing a value can fail.
type ValidationError struct {
	// Field is the name of the field that rejected the value.
	Field string

	// Value is the rejected value as supplied by the caller.
	Value interface{}

	// Message describes why the value was rejected.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a field and value.
func NewValidationError(field string, value interface{}, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}

// AsValidationError extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
