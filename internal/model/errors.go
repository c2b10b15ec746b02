package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a precondition on an input value fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyBatch is returned when statistics are requested on zero trials.
	ErrEmptyBatch = errors.New("empty trial batch")
)

// InputError names the input that failed validation and the offending value.
type InputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %s (got %v)", ErrInvalidInput, e.Field, e.Reason, e.Value)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// Invalid builds an InputError for field with the given value.
func Invalid(field string, value any, reason string) error {
	return &InputError{Field: field, Value: value, Reason: reason}
}
