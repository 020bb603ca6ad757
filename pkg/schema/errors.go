package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single document validation failure.
type ValidationError struct {
	Field  string // Dotted path of the offending field
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Field, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Aggregate returns nil for no errors, the error itself for one, and an
// *AggregateError otherwise.
func Aggregate(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &AggregateError{Errors: errs}
	}
}

// ValidationErrors returns all validation errors if err is or wraps an
// AggregateError. A lone error is returned as a one-element slice; nil
// yields nil.
func ValidationErrors(err error) []error {
	if err == nil {
		return nil
	}
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return []error{err}
}
