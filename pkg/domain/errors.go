package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned (or panicked with, for chainable calls) when a
// function capability is missing or nil.
var ErrInvalidArgument = errors.New("invalid argument")

// ListenerError wraps a panic recovered from a store subscriber.
type ListenerError struct {
	// Store is the display name of the store that was notifying.
	Store string
	// Value is what the listener panicked with.
	Value any
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener of store %q failed: %v", e.Store, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *ListenerError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
