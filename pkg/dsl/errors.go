package dsl

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEvent is returned when a step or request names an undeclared event.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrUnknownStore is returned when a step or request names an undeclared store.
	ErrUnknownStore = errors.New("unknown store")
)

// PanicError carries a panic recovered while driving the program, typically
// a failing reducer or mapper.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ExpectationError reports a store whose state differs from the expected one.
type ExpectationError struct {
	Store string
	Want  any
	Got   any
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("store %q: expected %v, got %v", e.Store, e.Want, e.Got)
}

// StepError ties a failure to the step that caused it.
type StepError struct {
	Index  int
	Action Action
	Target string
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s %s): %v", e.Index, e.Action, e.Target, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// guard runs fn and converts a panic into a *PanicError.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	fn()
	return nil
}
