package drill

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLesson is returned when a lesson has no pairs to drill.
	ErrEmptyLesson = errors.New("drill: lesson has no word pairs")

	// ErrInvalidState is returned when an operation is called in a state
	// that does not allow it. It signals a caller bug.
	ErrInvalidState = errors.New("drill: invalid session state")
)

// StateError reports which operation was rejected and in which state.
// It matches ErrInvalidState with errors.Is.
type StateError struct {
	Op     string
	State  State
	Paused bool
	Reason string
}

func (e *StateError) Error() string {
	msg := fmt.Sprintf("drill: %s not allowed in state %s", e.Op, e.State)
	if e.Paused {
		msg += " (paused)"
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *StateError) Unwrap() error { return ErrInvalidState }
