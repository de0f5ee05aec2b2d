package recognizer

import (
	"errors"
	"fmt"
)

// ErrRecognition is the category of "input did not match" failures.
// Every structured recognition error unwraps to it, so callers that try
// candidate rules can tell a plain mismatch apart from a real failure
// with errors.Is.
var ErrRecognition = errors.New("recognition failed")

// ErrSpeculationFailed is returned while speculating instead of building
// a positioned error. It carries no state and is never allocated per use.
var ErrSpeculationFailed = fmt.Errorf("%w: speculative attempt failed", ErrRecognition)

// MismatchedError reports that the symbol at Index was not the expected one.
type MismatchedError struct {
	Expecting int
	Found     int
	Text      string
	Index     int
	Line      int
	Column    int
}

func (e *MismatchedError) Error() string {
	msg := fmt.Sprintf("mismatched input %q (type %d) expecting type %d", e.Text, e.Found, e.Expecting)
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, msg)
	}
	return fmt.Sprintf("%s at index %d", msg, e.Index)
}

func (e *MismatchedError) Unwrap() error { return ErrRecognition }
