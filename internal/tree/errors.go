package tree

import "fmt"

// AuthoringError indicates a defect in tree or registry setup: an
// unregistered operator symbol, a malformed node shape, invalid serialized
// data. It is returned to the caller as an error so it surfaces during
// development, never folded into an Error decision.
type AuthoringError struct {
	msg string
}

func (e *AuthoringError) Error() string { return e.msg }

func authoringErrorf(format string, args ...any) *AuthoringError {
	return &AuthoringError{msg: fmt.Sprintf(format, args...)}
}

// InputError indicates that the caller-supplied inputs could not answer the
// current question. The evaluator recovers it into a structured Error
// result; it never crosses the Evaluate boundary as an error.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

func inputErrorf(format string, args ...any) *InputError {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}
