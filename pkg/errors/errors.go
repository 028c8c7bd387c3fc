package errors

import (
	goErrors "errors"
	"fmt"
)

// New returns an error with the given message.
func New(msg string) error {
	return goErrors.New(msg)
}

// ContextError annotates an error with the operation that produced it. The
// annotations accumulate as the error travels up the call stack, so the final
// message reads like a breadcrumb trail.
type ContextError struct {
	Context string
	Err     error
}

func (ce ContextError) Error() string {
	return fmt.Sprintf("%s: %s", ce.Context, ce.Err)
}

// Unwrap returns the wrapped error.
func (ce ContextError) Unwrap() error {
	return ce.Err
}

// WithContext wraps err with a short description of the operation that failed.
func WithContext(err error, msg string) error {
	return ContextError{Context: msg, Err: err}
}

// RootCause unwraps err until it reaches the innermost error.
func RootCause(err error) error {
	for {
		ce, ok := err.(ContextError)
		if !ok {
			return err
		}
		err = ce.Err
	}
}

// FriendlyError is an error whose message is meant to be shown to the user
// directly, without any wrapping context.
type FriendlyError struct {
	Message string
}

func (err FriendlyError) Error() string {
	return err.Message
}

// FriendlyMessage returns the user-facing message.
func (err FriendlyError) FriendlyMessage() string {
	return err.Message
}

// NewFriendlyError creates an error that's shown to the user verbatim.
func NewFriendlyError(format string, args ...interface{}) error {
	return FriendlyError{Message: fmt.Sprintf(format, args...)}
}

type friendlyMessager interface {
	FriendlyMessage() string
}

// GetPrintableMessage returns the message that should be shown to the user
// for the given error.
func GetPrintableMessage(err error) string {
	if friendly, ok := err.(friendlyMessager); ok {
		return friendly.FriendlyMessage()
	}
	if friendly, ok := RootCause(err).(friendlyMessager); ok {
		return friendly.FriendlyMessage()
	}
	return err.Error()
}
