package app

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCommand is returned by Exec for a name it does not dispatch.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage is returned when a command gets the wrong number or shape of arguments.
	ErrUsage = errors.New("usage")

	ErrUnknownLogLevel = errors.New("unknown log level")

	// ErrClosed is returned by operations on a closed Application.
	ErrClosed = errors.New("application closed")
)

// OperationError ties a failure to the command or lifecycle step that hit it
// and the document or script it was acting on.
type OperationError struct {
	Op     string
	Target string
	// Detail is optional, e.g. the buffer kind of a failed open.
	Detail string
	Err    error
}

// NewOperationError wraps err for op on target.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// WithContext sets Detail and returns e. A nil receiver stays nil.
func (e *OperationError) WithContext(detail string) *OperationError {
	if e != nil {
		e.Detail = detail
	}
	return e
}

// Error formats as "op target (detail): cause".
func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Target != "" {
		b.WriteByte(' ')
		b.WriteString(e.Target)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the cause.
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InitError names the bootstrap step that failed.
type InitError struct {
	Component string
	Err       error
}

// Error names the failed component.
func (e *InitError) Error() string {
	return "initializing " + e.Component + ": " + e.Err.Error()
}

// Unwrap returns the cause.
func (e *InitError) Unwrap() error { return e.Err }
