package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfBounds indicates an insert position beyond capacity.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrCapacityExceeded indicates a write that would run past capacity.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidRange indicates start > end, a negative start, or end beyond capacity.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidEncoding indicates the requested bytes are not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid utf-8 encoding")

	// ErrUnimplemented is returned by every operation of the Empty variant.
	ErrUnimplemented = errors.New("not implemented")

	// ErrClosed indicates an operation on a closed buffer.
	ErrClosed = errors.New("buffer is closed")

	// ErrUnknownKind indicates an unrecognized buffer kind.
	ErrUnknownKind = errors.New("unknown buffer kind")

	// ErrInvalidCapacity indicates a negative capacity.
	ErrInvalidCapacity = errors.New("invalid capacity")
)

// Error describes a failed buffer operation.
type Error struct {
	Op    string // "insert", "delete", "slice", "bytes", "sync", "close"
	Kind  Kind
	Range Range
	Err   error
}

func newError(op string, kind Kind, start, end int, err error) *Error {
	return &Error{Op: op, Kind: kind, Range: Range{Start: start, End: end}, Err: err}
}

// Error formats the operation, variant and range with the cause.
func (e *Error) Error() string {
	return fmt.Sprintf("buffer: %s %s %s: %v", e.Kind, e.Op, e.Range, e.Err)
}

// Unwrap returns the sentinel or I/O error.
func (e *Error) Unwrap() error {
	return e.Err
}
