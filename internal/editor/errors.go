package editor

import "errors"

// Errors returned by session operations.
var (
	// ErrNoDocument indicates an operation with no buffer open.
	ErrNoDocument = errors.New("no document open")

	// ErrInvalidUsed indicates a logical length outside [0, capacity].
	ErrInvalidUsed = errors.New("logical length out of range")

	// ErrCorruptState indicates a sidecar state file that cannot be parsed.
	ErrCorruptState = errors.New("corrupt state file")
)
