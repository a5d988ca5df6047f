package config

import (
	"errors"
	"fmt"
)

var (
	// ErrSettingNotFound is returned by typed getters for a path no layer sets.
	ErrSettingNotFound = errors.New("setting not found")

	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidValue is returned for a value of the right type that cannot
	// be used, such as a negative size.
	ErrInvalidValue = errors.New("invalid value")
)

// TypeError reports a setting whose stored type does not fit the getter.
// It matches ErrTypeMismatch.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: want %s, have %s", e.Path, e.Expected, e.Actual)
}

func (e *TypeError) Is(target error) bool { return target == ErrTypeMismatch }

// ValueError reports a setting whose value failed to parse or validate.
// It matches ErrInvalidValue and unwraps to the parse error.
type ValueError struct {
	Path  string
	Value any
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s = %v: %v", e.Path, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

func (e *ValueError) Is(target error) bool { return target == ErrInvalidValue }
