package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is returned when a status value outside its enumerated
	// set is supplied. The caller maps it to a client error; it is never
	// silently coerced.
	ErrInvalidState = errors.New("invalid state")

	// ErrNotFound is returned when an operation targets an order, product or
	// user that does not exist. An empty result set is not ErrNotFound.
	ErrNotFound = errors.New("not found")
)

// InvalidStateErr wraps ErrInvalidState with the offending value.
func InvalidStateErr(kind, value string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidState, kind, value)
}

// NotFoundErr wraps ErrNotFound with the missing entity.
func NotFoundErr(kind string, id int64) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
}
