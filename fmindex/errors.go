package fmindex

import (
	"errors"
	"fmt"
)

// Sentinel error kinds per spec.md §7. Callers distinguish them with
// errors.Is; this module never returns a bare errors.New/fmt.Errorf for
// one of these conditions without wrapping one of these sentinels.
var (
	// ErrInputContainsTerminator is returned by Build when the input text
	// contains the configured terminator byte.
	ErrInputContainsTerminator = errors.New("fmindex: input contains the terminator byte")
	// ErrMalformedIndex is returned by Load when the magic, version,
	// declared length, or internal bounds of a serialized index don't
	// check out.
	ErrMalformedIndex = errors.New("fmindex: malformed index")
	// ErrIoFailure wraps an underlying read/write failure encountered
	// while saving or loading an index.
	ErrIoFailure = errors.New("fmindex: i/o failure")
	// ErrInternalInvariantViolation is returned when an LF-mapping walk or
	// checkpoint lookup lands outside its expected bounds. It indicates a
	// corrupt index or a bug, never a normal query outcome; Count/Locate
	// never return this for an absent pattern.
	ErrInternalInvariantViolation = errors.New("fmindex: internal invariant violation")
)

// errInternalInvariantViolationf wraps ErrInternalInvariantViolation with
// a formatted detail message, the same pattern the teacher's bwtRecovery
// uses to turn a panic into an error carrying context.
func errInternalInvariantViolationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInternalInvariantViolation, fmt.Sprintf(format, args...))
}

// recoverInvariantPanic turns a panic raised during an LF-walk (out of
// bounds access, impossible checkpoint state) into an *err assignment
// instead of propagating the panic to the caller. Mirrors
// search/bwt/bwt.go's bwtRecovery boundary.
func recoverInvariantPanic(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s: %v", ErrInternalInvariantViolation, op, r)
	}
}
