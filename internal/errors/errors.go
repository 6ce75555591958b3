// Package errors provides centralized error handling for worklog.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrMalformedRow indicates that a row in the work log file could not be
	// parsed into a task. A malformed row fails the whole read.
	ErrMalformedRow = errors.New("malformed work log row")

	// ErrInvalidDate indicates that a date did not match the dd/mm/yyyy layout
	// (or one of the month-first / year-first input variants).
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidMinutes indicates that a time-spent value is not a
	// non-negative whole number of minutes.
	ErrInvalidMinutes = errors.New("invalid minutes")

	// ErrInvalidPattern indicates that a search pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid search pattern")

	// ErrTaskNotFound indicates that the addressed row no longer exists in the log.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskChanged indicates that the addressed row exists but no longer holds
	// the task the caller read earlier.
	ErrTaskChanged = errors.New("task changed on disk")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrLockTimeout indicates a file lock could not be acquired within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrMaxRetriesExceeded indicates the user gave invalid input more times
	// than the prompt retry budget allows.
	ErrMaxRetriesExceeded = errors.New("maximum retry attempts exceeded")

	// ErrInputClosed indicates standard input reached EOF while a prompt was waiting.
	ErrInputClosed = errors.New("input closed")

	// ErrInvalidMenuChoice indicates a key that is not part of the current menu.
	ErrInvalidMenuChoice = errors.New("not in menu")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
