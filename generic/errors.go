/*
errors.go - Centralized error types for the reconciliation engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The hours, convert and api packages wrap these with file paths and weeks.

ERROR CATEGORIES:
  1. Input errors - Missing export files, unsupported uploads
  2. Week errors - Malformed week identifiers
  3. Lease errors - A run for the same week is already in progress

NOT ERRORS:
  Malformed numeric cells and missing header columns are recovered locally
  by the loaders (the row contributes nothing). They never surface here.

USAGE:
  if errors.Is(err, generic.ErrInputNotFound) {
      var missing *generic.MissingInputError
      errors.As(err, &missing) // missing.Path names the file
  }

SEE ALSO:
  - lease.go: Uses ErrWeekLocked
  - hours/validation.go: Returns MissingInputError
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInputNotFound is returned when an expected export file is absent.
	ErrInputNotFound = errors.New("input file not found")

	// ErrInvalidWeek is returned for week ids that are not YYYYww.
	ErrInvalidWeek = errors.New("invalid week id")

	// ErrWeekLocked is returned when another run holds the lease for the week.
	ErrWeekLocked = errors.New("week is locked by another run")

	// ErrUnsupportedFile is returned for uploads that are not .xlsx workbooks.
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MissingInputError names the input that could not be found.
type MissingInputError struct {
	Role string // "factuur", "kloklijst", or an upload name
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s file not found: %s", e.Role, e.Path)
}

func (e *MissingInputError) Unwrap() error {
	return ErrInputNotFound
}

// LeaseHeldError reports who currently owns a week.
type LeaseHeldError struct {
	Week  WeekID
	Owner string
}

func (e *LeaseHeldError) Error() string {
	if e.Owner == "" {
		return fmt.Sprintf("week %s is being validated by another run", e.Week)
	}
	return fmt.Sprintf("week %s is being validated by run %s", e.Week, e.Owner)
}

func (e *LeaseHeldError) Unwrap() error {
	return ErrWeekLocked
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing input.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrInputNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidWeek) ||
		errors.Is(err, ErrUnsupportedFile)
}

// IsRetryable returns true if the error might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrWeekLocked)
}
