/*
errors.go - Centralized error types for the leave engine and its stores

PURPOSE:
  All sentinel errors in one place. The engine itself reports ineligibility
  as data (Decision with a reason string, see eligibility.go); these errors
  cover the store boundary and the mutation contracts around the engine.

USAGE:
  Callers classify with errors.Is:

    if errors.Is(err, engine.ErrDateOccupied) {
        // the day gained an assignment between check and write
    }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCategoryNotFound is returned when a referenced category doesn't exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrAssignmentNotFound is returned when a referenced assignment doesn't exist.
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrDateOccupied is returned when inserting an assignment on a date that
	// already carries one. This is the store-level backstop for the
	// at-most-one-assignment-per-day invariant.
	ErrDateOccupied = errors.New("date already has an assignment")

	// ErrInvalidWindow is returned when a category window ends before it starts.
	ErrInvalidWindow = errors.New("invalid window: end before start")

	// ErrIneligible is returned when an assign mutation fails its fresh
	// eligibility re-check.
	ErrIneligible = errors.New("assignment not eligible")

	// ErrNothingToUndo is returned when the undo history is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// IneligibleError reports why an assign mutation was refused. Reason is one
// of the verbatim strings from eligibility.go and is surfaced to the end
// user untranslated.
type IneligibleError struct {
	CategoryID CategoryID
	Date       Date
	Reason     string
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("cannot assign %s on %s: %s", e.CategoryID, e.Date, e.Reason)
}

func (e *IneligibleError) Unwrap() error { return ErrIneligible }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrAssignmentNotFound)
}

// IsClientError returns true if the error is due to invalid client input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrDateOccupied) ||
		errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrIneligible) ||
		errors.Is(err, ErrNothingToUndo)
}
