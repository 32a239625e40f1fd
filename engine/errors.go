/*
errors.go - Centralized error types for the earnings engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers classify failures with errors.Is(); structured errors carry
  the offending record and field.

ERROR CATEGORIES:
  1. InvalidInput - malformed or out-of-range field on a single record
  2. InconsistentData - cross-field contradictions on a single record
  3. InsufficientData - not enough records to compute a derived metric
  4. NoData - total absence of compensation data

HANDLING CONTRACT:
  Record-level errors (1, 2) reject only the offending record; the rest of
  the analysis proceeds. InsufficientData causes the specific metric to be
  omitted, never a failed analysis. Only NoData surfaces to the caller of
  Analyze, and it signals an empty/onboarding state rather than a fault.

SEE ALSO:
  - normalize.go: Produces RecordError values
  - analyze.go: Degrades metrics on ErrInsufficientData
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
	// ErrInvalidInput is returned for malformed or out-of-range fields:
	// negative amounts, zero/negative base rate, hours outside [0,168].
	ErrInvalidInput = errors.New("invalid input")

	// ErrInconsistentData is returned for cross-field contradictions,
	// e.g. tax withheld exceeding gross income, end date before start date.
	ErrInconsistentData = errors.New("inconsistent data")

	// ErrInsufficientData is returned when a metric cannot be computed from
	// the available records (e.g. fewer than 4 weekly entries for a trend,
	// no market reference for the user's industry).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNoData is returned when there is no compensation data at all.
	ErrNoData = errors.New("no compensation data")

	// ErrPositionNotFound is returned by repositories for unknown positions.
	ErrPositionNotFound = errors.New("position not found")

	// ErrRecordNotFound is returned by repositories for unknown records.
	ErrRecordNotFound = errors.New("record not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RecordError identifies which record and field failed validation.
type RecordError struct {
	RecordID RecordID
	Field    string
	Reason   string
	Err      error // ErrInvalidInput or ErrInconsistentData
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %s: field %q: %s", e.RecordID, e.Field, e.Reason)
}

func (e *RecordError) Unwrap() error { return e.Err }

func invalidField(id RecordID, field, reason string) *RecordError {
	return &RecordError{RecordID: id, Field: field, Reason: reason, Err: ErrInvalidInput}
}

func inconsistentField(id RecordID, field, reason string) *RecordError {
	return &RecordError{RecordID: id, Field: field, Reason: reason, Err: ErrInconsistentData}
}

// IsRecordError returns true if the error rejects a single record rather
// than the whole analysis.
func IsRecordError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInconsistentData)
}
