/*
repository.go - Persistence interface for profiles, positions, and records

PURPOSE:
  Defines the interface between the calculation engine's callers and the
  database. The engine itself never touches storage or global state; a
  Repository is injected wherever data access is needed, which keeps the
  calculations deterministic and testable with fixture data.

OWNERSHIP:
  A position owns zero-or-more compensation records. Deleting a position
  cascades deletion of its records - the repository enforces this, not the
  calculation layer. Each user's data set is isolated by UserID; switching
  users is just switching the identifier.

IMPLEMENTATIONS:
  - engine/store/memory.go: In-memory, for tests and fixtures
  - store/sqlite: Production SQLite with FK cascade

SEE ALSO:
  - types.go: The persisted entities
*/
package engine

import "context"

// Repository handles persistence of user career data.
type Repository interface {
	// Profiles
	SaveProfile(ctx context.Context, profile UserProfile) error
	GetProfile(ctx context.Context, userID UserID) (*UserProfile, error)

	// Positions
	SavePosition(ctx context.Context, position Position) error
	GetPosition(ctx context.Context, id PositionID) (*Position, error)
	ListPositions(ctx context.Context, userID UserID) ([]Position, error)

	// DeletePosition removes the position AND all its compensation records.
	DeletePosition(ctx context.Context, id PositionID) error

	// Compensation records
	SaveRecord(ctx context.Context, record CompensationRecord) error
	DeleteRecord(ctx context.Context, id RecordID) error
	ListRecordsByPosition(ctx context.Context, id PositionID) ([]CompensationRecord, error)

	// ListRecordsByUser returns every record across the user's positions.
	ListRecordsByUser(ctx context.Context, userID UserID) ([]CompensationRecord, error)
}

// ValidatePosition checks the position invariants before persistence.
func ValidatePosition(p Position) error {
	if p.EmployerName == "" {
		return invalidField(RecordID(p.ID), "employer_name", "required")
	}
	if p.StartDate.IsZero() {
		return invalidField(RecordID(p.ID), "start_date", "required")
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return inconsistentField(RecordID(p.ID), "end_date", "before start date")
	}
	return nil
}
