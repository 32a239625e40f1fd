/*
Package sqlite provides a SQLite-backed implementation of engine.Repository.

PURPOSE:
  Persists user profiles, positions, and compensation records. The same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  profiles:             One row per user
  positions:            Employment periods, owned by a user
  compensation_records: All four record variants in one table, discriminated
                        by the kind column; variant payload stored as JSON

CASCADE SEMANTICS:
  compensation_records has ON DELETE CASCADE on its position foreign key,
  so deleting a position deletes its records in the same statement. This is
  the repository-level enforcement of the ownership invariant: records do
  not outlive their position.

DECIMAL STORAGE:
  Money values are serialized through decimal.Decimal's JSON encoding
  (strings), never as floats, so round-trips are lossless.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and crash recovery improves.

USAGE:
  repo, err := sqlite.New("./data/paylens.db")
  if err != nil {
      log.Fatal(err)
  }
  defer repo.Close()

SEE ALSO:
  - engine/repository.go: Interface definition
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/paylens/earnings-engine/engine"
)

// Repository implements engine.Repository using SQLite.
type Repository struct {
	db *sql.DB
}

var _ engine.Repository = (*Repository)(nil)

// New creates a SQLite repository at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repo, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		payload_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS positions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		payload_json TEXT NOT NULL,
		start_date TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_positions_user ON positions(user_id);

	CREATE TABLE IF NOT EXISTS compensation_records (
		id TEXT PRIMARY KEY,
		position_id TEXT NOT NULL REFERENCES positions(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		payload_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_position ON compensation_records(position_id);
	`
	_, err := r.db.Exec(schema)
	return err
}

// =============================================================================
// PROFILES
// =============================================================================

func (r *Repository) SaveProfile(ctx context.Context, profile engine.UserProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, payload_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET payload_json = excluded.payload_json, updated_at = excluded.updated_at`,
		string(profile.UserID), string(payload), now())
	return err
}

func (r *Repository) GetProfile(ctx context.Context, userID engine.UserID) (*engine.UserProfile, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload_json FROM profiles WHERE user_id = ?`, string(userID)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var profile engine.UserProfile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// =============================================================================
// POSITIONS
// =============================================================================

func (r *Repository) SavePosition(ctx context.Context, position engine.Position) error {
	if err := engine.ValidatePosition(position); err != nil {
		return err
	}
	payload, err := json.Marshal(position)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO positions (id, user_id, payload_json, start_date, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			payload_json = excluded.payload_json,
			start_date = excluded.start_date,
			updated_at = excluded.updated_at`,
		string(position.ID), string(position.UserID), string(payload),
		position.StartDate.Format(time.RFC3339), now())
	return err
}

func (r *Repository) GetPosition(ctx context.Context, id engine.PositionID) (*engine.Position, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload_json FROM positions WHERE id = ?`, string(id)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, engine.ErrPositionNotFound
	}
	if err != nil {
		return nil, err
	}
	var position engine.Position
	if err := json.Unmarshal([]byte(payload), &position); err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *Repository) ListPositions(ctx context.Context, userID engine.UserID) ([]engine.Position, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT payload_json FROM positions WHERE user_id = ? ORDER BY start_date`, string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []engine.Position
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var position engine.Position
		if err := json.Unmarshal([]byte(payload), &position); err != nil {
			return nil, err
		}
		positions = append(positions, position)
	}
	return positions, rows.Err()
}

// DeletePosition removes the position; its records cascade via the FK.
func (r *Repository) DeletePosition(ctx context.Context, id engine.PositionID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM positions WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return engine.ErrPositionNotFound
	}
	return nil
}

// =============================================================================
// COMPENSATION RECORDS
// =============================================================================

func (r *Repository) SaveRecord(ctx context.Context, record engine.CompensationRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO compensation_records (id, position_id, kind, payload_json, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position_id = excluded.position_id,
			kind = excluded.kind,
			payload_json = excluded.payload_json`,
		string(record.RecordID()), string(record.Position()), string(record.Kind()),
		string(payload), now())
	if isForeignKeyError(err) {
		return engine.ErrPositionNotFound
	}
	return err
}

func (r *Repository) DeleteRecord(ctx context.Context, id engine.RecordID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM compensation_records WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return engine.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) ListRecordsByPosition(ctx context.Context, id engine.PositionID) ([]engine.CompensationRecord, error) {
	return r.queryRecords(ctx,
		`SELECT kind, payload_json FROM compensation_records WHERE position_id = ? ORDER BY id`,
		string(id))
}

func (r *Repository) ListRecordsByUser(ctx context.Context, userID engine.UserID) ([]engine.CompensationRecord, error) {
	return r.queryRecords(ctx, `
		SELECT cr.kind, cr.payload_json
		FROM compensation_records cr
		JOIN positions p ON p.id = cr.position_id
		WHERE p.user_id = ?
		ORDER BY cr.id`,
		string(userID))
}

func (r *Repository) queryRecords(ctx context.Context, query string, args ...any) ([]engine.CompensationRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []engine.CompensationRecord
	for rows.Next() {
		var kind, payload string
		if err := rows.Scan(&kind, &payload); err != nil {
			return nil, err
		}
		record, err := DecodeRecord(engine.RecordKind(kind), []byte(payload))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// DecodeRecord rebuilds the concrete variant from the kind discriminator.
func DecodeRecord(kind engine.RecordKind, payload []byte) (engine.CompensationRecord, error) {
	switch kind {
	case engine.KindExact:
		var rec engine.ExactRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, err
		}
		return rec, nil
	case engine.KindFuzzy:
		var rec engine.FuzzyRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, err
		}
		return rec, nil
	case engine.KindYearlySummary:
		var rec engine.YearlySummaryRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, err
		}
		return rec, nil
	case engine.KindWeekly:
		var rec engine.WeeklyRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, err
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY")
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }
