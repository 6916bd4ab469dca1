// Package sqlite provides a SQLite implementation of the DecisionJournal interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
	"github.com/ersonp/theatre-core/internal/infrastructure/config"
)

var _ ports.DecisionJournal = (*Repository)(nil)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.DecisionJournal using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}

	// Each connection to :memory: is a separate database
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enabling WAL mode")
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "setting busy timeout")
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Decisions (one row per availability check, validation or commit)
	CREATE TABLE IF NOT EXISTS decisions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		path TEXT NOT NULL,
		valid INTEGER NOT NULL,
		reason TEXT NOT NULL,
		schedule_id TEXT,
		payload TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_decisions_path ON decisions(path);
	CREATE INDEX IF NOT EXISTS idx_decisions_schedule ON decisions(schedule_id);
	CREATE INDEX IF NOT EXISTS idx_decisions_created ON decisions(created_at);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return errors.Mark(errors.Wrap(err, "creating schema"), entities.ErrPersistence)
	}
	return nil
}

// Record appends a decision, filling in its ID and timestamp when unset.
func (r *Repository) Record(ctx context.Context, decision *entities.Decision) error {
	if decision.ID == "" {
		decision.ID = generateUUID()
	}
	if decision.CreatedAt.IsZero() {
		decision.CreatedAt = timeNow().UTC()
	}

	payload, err := json.Marshal(decision.Payload)
	if err != nil {
		return errors.Wrap(err, "marshaling payload")
	}

	var scheduleID sql.NullString
	if decision.ScheduleID != "" {
		scheduleID = sql.NullString{String: decision.ScheduleID, Valid: true}
	}

	query := `
		INSERT INTO decisions (id, path, valid, reason, schedule_id, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		decision.ID,
		string(decision.Path),
		decision.Valid,
		decision.Reason,
		scheduleID,
		string(payload),
		decision.CreatedAt,
	)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "recording decision"), entities.ErrPersistence)
	}
	return nil
}

// List returns the most recent decisions, newest first. A non-positive limit
// returns everything.
func (r *Repository) List(ctx context.Context, limit int) ([]entities.Decision, error) {
	query := `
		SELECT id, path, valid, reason, schedule_id, payload, created_at
		FROM decisions
		ORDER BY seq DESC
		LIMIT ?
	`
	return r.queryDecisions(ctx, query, sqlLimit(limit))
}

// ListByPath returns the most recent decisions taken on one path.
func (r *Repository) ListByPath(ctx context.Context, path entities.Path, limit int) ([]entities.Decision, error) {
	query := `
		SELECT id, path, valid, reason, schedule_id, payload, created_at
		FROM decisions
		WHERE path = ?
		ORDER BY seq DESC
		LIMIT ?
	`
	return r.queryDecisions(ctx, query, string(path), sqlLimit(limit))
}

// Count returns the number of recorded decisions.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decisions`).Scan(&count)
	if err != nil {
		return 0, errors.Mark(errors.Wrap(err, "counting decisions"), entities.ErrPersistence)
	}
	return count, nil
}

// sqlLimit maps "no limit" to SQLite's -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func (r *Repository) queryDecisions(ctx context.Context, query string, args ...any) ([]entities.Decision, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "querying decisions"), entities.ErrPersistence)
	}
	defer rows.Close()

	decisions := make([]entities.Decision, 0, 16)
	for rows.Next() {
		var d entities.Decision
		var path, payload string
		var scheduleID sql.NullString

		if err := rows.Scan(
			&d.ID,
			&path,
			&d.Valid,
			&d.Reason,
			&scheduleID,
			&payload,
			&d.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scanning decision")
		}

		d.Path = entities.Path(path)
		d.ScheduleID = scheduleID.String

		if err := json.Unmarshal([]byte(payload), &d.Payload); err != nil {
			return nil, errors.Wrap(err, "unmarshaling payload")
		}

		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}
