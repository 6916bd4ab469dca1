package ports

import (
	"context"

	"github.com/ersonp/theatre-core/internal/domain/entities"
)

// DecisionJournal records every decision the engine makes.
type DecisionJournal interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Record appends a decision.
	Record(ctx context.Context, decision *entities.Decision) error

	// List returns the most recent decisions, newest first.
	List(ctx context.Context, limit int) ([]entities.Decision, error)

	// ListByPath returns the most recent decisions taken on one path.
	ListByPath(ctx context.Context, path entities.Path, limit int) ([]entities.Decision, error)

	// Count returns the number of recorded decisions.
	Count(ctx context.Context) (int, error)
}
