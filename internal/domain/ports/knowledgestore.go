// Package ports defines interfaces for external service communication.
package ports

import (
	"context"
	"iter"

	"github.com/ersonp/theatre-core/internal/domain/entities"
)

// KnowledgeReader gives read access to the entities of a knowledge store.
type KnowledgeReader interface {
	// FindByType enumerates all entities of a kind. The sequence is finite
	// and may be ranged over more than once.
	FindByType(kind entities.Kind) iter.Seq[entities.Entity]
}

// KnowledgeWriter extends KnowledgeReader with the mutations a commit needs.
type KnowledgeWriter interface {
	KnowledgeReader

	// AddSchedule stages a new schedule. It fails with entities.ErrConflict
	// when the ID is taken.
	AddSchedule(schedule *entities.Schedule) error
}

// KnowledgeStore is process-wide shared state. Reads run concurrently with
// each other; Update is exclusive and durable.
type KnowledgeStore interface {
	KnowledgeReader

	// View runs fn with a consistent read-only view.
	View(ctx context.Context, fn func(KnowledgeReader) error) error

	// Update runs fn under the single writer lock. Mutations staged by fn are
	// persisted before Update returns; if fn or the save fails nothing changes.
	Update(ctx context.Context, fn func(KnowledgeWriter) error) error
}
