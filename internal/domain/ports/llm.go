package ports

import (
	"context"

	"github.com/ersonp/theatre-core/internal/domain/entities"
)

// Extractor turns a free-text request into a structured payload.
// Collaborator failures come back as a payload carrying Error, not as a Go error.
type Extractor interface {
	Extract(ctx context.Context, text string) (entities.Payload, error)
}
