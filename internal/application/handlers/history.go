package handlers

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
)

// ErrNoJournal is returned when history is requested with journaling disabled.
var ErrNoJournal = errors.New("decision journal is disabled (set journal.path in config)")

// HistoryHandler reads the decision journal.
type HistoryHandler struct {
	journal ports.DecisionJournal
}

// NewHistoryHandler creates a new history handler. journal may be nil.
func NewHistoryHandler(journal ports.DecisionJournal) *HistoryHandler {
	return &HistoryHandler{
		journal: journal,
	}
}

// HistoryResult contains recent decisions.
type HistoryResult struct {
	Decisions []entities.Decision `json:"decisions"`
	Total     int                 `json:"total"`
}

// HandleList returns the most recent decisions, optionally for one path.
func (h *HistoryHandler) HandleList(ctx context.Context, path string, limit int) (*HistoryResult, error) {
	if h.journal == nil {
		return nil, ErrNoJournal
	}

	var decisions []entities.Decision
	var err error
	switch entities.Path(path) {
	case "":
		decisions, err = h.journal.List(ctx, limit)
	case entities.PathAvailability, entities.PathValidation, entities.PathCommit:
		decisions, err = h.journal.ListByPath(ctx, entities.Path(path), limit)
	default:
		return nil, fmt.Errorf("unknown decision path %q (want availability, validation or commit)", path)
	}
	if err != nil {
		return nil, err
	}

	total, err := h.journal.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &HistoryResult{
		Decisions: decisions,
		Total:     total,
	}, nil
}
