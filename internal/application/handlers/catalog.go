package handlers

import (
	"fmt"
	"strings"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
)

// CatalogHandler lists knowledge store contents.
type CatalogHandler struct {
	store ports.KnowledgeReader
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(store ports.KnowledgeReader) *CatalogHandler {
	return &CatalogHandler{
		store: store,
	}
}

// CatalogResult contains the entities of one kind.
type CatalogResult struct {
	Kind     entities.Kind     `json:"kind"`
	Entities []entities.Entity `json:"entities"`
	Total    int               `json:"total"`
}

// HandleList returns all entities of the named kind.
func (h *CatalogHandler) HandleList(kindName string) (*CatalogResult, error) {
	kind, ok := entities.ParseKind(kindName)
	if !ok {
		names := make([]string, 0, len(entities.Kinds))
		for _, k := range entities.Kinds {
			names = append(names, string(k))
		}
		return nil, fmt.Errorf("unknown entity kind %q (want one of %s)", kindName, strings.Join(names, ", "))
	}

	result := &CatalogResult{Kind: kind, Entities: []entities.Entity{}}
	for e := range h.store.FindByType(kind) {
		result.Entities = append(result.Entities, e)
	}
	result.Total = len(result.Entities)
	return result, nil
}

// HandleSchedules returns all committed schedules.
func (h *CatalogHandler) HandleSchedules() []*entities.Schedule {
	var schedules []*entities.Schedule
	for e := range h.store.FindByType(entities.KindSchedule) {
		if s, ok := e.(*entities.Schedule); ok {
			schedules = append(schedules, s)
		}
	}
	return schedules
}
