package mocks

import (
	"context"
	"iter"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
)

var _ ports.KnowledgeStore = (*KnowledgeStore)(nil)

// KnowledgeStore is an in-memory mock implementation of ports.KnowledgeStore.
type KnowledgeStore struct {
	mu       sync.RWMutex
	entities map[entities.Kind][]entities.Entity

	// SaveErr fails every Update that staged changes.
	SaveErr error
	// Saves counts successful Updates that staged changes.
	Saves int
}

// NewKnowledgeStore creates a store holding the given entities.
func NewKnowledgeStore(items ...entities.Entity) *KnowledgeStore {
	m := &KnowledgeStore{entities: make(map[entities.Kind][]entities.Entity)}
	for _, e := range items {
		m.entities[e.Kind()] = append(m.entities[e.Kind()], e)
	}
	return m
}

// FindByType enumerates the entities of a kind.
func (m *KnowledgeStore) FindByType(kind entities.Kind) iter.Seq[entities.Entity] {
	m.mu.RLock()
	items := m.entities[kind]
	m.mu.RUnlock()
	return sliceSeq(items)
}

// Schedules returns the stored schedules.
func (m *KnowledgeStore) Schedules() []*entities.Schedule {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*entities.Schedule, 0, len(m.entities[entities.KindSchedule]))
	for _, e := range m.entities[entities.KindSchedule] {
		out = append(out, e.(*entities.Schedule))
	}
	return out
}

// View runs fn under the read lock.
func (m *KnowledgeStore) View(ctx context.Context, fn func(ports.KnowledgeReader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(snapshot{items: m.entities})
}

// Update runs fn under the write lock and applies staged schedules unless
// fn or the simulated save fails.
func (m *KnowledgeStore) Update(ctx context.Context, fn func(ports.KnowledgeWriter) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	w := &writer{snapshot: snapshot{items: m.entities}}
	if err := fn(w); err != nil {
		return err
	}
	if len(w.staged) == 0 {
		return nil
	}
	if m.SaveErr != nil {
		return errors.Mark(m.SaveErr, entities.ErrPersistence)
	}

	next := make(map[entities.Kind][]entities.Entity, len(m.entities))
	for k, v := range m.entities {
		next[k] = v
	}
	schedules := append([]entities.Entity{}, m.entities[entities.KindSchedule]...)
	for _, s := range w.staged {
		schedules = append(schedules, s)
	}
	next[entities.KindSchedule] = schedules
	m.entities = next
	m.Saves++
	return nil
}

type snapshot struct {
	items map[entities.Kind][]entities.Entity
}

func (s snapshot) FindByType(kind entities.Kind) iter.Seq[entities.Entity] {
	return sliceSeq(s.items[kind])
}

type writer struct {
	snapshot
	staged []*entities.Schedule
}

func (w *writer) FindByType(kind entities.Kind) iter.Seq[entities.Entity] {
	items := append([]entities.Entity{}, w.items[kind]...)
	if kind == entities.KindSchedule {
		for _, s := range w.staged {
			items = append(items, s)
		}
	}
	return sliceSeq(items)
}

func (w *writer) AddSchedule(s *entities.Schedule) error {
	for e := range w.FindByType(entities.KindSchedule) {
		if e.EntityName() == s.ID {
			return errors.Mark(errors.Newf("schedule id %s already exists", s.ID), entities.ErrConflict)
		}
	}
	w.staged = append(w.staged, s)
	return nil
}

func sliceSeq(items []entities.Entity) iter.Seq[entities.Entity] {
	return func(yield func(entities.Entity) bool) {
		for _, e := range items {
			if !yield(e) {
				return
			}
		}
	}
}
