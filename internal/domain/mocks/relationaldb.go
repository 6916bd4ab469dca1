package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
)

var _ ports.DecisionJournal = (*Journal)(nil)

// Journal is a mock implementation of ports.DecisionJournal.
type Journal struct {
	mu        sync.Mutex
	Decisions []entities.Decision
	Err       error
}

// NewJournal creates a new mock Journal.
func NewJournal() *Journal {
	return &Journal{}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *Journal) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *Journal) Close() error {
	return nil
}

// Record appends a decision.
func (m *Journal) Record(_ context.Context, d *entities.Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Decisions = append(m.Decisions, *d)
	return nil
}

// List returns the most recent decisions, newest first.
func (m *Journal) List(_ context.Context, limit int) ([]entities.Decision, error) {
	return m.filter("", limit)
}

// ListByPath returns the most recent decisions taken on one path.
func (m *Journal) ListByPath(_ context.Context, path entities.Path, limit int) ([]entities.Decision, error) {
	return m.filter(path, limit)
}

// Count returns the number of recorded decisions.
func (m *Journal) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Decisions), nil
}

func (m *Journal) filter(path entities.Path, limit int) ([]entities.Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.Decision
	for i := len(m.Decisions) - 1; i >= 0; i-- {
		if path != "" && m.Decisions[i].Path != path {
			continue
		}
		out = append(out, m.Decisions[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
