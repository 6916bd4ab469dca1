// Package yamlstore provides the knowledge store: typed hospital entities held
// in memory and persisted as a single YAML document that is rewritten in full
// on every change.
package yamlstore

import (
	"bytes"
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
)

var _ ports.KnowledgeStore = (*Store)(nil)

// Store implements ports.KnowledgeStore on a YAML file.
type Store struct {
	mu     sync.RWMutex
	path   string
	doc    *document
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and save events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns an empty store bound to path. Nothing is written until Update or Save.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		doc:    &document{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load parses the knowledge store file at path.
func Load(path string, opts ...Option) (*Store, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.WithHint(
			errors.Mark(errors.Newf("knowledge store not found: %s", path), entities.ErrPersistence),
			"run 'theatre init' or point store.path at an existing file")
	}
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "reading knowledge store"), entities.ErrPersistence)
	}

	doc, err := decode(data)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "loading %s", path), entities.ErrPersistence)
	}

	s := New(path, opts...)
	s.doc = doc
	s.logger.Debug("knowledge store loaded",
		zap.String("path", path),
		zap.Int("surgeons", doc.count(entities.KindSurgeon)),
		zap.Int("theatres", doc.count(entities.KindTheatre)),
		zap.Int("timeslots", doc.count(entities.KindTimeSlot)),
		zap.Int("schedules", doc.count(entities.KindSchedule)),
	)
	return s, nil
}

// decode parses a store document. Unknown keys are rejected so a misspelled
// flag cannot silently default to false.
func decode(data []byte) (*document, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "parsing YAML")
	}
	if err := doc.normalize(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// FindByType enumerates the entities of a kind as of the call.
func (s *Store) FindByType(kind entities.Kind) iter.Seq[entities.Entity] {
	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()
	return doc.seq(kind)
}

// Count returns the number of entities of a kind.
func (s *Store) Count(kind entities.Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.count(kind)
}

// View runs fn against a consistent snapshot. Views may run concurrently but
// never overlap an Update's save.
func (s *Store) View(ctx context.Context, fn func(ports.KnowledgeReader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(reader{doc: s.doc})
}

// Update runs fn under the writer lock. Staged schedules are written to disk
// first and only become visible once the file has been replaced.
func (s *Store) Update(ctx context.Context, fn func(ports.KnowledgeWriter) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txn{reader: reader{doc: s.doc}}
	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.staged) == 0 {
		return nil
	}

	next := s.doc.withSchedules(tx.staged)
	if err := writeAtomic(s.path, next); err != nil {
		s.logger.Error("knowledge store save failed", zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.doc = next
	s.logger.Info("knowledge store saved",
		zap.String("path", s.path),
		zap.Int("new_schedules", len(tx.staged)),
		zap.Int("schedules", len(next.Schedules)),
	)
	return nil
}

// Save writes the current state to path, replacing any existing file.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return writeAtomic(path, s.doc)
}

// writeAtomic replaces path with the serialized document via a temp file in
// the same directory and a rename.
func writeAtomic(path string, doc *document) (err error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "marshaling knowledge store"), entities.ErrPersistence)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Mark(errors.Wrap(err, "creating store directory"), entities.ErrPersistence)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Mark(errors.Wrap(err, "creating temp file"), entities.ErrPersistence)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Mark(errors.Wrap(err, "writing knowledge store"), entities.ErrPersistence)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Mark(errors.Wrap(err, "syncing knowledge store"), entities.ErrPersistence)
	}
	if info, statErr := os.Stat(path); statErr == nil {
		if err = tmp.Chmod(info.Mode().Perm()); err != nil {
			_ = tmp.Close()
			return errors.Mark(errors.Wrap(err, "keeping store permissions"), entities.ErrPersistence)
		}
	}
	if err = tmp.Close(); err != nil {
		return errors.Mark(errors.Wrap(err, "closing knowledge store"), entities.ErrPersistence)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Mark(errors.Wrap(err, "replacing knowledge store"), entities.ErrPersistence)
	}
	return nil
}

// reader is a read-only view over one document.
type reader struct {
	doc *document
}

func (r reader) FindByType(kind entities.Kind) iter.Seq[entities.Entity] {
	return r.doc.seq(kind)
}

// txn stages schedules on top of a document.
type txn struct {
	reader
	staged []*entities.Schedule
}

func (t *txn) FindByType(kind entities.Kind) iter.Seq[entities.Entity] {
	base := t.reader.FindByType(kind)
	if kind != entities.KindSchedule {
		return base
	}
	staged := t.staged
	return func(yield func(entities.Entity) bool) {
		for e := range base {
			if !yield(e) {
				return
			}
		}
		for _, s := range staged {
			if !yield(s) {
				return
			}
		}
	}
}

// AddSchedule stages a schedule, rejecting incomplete references and taken IDs.
func (t *txn) AddSchedule(schedule *entities.Schedule) error {
	if schedule == nil || schedule.ID == "" {
		return errors.New("schedule id is required")
	}
	for kind, name := range schedule.References() {
		if name == "" {
			return errors.Newf("schedule %s has no %s", schedule.ID, kind)
		}
	}
	for e := range t.FindByType(entities.KindSchedule) {
		if e.EntityName() == schedule.ID {
			return errors.Mark(errors.Newf("schedule id %s already exists", schedule.ID), entities.ErrConflict)
		}
	}
	t.staged = append(t.staged, schedule)
	return nil
}
