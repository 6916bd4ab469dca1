// Package services contains domain business logic: entity resolution, rule
// evaluation and schedule commits over a knowledge store.
package services

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ersonp/theatre-core/internal/domain/ports"
)

// Option configures a service.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	now     func() time.Time
	suffix  func() string
	journal ports.DecisionJournal
}

func newOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		now:    time.Now,
		suffix: randomSuffix,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used for schedule IDs and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDSuffix overrides the random part of generated schedule IDs.
func WithIDSuffix(suffix func() string) Option {
	return func(o *options) {
		if suffix != nil {
			o.suffix = suffix
		}
	}
}

// WithJournal records every decision in journal.
func WithJournal(journal ports.DecisionJournal) Option {
	return func(o *options) {
		o.journal = journal
	}
}

// randomSuffix returns 8 hex characters from a random UUID.
func randomSuffix() string {
	id := uuid.New()
	return id.String()[:8]
}
