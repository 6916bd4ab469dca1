package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
)

// Scheduler is the decision front door: it routes payloads, evaluates them
// against a consistent view of the store, commits accepted schedules and
// journals every outcome.
type Scheduler struct {
	store     ports.KnowledgeStore
	evaluator *Evaluator
	committer *Committer
	journal   ports.DecisionJournal
	logger    *zap.Logger
}

// NewScheduler creates a scheduler over store.
func NewScheduler(store ports.KnowledgeStore, opts ...Option) *Scheduler {
	o := newOptions(opts)
	return &Scheduler{
		store:     store,
		evaluator: NewEvaluator(opts...),
		committer: NewCommitter(store, opts...),
		journal:   o.journal,
		logger:    o.logger,
	}
}

// CheckAvailability answers whether a theatre is ready for surgery.
func (s *Scheduler) CheckAvailability(ctx context.Context, theatreName string) (entities.AvailabilityResult, error) {
	var result entities.AvailabilityResult
	err := s.store.View(ctx, func(r ports.KnowledgeReader) error {
		result = s.evaluator.CheckAvailability(r, theatreName)
		return nil
	})
	if err != nil {
		return entities.AvailabilityResult{}, err
	}
	s.record(ctx, &entities.Decision{
		Path:    entities.PathAvailability,
		Valid:   result.Available,
		Reason:  result.Reason,
		Payload: entities.Payload{TheatreName: theatreName},
	})
	return result, nil
}

// Validate runs the full rule set without committing.
func (s *Scheduler) Validate(ctx context.Context, p entities.Payload) (entities.ValidationResult, error) {
	var result entities.ValidationResult
	err := s.store.View(ctx, func(r ports.KnowledgeReader) error {
		result = s.evaluator.Validate(r, p)
		return nil
	})
	if err != nil {
		return entities.ValidationResult{}, err
	}
	s.record(ctx, &entities.Decision{
		Path:    entities.PathValidation,
		Valid:   result.IsValid,
		Reason:  result.Reason,
		Payload: p,
	})
	return result, nil
}

// Evaluate routes p to the availability check or full validation. Extraction
// failures are refused without touching the store. The only error returned is
// a cancelled context.
func (s *Scheduler) Evaluate(ctx context.Context, p entities.Payload) (entities.Decision, error) {
	path := Route(p)

	if p.ExtractionFailed() {
		d := entities.Decision{Path: path, Reason: ExtractionFailedReason(p), Payload: p}
		s.record(ctx, &d)
		return d, nil
	}

	if path == entities.PathAvailability {
		result, err := s.CheckAvailability(ctx, p.TheatreName)
		if err != nil {
			return entities.Decision{}, err
		}
		return entities.Decision{Path: path, Valid: result.Available, Reason: result.Reason, Payload: p}, nil
	}

	result, err := s.Validate(ctx, p)
	if err != nil {
		return entities.Decision{}, err
	}
	return entities.Decision{Path: path, Valid: result.IsValid, Reason: result.Reason, Payload: p}, nil
}

// Commit creates a schedule for a payload the caller already validated.
func (s *Scheduler) Commit(ctx context.Context, p entities.Payload) entities.CommitResult {
	result := s.committer.Commit(ctx, p)
	s.record(ctx, &entities.Decision{
		Path:       entities.PathCommit,
		Valid:      result.Success,
		Reason:     result.Reason,
		ScheduleID: result.ScheduleID,
		Payload:    p,
	})
	return result
}

// ValidateAndCommit validates p and, when valid, commits it under the same
// write lock so no other commit can slip in between.
func (s *Scheduler) ValidateAndCommit(ctx context.Context, p entities.Payload) (entities.ValidationResult, entities.CommitResult) {
	var validation entities.ValidationResult
	var commit entities.CommitResult

	err := s.store.Update(ctx, func(w ports.KnowledgeWriter) error {
		validation = s.evaluator.Validate(w, p)
		if !validation.IsValid {
			commit = entities.CommitResult{Reason: validation.Reason}
			return nil
		}
		commit = s.committer.stage(w, p)
		return nil
	})
	if err != nil {
		s.logger.Error("schedule commit failed", zap.Error(err))
		commit = entities.CommitResult{Reason: err.Error()}
		if validation.Reason == "" {
			// the callback never ran
			validation = entities.ValidationResult{Reason: err.Error()}
		}
	}

	s.record(ctx, &entities.Decision{
		Path:       entities.PathCommit,
		Valid:      commit.Success,
		Reason:     commit.Reason,
		ScheduleID: commit.ScheduleID,
		Payload:    p,
	})
	return validation, commit
}

// record appends d to the journal. Journal failures never change a decision.
func (s *Scheduler) record(ctx context.Context, d *entities.Decision) {
	s.logger.Info("decision",
		zap.String("path", string(d.Path)),
		zap.Bool("valid", d.Valid),
		zap.String("reason", d.Reason),
		zap.String("schedule_id", d.ScheduleID),
	)
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(context.WithoutCancel(ctx), d); err != nil {
		s.logger.Warn("journal write failed", zap.Error(err))
	}
}
