package services

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
)

// RequestOutcome is the result of handling one free-text request.
type RequestOutcome struct {
	Payload  entities.Payload       `json:"payload"`
	Decision entities.Decision      `json:"decision"`
	Commit   *entities.CommitResult `json:"commit,omitempty"`
}

// RequestService turns free text into decisions via the extraction collaborator.
type RequestService struct {
	extractor ports.Extractor
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewRequestService creates a request service.
func NewRequestService(extractor ports.Extractor, scheduler *Scheduler, opts ...Option) *RequestService {
	o := newOptions(opts)
	return &RequestService{
		extractor: extractor,
		scheduler: scheduler,
		logger:    o.logger,
	}
}

// Handle extracts a payload from text and evaluates it. With commit set, an
// accepted request is also committed: validation-path requests are validated
// again under the write lock, availability answers are committed as given.
func (s *RequestService) Handle(ctx context.Context, text string, commit bool) (*RequestOutcome, error) {
	if s.extractor == nil {
		return nil, errors.WithHint(errors.New("no extractor configured"),
			"set llm.api_key or OLLAMA_API_URL to enable free-text requests")
	}
	payload, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, errors.Wrap(err, "extracting request")
	}
	return s.Decide(ctx, payload, commit)
}

// Decide evaluates an already structured payload.
func (s *RequestService) Decide(ctx context.Context, payload entities.Payload, commit bool) (*RequestOutcome, error) {
	decision, err := s.scheduler.Evaluate(ctx, payload)
	if err != nil {
		return nil, err
	}

	outcome := &RequestOutcome{Payload: payload, Decision: decision}
	if !commit || !decision.Valid {
		return outcome, nil
	}

	var result entities.CommitResult
	if decision.Path == entities.PathAvailability {
		result = s.scheduler.Commit(ctx, payload)
	} else {
		_, result = s.scheduler.ValidateAndCommit(ctx, payload)
	}
	outcome.Commit = &result

	s.logger.Debug("request handled",
		zap.String("path", string(decision.Path)),
		zap.Bool("committed", result.Success),
	)
	return outcome, nil
}
