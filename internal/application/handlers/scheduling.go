package handlers

import (
	"context"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/services"
)

// SchedulingHandler handles availability, validation and scheduling requests.
type SchedulingHandler struct {
	scheduler *services.Scheduler
	requests  *services.RequestService
}

// NewSchedulingHandler creates a new scheduling handler.
func NewSchedulingHandler(scheduler *services.Scheduler, requests *services.RequestService) *SchedulingHandler {
	return &SchedulingHandler{
		scheduler: scheduler,
		requests:  requests,
	}
}

// ScheduleResult contains the outcome of a validate-and-commit request.
type ScheduleResult struct {
	Validation entities.ValidationResult `json:"validation"`
	Commit     entities.CommitResult     `json:"commit"`
}

// HandleCheck answers whether a theatre is available.
func (h *SchedulingHandler) HandleCheck(ctx context.Context, theatreName string) (*entities.AvailabilityResult, error) {
	result, err := h.scheduler.CheckAvailability(ctx, theatreName)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// HandleValidate validates a payload without committing it.
func (h *SchedulingHandler) HandleValidate(ctx context.Context, p entities.Payload) (*entities.ValidationResult, error) {
	result, err := h.scheduler.Validate(ctx, p)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// HandleSchedule validates a payload and commits it when valid.
func (h *SchedulingHandler) HandleSchedule(ctx context.Context, p entities.Payload) (*ScheduleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	validation, commit := h.scheduler.ValidateAndCommit(ctx, p)
	return &ScheduleResult{Validation: validation, Commit: commit}, nil
}

// HandleAsk processes a free-text request, committing it when confirm is set.
func (h *SchedulingHandler) HandleAsk(ctx context.Context, text string, confirm bool) (*services.RequestOutcome, error) {
	return h.requests.Handle(ctx, text, confirm)
}
