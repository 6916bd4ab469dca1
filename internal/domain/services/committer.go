package services

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
)

// scheduleIDAttempts bounds retries when a generated ID is already taken.
const scheduleIDAttempts = 5

// Committer creates schedules in the knowledge store. It does not evaluate
// rules; callers validate first or use Scheduler.ValidateAndCommit.
type Committer struct {
	store  ports.KnowledgeStore
	opts   options
	logger *zap.Logger
}

// NewCommitter creates a committer over store.
func NewCommitter(store ports.KnowledgeStore, opts ...Option) *Committer {
	o := newOptions(opts)
	return &Committer{store: store, opts: o, logger: o.logger}
}

// Commit re-resolves the payload's participants, links them in a new schedule
// and persists the store. Failures are reported in the result; the store is
// left untouched unless the commit succeeds.
func (c *Committer) Commit(ctx context.Context, p entities.Payload) entities.CommitResult {
	var result entities.CommitResult
	err := c.store.Update(ctx, func(w ports.KnowledgeWriter) error {
		result = c.stage(w, p)
		return nil
	})
	if err != nil {
		c.logger.Error("schedule commit failed", zap.Error(err))
		return entities.CommitResult{Reason: err.Error()}
	}
	return result
}

// stage builds the schedule and adds it to w. Nothing is staged on failure.
func (c *Committer) stage(w ports.KnowledgeWriter, p entities.Payload) entities.CommitResult {
	if p.ExtractionFailed() {
		return entities.CommitResult{Reason: ExtractionFailedReason(p)}
	}

	schedule, err := c.link(NewResolver(w), p)
	if err != nil {
		c.logger.Info("schedule not created", zap.Error(err))
		return entities.CommitResult{Reason: "Cannot create schedule: " + err.Error()}
	}

	for range scheduleIDAttempts {
		schedule.ID = c.newID()
		err = w.AddSchedule(schedule)
		if !errors.Is(err, entities.ErrConflict) {
			break
		}
		c.logger.Debug("schedule id taken, retrying", zap.String("schedule_id", schedule.ID))
	}
	if err != nil {
		return entities.CommitResult{Reason: err.Error()}
	}

	c.logger.Info("schedule staged",
		zap.String("schedule_id", schedule.ID),
		zap.String("surgeon", schedule.Surgeon),
		zap.String("theatre", schedule.Theatre),
		zap.String("time_slot", schedule.TimeSlot),
	)
	return entities.CommitResult{
		Success:    true,
		Reason:     fmt.Sprintf("Schedule %s created.", schedule.ID),
		ScheduleID: schedule.ID,
	}
}

// link resolves all five participants, naming the first missing one.
func (c *Committer) link(r *Resolver, p entities.Payload) (*entities.Schedule, error) {
	surgeon, ok := r.Surgeon(p.SurgeonName)
	if !ok {
		return nil, entities.NotFoundError(entities.KindSurgeon, p.SurgeonName)
	}
	theatre, ok := r.Theatre(p.TheatreName)
	if !ok {
		return nil, entities.NotFoundError(entities.KindTheatre, p.TheatreName)
	}
	patient, ok := r.Patient(p.PatientName)
	if !ok {
		return nil, entities.NotFoundError(entities.KindPatient, p.PatientName)
	}
	operation, ok := r.Operation(p.OperationType)
	if !ok {
		return nil, entities.NotFoundError(entities.KindOperation, p.OperationType)
	}
	slot, ok := r.TimeSlot(p.Date, p.StartTime, p.EndTime)
	if !ok {
		return nil, entities.NotFoundError(entities.KindTimeSlot, SlotLabel(p))
	}

	return &entities.Schedule{
		Patient:   patient.Name,
		Surgeon:   surgeon.Name,
		Operation: operation.Name,
		Theatre:   theatre.Name,
		TimeSlot:  slot.Name,
		CreatedAt: c.opts.now().UTC(),
	}, nil
}

// newID derives a schedule ID from the current second plus a random suffix.
func (c *Committer) newID() string {
	return fmt.Sprintf("schedule_%s_%s", c.opts.now().UTC().Format("20060102150405"), c.opts.suffix())
}
