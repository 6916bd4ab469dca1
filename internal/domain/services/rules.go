package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
)

// Availability reasons.
const (
	ReasonTheatreReady       = "Theatre is clean and ready for surgery."
	ReasonTheatreMaintenance = "Theatre is under maintenance."
	ReasonTheatreNotClean    = "Theatre is not clean."
)

// Validation reasons.
const (
	ReasonMaintenance = "The selected theatre is currently under maintenance."
	ReasonNotClean    = "The selected theatre is not cleaned and ready for surgery."
	ReasonNotPresent  = "The assigned surgeon is not currently present in the hospital."
	ReasonEmergency   = "Emergency surgery detected. The schedule is allowed as all safety conditions are satisfied."
	ReasonApproved    = "The theatre and surgeon are available for the requested schedule."
)

// emergencyToken marks operations that bypass conflict detection.
const emergencyToken = "emergency"

// Route picks the evaluation path for a payload: a theatre named without a
// surgeon or operation is an availability question, anything else is a full
// validation.
func Route(p entities.Payload) entities.Path {
	if p.TheatreName != "" && p.SurgeonName == "" && p.OperationType == "" {
		return entities.PathAvailability
	}
	return entities.PathValidation
}

// ExtractionFailedReason explains why an extraction failure payload was refused.
func ExtractionFailedReason(p entities.Payload) string {
	return "Extraction failed: " + p.Error
}

// IsEmergency reports whether an operation type requests emergency priority.
func IsEmergency(operationType string) bool {
	return strings.Contains(strings.ToLower(operationType), emergencyToken)
}

// Evaluator applies the hospital's safety and availability rules.
type Evaluator struct {
	logger *zap.Logger
}

// NewEvaluator creates a rule evaluator.
func NewEvaluator(opts ...Option) *Evaluator {
	o := newOptions(opts)
	return &Evaluator{logger: o.logger}
}

// CheckAvailability reports whether a theatre can take a surgery: it must
// exist, not be under maintenance, and be clean, checked in that order.
func (e *Evaluator) CheckAvailability(r ports.KnowledgeReader, theatreName string) entities.AvailabilityResult {
	theatre, ok := NewResolver(r).Theatre(theatreName)
	if !ok {
		return entities.AvailabilityResult{Reason: fmt.Sprintf("Theatre '%s' not found.", theatreName)}
	}
	if theatre.IsUnderMaintenance {
		return entities.AvailabilityResult{Reason: ReasonTheatreMaintenance}
	}
	if !theatre.IsClean {
		return entities.AvailabilityResult{Reason: ReasonTheatreNotClean}
	}
	return entities.AvailabilityResult{Available: true, Reason: ReasonTheatreReady}
}

// Validate runs the full rule set, stopping at the first violation.
func (e *Evaluator) Validate(r ports.KnowledgeReader, p entities.Payload) entities.ValidationResult {
	result := e.validate(r, p)
	e.logger.Debug("payload validated",
		zap.String("surgeon", p.SurgeonName),
		zap.String("theatre", p.TheatreName),
		zap.Bool("valid", result.IsValid),
		zap.String("reason", result.Reason),
	)
	return result
}

func (e *Evaluator) validate(r ports.KnowledgeReader, p entities.Payload) entities.ValidationResult {
	if p.ExtractionFailed() {
		return invalid(ExtractionFailedReason(p))
	}

	resolver := NewResolver(r)
	surgeon, ok := resolver.Surgeon(p.SurgeonName)
	if !ok {
		return invalid(fmt.Sprintf("Surgeon '%s' is not registered in the system.", p.SurgeonName))
	}
	theatre, ok := resolver.Theatre(p.TheatreName)
	if !ok {
		return invalid(fmt.Sprintf("Theatre '%s' was not found in the hospital.", p.TheatreName))
	}

	if theatre.IsUnderMaintenance {
		return invalid(ReasonMaintenance)
	}
	if !theatre.IsClean {
		return invalid(ReasonNotClean)
	}
	if !surgeon.IsPresent {
		return invalid(ReasonNotPresent)
	}

	if IsEmergency(p.OperationType) {
		return entities.ValidationResult{IsValid: true, Reason: ReasonEmergency}
	}

	if p.HasTimeSlot() {
		slot, ok := resolver.TimeSlot(p.Date, p.StartTime, p.EndTime)
		if !ok {
			return invalid(fmt.Sprintf("Time slot '%s' was not found.", SlotLabel(p)))
		}
		if reason, conflict := findConflict(r, slot, surgeon, theatre); conflict {
			return invalid(reason)
		}
	}

	return entities.ValidationResult{IsValid: true, Reason: ReasonApproved}
}

// findConflict looks for an existing schedule in the same theatre or with the
// same surgeon whose slot overlaps slot.
func findConflict(r ports.KnowledgeReader, slot *entities.TimeSlot, surgeon *entities.Surgeon, theatre *entities.Theatre) (string, bool) {
	surgeonKey := entities.NormalizeName(surgeon.Name)
	theatreKey := entities.NormalizeName(theatre.Name)

	for e := range r.FindByType(entities.KindSchedule) {
		s, ok := e.(*entities.Schedule)
		if !ok || !slot.Conflicts(s.TimeSlot) {
			continue
		}
		switch {
		case entities.NormalizeName(s.Theatre) == theatreKey:
			return fmt.Sprintf("Time slot '%s' conflicts with schedule '%s' in the same theatre.", slot.Name, s.ID), true
		case entities.NormalizeName(s.Surgeon) == surgeonKey:
			return fmt.Sprintf("Time slot '%s' conflicts with schedule '%s' for the same surgeon.", slot.Name, s.ID), true
		}
	}
	return "", false
}

func invalid(reason string) entities.ValidationResult {
	return entities.ValidationResult{IsValid: false, Reason: reason}
}
