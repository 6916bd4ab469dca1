package entities

import "time"

// Path names the evaluation mode a payload took.
type Path string

const (
	PathAvailability Path = "availability"
	PathValidation   Path = "validation"
	PathCommit       Path = "commit"
)

// AvailabilityResult is the outcome of a theatre-only check.
type AvailabilityResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}

// ValidationResult is the outcome of full rule evaluation. Reason is always set.
type ValidationResult struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason"`
}

// CommitResult is the outcome of creating a schedule.
type CommitResult struct {
	Success    bool   `json:"success"`
	Reason     string `json:"reason,omitempty"`
	ScheduleID string `json:"schedule_id,omitempty"`
}

// Decision is a recorded outcome of any evaluation path.
type Decision struct {
	ID         string    `json:"id"`
	Path       Path      `json:"path"`
	Valid      bool      `json:"valid"`
	Reason     string    `json:"reason"`
	ScheduleID string    `json:"schedule_id,omitempty"`
	Payload    Payload   `json:"payload"`
	CreatedAt  time.Time `json:"created_at"`
}
