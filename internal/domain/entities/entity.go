// Package entities contains core domain data structures.
package entities

import (
	"strings"
	"time"
)

// Kind identifies the type of a record held in the knowledge store.
type Kind string

const (
	KindSurgeon   Kind = "surgeon"
	KindPatient   Kind = "patient"
	KindOperation Kind = "operation"
	KindTheatre   Kind = "theatre"
	KindTimeSlot  Kind = "timeslot"
	KindSchedule  Kind = "schedule"
)

// Kinds lists every record kind in a stable order.
var Kinds = []Kind{KindSurgeon, KindPatient, KindOperation, KindTheatre, KindTimeSlot, KindSchedule}

// ParseKind converts user input to a Kind. It accepts any case and the
// "time_slot" / "time-slot" spellings.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
	s = strings.TrimSuffix(s, "s")
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Entity is a typed, named record in the knowledge store.
type Entity interface {
	EntityName() string
	Kind() Kind
}

// NameSeparator replaces whitespace runs in normalized names.
const NameSeparator = "_"

// NormalizeName converts a name to its matching key: lowercase, trimmed, with
// internal whitespace collapsed to NameSeparator. "  Dr Silva " and "dr_silva"
// normalize to the same key.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), NameSeparator)
}

// Surgeon is a person who performs operations.
type Surgeon struct {
	Name          string   `yaml:"name" json:"name"`
	IsPresent     bool     `yaml:"is_present" json:"is_present"`
	MaxDailyHours int      `yaml:"max_daily_hours,omitempty" json:"max_daily_hours,omitempty"`
	AvailableAt   []string `yaml:"available_at,omitempty" json:"available_at,omitempty"`
}

func (s *Surgeon) EntityName() string { return s.Name }
func (s *Surgeon) Kind() Kind         { return KindSurgeon }

// Patient is a person scheduled to undergo an operation.
type Patient struct {
	Name string `yaml:"name" json:"name"`
}

func (p *Patient) EntityName() string { return p.Name }
func (p *Patient) Kind() Kind         { return KindPatient }

// Priority is the urgency class of an operation.
type Priority string

const (
	PriorityEmergency Priority = "emergency"
	PriorityUrgent    Priority = "urgent"
	PriorityElective  Priority = "elective"
)

// Operation is a surgical procedure type.
type Operation struct {
	Name            string   `yaml:"name" json:"name"`
	DurationMinutes int      `yaml:"duration_minutes,omitempty" json:"duration_minutes,omitempty"`
	PriorityLevel   Priority `yaml:"priority_level,omitempty" json:"priority_level,omitempty"`
}

func (o *Operation) EntityName() string { return o.Name }
func (o *Operation) Kind() Kind         { return KindOperation }

// Theatre is an operating theatre.
type Theatre struct {
	Name               string   `yaml:"name" json:"name"`
	IsClean            bool     `yaml:"is_clean" json:"is_clean"`
	IsUnderMaintenance bool     `yaml:"is_under_maintenance" json:"is_under_maintenance"`
	AvailableAt        []string `yaml:"available_at,omitempty" json:"available_at,omitempty"`
}

func (t *Theatre) EntityName() string { return t.Name }
func (t *Theatre) Kind() Kind         { return KindTheatre }

// Ready reports whether the theatre can host an operation.
func (t *Theatre) Ready() bool {
	return t.IsClean && !t.IsUnderMaintenance
}

// TimeSlot is a bookable period. ConflictsWith holds the names of slots that
// overlap this one; the relation is symmetric.
type TimeSlot struct {
	Name          string    `yaml:"name" json:"name"`
	Start         time.Time `yaml:"start" json:"start"`
	End           time.Time `yaml:"end" json:"end"`
	ConflictsWith []string  `yaml:"conflicts_with,omitempty" json:"conflicts_with,omitempty"`
}

func (ts *TimeSlot) EntityName() string { return ts.Name }
func (ts *TimeSlot) Kind() Kind         { return KindTimeSlot }

// Conflicts reports whether the slot overlaps the named slot. A slot always
// overlaps itself.
func (ts *TimeSlot) Conflicts(other string) bool {
	key := NormalizeName(other)
	if NormalizeName(ts.Name) == key {
		return true
	}
	for _, name := range ts.ConflictsWith {
		if NormalizeName(name) == key {
			return true
		}
	}
	return false
}

// Schedule links exactly one of each participant of an operation. References
// hold the participants' names as stored.
type Schedule struct {
	ID        string    `yaml:"id" json:"id"`
	Patient   string    `yaml:"patient" json:"patient"`
	Surgeon   string    `yaml:"surgeon" json:"surgeon"`
	Operation string    `yaml:"operation" json:"operation"`
	Theatre   string    `yaml:"theatre" json:"theatre"`
	TimeSlot  string    `yaml:"time_slot" json:"time_slot"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
}

func (s *Schedule) EntityName() string { return s.ID }
func (s *Schedule) Kind() Kind         { return KindSchedule }

// References returns the schedule's participant names keyed by kind.
func (s *Schedule) References() map[Kind]string {
	return map[Kind]string{
		KindPatient:   s.Patient,
		KindSurgeon:   s.Surgeon,
		KindOperation: s.Operation,
		KindTheatre:   s.Theatre,
		KindTimeSlot:  s.TimeSlot,
	}
}
