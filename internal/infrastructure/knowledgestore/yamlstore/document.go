package yamlstore

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ersonp/theatre-core/internal/domain/entities"
)

// document is the persisted form of the knowledge store. Entity order is
// preserved across load and save.
type document struct {
	Surgeons   []*entities.Surgeon   `yaml:"surgeons"`
	Patients   []*entities.Patient   `yaml:"patients"`
	Operations []*entities.Operation `yaml:"operations"`
	Theatres   []*entities.Theatre   `yaml:"theatres"`
	TimeSlots  []*entities.TimeSlot  `yaml:"timeslots"`
	Schedules  []*entities.Schedule  `yaml:"schedules"`
}

// seq returns the entities of one kind; empty for unknown kinds.
func (d *document) seq(kind entities.Kind) iter.Seq[entities.Entity] {
	switch kind {
	case entities.KindSurgeon:
		return seqOf(d.Surgeons)
	case entities.KindPatient:
		return seqOf(d.Patients)
	case entities.KindOperation:
		return seqOf(d.Operations)
	case entities.KindTheatre:
		return seqOf(d.Theatres)
	case entities.KindTimeSlot:
		return seqOf(d.TimeSlots)
	case entities.KindSchedule:
		return seqOf(d.Schedules)
	default:
		return func(func(entities.Entity) bool) {}
	}
}

func seqOf[T entities.Entity](items []T) iter.Seq[entities.Entity] {
	return func(yield func(entities.Entity) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

// withSchedules returns a shallow copy of d with extra schedules appended.
// Reference entities are shared; they are never mutated after load.
func (d *document) withSchedules(extra []*entities.Schedule) *document {
	next := *d
	next.Schedules = make([]*entities.Schedule, 0, len(d.Schedules)+len(extra))
	next.Schedules = append(next.Schedules, d.Schedules...)
	next.Schedules = append(next.Schedules, extra...)
	return &next
}

// count returns the number of entities of a kind.
func (d *document) count(kind entities.Kind) int {
	n := 0
	for range d.seq(kind) {
		n++
	}
	return n
}

// names builds a set of normalized names for a kind.
func (d *document) names(kind entities.Kind) map[string]bool {
	set := make(map[string]bool)
	for e := range d.seq(kind) {
		set[entities.NormalizeName(e.EntityName())] = true
	}
	return set
}

// normalize symmetrizes conflictsWith and checks the document's invariants.
func (d *document) normalize() error {
	var problems []string

	for _, kind := range []entities.Kind{
		entities.KindSurgeon, entities.KindPatient, entities.KindOperation,
		entities.KindTheatre, entities.KindTimeSlot,
	} {
		i := 0
		for e := range d.seq(kind) {
			i++
			if entities.NormalizeName(e.EntityName()) == "" {
				problems = append(problems, fmt.Sprintf("%s #%d has no name", kind, i))
			}
		}
	}

	slots := make(map[string]*entities.TimeSlot, len(d.TimeSlots))
	for _, ts := range d.TimeSlots {
		key := entities.NormalizeName(ts.Name)
		if _, dup := slots[key]; !dup {
			slots[key] = ts
		}
		if ts.Start.IsZero() || !ts.End.After(ts.Start) {
			problems = append(problems, fmt.Sprintf("timeslot %q must end after it starts", ts.Name))
		}
	}

	for _, ts := range d.TimeSlots {
		for _, other := range ts.ConflictsWith {
			peer, ok := slots[entities.NormalizeName(other)]
			if !ok {
				problems = append(problems, fmt.Sprintf("timeslot %q conflicts with unknown timeslot %q", ts.Name, other))
				continue
			}
			if !containsName(peer.ConflictsWith, ts.Name) && peer != ts {
				peer.ConflictsWith = append(peer.ConflictsWith, ts.Name)
			}
		}
	}

	for _, s := range d.Surgeons {
		problems = append(problems, unknownSlots("surgeon", s.Name, s.AvailableAt, slots)...)
	}
	for _, t := range d.Theatres {
		problems = append(problems, unknownSlots("theatre", t.Name, t.AvailableAt, slots)...)
	}

	known := map[entities.Kind]map[string]bool{
		entities.KindPatient:   d.names(entities.KindPatient),
		entities.KindSurgeon:   d.names(entities.KindSurgeon),
		entities.KindOperation: d.names(entities.KindOperation),
		entities.KindTheatre:   d.names(entities.KindTheatre),
		entities.KindTimeSlot:  d.names(entities.KindTimeSlot),
	}
	ids := make(map[string]bool, len(d.Schedules))
	for _, s := range d.Schedules {
		if s.ID == "" {
			problems = append(problems, "schedule without id")
		} else if ids[s.ID] {
			problems = append(problems, fmt.Sprintf("duplicate schedule id %q", s.ID))
		}
		ids[s.ID] = true
		problems = append(problems, checkReferences(s, known)...)
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid knowledge store: %s", strings.Join(problems, "; "))
	}
	return nil
}

// checkReferences verifies a schedule names exactly one existing entity of each kind.
func checkReferences(s *entities.Schedule, known map[entities.Kind]map[string]bool) []string {
	var problems []string
	for _, kind := range []entities.Kind{
		entities.KindPatient, entities.KindSurgeon, entities.KindOperation,
		entities.KindTheatre, entities.KindTimeSlot,
	} {
		name := s.References()[kind]
		switch {
		case strings.TrimSpace(name) == "":
			problems = append(problems, fmt.Sprintf("schedule %q has no %s", s.ID, kind))
		case !known[kind][entities.NormalizeName(name)]:
			problems = append(problems, fmt.Sprintf("schedule %q references unknown %s %q", s.ID, kind, name))
		}
	}
	return problems
}

func unknownSlots(kind, owner string, names []string, slots map[string]*entities.TimeSlot) []string {
	var problems []string
	for _, n := range names {
		if _, ok := slots[entities.NormalizeName(n)]; !ok {
			problems = append(problems, fmt.Sprintf("%s %q available at unknown timeslot %q", kind, owner, n))
		}
	}
	return problems
}

func containsName(names []string, name string) bool {
	key := entities.NormalizeName(name)
	for _, n := range names {
		if entities.NormalizeName(n) == key {
			return true
		}
	}
	return false
}
