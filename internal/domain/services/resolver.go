package services

import (
	"strings"
	"time"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/ports"
)

// Date and time layouts accepted in payloads.
var (
	dateLayouts = []string{"2006-01-02", "02/01/2006", "January 2, 2006", "Jan 2, 2006"}
	timeLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3PM", "3 PM"}
)

// wallClock is the comparison key for slot times. Payload times carry no zone,
// so slots are matched on their own wall clock.
const wallClock = "2006-01-02 15:04:05"

// Resolver looks up entities by name in a knowledge reader.
type Resolver struct {
	reader ports.KnowledgeReader
}

// NewResolver creates a resolver over reader.
func NewResolver(reader ports.KnowledgeReader) *Resolver {
	return &Resolver{reader: reader}
}

// Resolve returns the first entity of kind whose name matches, ignoring case
// and whitespace differences. An empty name resolves to nothing without a lookup.
func (r *Resolver) Resolve(kind entities.Kind, name string) (entities.Entity, bool) {
	key := entities.NormalizeName(name)
	if key == "" {
		return nil, false
	}
	for e := range r.reader.FindByType(kind) {
		if entities.NormalizeName(e.EntityName()) == key {
			return e, true
		}
	}
	return nil, false
}

// Surgeon resolves a surgeon by name.
func (r *Resolver) Surgeon(name string) (*entities.Surgeon, bool) {
	return resolveAs[*entities.Surgeon](r, entities.KindSurgeon, name)
}

// Patient resolves a patient by name.
func (r *Resolver) Patient(name string) (*entities.Patient, bool) {
	return resolveAs[*entities.Patient](r, entities.KindPatient, name)
}

// Operation resolves an operation by name.
func (r *Resolver) Operation(name string) (*entities.Operation, bool) {
	return resolveAs[*entities.Operation](r, entities.KindOperation, name)
}

// Theatre resolves a theatre by name.
func (r *Resolver) Theatre(name string) (*entities.Theatre, bool) {
	return resolveAs[*entities.Theatre](r, entities.KindTheatre, name)
}

func resolveAs[T entities.Entity](r *Resolver, kind entities.Kind, name string) (T, bool) {
	var zero T
	e, ok := r.Resolve(kind, name)
	if !ok {
		return zero, false
	}
	typed, ok := e.(T)
	return typed, ok
}

// TimeSlot resolves the slot starting at date+start (and ending at date+end
// when end is given). When the values do not parse or match, a slot named
// "<date> <start>-<end>" (or "<date> <start>") is tried instead.
func (r *Resolver) TimeSlot(date, start, end string) (*entities.TimeSlot, bool) {
	date, start, end = strings.TrimSpace(date), strings.TrimSpace(start), strings.TrimSpace(end)
	if date == "" || start == "" {
		return nil, false
	}

	if from, ok := combine(date, start); ok {
		to, hasEnd := "", end != ""
		if hasEnd {
			t, ok := combine(date, end)
			if !ok {
				return r.timeSlotByName(date, start, end)
			}
			to = t
		}
		for e := range r.reader.FindByType(entities.KindTimeSlot) {
			slot, ok := e.(*entities.TimeSlot)
			if !ok || slot.Start.Format(wallClock) != from {
				continue
			}
			if hasEnd && slot.End.Format(wallClock) != to {
				continue
			}
			return slot, true
		}
	}

	return r.timeSlotByName(date, start, end)
}

func (r *Resolver) timeSlotByName(date, start, end string) (*entities.TimeSlot, bool) {
	name := date + " " + start
	if end != "" {
		name += "-" + end
	}
	return resolveAs[*entities.TimeSlot](r, entities.KindTimeSlot, name)
}

// SlotLabel renders a requested slot for reasons and logs.
func SlotLabel(p entities.Payload) string {
	label := strings.TrimSpace(p.Date + " " + p.StartTime)
	if p.EndTime != "" {
		label += "-" + p.EndTime
	}
	return label
}

// combine parses a date and a time of day into the wall-clock key.
func combine(date, clock string) (string, bool) {
	d, ok := parseFirst(dateLayouts, date)
	if !ok {
		return "", false
	}
	t, ok := parseFirst(timeLayouts, strings.ToUpper(clock))
	if !ok {
		return "", false
	}
	at := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	return at.Format(wallClock), true
}

func parseFirst(layouts []string, value string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
