package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/ersonp/theatre-core/internal/domain/entities"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name    string
		payload entities.Payload
		want    entities.Path
	}{
		{name: "theatre only", payload: entities.Payload{TheatreName: "Theatre A"}, want: entities.PathAvailability},
		{name: "theatre with date", payload: entities.Payload{TheatreName: "Theatre A", Date: "2025-03-10"}, want: entities.PathAvailability},
		{name: "theatre and patient", payload: entities.Payload{TheatreName: "Theatre A", PatientName: "John Doe"}, want: entities.PathAvailability},
		{name: "surgeon named", payload: entities.Payload{TheatreName: "Theatre A", SurgeonName: "Dr Silva"}, want: entities.PathValidation},
		{name: "operation named", payload: entities.Payload{TheatreName: "Theatre A", OperationType: "Appendectomy"}, want: entities.PathValidation},
		{name: "nothing named", payload: entities.Payload{}, want: entities.PathValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.payload))
		})
	}
}

func TestIsEmergency(t *testing.T) {
	assert.True(t, IsEmergency("Emergency Laparotomy"))
	assert.True(t, IsEmergency("EMERGENCY"))
	assert.True(t, IsEmergency("post-emergency review"))
	assert.False(t, IsEmergency("Appendectomy"))
	assert.False(t, IsEmergency(""))
}

func TestEvaluator_CheckAvailability(t *testing.T) {
	e := NewEvaluator(WithLogger(zaptest.NewLogger(t)))
	store := hospital()

	tests := []struct {
		theatre   string
		available bool
		reason    string
	}{
		{theatre: "Theatre A", available: true, reason: "Theatre is clean and ready for surgery."},
		{theatre: "theatre a ", available: true, reason: ReasonTheatreReady},
		{theatre: "Theatre B", reason: "Theatre is under maintenance."},
		{theatre: "Theatre C", reason: ReasonTheatreNotClean},
		{theatre: "Theatre D", reason: ReasonTheatreMaintenance},
		{theatre: "Theatre Z", reason: "Theatre 'Theatre Z' not found."},
		{theatre: "", reason: "Theatre '' not found."},
	}

	for _, tt := range tests {
		t.Run(tt.theatre, func(t *testing.T) {
			got := e.CheckAvailability(store, tt.theatre)
			assert.Equal(t, tt.available, got.Available)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestEvaluator_Validate(t *testing.T) {
	e := NewEvaluator(WithLogger(zaptest.NewLogger(t)))
	store := hospital()

	tests := []struct {
		name   string
		mutate func(*entities.Payload)
		valid  bool
		reason string
	}{
		{
			name:   "approved",
			mutate: func(*entities.Payload) {},
			valid:  true,
			reason: ReasonApproved,
		},
		{
			name:   "unknown surgeon short-circuits",
			mutate: func(p *entities.Payload) { p.SurgeonName = "Dr Unknown"; p.TheatreName = "Theatre Z" },
			reason: "Surgeon 'Dr Unknown' is not registered in the system.",
		},
		{
			name:   "missing surgeon",
			mutate: func(p *entities.Payload) { p.SurgeonName = "" },
			reason: "Surgeon '' is not registered in the system.",
		},
		{
			name:   "unknown theatre",
			mutate: func(p *entities.Payload) { p.TheatreName = "Theatre Z" },
			reason: "Theatre 'Theatre Z' was not found in the hospital.",
		},
		{
			name:   "maintenance beats absent surgeon",
			mutate: func(p *entities.Payload) { p.TheatreName = "Theatre B"; p.SurgeonName = "Dr Lee" },
			reason: ReasonMaintenance,
		},
		{
			name:   "maintenance beats dirty theatre",
			mutate: func(p *entities.Payload) { p.TheatreName = "Theatre D" },
			reason: ReasonMaintenance,
		},
		{
			name:   "dirty theatre",
			mutate: func(p *entities.Payload) { p.TheatreName = "Theatre C" },
			reason: ReasonNotClean,
		},
		{
			name:   "surgeon not present",
			mutate: func(p *entities.Payload) { p.SurgeonName = "Dr Lee" },
			reason: ReasonNotPresent,
		},
		{
			name: "theatre conflict",
			mutate: func(p *entities.Payload) {
				p.SurgeonName = "Dr Okafor"
				p.StartTime, p.EndTime = "09:30", "10:30"
			},
			reason: "Time slot 'Mon 0930' conflicts with schedule 'schedule_20250301120000_aaaaaaaa' in the same theatre.",
		},
		{
			name: "surgeon conflict",
			mutate: func(p *entities.Payload) {
				p.TheatreName = "Theatre E"
				p.StartTime, p.EndTime = "09:30", ""
			},
			reason: "Time slot 'Mon 0930' conflicts with schedule 'schedule_20250301120000_aaaaaaaa' for the same surgeon.",
		},
		{
			name: "same slot already booked",
			mutate: func(p *entities.Payload) {
				p.StartTime, p.EndTime = "09:00", "11:00"
			},
			reason: "Time slot 'Mon 0900' conflicts with schedule 'schedule_20250301120000_aaaaaaaa' in the same theatre.",
		},
		{
			name: "overlap elsewhere is fine",
			mutate: func(p *entities.Payload) {
				p.SurgeonName = "Dr Okafor"
				p.TheatreName = "Theatre E"
				p.StartTime, p.EndTime = "09:30", "10:30"
			},
			valid:  true,
			reason: ReasonApproved,
		},
		{
			name: "emergency overrides conflict",
			mutate: func(p *entities.Payload) {
				p.OperationType = "EMERGENCY laparotomy"
				p.StartTime, p.EndTime = "09:00", "11:00"
			},
			valid:  true,
			reason: ReasonEmergency,
		},
		{
			name: "emergency does not override safety",
			mutate: func(p *entities.Payload) {
				p.OperationType = "Emergency Laparotomy"
				p.TheatreName = "Theatre C"
			},
			reason: ReasonNotClean,
		},
		{
			name: "emergency does not override absent surgeon",
			mutate: func(p *entities.Payload) {
				p.OperationType = "emergency"
				p.SurgeonName = "Dr Lee"
			},
			reason: ReasonNotPresent,
		},
		{
			name: "no time slot skips conflict check",
			mutate: func(p *entities.Payload) {
				p.Date, p.StartTime, p.EndTime = "", "", ""
			},
			valid:  true,
			reason: ReasonApproved,
		},
		{
			name: "unknown time slot",
			mutate: func(p *entities.Payload) {
				p.StartTime, p.EndTime = "07:00", ""
			},
			reason: "Time slot '2025-03-10 07:00' was not found.",
		},
		{
			name: "extraction failure refused",
			mutate: func(p *entities.Payload) {
				*p = entities.Payload{Error: "Invalid JSON returned by LLM", RawResponse: "hello"}
			},
			reason: "Extraction failed: Invalid JSON returned by LLM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := request()
			tt.mutate(&p)
			got := e.Validate(store, p)
			assert.Equal(t, tt.valid, got.IsValid)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}
