package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/theatre-core/internal/application/handlers"
	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/services"
)

func init() {
	color.NoColor = true
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	err := printJSON(&buf, &entities.ValidationResult{IsValid: true, Reason: "ok"})
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, true, parsed["is_valid"])
	assert.Equal(t, "ok", parsed["reason"])
}

func TestFormatResults(t *testing.T) {
	tests := []struct {
		name   string
		format func(*bytes.Buffer)
		want   string
	}{
		{
			name: "available",
			format: func(b *bytes.Buffer) {
				formatAvailability(b, &entities.AvailabilityResult{Available: true, Reason: services.ReasonTheatreReady})
			},
			want: "AVAILABLE: Theatre is clean and ready for surgery.\n",
		},
		{
			name: "invalid",
			format: func(b *bytes.Buffer) {
				formatValidation(b, &entities.ValidationResult{Reason: services.ReasonNotPresent})
			},
			want: "INVALID: The assigned surgeon is not currently present in the hospital.\n",
		},
		{
			name: "committed",
			format: func(b *bytes.Buffer) {
				formatCommit(b, &entities.CommitResult{Success: true, ScheduleID: "schedule_1"})
			},
			want: "COMMITTED: schedule_1\n",
		},
		{
			name: "not committed",
			format: func(b *bytes.Buffer) {
				formatCommit(b, &entities.CommitResult{Reason: "disk full"})
			},
			want: "NOT COMMITTED: disk full\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.format(&buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormatOutcome(t *testing.T) {
	outcome := &services.RequestOutcome{
		Payload: entities.Payload{
			SurgeonName: "Dr Silva",
			TheatreName: "Theatre A",
			Date:        "2025-03-10",
			StartTime:   "09:00",
			EndTime:     "11:00",
		},
		Decision: entities.Decision{Path: entities.PathValidation, Valid: true, Reason: services.ReasonApproved},
		Commit:   &entities.CommitResult{Success: true, ScheduleID: "schedule_1"},
	}

	var buf bytes.Buffer
	formatOutcome(&buf, outcome)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Request: surgeon=Dr Silva theatre=Theatre A slot=2025-03-10 09:00-11:00", lines[0])
	assert.Equal(t, "VALID: "+services.ReasonApproved, lines[1])
	assert.Equal(t, "COMMITTED: schedule_1", lines[2])
}

func TestFormatOutcome_Availability(t *testing.T) {
	outcome := &services.RequestOutcome{
		Payload:  entities.Payload{TheatreName: "Theatre B"},
		Decision: entities.Decision{Path: entities.PathAvailability, Reason: services.ReasonTheatreMaintenance},
	}

	var buf bytes.Buffer
	formatOutcome(&buf, outcome)
	assert.Equal(t, "Request: theatre=Theatre B\nUNAVAILABLE: Theatre is under maintenance.\n", buf.String())
}

func TestFormatBatch(t *testing.T) {
	result := &handlers.BatchResult{
		Items: []handlers.BatchItem{
			{Line: 2, Outcome: &services.RequestOutcome{
				Decision: entities.Decision{Path: entities.PathValidation, Valid: true, Reason: services.ReasonApproved},
				Commit:   &entities.CommitResult{Success: true, ScheduleID: "schedule_1"},
			}},
			{Line: 3, Error: "empty request"},
		},
		Accepted:  1,
		Committed: 1,
		Failed:    1,
	}

	var buf bytes.Buffer
	formatBatch(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "line 2: [validation] ACCEPTED: "+services.ReasonApproved)
	assert.Contains(t, out, "  COMMITTED: schedule_1")
	assert.Contains(t, out, "line 3: ERROR: empty request")
	assert.Contains(t, out, "1 accepted, 0 rejected, 1 committed, 1 failed")
}

func TestFormatCatalog(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	result := &handlers.CatalogResult{
		Kind: entities.KindTimeSlot,
		Entities: []entities.Entity{
			&entities.TimeSlot{Name: "Mon 0900", Start: start, End: start.Add(2 * time.Hour), ConflictsWith: []string{"Mon 0930"}},
		},
		Total: 1,
	}

	var buf bytes.Buffer
	require.NoError(t, formatCatalog(&buf, result))
	out := buf.String()

	assert.Contains(t, out, "Mon 0900  2025-03-10 09:00 - 11:00  conflicts: Mon 0930")
	assert.Contains(t, out, "1 timeslot(s)")
}

func TestFormatCatalog_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatCatalog(&buf, &handlers.CatalogResult{Kind: entities.KindSchedule}))
	assert.Equal(t, "No schedule entities found.\n", buf.String())
}

func TestEntityRow(t *testing.T) {
	tests := []struct {
		name   string
		entity entities.Entity
		want   string
	}{
		{name: "present surgeon", entity: &entities.Surgeon{Name: "Dr Silva", IsPresent: true}, want: "Dr Silva\tpresent"},
		{name: "absent surgeon", entity: &entities.Surgeon{Name: "Dr Lee"}, want: "Dr Lee\tabsent"},
		{name: "ready theatre", entity: &entities.Theatre{Name: "Theatre A", IsClean: true}, want: "Theatre A\tready"},
		{name: "dirty theatre", entity: &entities.Theatre{Name: "Theatre C"}, want: "Theatre C\tnot clean"},
		{
			name:   "theatre in maintenance",
			entity: &entities.Theatre{Name: "Theatre B", IsClean: true, IsUnderMaintenance: true},
			want:   "Theatre B\tmaintenance",
		},
		{
			name:   "operation",
			entity: &entities.Operation{Name: "Appendectomy", PriorityLevel: entities.PriorityElective, DurationMinutes: 60},
			want:   "Appendectomy\telective\t60 min",
		},
		{name: "patient", entity: &entities.Patient{Name: "John Doe"}, want: "John Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entityRow(tt.entity))
		})
	}
}

func TestFormatSchedules(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatSchedules(&buf, nil))
	assert.Equal(t, "No schedules found.\n", buf.String())

	buf.Reset()
	require.NoError(t, formatSchedules(&buf, []*entities.Schedule{{
		ID: "schedule_1", Surgeon: "Dr Silva", Patient: "John Doe",
		Operation: "Appendectomy", Theatre: "Theatre A", TimeSlot: "Mon 0900",
	}}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "schedule_1")
	assert.Contains(t, lines[1], "Mon 0900")
}

func TestFormatHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatHistory(&buf, &handlers.HistoryResult{}))
	assert.Equal(t, "No decisions recorded.\n", buf.String())

	buf.Reset()
	require.NoError(t, formatHistory(&buf, &handlers.HistoryResult{
		Decisions: []entities.Decision{
			{Path: entities.PathCommit, Valid: true, Reason: "Schedule schedule_1 created.", ScheduleID: "schedule_1", CreatedAt: time.Now()},
			{Path: entities.PathAvailability, Reason: services.ReasonTheatreNotClean, CreatedAt: time.Now()},
		},
		Total: 5,
	}))
	out := buf.String()

	assert.Contains(t, out, "Showing 2 of 5 decisions")
	assert.Contains(t, out, "Schedule schedule_1 created.\n")
	assert.NotContains(t, out, "(schedule_1)")
	assert.Contains(t, out, "refused")
}

func TestPayloadFlags(t *testing.T) {
	flags := payloadFlags{surgeon: " Dr Silva ", theatre: "Theatre A", date: "2025-03-10", start: "09:00"}

	p := flags.payload()
	assert.Equal(t, "Dr Silva", p.SurgeonName)
	assert.Equal(t, "Theatre A", p.TheatreName)
	assert.True(t, p.HasTimeSlot())
	assert.Empty(t, p.EndTime)
}
