package services

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ersonp/theatre-core/internal/domain/entities"
)

var commitTime = time.Date(2025, 3, 9, 18, 45, 7, 0, time.UTC)

func fixedClock() time.Time { return commitTime }

func TestCommitter_Commit(t *testing.T) {
	store := hospital()
	c := NewCommitter(store,
		WithLogger(zaptest.NewLogger(t)),
		WithClock(fixedClock),
		WithIDSuffix(func() string { return "0badf00d" }),
	)

	result := c.Commit(context.Background(), request())

	require.True(t, result.Success, result.Reason)
	assert.Equal(t, "schedule_20250309184507_0badf00d", result.ScheduleID)
	assert.Equal(t, "Schedule schedule_20250309184507_0badf00d created.", result.Reason)
	assert.Equal(t, 1, store.Saves)

	schedules := store.Schedules()
	require.Len(t, schedules, 2)
	got := schedules[1]
	assert.Equal(t, &entities.Schedule{
		ID:        "schedule_20250309184507_0badf00d",
		Patient:   "Jane Roe",
		Surgeon:   "Dr Silva",
		Operation: "Appendectomy",
		Theatre:   "Theatre A",
		TimeSlot:  "Mon 1400",
		CreatedAt: commitTime,
	}, got)
}

func TestCommitter_LinksStoredNames(t *testing.T) {
	store := hospital()
	c := NewCommitter(store, WithClock(fixedClock))

	p := request()
	p.SurgeonName = "  dr   silva"
	p.TheatreName = "THEATRE A"
	p.PatientName = "jane_roe"

	result := c.Commit(context.Background(), p)
	require.True(t, result.Success, result.Reason)

	s := store.Schedules()[1]
	assert.Equal(t, "Dr Silva", s.Surgeon)
	assert.Equal(t, "Theatre A", s.Theatre)
	assert.Equal(t, "Jane Roe", s.Patient)
}

func TestCommitter_MissingEntityNeverMutates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entities.Payload)
		reason string
	}{
		{
			name:   "surgeon",
			mutate: func(p *entities.Payload) { p.SurgeonName = "Dr Unknown" },
			reason: `Cannot create schedule: surgeon "Dr Unknown" not found`,
		},
		{
			name:   "theatre",
			mutate: func(p *entities.Payload) { p.TheatreName = "" },
			reason: `Cannot create schedule: theatre "" not found`,
		},
		{
			name:   "patient",
			mutate: func(p *entities.Payload) { p.PatientName = "Nobody" },
			reason: `Cannot create schedule: patient "Nobody" not found`,
		},
		{
			name:   "operation",
			mutate: func(p *entities.Payload) { p.OperationType = "Heart transplant" },
			reason: `Cannot create schedule: operation "Heart transplant" not found`,
		},
		{
			name:   "time slot",
			mutate: func(p *entities.Payload) { p.StartTime, p.EndTime = "07:00", "" },
			reason: `Cannot create schedule: timeslot "2025-03-10 07:00" not found`,
		},
		{
			name: "extraction failure",
			mutate: func(p *entities.Payload) {
				*p = entities.Payload{Error: "Failed to extract scheduling data", Details: "timeout"}
			},
			reason: "Extraction failed: Failed to extract scheduling data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := hospital()
			c := NewCommitter(store)

			p := request()
			tt.mutate(&p)
			result := c.Commit(context.Background(), p)

			assert.False(t, result.Success)
			assert.Equal(t, tt.reason, result.Reason)
			assert.Empty(t, result.ScheduleID)
			assert.Zero(t, store.Saves)
			assert.Len(t, store.Schedules(), 1)
		})
	}
}

func TestCommitter_PersistenceFailure(t *testing.T) {
	store := hospital()
	store.SaveErr = errors.New("disk full")
	c := NewCommitter(store)

	result := c.Commit(context.Background(), request())

	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "disk full")
	assert.Len(t, store.Schedules(), 1)
}

func TestCommitter_RetriesTakenID(t *testing.T) {
	store := hospital()
	suffixes := []string{"aaaaaaaa", "aaaaaaaa", "bbbbbbbb"}
	next := 0
	c := NewCommitter(store,
		WithClock(func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }),
		WithIDSuffix(func() string {
			s := suffixes[next]
			next++
			return s
		}),
	)

	result := c.Commit(context.Background(), request())

	require.True(t, result.Success, result.Reason)
	assert.Equal(t, "schedule_20250301120000_bbbbbbbb", result.ScheduleID)
	assert.Equal(t, 3, next)
}

func TestCommitter_GivesUpOnPersistentCollision(t *testing.T) {
	store := hospital()
	c := NewCommitter(store,
		WithClock(func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }),
		WithIDSuffix(func() string { return "aaaaaaaa" }),
	)

	result := c.Commit(context.Background(), request())

	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "already exists")
	assert.Zero(t, store.Saves)
}

func TestCommitter_NewIDFormat(t *testing.T) {
	c := NewCommitter(hospital(), WithClock(fixedClock))
	assert.Regexp(t, `^schedule_20250309184507_[0-9a-f]{8}$`, c.newID())
}
