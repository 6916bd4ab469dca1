package services

import (
	"time"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/mocks"
)

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

// hospital returns a store with two surgeons, four theatres in every state,
// three slots (0900 overlaps 0930) and one booking at 0900.
func hospital() *mocks.KnowledgeStore {
	return mocks.NewKnowledgeStore(
		&entities.Surgeon{Name: "Dr Silva", IsPresent: true, MaxDailyHours: 8},
		&entities.Surgeon{Name: "Dr Lee", IsPresent: false},
		&entities.Surgeon{Name: "Dr Okafor", IsPresent: true},
		&entities.Patient{Name: "John Doe"},
		&entities.Patient{Name: "Jane Roe"},
		&entities.Operation{Name: "Appendectomy", DurationMinutes: 60, PriorityLevel: entities.PriorityElective},
		&entities.Operation{Name: "Emergency Laparotomy", DurationMinutes: 120, PriorityLevel: entities.PriorityEmergency},
		&entities.Theatre{Name: "Theatre A", IsClean: true},
		&entities.Theatre{Name: "Theatre B", IsClean: true, IsUnderMaintenance: true},
		&entities.Theatre{Name: "Theatre C", IsClean: false},
		&entities.Theatre{Name: "Theatre D", IsClean: false, IsUnderMaintenance: true},
		&entities.Theatre{Name: "Theatre E", IsClean: true},
		&entities.TimeSlot{
			Name:          "Mon 0900",
			Start:         monday.Add(9 * time.Hour),
			End:           monday.Add(11 * time.Hour),
			ConflictsWith: []string{"Mon 0930"},
		},
		&entities.TimeSlot{
			Name:          "Mon 0930",
			Start:         monday.Add(9*time.Hour + 30*time.Minute),
			End:           monday.Add(10*time.Hour + 30*time.Minute),
			ConflictsWith: []string{"Mon 0900"},
		},
		&entities.TimeSlot{
			Name:  "Mon 1400",
			Start: monday.Add(14 * time.Hour),
			End:   monday.Add(16 * time.Hour),
		},
		&entities.Schedule{
			ID:        "schedule_20250301120000_aaaaaaaa",
			Patient:   "John Doe",
			Surgeon:   "Dr Silva",
			Operation: "Appendectomy",
			Theatre:   "Theatre A",
			TimeSlot:  "Mon 0900",
			CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	)
}

// request is a complete, valid payload for the 1400 slot.
func request() entities.Payload {
	return entities.Payload{
		SurgeonName:   "Dr Silva",
		PatientName:   "Jane Roe",
		OperationType: "Appendectomy",
		TheatreName:   "Theatre A",
		Date:          "2025-03-10",
		StartTime:     "14:00",
		EndTime:       "16:00",
	}
}
