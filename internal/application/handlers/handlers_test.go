package handlers

import (
	"time"

	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/mocks"
	"github.com/ersonp/theatre-core/internal/domain/services"
)

func testStore() *mocks.KnowledgeStore {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return mocks.NewKnowledgeStore(
		&entities.Surgeon{Name: "Dr Silva", IsPresent: true},
		&entities.Surgeon{Name: "Dr Lee"},
		&entities.Patient{Name: "John Doe"},
		&entities.Operation{Name: "Appendectomy"},
		&entities.Theatre{Name: "Theatre A", IsClean: true},
		&entities.Theatre{Name: "Theatre B", IsClean: true, IsUnderMaintenance: true},
		&entities.TimeSlot{Name: "Mon 0900", Start: monday.Add(9 * time.Hour), End: monday.Add(11 * time.Hour)},
	)
}

func validPayload() entities.Payload {
	return entities.Payload{
		SurgeonName:   "Dr Silva",
		PatientName:   "John Doe",
		OperationType: "Appendectomy",
		TheatreName:   "Theatre A",
		Date:          "2025-03-10",
		StartTime:     "09:00",
	}
}

func newTestServices(extractor *mocks.Extractor) (*mocks.KnowledgeStore, *mocks.Journal, *services.Scheduler, *services.RequestService) {
	store := testStore()
	journal := mocks.NewJournal()
	scheduler := services.NewScheduler(store, services.WithJournal(journal))
	var requests *services.RequestService
	if extractor != nil {
		requests = services.NewRequestService(extractor, scheduler)
	} else {
		requests = services.NewRequestService(nil, scheduler)
	}
	return store, journal, scheduler, requests
}
