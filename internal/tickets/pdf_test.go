package tickets

import (
	"testing"
	"time"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
)

func TestETicketGenerate(t *testing.T) {
	dep := time.Date(2026, 8, 14, 22, 30, 0, 0, time.UTC)
	g := JourneyGroup{
		ScheduleID: 5,
		BookingIDs: []domain.ID{42, 43},
		SeatIDs:    []domain.ID{11, 12},
		BookedAt:   time.Date(2026, 8, 14, 10, 0, 5, 0, time.UTC),
		Status:     domain.BookingConfirmed,
		Schedule: &models.Schedule{
			ID:            5,
			BusID:         2,
			Source:        "Kochi",
			Destination:   "Bangalore",
			DepartureTime: dep,
			ArrivalTime:   dep.Add(8*time.Hour + 30*time.Minute),
			Price:         500,
		},
		Bus:        &models.Bus{ID: 2, BusNumber: "KL-07 Express", PlateNumber: "KL-07-AB-1234"},
		SeatLabels: []string{"1A", "1B"},
	}
	user := models.User{FullName: "Test Traveler"}

	doc, filename, err := ETicket(g, user)
	if err != nil {
		t.Fatalf("ETicket returned error: %v", err)
	}
	if len(doc) == 0 {
		t.Fatalf("ETicket returned empty data")
	}
	if filename != "ticket-LOCO202608140042.pdf" {
		t.Fatalf("filename wrong, got %q", filename)
	}
}

func TestETicketRejectsUnresolvedGroup(t *testing.T) {
	if _, _, err := ETicket(JourneyGroup{}, models.User{}); err == nil {
		t.Fatalf("unresolved group must not render")
	}
	failed := JourneyGroup{Err: domain.NotFoundError{Resource: "schedule"}}
	if _, _, err := ETicket(failed, models.User{}); !domain.IsInternal(err) {
		t.Fatalf("failed group should surface an internal error, got %v", err)
	}
}
