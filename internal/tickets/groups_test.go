package tickets

import (
	"testing"
	"time"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 8, 14, hour, min, sec, 0, time.UTC)
}

func TestGroupSameCheckoutSharesMinute(t *testing.T) {
	bookings := []models.Booking{
		{ID: 1, ScheduleID: 5, SeatID: 11, Status: domain.BookingConfirmed, BookingDate: at(10, 0, 5)},
		{ID: 2, ScheduleID: 5, SeatID: 12, Status: domain.BookingConfirmed, BookingDate: at(10, 0, 45)},
		{ID: 3, ScheduleID: 5, SeatID: 13, Status: domain.BookingConfirmed, BookingDate: at(10, 2, 0)},
	}

	groups := Group(bookings)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[0].BookingIDs) != 2 || groups[0].BookingIDs[0] != 1 || groups[0].BookingIDs[1] != 2 {
		t.Fatalf("first group members wrong: %v", groups[0].BookingIDs)
	}
	if len(groups[1].BookingIDs) != 1 || groups[1].BookingIDs[0] != 3 {
		t.Fatalf("second group members wrong: %v", groups[1].BookingIDs)
	}
}

func TestGroupSplitsBySchedule(t *testing.T) {
	when := at(9, 30, 10)
	bookings := []models.Booking{
		{ID: 1, ScheduleID: 5, SeatID: 11, BookingDate: when},
		{ID: 2, ScheduleID: 6, SeatID: 11, BookingDate: when},
	}

	groups := Group(bookings)
	if len(groups) != 2 {
		t.Fatalf("bookings of different schedules must not merge, got %d groups", len(groups))
	}
	if groups[0].ScheduleID != 5 || groups[1].ScheduleID != 6 {
		t.Fatalf("tie break on schedule id failed: %d then %d", groups[0].ScheduleID, groups[1].ScheduleID)
	}
}

func TestGroupStatusAndTimestampFromFirstMember(t *testing.T) {
	bookings := []models.Booking{
		{ID: 1, ScheduleID: 5, SeatID: 11, Status: domain.BookingConfirmed, BookingDate: at(10, 0, 5)},
		{ID: 2, ScheduleID: 5, SeatID: 12, Status: domain.BookingCancelled, BookingDate: at(10, 0, 45)},
	}

	groups := Group(bookings)
	if len(groups) != 1 {
		t.Fatalf("expected a single group, got %d", len(groups))
	}
	if groups[0].Status != domain.BookingConfirmed {
		t.Fatalf("status should come from the first member, got %q", groups[0].Status)
	}
	if !groups[0].BookedAt.Equal(at(10, 0, 5)) {
		t.Fatalf("representative timestamp wrong: %v", groups[0].BookedAt)
	}
}

func TestGroupOrderIsDeterministic(t *testing.T) {
	bookings := []models.Booking{
		{ID: 4, ScheduleID: 9, SeatID: 14, BookingDate: at(12, 0, 0)},
		{ID: 1, ScheduleID: 5, SeatID: 11, BookingDate: at(10, 0, 5)},
		{ID: 2, ScheduleID: 7, SeatID: 12, BookingDate: at(10, 0, 30)},
	}

	groups := Group(bookings)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].ScheduleID != 5 || groups[1].ScheduleID != 7 || groups[2].ScheduleID != 9 {
		t.Fatalf("order wrong: %d, %d, %d", groups[0].ScheduleID, groups[1].ScheduleID, groups[2].ScheduleID)
	}
}

func TestGroupEmptyInput(t *testing.T) {
	if groups := Group(nil); len(groups) != 0 {
		t.Fatalf("no bookings should yield no groups, got %d", len(groups))
	}
}

func TestRefIDFormat(t *testing.T) {
	g := JourneyGroup{
		BookingIDs: []domain.ID{42, 43},
		BookedAt:   time.Date(2026, 8, 14, 10, 0, 5, 0, time.UTC),
	}
	if ref := g.RefID(); ref != "LOCO202608140042" {
		t.Fatalf("reference wrong, got %q", ref)
	}
}

func TestJourneyGroupFare(t *testing.T) {
	g := JourneyGroup{
		SeatIDs:  []domain.ID{11, 12},
		Schedule: &models.Schedule{Price: 500},
	}
	fare := g.Fare()
	if fare.Total != 1050 {
		t.Fatalf("group total wrong, got %v", fare.Total)
	}
	if (JourneyGroup{}).Fare().Total != 0 {
		t.Fatalf("unresolved group should price to zero")
	}
}
