// Package tickets turns flat per-seat booking rows into the journey-level
// cards of the "my tickets" view, and renders the printable e-ticket.
package tickets

import (
	"fmt"
	"sort"
	"time"

	"locotranz/internal/booking"
	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
	"locotranz/internal/utils"
)

// JourneyGroup is one checkout transaction: every booking that shares a
// schedule and a minute-truncated creation time. Display-only, recomputed
// on each render.
type JourneyGroup struct {
	ScheduleID domain.ID
	Minute     time.Time
	BookedAt   time.Time
	Status     domain.Status
	BookingIDs []domain.ID
	SeatIDs    []domain.ID

	// Filled in by Resolve. When Err is set the card renders an inline
	// error slot and the other fields stay zero.
	Schedule   *models.Schedule
	Bus        *models.Bus
	SeatLabels []string
	Err        error
}

type groupKey struct {
	scheduleID domain.ID
	minute     time.Time
}

// Group buckets bookings by (schedule, creation minute). Bookings created
// by one checkout land within the same minute even when the backend wrote
// them across several calls; a later purchase of the same schedule lands in
// a different minute and therefore a different group. Status and the
// representative timestamp come from the first member. Output order is
// deterministic: oldest group first, schedule id as tie breaker.
func Group(bookings []models.Booking) []JourneyGroup {
	index := map[groupKey]int{}
	groups := []JourneyGroup{}

	for _, b := range bookings {
		key := groupKey{scheduleID: b.ScheduleID, minute: utils.TruncateToMinute(b.BookingDate)}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, JourneyGroup{
				ScheduleID: b.ScheduleID,
				Minute:     key.minute,
				BookedAt:   b.BookingDate,
				Status:     b.Status,
			})
		}
		groups[i].BookingIDs = append(groups[i].BookingIDs, b.ID)
		groups[i].SeatIDs = append(groups[i].SeatIDs, b.SeatID)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if !groups[i].Minute.Equal(groups[j].Minute) {
			return groups[i].Minute.Before(groups[j].Minute)
		}
		return groups[i].ScheduleID < groups[j].ScheduleID
	})
	return groups
}

// Fare prices the whole group with the same surcharge rule the seat page
// uses, so both views always agree on what "total" means.
func (g JourneyGroup) Fare() booking.Fare {
	if g.Schedule == nil {
		return booking.Fare{}
	}
	return booking.ComputeFare(len(g.SeatIDs), g.Schedule.Price)
}

// RefID is the human-facing booking reference printed on tickets.
func (g JourneyGroup) RefID() string {
	var first domain.ID
	if len(g.BookingIDs) > 0 {
		first = g.BookingIDs[0]
	}
	return fmt.Sprintf("LOCO%s%04d", g.BookedAt.Format("20060102"), int64(first))
}
