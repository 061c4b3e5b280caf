// Package booking holds the seat selection and fare computation for one
// schedule: the state behind the seat map page.
package booking

import (
	"sort"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
	"locotranz/internal/utils"
)

// GSTRate is the flat surcharge applied on top of the base fare.
const GSTRate = 0.05

// Fare is a computed price breakdown. Values stay exact; rounding happens
// only when formatting for display.
type Fare struct {
	Base  float64
	GST   float64
	Total float64
}

// ComputeFare prices a selection: base = seats × price, plus the flat
// surcharge. Pure function.
func ComputeFare(seatCount int, pricePerSeat float64) Fare {
	base := float64(seatCount) * pricePerSeat
	gst := base * GSTRate
	return Fare{Base: base, GST: gst, Total: base + gst}
}

// Selection tracks which seats the user has tentatively chosen for one
// schedule. Seats already taken by other bookings can never enter the set,
// even if the caller asks.
type Selection struct {
	scheduleID   domain.ID
	pricePerSeat float64
	labels       map[domain.ID]string
	booked       map[domain.ID]struct{}
	selected     map[domain.ID]struct{}
}

// NewSelection builds the selection state from the bus seat list and the
// schedule's existing bookings.
func NewSelection(scheduleID domain.ID, pricePerSeat float64, seats []models.Seat, bookedSeatIDs []domain.ID) *Selection {
	labels := make(map[domain.ID]string, len(seats))
	for _, seat := range seats {
		labels[seat.ID] = seat.SeatLabel
	}
	booked := make(map[domain.ID]struct{}, len(bookedSeatIDs))
	for _, id := range bookedSeatIDs {
		booked[id] = struct{}{}
	}
	return &Selection{
		scheduleID:   scheduleID,
		pricePerSeat: pricePerSeat,
		labels:       labels,
		booked:       booked,
		selected:     map[domain.ID]struct{}{},
	}
}

// Toggle flips membership of the seat in the selection set. Booked and
// unknown seats are not selectable; toggling them is a no-op and reports
// false.
func (s *Selection) Toggle(seatID domain.ID) bool {
	if _, taken := s.booked[seatID]; taken {
		return false
	}
	if _, known := s.labels[seatID]; !known {
		return false
	}
	if _, on := s.selected[seatID]; on {
		delete(s.selected, seatID)
	} else {
		s.selected[seatID] = struct{}{}
	}
	return true
}

func (s *Selection) Count() int {
	return len(s.selected)
}

// IsBooked reports whether another passenger already holds the seat.
func (s *Selection) IsBooked(seatID domain.ID) bool {
	_, taken := s.booked[seatID]
	return taken
}

func (s *Selection) IsSelected(seatID domain.ID) bool {
	_, on := s.selected[seatID]
	return on
}

// SeatIDs returns the selected ids ordered by seat label, the order the
// summary panel shows them in.
func (s *Selection) SeatIDs() []domain.ID {
	ids := make([]domain.ID, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		li, lj := s.labels[ids[i]], s.labels[ids[j]]
		if li != lj {
			return li < lj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Labels returns the selected seat labels in display order.
func (s *Selection) Labels() []string {
	ids := s.SeatIDs()
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, s.labels[id])
	}
	return labels
}

// Fare prices the current selection.
func (s *Selection) Fare() Fare {
	return ComputeFare(len(s.selected), s.pricePerSeat)
}

// Summary is the rendered fare panel.
type Summary struct {
	Seats string
	Base  string
	GST   string
	Total string
}

func (s *Selection) Summary() Summary {
	fare := s.Fare()
	seats := "No seats selected"
	if len(s.selected) > 0 {
		seats = utils.JoinSeatLabels(s.Labels())
	}
	return Summary{
		Seats: seats,
		Base:  utils.FormatINRPlain(fare.Base),
		GST:   utils.FormatINR(fare.GST),
		Total: utils.FormatINR(fare.Total),
	}
}

// BuildDraft produces the hand-off record for the payment page. An empty
// selection is a user-facing validation error, reported without touching
// the network.
func (s *Selection) BuildDraft() (models.BookingDraft, error) {
	if len(s.selected) == 0 {
		return models.BookingDraft{}, domain.ValidationError{Field: "seats", Msg: "select at least one seat"}
	}
	return models.BookingDraft{
		ScheduleID:  s.scheduleID,
		SeatIDs:     s.SeatIDs(),
		TotalAmount: utils.FormatINR(s.Fare().Total),
	}, nil
}
