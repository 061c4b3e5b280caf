package pages

import (
	"context"
	"sync"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
	"locotranz/internal/tickets"
	"locotranz/internal/utils"
)

// TicketsController backs the "my tickets" list and the single-ticket view.
type TicketsController struct {
	Ctx
}

// TicketCard is one journey group rendered for display. When Err is set
// only RefID and Err are meaningful; sibling cards are unaffected.
type TicketCard struct {
	RefID     string
	Route     string
	BusName   string
	Plate     string
	Departure string
	Arrival   string
	Duration  string
	BookedOn  string
	Seats     string
	BaseFare  string
	GST       string
	Total     string
	Status    domain.Status
	Err       string
}

// My lists the logged-in user's journeys, newest checkout last.
func (c TicketsController) My(ctx context.Context) ([]tickets.JourneyGroup, error) {
	user, ok, err := c.Session.User()
	if err != nil {
		return nil, err
	}
	if !ok {
		c.notify().Error("Please login to view your tickets.")
		return nil, domain.UnauthorizedError{Msg: "not logged in"}
	}

	bookings, err := c.API.BookingsByUser(ctx, user.ID)
	if err != nil {
		c.notify().Error("Failed to load tickets.")
		return nil, err
	}
	return tickets.Resolve(ctx, c.API, tickets.Group(bookings)), nil
}

// ByBookingIDs loads the groups for a fresh checkout's booking ids, the
// hand-off the payment step produces. Bookings are fetched concurrently;
// one failed fetch drops that booking, not the ticket.
func (c TicketsController) ByBookingIDs(ctx context.Context, ids []domain.ID) ([]tickets.JourneyGroup, error) {
	if len(ids) == 0 {
		return nil, domain.ValidationError{Field: "booking_ids", Msg: "required"}
	}

	fetched := make([]models.Booking, len(ids))
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id domain.ID) {
			defer wg.Done()
			fetched[i], errs[i] = c.API.Booking(ctx, id)
		}(i, id)
	}
	wg.Wait()

	bookings := make([]models.Booking, 0, len(fetched))
	for i, b := range fetched {
		if errs[i] == nil {
			bookings = append(bookings, b)
		}
	}
	if len(bookings) == 0 {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
		return nil, domain.NotFoundError{Resource: "bookings"}
	}
	return tickets.Resolve(ctx, c.API, tickets.Group(bookings)), nil
}

// Cards renders resolved groups for display.
func Cards(groups []tickets.JourneyGroup) []TicketCard {
	cards := make([]TicketCard, 0, len(groups))
	for _, g := range groups {
		card := TicketCard{RefID: g.RefID(), Status: g.Status}
		if g.Err != nil {
			card.Err = "Error loading ticket: " + g.Err.Error()
			cards = append(cards, card)
			continue
		}
		sched := g.Schedule
		fare := g.Fare()
		card.Route = sched.Source + " → " + sched.Destination
		card.Departure = utils.FormatShortDate(sched.DepartureTime) + " " + utils.FormatClock(sched.DepartureTime)
		card.Arrival = utils.FormatShortDate(sched.ArrivalTime) + " " + utils.FormatClock(sched.ArrivalTime)
		card.Duration = utils.FormatDuration(sched.Duration())
		card.BookedOn = utils.FormatLongDate(g.BookedAt) + " " + utils.FormatClock(g.BookedAt)
		card.Seats = utils.JoinSeatLabels(g.SeatLabels)
		card.BaseFare = utils.FormatINRPlain(fare.Base)
		card.GST = utils.FormatINR(fare.GST)
		card.Total = utils.FormatINR(fare.Total)
		card.BusName = "LocoTranz #" + sched.BusID.String()
		card.Plate = "N/A"
		if g.Bus != nil {
			card.BusName = g.Bus.DisplayName()
			if g.Bus.PlateNumber != "" {
				card.Plate = g.Bus.PlateNumber
			}
		}
		cards = append(cards, card)
	}
	return cards
}
