package pages

import (
	"context"
	"sort"

	"locotranz/internal/booking"
	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
)

// SeatMapController backs the seat map page: it loads the schedule's seat
// availability once and then consumes seat commands until checkout.
type SeatMapController struct {
	Ctx

	schedule  models.Schedule
	busName   string
	seats     []models.Seat
	selection *booking.Selection
}

// SeatView is one cell of the rendered seat map.
type SeatView struct {
	ID       domain.ID
	Label    string
	Booked   bool
	Selected bool
}

// Load fetches the schedule, its bus, the bus's seats and the schedule's
// existing bookings, then builds the selection engine. Booked seats are
// known from the start so they can never be toggled in.
func (c *SeatMapController) Load(ctx context.Context, scheduleID domain.ID) error {
	sched, err := c.API.Schedule(ctx, scheduleID)
	if err != nil {
		c.notify().Error("Failed to load schedule info.")
		return err
	}
	c.schedule = sched

	c.busName = "Bus #" + sched.BusID.String()
	if bus, err := c.API.Bus(ctx, sched.BusID); err == nil {
		c.busName = bus.DisplayName()
	}

	seats, err := c.API.SeatsByBus(ctx, sched.BusID)
	if err != nil {
		c.notify().Error("Failed to load seats.")
		return err
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i].SeatLabel < seats[j].SeatLabel })
	c.seats = seats

	bookings, err := c.API.BookingsBySchedule(ctx, scheduleID)
	if err != nil {
		c.notify().Error("Failed to load seat availability.")
		return err
	}
	booked := make([]domain.ID, 0, len(bookings))
	for _, b := range bookings {
		if b.Status != domain.BookingCancelled {
			booked = append(booked, b.SeatID)
		}
	}

	c.selection = booking.NewSelection(scheduleID, sched.Price, seats, booked)
	return nil
}

// Apply dispatches one seat command. A successful checkout persists the
// draft for the payment page before reporting it back.
func (c *SeatMapController) Apply(cmd booking.Command) (booking.Result, error) {
	if c.selection == nil {
		return booking.Result{}, domain.InternalError{Msg: "seat map not loaded"}
	}
	res, err := c.selection.Apply(cmd)
	if err != nil {
		if domain.IsValidation(err) {
			c.notify().Error("Please select at least one seat.")
		}
		return res, err
	}
	if res.Draft != nil {
		draft := *res.Draft
		draft.BusName = c.busName
		draft.Source = c.schedule.Source
		draft.Destination = c.schedule.Destination
		draft.Date = c.schedule.DepartureTime
		if err := c.Session.SaveDraft(draft); err != nil {
			return res, domain.InternalError{Msg: "save draft", Err: err}
		}
		res.Draft = &draft
	}
	return res, nil
}

// Seats renders the current map state in label order.
func (c *SeatMapController) Seats() []SeatView {
	views := make([]SeatView, 0, len(c.seats))
	for _, seat := range c.seats {
		views = append(views, SeatView{
			ID:       seat.ID,
			Label:    seat.SeatLabel,
			Booked:   c.selection.IsBooked(seat.ID),
			Selected: c.selection.IsSelected(seat.ID),
		})
	}
	return views
}

// Summary returns the fare panel for the current selection.
func (c *SeatMapController) Summary() booking.Summary {
	if c.selection == nil {
		return booking.Summary{}
	}
	return c.selection.Summary()
}

// Schedule exposes the loaded schedule for the page header.
func (c *SeatMapController) Schedule() models.Schedule {
	return c.schedule
}

// BusName exposes the resolved bus display name.
func (c *SeatMapController) BusName() string {
	return c.busName
}
