package pages

import (
	"context"
	"strings"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
	"locotranz/internal/utils"
)

// AdminController backs the admin dashboard: fleet stats, schedule CRUD,
// bus creation and the seat reset action.
type AdminController struct {
	Ctx
}

// Stats is the dashboard header row.
type Stats struct {
	Running     int
	TotalBuses  int
	Scheduled   int
	Maintenance int
}

// ScheduleRow is one line of the schedules table.
type ScheduleRow struct {
	ID        domain.ID
	BusLabel  string
	Route     string
	Departure string
	Arrival   string
	Status    domain.Status
	Fare      string
	Booked    int
}

func (c AdminController) requireAdmin() error {
	user, ok, err := c.Session.User()
	if err != nil {
		return err
	}
	if !ok || !user.IsAdmin() {
		return domain.UnauthorizedError{Msg: "admin access required"}
	}
	return nil
}

// FleetStats counts schedules by effective status. Maintenance counts
// distinct buses, not schedules, matching the dashboard's "in workshop"
// card.
func (c AdminController) FleetStats(ctx context.Context) (Stats, error) {
	if err := c.requireAdmin(); err != nil {
		return Stats{}, err
	}

	buses, err := c.API.Buses(ctx)
	if err != nil {
		return Stats{}, err
	}
	schedules, err := c.API.Schedules(ctx, "", "")
	if err != nil {
		return Stats{}, err
	}

	now := c.now()
	stats := Stats{TotalBuses: len(buses)}
	maintenanceBuses := map[domain.ID]struct{}{}
	for _, sched := range schedules {
		switch sched.EffectiveStatus(now) {
		case domain.StatusRunning:
			stats.Running++
		case domain.StatusScheduled:
			stats.Scheduled++
		case domain.StatusMaintenance:
			maintenanceBuses[sched.BusID] = struct{}{}
		}
	}
	stats.Maintenance = len(maintenanceBuses)
	return stats, nil
}

// Schedules lists the table rows with per-schedule booking counts,
// optionally filtered by effective status. A failed bookings fetch leaves
// counts at zero instead of failing the table.
func (c AdminController) Schedules(ctx context.Context, statusFilter string) ([]ScheduleRow, error) {
	if err := c.requireAdmin(); err != nil {
		return nil, err
	}

	schedules, err := c.API.Schedules(ctx, "", "")
	if err != nil {
		c.notify().Error("Error loading schedules.")
		return nil, err
	}

	counts := map[domain.ID]int{}
	if bookings, err := c.API.Bookings(ctx); err == nil {
		for _, b := range bookings {
			counts[b.ScheduleID]++
		}
	}

	filter := strings.ToLower(utils.TrimOrEmpty(statusFilter))
	now := c.now()
	rows := make([]ScheduleRow, 0, len(schedules))
	for _, sched := range schedules {
		status := sched.EffectiveStatus(now)
		if filter != "" && filter != "all" && string(status) != filter {
			continue
		}
		rows = append(rows, ScheduleRow{
			ID:        sched.ID,
			BusLabel:  "Bus #" + sched.BusID.String(),
			Route:     sched.Source + " → " + sched.Destination,
			Departure: utils.FormatShortDate(sched.DepartureTime) + " " + utils.FormatClock(sched.DepartureTime),
			Arrival:   utils.FormatShortDate(sched.ArrivalTime) + " " + utils.FormatClock(sched.ArrivalTime),
			Status:    status,
			Fare:      utils.FormatINRPlain(sched.Price),
			Booked:    counts[sched.ID],
		})
	}
	return rows, nil
}

// CreateBus registers a new bus; the backend seeds its seats from
// total_seats.
func (c AdminController) CreateBus(ctx context.Context, bus models.Bus) (models.Bus, error) {
	if err := c.requireAdmin(); err != nil {
		return models.Bus{}, err
	}
	if utils.TrimOrEmpty(bus.BusNumber) == "" {
		return models.Bus{}, domain.ValidationError{Field: "bus_number", Msg: "required"}
	}
	if bus.TotalSeats <= 0 {
		return models.Bus{}, domain.ValidationError{Field: "total_seats", Msg: "must be positive"}
	}
	created, err := c.API.CreateBus(ctx, bus)
	if err != nil {
		c.notify().Error("Error creating bus: " + err.Error())
		return models.Bus{}, err
	}
	c.notify().Success("Bus Created Successfully!")
	return created, nil
}

// SaveSchedule creates or updates depending on whether an id is set.
func (c AdminController) SaveSchedule(ctx context.Context, sched models.Schedule) (models.Schedule, error) {
	if err := c.requireAdmin(); err != nil {
		return models.Schedule{}, err
	}
	switch {
	case sched.BusID == 0:
		return models.Schedule{}, domain.ValidationError{Field: "bus_id", Msg: "required"}
	case utils.TrimOrEmpty(sched.Source) == "" || utils.TrimOrEmpty(sched.Destination) == "":
		return models.Schedule{}, domain.ValidationError{Field: "route", Msg: "source and destination required"}
	case !sched.ArrivalTime.After(sched.DepartureTime):
		return models.Schedule{}, domain.ValidationError{Field: "arrival_time", Msg: "must be after departure"}
	case sched.Price < 0:
		return models.Schedule{}, domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}

	if sched.ID != 0 {
		updated, err := c.API.UpdateSchedule(ctx, sched)
		if err != nil {
			c.notify().Error("Error saving schedule: " + err.Error())
			return models.Schedule{}, err
		}
		c.notify().Success("Schedule Updated!")
		return updated, nil
	}
	created, err := c.API.CreateSchedule(ctx, sched)
	if err != nil {
		c.notify().Error("Error saving schedule: " + err.Error())
		return models.Schedule{}, err
	}
	c.notify().Success("Schedule Created!")
	return created, nil
}

func (c AdminController) DeleteSchedule(ctx context.Context, id domain.ID) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if err := c.API.DeleteSchedule(ctx, id); err != nil {
		c.notify().Error("Failed to delete schedule.")
		return err
	}
	c.notify().Success("Schedule Deleted!")
	return nil
}

// ResetSeats frees every seat on the schedule by deleting its bookings.
func (c AdminController) ResetSeats(ctx context.Context, scheduleID domain.ID) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if err := c.API.ResetSeats(ctx, scheduleID); err != nil {
		c.notify().Error("Failed to reset seats.")
		return err
	}
	c.notify().Success("Seats and bookings reset successfully!")
	return nil
}
