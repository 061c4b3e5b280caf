package api

import (
	"context"
	"net/http"
	"net/url"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the signup payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/users/login", nil, creds, &user)
	return user, err
}

func (c *Client) Register(ctx context.Context, reg Registration) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/users", nil, reg, &user)
	return user, err
}

func (c *Client) Buses(ctx context.Context) ([]models.Bus, error) {
	var buses []models.Bus
	err := c.do(ctx, http.MethodGet, "/buses", nil, nil, &buses)
	return buses, err
}

func (c *Client) Bus(ctx context.Context, id domain.ID) (models.Bus, error) {
	var bus models.Bus
	err := c.do(ctx, http.MethodGet, "/buses/"+id.String(), nil, nil, &bus)
	return bus, err
}

func (c *Client) CreateBus(ctx context.Context, bus models.Bus) (models.Bus, error) {
	var created models.Bus
	err := c.do(ctx, http.MethodPost, "/buses", nil, bus, &created)
	return created, err
}

// Schedules lists trips, optionally filtered by route endpoints.
func (c *Client) Schedules(ctx context.Context, source, destination string) ([]models.Schedule, error) {
	query := url.Values{}
	if source != "" {
		query.Set("source", source)
	}
	if destination != "" {
		query.Set("destination", destination)
	}
	var schedules []models.Schedule
	err := c.do(ctx, http.MethodGet, "/schedules", query, nil, &schedules)
	return schedules, err
}

func (c *Client) Schedule(ctx context.Context, id domain.ID) (models.Schedule, error) {
	var sched models.Schedule
	err := c.do(ctx, http.MethodGet, "/schedules/"+id.String(), nil, nil, &sched)
	return sched, err
}

func (c *Client) CreateSchedule(ctx context.Context, sched models.Schedule) (models.Schedule, error) {
	var created models.Schedule
	err := c.do(ctx, http.MethodPost, "/schedules", nil, sched, &created)
	return created, err
}

func (c *Client) UpdateSchedule(ctx context.Context, sched models.Schedule) (models.Schedule, error) {
	var updated models.Schedule
	err := c.do(ctx, http.MethodPut, "/schedules/"+sched.ID.String(), nil, sched, &updated)
	return updated, err
}

func (c *Client) DeleteSchedule(ctx context.Context, id domain.ID) error {
	return c.do(ctx, http.MethodDelete, "/schedules/"+id.String(), nil, nil, nil)
}

func (c *Client) SeatsByBus(ctx context.Context, busID domain.ID) ([]models.Seat, error) {
	query := url.Values{}
	query.Set("bus_id", busID.String())
	var seats []models.Seat
	err := c.do(ctx, http.MethodGet, "/seats", query, nil, &seats)
	return seats, err
}

// ResetSeats deletes every booking on the schedule, freeing all seats.
func (c *Client) ResetSeats(ctx context.Context, scheduleID domain.ID) error {
	return c.do(ctx, http.MethodPost, "/seats/reset/"+scheduleID.String(), nil, nil, nil)
}

func (c *Client) Bookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := c.do(ctx, http.MethodGet, "/bookings", nil, nil, &bookings)
	return bookings, err
}

func (c *Client) BookingsByUser(ctx context.Context, userID domain.ID) ([]models.Booking, error) {
	query := url.Values{}
	query.Set("user_id", userID.String())
	var bookings []models.Booking
	err := c.do(ctx, http.MethodGet, "/bookings", query, nil, &bookings)
	return bookings, err
}

func (c *Client) BookingsBySchedule(ctx context.Context, scheduleID domain.ID) ([]models.Booking, error) {
	query := url.Values{}
	query.Set("schedule_id", scheduleID.String())
	var bookings []models.Booking
	err := c.do(ctx, http.MethodGet, "/bookings", query, nil, &bookings)
	return bookings, err
}

func (c *Client) Booking(ctx context.Context, id domain.ID) (models.Booking, error) {
	var b models.Booking
	err := c.do(ctx, http.MethodGet, "/bookings/"+id.String(), nil, nil, &b)
	return b, err
}

func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	var created models.Booking
	err := c.do(ctx, http.MethodPost, "/bookings", nil, req, &created)
	return created, err
}
