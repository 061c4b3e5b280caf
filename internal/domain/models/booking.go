package models

import (
	"time"

	"locotranz/internal/domain"
)

// Booking is one user's reservation of one seat on one schedule.
type Booking struct {
	ID          domain.ID     `json:"id"`
	UserID      domain.ID     `json:"user_id"`
	ScheduleID  domain.ID     `json:"schedule_id"`
	SeatID      domain.ID     `json:"seat_id"`
	Status      domain.Status `json:"status"`
	BookingDate time.Time     `json:"booking_date"`
}

// BookingRequest is the create payload sent to the backend, one per seat.
type BookingRequest struct {
	UserID     domain.ID     `json:"user_id"`
	ScheduleID domain.ID     `json:"schedule_id"`
	SeatID     domain.ID     `json:"seat_id"`
	Status     domain.Status `json:"status"`
}

// BookingDraft bridges the seat page and the payment page. It lives in the
// local state store and is deleted once the backend confirms the bookings.
type BookingDraft struct {
	ScheduleID  domain.ID   `json:"schedule_id"`
	SeatIDs     []domain.ID `json:"seat_ids"`
	TotalAmount string      `json:"total_amount"`
	BusName     string      `json:"bus_name,omitempty"`
	Source      string      `json:"source,omitempty"`
	Destination string      `json:"destination,omitempty"`
	Date        time.Time   `json:"date,omitempty"`
}
