package models

import "locotranz/internal/domain"

// Bus mirrors the backend bus resource.
type Bus struct {
	ID           domain.ID `json:"id"`
	BusNumber    string    `json:"bus_number"`
	PlateNumber  string    `json:"plate_number"`
	BusType      string    `json:"bus_type"`
	TotalSeats   int       `json:"total_seats"`
	OperatorName string    `json:"operator_name"`
}

// DisplayName prefers the operator-assigned number over a synthetic label.
func (b Bus) DisplayName() string {
	if b.BusNumber != "" {
		return b.BusNumber
	}
	return "LocoTranz #" + b.ID.String()
}

// Seat is one bookable position on a bus. Booked/available is derived from
// bookings, never stored here.
type Seat struct {
	ID        domain.ID `json:"id"`
	BusID     domain.ID `json:"bus_id"`
	SeatLabel string    `json:"seat_label"`
}
