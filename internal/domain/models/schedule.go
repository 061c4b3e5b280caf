package models

import (
	"strings"
	"time"

	"locotranz/internal/domain"
)

// Schedule is one trip instance of a bus: route, times and fare per seat.
type Schedule struct {
	ID             domain.ID     `json:"id"`
	BusID          domain.ID     `json:"bus_id"`
	Source         string        `json:"source"`
	Destination    string        `json:"destination"`
	DepartureTime  time.Time     `json:"departure_time"`
	ArrivalTime    time.Time     `json:"arrival_time"`
	Price          float64       `json:"price"`
	Status         domain.Status `json:"status,omitempty"`
	AvailableSeats int           `json:"available_seats,omitempty"`
}

// DeriveStatus infers the lifecycle state from the clock alone.
func DeriveStatus(now, departure, arrival time.Time) domain.Status {
	if !now.Before(departure) && now.Before(arrival) {
		return domain.StatusRunning
	}
	if now.Before(departure) {
		return domain.StatusScheduled
	}
	return domain.StatusCompleted
}

// EffectiveStatus returns the stored status when one is set, falling back to
// the time-derived one. Stored status always wins so that operator overrides
// like maintenance or cancelled survive past the departure window.
func (s Schedule) EffectiveStatus(now time.Time) domain.Status {
	if st := strings.TrimSpace(string(s.Status)); st != "" {
		return domain.Status(strings.ToLower(st))
	}
	return DeriveStatus(now, s.DepartureTime, s.ArrivalTime)
}

// Duration is the scheduled journey time.
func (s Schedule) Duration() time.Duration {
	return s.ArrivalTime.Sub(s.DepartureTime)
}
