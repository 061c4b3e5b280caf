package domain

import "strconv"

// ID is used across domain entities.
type ID int64

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Status represents a lightweight state value.
type Status string

// Schedule lifecycle states. Maintenance and cancelled are only ever set
// explicitly by an operator; the other three can be derived from the clock.
const (
	StatusScheduled   Status = "scheduled"
	StatusRunning     Status = "running"
	StatusCompleted   Status = "completed"
	StatusMaintenance Status = "maintenance"
	StatusCancelled   Status = "cancelled"
)

// Booking states as the backend reports them.
const (
	BookingConfirmed Status = "confirmed"
	BookingCancelled Status = "cancelled"
)

// Roles stored on the session record.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
