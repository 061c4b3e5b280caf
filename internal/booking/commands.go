package booking

import (
	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
)

// Command is a user action on the seat page. The UI layer only dispatches
// commands; all selection and pricing state lives in the engine.
type Command interface {
	seatCommand()
}

// ToggleSeat flips one seat in or out of the selection.
type ToggleSeat struct {
	SeatID domain.ID
}

func (ToggleSeat) seatCommand() {}

// SubmitCheckout asks the engine for a booking draft to carry to payment.
type SubmitCheckout struct{}

func (SubmitCheckout) seatCommand() {}

// Result reports what a command did.
type Result struct {
	// Toggled is false when a ToggleSeat hit a booked or unknown seat.
	Toggled bool
	// Draft is set when a SubmitCheckout succeeded.
	Draft *models.BookingDraft
	// Summary reflects the selection after the command.
	Summary Summary
}

// Apply runs one command against the selection.
func (s *Selection) Apply(cmd Command) (Result, error) {
	switch c := cmd.(type) {
	case ToggleSeat:
		ok := s.Toggle(c.SeatID)
		return Result{Toggled: ok, Summary: s.Summary()}, nil
	case SubmitCheckout:
		draft, err := s.BuildDraft()
		if err != nil {
			return Result{Summary: s.Summary()}, err
		}
		return Result{Draft: &draft, Summary: s.Summary()}, nil
	default:
		return Result{Summary: s.Summary()}, domain.ValidationError{Field: "command", Msg: "unknown command"}
	}
}
