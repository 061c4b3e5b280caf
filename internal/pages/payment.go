package pages

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
	"locotranz/internal/utils"

	"github.com/skip2/go-qrcode"
)

const (
	upiID    = "aswinvivo1309@okhdfcbank"
	upiPayee = "LocoTranz"
	qrPixels = 220
)

// PaymentController backs the payment page: it turns the stored draft into
// confirmed bookings, one request per seat.
type PaymentController struct {
	Ctx

	inFlight atomic.Bool
}

// Draft loads the pending booking draft written by the seat page.
func (c *PaymentController) Draft() (models.BookingDraft, error) {
	draft, ok, err := c.Session.Draft()
	if err != nil {
		return models.BookingDraft{}, err
	}
	if !ok {
		c.notify().Error("No booking in progress.")
		return models.BookingDraft{}, domain.NotFoundError{Resource: "booking draft"}
	}
	return draft, nil
}

// UPILink builds the upi://pay deep link for the draft's total.
func UPILink(draft models.BookingDraft) string {
	amount, err := utils.ParseINR(draft.TotalAmount)
	if err != nil {
		amount = 0
	}
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR",
		upiID, url.QueryEscape(upiPayee), amount)
}

// UPIQR renders the payment link as a QR PNG.
func UPIQR(draft models.BookingDraft) ([]byte, error) {
	png, err := qrcode.Encode(UPILink(draft), qrcode.Medium, qrPixels)
	if err != nil {
		return nil, domain.InternalError{Msg: "qr generation failed", Err: err}
	}
	return png, nil
}

// Pay submits one booking per selected seat, all concurrently, and succeeds
// only when every seat confirmed. On success the draft is deleted and the
// created booking ids are returned for the ticket view. Re-entrant calls
// while a payment is in flight are rejected, the same at-most-once guard
// the page's disabled submit button gave.
func (c *PaymentController) Pay(ctx context.Context) ([]domain.ID, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ConflictError{Resource: "payment", Msg: "already processing"}
	}
	defer c.inFlight.Store(false)

	user, ok, err := c.Session.User()
	if err != nil {
		return nil, err
	}
	if !ok {
		c.notify().Error("Please login to complete booking.")
		return nil, domain.UnauthorizedError{Msg: "not logged in"}
	}

	draft, err := c.Draft()
	if err != nil {
		return nil, err
	}
	if len(draft.SeatIDs) == 0 {
		return nil, domain.ValidationError{Field: "seats", Msg: "no seats selected"}
	}

	created := make([]models.Booking, len(draft.SeatIDs))
	errs := make([]error, len(draft.SeatIDs))

	var wg sync.WaitGroup
	for i, seatID := range draft.SeatIDs {
		wg.Add(1)
		go func(i int, seatID domain.ID) {
			defer wg.Done()
			created[i], errs[i] = c.API.CreateBooking(ctx, models.BookingRequest{
				UserID:     user.ID,
				ScheduleID: draft.ScheduleID,
				SeatID:     seatID,
				Status:     domain.BookingConfirmed,
			})
		}(i, seatID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			c.notify().Error("Booking failed: " + err.Error())
			return nil, err
		}
	}

	ids := make([]domain.ID, 0, len(created))
	for _, b := range created {
		if b.ID != 0 {
			ids = append(ids, b.ID)
		}
	}
	if len(ids) == 0 {
		c.notify().Error("Booking processed but no ticket ids received. Please contact support.")
		return nil, domain.InternalError{Msg: "no booking ids returned"}
	}

	if err := c.Session.ClearDraft(); err != nil {
		return ids, domain.InternalError{Msg: "clear draft", Err: err}
	}
	c.notify().Success("Booking Success! Redirecting to ticket...")
	return ids, nil
}
