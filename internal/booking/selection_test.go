package booking

import (
	"testing"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
)

func testSeats() []models.Seat {
	return []models.Seat{
		{ID: 11, BusID: 1, SeatLabel: "1A"},
		{ID: 12, BusID: 1, SeatLabel: "1B"},
		{ID: 13, BusID: 1, SeatLabel: "2A"},
		{ID: 14, BusID: 1, SeatLabel: "2B"},
	}
}

func TestComputeFareAddsFivePercent(t *testing.T) {
	fare := ComputeFare(3, 500)
	if fare.Base != 1500 {
		t.Fatalf("base fare wrong, got %v want 1500", fare.Base)
	}
	if fare.GST != 75 {
		t.Fatalf("surcharge wrong, got %v want 75", fare.GST)
	}
	if fare.Total != 1575 {
		t.Fatalf("total wrong, got %v want 1575", fare.Total)
	}
}

func TestComputeFareEmptySelection(t *testing.T) {
	fare := ComputeFare(0, 750)
	if fare.Base != 0 || fare.GST != 0 || fare.Total != 0 {
		t.Fatalf("empty selection should price to zero, got %+v", fare)
	}
}

func TestTogglePairReturnsToStart(t *testing.T) {
	sel := NewSelection(7, 500, testSeats(), nil)

	if !sel.Toggle(12) {
		t.Fatalf("first toggle rejected")
	}
	if !sel.IsSelected(12) {
		t.Fatalf("seat not selected after toggle")
	}
	if !sel.Toggle(12) {
		t.Fatalf("second toggle rejected")
	}
	if sel.IsSelected(12) || sel.Count() != 0 {
		t.Fatalf("double toggle should leave the selection empty")
	}
}

func TestToggleRejectsBookedAndUnknownSeats(t *testing.T) {
	sel := NewSelection(7, 500, testSeats(), []domain.ID{13})

	if sel.Toggle(13) {
		t.Fatalf("booked seat must not be selectable")
	}
	if sel.Toggle(99) {
		t.Fatalf("unknown seat must not be selectable")
	}
	if sel.Count() != 0 {
		t.Fatalf("rejected toggles should not change the selection")
	}
}

func TestSummaryFormatsFareBreakdown(t *testing.T) {
	sel := NewSelection(7, 500, testSeats(), nil)
	sel.Toggle(14)
	sel.Toggle(11)
	sel.Toggle(12)

	sum := sel.Summary()
	if sum.Seats != "1A, 1B, 2B" {
		t.Fatalf("seat list wrong, got %q", sum.Seats)
	}
	if sum.Base != "1500" {
		t.Fatalf("base wrong, got %q", sum.Base)
	}
	if sum.GST != "₹75.00" {
		t.Fatalf("surcharge wrong, got %q", sum.GST)
	}
	if sum.Total != "₹1575.00" {
		t.Fatalf("total wrong, got %q", sum.Total)
	}
}

func TestSummaryEmptySelection(t *testing.T) {
	sel := NewSelection(7, 500, testSeats(), nil)
	sum := sel.Summary()
	if sum.Seats != "No seats selected" {
		t.Fatalf("placeholder missing, got %q", sum.Seats)
	}
	if sum.Total != "₹0.00" {
		t.Fatalf("empty total wrong, got %q", sum.Total)
	}
}

func TestBuildDraftOrdersSeatsByLabel(t *testing.T) {
	sel := NewSelection(7, 500, testSeats(), nil)
	sel.Toggle(14)
	sel.Toggle(11)

	draft, err := sel.BuildDraft()
	if err != nil {
		t.Fatalf("BuildDraft returned error: %v", err)
	}
	if draft.ScheduleID != 7 {
		t.Fatalf("schedule id wrong, got %d", draft.ScheduleID)
	}
	if len(draft.SeatIDs) != 2 || draft.SeatIDs[0] != 11 || draft.SeatIDs[1] != 14 {
		t.Fatalf("seat ids out of order, got %v", draft.SeatIDs)
	}
	if draft.TotalAmount != "₹1050.00" {
		t.Fatalf("total amount wrong, got %q", draft.TotalAmount)
	}
}

func TestBuildDraftRejectsEmptySelection(t *testing.T) {
	sel := NewSelection(7, 500, testSeats(), nil)
	if _, err := sel.BuildDraft(); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApplyCommands(t *testing.T) {
	sel := NewSelection(7, 500, testSeats(), []domain.ID{13})

	res, err := sel.Apply(ToggleSeat{SeatID: 11})
	if err != nil {
		t.Fatalf("toggle command failed: %v", err)
	}
	if !res.Toggled {
		t.Fatalf("free seat toggle should report true")
	}

	res, err = sel.Apply(ToggleSeat{SeatID: 13})
	if err != nil {
		t.Fatalf("booked seat toggle should not error: %v", err)
	}
	if res.Toggled {
		t.Fatalf("booked seat toggle should report false")
	}

	res, err = sel.Apply(SubmitCheckout{})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if res.Draft == nil || len(res.Draft.SeatIDs) != 1 || res.Draft.SeatIDs[0] != 11 {
		t.Fatalf("checkout draft wrong, got %+v", res.Draft)
	}
}
