package tickets

import (
	"bytes"
	"fmt"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
	"locotranz/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// ETicket renders one resolved journey group as a printable PDF with an
// embedded verification QR. Returns the document bytes and a filename.
func ETicket(g JourneyGroup, user models.User) ([]byte, string, error) {
	if g.Err != nil {
		return nil, "", domain.InternalError{Msg: "group not resolved", Err: g.Err}
	}
	if g.Schedule == nil {
		return nil, "", domain.ValidationError{Field: "group", Msg: "schedule missing"}
	}

	qrPNG, err := qrcode.Encode(qrPayload(g), qrcode.Medium, 256)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "qr generation failed", Err: err}
	}

	sched := g.Schedule
	fare := g.Fare()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "LocoTranz E-Ticket")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, "Booking ID: "+g.RefID())
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s -> %s", sched.Source, sched.Destination))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Departs %s at %s", utils.FormatLongDate(sched.DepartureTime), utils.FormatClock(sched.DepartureTime)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Arrives %s at %s", utils.FormatLongDate(sched.ArrivalTime), utils.FormatClock(sched.ArrivalTime)))
	pdf.Ln(6)
	pdf.Cell(0, 7, "Duration "+utils.FormatDuration(sched.Duration()))
	pdf.Ln(10)

	busName := "LocoTranz #" + sched.BusID.String()
	plate := "N/A"
	if g.Bus != nil {
		busName = g.Bus.DisplayName()
		if g.Bus.PlateNumber != "" {
			plate = g.Bus.PlateNumber
		}
	}
	pdf.Cell(0, 7, "Bus: "+busName)
	pdf.Ln(6)
	pdf.Cell(0, 7, "Plate: "+plate)
	pdf.Ln(6)
	passenger := user.FullName
	if passenger == "" {
		passenger = "Traveler"
	}
	pdf.Cell(0, 7, "Passenger: "+passenger)
	pdf.Ln(6)
	pdf.Cell(0, 7, "Seats: "+utils.JoinSeatLabels(g.SeatLabels))
	pdf.Ln(10)

	// gofpdf core fonts cannot render the rupee sign, so the PDF spells
	// out "Rs." instead of the on-screen currency formatting.
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Base Fare (%d x Rs.%v)  Rs.%v", len(g.SeatIDs), sched.Price, fare.Base))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("GST (5%%)  Rs.%.2f", fare.GST))
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total Paid  Rs.%.2f", fare.Total))

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "pdf generation failed", Err: err}
	}
	return buf.Bytes(), "ticket-" + g.RefID() + ".pdf", nil
}

// qrPayload carries what a gate scanner needs to look the booking up.
func qrPayload(g JourneyGroup) string {
	ids := make([]byte, 0, len(g.BookingIDs)*4)
	for i, id := range g.BookingIDs {
		if i > 0 {
			ids = append(ids, ',')
		}
		ids = append(ids, id.String()...)
	}
	return fmt.Sprintf("%s|%s|%s", g.RefID(), g.ScheduleID.String(), ids)
}
