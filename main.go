// Command locotranz is the terminal front end of the LocoTranz booking
// flow: search buses, pick seats, pay, and view or print tickets, plus the
// operator panel for buses and schedules.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"locotranz/internal/api"
	"locotranz/internal/booking"
	"locotranz/internal/config"
	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
	"locotranz/internal/pages"
	"locotranz/internal/session"
	"locotranz/internal/tickets"

	"github.com/spf13/pflag"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	env := config.LoadEnv()
	store := session.NewStore(env.StatePath)
	notify := pages.LogNotifier{}

	client := &api.Client{
		BaseURL: env.APIBaseURL,
		Timeout: env.HTTPTimeout,
		Token:   store.AuthToken,
		OnUnauthorized: func() {
			_ = store.ClearUser()
			notify.Error("Session expired. Please login again.")
		},
	}

	pageCtx := pages.Ctx{API: client, Session: store, Notify: notify}
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, pageCtx, os.Args[2:])
	case "signup":
		err = runSignup(ctx, pageCtx, os.Args[2:])
	case "logout":
		err = pages.LoginController{Ctx: pageCtx}.Logout()
	case "search":
		err = runSearch(ctx, pageCtx, os.Args[2:])
	case "seats":
		err = runSeats(ctx, pageCtx, os.Args[2:])
	case "pay":
		err = runPay(ctx, pageCtx, os.Args[2:])
	case "tickets":
		err = runTickets(ctx, pageCtx, os.Args[2:])
	case "admin":
		err = runAdmin(ctx, pageCtx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		if domain.IsUnauthorized(err) {
			fmt.Println("Please login first: locotranz login --email you@example.com --password ...")
		}
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Println(`usage: locotranz <command> [flags]

commands:
  login     authenticate and store the session
  signup    create an account
  logout    clear the stored session
  search    list schedules for a route
  seats     show the seat map, select seats and check out
  pay       confirm the pending booking draft
  tickets   list journeys or print e-tickets
  admin     fleet stats, bus and schedule management`)
}

func runLogin(ctx context.Context, pageCtx pages.Ctx, args []string) error {
	flags := pflag.NewFlagSet("login", pflag.ExitOnError)
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	_ = flags.Parse(args)

	ctrl := pages.LoginController{Ctx: pageCtx}
	user, redirect, err := ctrl.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s). Continue with: locotranz %s\n", user.FullName, user.Role, redirect)
	return nil
}

func runSignup(ctx context.Context, pageCtx pages.Ctx, args []string) error {
	flags := pflag.NewFlagSet("signup", pflag.ExitOnError)
	name := flags.String("name", "", "full name")
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "password")
	confirm := flags.String("confirm", "", "password confirmation")
	_ = flags.Parse(args)

	ctrl := pages.LoginController{Ctx: pageCtx}
	return ctrl.Signup(ctx, *name, *email, *password, *confirm)
}

func runSearch(ctx context.Context, pageCtx pages.Ctx, args []string) error {
	flags := pflag.NewFlagSet("search", pflag.ExitOnError)
	from := flags.String("from", "", "source city")
	to := flags.String("to", "", "destination city")
	_ = flags.Parse(args)

	ctrl := pages.SearchController{Ctx: pageCtx}
	cards, err := ctrl.Search(ctx, *from, *to)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Println("No buses found for this route.")
		return nil
	}
	for _, card := range cards {
		fmt.Printf("#%d  %s (%s)  %s %s → %s %s  %s  %s/seat  %d seats  [%s]\n",
			card.ScheduleID, card.BusName, card.BusType,
			card.DepartureClock, card.Source, card.ArrivalClock, card.Destination,
			card.Duration, card.Fare, card.AvailableSeats, card.Status)
	}
	return nil
}

func runSeats(ctx context.Context, pageCtx pages.Ctx, args []string) error {
	flags := pflag.NewFlagSet("seats", pflag.ExitOnError)
	scheduleID := flags.Int64("schedule", 0, "schedule id")
	selectLabels := flags.StringSlice("select", nil, "seat labels to toggle, e.g. 1A,1B")
	checkout := flags.Bool("checkout", false, "build the booking draft and continue to payment")
	_ = flags.Parse(args)

	if *scheduleID <= 0 {
		return domain.ValidationError{Field: "schedule", Msg: "required"}
	}

	ctrl := &pages.SeatMapController{Ctx: pageCtx}
	if err := ctrl.Load(ctx, domain.ID(*scheduleID)); err != nil {
		return err
	}

	byLabel := map[string]domain.ID{}
	for _, seat := range ctrl.Seats() {
		byLabel[strings.ToUpper(seat.Label)] = seat.ID
	}
	for _, label := range *selectLabels {
		id, ok := byLabel[strings.ToUpper(strings.TrimSpace(label))]
		if !ok {
			return domain.ValidationError{Field: "select", Msg: "unknown seat " + label}
		}
		res, err := ctrl.Apply(booking.ToggleSeat{SeatID: id})
		if err != nil {
			return err
		}
		if !res.Toggled {
			fmt.Printf("Seat %s is already booked.\n", label)
		}
	}

	printSeatMap(ctrl)

	if *checkout {
		res, err := ctrl.Apply(booking.SubmitCheckout{})
		if err != nil {
			return err
		}
		fmt.Printf("Draft saved for schedule #%d, total %s. Continue with: locotranz pay\n",
			res.Draft.ScheduleID, res.Draft.TotalAmount)
	}
	return nil
}

func printSeatMap(ctrl *pages.SeatMapController) {
	sched := ctrl.Schedule()
	fmt.Printf("%s: %s → %s\n", ctrl.BusName(), sched.Source, sched.Destination)
	for i, seat := range ctrl.Seats() {
		mark := " "
		if seat.Booked {
			mark = "x"
		} else if seat.Selected {
			mark = "*"
		}
		fmt.Printf("[%s]%-4s", mark, seat.Label)
		if (i+1)%4 == 0 {
			fmt.Println()
		} else if (i+1)%2 == 0 {
			fmt.Print("   ")
		}
	}
	fmt.Println()
	summary := ctrl.Summary()
	fmt.Printf("Seats: %s\nBase: %s  GST: %s  Total: %s\n", summary.Seats, summary.Base, summary.GST, summary.Total)
}

func runPay(ctx context.Context, pageCtx pages.Ctx, args []string) error {
	flags := pflag.NewFlagSet("pay", pflag.ExitOnError)
	qrPath := flags.String("qr", "", "write the UPI QR code PNG to this path before paying")
	_ = flags.Parse(args)

	ctrl := &pages.PaymentController{Ctx: pageCtx}
	draft, err := ctrl.Draft()
	if err != nil {
		return err
	}
	fmt.Printf("Paying %s for %d seat(s) on %s → %s\n",
		draft.TotalAmount, len(draft.SeatIDs), draft.Source, draft.Destination)
	fmt.Println("UPI: " + pages.UPILink(draft))

	if *qrPath != "" {
		png, err := pages.UPIQR(draft)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*qrPath, png, 0o644); err != nil {
			return err
		}
		fmt.Println("QR code written to " + *qrPath)
	}

	ids, err := ctrl.Pay(ctx)
	if err != nil {
		return err
	}

	groups, err := pages.TicketsController{Ctx: pageCtx}.ByBookingIDs(ctx, ids)
	if err != nil {
		return err
	}
	printCards(pages.Cards(groups))
	return nil
}

func runTickets(ctx context.Context, pageCtx pages.Ctx, args []string) error {
	flags := pflag.NewFlagSet("tickets", pflag.ExitOnError)
	ids := flags.Int64Slice("ids", nil, "specific booking ids instead of the full history")
	pdfDir := flags.String("pdf", "", "also write e-ticket PDFs into this directory")
	_ = flags.Parse(args)

	ctrl := pages.TicketsController{Ctx: pageCtx}

	var (
		groups []tickets.JourneyGroup
		err    error
	)
	if len(*ids) > 0 {
		bookingIDs := make([]domain.ID, 0, len(*ids))
		for _, id := range *ids {
			bookingIDs = append(bookingIDs, domain.ID(id))
		}
		groups, err = ctrl.ByBookingIDs(ctx, bookingIDs)
	} else {
		groups, err = ctrl.My(ctx)
	}
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("No booking history found.")
		return nil
	}

	printCards(pages.Cards(groups))

	if *pdfDir != "" {
		user, _, err := pageCtx.Session.User()
		if err != nil {
			return err
		}
		for _, g := range groups {
			if g.Err != nil {
				continue
			}
			doc, name, err := tickets.ETicket(g, user)
			if err != nil {
				return err
			}
			path := filepath.Join(*pdfDir, name)
			if err := os.WriteFile(path, doc, 0o644); err != nil {
				return err
			}
			fmt.Println("Wrote " + path)
		}
	}
	return nil
}

func runAdmin(ctx context.Context, pageCtx pages.Ctx, args []string) error {
	if len(args) < 1 {
		fmt.Println(`usage: locotranz admin <stats|schedules|add-bus|save-schedule|delete-schedule|reset> [flags]`)
		os.Exit(2)
	}
	ctrl := pages.AdminController{Ctx: pageCtx}

	switch args[0] {
	case "stats":
		stats, err := ctrl.FleetStats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Running: %d  Total Buses: %d  Scheduled: %d  Maintenance: %d\n",
			stats.Running, stats.TotalBuses, stats.Scheduled, stats.Maintenance)
		return nil

	case "schedules":
		flags := pflag.NewFlagSet("admin schedules", pflag.ExitOnError)
		status := flags.String("status", "", "filter by status")
		_ = flags.Parse(args[1:])
		rows, err := ctrl.Schedules(ctx, *status)
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Printf("#%d  %s  %s  %s → %s  %s  %d booked  [%s]\n",
				row.ID, row.BusLabel, row.Route, row.Departure, row.Arrival, row.Fare, row.Booked, row.Status)
		}
		return nil

	case "add-bus":
		flags := pflag.NewFlagSet("admin add-bus", pflag.ExitOnError)
		number := flags.String("number", "", "bus number, e.g. KL-07 Express")
		plate := flags.String("plate", "", "registration plate")
		busType := flags.String("type", "AC Sleeper", "bus type")
		seats := flags.Int("seats", 40, "total seats")
		operator := flags.String("operator", "", "operator name")
		_ = flags.Parse(args[1:])
		bus, err := ctrl.CreateBus(ctx, models.Bus{
			BusNumber:    *number,
			PlateNumber:  *plate,
			BusType:      *busType,
			TotalSeats:   *seats,
			OperatorName: *operator,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Bus #%d created.\n", bus.ID)
		return nil

	case "save-schedule":
		flags := pflag.NewFlagSet("admin save-schedule", pflag.ExitOnError)
		id := flags.Int64("id", 0, "schedule id to update; omit to create")
		busID := flags.Int64("bus", 0, "bus id")
		source := flags.String("from", "", "source city")
		destination := flags.String("to", "", "destination city")
		departure := flags.String("departure", "", "departure time, RFC 3339")
		arrival := flags.String("arrival", "", "arrival time, RFC 3339")
		price := flags.Float64("price", 0, "price per seat")
		status := flags.String("status", "", "stored status override")
		_ = flags.Parse(args[1:])

		dep, err := time.Parse(time.RFC3339, *departure)
		if err != nil {
			return domain.ValidationError{Field: "departure", Msg: "must be RFC 3339", Err: err}
		}
		arr, err := time.Parse(time.RFC3339, *arrival)
		if err != nil {
			return domain.ValidationError{Field: "arrival", Msg: "must be RFC 3339", Err: err}
		}
		sched, err := ctrl.SaveSchedule(ctx, models.Schedule{
			ID:            domain.ID(*id),
			BusID:         domain.ID(*busID),
			Source:        *source,
			Destination:   *destination,
			DepartureTime: dep,
			ArrivalTime:   arr,
			Price:         *price,
			Status:        domain.Status(*status),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Schedule #%d saved.\n", sched.ID)
		return nil

	case "delete-schedule":
		flags := pflag.NewFlagSet("admin delete-schedule", pflag.ExitOnError)
		id := flags.Int64("id", 0, "schedule id")
		_ = flags.Parse(args[1:])
		return ctrl.DeleteSchedule(ctx, domain.ID(*id))

	case "reset":
		flags := pflag.NewFlagSet("admin reset", pflag.ExitOnError)
		scheduleID := flags.Int64("schedule", 0, "schedule id whose bookings to clear")
		_ = flags.Parse(args[1:])
		return ctrl.ResetSeats(ctx, domain.ID(*scheduleID))

	default:
		return domain.ValidationError{Field: "command", Msg: "unknown admin action " + args[0]}
	}
}

func printCards(cards []pages.TicketCard) {
	for _, card := range cards {
		fmt.Println("----------------------------------------")
		fmt.Println("Booking ID: " + card.RefID)
		if card.Err != "" {
			fmt.Println(card.Err)
			continue
		}
		fmt.Printf("%s (%s)\n", card.Route, card.Duration)
		fmt.Printf("Bus %s  Plate %s\n", card.BusName, card.Plate)
		fmt.Printf("Departs %s  Arrives %s\n", card.Departure, card.Arrival)
		fmt.Printf("Seats: %s  Status: %s\n", card.Seats, card.Status)
		fmt.Printf("Base %s  GST %s  Total Paid %s\n", card.BaseFare, card.GST, card.Total)
		fmt.Printf("Booked on %s\n", card.BookedOn)
	}
}
