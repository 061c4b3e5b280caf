package devserver

import (
	"testing"
	"time"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSeatLabelsTwoTwoLayout(t *testing.T) {
	labels := SeatLabels(6)
	want := []string{"1A", "1B", "1C", "1D", "2A", "2B"}
	if len(labels) != len(want) {
		t.Fatalf("expected %d labels, got %d", len(want), len(labels))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("label %d wrong: got %q want %q", i, labels[i], want[i])
		}
	}
	if len(SeatLabels(0)) != 0 {
		t.Fatalf("zero seats should produce no labels")
	}
}

func TestBusCreateSeedsSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO buses").
		WithArgs("KL-07 Express", "KL-07-AB-1234", "AC Sleeper", 4, "LocoTranz").
		WillReturnResult(sqlmock.NewResult(2, 1))
	for _, label := range []string{"1A", "1B", "1C", "1D"} {
		mock.ExpectExec("INSERT INTO seats").
			WithArgs(int64(2), label).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}

	bus, err := BusRepo{DB: db}.Create(models.Bus{
		BusNumber:    "KL-07 Express",
		PlateNumber:  "KL-07-AB-1234",
		BusType:      "AC Sleeper",
		TotalSeats:   4,
		OperatorName: "LocoTranz",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if bus.ID != 2 {
		t.Fatalf("bus id not assigned, got %d", bus.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateRejectsTakenSeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(int64(5), int64(11), string(domain.BookingCancelled)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err = BookingRepo{DB: db}.Create(models.BookingRequest{
		UserID: 3, ScheduleID: 5, SeatID: 11,
	}, time.Now())
	if !domain.IsConflict(err) {
		t.Fatalf("taken seat should conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateDefaultsStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 8, 14, 10, 0, 5, 0, time.UTC)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(3), int64(5), int64(11), string(domain.BookingConfirmed), now).
		WillReturnResult(sqlmock.NewResult(42, 1))

	b, err := BookingRepo{DB: db}.Create(models.BookingRequest{
		UserID: 3, ScheduleID: 5, SeatID: 11,
	}, now)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.ID != 42 || b.Status != domain.BookingConfirmed {
		t.Fatalf("booking wrong: %+v", b)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WithArgs("t@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err = UserRepo{DB: db}.CreateUser("t", "Test", "t@example.com", "hash", "user")
	if !domain.IsConflict(err) {
		t.Fatalf("duplicate email should conflict, got %v", err)
	}
}

func TestScheduleDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM schedules").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (ScheduleRepo{DB: db}).Delete(99); !domain.IsNotFound(err) {
		t.Fatalf("missing schedule should be not found, got %v", err)
	}
}

func TestScheduleListFiltersRoute(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	dep := time.Date(2026, 8, 14, 22, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "bus_id", "source", "destination", "departure_time", "arrival_time", "price", "status"}).
		AddRow(5, 2, "Kochi", "Bangalore", dep, dep.Add(8*time.Hour), 500.0, "")
	mock.ExpectQuery(`LOWER\(source\) = LOWER\(\?\) AND LOWER\(destination\) = LOWER\(\?\)`).
		WithArgs("kochi", "BANGALORE").
		WillReturnRows(rows)

	schedules, err := ScheduleRepo{DB: db}.List("kochi", "BANGALORE")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(schedules) != 1 || schedules[0].Source != "Kochi" {
		t.Fatalf("schedules wrong: %+v", schedules)
	}
}
