package devserver

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
)

// SeatLabels generates the 2-2 layout labels ("1A".."1D", "2A"...) for a
// new bus. Leftover seats beyond a full row still get labels.
func SeatLabels(total int) []string {
	const perRow = 4
	letters := []string{"A", "B", "C", "D"}
	labels := make([]string, 0, total)
	for i := 0; i < total; i++ {
		row := i/perRow + 1
		labels = append(labels, fmt.Sprintf("%d%s", row, letters[i%perRow]))
	}
	return labels
}

type UserRepo struct {
	DB *sql.DB
}

// CreateUser inserts a user and reports a conflict when the email is
// already registered.
func (r UserRepo) CreateUser(name, fullName, email, passwordHash, role string) (models.User, error) {
	var exists int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&exists); err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	if exists > 0 {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	res, err := r.DB.Exec(`INSERT INTO users (name, full_name, email, password_hash, role) VALUES (?,?,?,?,?)`,
		name, fullName, email, passwordHash, role)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return models.User{ID: domain.ID(id), Name: name, FullName: fullName, Email: email, Role: role}, nil
}

// FindByEmail returns the user plus the stored password hash.
func (r UserRepo) FindByEmail(email string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.DB.QueryRow(`SELECT id, name, full_name, email, password_hash, role FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.FullName, &u.Email, &hash, &u.Role)
	if err == sql.ErrNoRows {
		return models.User{}, "", domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, "", domain.InternalError{Err: err}
	}
	return u, hash, nil
}

type BusRepo struct {
	DB *sql.DB
}

func (r BusRepo) List() ([]models.Bus, error) {
	rows, err := r.DB.Query(`SELECT id, bus_number, plate_number, bus_type, total_seats, operator_name FROM buses ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	buses := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(&b.ID, &b.BusNumber, &b.PlateNumber, &b.BusType, &b.TotalSeats, &b.OperatorName); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		buses = append(buses, b)
	}
	return buses, rows.Err()
}

func (r BusRepo) GetByID(id domain.ID) (models.Bus, error) {
	var b models.Bus
	err := r.DB.QueryRow(`SELECT id, bus_number, plate_number, bus_type, total_seats, operator_name FROM buses WHERE id = ?`, int64(id)).
		Scan(&b.ID, &b.BusNumber, &b.PlateNumber, &b.BusType, &b.TotalSeats, &b.OperatorName)
	if err == sql.ErrNoRows {
		return models.Bus{}, domain.NotFoundError{Resource: "bus"}
	}
	if err != nil {
		return models.Bus{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// Create inserts the bus and seeds one seat row per position.
func (r BusRepo) Create(b models.Bus) (models.Bus, error) {
	res, err := r.DB.Exec(`INSERT INTO buses (bus_number, plate_number, bus_type, total_seats, operator_name) VALUES (?,?,?,?,?)`,
		b.BusNumber, b.PlateNumber, b.BusType, b.TotalSeats, b.OperatorName)
	if err != nil {
		return models.Bus{}, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	b.ID = domain.ID(id)

	for _, label := range SeatLabels(b.TotalSeats) {
		if _, err := r.DB.Exec(`INSERT INTO seats (bus_id, seat_label) VALUES (?,?)`, id, label); err != nil {
			return models.Bus{}, domain.InternalError{Err: err}
		}
	}
	return b, nil
}

type SeatRepo struct {
	DB *sql.DB
}

// List returns seats, optionally narrowed to one bus.
func (r SeatRepo) List(busID domain.ID) ([]models.Seat, error) {
	query := `SELECT id, bus_id, seat_label FROM seats`
	args := []any{}
	if busID != 0 {
		query += ` WHERE bus_id = ?`
		args = append(args, int64(busID))
	}
	query += ` ORDER BY bus_id, seat_label`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	seats := []models.Seat{}
	for rows.Next() {
		var s models.Seat
		if err := rows.Scan(&s.ID, &s.BusID, &s.SeatLabel); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

type ScheduleRepo struct {
	DB *sql.DB
}

const scheduleCols = `id, bus_id, source, destination, departure_time, arrival_time, price, status`

func scanSchedule(row interface{ Scan(...any) error }) (models.Schedule, error) {
	var (
		s      models.Schedule
		status string
	)
	err := row.Scan(&s.ID, &s.BusID, &s.Source, &s.Destination, &s.DepartureTime, &s.ArrivalTime, &s.Price, &status)
	if err != nil {
		return models.Schedule{}, err
	}
	s.Status = domain.Status(status)
	return s, nil
}

// List filters case-insensitively by route endpoints when given.
func (r ScheduleRepo) List(source, destination string) ([]models.Schedule, error) {
	query := `SELECT ` + scheduleCols + ` FROM schedules`
	clauses := []string{}
	args := []any{}
	if source != "" {
		clauses = append(clauses, `LOWER(source) = LOWER(?)`)
		args = append(args, source)
	}
	if destination != "" {
		clauses = append(clauses, `LOWER(destination) = LOWER(?)`)
		args = append(args, destination)
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY departure_time`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	schedules := []models.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r ScheduleRepo) GetByID(id domain.ID) (models.Schedule, error) {
	s, err := scanSchedule(r.DB.QueryRow(`SELECT `+scheduleCols+` FROM schedules WHERE id = ?`, int64(id)))
	if err == sql.ErrNoRows {
		return models.Schedule{}, domain.NotFoundError{Resource: "schedule"}
	}
	if err != nil {
		return models.Schedule{}, domain.InternalError{Err: err}
	}
	return s, nil
}

func (r ScheduleRepo) Create(s models.Schedule) (models.Schedule, error) {
	res, err := r.DB.Exec(`INSERT INTO schedules (bus_id, source, destination, departure_time, arrival_time, price, status) VALUES (?,?,?,?,?,?,?)`,
		int64(s.BusID), s.Source, s.Destination, s.DepartureTime, s.ArrivalTime, s.Price, string(s.Status))
	if err != nil {
		return models.Schedule{}, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	s.ID = domain.ID(id)
	return s, nil
}

func (r ScheduleRepo) Update(s models.Schedule) (models.Schedule, error) {
	res, err := r.DB.Exec(`UPDATE schedules SET bus_id=?, source=?, destination=?, departure_time=?, arrival_time=?, price=?, status=? WHERE id=?`,
		int64(s.BusID), s.Source, s.Destination, s.DepartureTime, s.ArrivalTime, s.Price, string(s.Status), int64(s.ID))
	if err != nil {
		return models.Schedule{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(s.ID); err != nil {
			return models.Schedule{}, err
		}
	}
	return s, nil
}

func (r ScheduleRepo) Delete(id domain.ID) error {
	res, err := r.DB.Exec(`DELETE FROM schedules WHERE id = ?`, int64(id))
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "schedule"}
	}
	return nil
}

type BookingRepo struct {
	DB *sql.DB
}

const bookingCols = `id, user_id, schedule_id, seat_id, status, booking_date`

// List filters by user and/or schedule when ids are non-zero.
func (r BookingRepo) List(userID, scheduleID domain.ID) ([]models.Booking, error) {
	query := `SELECT ` + bookingCols + ` FROM bookings`
	clauses := []string{}
	args := []any{}
	if userID != 0 {
		clauses = append(clauses, `user_id = ?`)
		args = append(args, int64(userID))
	}
	if scheduleID != 0 {
		clauses = append(clauses, `schedule_id = ?`)
		args = append(args, int64(scheduleID))
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY booking_date, id`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var (
			b      models.Booking
			status string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.ScheduleID, &b.SeatID, &status, &b.BookingDate); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		b.Status = domain.Status(status)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r BookingRepo) GetByID(id domain.ID) (models.Booking, error) {
	var (
		b      models.Booking
		status string
	)
	err := r.DB.QueryRow(`SELECT `+bookingCols+` FROM bookings WHERE id = ?`, int64(id)).
		Scan(&b.ID, &b.UserID, &b.ScheduleID, &b.SeatID, &status, &b.BookingDate)
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	b.Status = domain.Status(status)
	return b, nil
}

// Create enforces the one-seat-one-booking rule per schedule: a seat with
// any non-cancelled booking cannot be booked again.
func (r BookingRepo) Create(req models.BookingRequest, now time.Time) (models.Booking, error) {
	var taken int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings WHERE schedule_id = ? AND seat_id = ? AND status <> ?`,
		int64(req.ScheduleID), int64(req.SeatID), string(domain.BookingCancelled)).Scan(&taken)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if taken > 0 {
		return models.Booking{}, domain.ConflictError{Resource: "seat", Msg: "already booked"}
	}

	status := req.Status
	if status == "" {
		status = domain.BookingConfirmed
	}
	res, err := r.DB.Exec(`INSERT INTO bookings (user_id, schedule_id, seat_id, status, booking_date) VALUES (?,?,?,?,?)`,
		int64(req.UserID), int64(req.ScheduleID), int64(req.SeatID), string(status), now)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return models.Booking{
		ID:          domain.ID(id),
		UserID:      req.UserID,
		ScheduleID:  req.ScheduleID,
		SeatID:      req.SeatID,
		Status:      status,
		BookingDate: now,
	}, nil
}

// DeleteBySchedule clears every booking on a schedule (the admin seat
// reset).
func (r BookingRepo) DeleteBySchedule(scheduleID domain.ID) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM bookings WHERE schedule_id = ?`, int64(scheduleID))
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	n, _ := res.RowsAffected()
	return n, nil
}
