package devserver

import (
	"net/http"
	"strconv"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
	"locotranz/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondError sends a standard error payload with request_id included.
func respondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"error":      message,
		"request_id": GetRequestID(c),
	}
	if err != nil {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// respondDomainError maps domain errors to HTTP responses.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal error", err)
	}
}

func pathID(c *gin.Context, name string) (domain.ID, bool) {
	raw, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || raw <= 0 {
		respondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return domain.ID(raw), true
}

func queryID(c *gin.Context, name string) domain.ID {
	raw, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || raw <= 0 {
		return 0
	}
	return domain.ID(raw)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "locotranz dev backend running"})
}

func (s *Server) ListBuses(c *gin.Context) {
	buses, err := s.Buses.List()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, buses)
}

func (s *Server) GetBus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	bus, err := s.Buses.GetByID(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bus)
}

func (s *Server) CreateBus(c *gin.Context) {
	var bus models.Bus
	if err := c.ShouldBindJSON(&bus); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if utils.TrimOrEmpty(bus.BusNumber) == "" {
		respondError(c, http.StatusBadRequest, "bus_number required", nil)
		return
	}
	if bus.TotalSeats <= 0 {
		respondError(c, http.StatusBadRequest, "total_seats must be positive", nil)
		return
	}
	created, err := s.Buses.Create(bus)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.LogEvent(GetRequestID(c), "bus", "create", "bus_id="+created.ID.String())
	c.JSON(http.StatusCreated, created)
}

// withAvailability annotates schedules with the seats still free.
func (s *Server) withAvailability(schedules []models.Schedule) []models.Schedule {
	for i, sched := range schedules {
		bus, err := s.Buses.GetByID(sched.BusID)
		if err != nil {
			continue
		}
		bookings, err := s.Bookings.List(0, sched.ID)
		if err != nil {
			continue
		}
		taken := 0
		for _, b := range bookings {
			if b.Status != domain.BookingCancelled {
				taken++
			}
		}
		free := bus.TotalSeats - taken
		if free < 0 {
			free = 0
		}
		schedules[i].AvailableSeats = free
	}
	return schedules
}

func (s *Server) ListSchedules(c *gin.Context) {
	schedules, err := s.Schedules.List(c.Query("source"), c.Query("destination"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.withAvailability(schedules))
}

func (s *Server) GetSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sched, err := s.Schedules.GetByID(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

func (s *Server) validateSchedule(c *gin.Context, sched models.Schedule) bool {
	switch {
	case sched.BusID == 0:
		respondError(c, http.StatusBadRequest, "bus_id required", nil)
	case utils.TrimOrEmpty(sched.Source) == "" || utils.TrimOrEmpty(sched.Destination) == "":
		respondError(c, http.StatusBadRequest, "source and destination required", nil)
	case !sched.ArrivalTime.After(sched.DepartureTime):
		respondError(c, http.StatusBadRequest, "arrival must be after departure", nil)
	case sched.Price < 0:
		respondError(c, http.StatusBadRequest, "price must not be negative", nil)
	default:
		if _, err := s.Buses.GetByID(sched.BusID); err != nil {
			respondDomainError(c, err)
			return false
		}
		return true
	}
	return false
}

func (s *Server) CreateSchedule(c *gin.Context) {
	var sched models.Schedule
	if err := c.ShouldBindJSON(&sched); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if !s.validateSchedule(c, sched) {
		return
	}
	created, err := s.Schedules.Create(sched)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.LogEvent(GetRequestID(c), "schedule", "create", "schedule_id="+created.ID.String())
	c.JSON(http.StatusCreated, created)
}

func (s *Server) UpdateSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var sched models.Schedule
	if err := c.ShouldBindJSON(&sched); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	sched.ID = id
	if !s.validateSchedule(c, sched) {
		return
	}
	updated, err := s.Schedules.Update(sched)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.Schedules.Delete(id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListSeats(c *gin.Context) {
	seats, err := s.Seats.List(queryID(c, "bus_id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, seats)
}

// ResetSeats wipes the schedule's bookings so every seat reads available
// again.
func (s *Server) ResetSeats(c *gin.Context) {
	id, ok := pathID(c, "schedule_id")
	if !ok {
		return
	}
	if _, err := s.Schedules.GetByID(id); err != nil {
		respondDomainError(c, err)
		return
	}
	deleted, err := s.Bookings.DeleteBySchedule(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.LogEvent(GetRequestID(c), "seats", "reset", "schedule_id="+id.String())
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (s *Server) ListBookings(c *gin.Context) {
	bookings, err := s.Bookings.List(queryID(c, "user_id"), queryID(c, "schedule_id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (s *Server) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CreateBooking books one seat on one schedule for the authenticated user.
// The user id in the payload is ignored in favor of the token identity.
func (s *Server) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if req.ScheduleID == 0 || req.SeatID == 0 {
		respondError(c, http.StatusBadRequest, "schedule_id and seat_id required", nil)
		return
	}
	if id := AuthUserID(c); id != 0 {
		req.UserID = id
	}
	if _, err := s.Schedules.GetByID(req.ScheduleID); err != nil {
		respondDomainError(c, err)
		return
	}

	created, err := s.Bookings.Create(req, s.now())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.LogEvent(GetRequestID(c), "booking", "create", "booking_id="+created.ID.String())
	c.JSON(http.StatusCreated, created)
}
