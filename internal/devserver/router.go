package devserver

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server bundles the repositories and settings behind the handlers.
type Server struct {
	Users     UserRepo
	Buses     BusRepo
	Schedules ScheduleRepo
	Seats     SeatRepo
	Bookings  BookingRepo
	JWTSecret []byte
	// Clock is overridable in tests; bookings are stamped with it.
	Clock func() time.Time
}

func NewServer(db *sql.DB, jwtSecret string) *Server {
	return &Server{
		Users:     UserRepo{DB: db},
		Buses:     BusRepo{DB: db},
		Schedules: ScheduleRepo{DB: db},
		Seats:     SeatRepo{DB: db},
		Bookings:  BookingRepo{DB: db},
		JWTSecret: []byte(jwtSecret),
	}
}

func (s *Server) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// NewRouter wires the gin engine: request tracing, CORS for the web pages,
// open reads and token-gated writes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"}
	r.Use(cors.New(corsCfg))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/health", s.Health)

	r.POST("/users/login", s.Login)
	r.POST("/users", s.Register)

	authed := AuthRequired(s.JWTSecret, false)
	admin := AuthRequired(s.JWTSecret, true)

	r.GET("/buses", s.ListBuses)
	r.GET("/buses/:id", s.GetBus)
	r.POST("/buses", admin, s.CreateBus)

	r.GET("/schedules", s.ListSchedules)
	r.GET("/schedules/:id", s.GetSchedule)
	r.POST("/schedules", admin, s.CreateSchedule)
	r.PUT("/schedules/:id", admin, s.UpdateSchedule)
	r.DELETE("/schedules/:id", admin, s.DeleteSchedule)

	r.GET("/seats", s.ListSeats)
	r.POST("/seats/reset/:schedule_id", admin, s.ResetSeats)

	r.GET("/bookings", s.ListBookings)
	r.GET("/bookings/:id", s.GetBooking)
	r.POST("/bookings", authed, s.CreateBooking)

	return r
}
