package demoapi

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carelink/carelink/internal/session"
)

const tokenTTL = 24 * time.Hour

// Options configures the demo fixture server.
type Options struct {
	// Secret signs the demo tokens. Not a production credential.
	Secret string
	// ResetEvery reseeds the store periodically so shared demo instances
	// return to a known state. Zero disables the reset job.
	ResetEvery time.Duration
	Logger     zerolog.Logger
}

// Server is the self-contained fixture backend: seeded in-memory data
// behind the same HTTP contract the real platform exposes. It exists for
// local development, demos, and end-to-end tests of the client.
type Server struct {
	echo    *echo.Echo
	store   *Store
	secret  []byte
	log     zerolog.Logger
	jobs    *Scheduler
	resetEv time.Duration
}

func NewServer(opts Options) *Server {
	s := &Server{
		echo:    echo.New(),
		store:   NewStore(),
		secret:  []byte(opts.Secret),
		log:     opts.Logger,
		resetEv: opts.ResetEvery,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(requestID())
	s.echo.Use(requestLogger(s.log))
	s.echo.Use(recovery(s.log))

	s.routes()
	return s
}

// Store exposes the seeded state, mainly for tests that need fixture IDs.
func (s *Server) Store() *Store { return s.store }

// Handler returns the HTTP handler, for httptest servers.
func (s *Server) Handler() *echo.Echo { return s.echo }

func (s *Server) routes() {
	e := s.echo

	e.GET("/health", s.handleHealth)

	// Auth
	e.POST("/api/user/login/", s.handleLogin)
	e.POST("/api/user/register/", s.handleRegister)

	auth := e.Group("", RequireAuth(s.secret))

	// Patient profile
	auth.GET("/api/user/profile/", s.handlePatientProfile)
	auth.PUT("/api/user/profile/", s.handleUpdatePatientProfile)

	// Appointments and prescriptions
	auth.GET("/api/appointment/appointments/", s.handleListAppointments)
	auth.GET("/api/appointment/appointments/:id/", s.handleGetAppointment)
	auth.POST("/api/appointment/appointments/:id/cancel/", s.handleCancelAppointment)
	auth.GET("/api/appointment/prescriptions/", s.handleListPrescriptions)
	auth.GET("/api/appointment/prescriptions/:id/", s.handleGetPrescription)
	auth.GET("/api/appointment/prescriptions/:id/download/", s.handleDownloadPrescription)

	// Admin analytics
	admin := auth.Group("", RequireRole(session.RoleAdmin))
	admin.GET("/api/appointment/overview/", s.handleOverview)
	admin.GET("/api/appointment/stats/", s.handleStats)

	// Admin doctor management
	admin.POST("/api/doctor/doctors/create/", s.handleCreateDoctor)
	admin.GET("/api/doctor/doctors/", s.handleListDoctors)
	admin.GET("/api/doctor/doctors/:id/", s.handleGetDoctor)
	admin.DELETE("/api/doctor/doctors/:id/", s.handleDeleteDoctor)

	// Doctor self profile
	doctor := auth.Group("", RequireRole(session.RoleDoctor))
	doctor.GET("/api/doctor/doctor/profile/", s.handleDoctorProfile)
	doctor.PUT("/api/doctor/doctor/profile/", s.handleUpdateDoctorProfile)

	// Health tips: everyone reads, doctors write
	auth.GET("/api/doctor/tips/", s.handleListTips)
	auth.GET("/api/doctor/tips/:id/", s.handleGetTip)
	doctor.POST("/api/doctor/tips/", s.handleCreateTip)
	doctor.PUT("/api/doctor/tips/:id/", s.handleUpdateTip)

	// Public doctor profile and reviews. Registered after the more
	// specific /api/doctor/ routes; echo matches static segments first.
	auth.GET("/api/doctor/:id/", s.handlePublicDoctorProfile)
	auth.GET("/api/doctor/:id/reviews/", s.handleListReviews)
	auth.POST("/api/doctor/:id/reviews/", s.handleSubmitReview)

	// Pharmacy
	pharm := auth.Group("", RequireRole(session.RolePharmacist, session.RoleAdmin))
	pharm.GET("/api/pharmacy/products/", s.handleListProducts)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(200, map[string]string{"status": "ok"})
}

// Start runs the server and its background jobs until the listener fails.
func (s *Server) Start(addr string) error {
	s.jobs = NewScheduler(s.store, s.resetEv, s.log)
	s.jobs.Start()
	s.log.Info().Str("addr", addr).Msg("demo api listening")
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.jobs != nil {
		s.jobs.Stop()
	}
	return s.echo.Shutdown(ctx)
}
