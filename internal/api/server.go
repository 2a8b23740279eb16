package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pressid/mission-orders/internal/config"
	"github.com/pressid/mission-orders/internal/core/ports"
	"github.com/pressid/mission-orders/internal/health"
	"github.com/pressid/mission-orders/internal/timeapi"
)

const authRealm = "mission-orders"

// Server holds the handlers of the mission orders http api
type Server struct {
	cfg           *config.Configuration
	assignments   ports.AssignmentService
	verifications ports.VerificationService
	health        *health.Status
	location      *time.Location
	// Now is the clock used to compute the live status of assignments
	Now func() time.Time
}

// NewServer is a Server constructor
func NewServer(cfg *config.Configuration, assignments ports.AssignmentService, verifications ports.VerificationService, hc *health.Status) *Server {
	loc, err := cfg.Issuer.TimeLocation()
	if err != nil {
		loc = time.UTC
	}
	return &Server{
		cfg:           cfg,
		assignments:   assignments,
		verifications: verifications,
		health:        hc,
		location:      loc,
		Now:           time.Now,
	}
}

// Register adds the api routes to r. Verification and status are public, the rest require basic auth.
func (s *Server) Register(r chi.Router) {
	r.Get("/status", s.Health)
	r.Post("/v1/verifications", s.Verify)

	// without a configured user every protected request is rejected
	creds := map[string]string{}
	if s.cfg.HTTPBasicAuth.User != "" {
		creds[s.cfg.HTTPBasicAuth.User] = s.cfg.HTTPBasicAuth.Password
	}
	r.Group(func(r chi.Router) {
		r.Use(middleware.BasicAuth(authRealm, creds))
		r.Post("/v1/assignments", s.CreateAssignment)
		r.Get("/v1/assignments", s.GetAssignments)
		r.Get("/v1/assignments/{id}", s.GetAssignment)
		r.Get("/v1/assignments/{id}/document", s.GetAssignmentDocument)
		r.Get("/v1/assignments/{id}/verifications", s.GetAssignmentVerifications)
		r.Get("/v1/stats", s.GetStats)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusNotFound, GenericErrorMessage{Message: "not found"})
	})
}

// Health returns whether the database and the cache answer
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]bool{}
	if s.health != nil {
		status = s.health.Status(r.Context())
	}
	code := http.StatusOK
	if !health.Healthy(status) {
		code = http.StatusServiceUnavailable
	}
	writeJSON(r.Context(), w, code, status)
}

func (s *Server) today() timeapi.Date {
	return timeapi.DateOf(s.Now(), s.location)
}
