package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Elephante152/habitat/listing"
	"github.com/Elephante152/habitat/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server represents the API server
type Server struct {
	sessions *session.Store
	intake   *listing.Intake
	server   *http.Server
}

// NewServer creates a new API server listening on addr
func NewServer(sessions *session.Store, intake *listing.Intake, addr string) *Server {
	s := &Server{
		sessions: sessions,
		intake:   intake,
	}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/health", s.handleHealthCheck)
	r.Get("/api/format/temperature", s.handleFormatTemperature)
	r.Post("/api/businesses", s.handleSubmitBusiness)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/input", s.handleInput)
			r.Post("/search", s.handleSearch)
			r.Post("/suggestions/select", s.handleSelectSuggestion)
			r.Put("/unit", s.handleSetUnit)
			r.Put("/tab", s.handleSetTab)
			r.Post("/neighborhood", s.handleSelectNeighborhood)
		})
	})

	return r
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins the API server
func (s *Server) Start() error {
	slog.Info("http listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
