package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"weather-display/chart"
	"weather-display/logger"
	"weather-display/lookup"
	"weather-display/present"
)

// Searcher runs a city search
type Searcher interface {
	Search(ctx context.Context, city string) (lookup.Report, error)
}

// Server represents the API server
type Server struct {
	searcher Searcher
	router   *mux.Router
	server   *http.Server
	limiter  *rate.Limiter
	now      func() time.Time
}

// Option configures a Server
type Option func(*Server)

// WithRateLimit throttles inbound weather requests to rps with the given burst.
// A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithClock replaces time.Now for the page header date
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer creates a new API server
func NewServer(searcher Searcher, port int, opts ...Option) *Server {
	router := mux.NewRouter()

	s := &Server{
		searcher: searcher,
		router:   router,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	router.Use(requestIDMiddleware)
	router.NotFoundHandler = http.HandlerFunc(handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)

	// Health check
	router.HandleFunc("/api/health", s.handleHealthCheck).Methods(http.MethodGet)

	// Weather routes, throttled
	router.Handle("/api/weather/", s.throttled(s.handleMissingCity)).Methods(http.MethodGet)
	router.Handle("/api/weather/{city}", s.throttled(s.handleGetWeather)).Methods(http.MethodGet)
	router.Handle("/api/weather/{city}/chart", s.throttled(s.handleGetChart)).Methods(http.MethodGet)

	return s
}

// Router exposes the handler, mostly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins the API server
func (s *Server) Start() error {
	logger.Infof("Starting API server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// search runs the lookup and writes the failure response itself when it returns false
func (s *Server) search(w http.ResponseWriter, r *http.Request) (lookup.Report, bool) {
	city := mux.Vars(r)["city"]
	report, err := s.searcher.Search(r.Context(), city)
	if err == nil {
		return report, true
	}

	if errors.Is(err, lookup.ErrEmptyQuery) {
		writeError(w, http.StatusBadRequest, "Location not specified")
		return lookup.Report{}, false
	}

	page := present.NotFound()
	page.RequestID = requestIDFrom(r)
	writeJSON(w, http.StatusNotFound, page)
	return lookup.Report{}, false
}

// handleGetWeather returns the rendered page for a city
func (s *Server) handleGetWeather(w http.ResponseWriter, r *http.Request) {
	report, ok := s.search(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, present.FromReport(report, s.now()))
}

// handleGetChart returns an HTML chart of the daily forecast for a city
func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	report, ok := s.search(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.RenderDaily(w, present.FromReport(report, s.now())); err != nil {
		logger.Errorf("[%s] %v", report.RequestID, err)
	}
}

func (s *Server) handleMissingCity(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusBadRequest, "Location not specified")
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("Error encoding response: %v", err)
	}
}
