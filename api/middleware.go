package api

import (
	"net/http"

	"github.com/google/uuid"

	"weather-display/logger"
	"weather-display/lookup"
)

// RequestIDHeader carries the per-request ID in both directions
const RequestIDHeader = "X-Request-ID"

// requestIDMiddleware reuses the caller's request ID or assigns a new one and
// makes it available to the lookup layer for log correlation
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		logger.Debugf("[%s] %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(lookup.WithRequestID(r.Context(), id)))
	})
}

func requestIDFrom(r *http.Request) string {
	id, _ := lookup.RequestIDFrom(r.Context())
	return id
}

func (s *Server) throttled(h http.HandlerFunc) http.Handler {
	return s.throttleMiddleware(h)
}

// throttleMiddleware rejects requests beyond the configured inbound rate
func (s *Server) throttleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			logger.Warnf("[%s] throttled %s", requestIDFrom(r), r.URL.Path)
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
