// Package lookup runs a city search: current conditions and the forecast are
// fetched in parallel and either both succeed or the search fails.
package lookup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"weather-display/datasource"
	"weather-display/forecast"
	"weather-display/logger"
	"weather-display/models"
)

// Report is the outcome of a successful search
type Report struct {
	RequestID string                  `json:"requestId"`
	Query     string                  `json:"query"`
	Current   models.WeatherData      `json:"current"`
	Daily     []models.ForecastSample `json:"daily"`
	Fetched   time.Time               `json:"fetched"`
}

// Service performs searches against a weather provider and a forecast source
type Service struct {
	weather  datasource.WeatherProvider
	forecast datasource.ForecastSource
	selector forecast.Selector
	now      func() time.Time
	timeout  time.Duration
}

// Option configures a Service
type Option func(*Service)

// WithSelector sets the daily selection policy
func WithSelector(selector forecast.Selector) Option {
	return func(s *Service) {
		s.selector = selector
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTimeout bounds a whole search, both requests included
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.timeout = timeout
	}
}

// NewService creates a search service
func NewService(weather datasource.WeatherProvider, source datasource.ForecastSource, opts ...Option) *Service {
	s := &Service{
		weather:  weather,
		forecast: source,
		now:      time.Now,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type requestIDKey struct{}

// WithRequestID attaches a request ID that Search will use instead of generating one
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request ID stored in ctx, if any
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// Search fetches current weather and the forecast for city concurrently.
// Any failure of either request fails the whole search with a *NotFoundError
// and no partial result. There are no retries.
func (s *Service) Search(ctx context.Context, city string) (Report, error) {
	query := strings.TrimSpace(city)
	if query == "" {
		return Report{}, ErrEmptyQuery
	}

	requestID, ok := RequestIDFrom(ctx)
	if !ok {
		requestID = uuid.NewString()
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logger.Debugf("[%s] searching %q via %s and %s", requestID, query, s.weather.Name(), s.forecast.Name())
	started := time.Now()

	var (
		current models.WeatherData
		raw     models.ForecastData
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := s.weather.GetWeather(gctx, query)
		if err != nil {
			return fmt.Errorf("failed to fetch current weather from %s: %w", s.weather.Name(), err)
		}
		current = data
		return nil
	})
	g.Go(func() error {
		data, err := s.forecast.FetchForecast(gctx, query)
		if err != nil {
			return fmt.Errorf("failed to fetch forecast from %s: %w", s.forecast.Name(), err)
		}
		raw = data
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Warnf("[%s] search for %q failed: %v", requestID, query, err)
		return Report{}, &NotFoundError{City: query, Err: err}
	}

	now := s.now()
	daily := s.selector.Select(raw.Samples, now)
	logger.Infof("[%s] search for %q: %d forecast samples, %d daily entries (%s)",
		requestID, query, len(raw.Samples), len(daily), time.Since(started).Round(time.Millisecond))

	return Report{
		RequestID: requestID,
		Query:     query,
		Current:   current,
		Daily:     daily,
		Fetched:   now,
	}, nil
}

// Run drives session through a search: both results go to Loading, then
// both to Ready or both to Failed. A search superseded by a newer Begin on
// the same session leaves the session untouched.
func (s *Service) Run(ctx context.Context, session *Session, city string) error {
	gen := session.Begin(strings.TrimSpace(city))

	report, err := s.Search(ctx, city)
	if err != nil {
		if !session.Fail(gen, err) {
			logger.Debugf("dropping stale failure for %q", city)
		}
		return err
	}

	if !session.Complete(gen, report) {
		logger.Debugf("[%s] dropping stale result for %q", report.RequestID, city)
	}
	return nil
}
