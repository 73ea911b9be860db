package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-display/lookup"
	"weather-display/models"
	"weather-display/present"
)

type fakeSearcher struct {
	mu      sync.Mutex
	queries []string
	ids     []string
	fn      func(city string) (lookup.Report, error)
}

func (f *fakeSearcher) Search(ctx context.Context, city string) (lookup.Report, error) {
	id, _ := lookup.RequestIDFrom(ctx)
	f.mu.Lock()
	f.queries = append(f.queries, city)
	f.ids = append(f.ids, id)
	f.mu.Unlock()
	report, err := f.fn(city)
	report.RequestID = id
	return report, err
}

var fixedNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func londonReport(city string) (lookup.Report, error) {
	return lookup.Report{
		Query: city,
		Current: models.WeatherData{
			City:                 "London",
			Country:              "GB",
			Temperature:          11.6,
			WindSpeed:            4.1,
			ConditionMain:        "Rain",
			ConditionIcon:        "10d",
			ConditionDescription: "light rain",
		},
		Daily: []models.ForecastSample{
			{Timestamp: time.Date(2024, time.March, 11, 15, 0, 0, 0, time.UTC), Temperature: 9.4, ConditionIcon: "04d"},
			{Timestamp: time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC), Temperature: 6.5, ConditionIcon: "01n"},
		},
	}, nil
}

func newTestServer(searcher Searcher, opts ...Option) *Server {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewServer(searcher, 0, opts...)
}

func get(t *testing.T, s *Server, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v[0])
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestGetWeather(t *testing.T) {
	searcher := &fakeSearcher{fn: londonReport}
	s := newTestServer(searcher)

	rec := get(t, s, "/api/weather/London", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var page present.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, "ready", page.Status)
	assert.Equal(t, present.BackgroundRainy, page.Background)
	require.NotNil(t, page.Current)
	assert.Equal(t, "London", page.Current.City)
	assert.Equal(t, "12°C", page.Current.TempLabel)
	assert.Equal(t, "LIGHT RAIN", page.Current.Description)
	assert.Equal(t, "Sunday 10 March", page.Current.Date)
	require.Len(t, page.Forecast, 2)
	assert.Equal(t, "Monday", page.Forecast[0].Weekday)
	assert.Equal(t, "Mar 12", page.Forecast[1].Date)
	assert.Equal(t, []string{"London"}, searcher.queries)
}

func TestGetWeather_DecodedCity(t *testing.T) {
	searcher := &fakeSearcher{fn: londonReport}
	s := newTestServer(searcher)

	rec := get(t, s, "/api/weather/New%20York", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"New York"}, searcher.queries)
}

func TestGetWeather_NotFound(t *testing.T) {
	causes := []error{
		&lookup.NotFoundError{City: "Atlantis", Err: errors.New("city not found")},
		context.DeadlineExceeded,
		errors.New("failed to parse response"),
	}
	for _, cause := range causes {
		t.Run(cause.Error(), func(t *testing.T) {
			err := cause
			s := newTestServer(&fakeSearcher{fn: func(string) (lookup.Report, error) {
				return lookup.Report{}, err
			}})

			rec := get(t, s, "/api/weather/Atlantis", nil)
			require.Equal(t, http.StatusNotFound, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "City not found", body["error"])
			assert.Equal(t, "failed", body["status"])
			assert.NotContains(t, body, "current")
		})
	}
}

func TestGetWeather_EmptyCity(t *testing.T) {
	searcher := &fakeSearcher{fn: func(city string) (lookup.Report, error) {
		return lookup.Report{}, lookup.ErrEmptyQuery
	}}
	s := newTestServer(searcher)

	rec := get(t, s, "/api/weather/", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, searcher.queries)

	rec = get(t, s, "/api/weather/%20%20", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Location not specified"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	searcher := &fakeSearcher{fn: londonReport}
	s := newTestServer(searcher)

	t.Run("generated", func(t *testing.T) {
		rec := get(t, s, "/api/weather/London", nil)
		id := rec.Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)

		var page present.Page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, id, page.RequestID)
	})

	t.Run("propagated", func(t *testing.T) {
		header := http.Header{RequestIDHeader: []string{"req-123"}}
		rec := get(t, s, "/api/weather/London", header)
		assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-123", searcher.ids[len(searcher.ids)-1])
	})

	t.Run("on failure", func(t *testing.T) {
		failing := newTestServer(&fakeSearcher{fn: func(string) (lookup.Report, error) {
			return lookup.Report{}, errors.New("boom")
		}})
		header := http.Header{RequestIDHeader: []string{"req-404"}}
		rec := get(t, failing, "/api/weather/London", header)

		var page present.Page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, "req-404", page.RequestID)
	})
}

func TestThrottle(t *testing.T) {
	searcher := &fakeSearcher{fn: londonReport}
	s := newTestServer(searcher, WithRateLimit(0.001, 2))

	assert.Equal(t, http.StatusOK, get(t, s, "/api/weather/London", nil).Code)
	assert.Equal(t, http.StatusOK, get(t, s, "/api/weather/London", nil).Code)

	rec := get(t, s, "/api/weather/London", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Len(t, searcher.queries, 2)

	// health is not throttled
	assert.Equal(t, http.StatusOK, get(t, s, "/api/health", nil).Code)
}

func TestThrottle_Disabled(t *testing.T) {
	searcher := &fakeSearcher{fn: londonReport}
	s := newTestServer(searcher, WithRateLimit(0, 0))

	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, get(t, s, "/api/weather/London", nil).Code)
	}
}

func TestGetChart(t *testing.T) {
	s := newTestServer(&fakeSearcher{fn: londonReport})

	rec := get(t, s, "/api/weather/London/chart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<title>London, GB</title>")
	assert.Contains(t, rec.Body.String(), "Monday Mar 11")
}

func TestGetChart_NotFound(t *testing.T) {
	s := newTestServer(&fakeSearcher{fn: func(string) (lookup.Report, error) {
		return lookup.Report{}, errors.New("boom")
	}})

	rec := get(t, s, "/api/weather/Atlantis/chart", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "City not found")
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(&fakeSearcher{fn: londonReport})

	rec := get(t, s, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","timestamp":"2024-03-10T12:00:00Z"}`, rec.Body.String())
}

func TestUnknownRoutes(t *testing.T) {
	s := newTestServer(&fakeSearcher{fn: londonReport})

	rec := get(t, s, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())

	for _, path := range []string{"/api/weather/London", "/api/weather/London/chart", "/api/health"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec = httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String(), path)
	}
}
