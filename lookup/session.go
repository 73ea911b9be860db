package lookup

import (
	"sync"

	"weather-display/models"
)

// Session holds the state of the current-weather and forecast requests for
// the most recent search. The two are owned separately and only combined by
// View.
type Session struct {
	mu       sync.RWMutex
	gen      uint64
	city     string
	weather  Result[models.WeatherData]
	forecast Result[[]models.ForecastSample]
	report   Report
}

// NewSession returns a session with both results Idle
func NewSession() *Session {
	return &Session{}
}

// Begin marks both requests as loading and discards the previous search.
// The returned generation must be passed to Complete or Fail.
func (s *Session) Begin(city string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.city = city
	s.weather = Loading[models.WeatherData]()
	s.forecast = Loading[[]models.ForecastSample]()
	s.report = Report{}
	return s.gen
}

// Complete stores a successful search. Results of a superseded search are
// dropped and Complete returns false.
func (s *Session) Complete(gen uint64, report Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.weather = Ready(report.Current)
	s.forecast = Ready(report.Daily)
	s.report = report
	return true
}

// Fail marks both requests failed; no partial data is kept
func (s *Session) Fail(gen uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.weather = Failed[models.WeatherData](err)
	s.forecast = Failed[[]models.ForecastSample](err)
	s.report = Report{}
	return true
}

func (s *Session) Weather() Result[models.WeatherData] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weather
}

func (s *Session) Forecast() Result[[]models.ForecastSample] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.forecast
}

// View is the render-time combination of both results
type View struct {
	City   string
	Status Status
	Report Report
	Err    error
}

// View combines the two results: failed if either failed, loading if either
// is loading, ready only when both are ready.
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := View{City: s.city}
	w, f := s.weather, s.forecast
	switch {
	case w.Status() == StatusFailed || f.Status() == StatusFailed:
		view.Status = StatusFailed
		view.Err = w.Err()
		if view.Err == nil {
			view.Err = f.Err()
		}
	case w.Status() == StatusLoading || f.Status() == StatusLoading:
		view.Status = StatusLoading
	case w.Status() == StatusReady && f.Status() == StatusReady:
		view.Status = StatusReady
		view.Report = s.report
	default:
		view.Status = StatusIdle
	}
	return view
}
