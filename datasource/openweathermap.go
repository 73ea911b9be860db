package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weather-display/models"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherMapProvider implements both WeatherProvider and ForecastSource interfaces
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures an OpenWeatherMapProvider
type Option func(*OpenWeatherMapProvider)

// WithBaseURL points the provider at a different API root
func WithBaseURL(baseURL string) Option {
	return func(p *OpenWeatherMapProvider) {
		if baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(p *OpenWeatherMapProvider) {
		if timeout > 0 {
			p.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(p *OpenWeatherMapProvider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider
func NewOpenWeatherMapProvider(apiKey string, opts ...Option) *OpenWeatherMapProvider {
	p := &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// condition is the weather[] element shared by both endpoints
type condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func firstCondition(conditions []condition) condition {
	if len(conditions) == 0 {
		return condition{}
	}
	return conditions[0]
}

// currentResponse is the body of GET /weather
type currentResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []condition `json:"weather"`
	Name    string      `json:"name"`
	Dt      int64       `json:"dt"`
	Sys     struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// forecastResponse is the body of GET /forecast
type forecastResponse struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []condition `json:"weather"`
	} `json:"list"`
}

// errorResponse is what the API sends alongside non-200 codes
type errorResponse struct {
	Message string `json:"message"`
}

// GetWeather fetches current weather for a location
func (p *OpenWeatherMapProvider) GetWeather(ctx context.Context, location string) (models.WeatherData, error) {
	var response currentResponse
	if err := p.get(ctx, "weather", location, &response); err != nil {
		return models.WeatherData{}, err
	}

	cond := firstCondition(response.Weather)
	timestamp := time.Now()
	if response.Dt != 0 {
		timestamp = time.Unix(response.Dt, 0)
	}

	return models.WeatherData{
		Provider:             p.Name(),
		City:                 response.Name,
		Country:              response.Sys.Country,
		Temperature:          response.Main.Temp,
		WindSpeed:            response.Wind.Speed,
		ConditionMain:        cond.Main,
		ConditionIcon:        cond.Icon,
		ConditionDescription: cond.Description,
		Timestamp:            timestamp,
	}, nil
}

// FetchForecast fetches the 5 day / 3 hour forecast for a location.
// Entries without a timestamp are dropped.
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, location string) (models.ForecastData, error) {
	var response forecastResponse
	if err := p.get(ctx, "forecast", location, &response); err != nil {
		return models.ForecastData{}, err
	}

	formattedLocation := response.City.Name
	if response.City.Country != "" {
		formattedLocation = fmt.Sprintf("%s,%s", response.City.Name, response.City.Country)
	}

	forecast := models.ForecastData{
		Provider: p.Name(),
		Location: formattedLocation,
		Samples:  make([]models.ForecastSample, 0, len(response.List)),
		Updated:  time.Now(),
	}

	for _, item := range response.List {
		if item.Dt == 0 {
			continue
		}
		cond := firstCondition(item.Weather)
		forecast.Samples = append(forecast.Samples, models.ForecastSample{
			Timestamp:            time.Unix(item.Dt, 0),
			Temperature:          item.Main.Temp,
			ConditionMain:        cond.Main,
			ConditionIcon:        cond.Icon,
			ConditionDescription: cond.Description,
		})
	}

	return forecast, nil
}

// get performs a metric-unit query for location against endpoint and decodes the body into out
func (p *OpenWeatherMapProvider) get(ctx context.Context, endpoint, location string, out interface{}) error {
	// Build URL
	params := url.Values{}
	params.Add("q", location)
	params.Add("units", "metric")
	params.Add("appid", p.apiKey)

	// Create request with context
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Execute request
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Check for error status code
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %q: %w", endpoint, location, ErrCityNotFound)
	case resp.StatusCode != http.StatusOK:
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody errorResponse
		if json.Unmarshal(body, &errBody) == nil {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	// Parse response
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Verify that the provider implements the required interfaces
var (
	_ WeatherProvider = (*OpenWeatherMapProvider)(nil)
	_ ForecastSource  = (*OpenWeatherMapProvider)(nil)
)
