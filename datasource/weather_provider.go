package datasource

import (
	"context"

	"weather-display/models"
)

// WeatherProvider is an interface for services that can fetch current weather data
type WeatherProvider interface {
	// GetWeather fetches current weather for a location
	GetWeather(ctx context.Context, location string) (models.WeatherData, error)

	// Name returns the provider's name
	Name() string
}

// ForecastSource is an interface for services that can fetch the 3-hour forecast feed
type ForecastSource interface {
	// FetchForecast fetches the raw forecast sequence for a location
	FetchForecast(ctx context.Context, location string) (models.ForecastData, error)

	// Name returns the source's name
	Name() string
}
