package models

import (
	"time"
)

// WeatherData represents current conditions for a location
type WeatherData struct {
	Provider             string    `json:"provider"`
	City                 string    `json:"city"`
	Country              string    `json:"country"`
	Temperature          float64   `json:"temperature"`
	WindSpeed            float64   `json:"windSpeed"` // in m/s
	ConditionMain        string    `json:"conditionMain"`
	ConditionIcon        string    `json:"conditionIcon"`
	ConditionDescription string    `json:"conditionDescription"`
	Timestamp            time.Time `json:"timestamp"`
}
