package models

import (
	"time"
)

// ForecastSample is a single point-in-time reading from the 3-hour forecast feed
type ForecastSample struct {
	Timestamp            time.Time `json:"timestamp"`            // time this sample is for
	Temperature          float64   `json:"temperature"`          // in Celsius
	ConditionMain        string    `json:"conditionMain"`        // short category, e.g. "Clear" or "Rain"
	ConditionIcon        string    `json:"conditionIcon"`        // icon code, e.g. "01d"
	ConditionDescription string    `json:"conditionDescription"` // human readable text
}

// ForecastData is the raw forecast sequence returned by a provider for one location
type ForecastData struct {
	Provider string           `json:"provider"` // weather data provider name
	Location string           `json:"location"` // location name
	Samples  []ForecastSample `json:"samples"`  // in upstream order
	Updated  time.Time        `json:"updated"`  // when this forecast was fetched
}
