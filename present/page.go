package present

import (
	"strings"
	"time"

	"weather-display/lookup"
	"weather-display/models"
)

// Card is one forecast day
type Card struct {
	Weekday     string    `json:"weekday"`
	Date        string    `json:"date"`
	IconURL     string    `json:"iconUrl"`
	Description string    `json:"description"`
	Temperature int       `json:"temperature"`
	TempLabel   string    `json:"tempLabel"`
	Timestamp   time.Time `json:"timestamp"`
}

// Current is the headline block
type Current struct {
	City        string `json:"city"`
	Country     string `json:"country"`
	Date        string `json:"date"`
	IconURL     string `json:"iconUrl"`
	Temperature int    `json:"temperature"`
	TempLabel   string `json:"tempLabel"`
	Description string `json:"description"`
	WindSpeed   string `json:"windSpeed"`
}

// Page is everything a surface needs to render one search
type Page struct {
	Status     string     `json:"status"`
	Background Background `json:"background"`
	Error      string     `json:"error,omitempty"`
	Current    *Current   `json:"current,omitempty"`
	Forecast   []Card     `json:"forecast"`
	RequestID  string     `json:"requestId,omitempty"`
}

// CardFor builds a forecast card; labels use the sample time in loc
func CardFor(sample models.ForecastSample, loc *time.Location) Card {
	local := sample.Timestamp.In(loc)
	return Card{
		Weekday:     Weekday(local),
		Date:        ShortDate(local),
		IconURL:     IconURL(sample.ConditionIcon),
		Description: sample.ConditionDescription,
		Temperature: RoundTemp(sample.Temperature),
		TempLabel:   FormatTemp(sample.Temperature),
		Timestamp:   sample.Timestamp,
	}
}

// FromReport builds a ready page. now is the moment shown in the header date.
func FromReport(report lookup.Report, now time.Time) Page {
	c := report.Current
	page := Page{
		Status:     lookup.StatusReady.String(),
		Background: BackgroundFor(c.ConditionMain, true),
		Current: &Current{
			City:        c.City,
			Country:     c.Country,
			Date:        HeaderDate(now),
			IconURL:     IconURL(c.ConditionIcon),
			Temperature: RoundTemp(c.Temperature),
			TempLabel:   FormatTemp(c.Temperature),
			Description: strings.ToUpper(c.ConditionDescription),
			WindSpeed:   formatWind(c.WindSpeed),
		},
		Forecast:  make([]Card, 0, len(report.Daily)),
		RequestID: report.RequestID,
	}
	for _, sample := range report.Daily {
		page.Forecast = append(page.Forecast, CardFor(sample, now.Location()))
	}
	return page
}

// NotFound is the page for any failed search
func NotFound() Page {
	return Page{
		Status:     lookup.StatusFailed.String(),
		Background: BackgroundFor("", false),
		Error:      NotFoundMessage,
		Forecast:   []Card{},
	}
}

// FromView renders a session view
func FromView(view lookup.View, now time.Time) Page {
	switch view.Status {
	case lookup.StatusReady:
		return FromReport(view.Report, now)
	case lookup.StatusFailed:
		return NotFound()
	default:
		return Page{
			Status:     view.Status.String(),
			Background: BackgroundFor("", false),
			Forecast:   []Card{},
		}
	}
}
