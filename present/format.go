// Package present turns search results into the view models shown to users.
package present

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// IconURLTemplate is the OpenWeatherMap icon host, templated with the icon code
	IconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"
	// DefaultIconURL is used when no icon code is available
	DefaultIconURL = "https://openweathermap.org/img/wn/01d@2x.png"

	// NotFoundMessage is shown for every failed search
	NotFoundMessage = "City not found"
)

// Background identifies the page background for the current conditions
type Background string

const (
	BackgroundSunny   Background = "sunny"
	BackgroundRainy   Background = "rainy"
	BackgroundDefault Background = "default"
)

// IconURL builds the icon image URL for an icon code
func IconURL(code string) string {
	if code == "" {
		return DefaultIconURL
	}
	return fmt.Sprintf(IconURLTemplate, code)
}

// BackgroundFor picks a background from the condition category. Without any
// data the sunny background is shown.
func BackgroundFor(conditionMain string, hasData bool) Background {
	if !hasData {
		return BackgroundSunny
	}
	switch strings.ToLower(conditionMain) {
	case "clear":
		return BackgroundSunny
	case "rain":
		return BackgroundRainy
	default:
		return BackgroundDefault
	}
}

// RoundTemp rounds half up, so 2.5 becomes 3 and -2.5 becomes -2
func RoundTemp(celsius float64) int {
	return int(math.Floor(celsius + 0.5))
}

// FormatTemp renders a rounded Celsius temperature, e.g. "21°C"
func FormatTemp(celsius float64) string {
	return fmt.Sprintf("%d°C", RoundTemp(celsius))
}

// HeaderDate formats the page date, e.g. "Sunday 10 March"
func HeaderDate(t time.Time) string {
	return t.Format("Monday 2 January")
}

// Weekday returns the full weekday name, e.g. "Tuesday"
func Weekday(t time.Time) string {
	return t.Weekday().String()
}

// ShortDate returns the abbreviated month and day, e.g. "Mar 12"
func ShortDate(t time.Time) string {
	return t.Format("Jan 2")
}
