// Package forecast reduces a raw 3-hour forecast feed to one representative
// sample per future calendar day.
package forecast

import (
	"fmt"
	"strings"
	"time"

	"weather-display/models"
)

// expectedDays sizes the seen-day buffer; the upstream window covers five days
const expectedDays = 5

// DayKey identifies a calendar day as seen from a particular location
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// KeyOf returns the calendar day of t interpreted in loc
func KeyOf(t time.Time, loc *time.Location) DayKey {
	y, m, d := t.In(loc).Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// String formats the key as YYYY-MM-DD
func (k DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// CutoffPolicy decides where "tomorrow" begins for the daily selection
type CutoffPolicy int

const (
	// CutoffSameTime excludes everything up to and including now plus one
	// calendar day at the same clock time.
	CutoffSameTime CutoffPolicy = iota
	// CutoffStartOfDay admits every sample from local midnight tomorrow onward.
	CutoffStartOfDay
)

// ParseCutoffPolicy maps a config value to a policy. Empty means CutoffSameTime.
func ParseCutoffPolicy(s string) (CutoffPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "same-time":
		return CutoffSameTime, nil
	case "start-of-day":
		return CutoffStartOfDay, nil
	default:
		return CutoffSameTime, fmt.Errorf("unknown cutoff policy %q", s)
	}
}

func (p CutoffPolicy) String() string {
	if p == CutoffStartOfDay {
		return "start-of-day"
	}
	return "same-time"
}

// Selector picks the first sample of each calendar day after the cutoff
type Selector struct {
	Policy CutoffPolicy
}

// Select applies the default CutoffSameTime policy
func Select(samples []models.ForecastSample, now time.Time) []models.ForecastSample {
	return Selector{}.Select(samples, now)
}

// Cutoff returns the instant separating excluded samples from eligible ones
func (s Selector) Cutoff(now time.Time) time.Time {
	if s.Policy == CutoffStartOfDay {
		y, m, d := now.Date()
		return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	}
	return now.AddDate(0, 0, 1)
}

func (s Selector) eligible(t, cutoff time.Time) bool {
	if s.Policy == CutoffStartOfDay {
		return !t.Before(cutoff)
	}
	return t.After(cutoff)
}

// Select walks samples in input order and keeps the first eligible sample of
// every calendar day, where days are taken in now's location. The input slice
// is not modified.
func (s Selector) Select(samples []models.ForecastSample, now time.Time) []models.ForecastSample {
	cutoff := s.Cutoff(now)
	loc := now.Location()

	var buf [expectedDays]DayKey
	seen := daySet{keys: buf[:0]}

	out := make([]models.ForecastSample, 0, expectedDays)
	for _, sample := range samples {
		if !s.eligible(sample.Timestamp, cutoff) {
			continue
		}
		if !seen.add(KeyOf(sample.Timestamp, loc)) {
			continue
		}
		out = append(out, sample)
	}
	return out
}

// daySet is an insertion-ordered set of day keys backed by a slice
type daySet struct {
	keys []DayKey
}

// add reports whether k was newly inserted
func (d *daySet) add(k DayKey) bool {
	for _, existing := range d.keys {
		if existing == k {
			return false
		}
	}
	d.keys = append(d.keys, k)
	return true
}
