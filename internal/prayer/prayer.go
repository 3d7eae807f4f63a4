// Package prayer computes the daily prayer windows, detects conflicts between
// scheduled events and prayers, and ranks meeting slots around them. It also
// owns the user's prayer settings and scheduling rules.
package prayer

import (
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-planner/internal/api"
	"github.com/smokyabdulrahman/prayer-planner/internal/hijri"
)

// Prayer names, in chronological order.
const (
	Fajr    = "fajr"
	Dhuhr   = "dhuhr"
	Asr     = "asr"
	Maghrib = "maghrib"
	Isha    = "isha"
)

// Names lists the five daily prayers in chronological order.
var Names = [5]string{Fajr, Dhuhr, Asr, Maghrib, Isha}

// DisplayNames maps prayer names to their capitalized form.
var DisplayNames = map[string]string{
	Fajr:      "Fajr",
	"sunrise": "Sunrise",
	Dhuhr:     "Dhuhr",
	Asr:       "Asr",
	"sunset":  "Sunset",
	Maghrib:   "Maghrib",
	Isha:      "Isha",
	Suhoor:    "Suhoor",
	Iftar:     "Iftar",
}

// ShortNames maps prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	Fajr:      "F",
	"sunrise": "S",
	Dhuhr:     "D",
	Asr:       "A",
	"sunset":  "St",
	Maghrib:   "M",
	Isha:      "I",
	Suhoor:    "Su",
	Iftar:     "If",
}

// DisplayName returns the capitalized name of a prayer.
func DisplayName(name string) string {
	if n, ok := DisplayNames[name]; ok {
		return n
	}
	return name
}

// IsValidName reports whether name is one of the five daily prayers.
func IsValidName(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Source tells where a day's timings came from.
type Source string

const (
	SourceAPI      Source = "api"
	SourceFallback Source = "fallback"
)

// Location is the observer position used for a day's timings.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
}

// DefaultLocation is used when neither a manual location nor a detected one
// is available.
var DefaultLocation = Location{Latitude: 23.61, Longitude: 58.59, City: "Muscat", Country: "Oman"}

// Time is a single prayer on a given day.
type Time struct {
	Name      string    `json:"name"`
	Time      string    `json:"time"` // HH:MM
	Timestamp time.Time `json:"timestamp"`
	IsNext    bool      `json:"isNext"`
}

// Times is one day of prayer windows.
type Times struct {
	Date           time.Time  `json:"date"`
	Location       Location   `json:"location"`
	Prayers        []Time     `json:"prayers"` // fajr, dhuhr, asr, maghrib, isha
	Sunrise        Time       `json:"sunrise"`
	Sunset         Time       `json:"sunset"`
	QiblaDirection float64    `json:"qiblaDirection"`
	Method         string     `json:"method"`
	Source         Source     `json:"source"`
	Hijri          hijri.Date `json:"hijri"`
}

// Prayer returns the prayer with the given name.
func (t *Times) Prayer(name string) (Time, bool) {
	for _, p := range t.Prayers {
		if p.Name == name {
			return p, true
		}
	}
	return Time{}, false
}

// Next returns the prayer flagged IsNext, if any.
func (t *Times) Next() (Time, bool) {
	for _, p := range t.Prayers {
		if p.IsNext {
			return p, true
		}
	}
	return Time{}, false
}

// fallbackTimings is the fixed table used whenever the timing source fails.
var fallbackTimings = api.Timings{
	Fajr:    "04:45",
	Sunrise: "06:00",
	Dhuhr:   "12:15",
	Asr:     "15:30",
	Sunset:  "18:15",
	Maghrib: "18:15",
	Isha:    "19:30",
}

// FallbackTimings returns a copy of the offline timing table.
func FallbackTimings() api.Timings {
	return fallbackTimings
}

// parsedDay holds the raw timestamps of one day before offsets are applied.
type parsedDay struct {
	prayers [5]time.Time
	sunrise time.Time
	sunset  time.Time
}

// parseTimings converts API timings into timestamps on date in loc. Prayers
// that wrap past midnight (Isha at high latitudes) are moved to the next day
// so the five stay in chronological order.
func parseTimings(timings api.Timings, date time.Time, loc *time.Location) (parsedDay, error) {
	raw := [5]string{timings.Fajr, timings.Dhuhr, timings.Asr, timings.Maghrib, timings.Isha}

	var day parsedDay
	for i, r := range raw {
		t, err := parseTimeStr(r, date, loc)
		if err != nil {
			return parsedDay{}, fmt.Errorf("failed to parse time for %s (%q): %w", Names[i], r, err)
		}
		if i > 0 && !t.After(day.prayers[i-1]) {
			t = t.AddDate(0, 0, 1)
		}
		day.prayers[i] = t
	}

	var err error
	if day.sunrise, err = parseTimeStr(timings.Sunrise, date, loc); err != nil {
		return parsedDay{}, fmt.Errorf("failed to parse time for sunrise (%q): %w", timings.Sunrise, err)
	}
	if day.sunset, err = parseTimeStr(timings.Sunset, date, loc); err != nil {
		// Some sources omit Sunset; Maghrib is the same instant.
		day.sunset = day.prayers[3]
	}
	return day, nil
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(p Time, now time.Time) time.Duration {
	return p.Timestamp.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// parseTimeStr parses a time string like "15:02" or "15:02 (BST)" into a time.Time
// on the given date in the given location.
func parseTimeStr(raw string, date time.Time, loc *time.Location) (time.Time, error) {
	// Strip timezone suffix like " (BST)" that the API sometimes appends.
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time format: %q", raw)
	}

	var hour, min int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return time.Time{}, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &min); err != nil {
		return time.Time{}, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return time.Time{}, fmt.Errorf("time out of range: %q", raw)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, loc), nil
}

// parseClock parses a bare "HH:MM" onto date's day in date's location.
func parseClock(s string, date time.Time) (time.Time, bool) {
	t, err := parseTimeStr(s, date, date.Location())
	return t, err == nil
}
