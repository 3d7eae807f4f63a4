package api

import "strconv"

// Response represents the top-level Al Adhan timings response.
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// Data holds the prayer timings, date info, and metadata.
type Data struct {
	Timings Timings  `json:"timings"`
	Date    DateInfo `json:"date"`
	Meta    Meta     `json:"meta"`
}

// Timings contains prayer and solar event times as HH:MM strings.
// The API may include a timezone suffix like " (GST)" which is stripped during parsing.
type Timings struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Sunset  string `json:"Sunset"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
	Imsak   string `json:"Imsak,omitempty"`
}

// DateInfo contains date representations.
type DateInfo struct {
	Readable  string        `json:"readable"`
	Timestamp string        `json:"timestamp"`
	Hijri     HijriDate     `json:"hijri"`
	Gregorian GregorianDate `json:"gregorian"`
}

// HijriDate represents the Hijri date as reported by the API. It can differ by
// a day or two from the arithmetic conversion in package hijri.
type HijriDate struct {
	Date  string     `json:"date"` // e.g. "10-08-1447"
	Day   string     `json:"day"`
	Month HijriMonth `json:"month"`
	Year  string     `json:"year"`
}

// HijriMonth represents the month in the Hijri calendar.
type HijriMonth struct {
	Number int    `json:"number"`
	En     string `json:"en"`
	Ar     string `json:"ar"`
}

// Valid reports whether all numeric parts of the date are present.
func (h HijriDate) Valid() bool {
	d, derr := strconv.Atoi(h.Day)
	y, yerr := strconv.Atoi(h.Year)
	return derr == nil && yerr == nil && d > 0 && y > 0 && h.Month.Number >= 1 && h.Month.Number <= 12
}

// GregorianDate represents the Gregorian date from the API response.
type GregorianDate struct {
	Date string `json:"date"` // e.g. "28-02-2026"
	Day  string `json:"day"`
	Year string `json:"year"`
}

// Meta contains request metadata returned by the API.
type Meta struct {
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	Timezone       string     `json:"timezone"`
	Method         MethodInfo `json:"method"`
	School         string     `json:"school"`
	QiblaDirection float64    `json:"qibla_direction,omitempty"`
}

// MethodInfo identifies the calculation method used.
type MethodInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CalendarResponse represents a calendar conversion response: one entry per day.
type CalendarResponse struct {
	Code   int           `json:"code"`
	Status string        `json:"status"`
	Data   []CalendarDay `json:"data"`
}

// CalendarDay pairs the Hijri and Gregorian representations of one day.
type CalendarDay struct {
	Hijri     HijriDate     `json:"hijri"`
	Gregorian GregorianDate `json:"gregorian"`
}
