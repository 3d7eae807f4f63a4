// Package hijri converts between the Gregorian civil calendar and the Hijri
// lunar calendar.
//
// The conversion is arithmetic: both directions go through the Julian Day
// Number and use a single epoch anchor with mean year and month lengths. It is
// not a crescent-sighting calendar, so dates can drift one or two days from
// those announced by religious authorities. Callers that need the official
// date should prefer the Hijri date reported by the timing API.
package hijri

import (
	"fmt"
	"math"
	"time"
)

const (
	// EpochJD is the Julian Day of 1 Muharram 1 AH used as the anchor.
	EpochJD = 1948439.5
	// MeanYear is the mean length of a Hijri year in days.
	MeanYear = 354.367
	// MeanMonth is the mean length of a Hijri month in days.
	MeanMonth = 29.5
)

// Month numbers.
const (
	Muharram = iota + 1
	Safar
	RabiAlAwwal
	RabiAlThani
	JumadaAlAwwal
	JumadaAlThani
	Rajab
	Shaban
	Ramadan
	Shawwal
	DhuAlQidah
	DhuAlHijjah
)

// MonthNames are the transliterated Hijri month names, indexed from 0.
var MonthNames = [12]string{
	"Muharram", "Safar", "Rabi' al-Awwal", "Rabi' al-Thani",
	"Jumada al-Awwal", "Jumada al-Thani", "Rajab", "Sha'ban",
	"Ramadan", "Shawwal", "Dhu al-Qi'dah", "Dhu al-Hijjah",
}

// MonthNamesAr are the Arabic Hijri month names, indexed from 0.
var MonthNamesAr = [12]string{
	"محرم", "صفر", "ربيع الأول", "ربيع الآخر",
	"جمادى الأولى", "جمادى الآخرة", "رجب", "شعبان",
	"رمضان", "شوال", "ذو القعدة", "ذو الحجة",
}

// WeekdayNames are the Arabic weekday names indexed by time.Weekday (0=Sunday).
var WeekdayNames = [7]string{
	"Al-Ahad", "Al-Ithnayn", "Ath-Thulatha", "Al-Arbi'a",
	"Al-Khamis", "Al-Jumu'ah", "As-Sabt",
}

// Date is a day in the Hijri calendar.
type Date struct {
	Day         int    `json:"day"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	MonthName   string `json:"month_name"`
	MonthNameAr string `json:"month_name_ar"`
	Weekday     string `json:"weekday"`
}

// String returns the date as "DD MonthName YYYY AH".
func (d Date) String() string {
	return fmt.Sprintf("%d %s %d AH", d.Day, MonthName(d.Month), d.Year)
}

// MonthName returns the transliterated name of a Hijri month. Out-of-range
// months are clamped.
func MonthName(month int) string {
	return MonthNames[clamp(month, 1, 12)-1]
}

// Converter performs Gregorian/Hijri conversions. Loc is the location used
// for the Gregorian dates it returns; nil means UTC.
type Converter struct {
	Loc *time.Location
}

// ToHijri converts the civil date of t (in t's own location) to a Hijri date.
// The weekday is taken from t, not from the Hijri arithmetic.
func (c Converter) ToHijri(t time.Time) Date {
	jd := gregorianToJD(t.Year(), int(t.Month()), t.Day())
	days := jd - EpochJD

	year, month, day := 1, 1, 1
	if days >= 0 {
		year = int(math.Floor(days/MeanYear)) + 1
		rem := days - float64(year-1)*MeanYear
		month = clamp(int(math.Floor(rem/MeanMonth))+1, 1, 12)
		day = clamp(int(math.Floor(rem-float64(month-1)*MeanMonth))+1, 1, 30)
	}

	return Date{
		Day:         day,
		Month:       month,
		Year:        year,
		MonthName:   MonthNames[month-1],
		MonthNameAr: MonthNamesAr[month-1],
		Weekday:     WeekdayNames[t.Weekday()],
	}
}

// ToGregorian converts a Hijri date back to a Gregorian midnight in the
// converter's location. Out-of-range fields are clamped. The result is the
// first civil midnight at or after the mean-calendar instant, so a round trip
// through ToHijri lands within one day of the original date.
func (c Converter) ToGregorian(d Date) time.Time {
	year := max(d.Year, 1)
	month := clamp(d.Month, 1, 12)
	day := clamp(d.Day, 1, 30)

	jd := EpochJD + float64(year-1)*MeanYear + float64(month-1)*MeanMonth + float64(day-1)
	z := int(math.Ceil(jd + 0.5 - 1e-6))
	gy, gm, gd := jdToGregorian(z)

	loc := c.Loc
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, loc)
}

// Today returns the Hijri date for now in the converter's location.
func (c Converter) Today(now time.Time) Date {
	if c.Loc != nil {
		now = now.In(c.Loc)
	}
	return c.ToHijri(now)
}

// gregorianToJD returns the Julian Day at 00:00 of a proleptic Gregorian date.
func gregorianToJD(y, m, d int) float64 {
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) + float64(d) + b - 1524.5
}

// jdToGregorian converts an integral day number (floor(JD+0.5)) to a civil date.
func jdToGregorian(z int) (int, int, int) {
	a := z
	if z >= 2299161 {
		alpha := int(math.Floor((float64(z) - 1867216.25) / 36524.25))
		a = z + 1 + alpha - alpha/4
	}
	b := a + 1524
	c := int(math.Floor((float64(b) - 122.1) / 365.25))
	d := int(math.Floor(365.25 * float64(c)))
	e := int(math.Floor(float64(b-d) / 30.6001))

	day := b - d - int(math.Floor(30.6001*float64(e)))
	month := e - 1
	if e >= 14 {
		month = e - 13
	}
	year := c - 4716
	if month <= 2 {
		year = c - 4715
	}
	return year, month, day
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
