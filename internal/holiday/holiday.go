// Package holiday is the registry of recurring Hijri-dated holidays and the
// month-level observance and recommendation tables.
package holiday

import (
	"math"
	"sort"
	"time"

	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
	"github.com/smokyabdulrahman/prayer-planner/internal/hijri"
)

// Type classifies a holiday.
type Type string

const (
	TypeMajor      Type = "major"
	TypeMinor      Type = "minor"
	TypeObservance Type = "observance"
)

// Holiday is a recurring Hijri anchor resolved to a Gregorian date.
type Holiday struct {
	Name               string    `json:"name"`
	NameAr             string    `json:"nameAr"`
	HijriDay           int       `json:"hijriDay"`
	HijriMonth         int       `json:"hijriMonth"`
	Date               time.Time `json:"date"`
	Type               Type      `json:"type"`
	Description        string    `json:"description"`
	RecommendedActions []string  `json:"recommendedActions"`
	DaysUntil          int       `json:"daysUntil"`
}

// SacredMonthInfo describes whether a date falls in one of the four sacred
// months.
type SacredMonthInfo struct {
	IsSacred     bool   `json:"isSacred"`
	Month        int    `json:"month"`
	MonthName    string `json:"monthName"`
	Significance string `json:"significance,omitempty"`
}

// Recommendations are the worship, charity and fasting suggestions for the
// current Hijri month.
type Recommendations struct {
	Month     int      `json:"month"`
	MonthName string   `json:"monthName"`
	IsSacred  bool     `json:"isSacred"`
	Worship   []string `json:"worship"`
	Charity   []string `json:"charity"`
	Fasting   []string `json:"fasting"`
}

// Registry resolves the catalog against the Hijri year current at
// construction.
type Registry struct {
	converter hijri.Converter
	clock     clock.Clock
	year      int
	holidays  []Holiday
}

// NewRegistry converts every catalog anchor to its Gregorian date in the
// current Hijri year. A nil clock means the system clock.
func NewRegistry(converter hijri.Converter, clk clock.Clock) *Registry {
	if clk == nil {
		clk = clock.Real{Loc: converter.Loc}
	}
	r := &Registry{
		converter: converter,
		clock:     clk,
		year:      converter.Today(clk.Now()).Year,
	}

	r.holidays = make([]Holiday, len(catalog))
	for i, h := range catalog {
		h.Date = converter.ToGregorian(hijri.Date{Day: h.HijriDay, Month: h.HijriMonth, Year: r.year})
		h.RecommendedActions = append([]string(nil), h.RecommendedActions...)
		r.holidays[i] = h
	}
	return r
}

// Year returns the Hijri year the registry was resolved for.
func (r *Registry) Year() int {
	return r.year
}

// All returns every holiday of the registry year in calendar order.
func (r *Registry) All() []Holiday {
	out := r.copyHolidays()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Upcoming returns up to limit holidays that have not passed, soonest first.
// DaysUntil is the ceiling of the days between now and the holiday, so a
// holiday later today or already under way today reports 0. A limit below 1
// is treated as 1.
func (r *Registry) Upcoming(limit int) []Holiday {
	if limit < 1 {
		limit = 1
	}
	now := r.clock.Now()

	var out []Holiday
	for _, h := range r.copyHolidays() {
		days := int(math.Ceil(h.Date.Sub(now).Hours() / 24))
		if days < 0 {
			continue
		}
		h.DaysUntil = days
		out = append(out, h)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysUntil < out[j].DaysUntil })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// IsHoliday reports whether date's Hijri day and month match a catalog
// anchor, regardless of year. The returned holiday carries date's day.
func (r *Registry) IsHoliday(date time.Time) (Holiday, bool) {
	d := r.converter.ToHijri(date)
	for _, h := range r.copyHolidays() {
		if h.HijriDay == d.Day && h.HijriMonth == d.Month {
			h.Date = clock.StartOfDay(date)
			return h, true
		}
	}
	return Holiday{}, false
}

// IsSacred reports whether a Hijri month is one of Muharram, Rajab,
// Dhu al-Qi'dah or Dhu al-Hijjah.
func IsSacred(month int) bool {
	_, ok := sacredSignificance[month]
	return ok
}

// SacredMonth describes the Hijri month date falls in.
func (r *Registry) SacredMonth(date time.Time) SacredMonthInfo {
	d := r.converter.ToHijri(date)
	return SacredMonthInfo{
		IsSacred:     IsSacred(d.Month),
		Month:        d.Month,
		MonthName:    d.MonthName,
		Significance: sacredSignificance[d.Month],
	}
}

// CurrentSacredMonth is SacredMonth for the clock's current date.
func (r *Registry) CurrentSacredMonth() SacredMonthInfo {
	return r.SacredMonth(r.now())
}

// CurrentMonthObservances lists what the current Hijri month is known for,
// the holidays that fall in it, and the sacred-month note when it applies.
func (r *Registry) CurrentMonthObservances() []string {
	month := r.converter.ToHijri(r.now()).Month

	out := append([]string(nil), monthObservances[month]...)
	for _, h := range r.holidays {
		if h.HijriMonth == month {
			out = appendUnique(out, h.Name)
		}
	}
	if IsSacred(month) {
		out = append(out, sacredSignificance[month])
	}
	return out
}

// MonthlyRecommendations returns the current month's suggestions merged with
// the advice that applies every month.
func (r *Registry) MonthlyRecommendations() Recommendations {
	d := r.converter.ToHijri(r.now())
	sacred := IsSacred(d.Month)

	rec := Recommendations{
		Month:     d.Month,
		MonthName: d.MonthName,
		IsSacred:  sacred,
		Worship:   union(monthlyWorship[d.Month], genericWorship),
		Charity:   union(monthlyCharity[d.Month], genericCharity),
		Fasting:   union(monthlyFasting[d.Month], genericFasting),
	}
	if sacred {
		rec.Worship = appendUnique(rec.Worship, sacredAdvice)
	}
	return rec
}

func (r *Registry) now() time.Time {
	now := r.clock.Now()
	if r.converter.Loc != nil {
		now = now.In(r.converter.Loc)
	}
	return now
}

func (r *Registry) copyHolidays() []Holiday {
	out := make([]Holiday, len(r.holidays))
	for i, h := range r.holidays {
		h.RecommendedActions = append([]string(nil), h.RecommendedActions...)
		out[i] = h
	}
	return out
}

func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		out = appendUnique(out, s)
	}
	for _, s := range b {
		out = appendUnique(out, s)
	}
	return out
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
