package ramadan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
	"github.com/smokyabdulrahman/prayer-planner/internal/store"
)

const dateLayout = "2006-01-02"

// ErrDayNotFound is returned when a date has no entry in the fasting calendar.
var ErrDayNotFound = errors.New("no fasting day for date")

// FastingDay is one day of the fasting calendar.
type FastingDay struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	Day          int     `json:"day"`
	SuhoorTime   string  `json:"suhoorTime"`
	IftarTime    string  `json:"iftarTime"`
	FastingHours float64 `json:"fastingHours"`
	Completed    bool    `json:"completed"`
	Notes        string  `json:"notes,omitempty"`
	CharityGiven float64 `json:"charityGiven,omitempty"`
	QuranPages   int     `json:"quranPages,omitempty"`
	EnergyLevel  int     `json:"energyLevel,omitempty"` // 1-5
	MoodRating   int     `json:"moodRating,omitempty"`  // 1-5
}

// Completion records how a fasting day went.
type Completion struct {
	Notes        string  `json:"notes,omitempty"`
	CharityGiven float64 `json:"charityGiven,omitempty"`
	QuranPages   int     `json:"quranPages,omitempty"`
	EnergyLevel  int     `json:"energyLevel,omitempty"`
	MoodRating   int     `json:"moodRating,omitempty"`
}

// CalendarKey returns the store key of the fasting calendar for a Hijri year.
func CalendarKey(hijriYear int) string {
	return "ramadan_calendar_" + strconv.Itoa(hijriYear)
}

// InitializeCalendar builds and persists the fasting calendar for the
// current season. A calendar that already exists for the year is returned
// unchanged.
func (s *Scheduler) InitializeCalendar(ctx context.Context) ([]FastingDay, error) {
	p := s.period(ctx)
	key := CalendarKey(p.HijriYear)

	unlock := s.locker.Lock(key)
	defer unlock()

	days, ok, err := s.loadCalendar(ctx, p.HijriYear)
	if err != nil {
		return nil, err
	}
	if ok {
		return days, nil
	}

	n := min(p.Days(), SeasonDays)
	days = make([]FastingDay, 0, n)
	for i := 0; i < n; i++ {
		date := p.Start.AddDate(0, 0, i)
		times := s.prayers.Times(ctx, date)

		fajr, _ := times.Prayer(prayer.Fajr)
		maghrib, _ := times.Prayer(prayer.Maghrib)
		days = append(days, FastingDay{
			Date:         date.Format(dateLayout),
			Day:          i + 1,
			SuhoorTime:   fajr.Time,
			IftarTime:    maghrib.Time,
			FastingHours: FastingHours(fajr.Time, maghrib.Time),
		})
	}

	if err := store.SetJSON(ctx, s.store, key, days); err != nil {
		return nil, fmt.Errorf("failed to save fasting calendar: %w", err)
	}
	s.logger.Info().Int("hijri_year", p.HijriYear).Int("days", len(days)).Str("source", string(p.Source)).Msg("fasting calendar created")
	return days, nil
}

// Calendar returns the persisted fasting calendar of the current season, if
// one has been built.
func (s *Scheduler) Calendar(ctx context.Context) ([]FastingDay, bool, error) {
	return s.loadCalendar(ctx, s.converter.Today(s.now()).Year)
}

// TodaysFasting returns today's entry of the fasting calendar.
func (s *Scheduler) TodaysFasting(ctx context.Context) (FastingDay, bool, error) {
	now := s.now()
	days, ok, err := s.loadCalendar(ctx, s.converter.ToHijri(now).Year)
	if err != nil || !ok {
		return FastingDay{}, false, err
	}

	today := now.Format(dateLayout)
	for _, d := range days {
		if d.Date == today {
			return d, true, nil
		}
	}
	return FastingDay{}, false, nil
}

// CompleteDay marks the fasting day on date as completed and records the
// details. Completing a day again overwrites the details.
func (s *Scheduler) CompleteDay(ctx context.Context, date time.Time, c Completion) (FastingDay, error) {
	date = date.In(s.loc)
	year := s.converter.ToHijri(date).Year
	key := CalendarKey(year)

	unlock := s.locker.Lock(key)
	defer unlock()

	days, ok, err := s.loadCalendar(ctx, year)
	if err != nil {
		return FastingDay{}, err
	}

	want := date.Format(dateLayout)
	i := -1
	if ok {
		for j := range days {
			if days[j].Date == want {
				i = j
				break
			}
		}
	}
	if i < 0 {
		return FastingDay{}, fmt.Errorf("%w: %s", ErrDayNotFound, want)
	}

	d := &days[i]
	d.Completed = true
	d.Notes = strings.TrimSpace(c.Notes)
	d.CharityGiven = math.Max(c.CharityGiven, 0)
	d.QuranPages = max(c.QuranPages, 0)
	d.EnergyLevel = clampRating(c.EnergyLevel)
	d.MoodRating = clampRating(c.MoodRating)

	if err := store.SetJSON(ctx, s.store, key, days); err != nil {
		return FastingDay{}, fmt.Errorf("failed to save fasting calendar: %w", err)
	}
	return *d, nil
}

func (s *Scheduler) loadCalendar(ctx context.Context, hijriYear int) ([]FastingDay, bool, error) {
	var days []FastingDay
	ok, err := store.GetJSON(ctx, s.store, CalendarKey(hijriYear), &days)
	switch {
	case err != nil && ok:
		s.logger.Warn().Err(err).Int("hijri_year", hijriYear).Msg("ignoring corrupt fasting calendar")
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("failed to load fasting calendar: %w", err)
	}
	return days, ok, nil
}

// FastingHours returns the hours between suhoor and iftar given as "HH:MM".
// An iftar that reads earlier than suhoor wraps past midnight.
func FastingHours(suhoor, iftar string) float64 {
	from, ok1 := minuteOfDay(suhoor)
	to, ok2 := minuteOfDay(iftar)
	if !ok1 || !ok2 {
		return 0
	}
	mins := ((to-from)%1440 + 1440) % 1440
	return math.Round(float64(mins)/60*100) / 100
}

func minuteOfDay(hhmm string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func clampRating(v int) int {
	if v <= 0 {
		return 0
	}
	return min(v, 5)
}
