package ramadan

import (
	"context"
	"fmt"
	"time"

	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
	"github.com/smokyabdulrahman/prayer-planner/internal/hijri"
)

// SeasonDays is the length of the estimated season and the cap on calendar
// entries.
const SeasonDays = 30

// State is the position of today relative to the season of the current Hijri
// year.
type State string

const (
	StateNotDetected State = "not_detected"
	StateDetected    State = "detected"
	StateActive      State = "active"
	StateEnded       State = "ended"
)

// PeriodSource tells where the season dates came from.
type PeriodSource string

const (
	PeriodFromAPI      PeriodSource = "api"
	PeriodFromEstimate PeriodSource = "estimate"
)

// Period is one Ramadan season. Start is the first day at midnight and End
// the midnight after the last day.
type Period struct {
	HijriYear int          `json:"hijriYear"`
	Start     time.Time    `json:"start"`
	End       time.Time    `json:"end"`
	Source    PeriodSource `json:"source"`
	IsRamadan bool         `json:"isRamadan"`
	Day       int          `json:"day,omitempty"` // 1-based day of the season, 0 outside it
}

// Days returns the number of calendar days in the period.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24 + 0.5)
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Status summarises Ramadan mode for display.
type Status struct {
	State    State    `json:"state"`
	Enabled  bool     `json:"enabled"`
	Period   Period   `json:"period"`
	Calendar bool     `json:"calendar"`
	Settings Settings `json:"settings"`
}

// CheckPeriod resolves the season for the current Hijri year and reports
// whether today falls inside it. With auto-detection on, Ramadan mode is
// switched to match and the change persisted.
func (s *Scheduler) CheckPeriod(ctx context.Context) (Period, error) {
	p := s.period(ctx)

	settings := s.Settings()
	if !settings.AutoDetect || settings.Enabled == p.IsRamadan {
		return p, nil
	}

	_, err := s.mutateSettings(ctx, func(cur Settings) Settings {
		cur.Enabled = p.IsRamadan
		return cur
	})
	if err != nil {
		return p, err
	}
	s.logger.Info().Bool("enabled", p.IsRamadan).Int("hijri_year", p.HijriYear).Msg("ramadan mode switched by auto-detection")
	return p, nil
}

// Status reports the season state without changing any settings.
func (s *Scheduler) Status(ctx context.Context) (Status, error) {
	p := s.period(ctx)
	now := s.now()

	_, built, err := s.loadCalendar(ctx, p.HijriYear)
	if err != nil {
		return Status{}, err
	}

	st := Status{Period: p, Calendar: built, Settings: s.Settings()}
	st.Enabled = st.Settings.Enabled

	switch {
	case now.Before(p.Start):
		st.State = StateNotDetected
	case !now.Before(p.End):
		st.State = StateEnded
	case built:
		st.State = StateActive
	default:
		st.State = StateDetected
	}
	return st, nil
}

// period returns the season of the current Hijri year, fetching it once per
// year and falling back to the estimate on any failure.
func (s *Scheduler) period(ctx context.Context) Period {
	now := s.now()
	year := s.converter.Today(now).Year

	s.mu.RLock()
	p, ok := s.periods[year]
	s.mu.RUnlock()

	if !ok {
		p = s.resolvePeriod(ctx, year)
		if p.Source == PeriodFromAPI {
			s.mu.Lock()
			s.periods[year] = p
			s.mu.Unlock()
		}
	}

	p.IsRamadan = p.Contains(now)
	p.Day = 0
	if p.IsRamadan {
		p.Day = int(now.Sub(p.Start).Hours()/24) + 1
	}
	return p
}

func (s *Scheduler) resolvePeriod(ctx context.Context, year int) Period {
	if s.season != nil {
		p, err := s.fetchPeriod(ctx, year)
		if err == nil {
			return p
		}
		s.logger.Warn().Err(err).Int("hijri_year", year).Msg("season lookup failed, using estimated window")
	}
	return s.estimatePeriod(year)
}

func (s *Scheduler) fetchPeriod(ctx context.Context, year int) (Period, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.season.FetchHijriMonth(ctx, hijri.Ramadan, year)
	if err != nil {
		return Period{}, err
	}
	if resp == nil || len(resp.Data) == 0 {
		return Period{}, fmt.Errorf("season source returned no days for Ramadan %d", year)
	}

	first, err := time.ParseInLocation("02-01-2006", resp.Data[0].Gregorian.Date, s.loc)
	if err != nil {
		return Period{}, fmt.Errorf("parse season start: %w", err)
	}
	last, err := time.ParseInLocation("02-01-2006", resp.Data[len(resp.Data)-1].Gregorian.Date, s.loc)
	if err != nil {
		return Period{}, fmt.Errorf("parse season end: %w", err)
	}
	if last.Before(first) {
		return Period{}, fmt.Errorf("season ends before it starts: %s", resp.Data[len(resp.Data)-1].Gregorian.Date)
	}

	return Period{
		HijriYear: year,
		Start:     first,
		End:       last.AddDate(0, 0, 1),
		Source:    PeriodFromAPI,
	}, nil
}

func (s *Scheduler) estimatePeriod(year int) Period {
	start := clock.StartOfDay(s.converter.ToGregorian(hijri.Date{Day: 1, Month: hijri.Ramadan, Year: year}))
	return Period{
		HijriYear: year,
		Start:     start,
		End:       start.AddDate(0, 0, SeasonDays),
		Source:    PeriodFromEstimate,
	}
}
