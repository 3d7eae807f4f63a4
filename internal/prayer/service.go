package prayer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-planner/internal/api"
	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
	"github.com/smokyabdulrahman/prayer-planner/internal/geo"
	"github.com/smokyabdulrahman/prayer-planner/internal/hijri"
	"github.com/smokyabdulrahman/prayer-planner/internal/qibla"
	"github.com/smokyabdulrahman/prayer-planner/internal/store"
)

// DefaultTimeout bounds each call to the timing source and location provider.
const DefaultTimeout = 5 * time.Second

// TimingSource fetches one day of prayer timings. *api.Client and
// *api.GuardedClient both satisfy it.
type TimingSource interface {
	FetchTimings(ctx context.Context, date time.Time, lat, lon float64, method, school int) (*api.Response, error)
}

// Options configures a Service. Only Store is required.
type Options struct {
	Store   store.Store
	Timings TimingSource // nil means always use the offline table
	Locator geo.Locator  // nil disables automatic location
	Clock   clock.Clock
	Locker  *store.Locker
	Logger  zerolog.Logger
	// Timeout bounds each outbound lookup. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Location is the time zone for dates and the offline table. Defaults
	// to time.Local.
	Location *time.Location
	// CacheTimings keeps successful API responses in the store, keyed by
	// date, coordinates and method.
	CacheTimings bool
}

// Service computes prayer times and owns the prayer settings and
// scheduling rules. Settings and rules are loaded once, at construction.
type Service struct {
	store        store.Store
	timings      TimingSource
	locator      geo.Locator
	clock        clock.Clock
	locker       *store.Locker
	logger       zerolog.Logger
	timeout      time.Duration
	loc          *time.Location
	converter    hijri.Converter
	cacheTimings bool

	mu       sync.RWMutex
	settings Settings
	rules    []Rule
}

// New builds a Service and loads persisted settings and rules. Missing or
// corrupt state falls back to defaults.
func New(ctx context.Context, opts Options) *Service {
	s := &Service{
		store:        opts.Store,
		timings:      opts.Timings,
		locator:      opts.Locator,
		clock:        opts.Clock,
		locker:       opts.Locker,
		logger:       opts.Logger.With().Str("component", "prayer").Logger(),
		timeout:      opts.Timeout,
		loc:          opts.Location,
		cacheTimings: opts.CacheTimings,
	}
	if s.store == nil {
		s.store = store.NewMemory()
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.clock == nil {
		s.clock = clock.Real{Loc: s.loc}
	}
	if s.locker == nil {
		s.locker = &store.Locker{}
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	s.converter = hijri.Converter{Loc: s.loc}

	s.settings = s.loadSettings(ctx)
	s.rules = s.loadRules(ctx)
	return s
}

func (s *Service) loadSettings(ctx context.Context) Settings {
	settings := DefaultSettings()
	ok, err := store.GetJSON(ctx, s.store, SettingsKey, &settings)
	if err != nil {
		s.logger.Warn().Err(err).Msg("using default prayer settings")
		return DefaultSettings()
	}
	if !ok {
		return DefaultSettings()
	}
	return settings.normalize()
}

func (s *Service) loadRules(ctx context.Context) []Rule {
	var rules []Rule
	ok, err := store.GetJSON(ctx, s.store, RulesKey, &rules)
	if err != nil {
		s.logger.Warn().Err(err).Msg("using default scheduling rules")
		return DefaultRules()
	}
	if !ok {
		return DefaultRules()
	}
	for i := range rules {
		rules[i] = rules[i].normalize()
	}
	return rules
}

// Location returns the service's time zone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Clock returns the clock the service reads "now" from.
func (s *Service) Clock() clock.Clock {
	return s.clock
}

// Converter returns the Hijri converter bound to the service's time zone.
func (s *Service) Converter() hijri.Converter {
	return s.converter
}

// Times returns the prayer windows for date's calendar day. It never fails:
// when the timing source is unavailable the offline table is used and Source
// is SourceFallback.
func (s *Service) Times(ctx context.Context, date time.Time) *Times {
	settings := s.Settings()
	now := s.clock.Now()

	day := clock.StartOfDay(date.In(s.loc))
	observer, tz := s.resolveLocation(ctx, settings)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, tz)

	out := &Times{
		Date:     day,
		Location: observer,
		Hijri:    s.converter.ToHijri(day),
	}

	parsed, meta, err := s.fetch(ctx, day, observer, settings)
	if err != nil {
		s.logger.Warn().Err(err).Str("date", day.Format("2006-01-02")).Msg("prayer timing source unavailable, using offline table")
		parsed, _ = parseTimings(fallbackTimings, day, tz)
		out.Source = SourceFallback
		out.Method = settings.Method.Name()
	} else {
		out.Source = SourceAPI
		out.Method = meta.Method.Name
		if out.Method == "" {
			out.Method = settings.Method.Name()
		}
		out.QiblaDirection = meta.QiblaDirection
	}
	if out.QiblaDirection == 0 {
		out.QiblaDirection = qibla.Direction(observer.Latitude, observer.Longitude)
	}

	out.Prayers = make([]Time, len(Names))
	for i, ts := range applyOffsets(parsed.prayers[:], settings.Offsets) {
		out.Prayers[i] = Time{Name: Names[i], Time: ts.Format("15:04"), Timestamp: ts}
	}
	out.Sunrise = Time{Name: "sunrise", Time: parsed.sunrise.Format("15:04"), Timestamp: parsed.sunrise}
	out.Sunset = Time{Name: "sunset", Time: parsed.sunset.Format("15:04"), Timestamp: parsed.sunset}

	for i := range out.Prayers {
		if out.Prayers[i].Timestamp.After(now) {
			out.Prayers[i].IsNext = true
			break
		}
	}
	return out
}

// applyOffsets shifts each prayer by its offset. A prayer pushed onto or
// before its predecessor is held one minute after it, so the day stays in
// fajr..isha order.
func applyOffsets(prayers []time.Time, offsets map[string]int) []time.Time {
	out := make([]time.Time, len(prayers))
	for i, ts := range prayers {
		ts = ts.Add(time.Duration(offsets[Names[i]]) * time.Minute)
		if i > 0 && !ts.After(out[i-1]) {
			ts = out[i-1].Add(time.Minute)
		}
		out[i] = ts
	}
	return out
}

// fetch asks the timing source for one day and parses the result. The
// returned timestamps are in the zone the API reports for the coordinates.
func (s *Service) fetch(ctx context.Context, day time.Time, observer Location, settings Settings) (parsedDay, api.Meta, error) {
	if s.timings == nil {
		return parsedDay{}, api.Meta{}, fmt.Errorf("no timing source configured")
	}

	method, school := int(settings.Method), settings.Madhab.Code()

	var resp *api.Response
	if s.cacheTimings {
		resp = s.loadCachedTimings(ctx, day, observer, method, school)
	}
	if resp == nil {
		tctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		fetched, err := s.timings.FetchTimings(tctx, day, observer.Latitude, observer.Longitude, method, school)
		if err != nil {
			return parsedDay{}, api.Meta{}, err
		}
		resp = fetched
		if s.cacheTimings {
			s.saveCachedTimings(ctx, day, observer, method, school, resp)
		}
	}

	tz := day.Location()
	if resp.Data.Meta.Timezone != "" {
		if l, err := time.LoadLocation(resp.Data.Meta.Timezone); err == nil {
			tz = l
		}
	}

	parsed, err := parseTimings(resp.Data.Timings, day, tz)
	if err != nil {
		return parsedDay{}, api.Meta{}, fmt.Errorf("malformed timings: %w", err)
	}
	return parsed, resp.Data.Meta, nil
}

// resolveLocation picks the observer: manual setting, then the location
// provider, then DefaultLocation. The zone is the detected one when it
// loads, else the service zone.
func (s *Service) resolveLocation(ctx context.Context, settings Settings) (Location, *time.Location) {
	if settings.LocationMode == LocationManual && settings.ManualLocation != nil {
		return *settings.ManualLocation, s.loc
	}

	if s.locator != nil {
		lctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		detected, err := s.locator.Locate(lctx)
		if err == nil && detected != nil {
			tz := s.loc
			if detected.Timezone != "" {
				if l, err := time.LoadLocation(detected.Timezone); err == nil {
					tz = l
				}
			}
			return Location{
				Latitude:  clampFloat(detected.Latitude, -90, 90),
				Longitude: clampFloat(detected.Longitude, -180, 180),
				City:      detected.City,
				Country:   detected.Country,
			}, tz
		}
		s.logger.Warn().Err(err).Msg("location lookup failed, using default location")
	}

	if settings.ManualLocation != nil {
		return *settings.ManualLocation, s.loc
	}
	return DefaultLocation, s.loc
}

// Next is the upcoming prayer and how long until it.
type Next struct {
	Prayer    Time          `json:"prayer"`
	Remaining time.Duration `json:"remaining"`
	Tomorrow  bool          `json:"tomorrow"`
}

// NextPrayer returns the earliest prayer strictly after now. Once Isha has
// passed it is tomorrow's Fajr.
func (s *Service) NextPrayer(ctx context.Context) Next {
	now := s.clock.Now()

	today := s.Times(ctx, now)
	for _, p := range today.Prayers {
		if p.Timestamp.After(now) {
			return Next{Prayer: p, Remaining: p.Timestamp.Sub(now)}
		}
	}

	tomorrow := s.Times(ctx, clock.StartOfDay(now.In(s.loc)).AddDate(0, 0, 1))
	fajr := tomorrow.Prayers[0]
	fajr.IsNext = true
	return Next{Prayer: fajr, Remaining: fajr.Timestamp.Sub(now), Tomorrow: true}
}

// QiblaDirection returns the bearing to the Kaaba from the resolved observer
// location.
func (s *Service) QiblaDirection(ctx context.Context) float64 {
	observer, _ := s.resolveLocation(ctx, s.Settings())
	return qibla.Direction(observer.Latitude, observer.Longitude)
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.clone()
}

// UpdateSettings merges patch into the settings and persists the result.
func (s *Service) UpdateSettings(ctx context.Context, patch SettingsPatch) (Settings, error) {
	return s.mutateSettings(ctx, func(cur Settings) (Settings, error) {
		return cur.apply(patch), nil
	})
}

// SetSetting parses a single key/value pair and persists it.
func (s *Service) SetSetting(ctx context.Context, key, value string) (Settings, error) {
	return s.mutateSettings(ctx, func(cur Settings) (Settings, error) {
		patch, err := ParseSetting(cur, key, value)
		if err != nil {
			return Settings{}, err
		}
		return cur.apply(patch), nil
	})
}

// ResetSettings restores and persists the default settings.
func (s *Service) ResetSettings(ctx context.Context) (Settings, error) {
	return s.mutateSettings(ctx, func(Settings) (Settings, error) {
		return DefaultSettings(), nil
	})
}

func (s *Service) mutateSettings(ctx context.Context, fn func(Settings) (Settings, error)) (Settings, error) {
	unlock := s.locker.Lock(SettingsKey)
	defer unlock()

	next, err := fn(s.Settings())
	if err != nil {
		return Settings{}, err
	}
	if err := store.SetJSON(ctx, s.store, SettingsKey, next); err != nil {
		return Settings{}, fmt.Errorf("failed to save prayer settings: %w", err)
	}

	s.mu.Lock()
	s.settings = next
	s.mu.Unlock()
	return next.clone(), nil
}
