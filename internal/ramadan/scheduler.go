// Package ramadan detects the Ramadan season and builds the fasting
// calendar, adherence statistics and meeting advice around it.
package ramadan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-planner/internal/api"
	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
	"github.com/smokyabdulrahman/prayer-planner/internal/hijri"
	"github.com/smokyabdulrahman/prayer-planner/internal/holiday"
	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
	"github.com/smokyabdulrahman/prayer-planner/internal/store"
)

// DefaultTimeout bounds the season lookup.
const DefaultTimeout = 5 * time.Second

// TimesProvider supplies one day of prayer times. *prayer.Service satisfies it.
type TimesProvider interface {
	Times(ctx context.Context, date time.Time) *prayer.Times
}

// SeasonSource converts a Hijri month to Gregorian days. *api.Client and
// *api.GuardedClient both satisfy it.
type SeasonSource interface {
	FetchHijriMonth(ctx context.Context, month, year int) (*api.CalendarResponse, error)
}

// Options configures a Scheduler. Store and Prayers are required.
type Options struct {
	Store    store.Store
	Prayers  TimesProvider
	Season   SeasonSource      // nil means always use the estimated window
	Holidays *holiday.Registry // optional, adds holiday reminders
	Clock    clock.Clock
	Locker   *store.Locker
	Logger   zerolog.Logger
	Timeout  time.Duration
	Location *time.Location
}

// Scheduler owns the Ramadan settings and the per-year fasting calendars.
type Scheduler struct {
	store     store.Store
	prayers   TimesProvider
	season    SeasonSource
	holidays  *holiday.Registry
	clock     clock.Clock
	locker    *store.Locker
	logger    zerolog.Logger
	timeout   time.Duration
	loc       *time.Location
	converter hijri.Converter

	mu       sync.RWMutex
	settings Settings
	periods  map[int]Period
}

// New builds a Scheduler and loads the persisted settings. Missing or
// corrupt settings fall back to defaults.
func New(ctx context.Context, opts Options) *Scheduler {
	s := &Scheduler{
		store:    opts.Store,
		prayers:  opts.Prayers,
		season:   opts.Season,
		holidays: opts.Holidays,
		clock:    opts.Clock,
		locker:   opts.Locker,
		logger:   opts.Logger.With().Str("component", "ramadan").Logger(),
		timeout:  opts.Timeout,
		loc:      opts.Location,
		periods:  make(map[int]Period),
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
	return s
}

func (s *Scheduler) loadSettings(ctx context.Context) Settings {
	settings := DefaultSettings()
	ok, err := store.GetJSON(ctx, s.store, SettingsKey, &settings)
	if err != nil {
		s.logger.Warn().Err(err).Msg("using default ramadan settings")
		return DefaultSettings()
	}
	if !ok {
		return DefaultSettings()
	}
	return settings.normalize()
}

func (s *Scheduler) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// Settings returns a copy of the current settings.
func (s *Scheduler) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings merges patch into the settings and persists them.
func (s *Scheduler) UpdateSettings(ctx context.Context, patch SettingsPatch) (Settings, error) {
	return s.mutateSettings(ctx, func(cur Settings) Settings {
		return cur.apply(patch)
	})
}

// Toggle flips Ramadan mode. A manual toggle turns auto-detection off so the
// next season check does not undo it.
func (s *Scheduler) Toggle(ctx context.Context) (Settings, error) {
	return s.mutateSettings(ctx, func(cur Settings) Settings {
		cur.Enabled = !cur.Enabled
		cur.AutoDetect = false
		return cur
	})
}

func (s *Scheduler) mutateSettings(ctx context.Context, fn func(Settings) Settings) (Settings, error) {
	unlock := s.locker.Lock(SettingsKey)
	defer unlock()

	next := fn(s.Settings())
	if err := store.SetJSON(ctx, s.store, SettingsKey, next); err != nil {
		return Settings{}, fmt.Errorf("failed to save ramadan settings: %w", err)
	}

	s.mu.Lock()
	s.settings = next
	s.mu.Unlock()
	return next, nil
}
