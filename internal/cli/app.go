package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-planner/internal/api"
	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
	"github.com/smokyabdulrahman/prayer-planner/internal/config"
	"github.com/smokyabdulrahman/prayer-planner/internal/display"
	"github.com/smokyabdulrahman/prayer-planner/internal/geo"
	"github.com/smokyabdulrahman/prayer-planner/internal/holiday"
	"github.com/smokyabdulrahman/prayer-planner/internal/logging"
	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
	"github.com/smokyabdulrahman/prayer-planner/internal/ramadan"
	"github.com/smokyabdulrahman/prayer-planner/internal/store"
)

// testDeps replaces the network collaborators, the store and the clock.
// Nil collaborators mean offline.
type testDeps struct {
	store   store.Store
	clock   clock.Clock
	timings prayer.TimingSource
	season  ramadan.SeasonSource
	locator geo.Locator
}

// app holds the configuration and the services built from it. Services are
// built on first use.
type app struct {
	flags globalFlags
	cfg   config.Config
	deps  *testDeps

	logger     zerolog.Logger
	store      store.Store
	closeStore func() error
	clock      clock.Clock
	prayers    *prayer.Service
	holidays   *holiday.Registry
	ramadan    *ramadan.Scheduler
}

// services is the set of wired services a command works with.
type services struct {
	Prayers  *prayer.Service
	Holidays *holiday.Registry
	Ramadan  *ramadan.Scheduler
	Clock    clock.Clock
	Logger   zerolog.Logger
}

func (a *app) services(ctx context.Context) (*services, error) {
	if a.prayers == nil {
		if err := a.build(ctx); err != nil {
			return nil, err
		}
	}
	return &services{Prayers: a.prayers, Holidays: a.holidays, Ramadan: a.ramadan, Clock: a.clock, Logger: a.logger}, nil
}

func (a *app) build(ctx context.Context) error {
	a.logger = logging.New(a.cfg.LogLevel, a.cfg.LogFormat, os.Stderr)
	loc := a.cfg.Location()
	locker := &store.Locker{}

	var (
		timings prayer.TimingSource
		season  ramadan.SeasonSource
		locator geo.Locator
	)

	if a.deps != nil {
		a.store, a.closeStore = a.deps.store, func() error { return nil }
		if a.store == nil {
			a.store = store.NewMemory()
		}
		a.clock = a.deps.clock
		timings, season, locator = a.deps.timings, a.deps.season, a.deps.locator
	} else {
		st, closeFn, err := store.Open(ctx, a.cfg.StoreOptions())
		if err != nil {
			return fmt.Errorf("failed to open %s store: %w", a.cfg.Store, err)
		}
		a.store, a.closeStore = st, closeFn

		client := api.NewClient()
		if a.cfg.APIURL != "" {
			client.BaseURL = a.cfg.APIURL
		}
		client.SetTimeout(a.cfg.APITimeout)
		guarded := api.NewGuardedClient(client, api.DefaultBreakerConfig(), a.logger)
		timings, season = guarded, guarded

		a.clock = clock.Real{Loc: loc}
		locator = geo.NewCachedLocator(geo.NewDetector(a.cfg.GeoTimeout), a.store, a.clock, geo.DefaultTTL, a.logger)
	}
	if a.clock == nil {
		a.clock = clock.Real{Loc: loc}
	}

	a.prayers = prayer.New(ctx, prayer.Options{
		Store:        a.store,
		Timings:      timings,
		Locator:      locator,
		Clock:        a.clock,
		Locker:       locker,
		Logger:       a.logger,
		Timeout:      a.cfg.APITimeout,
		Location:     loc,
		CacheTimings: true,
	})
	a.holidays = holiday.NewRegistry(a.prayers.Converter(), a.clock)
	a.ramadan = ramadan.New(ctx, ramadan.Options{
		Store:    a.store,
		Prayers:  a.prayers,
		Season:   season,
		Holidays: a.holidays,
		Clock:    a.clock,
		Locker:   locker,
		Logger:   a.logger,
		Timeout:  a.cfg.APITimeout,
		Location: loc,
	})
	return nil
}

func (a *app) close() error {
	if a.closeStore == nil {
		return nil
	}
	err := a.closeStore()
	a.closeStore = nil
	return err
}

func (a *app) layout() string {
	return display.TimeLayout(a.flags.timeFormat)
}

// render writes v as indented JSON when --json is set, and calls human
// otherwise.
func (a *app) render(cmd *cobra.Command, v any, human func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if a.flags.json {
		return printJSON(w, v)
	}
	human(w)
	return nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
