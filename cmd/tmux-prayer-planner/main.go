package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-planner/internal/api"
	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
	"github.com/smokyabdulrahman/prayer-planner/internal/config"
	"github.com/smokyabdulrahman/prayer-planner/internal/display"
	"github.com/smokyabdulrahman/prayer-planner/internal/geo"
	"github.com/smokyabdulrahman/prayer-planner/internal/logging"
	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
	"github.com/smokyabdulrahman/prayer-planner/internal/ramadan"
	"github.com/smokyabdulrahman/prayer-planner/internal/store"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

// statusTimeout bounds one status-bar refresh so a slow network never
// stalls tmux.
const statusTimeout = 3 * time.Second

func main() {
	format := flag.String("format", prayer.FormatNameAndTime, "Display format: "+strings.Join(prayer.FormatModes, ", ")+", or a custom Go template (e.g. '{{.Name}} in {{.Remaining}}'). Template fields: .Name, .ShortName, .Time, .Remaining, .Hours, .Minutes, .Fasting, .Milestone")
	timeFormat := flag.String("time-format", "24h", "Time format: 12h or 24h")
	fasting := flag.Bool("ramadan", true, "While Ramadan mode is on, count down to suhoor and iftar instead of the next prayer")

	showVersion := flag.Bool("version", false, "Print version and exit")
	listMethods := flag.Bool("list-methods", false, "Print supported calculation methods and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("tmux-prayer-planner %s\n", version)
		return
	}

	if *listMethods {
		printMethods(os.Stdout)
		return
	}

	if *timeFormat != "12h" && *timeFormat != "24h" {
		fmt.Fprintf(os.Stderr, "error: invalid -time-format %q: must be 12h or 24h\n", *timeFormat)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
	defer cancel()

	if err := run(ctx, os.Stdout, *format, display.TimeLayout(*timeFormat), *fasting); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// printMethods prints the table of supported calculation methods.
func printMethods(w io.Writer) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-4s %s\n", "ID", "Name")
	fmt.Fprintf(w, "  %-4s %s\n", "──", "────")
	for _, m := range prayer.CalculationMethods {
		fmt.Fprintf(w, "  %-4d %s\n", m.ID, m.Name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use 'prayer-planner settings set method <ID>' to select a calculation method.")
}

// run wires the services from the environment configuration and prints one
// status line. Settings are shared with the prayer-planner CLI through the
// configured store.
func run(ctx context.Context, w io.Writer, format, layout string, fasting bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	loc := cfg.Location()

	st, closeStore, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	defer closeStore()

	client := api.NewClient()
	if cfg.APIURL != "" {
		client.BaseURL = cfg.APIURL
	}
	client.SetTimeout(cfg.APITimeout)
	guarded := api.NewGuardedClient(client, api.DefaultBreakerConfig(), logger)

	clk := clock.Real{Loc: loc}
	prayers := prayer.New(ctx, prayer.Options{
		Store:        st,
		Timings:      guarded,
		Locator:      geo.NewCachedLocator(geo.NewDetector(cfg.GeoTimeout), st, clk, geo.DefaultTTL, logger),
		Clock:        clk,
		Logger:       logger,
		Timeout:      cfg.APITimeout,
		Location:     loc,
		CacheTimings: true,
	})

	var sched *ramadan.Scheduler
	if fasting {
		sched = ramadan.New(ctx, ramadan.Options{
			Store:    st,
			Prayers:  prayers,
			Season:   guarded,
			Clock:    clk,
			Logger:   logger,
			Timeout:  cfg.APITimeout,
			Location: loc,
		})
	}

	fmt.Fprint(w, statusLine(ctx, prayers, sched, clk.Now(), format, layout, logger))
	return nil
}

// statusLine formats the next prayer, or the suhoor and iftar countdowns
// while the scheduler is in Ramadan mode.
func statusLine(ctx context.Context, prayers *prayer.Service, sched *ramadan.Scheduler, now time.Time, format, layout string, logger zerolog.Logger) string {
	next := prayers.NextPrayer(ctx).Prayer
	fasting := sched != nil && sched.Settings().Enabled

	var times *prayer.Times
	if fasting {
		times = prayers.Times(ctx, now)
	}
	c := prayer.CountdownTo(times, next, now, fasting)
	if c.Fasting() {
		logger.Debug().Str("milestone", c.Milestone).Msg("ramadan status line")
	}
	return c.Format(format, layout)
}
