package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/prayer-planner/internal/config"
	"github.com/smokyabdulrahman/prayer-planner/internal/display"
)

// globalFlags are the persistent flags shared by every subcommand. Flags
// that are set override the environment configuration.
type globalFlags struct {
	json       bool
	timeFormat string
	store      string
	dataDir    string
	timezone   string
	logLevel   string
	apiURL     string
}

// NewRootCmd creates the root command for the prayer-planner CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(version, nil)
}

func newRootCmd(version string, deps *testDeps) *cobra.Command {
	a := &app{deps: deps}

	rootCmd := &cobra.Command{
		Use:     "prayer-planner",
		Short:   "Prayer-aware scheduling, Hijri calendar and Ramadan planner",
		Long:    "Prayer times, Qibla, Hijri dates, holidays, prayer-aware meeting slots and a Ramadan fasting planner.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		// Default action: show today's prayer schedule.
		RunE:          a.runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(PrintVersion(version))

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&a.flags.json, "json", false, "Output as JSON")
	pf.StringVar(&a.flags.timeFormat, "time-format", "24h", "Time format: 12h or 24h")
	pf.StringVar(&a.flags.store, "store", "", "Storage backend: memory, file, sqlite, redis or postgres (overrides "+config.EnvStore+")")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "Data directory (overrides "+config.EnvDataDir+")")
	pf.StringVar(&a.flags.timezone, "timezone", "", "IANA time zone (overrides "+config.EnvTimezone+")")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides "+config.EnvLogLevel+")")
	pf.StringVar(&a.flags.apiURL, "api-url", "", "Prayer timing API base URL (overrides "+config.EnvAPIURL+")")

	rootCmd.AddCommand(
		a.newTodayCmd(),
		a.newNextCmd(),
		a.newQiblaCmd(),
		a.newConflictsCmd(),
		a.newRecommendCmd(),
		a.newMethodsCmd(),
		a.newHijriCmd(),
		a.newGregorianCmd(),
		a.newHolidaysCmd(),
		a.newSacredCmd(),
		a.newObservancesCmd(),
		a.newSettingsCmd(),
		a.newRulesCmd(),
		a.newRamadanCmd(),
		a.newServeCmd(),
	)
	return rootCmd
}

// PrintVersion returns the version line printed by --version.
func PrintVersion(version string) string {
	return fmt.Sprintf("prayer-planner %s\n", version)
}

// configure loads the environment configuration and applies the flags that
// were set explicitly, using cobra's Changed() to tell them apart.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "store") {
		cfg.Store = a.flags.store
	}
	if flagWasSet(flags, root, "data-dir") {
		cfg.DataDir = a.flags.dataDir
	}
	if flagWasSet(flags, root, "timezone") {
		cfg.Timezone = a.flags.timezone
	}
	if flagWasSet(flags, root, "log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if flagWasSet(flags, root, "api-url") {
		cfg.APIURL = a.flags.apiURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if a.flags.timeFormat != "12h" && a.flags.timeFormat != "24h" {
		return fmt.Errorf("invalid --time-format %q: must be 12h or 24h", a.flags.timeFormat)
	}

	a.cfg = *cfg
	display.Configure(cmd.OutOrStdout(), a.flags.json)
	return nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
