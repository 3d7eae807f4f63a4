package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-planner/internal/display"
	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
)

func (a *app) newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the prayer times for a day",
		Long:  "Show the five prayers, sunrise, sunset and Qibla for today, or for --date.",
		Args:  cobra.NoArgs,
		RunE:  a.runToday,
	}
	cmd.Flags().String("date", "", "Day to show: YYYY-MM-DD, today or tomorrow")
	return cmd
}

func (a *app) runToday(cmd *cobra.Command, args []string) error {
	svc, err := a.services(cmd.Context())
	if err != nil {
		return err
	}
	now := svc.Clock.Now().In(svc.Prayers.Location())

	dateFlag := ""
	if f := cmd.Flags().Lookup("date"); f != nil {
		dateFlag = f.Value.String()
	}
	date, err := parseDate(dateFlag, now)
	if err != nil {
		return err
	}

	times := svc.Prayers.Times(cmd.Context(), date)
	return a.render(cmd, times, func(w io.Writer) {
		display.PrayerTimes(w, times, now, a.layout())
	})
}

func (a *app) newNextCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown. After Isha this is tomorrow's Fajr.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			next := svc.Prayers.NextPrayer(cmd.Context())
			now := svc.Clock.Now()

			out := nextJSON{
				Prayer:    next.Prayer.Name,
				Time:      next.Prayer.Timestamp.Format(a.layout()),
				Timestamp: next.Prayer.Timestamp,
				Remaining: prayer.FormatRemaining(next.Remaining),
				Tomorrow:  next.Tomorrow,
			}
			return a.render(cmd, out, func(w io.Writer) {
				fmt.Fprintln(w, prayer.FormatOutput(next.Prayer, now, format, a.layout()))
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", prayer.FormatFull, "Display format: "+strings.Join(prayer.FormatModes, ", ")+", or a custom Go template")
	return cmd
}

type nextJSON struct {
	Prayer    string    `json:"prayer"`
	Time      string    `json:"time"`
	Timestamp time.Time `json:"timestamp"`
	Remaining string    `json:"remaining"`
	Tomorrow  bool      `json:"tomorrow"`
}

func (a *app) newQiblaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qibla",
		Short: "Show the Qibla bearing for the current location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			bearing := svc.Prayers.QiblaDirection(cmd.Context())
			out := map[string]any{"direction": bearing, "compass": display.Bearing(bearing)}
			return a.render(cmd, out, func(w io.Writer) {
				fmt.Fprintf(w, "  Qibla: %s from true north\n", display.Bearing(bearing))
			})
		},
	}
}

func (a *app) newConflictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts <start> <end>",
		Short: "Check whether a time range clashes with a prayer",
		Long:  "Check a meeting against prayer times. Times are HH:MM (today) or YYYY-MM-DDTHH:MM.",
		Example: "  prayer-planner conflicts 12:00 12:30\n" +
			"  prayer-planner conflicts 2026-03-01T17:30 2026-03-01T19:00",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			now := svc.Clock.Now().In(svc.Prayers.Location())
			start, err := parseWhen(args[0], now)
			if err != nil {
				return err
			}
			end, err := parseWhen(args[1], now)
			if err != nil {
				return err
			}

			c := svc.Prayers.CheckConflict(cmd.Context(), start, end)
			return a.render(cmd, c, func(w io.Writer) {
				display.Conflict(w, c, a.layout())
			})
		},
	}
}

func (a *app) newRecommendCmd() *cobra.Command {
	var (
		duration int
		prefer   []string
		date     string
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest meeting slots clear of prayer times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			day, err := parseDate(date, svc.Clock.Now().In(svc.Prayers.Location()))
			if err != nil {
				return err
			}

			r := svc.Prayers.Recommendations(cmd.Context(), duration, prefer, day)
			return a.render(cmd, r, func(w io.Writer) {
				display.Recommendations(w, r, a.layout())
			})
		},
	}
	cmd.Flags().IntVar(&duration, "duration", 60, "Meeting length in minutes (15-480)")
	cmd.Flags().StringSliceVar(&prefer, "prefer", nil, "Preferred start times as HH:MM, comma separated")
	cmd.Flags().StringVar(&date, "date", "", "Day to plan: YYYY-MM-DD, today or tomorrow")
	return cmd
}

func (a *app) newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of all supported Al Adhan API calculation methods.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			if a.flags.json {
				return printJSON(cmd.OutOrStdout(), prayer.CalculationMethods)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Supported calculation methods:")
			fmt.Fprintln(w)
			display.Methods(w, svc.Prayers.Settings().Method)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Use 'prayer-planner settings set method <ID>' to select one.")
			return nil
		},
	}
}
