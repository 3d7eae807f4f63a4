package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-planner/internal/display"
	"github.com/smokyabdulrahman/prayer-planner/internal/hijri"
	"github.com/smokyabdulrahman/prayer-planner/internal/holiday"
)

func (a *app) newHijriCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hijri [date]",
		Short: "Convert a Gregorian date to the Hijri calendar",
		Long:  "Convert a Gregorian date (YYYY-MM-DD, default today) to its Hijri date.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			date, err := parseDate(arg, svc.Clock.Now().In(svc.Prayers.Location()))
			if err != nil {
				return err
			}

			h := svc.Prayers.Converter().ToHijri(date)
			return a.render(cmd, h, func(w io.Writer) {
				fmt.Fprintf(w, "  %s  %s\n", date.Format("Mon 02 Jan 2006"), display.Gray("="))
				fmt.Fprintf(w, "  %s, %s  %s\n", h.Weekday, display.Accent(h.String()), h.MonthNameAr)
			})
		},
	}
}

func (a *app) newGregorianCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "gregorian <day> <month> <year>",
		Short:   "Convert a Hijri date to the Gregorian calendar",
		Example: "  prayer-planner gregorian 1 9 1447",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parts [3]int
			for i, s := range args {
				v, err := strconv.Atoi(s)
				if err != nil {
					return fmt.Errorf("invalid Hijri date component %q: must be an integer", s)
				}
				parts[i] = v
			}
			if parts[1] < 1 || parts[1] > 12 || parts[0] < 1 || parts[0] > 30 || parts[2] < 1 {
				return fmt.Errorf("invalid Hijri date %d/%d/%d", parts[0], parts[1], parts[2])
			}
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}

			d := hijri.Date{Day: parts[0], Month: parts[1], Year: parts[2]}
			g := svc.Prayers.Converter().ToGregorian(d)
			out := map[string]string{"date": g.Format("2006-01-02"), "weekday": g.Weekday().String()}
			return a.render(cmd, out, func(w io.Writer) {
				fmt.Fprintf(w, "  %s  %s  %s\n", d.String(), display.Gray("="), display.Accent(g.Format("Mon 02 Jan 2006")))
			})
		},
	}
}

func (a *app) newHolidaysCmd() *cobra.Command {
	var (
		limit int
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List upcoming Islamic holidays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			hs := svc.Holidays.Upcoming(limit)
			if all {
				hs = svc.Holidays.All()
			}
			return a.render(cmd, hs, func(w io.Writer) {
				if len(hs) == 0 {
					fmt.Fprintf(w, "  %s\n", display.Gray(fmt.Sprintf("No holidays left in %d AH", svc.Holidays.Year())))
					return
				}
				display.Holidays(w, hs)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of holidays to list")
	cmd.Flags().BoolVar(&all, "all", false, "List every holiday of the current Hijri year")
	return cmd
}

func (a *app) newSacredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sacred [date]",
		Short: "Check whether a date falls in a sacred month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			date, err := parseDate(arg, svc.Clock.Now().In(svc.Prayers.Location()))
			if err != nil {
				return err
			}

			info := svc.Holidays.SacredMonth(date)
			return a.render(cmd, info, func(w io.Writer) {
				if !info.IsSacred {
					fmt.Fprintf(w, "  %s is not a sacred month\n", info.MonthName)
					return
				}
				fmt.Fprintf(w, "  %s is a sacred month\n", display.Accent(info.MonthName))
				fmt.Fprintf(w, "  %s\n", info.Significance)
			})
		},
	}
}

type observancesJSON struct {
	Observances     []string                `json:"observances"`
	Recommendations holiday.Recommendations `json:"recommendations"`
}

func (a *app) newObservancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "observances",
		Short: "Show this Hijri month's observances and recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			obs := svc.Holidays.CurrentMonthObservances()
			rec := svc.Holidays.MonthlyRecommendations()
			return a.render(cmd, observancesJSON{Observances: obs, Recommendations: rec}, func(w io.Writer) {
				title := rec.MonthName
				if rec.IsSacred {
					title += " (sacred)"
				}
				fmt.Fprintf(w, "  %s\n\n", display.Accent(title))
				display.List(w, "Observances", obs)
				fmt.Fprintln(w)
				display.List(w, "Worship", rec.Worship)
				fmt.Fprintln(w)
				display.List(w, "Charity", rec.Charity)
				fmt.Fprintln(w)
				display.List(w, "Fasting", rec.Fasting)
			})
		},
	}
}
