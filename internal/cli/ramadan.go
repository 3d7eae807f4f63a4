package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-planner/internal/display"
	"github.com/smokyabdulrahman/prayer-planner/internal/ramadan"
)

func (a *app) newRamadanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ramadan",
		Short: "Ramadan mode, fasting calendar and advice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ramadanStatus(cmd)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show the season and Ramadan mode",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.ramadanStatus(cmd)
			},
		},
		a.newRamadanCheckCmd(),
		a.newRamadanToggleCmd(),
		a.newRamadanCalendarCmd(),
		a.newRamadanTodayCmd(),
		a.newRamadanCompleteCmd(),
		a.newRamadanStatsCmd(),
		a.newRamadanMealsCmd(),
		a.newRamadanNotificationsCmd(),
		a.newRamadanMeetingCmd(),
		a.newRamadanSettingsCmd(),
	)
	return cmd
}

func (a *app) ramadanStatus(cmd *cobra.Command) error {
	svc, err := a.services(cmd.Context())
	if err != nil {
		return err
	}
	st, err := svc.Ramadan.Status(cmd.Context())
	if err != nil {
		return err
	}
	return a.render(cmd, st, func(w io.Writer) {
		mode := display.Gray("off")
		if st.Enabled {
			mode = display.Green("on")
		}
		fmt.Fprintf(w, "  Ramadan %d AH  %s\n", st.Period.HijriYear, display.Gray("("+string(st.Period.Source)+")"))
		fmt.Fprintf(w, "  %s to %s\n", st.Period.Start.Format("Mon 02 Jan 2006"), st.Period.End.AddDate(0, 0, -1).Format("Mon 02 Jan 2006"))
		fmt.Fprintf(w, "  State: %s", st.State)
		if st.Period.Day > 0 {
			fmt.Fprintf(w, ", day %d", st.Period.Day)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Mode: %s  Calendar: %s\n", mode, display.Check(st.Calendar))
	})
}

func (a *app) newRamadanCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Detect whether today is in Ramadan and update auto mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			p, err := svc.Ramadan.CheckPeriod(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, p, func(w io.Writer) {
				if p.IsRamadan {
					fmt.Fprintf(w, "  It is Ramadan, day %d of %d\n", p.Day, p.Days())
					return
				}
				fmt.Fprintf(w, "  Not Ramadan. Ramadan %d AH starts %s\n", p.HijriYear, p.Start.Format("Mon 02 Jan 2006"))
			})
		},
	}
}

func (a *app) newRamadanToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch Ramadan mode on or off manually",
		Long:  "Flip Ramadan mode. A manual toggle turns auto-detection off.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			s, err := svc.Ramadan.Toggle(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, s, func(w io.Writer) {
				state := "off"
				if s.Enabled {
					state = "on"
				}
				fmt.Fprintf(w, "Ramadan mode %s\n", state)
			})
		},
	}
}

func (a *app) newRamadanCalendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar",
		Short: "Show the fasting calendar, creating it on first use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			days, err := svc.Ramadan.InitializeCalendar(cmd.Context())
			if err != nil {
				return err
			}
			today := svc.Clock.Now().In(svc.Prayers.Location()).Format("2006-01-02")
			return a.render(cmd, days, func(w io.Writer) {
				display.FastingCalendar(w, days, today)
			})
		},
	}
}

func (a *app) newRamadanTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's fast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			day, ok, err := svc.Ramadan.TodaysFasting(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return a.render(cmd, nil, func(w io.Writer) {
					fmt.Fprintf(w, "  %s\n", display.Gray("Today is not a fasting day"))
				})
			}
			return a.render(cmd, day, func(w io.Writer) {
				fmt.Fprintf(w, "  Day %d  %s\n", day.Day, day.Date)
				fmt.Fprintf(w, "  Suhoor ends %s, iftar at %s (%.2fh)\n", display.Accent(day.SuhoorTime), display.Accent(day.IftarTime), day.FastingHours)
				fmt.Fprintf(w, "  Completed: %s\n", display.Check(day.Completed))
			})
		},
	}
}

func (a *app) newRamadanCompleteCmd() *cobra.Command {
	var c ramadan.Completion
	cmd := &cobra.Command{
		Use:   "complete [date]",
		Short: "Mark a fasting day as completed",
		Long:  "Mark a fasting day (YYYY-MM-DD, default today) as completed and record how it went.",
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
			day, err := svc.Ramadan.CompleteDay(cmd.Context(), date, c)
			if err != nil {
				return err
			}
			return a.render(cmd, day, func(w io.Writer) {
				fmt.Fprintf(w, "Day %d (%s) completed\n", day.Day, day.Date)
			})
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&c.Notes, "notes", "", "Free-form notes")
	fs.Float64Var(&c.CharityGiven, "charity", 0, "Charity given")
	fs.IntVar(&c.QuranPages, "pages", 0, "Quran pages read")
	fs.IntVar(&c.EnergyLevel, "energy", 0, "Energy level, 1-5")
	fs.IntVar(&c.MoodRating, "mood", 0, "Mood rating, 1-5")
	return cmd
}

func (a *app) newRamadanStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show fasting statistics for the season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			st, err := svc.Ramadan.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, st, func(w io.Writer) {
				display.RamadanStats(w, st)
			})
		},
	}
}

func (a *app) newRamadanMealsCmd() *cobra.Command {
	var preference string
	cmd := &cobra.Command{
		Use:       "meals <suhoor|iftar>",
		Short:     "Suggest suhoor or iftar meals",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(ramadan.MealSuhoor), string(ramadan.MealIftar)},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := ramadan.ParseMealType(args[0])
			if err != nil {
				return err
			}
			ms, err := ramadan.MealSuggestions(t, preference)
			if err != nil {
				return err
			}
			return a.render(cmd, ms, func(w io.Writer) {
				for _, m := range ms {
					fmt.Fprintf(w, "  %s  %s\n", display.Bold(m.Name), display.Gray(fmt.Sprintf("%d min", m.PrepMinutes)))
					fmt.Fprintf(w, "  %s\n", m.Description)
					for _, b := range m.Benefits {
						fmt.Fprintf(w, "    - %s\n", b)
					}
					fmt.Fprintln(w)
				}
			})
		},
	}
	cmd.Flags().StringVar(&preference, "preference", "", "Dietary preference")
	return cmd
}

func (a *app) newRamadanNotificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "List today's Ramadan reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			ns := svc.Ramadan.SmartNotifications(cmd.Context())
			return a.render(cmd, ns, func(w io.Writer) {
				display.Notifications(w, ns, a.layout())
			})
		},
	}
}

func (a *app) newRamadanMeetingCmd() *cobra.Command {
	var duration int
	cmd := &cobra.Command{
		Use:   "meeting <start>",
		Short: "Check a meeting against the fast",
		Long:  "Check a meeting starting at <start> (HH:MM today or YYYY-MM-DDTHH:MM) against suhoor and iftar.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			start, err := parseWhen(args[0], svc.Clock.Now().In(svc.Prayers.Location()))
			if err != nil {
				return err
			}
			advice := svc.Ramadan.AdjustMeeting(cmd.Context(), start, duration)
			return a.render(cmd, advice, func(w io.Writer) {
				display.MeetingAdvice(w, advice, a.layout())
			})
		},
	}
	cmd.Flags().IntVar(&duration, "duration", 60, "Meeting length in minutes (15-480)")
	return cmd
}

func (a *app) newRamadanSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the Ramadan settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showRamadanSettings(cmd)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:     "set <key> <value>",
		Short:   "Change one Ramadan setting",
		Example: "  prayer-planner ramadan settings set suhoor_reminder_minutes 45",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := ramadan.ParseSetting(args[0], args[1])
			if err != nil {
				return err
			}
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := svc.Ramadan.UpdateSettings(cmd.Context(), patch); err != nil {
				return err
			}
			return a.showRamadanSettings(cmd)
		},
	})
	return cmd
}

func (a *app) showRamadanSettings(cmd *cobra.Command) error {
	svc, err := a.services(cmd.Context())
	if err != nil {
		return err
	}
	s := svc.Ramadan.Settings()
	return a.render(cmd, s, func(w io.Writer) {
		tbl := display.NewTable("Key", "Value")
		tbl.AddRow("enabled", fmt.Sprint(s.Enabled))
		tbl.AddRow("auto_detect", fmt.Sprint(s.AutoDetect))
		tbl.AddRow("suhoor_reminder_minutes", fmt.Sprint(s.SuhoorReminderMinutes))
		tbl.AddRow("iftar_reminder_minutes", fmt.Sprint(s.IftarReminderMinutes))
		tbl.AddRow("spiritual_reminders", fmt.Sprint(s.SpiritualReminders))
		tbl.AddRow("health_reminders", fmt.Sprint(s.HealthReminders))
		tbl.AddRow("avoid_meetings_during_fasting", fmt.Sprint(s.AvoidMeetingsDuringFasting))
		tbl.AddRow("prefer_post_iftar_meetings", fmt.Sprint(s.PreferPostIftarMeetings))
		fmt.Fprint(w, tbl.Render())
	})
}
