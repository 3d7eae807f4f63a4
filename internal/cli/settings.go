package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-planner/internal/display"
	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
)

func (a *app) newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the prayer settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showSettings(cmd)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.showSettings(cmd)
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.services(cmd.Context())
				if err != nil {
					return err
				}
				v, err := svc.Prayers.Settings().Get(args[0])
				if err != nil {
					return err
				}
				return a.render(cmd, map[string]string{args[0]: v}, func(w io.Writer) {
					fmt.Fprintln(w, v)
				})
			},
		},
		&cobra.Command{
			Use:     "set <key> <value>",
			Short:   "Change one setting",
			Example: "  prayer-planner settings set method 4\n  prayer-planner settings set offset.fajr 2\n  prayer-planner settings set city Muscat",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.services(cmd.Context())
				if err != nil {
					return err
				}
				if _, err := svc.Prayers.SetSetting(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				svc.Logger.Debug().Str("key", args[0]).Str("value", args[1]).Msg("setting updated")
				return a.showSettings(cmd)
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.services(cmd.Context())
				if err != nil {
					return err
				}
				if _, err := svc.Prayers.ResetSettings(cmd.Context()); err != nil {
					return err
				}
				return a.showSettings(cmd)
			},
		},
		&cobra.Command{
			Use:   "keys",
			Short: "List the setting keys accepted by set",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.render(cmd, prayer.SettingKeys, func(w io.Writer) {
					for _, k := range prayer.SettingKeys {
						fmt.Fprintln(w, k)
					}
				})
			},
		},
	)
	return cmd
}

func (a *app) showSettings(cmd *cobra.Command) error {
	svc, err := a.services(cmd.Context())
	if err != nil {
		return err
	}
	settings := svc.Prayers.Settings()
	return a.render(cmd, settings, func(w io.Writer) {
		tbl := display.NewTable("Key", "Value")
		for _, k := range prayer.SettingKeys {
			v, _ := settings.Get(k)
			if k == "method" {
				v = fmt.Sprintf("%s (%s)", v, settings.Method.Name())
			}
			tbl.AddRow(k, v)
		}
		fmt.Fprint(w, tbl.Render())
	})
}

// ruleFlags holds the rule fields accepted by rules add and rules update.
type ruleFlags struct {
	name      string
	condition string
	prayer    string
	buffer    int
	action    string
	duration  int
	priority  int
	disabled  bool
}

func (f *ruleFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Rule name")
	fs.StringVar(&f.condition, "condition", string(prayer.ConditionBeforePrayer), "Condition: before_prayer, after_prayer or during_prayer")
	fs.StringVar(&f.prayer, "prayer", prayer.AllPrayers, "Prayer the condition applies to, or all")
	fs.IntVar(&f.buffer, "buffer", 15, "Buffer in minutes around the prayer")
	fs.StringVar(&f.action, "action", string(prayer.ActionWarn), "Action: block, warn or suggest_alternative")
	fs.IntVar(&f.duration, "duration", 0, "Blocked duration in minutes (block only)")
	fs.IntVar(&f.priority, "priority", 1, "Priority, 1 is highest")
	fs.BoolVar(&f.disabled, "disabled", false, "Create the rule disabled")
}

func (f *ruleFlags) rule() prayer.Rule {
	r := prayer.Rule{
		Name:      f.name,
		Enabled:   !f.disabled,
		Condition: prayer.Condition{Type: prayer.ConditionType(f.condition), Prayer: f.prayer, BufferMinutes: f.buffer},
		Action:    prayer.Action{Type: prayer.ActionType(f.action)},
		Priority:  f.priority,
	}
	if f.duration > 0 {
		d := f.duration
		r.Action.DurationMinutes = &d
	}
	return r
}

// patch builds a RulePatch from the flags that were set on cmd.
func (f *ruleFlags) patch(cmd *cobra.Command, current prayer.Rule) prayer.RulePatch {
	var p prayer.RulePatch
	changed := func(name string) bool { return cmd.Flags().Changed(name) }

	if changed("name") {
		p.Name = &f.name
	}
	if changed("disabled") {
		enabled := !f.disabled
		p.Enabled = &enabled
	}
	if changed("condition") || changed("prayer") || changed("buffer") {
		c := current.Condition
		if changed("condition") {
			c.Type = prayer.ConditionType(f.condition)
		}
		if changed("prayer") {
			c.Prayer = f.prayer
		}
		if changed("buffer") {
			c.BufferMinutes = f.buffer
		}
		p.Condition = &c
	}
	if changed("action") || changed("duration") {
		act := current.Action
		if changed("action") {
			act.Type = prayer.ActionType(f.action)
		}
		if changed("duration") {
			d := f.duration
			act.DurationMinutes = &d
		}
		p.Action = &act
	}
	if changed("priority") {
		p.Priority = &f.priority
	}
	return p
}

func (a *app) newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage scheduling rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listRules(cmd)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List scheduling rules by priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listRules(cmd)
		},
	}

	var addFlags ruleFlags
	add := &cobra.Command{
		Use:     "add",
		Short:   "Add a scheduling rule",
		Example: "  prayer-planner rules add --name 'No calls at Asr' --condition during_prayer --prayer asr --action block --duration 20",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			r, err := svc.Prayers.AddRule(cmd.Context(), addFlags.rule())
			if err != nil {
				return err
			}
			return a.render(cmd, r, func(w io.Writer) {
				fmt.Fprintf(w, "Added rule %s\n", r.ID)
			})
		},
	}
	addFlags.register(add)

	var updateFlags ruleFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a scheduling rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			var current prayer.Rule
			for _, r := range svc.Prayers.Rules() {
				if r.ID == args[0] {
					current = r
				}
			}
			r, err := svc.Prayers.UpdateRule(cmd.Context(), args[0], updateFlags.patch(cmd, current))
			if err != nil {
				return err
			}
			return a.render(cmd, r, func(w io.Writer) {
				display.Rules(w, []prayer.Rule{r})
			})
		},
	}
	updateFlags.register(update)

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Enable or disable a scheduling rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			r, err := svc.Prayers.ToggleRule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, r, func(w io.Writer) {
				state := "disabled"
				if r.Enabled {
					state = "enabled"
				}
				fmt.Fprintf(w, "Rule %s %s\n", r.ID, state)
			})
		},
	}

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a scheduling rule",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.Prayers.DeleteRule(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.render(cmd, map[string]string{"deleted": args[0]}, func(w io.Writer) {
				fmt.Fprintf(w, "Deleted rule %s\n", args[0])
			})
		},
	}

	cmd.AddCommand(list, add, update, toggle, del)
	return cmd
}

func (a *app) listRules(cmd *cobra.Command) error {
	svc, err := a.services(cmd.Context())
	if err != nil {
		return err
	}
	rules := svc.Prayers.Rules()
	return a.render(cmd, rules, func(w io.Writer) {
		display.Rules(w, rules)
	})
}
