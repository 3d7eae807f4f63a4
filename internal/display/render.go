package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-planner/internal/holiday"
	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
	"github.com/smokyabdulrahman/prayer-planner/internal/qibla"
	"github.com/smokyabdulrahman/prayer-planner/internal/ramadan"
)

// TimeLayout returns the Go layout for "12h" or "24h".
func TimeLayout(format string) string {
	if format == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

// PrayerTimes prints one day of prayer times with the next prayer
// highlighted.
func PrayerTimes(w io.Writer, t *prayer.Times, now time.Time, layout string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n\n", Bold("Prayer Times"))
	fmt.Fprintf(w, "  %s\n", locationLine(t.Location))
	fmt.Fprintf(w, "  %s\n", t.Date.Format("Monday, 02 January 2006"))
	fmt.Fprintf(w, "  %s\n", t.Hijri.String())
	fmt.Fprintf(w, "  %s\n", Gray(t.Method))
	if t.Source == prayer.SourceFallback {
		fmt.Fprintf(w, "  %s\n", Yellow("Timing service unavailable, showing the offline table"))
	}
	fmt.Fprintln(w)

	tbl := NewTable("Prayer", "Time", "")
	for i, p := range t.Prayers {
		note := ""
		if p.IsNext {
			note = "<- next in " + prayer.FormatRemaining(prayer.TimeRemaining(p, now))
			tbl.Highlight(i)
		}
		tbl.AddRow(prayer.DisplayName(p.Name), p.Timestamp.Format(layout), note)
	}
	fmt.Fprint(w, tbl.Render())

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Sunrise %s   Sunset %s\n", t.Sunrise.Timestamp.Format(layout), t.Sunset.Timestamp.Format(layout))
	fmt.Fprintf(w, "  Qibla   %s\n\n", Bearing(t.QiblaDirection))
}

// Bearing formats a compass bearing as "266.5° W".
func Bearing(deg float64) string {
	return fmt.Sprintf("%.1f° %s", deg, qibla.Compass(deg))
}

func locationLine(l prayer.Location) string {
	if l.City != "" && l.Country != "" {
		return l.City + ", " + l.Country
	}
	return fmt.Sprintf("%.4f, %.4f", l.Latitude, l.Longitude)
}

// Conflict prints the result of a conflict check.
func Conflict(w io.Writer, c prayer.Conflict, layout string) {
	if !c.HasConflict {
		fmt.Fprintf(w, "  %s\n", Green("No conflict with prayer times"))
		return
	}

	names := make([]string, len(c.ConflictingPrayers))
	for i, p := range c.ConflictingPrayers {
		names[i] = fmt.Sprintf("%s (%s)", prayer.DisplayName(p.Name), p.Timestamp.Format(layout))
	}
	fmt.Fprintf(w, "  %s %s\n", Red("Conflicts with"), strings.Join(names, ", "))
	for _, s := range c.Suggestions {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

// Recommendations prints the best and avoid slots for a day.
func Recommendations(w io.Writer, r prayer.Recommendations, layout string) {
	fmt.Fprintf(w, "\n  %s\n\n", Boldf("Best times for a %d-minute meeting on %s", r.DurationMinutes, r.Date.Format("Mon 02 Jan")))

	best := NewTable("Start", "End", "Score", "Why")
	for _, rec := range r.BestTimes {
		best.AddRow(rec.Start.Format(layout), rec.End.Format(layout), Confidence(rec.Confidence), strings.Join(rec.Reasons, "; "))
	}
	if best.Len() == 0 {
		fmt.Fprintf(w, "  %s\n", Yellow("No free slot found"))
	} else {
		fmt.Fprint(w, best.Render())
	}

	if len(r.AvoidTimes) == 0 {
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "\n  %s\n\n", Bold("Avoid"))
	avoid := NewTable("Start", "End", "Reason")
	for _, a := range r.AvoidTimes {
		avoid.AddRow(a.Start.Format(layout), a.End.Format(layout), a.Reason)
	}
	fmt.Fprint(w, avoid.Render())
	fmt.Fprintln(w)
}

// Rules prints the scheduling rules.
func Rules(w io.Writer, rules []prayer.Rule) {
	tbl := NewTable("ID", "Name", "On", "Condition", "Action", "Priority")
	for _, r := range rules {
		cond := fmt.Sprintf("%s %s", r.Condition.Type, r.Condition.Prayer)
		if r.Condition.BufferMinutes > 0 {
			cond += fmt.Sprintf(" (%dm)", r.Condition.BufferMinutes)
		}
		action := string(r.Action.Type)
		if r.Action.DurationMinutes != nil {
			action += fmt.Sprintf(" %dm", *r.Action.DurationMinutes)
		}
		tbl.AddRow(r.ID, r.Name, Check(r.Enabled), cond, action, strconv.Itoa(r.Priority))
	}
	fmt.Fprint(w, tbl.Render())
}

// Methods prints the calculation method catalog, marking the current one.
func Methods(w io.Writer, current prayer.CalculationMethod) {
	tbl := NewTable("ID", "Name")
	for i, m := range prayer.CalculationMethods {
		tbl.AddRow(strconv.Itoa(int(m.ID)), m.Name)
		if m.ID == current {
			tbl.Highlight(i)
		}
	}
	fmt.Fprint(w, tbl.Render())
}

// Holidays prints upcoming holidays.
func Holidays(w io.Writer, hs []holiday.Holiday) {
	tbl := NewTable("Date", "In", "Holiday", "", "Type")
	for i, h := range hs {
		in := "today"
		switch {
		case h.DaysUntil == 1:
			in = "1 day"
		case h.DaysUntil > 1:
			in = fmt.Sprintf("%d days", h.DaysUntil)
		}
		if h.DaysUntil == 0 {
			tbl.Highlight(i)
		}
		tbl.AddRow(h.Date.Format("Mon 02 Jan 2006"), in, h.Name, h.NameAr, string(h.Type))
	}
	fmt.Fprint(w, tbl.Render())
}

// List prints a titled bullet list.
func List(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "  %s\n", Bold(title))
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}

// FastingCalendar prints the season's fasting days with today highlighted.
func FastingCalendar(w io.Writer, days []ramadan.FastingDay, today string) {
	tbl := NewTable("Day", "Date", "Suhoor", "Iftar", "Hours", "Done")
	for i, d := range days {
		if d.Date == today {
			tbl.Highlight(i)
		}
		tbl.AddRow(strconv.Itoa(d.Day), d.Date, d.SuhoorTime, d.IftarTime, fmt.Sprintf("%.2f", d.FastingHours), Check(d.Completed))
	}
	fmt.Fprint(w, tbl.Render())
}

// RamadanStats prints the adherence statistics.
func RamadanStats(w io.Writer, st ramadan.Stats) {
	rows := [][2]string{
		{"Days completed", fmt.Sprintf("%d / %d", st.DaysCompleted, st.TotalDays)},
		{"Current streak", strconv.Itoa(st.CurrentStreak)},
		{"Longest streak", strconv.Itoa(st.LongestStreak)},
		{"Charity given", strconv.FormatFloat(st.TotalCharityGiven, 'f', -1, 64)},
		{"Quran pages", strconv.Itoa(st.QuranPagesRead)},
		{"Average fast", fmt.Sprintf("%.2fh", st.AverageFastingHours)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-16s %s\n", r[0], r[1])
	}
}

// Notifications prints reminders in time order.
func Notifications(w io.Writer, ns []ramadan.Notification, layout string) {
	if len(ns) == 0 {
		fmt.Fprintf(w, "  %s\n", Gray("No reminders (Ramadan mode is off)"))
		return
	}
	tbl := NewTable("Time", "Type", "Reminder")
	for _, n := range ns {
		tbl.AddRow(n.Time.Format(layout), string(n.Type), n.Title+": "+n.Message)
	}
	fmt.Fprint(w, tbl.Render())
}

// MeetingAdvice prints the Ramadan meeting check.
func MeetingAdvice(w io.Writer, a ramadan.MeetingAdvice, layout string) {
	if a.Recommended {
		fmt.Fprintf(w, "  %s\n", Green("Meeting time works"))
	} else {
		fmt.Fprintf(w, "  %s\n", Red("Meeting time is not recommended"))
	}
	for _, warn := range a.Warnings {
		fmt.Fprintf(w, "  ! %s\n", warn)
	}
	for _, alt := range a.Alternatives {
		fmt.Fprintf(w, "  - Try %s\n", alt.Format(layout))
	}
}
