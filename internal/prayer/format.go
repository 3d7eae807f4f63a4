package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Fasting milestones a status line can count down to instead of a prayer.
const (
	Suhoor = "suhoor"
	Iftar  = "iftar"
)

// Status-line display modes. Any other value containing "{{" is a Go
// template over FormatData.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatFull               = "full"
	// FormatFasting reads "Iftar in 2h 5m" or "Suhoor ends in 40m" while
	// fasting and falls back to FormatFull otherwise.
	FormatFasting = "fasting"
)

// FormatModes lists the built-in modes in help order.
var FormatModes = []string{
	FormatTimeRemaining,
	FormatNextPrayerTime,
	FormatNameAndTime,
	FormatNameAndRemaining,
	FormatShortNameAndTime,
	FormatShortNameAndRemain,
	FormatFull,
	FormatFasting,
}

// Countdown is the instant a status line counts down to.
type Countdown struct {
	Target    Time
	Remaining time.Duration
	// Milestone is Suhoor or Iftar when Target is a fasting boundary.
	Milestone string
}

// Fasting reports whether the countdown targets a suhoor or iftar boundary.
func (c Countdown) Fasting() bool {
	return c.Milestone != ""
}

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Name      string // "Asr", "Iftar"
	ShortName string // "A", "If"
	Time      string // "15:02" or "3:02 PM"
	Remaining string // "2h 15m"
	Hours     int
	Minutes   int
	Fasting   bool
	Milestone string // Suhoor, Iftar or empty
}

// CountdownTo picks what to count down to at now. Outside a fasting day it is
// next. On a fasting day the hours before fajr count to the end of suhoor and
// the hours before maghrib count to iftar; once maghrib has passed it is next
// again. times may be nil when fasting is false.
func CountdownTo(times *Times, next Time, now time.Time, fasting bool) Countdown {
	c := Countdown{Target: next}
	if fasting && times != nil {
		fajr, okF := times.Prayer(Fajr)
		maghrib, okM := times.Prayer(Maghrib)
		switch {
		case okF && now.Before(fajr.Timestamp):
			c.Target = Time{Name: Suhoor, Time: fajr.Time, Timestamp: fajr.Timestamp}
			c.Milestone = Suhoor
		case okM && now.Before(maghrib.Timestamp):
			c.Target = Time{Name: Iftar, Time: maghrib.Time, Timestamp: maghrib.Timestamp}
			c.Milestone = Iftar
		}
	}
	c.Remaining = TimeRemaining(c.Target, now)
	return c
}

// FormatOutput renders the countdown to p according to mode. timeFormat is a
// time layout, "15:04" or "3:04 PM".
func FormatOutput(p Time, now time.Time, mode string, timeFormat string) string {
	return CountdownTo(nil, p, now, false).Format(mode, timeFormat)
}

// Format renders the countdown according to mode. Unknown modes render as
// name-and-time.
func (c Countdown) Format(mode, timeFormat string) string {
	data := c.data(timeFormat)
	if strings.Contains(mode, "{{") {
		return formatCustom(mode, data)
	}
	if render, ok := builtinFormats[mode]; ok {
		return render(data)
	}
	return builtinFormats[FormatNameAndTime](data)
}

func (c Countdown) data(timeFormat string) FormatData {
	d := c.Remaining
	if d < 0 {
		d = 0
	}
	return FormatData{
		Name:      DisplayName(c.Target.Name),
		ShortName: ShortNames[c.Target.Name],
		Time:      c.Target.Timestamp.Format(timeFormat),
		Remaining: FormatRemaining(d),
		Hours:     int(d.Hours()),
		Minutes:   int(d.Minutes()) % 60,
		Fasting:   c.Fasting(),
		Milestone: c.Milestone,
	}
}

var builtinFormats = map[string]func(FormatData) string{
	FormatTimeRemaining:      func(f FormatData) string { return f.Remaining },
	FormatNextPrayerTime:     func(f FormatData) string { return f.Time },
	FormatNameAndTime:        func(f FormatData) string { return f.Name + " " + f.Time },
	FormatNameAndRemaining:   func(f FormatData) string { return f.Name + " " + f.Remaining },
	FormatShortNameAndTime:   func(f FormatData) string { return f.ShortName + " " + f.Time },
	FormatShortNameAndRemain: func(f FormatData) string { return f.ShortName + " " + f.Remaining },
	FormatFull:               formatFull,
	FormatFasting: func(f FormatData) string {
		switch {
		case !f.Fasting:
			return formatFull(f)
		case f.Milestone == Suhoor:
			return fmt.Sprintf("%s ends in %s", f.Name, f.Remaining)
		default:
			return fmt.Sprintf("%s in %s", f.Name, f.Remaining)
		}
	},
}

func formatFull(f FormatData) string {
	return fmt.Sprintf("%s %s (%s)", f.Name, f.Time, f.Remaining)
}

func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}
	return buf.String()
}
