package prayer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
)

const (
	// prayerWindow is how long a prayer is assumed to occupy after its time.
	prayerWindow = 30 * time.Minute

	maxConflictDays = 31

	slotStep       = 30 * time.Minute
	scanStartHour  = 6
	scanEndHour    = 22
	coreStartHour  = 8
	coreEndHour    = 18
	minDurationMin = 15
	maxDurationMin = 480

	baseConfidence      = 80
	preferredBonus      = 15
	offHoursPenalty     = 10
	clearOfPrayerBonus  = 10
	preferredTolerance  = 30 * time.Minute
	nextPrayerClearance = 30 * time.Minute

	maxBestTimes  = 5
	maxAvoidTimes = 10
)

// Conflict is the result of checking an interval against the prayer windows.
type Conflict struct {
	HasConflict        bool        `json:"hasConflict"`
	ConflictingPrayers []Time      `json:"conflictingPrayers"`
	Suggestions        []string    `json:"suggestions,omitempty"`
	Alternatives       []time.Time `json:"alternatives,omitempty"`
}

// Slot is a candidate meeting start considered during a recommendation scan.
type Slot struct {
	Start              time.Time
	End                time.Time
	HasConflict        bool
	ConflictingPrayers []string
}

// Recommendation is a ranked conflict-free slot.
type Recommendation struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Confidence int       `json:"confidence"`
	Reasons    []string  `json:"reasons"`
}

// AvoidTime is a slot that clashes with one or more prayers.
type AvoidTime struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Reason string    `json:"reason"`
}

// Recommendations is the outcome of a slot scan for one day.
type Recommendations struct {
	Date            time.Time        `json:"date"`
	DurationMinutes int              `json:"durationMinutes"`
	BestTimes       []Recommendation `json:"bestTimes"`
	AvoidTimes      []AvoidTime      `json:"avoidTimes"`
}

// leadTime is the reminder lead that extends each prayer's window backwards.
func (s *Service) leadTime() time.Duration {
	return time.Duration(s.Settings().Notifications.ReminderMinutes) * time.Minute
}

// conflictsWith returns the prayers that clash with [start, end]: either the
// prayer instant lies inside the interval, or the window
// [prayer-lead, prayer+30m] overlaps it.
func conflictsWith(prayers []Time, start, end time.Time, lead time.Duration) []Time {
	var out []Time
	for _, p := range prayers {
		at := p.Timestamp
		inside := !at.Before(start) && !at.After(end)
		overlaps := at.Add(-lead).Before(end) && at.Add(prayerWindow).After(start)
		if inside || overlaps {
			out = append(out, p)
		}
	}
	return out
}

// CheckConflict reports whether [start, end] clashes with any prayer. Every
// calendar day the interval touches is checked. Up to two alternatives are
// suggested around the first conflicting prayer.
func (s *Service) CheckConflict(ctx context.Context, start, end time.Time) Conflict {
	if end.Before(start) {
		start, end = end, start
	}
	lead := s.leadTime()

	var hits []Time
	first := clock.StartOfDay(start.In(s.loc))
	last := clock.StartOfDay(end.In(s.loc))
	for d, n := first, 0; !d.After(last) && n < maxConflictDays; d, n = d.AddDate(0, 0, 1), n+1 {
		times := s.Times(ctx, d)
		hits = append(hits, conflictsWith(times.Prayers, start, end, lead)...)
	}

	c := Conflict{HasConflict: len(hits) > 0, ConflictingPrayers: hits}
	if c.HasConflict {
		p := hits[0]
		before := p.Timestamp.Add(-45 * time.Minute)
		after := p.Timestamp.Add(prayerWindow)
		c.Alternatives = []time.Time{before, after}
		c.Suggestions = []string{
			fmt.Sprintf("Schedule before %s, at %s", DisplayName(p.Name), before.Format("15:04")),
			fmt.Sprintf("Schedule after %s, at %s", DisplayName(p.Name), after.Format("15:04")),
		}
	}
	return c
}

// Recommendations scans start times from 06:00 to 22:00 in 30-minute steps
// for a meeting of durationMinutes on date's day, and ranks the conflict-free
// ones. preferred holds "HH:MM" times; unparsable entries are ignored.
func (s *Service) Recommendations(ctx context.Context, durationMinutes int, preferred []string, date time.Time) Recommendations {
	durationMinutes = clampInt(durationMinutes, minDurationMin, maxDurationMin)
	duration := time.Duration(durationMinutes) * time.Minute
	lead := s.leadTime()

	today := s.Times(ctx, date)
	day := today.Date
	at := func(hour int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
	}

	var prefs []time.Time
	for _, p := range preferred {
		if t, ok := parseClock(p, day); ok {
			prefs = append(prefs, t)
		}
	}

	// Late, long slots run into tomorrow and are checked against its prayers too.
	prayers := today.Prayers
	var withTomorrow []Time
	checkAgainst := func(end time.Time) []Time {
		if clock.SameDay(day, end) {
			return prayers
		}
		if withTomorrow == nil {
			tomorrow := s.Times(ctx, day.AddDate(0, 0, 1))
			withTomorrow = append(append([]Time{}, prayers...), tomorrow.Prayers...)
		}
		return withTomorrow
	}

	out := Recommendations{Date: day, DurationMinutes: durationMinutes}
	var best []Recommendation

	for start := at(scanStartHour); start.Before(at(scanEndHour)); start = start.Add(slotStep) {
		end := start.Add(duration)
		slot := Slot{Start: start, End: end}
		for _, p := range conflictsWith(checkAgainst(end), start, end, lead) {
			slot.HasConflict = true
			slot.ConflictingPrayers = append(slot.ConflictingPrayers, DisplayName(p.Name))
		}

		if slot.HasConflict {
			if len(out.AvoidTimes) < maxAvoidTimes {
				out.AvoidTimes = append(out.AvoidTimes, AvoidTime{
					Start:  start,
					End:    end,
					Reason: "Conflicts with " + strings.Join(slot.ConflictingPrayers, ", "),
				})
			}
			continue
		}

		best = append(best, scoreSlot(slot, prefs, prayers, at(coreStartHour), at(coreEndHour)))
	}

	sort.SliceStable(best, func(i, j int) bool { return best[i].Confidence > best[j].Confidence })
	if len(best) > maxBestTimes {
		best = best[:maxBestTimes]
	}
	out.BestTimes = best
	return out
}

// scoreSlot rates a conflict-free slot: base 80, +15 near a preferred time,
// -10 outside 08:00-18:00, +10 when it ends well before the next prayer.
func scoreSlot(slot Slot, prefs []time.Time, prayers []Time, coreStart, coreEnd time.Time) Recommendation {
	score := baseConfidence
	reasons := []string{"No prayer conflicts"}

	for _, p := range prefs {
		if absDuration(slot.Start.Sub(p)) <= preferredTolerance {
			score += preferredBonus
			reasons = append(reasons, "Close to your preferred time "+p.Format("15:04"))
			break
		}
	}

	if slot.Start.Before(coreStart) || slot.Start.After(coreEnd) {
		score -= offHoursPenalty
		reasons = append(reasons, "Outside core hours")
	}

	for _, p := range prayers {
		if p.Timestamp.After(slot.End) {
			if p.Timestamp.Sub(slot.End) > nextPrayerClearance {
				score += clearOfPrayerBonus
				reasons = append(reasons, "Ends well before "+DisplayName(p.Name))
			}
			break
		}
	}

	return Recommendation{
		Start:      slot.Start,
		End:        slot.End,
		Confidence: clampInt(score, 0, 100),
		Reasons:    reasons,
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
