package ramadan

import (
	"context"
	"fmt"
	"time"

	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
)

const (
	minMeetingMinutes = 15
	maxMeetingMinutes = 480

	beforeIftarGap   = 30 * time.Minute
	afterIftarGap    = 60 * time.Minute
	preferredPostGap = 90 * time.Minute
)

// MeetingAdvice is the result of AdjustMeeting.
type MeetingAdvice struct {
	Recommended  bool        `json:"recommended"`
	Warnings     []string    `json:"warnings,omitempty"`
	Alternatives []time.Time `json:"alternatives,omitempty"`
	Suhoor       string      `json:"suhoor,omitempty"`
	Iftar        string      `json:"iftar,omitempty"`
}

// AdjustMeeting checks a meeting against the fast of its day. Outside
// Ramadan mode every meeting is recommended. Durations are clamped to
// [15, 480] minutes.
func (s *Scheduler) AdjustMeeting(ctx context.Context, start time.Time, durationMinutes int) MeetingAdvice {
	settings := s.Settings()
	if !settings.Enabled {
		return MeetingAdvice{Recommended: true}
	}

	start = start.In(s.loc)
	dur := time.Duration(clampInt(durationMinutes, minMeetingMinutes, maxMeetingMinutes)) * time.Minute
	end := start.Add(dur)

	times := s.prayers.Times(ctx, start)
	fajr, _ := times.Prayer(prayer.Fajr)
	maghrib, _ := times.Prayer(prayer.Maghrib)
	suhoor, iftar := fajr.Timestamp, maghrib.Timestamp

	advice := MeetingAdvice{Suhoor: fajr.Time, Iftar: maghrib.Time}

	if start.Before(iftar) && end.After(iftar) {
		advice.Warnings = append(advice.Warnings, fmt.Sprintf("Meeting runs across iftar at %s", maghrib.Time))
		advice.Alternatives = append(advice.Alternatives,
			iftar.Add(-beforeIftarGap).Add(-dur),
			iftar.Add(afterIftarGap),
		)
	}

	if settings.AvoidMeetingsDuringFasting && start.After(suhoor) && end.Before(iftar) {
		advice.Warnings = append(advice.Warnings,
			fmt.Sprintf("Meeting falls within fasting hours (%s to %s)", fajr.Time, maghrib.Time))
	}

	if settings.PreferPostIftarMeetings && start.Before(iftar) {
		advice.Alternatives = appendTime(advice.Alternatives, iftar.Add(preferredPostGap))
	}

	advice.Recommended = len(advice.Warnings) == 0
	return advice
}

func appendTime(list []time.Time, t time.Time) []time.Time {
	for _, v := range list {
		if v.Equal(t) {
			return list
		}
	}
	return append(list, t)
}
