package ramadan

import (
	"context"
	"math"
)

// Stats aggregates the fasting calendar of the current season.
type Stats struct {
	TotalDays           int     `json:"totalDays"`
	DaysCompleted       int     `json:"daysCompleted"`
	CurrentStreak       int     `json:"currentStreak"`
	LongestStreak       int     `json:"longestStreak"`
	TotalCharityGiven   float64 `json:"totalCharityGiven"`
	QuranPagesRead      int     `json:"quranPagesRead"`
	AverageFastingHours float64 `json:"averageFastingHours"`
}

// Stats recomputes the statistics from the persisted calendar. Without a
// calendar every figure is zero.
func (s *Scheduler) Stats(ctx context.Context) (Stats, error) {
	days, _, err := s.Calendar(ctx)
	if err != nil {
		return Stats{}, err
	}
	return computeStats(days, s.now().Format(dateLayout)), nil
}

func computeStats(days []FastingDay, today string) Stats {
	st := Stats{TotalDays: len(days)}

	var hours float64
	run := 0
	for _, d := range days {
		hours += d.FastingHours
		if !d.Completed {
			run = 0
			continue
		}
		st.DaysCompleted++
		st.TotalCharityGiven += d.CharityGiven
		st.QuranPagesRead += d.QuranPages
		run++
		st.LongestStreak = max(st.LongestStreak, run)
	}
	if len(days) > 0 {
		st.AverageFastingHours = math.Round(hours/float64(len(days))*100) / 100
	}
	st.CurrentStreak = currentStreak(days, today)
	return st
}

// currentStreak counts completed days walking backward from today. Today
// itself only breaks the streak once it is over, so an unfinished today is
// skipped.
func currentStreak(days []FastingDay, today string) int {
	i := len(days) - 1
	for i >= 0 && days[i].Date > today {
		i--
	}
	if i >= 0 && days[i].Date == today && !days[i].Completed {
		i--
	}

	streak := 0
	for ; i >= 0 && days[i].Completed; i-- {
		streak++
	}
	return streak
}
