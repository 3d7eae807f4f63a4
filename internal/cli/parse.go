package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
)

// parseDate accepts "", "today", "tomorrow", "yesterday" or YYYY-MM-DD and
// returns midnight of that day in now's location.
func parseDate(s string, now time.Time) (time.Time, error) {
	today := clock.StartOfDay(now)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return t, nil
}

var whenLayouts = []string{"2006-01-02T15:04", "2006-01-02 15:04", time.RFC3339}

// parseWhen accepts HH:MM (today), YYYY-MM-DDTHH:MM, "YYYY-MM-DD HH:MM" or
// RFC 3339, interpreted in now's location.
func parseWhen(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("15:04", s, now.Location()); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t.In(now.Location()), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use HH:MM or YYYY-MM-DDTHH:MM", s)
}
