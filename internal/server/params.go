package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
)

const dateLayout = "2006-01-02"

// now returns the current time in the prayer service's location.
func (s Services) now() time.Time {
	return s.Clock.Now().In(s.Prayers.Location())
}

// dateParam reads a YYYY-MM-DD query or path value. Empty means today.
func (s Services) dateParam(raw string) (time.Time, *Error) {
	if raw == "" {
		return clock.StartOfDay(s.now()), nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, s.Prayers.Location())
	if err != nil {
		return time.Time{}, badRequest("invalid date " + strconv.Quote(raw) + ": use YYYY-MM-DD")
	}
	return t, nil
}

// intQuery reads an integer query value, def when absent.
func intQuery(c *gin.Context, key string, def int) (int, *Error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest(key + " must be an integer")
	}
	return v, nil
}
