package prayer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/smokyabdulrahman/prayer-planner/internal/api"
	"github.com/smokyabdulrahman/prayer-planner/internal/store"
)

// timingsCacheEntry stores a day's API timings along with metadata for validation.
type timingsCacheEntry struct {
	Date    string      `json:"date"` // YYYY-MM-DD
	Method  int         `json:"method"`
	School  int         `json:"school"`
	Timings api.Timings `json:"timings"`
	Meta    api.Meta    `json:"meta"`
}

// timingsCacheKey builds a deterministic key from the parameters that affect
// prayer times, so different locations and methods get separate entries.
func timingsCacheKey(date string, lat, lon float64, method, school int) string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%d|%d", date, lat, lon, method, school)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("timings_%x", h[:8])
}

func (s *Service) loadCachedTimings(ctx context.Context, day time.Time, observer Location, method, school int) *api.Response {
	dateStr := day.Format("2006-01-02")
	key := timingsCacheKey(dateStr, observer.Latitude, observer.Longitude, method, school)

	var entry timingsCacheEntry
	ok, err := store.GetJSON(ctx, s.store, key, &entry)
	if err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("ignoring unreadable timings cache entry")
		return nil
	}
	if !ok || entry.Date != dateStr || entry.Method != method || entry.School != school {
		return nil
	}

	return &api.Response{
		Code:   200,
		Status: "OK",
		Data:   api.Data{Timings: entry.Timings, Meta: entry.Meta},
	}
}

func (s *Service) saveCachedTimings(ctx context.Context, day time.Time, observer Location, method, school int, resp *api.Response) {
	dateStr := day.Format("2006-01-02")
	key := timingsCacheKey(dateStr, observer.Latitude, observer.Longitude, method, school)

	entry := timingsCacheEntry{
		Date:    dateStr,
		Method:  method,
		School:  school,
		Timings: resp.Data.Timings,
		Meta:    resp.Data.Meta,
	}
	if err := store.SetJSON(ctx, s.store, key, entry); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to cache prayer timings")
	}
}
