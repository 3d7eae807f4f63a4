package geo

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
	"github.com/smokyabdulrahman/prayer-planner/internal/store"
)

const (
	// CacheKey is the store key holding the last detected location.
	CacheKey = "geolocation"
	// DefaultTTL is how long a detected location is reused.
	DefaultTTL = 24 * time.Hour
)

// Locator is anything that can resolve the observer's location.
type Locator interface {
	Locate(ctx context.Context) (*Location, error)
}

// cacheEntry stores a cached geolocation result with a timestamp.
type cacheEntry struct {
	Location Location  `json:"location"`
	CachedAt time.Time `json:"cached_at"`
}

// CachedLocator reuses a detected location for TTL before asking the
// underlying Locator again.
type CachedLocator struct {
	next   Locator
	store  store.Store
	clock  clock.Clock
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedLocator wraps next with a store-backed cache. A nil clock means the
// system clock; a non-positive ttl means DefaultTTL.
func NewCachedLocator(next Locator, s store.Store, clk clock.Clock, ttl time.Duration, logger zerolog.Logger) *CachedLocator {
	if clk == nil {
		clk = clock.Real{}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedLocator{next: next, store: s, clock: clk, ttl: ttl, logger: logger}
}

// Locate returns the cached location while it is fresh, otherwise detects and
// caches a new one. Cache read and write failures are logged, not returned.
func (c *CachedLocator) Locate(ctx context.Context) (*Location, error) {
	now := c.clock.Now()

	var entry cacheEntry
	ok, err := store.GetJSON(ctx, c.store, CacheKey, &entry)
	if err != nil {
		c.logger.Warn().Err(err).Msg("ignoring unreadable geolocation cache")
	}
	if ok && err == nil && now.Sub(entry.CachedAt) <= c.ttl {
		loc := entry.Location
		return &loc, nil
	}

	loc, err := c.next.Locate(ctx)
	if err != nil {
		return nil, err
	}

	if err := store.SetJSON(ctx, c.store, CacheKey, cacheEntry{Location: *loc, CachedAt: now}); err != nil {
		c.logger.Warn().Err(err).Msg("failed to cache geolocation")
	}
	return loc, nil
}
