package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// BreakerConfig configures the circuit breakers around the API.
type BreakerConfig struct {
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32
	// Interval is the cyclic period of the closed state.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
	// FailureThreshold trips the breaker after this many consecutive failures.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns a sensible default configuration.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
	}
}

// GuardedClient wraps a Client with one circuit breaker per endpoint. While a
// breaker is open, calls fail immediately with gobreaker.ErrOpenState.
type GuardedClient struct {
	client   *Client
	timings  *gobreaker.CircuitBreaker[*Response]
	calendar *gobreaker.CircuitBreaker[*CalendarResponse]
}

// NewGuardedClient wraps client with circuit breakers.
func NewGuardedClient(client *Client, cfg BreakerConfig, logger zerolog.Logger) *GuardedClient {
	settings := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name,
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.FailureThreshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Info().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker state changed")
			},
		}
	}

	return &GuardedClient{
		client:   client,
		timings:  gobreaker.NewCircuitBreaker[*Response](settings("aladhan-timings")),
		calendar: gobreaker.NewCircuitBreaker[*CalendarResponse](settings("aladhan-calendar")),
	}
}

// FetchTimings calls Client.FetchTimings through the timings breaker.
func (g *GuardedClient) FetchTimings(ctx context.Context, date time.Time, lat, lon float64, method, school int) (*Response, error) {
	return g.timings.Execute(func() (*Response, error) {
		return g.client.FetchTimings(ctx, date, lat, lon, method, school)
	})
}

// FetchHijriMonth calls Client.FetchHijriMonth through the calendar breaker.
func (g *GuardedClient) FetchHijriMonth(ctx context.Context, month, year int) (*CalendarResponse, error) {
	return g.calendar.Execute(func() (*CalendarResponse, error) {
		return g.client.FetchHijriMonth(ctx, month, year)
	})
}
