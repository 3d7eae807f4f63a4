package ramadan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
	"github.com/smokyabdulrahman/prayer-planner/internal/store"
)

func TestFastingHours(t *testing.T) {
	tests := []struct {
		suhoor, iftar string
		want          float64
	}{
		{"04:30", "18:15", 13.75},
		{"04:45", "18:15", 13.5},
		{"05:00", "05:00", 0},
		{"20:00", "02:00", 6},
		{"bad", "18:15", 0},
	}

	for _, tt := range tests {
		t.Run(tt.suhoor+"-"+tt.iftar, func(t *testing.T) {
			assert.InDelta(t, tt.want, FastingHours(tt.suhoor, tt.iftar), 0.001)
		})
	}
}

func TestCalendarKey(t *testing.T) {
	assert.Equal(t, "ramadan_calendar_1447", CalendarKey(1447))
}

func TestInitializeCalendar(t *testing.T) {
	mem := store.NewMemory()
	s := newTestScheduler(t, midRamadan, Options{
		Store:   mem,
		Prayers: fakeTimes{fajr: "04:30", maghrib: "18:15"},
	})

	days, err := s.InitializeCalendar(context.Background())
	require.NoError(t, err)
	require.Len(t, days, SeasonDays)

	assert.Equal(t, FastingDay{
		Date:         "2026-02-19",
		Day:          1,
		SuhoorTime:   "04:30",
		IftarTime:    "18:15",
		FastingHours: 13.75,
	}, days[0])
	assert.Equal(t, "2026-03-20", days[29].Date)
	assert.Equal(t, 30, days[29].Day)

	var stored []FastingDay
	ok, err := store.GetJSON(context.Background(), mem, CalendarKey(1447), &stored)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, days, stored)
}

func TestInitializeCalendarFollowsSeasonLength(t *testing.T) {
	season := &fakeSeason{start: time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC), days: 29}
	s := newTestScheduler(t, midRamadan, Options{Season: season})

	days, err := s.InitializeCalendar(context.Background())
	require.NoError(t, err)
	require.Len(t, days, 29)
	assert.Equal(t, "2026-02-18", days[0].Date)
	assert.Equal(t, "2026-03-18", days[28].Date)
}

func TestInitializeCalendarKeepsExisting(t *testing.T) {
	mem := store.NewMemory()
	s := newTestScheduler(t, midRamadan, Options{Store: mem})
	ctx := context.Background()

	_, err := s.InitializeCalendar(ctx)
	require.NoError(t, err)
	_, err = s.CompleteDay(ctx, day(time.February, 19), Completion{QuranPages: 20})
	require.NoError(t, err)

	// Different prayer times must not rebuild the stored calendar.
	again := newTestScheduler(t, midRamadan, Options{
		Store:   mem,
		Prayers: fakeTimes{fajr: "05:00", maghrib: "18:00"},
	})
	days, err := again.InitializeCalendar(ctx)
	require.NoError(t, err)
	assert.True(t, days[0].Completed)
	assert.Equal(t, 20, days[0].QuranPages)
	assert.Equal(t, "04:45", days[0].SuhoorTime)
}

func TestInitializeCalendarReplacesCorrupt(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Set(context.Background(), CalendarKey(1447), "[{"))

	s := newTestScheduler(t, midRamadan, Options{Store: mem})
	days, err := s.InitializeCalendar(context.Background())
	require.NoError(t, err)
	assert.Len(t, days, SeasonDays)
}

func TestInitializeCalendarStoreFailure(t *testing.T) {
	s := newTestScheduler(t, midRamadan, Options{Store: &brokenStore{}})

	_, err := s.InitializeCalendar(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestInitializeCalendarWithPrayerService(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	prayers := prayer.New(ctx, prayer.Options{
		Store:    mem,
		Clock:    clock.Fixed(midRamadan),
		Location: time.UTC,
	})

	s := newTestScheduler(t, midRamadan, Options{Store: mem, Prayers: prayers})
	days, err := s.InitializeCalendar(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, days)

	// Without a timing source the offline table applies.
	assert.Equal(t, "04:45", days[0].SuhoorTime)
	assert.Equal(t, "18:15", days[0].IftarTime)
	assert.InDelta(t, 13.5, days[0].FastingHours, 0.001)
}

func TestTodaysFasting(t *testing.T) {
	s := newTestScheduler(t, midRamadan, Options{})
	ctx := context.Background()

	_, ok, err := s.TodaysFasting(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "no calendar yet")

	_, err = s.InitializeCalendar(ctx)
	require.NoError(t, err)

	d, ok, err := s.TodaysFasting(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-03-01", d.Date)
	assert.Equal(t, 11, d.Day)
}

func TestCompleteDay(t *testing.T) {
	mem := store.NewMemory()
	s := newTestScheduler(t, midRamadan, Options{Store: mem})
	ctx := context.Background()

	_, err := s.InitializeCalendar(ctx)
	require.NoError(t, err)

	c := Completion{Notes: "  good day ", CharityGiven: 5, QuranPages: 12, EnergyLevel: 9, MoodRating: -1}
	got, err := s.CompleteDay(ctx, day(time.February, 20), c)
	require.NoError(t, err)

	assert.True(t, got.Completed)
	assert.Equal(t, 2, got.Day)
	assert.Equal(t, "good day", got.Notes)
	assert.Equal(t, 5.0, got.CharityGiven)
	assert.Equal(t, 12, got.QuranPages)
	assert.Equal(t, 5, got.EnergyLevel)
	assert.Equal(t, 0, got.MoodRating)

	again, err := s.CompleteDay(ctx, day(time.February, 20), c)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.DaysCompleted, "completing twice counts once")
	assert.Equal(t, 5.0, st.TotalCharityGiven)
}

func TestCompleteDayUnknownDate(t *testing.T) {
	s := newTestScheduler(t, midRamadan, Options{})
	ctx := context.Background()

	_, err := s.CompleteDay(ctx, midRamadan, Completion{})
	assert.ErrorIs(t, err, ErrDayNotFound)

	_, err = s.InitializeCalendar(ctx)
	require.NoError(t, err)

	_, err = s.CompleteDay(ctx, day(time.April, 15), Completion{})
	assert.ErrorIs(t, err, ErrDayNotFound)
}
