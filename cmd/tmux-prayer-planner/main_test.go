package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
	"github.com/smokyabdulrahman/prayer-planner/internal/ramadan"
	"github.com/smokyabdulrahman/prayer-planner/internal/store"
)

// newServices builds offline services on a shared memory store, so the
// offline table applies: fajr 04:45, dhuhr 12:15, maghrib 18:15.
func newServices(t *testing.T, now time.Time, ramadanOn bool) (*prayer.Service, *ramadan.Scheduler) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()
	clk := clock.Fixed(now)

	prayers := prayer.New(ctx, prayer.Options{Store: st, Clock: clk, Location: time.UTC})
	sched := ramadan.New(ctx, ramadan.Options{Store: st, Prayers: prayers, Clock: clk, Location: time.UTC})
	if ramadanOn {
		if _, err := sched.Toggle(ctx); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	return prayers, sched
}

func at(hh, mm int) time.Time {
	return time.Date(2026, time.March, 1, hh, mm, 0, 0, time.UTC)
}

func TestStatusLine_NextPrayer(t *testing.T) {
	now := at(12, 0)
	prayers, sched := newServices(t, now, false)

	got := statusLine(context.Background(), prayers, sched, now, prayer.FormatFull, "15:04", zerolog.Nop())
	if got != "Dhuhr 12:15 (15m)" {
		t.Errorf("statusLine = %q, want %q", got, "Dhuhr 12:15 (15m)")
	}
}

func TestStatusLine_Iftar(t *testing.T) {
	now := at(12, 0)
	prayers, sched := newServices(t, now, true)

	got := statusLine(context.Background(), prayers, sched, now, prayer.FormatFull, "15:04", zerolog.Nop())
	if got != "Iftar 18:15 (6h 15m)" {
		t.Errorf("statusLine = %q, want %q", got, "Iftar 18:15 (6h 15m)")
	}
}

func TestStatusLine_Suhoor(t *testing.T) {
	now := at(3, 45)
	prayers, sched := newServices(t, now, true)

	got := statusLine(context.Background(), prayers, sched, now, prayer.FormatShortNameAndRemain, "15:04", zerolog.Nop())
	if got != "Su 1h 0m" {
		t.Errorf("statusLine = %q, want %q", got, "Su 1h 0m")
	}
}

func TestStatusLine_AfterIftarShowsNextPrayer(t *testing.T) {
	now := at(18, 30)
	prayers, sched := newServices(t, now, true)

	got := statusLine(context.Background(), prayers, sched, now, prayer.FormatNameAndTime, "3:04 PM", zerolog.Nop())
	if got != "Isha 7:30 PM" {
		t.Errorf("statusLine = %q, want %q", got, "Isha 7:30 PM")
	}
}

func TestStatusLine_FastingFormat(t *testing.T) {
	now := at(16, 10)
	prayers, sched := newServices(t, now, true)

	got := statusLine(context.Background(), prayers, sched, now, prayer.FormatFasting, "15:04", zerolog.Nop())
	if got != "Iftar in 2h 5m" {
		t.Errorf("statusLine = %q, want %q", got, "Iftar in 2h 5m")
	}
}

func TestStatusLine_NoScheduler(t *testing.T) {
	now := at(12, 0)
	prayers, _ := newServices(t, now, true)

	got := statusLine(context.Background(), prayers, nil, now, prayer.FormatNameAndRemaining, "15:04", zerolog.Nop())
	if got != "Dhuhr 15m" {
		t.Errorf("statusLine = %q, want %q", got, "Dhuhr 15m")
	}
}

func TestPrintMethods(t *testing.T) {
	var buf bytes.Buffer
	printMethods(&buf)

	output := buf.String()
	expectedMethods := []string{
		"ISNA",
		"Muslim World League",
		"Umm Al-Qura",
		"Jafari",
		"Ministry of Awqaf, Jordan",
	}
	for _, m := range expectedMethods {
		if !strings.Contains(output, m) {
			t.Errorf("printMethods output missing %q", m)
		}
	}
}
