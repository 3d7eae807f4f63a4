package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/smokyabdulrahman/prayer-planner/internal/hijri"
	"github.com/smokyabdulrahman/prayer-planner/internal/holiday"
	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
	"github.com/smokyabdulrahman/prayer-planner/internal/ramadan"
)

func clockAt(hh, mm int) time.Time {
	return time.Date(2026, 2, 18, hh, mm, 0, 0, time.UTC)
}

func sampleTimes() *prayer.Times {
	mk := func(name string, hh, mm int) prayer.Time {
		ts := clockAt(hh, mm)
		return prayer.Time{Name: name, Time: ts.Format("15:04"), Timestamp: ts}
	}
	t := &prayer.Times{
		Date:     clockAt(0, 0),
		Location: prayer.DefaultLocation,
		Prayers: []prayer.Time{
			mk(prayer.Fajr, 4, 45), mk(prayer.Dhuhr, 12, 15), mk(prayer.Asr, 15, 30),
			mk(prayer.Maghrib, 18, 15), mk(prayer.Isha, 19, 30),
		},
		Sunrise:        mk("sunrise", 6, 0),
		Sunset:         mk("sunset", 18, 15),
		QiblaDirection: 266.5,
		Method:         "Gulf Region",
		Source:         prayer.SourceFallback,
		Hijri:          hijri.Converter{}.ToHijri(clockAt(0, 0)),
	}
	t.Prayers[2].IsNext = true
	return t
}

func TestTimeLayout(t *testing.T) {
	if TimeLayout("12h") != "3:04 PM" || TimeLayout("24h") != "15:04" || TimeLayout("") != "15:04" {
		t.Error("unexpected time layouts")
	}
}

func TestPrayerTimes(t *testing.T) {
	SetEnabled(false)
	var buf bytes.Buffer

	PrayerTimes(&buf, sampleTimes(), clockAt(14, 0), "15:04")
	got := buf.String()

	for _, want := range []string{
		"Muscat, Oman",
		"Wednesday, 18 February 2026",
		"29 Sha'ban 1447 AH",
		"offline table",
		"Asr      15:30  <- next in 1h 30m",
		"Sunrise 06:00",
		"266.5° W",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrayerTimes_12h(t *testing.T) {
	SetEnabled(false)
	var buf bytes.Buffer

	times := sampleTimes()
	times.Source = prayer.SourceAPI
	PrayerTimes(&buf, times, clockAt(14, 0), "3:04 PM")

	got := buf.String()
	if !strings.Contains(got, "6:15 PM") {
		t.Errorf("expected 12h times:\n%s", got)
	}
	if strings.Contains(got, "offline") {
		t.Errorf("API results should not mention the offline table:\n%s", got)
	}
}

func TestConflict(t *testing.T) {
	SetEnabled(false)

	var none bytes.Buffer
	Conflict(&none, prayer.Conflict{}, "15:04")
	if !strings.Contains(none.String(), "No conflict") {
		t.Errorf("got %q", none.String())
	}

	var buf bytes.Buffer
	Conflict(&buf, prayer.Conflict{
		HasConflict:        true,
		ConflictingPrayers: sampleTimes().Prayers[1:2],
		Suggestions:        []string{"Schedule before Dhuhr, at 11:30"},
	}, "15:04")
	got := buf.String()
	if !strings.Contains(got, "Conflicts with Dhuhr (12:15)") || !strings.Contains(got, "- Schedule before Dhuhr, at 11:30") {
		t.Errorf("unexpected conflict output:\n%s", got)
	}
}

func TestRecommendations(t *testing.T) {
	SetEnabled(false)
	var buf bytes.Buffer

	Recommendations(&buf, prayer.Recommendations{
		Date:            clockAt(0, 0),
		DurationMinutes: 60,
		BestTimes: []prayer.Recommendation{
			{Start: clockAt(8, 0), End: clockAt(9, 0), Confidence: 90, Reasons: []string{"Core working hours", "Clear of prayers"}},
		},
		AvoidTimes: []prayer.AvoidTime{
			{Start: clockAt(12, 0), End: clockAt(13, 0), Reason: "Conflicts with Dhuhr"},
		},
	}, "15:04")

	got := buf.String()
	for _, want := range []string{"60-minute meeting on Wed 18 Feb", "08:00  09:00  90%", "Core working hours; Clear of prayers", "Avoid", "Conflicts with Dhuhr"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRecommendations_Empty(t *testing.T) {
	SetEnabled(false)
	var buf bytes.Buffer

	Recommendations(&buf, prayer.Recommendations{Date: clockAt(0, 0), DurationMinutes: 480}, "15:04")
	if !strings.Contains(buf.String(), "No free slot found") {
		t.Errorf("got:\n%s", buf.String())
	}
}

func TestRules(t *testing.T) {
	SetEnabled(false)
	var buf bytes.Buffer

	Rules(&buf, prayer.DefaultRules())
	got := buf.String()
	if !strings.Contains(got, "before_prayer") || !strings.Contains(got, "✓") {
		t.Errorf("unexpected rules output:\n%s", got)
	}
}

func TestMethods(t *testing.T) {
	SetEnabled(false)
	var buf bytes.Buffer

	Methods(&buf, prayer.DefaultMethod)
	got := buf.String()
	if !strings.Contains(got, "Gulf Region") || !strings.Contains(got, "Ministry of Awqaf, Jordan") {
		t.Errorf("unexpected methods output:\n%s", got)
	}
}

func TestHolidays(t *testing.T) {
	SetEnabled(false)
	var buf bytes.Buffer

	Holidays(&buf, []holiday.Holiday{
		{Name: "Start of Ramadan", NameAr: "بداية رمضان", Date: clockAt(0, 0), Type: holiday.TypeMajor, DaysUntil: 0},
		{Name: "Laylat al-Qadr", Date: clockAt(0, 0).AddDate(0, 0, 1), Type: holiday.TypeMajor, DaysUntil: 1},
		{Name: "Eid al-Fitr", Date: clockAt(0, 0).AddDate(0, 0, 30), Type: holiday.TypeMajor, DaysUntil: 30},
	})
	got := buf.String()
	for _, want := range []string{"today", "1 day", "30 days", "بداية رمضان", "major"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestList(t *testing.T) {
	SetEnabled(false)
	var buf bytes.Buffer

	List(&buf, "Worship", []string{"Pray Taraweeh"})
	if buf.String() != "  Worship\n  - Pray Taraweeh\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestFastingCalendar(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)
	var buf bytes.Buffer

	FastingCalendar(&buf, []ramadan.FastingDay{
		{Date: "2026-02-19", Day: 1, SuhoorTime: "04:45", IftarTime: "18:15", FastingHours: 13.5, Completed: true},
		{Date: "2026-02-20", Day: 2, SuhoorTime: "04:44", IftarTime: "18:16", FastingHours: 13.53},
	}, "2026-02-20")

	lines := strings.Split(buf.String(), "\n")
	if strings.Contains(lines[2], "\033[36m") {
		t.Error("day 1 should not be highlighted")
	}
	if !strings.Contains(lines[3], "\033[36m") || !strings.Contains(lines[3], "13.53") {
		t.Errorf("today should be highlighted: %q", lines[3])
	}
}

func TestRamadanStats(t *testing.T) {
	SetEnabled(false)
	var buf bytes.Buffer

	RamadanStats(&buf, ramadan.Stats{TotalDays: 30, DaysCompleted: 10, CurrentStreak: 4, LongestStreak: 6, TotalCharityGiven: 12.5, QuranPagesRead: 200, AverageFastingHours: 13.5})
	got := buf.String()
	for _, want := range []string{"10 / 30", "Current streak   4", "12.5", "13.50h"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestNotifications(t *testing.T) {
	SetEnabled(false)

	var empty bytes.Buffer
	Notifications(&empty, nil, "15:04")
	if !strings.Contains(empty.String(), "Ramadan mode is off") {
		t.Errorf("got %q", empty.String())
	}

	var buf bytes.Buffer
	Notifications(&buf, []ramadan.Notification{
		{Type: ramadan.NotifyIftar, Title: "Iftar", Message: "Iftar is at 18:15.", Time: clockAt(18, 0)},
	}, "15:04")
	if !strings.Contains(buf.String(), "18:00  iftar  Iftar: Iftar is at 18:15.") {
		t.Errorf("got:\n%s", buf.String())
	}
}

func TestMeetingAdvice(t *testing.T) {
	SetEnabled(false)
	var buf bytes.Buffer

	MeetingAdvice(&buf, ramadan.MeetingAdvice{
		Warnings:     []string{"Meeting runs across iftar at 18:15"},
		Alternatives: []time.Time{clockAt(16, 45), clockAt(19, 15)},
	}, "15:04")
	got := buf.String()
	for _, want := range []string{"not recommended", "! Meeting runs across iftar", "- Try 16:45", "- Try 19:15"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
