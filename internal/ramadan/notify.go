package ramadan

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
)

// NotificationType groups reminders.
type NotificationType string

const (
	NotifySuhoor    NotificationType = "suhoor"
	NotifyIftar     NotificationType = "iftar"
	NotifySpiritual NotificationType = "spiritual"
	NotifyHealth    NotificationType = "health"
	NotifyHoliday   NotificationType = "holiday"
)

// Notification is a reminder due at Time. Delivery is up to the caller.
type Notification struct {
	ID      string           `json:"id"`
	Type    NotificationType `json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Time    time.Time        `json:"time"`
}

type fixedReminder struct {
	hour, minute int
	title, msg   string
}

var spiritualReminders = []fixedReminder{
	{10, 0, "Quran reading", "Take a few minutes for your daily Quran portion."},
	{21, 0, "Taraweeh", "Taraweeh prayers begin after Isha."},
}

var healthReminders = []fixedReminder{
	{13, 0, "Rest", "A short rest helps you keep your energy through the fast."},
	{20, 0, "Hydration", "Drink water steadily between iftar and suhoor."},
}

// SmartNotifications derives today's reminders. It returns an empty list
// while Ramadan mode is off.
func (s *Scheduler) SmartNotifications(ctx context.Context) []Notification {
	settings := s.Settings()
	out := []Notification{}
	if !settings.Enabled {
		return out
	}

	now := s.now()
	times := s.prayers.Times(ctx, now)

	if fajr, ok := times.Prayer(prayer.Fajr); ok {
		out = append(out, newNotification(NotifySuhoor, "Suhoor",
			fmt.Sprintf("Suhoor ends at %s, %d minutes from now.", fajr.Time, settings.SuhoorReminderMinutes),
			fajr.Timestamp.Add(-time.Duration(settings.SuhoorReminderMinutes)*time.Minute)))
	}
	maghrib, hasIftar := times.Prayer(prayer.Maghrib)
	if hasIftar {
		out = append(out, newNotification(NotifyIftar, "Iftar",
			fmt.Sprintf("Iftar is at %s, %d minutes from now.", maghrib.Time, settings.IftarReminderMinutes),
			maghrib.Timestamp.Add(-time.Duration(settings.IftarReminderMinutes)*time.Minute)))
	}

	day := times.Date
	if settings.SpiritualReminders {
		for _, r := range spiritualReminders {
			out = append(out, r.notification(NotifySpiritual, day))
		}
	}
	if settings.HealthReminders {
		for _, r := range healthReminders {
			out = append(out, r.notification(NotifyHealth, day))
		}
	}

	if s.holidays != nil && hasIftar {
		if h, ok := s.holidays.IsHoliday(now); ok {
			out = append(out, newNotification(NotifyHoliday, h.Name, h.Description, maghrib.Timestamp))
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

func (r fixedReminder) notification(t NotificationType, day time.Time) Notification {
	at := time.Date(day.Year(), day.Month(), day.Day(), r.hour, r.minute, 0, 0, day.Location())
	return newNotification(t, r.title, r.msg, at)
}

func newNotification(t NotificationType, title, msg string, at time.Time) Notification {
	return Notification{ID: uuid.NewString(), Type: t, Title: title, Message: msg, Time: at}
}
