package ramadan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SettingsKey is the store key of the persisted Ramadan settings.
const SettingsKey = "ramadan_settings"

// Settings control Ramadan mode and the advice derived from it.
type Settings struct {
	Enabled                    bool `json:"enabled"`
	AutoDetect                 bool `json:"autoDetect"`
	SuhoorReminderMinutes      int  `json:"suhoorReminderMinutes"`
	IftarReminderMinutes       int  `json:"iftarReminderMinutes"`
	SpiritualReminders         bool `json:"spiritualReminders"`
	HealthReminders            bool `json:"healthReminders"`
	AvoidMeetingsDuringFasting bool `json:"avoidMeetingsDuringFasting"`
	PreferPostIftarMeetings    bool `json:"preferPostIftarMeetings"`
}

// SettingsPatch is a partial update; nil fields are left unchanged.
type SettingsPatch struct {
	Enabled                    *bool `json:"enabled,omitempty"`
	AutoDetect                 *bool `json:"autoDetect,omitempty"`
	SuhoorReminderMinutes      *int  `json:"suhoorReminderMinutes,omitempty"`
	IftarReminderMinutes       *int  `json:"iftarReminderMinutes,omitempty"`
	SpiritualReminders         *bool `json:"spiritualReminders,omitempty"`
	HealthReminders            *bool `json:"healthReminders,omitempty"`
	AvoidMeetingsDuringFasting *bool `json:"avoidMeetingsDuringFasting,omitempty"`
	PreferPostIftarMeetings    *bool `json:"preferPostIftarMeetings,omitempty"`
}

const maxReminderMinutes = 180

var (
	// ErrUnknownSetting is returned by ParseSetting for an unrecognized key.
	ErrUnknownSetting = errors.New("unknown ramadan setting")
	// ErrInvalidSetting is returned by ParseSetting for a value that cannot be parsed.
	ErrInvalidSetting = errors.New("invalid ramadan setting value")
)

// SettingKeys lists every key accepted by ParseSetting.
var SettingKeys = []string{
	"enabled",
	"auto_detect",
	"suhoor_reminder_minutes",
	"iftar_reminder_minutes",
	"spiritual_reminders",
	"health_reminders",
	"avoid_meetings_during_fasting",
	"prefer_post_iftar_meetings",
}

// ParseSetting turns a key and its string value into a patch.
func ParseSetting(key, value string) (SettingsPatch, error) {
	value = strings.TrimSpace(value)
	var p SettingsPatch

	boolField := map[string]**bool{
		"enabled":                       &p.Enabled,
		"auto_detect":                   &p.AutoDetect,
		"spiritual_reminders":           &p.SpiritualReminders,
		"health_reminders":              &p.HealthReminders,
		"avoid_meetings_during_fasting": &p.AvoidMeetingsDuringFasting,
		"prefer_post_iftar_meetings":    &p.PreferPostIftarMeetings,
	}
	intField := map[string]**int{
		"suhoor_reminder_minutes": &p.SuhoorReminderMinutes,
		"iftar_reminder_minutes":  &p.IftarReminderMinutes,
	}

	if dst, ok := boolField[key]; ok {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return SettingsPatch{}, fmt.Errorf("%w: %s %q must be true or false", ErrInvalidSetting, key, value)
		}
		*dst = &b
		return p, nil
	}
	if dst, ok := intField[key]; ok {
		v, err := strconv.Atoi(value)
		if err != nil {
			return SettingsPatch{}, fmt.Errorf("%w: %s %q must be a whole number of minutes", ErrInvalidSetting, key, value)
		}
		*dst = &v
		return p, nil
	}
	return SettingsPatch{}, fmt.Errorf("%w %q", ErrUnknownSetting, key)
}

// DefaultSettings returns the settings used before anything is persisted.
func DefaultSettings() Settings {
	return Settings{
		AutoDetect:            true,
		SuhoorReminderMinutes: 30,
		IftarReminderMinutes:  15,
		SpiritualReminders:    true,
		HealthReminders:       true,
	}
}

func (s Settings) normalize() Settings {
	s.SuhoorReminderMinutes = clampInt(s.SuhoorReminderMinutes, 0, maxReminderMinutes)
	s.IftarReminderMinutes = clampInt(s.IftarReminderMinutes, 0, maxReminderMinutes)
	return s
}

func (s Settings) apply(p SettingsPatch) Settings {
	if p.Enabled != nil {
		s.Enabled = *p.Enabled
	}
	if p.AutoDetect != nil {
		s.AutoDetect = *p.AutoDetect
	}
	if p.SuhoorReminderMinutes != nil {
		s.SuhoorReminderMinutes = *p.SuhoorReminderMinutes
	}
	if p.IftarReminderMinutes != nil {
		s.IftarReminderMinutes = *p.IftarReminderMinutes
	}
	if p.SpiritualReminders != nil {
		s.SpiritualReminders = *p.SpiritualReminders
	}
	if p.HealthReminders != nil {
		s.HealthReminders = *p.HealthReminders
	}
	if p.AvoidMeetingsDuringFasting != nil {
		s.AvoidMeetingsDuringFasting = *p.AvoidMeetingsDuringFasting
	}
	if p.PreferPostIftarMeetings != nil {
		s.PreferPostIftarMeetings = *p.PreferPostIftarMeetings
	}
	return s.normalize()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
