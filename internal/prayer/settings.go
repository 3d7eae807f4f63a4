package prayer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SettingsKey is the store key holding the prayer settings.
const SettingsKey = "prayer_settings"

var (
	// ErrUnknownSetting is returned by SetSetting for an unrecognized key.
	ErrUnknownSetting = errors.New("unknown setting")
	// ErrInvalidSetting is returned by SetSetting for a value that cannot be parsed.
	ErrInvalidSetting = errors.New("invalid setting value")
)

// CalculationMethod is an Al Adhan calculation method id.
type CalculationMethod int

// DefaultMethod is the Gulf Region method, matching the default location.
const DefaultMethod CalculationMethod = 8

// CalculationMethods lists all supported Al Adhan API calculation methods.
var CalculationMethods = []struct {
	ID   CalculationMethod
	Name string
}{
	{0, "Shia Ithna-Ashari (Jafari)"},
	{1, "University of Islamic Sciences, Karachi"},
	{2, "Islamic Society of North America (ISNA)"},
	{3, "Muslim World League (MWL)"},
	{4, "Umm Al-Qura University, Makkah"},
	{5, "Egyptian General Authority of Survey"},
	{7, "Institute of Geophysics, University of Tehran"},
	{8, "Gulf Region"},
	{9, "Kuwait"},
	{10, "Qatar"},
	{11, "Majlis Ugama Islam Singapura (Singapore)"},
	{12, "Union Organization Islamic de France"},
	{13, "Diyanet Isleri Baskanligi, Turkey (experimental)"},
	{14, "Spiritual Administration of Muslims of Russia"},
	{15, "Moonsighting Committee Worldwide"},
	{16, "Dubai (experimental)"},
	{17, "JAKIM (Malaysia)"},
	{18, "Tunisia"},
	{19, "Algeria"},
	{20, "KEMENAG (Indonesia)"},
	{21, "Morocco"},
	{22, "Comunidade Islamica de Lisboa (Portugal)"},
	{23, "Ministry of Awqaf, Jordan"},
}

// Name returns the method's display name, or "" for an unknown id.
func (m CalculationMethod) Name() string {
	for _, cm := range CalculationMethods {
		if cm.ID == m {
			return cm.Name
		}
	}
	return ""
}

// Valid reports whether m is a known method id.
func (m CalculationMethod) Valid() bool {
	return m.Name() != ""
}

// Madhab selects the juristic school used for Asr.
type Madhab string

const (
	MadhabShafi  Madhab = "shafi"
	MadhabHanafi Madhab = "hanafi"
)

// Code returns the Al Adhan "school" parameter for the madhab.
func (m Madhab) Code() int {
	if m == MadhabHanafi {
		return 1
	}
	return 0
}

// LocationMode selects how the observer position is resolved.
type LocationMode string

const (
	LocationAuto   LocationMode = "auto"
	LocationManual LocationMode = "manual"
)

// Notifications holds the reminder preferences. Only the timing is computed
// here; delivery belongs to the caller.
type Notifications struct {
	Enabled         bool `json:"enabled"`
	ReminderMinutes int  `json:"reminderMinutes"` // lead time before each prayer
	Adhan           bool `json:"adhan"`
}

// Settings are the user's prayer preferences.
type Settings struct {
	Method         CalculationMethod `json:"method"`
	Madhab         Madhab            `json:"madhab"`
	Offsets        map[string]int    `json:"offsets"` // minutes, per prayer
	Notifications  Notifications     `json:"notifications"`
	LocationMode   LocationMode      `json:"locationMode"`
	ManualLocation *Location         `json:"manualLocation,omitempty"`
}

// SettingsPatch is a partial update; nil fields are left unchanged and
// Offsets entries are merged per prayer.
type SettingsPatch struct {
	Method         *CalculationMethod `json:"method,omitempty"`
	Madhab         *Madhab            `json:"madhab,omitempty"`
	Offsets        map[string]int     `json:"offsets,omitempty"`
	Notifications  *Notifications     `json:"notifications,omitempty"`
	LocationMode   *LocationMode      `json:"locationMode,omitempty"`
	ManualLocation *Location          `json:"manualLocation,omitempty"`
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{
		Method:  DefaultMethod,
		Madhab:  MadhabShafi,
		Offsets: map[string]int{Fajr: 0, Dhuhr: 0, Asr: 0, Maghrib: 0, Isha: 0},
		Notifications: Notifications{
			Enabled:         true,
			ReminderMinutes: 10,
			Adhan:           false,
		},
		LocationMode: LocationAuto,
	}
}

const (
	minOffset      = -60
	maxOffset      = 60
	maxReminderMin = 120
)

// normalize clamps every field into its valid range.
func (s Settings) normalize() Settings {
	d := DefaultSettings()

	if !s.Method.Valid() {
		s.Method = d.Method
	}
	if s.Madhab != MadhabShafi && s.Madhab != MadhabHanafi {
		s.Madhab = d.Madhab
	}
	if s.LocationMode != LocationAuto && s.LocationMode != LocationManual {
		s.LocationMode = d.LocationMode
	}

	offsets := make(map[string]int, len(Names))
	for _, n := range Names {
		offsets[n] = clampInt(s.Offsets[n], minOffset, maxOffset)
	}
	s.Offsets = offsets

	s.Notifications.ReminderMinutes = clampInt(s.Notifications.ReminderMinutes, 0, maxReminderMin)

	if s.ManualLocation != nil {
		loc := *s.ManualLocation
		loc.Latitude = clampFloat(loc.Latitude, -90, 90)
		loc.Longitude = clampFloat(loc.Longitude, -180, 180)
		s.ManualLocation = &loc
	}
	return s
}

// clone returns a deep copy.
func (s Settings) clone() Settings {
	offsets := make(map[string]int, len(s.Offsets))
	for k, v := range s.Offsets {
		offsets[k] = v
	}
	s.Offsets = offsets
	if s.ManualLocation != nil {
		loc := *s.ManualLocation
		s.ManualLocation = &loc
	}
	return s
}

// apply merges a patch into s.
func (s Settings) apply(p SettingsPatch) Settings {
	s = s.clone()
	if p.Method != nil {
		s.Method = *p.Method
	}
	if p.Madhab != nil {
		s.Madhab = *p.Madhab
	}
	for name, v := range p.Offsets {
		if IsValidName(name) {
			s.Offsets[name] = v
		}
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	if p.LocationMode != nil {
		s.LocationMode = *p.LocationMode
	}
	if p.ManualLocation != nil {
		loc := *p.ManualLocation
		s.ManualLocation = &loc
	}
	return s.normalize()
}

// SettingKeys lists every key accepted by ParseSetting.
var SettingKeys = []string{
	"method", "madhab",
	"offset.fajr", "offset.dhuhr", "offset.asr", "offset.maghrib", "offset.isha",
	"notifications.enabled", "notifications.reminder_minutes", "notifications.adhan",
	"location_mode",
	"latitude", "longitude", "city", "country",
}

// ParseSetting turns a key/value pair from the command line into a patch
// against current. Setting any manual-location field switches the location
// mode to manual.
func ParseSetting(current Settings, key, value string) (SettingsPatch, error) {
	value = strings.TrimSpace(value)
	var p SettingsPatch

	switch {
	case key == "method":
		v, err := strconv.Atoi(value)
		if err != nil {
			return p, fmt.Errorf("%w: method %q must be an integer", ErrInvalidSetting, value)
		}
		m := CalculationMethod(v)
		if !m.Valid() {
			return p, fmt.Errorf("%w: method %q is not a known calculation method", ErrInvalidSetting, value)
		}
		p.Method = &m

	case key == "madhab" || key == "school":
		var m Madhab
		switch strings.ToLower(value) {
		case "0", "shafi":
			m = MadhabShafi
		case "1", "hanafi":
			m = MadhabHanafi
		default:
			return p, fmt.Errorf("%w: madhab %q must be shafi (0) or hanafi (1)", ErrInvalidSetting, value)
		}
		p.Madhab = &m

	case strings.HasPrefix(key, "offset."):
		name := strings.TrimPrefix(key, "offset.")
		if !IsValidName(name) {
			return p, fmt.Errorf("%w %q", ErrUnknownSetting, key)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return p, fmt.Errorf("%w: offset %q must be a whole number of minutes", ErrInvalidSetting, value)
		}
		p.Offsets = map[string]int{name: v}

	case strings.HasPrefix(key, "notifications."):
		n := current.Notifications
		switch strings.TrimPrefix(key, "notifications.") {
		case "enabled":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return p, fmt.Errorf("%w: %s %q must be true or false", ErrInvalidSetting, key, value)
			}
			n.Enabled = b
		case "adhan":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return p, fmt.Errorf("%w: %s %q must be true or false", ErrInvalidSetting, key, value)
			}
			n.Adhan = b
		case "reminder_minutes":
			v, err := strconv.Atoi(value)
			if err != nil {
				return p, fmt.Errorf("%w: %s %q must be an integer", ErrInvalidSetting, key, value)
			}
			n.ReminderMinutes = v
		default:
			return p, fmt.Errorf("%w %q", ErrUnknownSetting, key)
		}
		p.Notifications = &n

	case key == "location_mode":
		m := LocationMode(strings.ToLower(value))
		if m != LocationAuto && m != LocationManual {
			return p, fmt.Errorf("%w: location_mode %q must be auto or manual", ErrInvalidSetting, value)
		}
		p.LocationMode = &m

	case key == "latitude" || key == "longitude" || key == "city" || key == "country":
		loc := DefaultLocation
		if current.ManualLocation != nil {
			loc = *current.ManualLocation
		}
		switch key {
		case "latitude":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return p, fmt.Errorf("%w: latitude %q must be a number", ErrInvalidSetting, value)
			}
			loc.Latitude = v
		case "longitude":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return p, fmt.Errorf("%w: longitude %q must be a number", ErrInvalidSetting, value)
			}
			loc.Longitude = v
		case "city":
			loc.City = value
		case "country":
			loc.Country = value
		}
		manual := LocationManual
		p.ManualLocation = &loc
		p.LocationMode = &manual

	default:
		return p, fmt.Errorf("%w %q; valid keys: %s", ErrUnknownSetting, key, strings.Join(SettingKeys, ", "))
	}

	return p, nil
}

// Get returns the string value of a settings key.
func (s Settings) Get(key string) (string, error) {
	switch {
	case key == "method":
		return strconv.Itoa(int(s.Method)), nil
	case key == "madhab" || key == "school":
		return string(s.Madhab), nil
	case strings.HasPrefix(key, "offset."):
		name := strings.TrimPrefix(key, "offset.")
		if !IsValidName(name) {
			return "", fmt.Errorf("%w %q", ErrUnknownSetting, key)
		}
		return strconv.Itoa(s.Offsets[name]), nil
	case key == "notifications.enabled":
		return strconv.FormatBool(s.Notifications.Enabled), nil
	case key == "notifications.adhan":
		return strconv.FormatBool(s.Notifications.Adhan), nil
	case key == "notifications.reminder_minutes":
		return strconv.Itoa(s.Notifications.ReminderMinutes), nil
	case key == "location_mode":
		return string(s.LocationMode), nil
	case key == "latitude", key == "longitude", key == "city", key == "country":
		if s.ManualLocation == nil {
			return "", nil
		}
		switch key {
		case "latitude":
			return strconv.FormatFloat(s.ManualLocation.Latitude, 'f', -1, 64), nil
		case "longitude":
			return strconv.FormatFloat(s.ManualLocation.Longitude, 'f', -1, 64), nil
		case "city":
			return s.ManualLocation.City, nil
		default:
			return s.ManualLocation.Country, nil
		}
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownSetting, key)
	}
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

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
