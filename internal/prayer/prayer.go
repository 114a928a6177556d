package prayer

import (
	"fmt"
	"strings"
	"time"
)

// Prayer is a single prayer resolved to an absolute instant.
type Prayer struct {
	Name string
	Time time.Time
	// Adjusted marks a time substituted by a high-latitude policy.
	Adjusted bool
}

// AllPrayerNames lists every time the calculator produces, in chronological order.
var AllPrayerNames = []string{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// DefaultPrayerNames are the prayers tracked by default.
var DefaultPrayerNames = AllPrayerNames

// ShortNames maps full prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	Fajr:    "F",
	Sunrise: "S",
	Dhuhr:   "D",
	Asr:     "A",
	Maghrib: "M",
	Isha:    "I",
}

// CanonicalName matches a user-supplied prayer name case-insensitively.
// "Zawal" and "Zuhr" are accepted for Dhuhr.
func CanonicalName(s string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "zawal", "zuhr", "dhuhur":
		return Dhuhr, true
	}
	for _, name := range AllPrayerNames {
		if strings.ToLower(name) == key {
			return name, true
		}
	}
	return "", false
}

// Prayers resolves the selected names of set to absolute instants on date's
// civil day in loc. Undefined times are skipped.
func Prayers(set TimeSet, date time.Time, loc *time.Location, selected []string) ([]Prayer, error) {
	var prayers []Prayer
	for _, raw := range selected {
		name, ok := CanonicalName(raw)
		if !ok {
			return nil, fmt.Errorf("unknown prayer name: %s", raw)
		}

		t, _ := set.Get(name)
		if t.Undefined {
			continue
		}
		prayers = append(prayers, Prayer{Name: name, Time: t.On(date, loc), Adjusted: t.Adjusted})
	}

	return prayers, nil
}

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers for today have passed, it returns nil (caller should look at tomorrow).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the most recent prayer at or before now, or nil when
// none of today's prayers has started yet.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var current *Prayer
	for i := range prayers {
		if !prayers[i].Time.After(now) {
			current = &prayers[i]
		}
	}
	return current
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
