package prayer

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrNoSolution marks a prayer whose defining solar altitude is never reached
// on the requested day at the requested latitude.
var ErrNoSolution = errors.New("no geometric solution")

const minutesPerDay = 24 * 60

// Time is one computed prayer time on a civil day.
type Time struct {
	Name string `json:"name"`
	// Hours is the local clock time in [0, 24).
	Hours float64 `json:"-"`
	// Minute is the minute of day in [0, 1440), the value schedulers consume.
	Minute int `json:"minute"`
	// DayShift is -1 or +1 when the raw time fell before midnight of the
	// requested date or after the following midnight (e.g. Isha past midnight).
	DayShift int `json:"day_shift,omitempty"`
	// Clock is the 12-hour rendering, e.g. "4:46 AM", or "--:--" when undefined.
	Clock string `json:"clock"`
	// Undefined is set when the sun never reaches the prayer's altitude.
	Undefined bool `json:"undefined,omitempty"`
	// Adjusted is set when a high-latitude policy substituted the value.
	Adjusted bool `json:"adjusted,omitempty"`
}

// undefinedClock is rendered in place of a time that does not exist.
const undefinedClock = "--:--"

// newTime normalizes raw local hours (possibly outside [0,24)) into a Time.
func newTime(name string, raw float64) Time {
	shift := int(math.Floor(raw / 24))
	h := raw - 24*float64(shift)

	minute := int(math.Floor(h * 60))
	if minute >= minutesPerDay {
		minute -= minutesPerDay
		shift++
		h = 0
	}

	return Time{
		Name:     name,
		Hours:    h,
		Minute:   minute,
		DayShift: shift,
		Clock:    formatClock12(minute),
	}
}

// undefinedTime builds the explicit "no solution" marker for a prayer.
func undefinedTime(name string) Time {
	return Time{Name: name, Clock: undefinedClock, Undefined: true}
}

// formatClock12 renders a minute of day as "h:mm AM".
func formatClock12(minute int) string {
	h, m := minute/60, minute%60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, period)
}

// Err returns an error wrapping ErrNoSolution for an undefined time, nil otherwise.
func (t Time) Err() error {
	if t.Undefined {
		return fmt.Errorf("%s: %w", t.Name, ErrNoSolution)
	}
	return nil
}

// Format24 renders the time as "15:04", or "--:--" when undefined.
func (t Time) Format24() string {
	if t.Undefined {
		return undefinedClock
	}
	return fmt.Sprintf("%02d:%02d", t.Minute/60, t.Minute%60)
}

// String returns the 12-hour clock rendering.
func (t Time) String() string {
	return t.Clock
}

// On returns the absolute instant of t for the civil date of date, in loc.
// loc should have the UTC offset the time was calculated with.
func (t Time) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d+t.DayShift, t.Minute/60, t.Minute%60, 0, 0, loc)
}

// TimeSet holds the six daily prayer times.
type TimeSet struct {
	Fajr    Time `json:"fajr"`
	Sunrise Time `json:"sunrise"`
	// Zawal is the Dhuhr entry: solar noon plus the configured buffer.
	Zawal   Time `json:"dhuhr"`
	Asr     Time `json:"asr"`
	Maghrib Time `json:"maghrib"`
	Isha    Time `json:"isha"`
}

// All returns the six times in chronological order.
func (s TimeSet) All() []Time {
	return []Time{s.Fajr, s.Sunrise, s.Zawal, s.Asr, s.Maghrib, s.Isha}
}

// Get returns the time with the given display name.
func (s TimeSet) Get(name string) (Time, bool) {
	for _, t := range s.All() {
		if t.Name == name {
			return t, true
		}
	}
	return Time{}, false
}

// Undefined lists the names of the prayers that have no time.
func (s TimeSet) Undefined() []string {
	var names []string
	for _, t := range s.All() {
		if t.Undefined {
			names = append(names, t.Name)
		}
	}
	return names
}

// Err joins the per-prayer ErrNoSolution errors, or returns nil when every
// prayer has a time.
func (s TimeSet) Err() error {
	var errs []error
	for _, t := range s.All() {
		if err := t.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IshaAfterMidnight reports whether Isha falls on the following civil day.
func (s TimeSet) IshaAfterMidnight() bool {
	return !s.Isha.Undefined && s.Isha.DayShift > 0
}
