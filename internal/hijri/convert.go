// Package hijri converts Gregorian dates to the arithmetic (tabular) Hijri
// calendar and looks up notable Islamic occasions.
//
// The arithmetic calendar can differ by a day from local moon-sighting
// announcements; callers correct for that with a signed day offset.
package hijri

import (
	"fmt"
	"math"
	"time"
)

const (
	// epochJDN anchors the cycle one tabular year before 1 Muharram AH 1,
	// which falls on JDN 1948439 (Thursday 15 July 622, Julian).
	epochJDN = 1948084
	// cycleDays is the length of the 30-year intercalation cycle.
	cycleDays = 10631
	// yearDays is the mean Hijri year length implied by the cycle.
	yearDays = cycleDays / 30.0
	// yearShift nudges year boundaries so leap days fall on the tabular years.
	yearShift = 8.01 / 60.0
)

// Date is a day in the Hijri calendar.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// MonthNames are the English transliterations of the Hijri months, Muharram first.
var MonthNames = [12]string{
	"Muharram", "Safar", "Rabi' al-Awwal", "Rabi' al-Thani",
	"Jumada al-Ula", "Jumada al-Akhirah", "Rajab", "Sha'ban",
	"Ramadan", "Shawwal", "Dhu al-Qi'dah", "Dhu al-Hijjah",
}

// Ramadan is the month number of Ramadan.
const Ramadan = 9

// MonthName returns the English name of the date's month.
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	return MonthNames[d.Month-1]
}

// Format returns the date as "DD MonthName YYYY AH".
func (d Date) Format() string {
	return fmt.Sprintf("%d %s %d AH", d.Day, d.MonthName(), d.Year)
}

// String implements fmt.Stringer using Format.
func (d Date) String() string {
	return d.Format()
}

// Convert returns the Hijri date for the civil date of t, after shifting it by
// offsetDays (typically -1, 0 or +1 for a local moon-sighting correction).
// Only the year, month and day of t in its own location are used.
func Convert(t time.Time, offsetDays int) Date {
	y, m, d := t.Date()
	shifted := time.Date(y, m, d+offsetDays, 12, 0, 0, 0, time.UTC)
	return FromJDN(JulianDayNumber(shifted.Year(), int(shifted.Month()), shifted.Day()))
}

// JulianDayNumber returns the Julian Day Number of a calendar date. Dates
// before 15 October 1582 are read as Julian calendar dates, later ones as
// Gregorian.
func JulianDayNumber(year, month, day int) int {
	y, m := float64(year), float64(month)
	if month < 3 {
		y--
		m += 12
	}

	b := 0.0
	if isGregorian(year, month, day) {
		a := math.Floor(y / 100)
		b = 2 - a + math.Floor(a/4)
	}

	return int(math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + float64(day) + b - 1524)
}

// isGregorian reports whether the date falls on or after the Gregorian cutover.
func isGregorian(year, month, day int) bool {
	switch {
	case year != 1582:
		return year > 1582
	case month != 10:
		return month > 10
	default:
		return day >= 15
	}
}

// FromJDN converts a Julian Day Number to a Hijri date using the 30-year
// arithmetic cycle anchored at the astronomical epoch.
func FromJDN(jdn int) Date {
	z := float64(jdn - epochJDN)
	cycle := math.Floor(z / cycleDays)
	z -= cycleDays * cycle

	j := math.Floor((z - yearShift) / yearDays)
	year := 30*cycle + j
	z -= math.Floor(j*yearDays + yearShift)

	month := math.Floor((z + 28.5001) / 29.5)
	if month == 13 {
		month = 12
	}
	day := z - math.Floor(29.5001*month-29)

	return Date{Day: int(day), Month: int(month), Year: int(year)}
}
