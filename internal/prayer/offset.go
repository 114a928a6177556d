package prayer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salah/internal/method"
)

// maxOffsetHours bounds UTC offsets to those in use (UTC-12 to UTC+14).
const maxOffsetHours = 14

// ValidateOffset rejects offsets outside [-14, 14] hours.
func ValidateOffset(hours float64) error {
	if !(hours >= -maxOffsetHours && hours <= maxOffsetHours) {
		return fmt.Errorf("%w: utc offset %v out of range", method.ErrInvalidConfiguration, hours)
	}
	return nil
}

// OffsetFor returns the UTC offset in hours that loc observes at local noon
// of date's civil day, so DST transitions at night do not affect the day.
func OffsetFor(loc *time.Location, date time.Time) float64 {
	y, m, d := date.Date()
	_, off := time.Date(y, m, d, 12, 0, 0, 0, loc).Zone()
	return float64(off) / 3600
}

// ParseOffset parses "6.5", "+06:30", "-3" or "UTC+5:45" into hours.
func ParseOffset(s string) (float64, error) {
	raw := strings.TrimSpace(s)
	v := strings.ToUpper(raw)
	v = strings.TrimPrefix(v, "UTC")
	v = strings.TrimPrefix(v, "GMT")
	if v == "" {
		return 0, fmt.Errorf("%w: empty utc offset", method.ErrInvalidConfiguration)
	}

	var hours float64
	if hh, mm, ok := strings.Cut(v, ":"); ok {
		sign := 1.0
		if strings.HasPrefix(hh, "-") {
			sign = -1
		}
		h, err := strconv.Atoi(strings.TrimLeft(hh, "+-"))
		if err != nil {
			return 0, fmt.Errorf("%w: invalid utc offset %q", method.ErrInvalidConfiguration, raw)
		}
		m, err := strconv.Atoi(mm)
		if err != nil || m < 0 || m >= 60 {
			return 0, fmt.Errorf("%w: invalid utc offset %q", method.ErrInvalidConfiguration, raw)
		}
		hours = sign * (float64(h) + float64(m)/60)
	} else {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid utc offset %q", method.ErrInvalidConfiguration, raw)
		}
		hours = f
	}

	if err := ValidateOffset(hours); err != nil {
		return 0, err
	}
	return hours, nil
}

// Zone returns a fixed time.Location for an offset in hours.
func Zone(hours float64) *time.Location {
	secs := int(hours * 3600)
	sign := "+"
	if secs < 0 {
		sign = "-"
	}
	abs := secs
	if abs < 0 {
		abs = -abs
	}
	return time.FixedZone(fmt.Sprintf("UTC%s%02d:%02d", sign, abs/3600, (abs%3600)/60), secs)
}
