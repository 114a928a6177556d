package config

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/salah/internal/method"
	"github.com/smokyabdulrahman/salah/internal/prayer"
)

// Settings are the calculation parameters of a merged config, in domain types.
type Settings struct {
	Method       method.Method
	CustomAngles *method.Angles
	AsrShadow    method.AsrShadow
	HijriOffset  int
	Calibration  prayer.Calibration
	HighLatitude prayer.HighLatitudePolicy
}

// Settings converts the config into calculation parameters. Unset keys fall
// back to Defaults. Explicit altitude and buffer keys override the preset.
func (c Config) Settings() (Settings, error) {
	c = c.WithDefaults()

	var s Settings
	var err error

	if s.Method, err = method.Parse(c.Method); err != nil {
		return Settings{}, err
	}
	if s.Method == method.Custom {
		if c.FajrAngle == nil || c.IshaAngle == nil {
			return Settings{}, fmt.Errorf("%w: method custom requires fajr_angle and isha_angle", method.ErrInvalidConfiguration)
		}
		s.CustomAngles = &method.Angles{Fajr: *c.FajrAngle, Isha: *c.IshaAngle}
	}
	if s.AsrShadow, err = method.ParseAsrShadow(c.Asr); err != nil {
		return Settings{}, err
	}
	if c.HijriOffset != nil {
		s.HijriOffset = *c.HijriOffset
	}
	if s.Calibration, err = prayer.CalibrationPreset(c.Calibration); err != nil {
		return Settings{}, err
	}
	overrideFloat(&s.Calibration.SunriseAltitude, c.SunriseAltitude)
	overrideFloat(&s.Calibration.SunsetAltitude, c.SunsetAltitude)
	overrideFloat(&s.Calibration.FajrBuffer, c.FajrBuffer)
	overrideFloat(&s.Calibration.ZawalBuffer, c.ZawalBuffer)
	overrideFloat(&s.Calibration.MaghribBuffer, c.MaghribBuffer)
	overrideFloat(&s.Calibration.IshaBuffer, c.IshaBuffer)

	if s.HighLatitude, err = prayer.ParseHighLatitudePolicy(c.HighLatitude); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Apply copies the settings into a calculation request.
func (s Settings) Apply(req *prayer.Request) {
	cal := s.Calibration
	req.Method = s.Method
	req.CustomAngles = s.CustomAngles
	req.AsrShadow = s.AsrShadow
	req.HijriOffset = s.HijriOffset
	req.Calibration = &cal
	req.HighLatitude = s.HighLatitude
}

func overrideFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Zone resolves the timezone key: an IANA name, a fixed offset, or the
// fallback location when unset.
func (c Config) Zone(fallback *time.Location) (*time.Location, error) {
	if c.Timezone == "" {
		return fallback, nil
	}
	if hours, err := prayer.ParseOffset(c.Timezone); err == nil {
		return prayer.Zone(hours), nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
