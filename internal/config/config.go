// Package config provides persistent configuration for the salah CLI.
//
// Configuration is stored as JSON at ~/.config/salah/config.json
// (XDG-compliant). The merge priority is: CLI flags > environment (SALAH_*,
// optionally from a .env file) > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/smokyabdulrahman/salah/internal/logging"
	"github.com/smokyabdulrahman/salah/internal/method"
	"github.com/smokyabdulrahman/salah/internal/prayer"
)

const (
	configDirName  = "salah"
	configFileName = "config.json"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"city",
	"latitude", "longitude",
	"timezone",
	"method", "fajr_angle", "isha_angle",
	"asr",
	"hijri_offset",
	"calibration", "sunrise_altitude", "sunset_altitude",
	"fajr_buffer", "zawal_buffer", "maghrib_buffer", "isha_buffer",
	"high_latitude",
	"time_format",
	"prayers",
	"cache_dir",
	"log_level",
}

// Config holds all user-configurable settings.
// Empty strings and nil pointers mean "not set" (use defaults or auto-detect).
type Config struct {
	City      string   `json:"city,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	// Timezone is an IANA zone name or a fixed offset such as "6.5".
	Timezone string `json:"timezone,omitempty" validate:"omitempty,timezone_or_offset"`

	Method    string   `json:"method,omitempty" validate:"omitempty,oneof=karachi mwl egypt ummalqura custom"`
	FajrAngle *float64 `json:"fajr_angle,omitempty" validate:"omitempty,gte=-30,lt=0"`
	IshaAngle *float64 `json:"isha_angle,omitempty" validate:"omitempty,gte=-30,lt=0"`
	Asr       string   `json:"asr,omitempty" validate:"omitempty,oneof=shafi hanafi"`

	HijriOffset *int `json:"hijri_offset,omitempty" validate:"omitempty,gte=-3,lte=3"`

	Calibration     string   `json:"calibration,omitempty" validate:"omitempty,oneof=standard myanmar"`
	SunriseAltitude *float64 `json:"sunrise_altitude,omitempty" validate:"omitempty,gte=-5,lte=5"`
	SunsetAltitude  *float64 `json:"sunset_altitude,omitempty" validate:"omitempty,gte=-5,lte=5"`
	FajrBuffer      *float64 `json:"fajr_buffer,omitempty" validate:"omitempty,gte=-60,lte=60"`
	ZawalBuffer     *float64 `json:"zawal_buffer,omitempty" validate:"omitempty,gte=-60,lte=60"`
	MaghribBuffer   *float64 `json:"maghrib_buffer,omitempty" validate:"omitempty,gte=-60,lte=60"`
	IshaBuffer      *float64 `json:"isha_buffer,omitempty" validate:"omitempty,gte=-60,lte=60"`

	HighLatitude string `json:"high_latitude,omitempty" validate:"omitempty,oneof=none fixed-interval angle-based"`

	TimeFormat string `json:"time_format,omitempty" validate:"omitempty,oneof=12h 24h"` // "12h" or "24h"
	Prayers    string `json:"prayers,omitempty" validate:"omitempty,prayer_list"`      // comma-separated list
	CacheDir   string `json:"cache_dir,omitempty"`
	LogLevel   string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	offset := 0
	return Config{
		Method:       method.Karachi.String(),
		Asr:          method.Hanafi.String(),
		HijriOffset:  &offset,
		Calibration:  "standard",
		HighLatitude: prayer.PolicyNone.String(),
		TimeFormat:   "12h",
		LogLevel:     logging.DefaultLevel,
	}
}

// WithDefaults fills every unset field from Defaults.
func (c Config) WithDefaults() Config {
	d := Defaults()
	if c.Method == "" {
		c.Method = d.Method
	}
	if c.Asr == "" {
		c.Asr = d.Asr
	}
	if c.HijriOffset == nil {
		c.HijriOffset = d.HijriOffset
	}
	if c.Calibration == "" {
		c.Calibration = d.Calibration
	}
	if c.HighLatitude == "" {
		c.HighLatitude = d.HighLatitude
	}
	if c.TimeFormat == "" {
		c.TimeFormat = d.TimeFormat
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	return c
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
// An empty value clears the key.
//
// Rejected values unwrap to geo.ErrInvalidCoordinate for latitude and
// longitude, and to method.ErrInvalidConfiguration for every other key.
func (c *Config) Set(key, value string) error {
	if err := c.set(key, strings.TrimSpace(value)); err != nil {
		return &configError{msg: err.Error(), kind: errorKind(key)}
	}
	return nil
}

func (c *Config) set(key, value string) error {
	switch key {
	case "city":
		c.City = value
	case "latitude":
		return setFloat(&c.Latitude, key, value, -90, 90)
	case "longitude":
		return setFloat(&c.Longitude, key, value, -180, 180)
	case "timezone":
		if value != "" && !validTimezone(value) {
			return fmt.Errorf("invalid timezone %q: must be an IANA zone or a UTC offset such as 6.5", value)
		}
		c.Timezone = value
	case "method":
		if value == "" {
			c.Method = ""
			return nil
		}
		m, err := method.Parse(value)
		if err != nil {
			return fmt.Errorf("invalid method %q: must be one of %s", value, strings.Join(method.Keys(), ", "))
		}
		c.Method = m.String()
	case "fajr_angle":
		return setFloat(&c.FajrAngle, key, value, -30, -0.01)
	case "isha_angle":
		return setFloat(&c.IshaAngle, key, value, -30, -0.01)
	case "asr":
		if value == "" {
			c.Asr = ""
			return nil
		}
		s, err := method.ParseAsrShadow(value)
		if err != nil {
			return fmt.Errorf("invalid asr %q: must be \"shafi\" or \"hanafi\"", value)
		}
		c.Asr = s.String()
	case "hijri_offset":
		if value == "" {
			c.HijriOffset = nil
			return nil
		}
		v, err := strconv.Atoi(value)
		if err != nil || v < -3 || v > 3 {
			return fmt.Errorf("invalid hijri_offset %q: must be an integer between -3 and 3", value)
		}
		c.HijriOffset = &v
	case "calibration":
		if value != "" {
			if _, err := prayer.CalibrationPreset(value); err != nil {
				return fmt.Errorf("invalid calibration %q: must be one of %s", value, strings.Join(prayer.CalibrationPresets(), ", "))
			}
		}
		c.Calibration = strings.ToLower(value)
	case "sunrise_altitude":
		return setFloat(&c.SunriseAltitude, key, value, -5, 5)
	case "sunset_altitude":
		return setFloat(&c.SunsetAltitude, key, value, -5, 5)
	case "fajr_buffer":
		return setFloat(&c.FajrBuffer, key, value, -prayer.MaxBuffer, prayer.MaxBuffer)
	case "zawal_buffer":
		return setFloat(&c.ZawalBuffer, key, value, -prayer.MaxBuffer, prayer.MaxBuffer)
	case "maghrib_buffer":
		return setFloat(&c.MaghribBuffer, key, value, -prayer.MaxBuffer, prayer.MaxBuffer)
	case "isha_buffer":
		return setFloat(&c.IshaBuffer, key, value, -prayer.MaxBuffer, prayer.MaxBuffer)
	case "high_latitude":
		if value == "" {
			c.HighLatitude = ""
			return nil
		}
		p, err := prayer.ParseHighLatitudePolicy(value)
		if err != nil {
			return fmt.Errorf("invalid high_latitude %q: must be none, fixed-interval or angle-based", value)
		}
		c.HighLatitude = p.String()
	case "time_format":
		if value != "" && value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		if value != "" && !validPrayerList(value) {
			return fmt.Errorf("invalid prayers list %q: names must be among %s", value, strings.Join(prayer.AllPrayerNames, ", "))
		}
		c.Prayers = value
	case "cache_dir":
		c.CacheDir = value
	case "log_level":
		if value != "" {
			if _, err := logging.ParseLevel(value); err != nil {
				return err
			}
		}
		c.LogLevel = strings.ToLower(value)
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "city":
		return c.City, nil
	case "latitude":
		return formatFloat(c.Latitude), nil
	case "longitude":
		return formatFloat(c.Longitude), nil
	case "timezone":
		return c.Timezone, nil
	case "method":
		return c.Method, nil
	case "fajr_angle":
		return formatFloat(c.FajrAngle), nil
	case "isha_angle":
		return formatFloat(c.IshaAngle), nil
	case "asr":
		return c.Asr, nil
	case "hijri_offset":
		if c.HijriOffset == nil {
			return "", nil
		}
		return strconv.Itoa(*c.HijriOffset), nil
	case "calibration":
		return c.Calibration, nil
	case "sunrise_altitude":
		return formatFloat(c.SunriseAltitude), nil
	case "sunset_altitude":
		return formatFloat(c.SunsetAltitude), nil
	case "fajr_buffer":
		return formatFloat(c.FajrBuffer), nil
	case "zawal_buffer":
		return formatFloat(c.ZawalBuffer), nil
	case "maghrib_buffer":
		return formatFloat(c.MaghribBuffer), nil
	case "isha_buffer":
		return formatFloat(c.IshaBuffer), nil
	case "high_latitude":
		return c.HighLatitude, nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "cache_dir":
		return c.CacheDir, nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

func setFloat(dst **float64, key, value string, lo, hi float64) error {
	if value == "" {
		*dst = nil
		return nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: must be a number", key, value)
	}
	if !(v >= lo && v <= hi) {
		return fmt.Errorf("invalid %s %q: must be between %v and %v", key, value, lo, hi)
	}
	*dst = &v
	return nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// PrayerNames returns the configured prayer list, or the defaults.
func (c *Config) PrayerNames() []string {
	if c.Prayers == "" {
		return prayer.DefaultPrayerNames
	}
	var names []string
	for _, n := range strings.Split(c.Prayers, ",") {
		if name, ok := prayer.CanonicalName(n); ok {
			names = append(names, name)
		}
	}
	return names
}

func validPrayerList(s string) bool {
	for _, n := range strings.Split(s, ",") {
		if _, ok := prayer.CanonicalName(n); !ok {
			return false
		}
	}
	return true
}
