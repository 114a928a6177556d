package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// EnvPrefix namespaces environment overrides, e.g. SALAH_METHOD=mwl.
const EnvPrefix = "SALAH"

// envOverrides maps SALAH_* variables onto config keys. Values go through
// Set so they are validated exactly like `config set`.
type envOverrides struct {
	City            *string `envconfig:"CITY"`
	Latitude        *string `envconfig:"LATITUDE"`
	Longitude       *string `envconfig:"LONGITUDE"`
	Timezone        *string `envconfig:"TIMEZONE"`
	Method          *string `envconfig:"METHOD"`
	FajrAngle       *string `envconfig:"FAJR_ANGLE"`
	IshaAngle       *string `envconfig:"ISHA_ANGLE"`
	Asr             *string `envconfig:"ASR"`
	HijriOffset     *string `envconfig:"HIJRI_OFFSET"`
	Calibration     *string `envconfig:"CALIBRATION"`
	SunriseAltitude *string `envconfig:"SUNRISE_ALTITUDE"`
	SunsetAltitude  *string `envconfig:"SUNSET_ALTITUDE"`
	FajrBuffer      *string `envconfig:"FAJR_BUFFER"`
	ZawalBuffer     *string `envconfig:"ZAWAL_BUFFER"`
	MaghribBuffer   *string `envconfig:"MAGHRIB_BUFFER"`
	IshaBuffer      *string `envconfig:"ISHA_BUFFER"`
	HighLatitude    *string `envconfig:"HIGH_LATITUDE"`
	TimeFormat      *string `envconfig:"TIME_FORMAT"`
	Prayers         *string `envconfig:"PRAYERS"`
	CacheDir        *string `envconfig:"CACHE_DIR"`
	LogLevel        *string `envconfig:"LOG_LEVEL"`
}

type override struct {
	key   string
	value *string
}

// ordered returns the overrides in ValidKeys order.
func (e envOverrides) ordered() []override {
	return []override{
		{"city", e.City},
		{"latitude", e.Latitude},
		{"longitude", e.Longitude},
		{"timezone", e.Timezone},
		{"method", e.Method},
		{"fajr_angle", e.FajrAngle},
		{"isha_angle", e.IshaAngle},
		{"asr", e.Asr},
		{"hijri_offset", e.HijriOffset},
		{"calibration", e.Calibration},
		{"sunrise_altitude", e.SunriseAltitude},
		{"sunset_altitude", e.SunsetAltitude},
		{"fajr_buffer", e.FajrBuffer},
		{"zawal_buffer", e.ZawalBuffer},
		{"maghrib_buffer", e.MaghribBuffer},
		{"isha_buffer", e.IshaBuffer},
		{"high_latitude", e.HighLatitude},
		{"time_format", e.TimeFormat},
		{"prayers", e.Prayers},
		{"cache_dir", e.CacheDir},
		{"log_level", e.LogLevel},
	}
}

// LoadDotenv loads variables from the given .env files (default ".env")
// without overriding the real environment. A missing file is not an error;
// an unreadable or malformed one is logged, skipped and returned.
func LoadDotenv(files ...string) error {
	err := godotenv.Load(files...)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	log.Warn().Err(err).Msg("[config] ignoring .env file")
	return err
}

// ApplyEnv overlays SALAH_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	for _, o := range env.ordered() {
		if o.value == nil {
			continue
		}
		if err := c.Set(o.key, *o.value); err != nil {
			return fmt.Errorf("%s_%s: %w", EnvPrefix, envName(o.key), err)
		}
	}
	return nil
}

// LoadEffective reads the config file at path and overlays .env and
// environment overrides. Flags are applied by the caller afterwards.
func LoadEffective(path string) (*Config, error) {
	_ = LoadDotenv()

	cfg, err := LoadFrom(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envName(key string) string {
	return strings.ToUpper(key)
}
