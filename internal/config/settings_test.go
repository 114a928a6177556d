package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/smokyabdulrahman/salah/internal/geo"
	"github.com/smokyabdulrahman/salah/internal/method"
	"github.com/smokyabdulrahman/salah/internal/prayer"
)

func TestSettings_Defaults(t *testing.T) {
	s, err := Config{}.Settings()
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}
	if s.Method != method.Karachi || s.AsrShadow != method.Hanafi {
		t.Errorf("default method/asr = %v/%v", s.Method, s.AsrShadow)
	}
	if s.Calibration != prayer.StandardCalibration() {
		t.Errorf("default calibration = %+v", s.Calibration)
	}
	if s.HighLatitude != prayer.PolicyNone || s.HijriOffset != 0 {
		t.Errorf("unexpected defaults: %+v", s)
	}
}

func TestSettings_PresetWithOverrides(t *testing.T) {
	c := Config{Calibration: "myanmar", FajrBuffer: ptr(2.0), SunsetAltitude: ptr(-1.0)}
	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}
	if s.Calibration.SunriseAltitude != -1.1 {
		t.Errorf("SunriseAltitude = %v, want preset -1.1", s.Calibration.SunriseAltitude)
	}
	if s.Calibration.SunsetAltitude != -1.0 || s.Calibration.FajrBuffer != 2 {
		t.Errorf("overrides not applied: %+v", s.Calibration)
	}
}

func TestSettings_Custom(t *testing.T) {
	if _, err := (Config{Method: "custom"}).Settings(); err == nil {
		t.Error("custom without angles should fail")
	}

	s, err := Config{Method: "custom", FajrAngle: ptr(-15.0), IshaAngle: ptr(-15.0)}.Settings()
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}
	if s.CustomAngles == nil || s.CustomAngles.Fajr != -15 {
		t.Errorf("CustomAngles = %+v", s.CustomAngles)
	}
}

func TestSettings_Apply(t *testing.T) {
	s, _ := Config{Method: "mwl", Asr: "shafi", HijriOffset: ptr(-1)}.Settings()
	var req prayer.Request
	s.Apply(&req)

	if req.Method != method.MWL || req.AsrShadow != method.Shafi || req.HijriOffset != -1 {
		t.Errorf("Apply produced %+v", req)
	}
	if req.Calibration == nil {
		t.Error("Apply should set Calibration")
	}
}

func TestZone(t *testing.T) {
	loc, err := Config{}.Zone(time.UTC)
	if err != nil || loc != time.UTC {
		t.Errorf("unset timezone should fall back, got %v, %v", loc, err)
	}

	loc, err = Config{Timezone: "6.5"}.Zone(time.UTC)
	if err != nil {
		t.Fatalf("Zone error: %v", err)
	}
	if _, off := time.Date(2026, 1, 1, 0, 0, 0, 0, loc).Zone(); off != 23400 {
		t.Errorf("offset = %d, want 23400", off)
	}

	if _, err := (Config{Timezone: "Nowhere/Land"}).Zone(time.UTC); err == nil {
		t.Error("invalid zone should fail")
	}
}

// --- Validate ---

func TestValidate_ErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"latitude range", Config{Latitude: ptr(95.0), Longitude: ptr(0.0)}, geo.ErrInvalidCoordinate},
		{"half coordinate", Config{Longitude: ptr(96.1)}, geo.ErrInvalidCoordinate},
		{"method", Config{Method: "isna"}, method.ErrInvalidConfiguration},
		{"custom needs angles", Config{Method: "custom"}, method.ErrInvalidConfiguration},
		{"buffer", Config{FajrBuffer: ptr(-61.0)}, method.ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want it to wrap %v", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty", Config{}, ""},
		{"defaults", Defaults(), ""},
		{"full", Config{Latitude: ptr(16.8), Longitude: ptr(96.1), Timezone: "Asia/Yangon", Method: "mwl", Prayers: "Fajr,Isha"}, ""},
		{"latitude range", Config{Latitude: ptr(95.0), Longitude: ptr(0.0)}, "latitude"},
		{"method", Config{Method: "isna"}, "method"},
		{"timezone", Config{Timezone: "Mars/Base"}, "timezone"},
		{"prayers", Config{Prayers: "Witr"}, "prayers"},
		{"buffer", Config{IshaBuffer: ptr(90.0)}, "isha_buffer"},
		{"negative buffer", Config{MaghribBuffer: ptr(-2.0)}, ""},
		{"half coordinate", Config{Latitude: ptr(16.8)}, "together"},
		{"custom needs angles", Config{Method: "custom", FajrAngle: ptr(-18.0)}, "isha_angle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
