package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("SALAH_METHOD", "egypt")
	t.Setenv("SALAH_LATITUDE", "21.4225")
	t.Setenv("SALAH_LONGITUDE", "39.8262")
	t.Setenv("SALAH_HIJRI_OFFSET", "1")

	c := Config{Method: "karachi", City: "yangon"}
	if err := c.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv error: %v", err)
	}

	if c.Method != "egypt" {
		t.Errorf("Method = %q, want egypt", c.Method)
	}
	if c.Latitude == nil || *c.Latitude != 21.4225 {
		t.Errorf("Latitude = %v, want 21.4225", c.Latitude)
	}
	if c.HijriOffset == nil || *c.HijriOffset != 1 {
		t.Errorf("HijriOffset = %v, want 1", c.HijriOffset)
	}
	if c.City != "yangon" {
		t.Errorf("City = %q, should be untouched", c.City)
	}
}

func TestApplyEnv_InvalidValueNamesVariable(t *testing.T) {
	t.Setenv("SALAH_ASR", "maliki")

	var c Config
	err := c.ApplyEnv()
	if err == nil {
		t.Fatal("expected error for invalid SALAH_ASR")
	}
	if !strings.Contains(err.Error(), "SALAH_ASR") {
		t.Errorf("error should name the variable, got: %v", err)
	}
}

func TestLoadEffective_FileThenEnv(t *testing.T) {
	path := tempConfigPath(t)
	(&Config{Method: "mwl", TimeFormat: "24h"}).SaveTo(path)
	t.Setenv("SALAH_TIME_FORMAT", "12h")

	cfg, err := LoadEffective(path)
	if err != nil {
		t.Fatalf("LoadEffective error: %v", err)
	}
	if cfg.Method != "mwl" {
		t.Errorf("Method = %q, want mwl from file", cfg.Method)
	}
	if cfg.TimeFormat != "12h" {
		t.Errorf("TimeFormat = %q, want 12h from env", cfg.TimeFormat)
	}
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	os.WriteFile(path, []byte("SALAH_CALIBRATION=myanmar\n"), 0o644)
	t.Setenv("SALAH_CALIBRATION", "")
	os.Unsetenv("SALAH_CALIBRATION")

	if err := LoadDotenv(path); err != nil {
		t.Fatalf("LoadDotenv error: %v", err)
	}
	if got := os.Getenv("SALAH_CALIBRATION"); got != "myanmar" {
		t.Errorf("SALAH_CALIBRATION = %q, want myanmar", got)
	}
}

func TestLoadDotenv_MissingFileIgnored(t *testing.T) {
	if err := LoadDotenv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadDotenv(missing) = %v, want nil", err)
	}
}

func TestLoadDotenv_MalformedFileReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	os.WriteFile(path, []byte("SALAH-METHOD=mwl\n"), 0o644)
	t.Setenv("SALAH_METHOD", "")
	os.Unsetenv("SALAH_METHOD")

	if err := LoadDotenv(path); err == nil {
		t.Fatal("expected error for malformed .env")
	}
	if got, ok := os.LookupEnv("SALAH_METHOD"); ok {
		t.Errorf("SALAH_METHOD = %q, should stay unset", got)
	}
}

func TestLoadEffective_MalformedDotenvIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("SALAH_METHOD", "")
	os.Unsetenv("SALAH_METHOD")
	os.WriteFile(filepath.Join(dir, ".env"), []byte("SALAH-METHOD=mwl\n"), 0o644)

	path := filepath.Join(dir, "config.json")
	(&Config{Method: "egypt"}).SaveTo(path)

	cfg, err := LoadEffective(path)
	if err != nil {
		t.Fatalf("LoadEffective error: %v", err)
	}
	if cfg.Method != "egypt" {
		t.Errorf("Method = %q, want egypt from file", cfg.Method)
	}
}
