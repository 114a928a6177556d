package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smokyabdulrahman/salah/internal/geo"
)

func sampleLocation() *geo.Location {
	return &geo.Location{
		Latitude:  16.8409,
		Longitude: 96.1735,
		City:      "Yangon",
		Country:   "Myanmar",
		Timezone:  "Asia/Yangon",
	}
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir", "cache")
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New(%q) error: %v", dir, err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("directory %q was not created", dir)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

// ---------------------------------------------------------------------------
// SaveGeo / LoadGeo
// ---------------------------------------------------------------------------

func TestGeo_RoundTrip(t *testing.T) {
	c, _ := New(t.TempDir())

	if err := c.SaveGeo(sampleLocation()); err != nil {
		t.Fatalf("SaveGeo error: %v", err)
	}

	got := c.LoadGeo()
	if got == nil {
		t.Fatal("LoadGeo returned nil after save")
	}
	if got.Latitude != 16.8409 {
		t.Errorf("Latitude = %v, want %v", got.Latitude, 16.8409)
	}
	if got.City != "Yangon" {
		t.Errorf("City = %q, want %q", got.City, "Yangon")
	}
	if got.Timezone != "Asia/Yangon" {
		t.Errorf("Timezone = %q, want %q", got.Timezone, "Asia/Yangon")
	}
}

func TestGeo_CacheMiss(t *testing.T) {
	c, _ := New(t.TempDir())

	if got := c.LoadGeo(); got != nil {
		t.Error("expected nil for geo cache miss, got entry")
	}
}

func TestGeo_ExpiredTTL(t *testing.T) {
	dir := t.TempDir()
	c, _ := New(dir)

	entry := GeoCacheEntry{
		Location: *sampleLocation(),
		CachedAt: time.Now().Add(-25 * time.Hour),
	}
	data, _ := json.Marshal(entry)
	os.WriteFile(filepath.Join(dir, "geolocation.json"), data, 0o644)

	if got := c.LoadGeo(); got != nil {
		t.Error("expected nil for expired geo cache, got entry")
	}
}

func TestGeo_FakeClock(t *testing.T) {
	c, _ := New(t.TempDir())
	start := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return start }

	if err := c.SaveGeo(sampleLocation()); err != nil {
		t.Fatalf("SaveGeo error: %v", err)
	}

	c.now = func() time.Time { return start.Add(23 * time.Hour) }
	if c.LoadGeo() == nil {
		t.Error("expected hit within TTL")
	}

	c.now = func() time.Time { return start.Add(DefaultGeoTTL + time.Minute) }
	if c.LoadGeo() != nil {
		t.Error("expected miss after TTL")
	}
}

func TestGeo_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	c, _ := New(dir)

	os.WriteFile(filepath.Join(dir, "geolocation.json"), []byte("{bad json"), 0o644)

	if got := c.LoadGeo(); got != nil {
		t.Error("expected nil for corrupted geo cache, got entry")
	}
}

func TestGeo_InvalidCoordinateIgnored(t *testing.T) {
	c, _ := New(t.TempDir())

	loc := sampleLocation()
	loc.Latitude = 200
	_ = c.SaveGeo(loc)

	if got := c.LoadGeo(); got != nil {
		t.Error("expected nil for out-of-range cached coordinate")
	}
}

func TestClear(t *testing.T) {
	c, _ := New(t.TempDir())
	_ = c.SaveGeo(sampleLocation())

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if c.LoadGeo() != nil {
		t.Error("expected miss after Clear")
	}
	if err := c.Clear(); err != nil {
		t.Errorf("Clear on empty cache should not fail: %v", err)
	}
}
