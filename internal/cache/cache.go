// Package cache stores detected geolocation results on disk so the status-line
// binary does not query the network on every refresh.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/salah/internal/geo"
)

const (
	geoCacheFile = "geolocation.json"
	// DefaultGeoTTL is how long a detected location is trusted.
	DefaultGeoTTL = 24 * time.Hour
)

// Cache provides file-based caching rooted at a directory.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// GeoCacheEntry stores a cached geolocation result with a timestamp.
type GeoCacheEntry struct {
	Location geo.Location `json:"location"`
	CachedAt time.Time    `json:"cached_at"`
}

// New creates a Cache rooted at the given directory.
// If dir is empty, it defaults to the user cache dir (e.g. ~/.cache/salah/).
func New(dir string) (*Cache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine cache directory: %w", err)
		}
		dir = filepath.Join(base, "salah")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir, ttl: DefaultGeoTTL, now: time.Now}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// LoadGeo returns the cached location, or nil if it is missing, unreadable
// or older than the TTL.
func (c *Cache) LoadGeo() *geo.Location {
	path := filepath.Join(c.dir, geoCacheFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var entry GeoCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("[cache] ignoring corrupt geolocation cache")
		return nil
	}

	if age := c.now().Sub(entry.CachedAt); age > c.ttl {
		log.Debug().Dur("age", age).Msg("[cache] geolocation cache expired")
		return nil
	}
	if err := entry.Location.Coordinate().Validate(); err != nil {
		return nil
	}

	return &entry.Location
}

// SaveGeo writes a geolocation result to the cache.
func (c *Cache) SaveGeo(loc *geo.Location) error {
	path := filepath.Join(c.dir, geoCacheFile)

	entry := GeoCacheEntry{
		Location: *loc,
		CachedAt: c.now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal geo cache: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write geo cache: %w", err)
	}

	return nil
}

// Clear removes the cached location.
func (c *Cache) Clear() error {
	err := os.Remove(filepath.Join(c.dir, geoCacheFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear geo cache: %w", err)
	}
	return nil
}
