package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/salah/internal/cache"
	"github.com/smokyabdulrahman/salah/internal/config"
	"github.com/smokyabdulrahman/salah/internal/geo"
	"github.com/smokyabdulrahman/salah/internal/places"
)

// locationSource describes how the location was obtained.
type locationSource string

const (
	sourceCoordinates locationSource = "coordinates"
	sourcePlace       locationSource = "place"
	sourceCache       locationSource = "cache"
	sourceDetected    locationSource = "detected"
)

// resolvedLocation holds the result of location resolution.
type resolvedLocation struct {
	Coordinate geo.Coordinate
	Name       string // "Yangon, Myanmar", empty for bare coordinates
	Timezone   string // IANA hint from the place table or detection
	Source     locationSource
	zone       *time.Location
}

// newDetector is replaced in tests.
var newDetector = geo.NewDetector

// resolveLocation determines the effective location.
// Priority: coordinates > named place > cached geolocation > IP auto-detect.
func resolveLocation(ctx context.Context, cfg config.Config, c *cache.Cache) (resolvedLocation, error) {
	switch {
	case cfg.Latitude != nil && cfg.Longitude != nil:
		coord := geo.Coordinate{Latitude: *cfg.Latitude, Longitude: *cfg.Longitude}
		if err := coord.Validate(); err != nil {
			return resolvedLocation{}, err
		}
		return resolvedLocation{Coordinate: coord, Source: sourceCoordinates}, nil

	case cfg.City != "":
		p, err := places.Lookup(cfg.City)
		if err != nil {
			return resolvedLocation{}, fmt.Errorf("%w; known places: %s (or use --latitude/--longitude)", err, strings.Join(places.Slugs(), ", "))
		}
		return resolvedLocation{
			Coordinate: p.Coordinate,
			Name:       p.Name + ", " + p.Country,
			Timezone:   p.Zone,
			Source:     sourcePlace,
			zone:       p.Location(),
		}, nil
	}

	if c != nil {
		if cached := c.LoadGeo(); cached != nil {
			log.Debug().Str("city", cached.City).Msg("[cli] using cached location")
			return detectedLocation(*cached, sourceCache), nil
		}
	}

	detected, err := newDetector().Detect(ctx)
	if err != nil {
		return resolvedLocation{}, fmt.Errorf("no location specified and auto-detection failed: %w", err)
	}
	if c != nil {
		if err := c.SaveGeo(detected); err != nil {
			log.Warn().Err(err).Msg("[cli] could not cache detected location")
		}
	}
	return detectedLocation(*detected, sourceDetected), nil
}

func detectedLocation(l geo.Location, src locationSource) resolvedLocation {
	r := resolvedLocation{Coordinate: l.Coordinate(), Timezone: l.Timezone, Source: src}
	if l.City != "" && l.Country != "" {
		r.Name = l.City + ", " + l.Country
	}
	return r
}

// Label is the human-readable location, falling back to coordinates.
func (l resolvedLocation) Label() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Coordinate.String()
}

// Zone is the location's own time zone, or the system zone when unknown.
func (l resolvedLocation) Zone() *time.Location {
	if l.zone != nil {
		return l.zone
	}
	if l.Timezone != "" {
		if loc, err := time.LoadLocation(l.Timezone); err == nil {
			return loc
		}
		log.Warn().Str("timezone", l.Timezone).Msg("[cli] unknown detected timezone, using system zone")
	}
	return time.Local
}
