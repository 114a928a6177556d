// Package places is a static table of named places with their coordinates
// and time zones.
package places

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salah/internal/geo"
)

// ErrUnknownPlace is returned by Lookup for a slug not in the table.
var ErrUnknownPlace = errors.New("unknown place")

// Place is a named location.
type Place struct {
	Slug       string         `json:"slug"`
	Name       string         `json:"name"`
	Country    string         `json:"country"`
	Coordinate geo.Coordinate `json:"coordinate"`
	// Zone is the IANA zone name.
	Zone string `json:"zone"`
	// UTCOffset is the standard offset in hours, used when tzdata is missing.
	UTCOffset float64 `json:"utc_offset"`
}

var table = []Place{
	{"yangon", "Yangon", "Myanmar", geo.Coordinate{Latitude: 16.8409, Longitude: 96.1735}, "Asia/Yangon", 6.5},
	{"mandalay", "Mandalay", "Myanmar", geo.Coordinate{Latitude: 21.9588, Longitude: 96.0891}, "Asia/Yangon", 6.5},
	{"naypyidaw", "Naypyidaw", "Myanmar", geo.Coordinate{Latitude: 19.7633, Longitude: 96.0785}, "Asia/Yangon", 6.5},
	{"mawlamyine", "Mawlamyine", "Myanmar", geo.Coordinate{Latitude: 16.4905, Longitude: 97.6283}, "Asia/Yangon", 6.5},
	{"bago", "Bago", "Myanmar", geo.Coordinate{Latitude: 17.3352, Longitude: 96.4813}, "Asia/Yangon", 6.5},
	{"pathein", "Pathein", "Myanmar", geo.Coordinate{Latitude: 16.7792, Longitude: 94.7321}, "Asia/Yangon", 6.5},
	{"sittwe", "Sittwe", "Myanmar", geo.Coordinate{Latitude: 20.1462, Longitude: 92.8983}, "Asia/Yangon", 6.5},
	{"taunggyi", "Taunggyi", "Myanmar", geo.Coordinate{Latitude: 20.7892, Longitude: 97.0378}, "Asia/Yangon", 6.5},
	{"monywa", "Monywa", "Myanmar", geo.Coordinate{Latitude: 22.1086, Longitude: 95.1358}, "Asia/Yangon", 6.5},
	{"myitkyina", "Myitkyina", "Myanmar", geo.Coordinate{Latitude: 25.3867, Longitude: 97.3962}, "Asia/Yangon", 6.5},
	{"mecca", "Mecca", "Saudi Arabia", geo.Coordinate{Latitude: 21.4225, Longitude: 39.8262}, "Asia/Riyadh", 3},
	{"medina", "Medina", "Saudi Arabia", geo.Coordinate{Latitude: 24.4672, Longitude: 39.6111}, "Asia/Riyadh", 3},
}

// All returns a copy of the table.
func All() []Place {
	out := make([]Place, len(table))
	copy(out, table)
	return out
}

// Lookup finds a place by slug or display name, ignoring case and spaces.
func Lookup(name string) (Place, error) {
	key := normalize(name)
	for _, p := range table {
		if p.Slug == key || normalize(p.Name) == key {
			return p, nil
		}
	}
	return Place{}, fmt.Errorf("%w: %q", ErrUnknownPlace, name)
}

// Slugs lists every slug in table order.
func Slugs() []string {
	out := make([]string, len(table))
	for i, p := range table {
		out[i] = p.Slug
	}
	return out
}

// Location loads the place's IANA zone, falling back to a fixed zone with the
// standard offset when tzdata is unavailable.
func (p Place) Location() *time.Location {
	if loc, err := time.LoadLocation(p.Zone); err == nil {
		return loc
	}
	return time.FixedZone(p.Zone, int(p.UTCOffset*3600))
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
