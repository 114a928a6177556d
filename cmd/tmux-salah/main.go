package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/salah/internal/cache"
	"github.com/smokyabdulrahman/salah/internal/config"
	"github.com/smokyabdulrahman/salah/internal/geo"
	"github.com/smokyabdulrahman/salah/internal/logging"
	"github.com/smokyabdulrahman/salah/internal/method"
	"github.com/smokyabdulrahman/salah/internal/places"
	"github.com/smokyabdulrahman/salah/internal/prayer"
	"github.com/smokyabdulrahman/salah/internal/schedule"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

// options are the status-line flags. String values go through config.Set so
// they are validated exactly like the salah CLI.
type options struct {
	Latitude     string
	Longitude    string
	City         string
	Timezone     string
	Method       string
	Asr          string
	HighLatitude string
	Calibration  string
	Format       string
	TimeFormat   string
	Prayers      string
	CacheDir     string
}

// newDetector is replaced in tests.
var newDetector = geo.NewDetector

func main() {
	var opts options

	// Location flags
	flag.StringVar(&opts.Latitude, "latitude", "", "Latitude for prayer time calculation")
	flag.StringVar(&opts.Longitude, "longitude", "", "Longitude for prayer time calculation")
	flag.StringVar(&opts.City, "city", "", "Named place, e.g. yangon (alternative to coordinates)")
	flag.StringVar(&opts.Timezone, "timezone", "", "IANA zone or UTC offset in hours (default: the location's zone)")

	// Calculation flags
	flag.StringVar(&opts.Method, "method", "", "Calculation method: karachi, mwl, egypt or ummalqura (default karachi)")
	flag.StringVar(&opts.Asr, "asr", "", "Asr school: shafi or hanafi (default hanafi)")
	flag.StringVar(&opts.HighLatitude, "high-latitude", "", "High-latitude policy: none, fixed-interval or angle-based")
	flag.StringVar(&opts.Calibration, "calibration", "", "Calibration preset: standard or myanmar")

	// Display flags
	flag.StringVar(&opts.Format, "format", prayer.FormatNameAndTime, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template (e.g. '{{.Name}} in {{.Remaining}}'). Template fields: .Name, .ShortName, .Time, .Remaining, .Hours, .Minutes, .Adjusted")
	flag.StringVar(&opts.TimeFormat, "time-format", "24h", "Time format: 12h or 24h")
	flag.StringVar(&opts.Prayers, "prayers", "", "Comma-separated list of prayers to track (default: Fajr,Sunrise,Dhuhr,Asr,Maghrib,Isha)")

	// Cache flags
	flag.StringVar(&opts.CacheDir, "cache-dir", "", "Cache directory for the detected location (default: ~/.cache/salah/)")

	// Info flags
	showVersion := flag.Bool("version", false, "Print version and exit")
	listMethods := flag.Bool("list-methods", false, "Print supported calculation methods and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("tmux-salah %s\n", version)
		return
	}

	if *listMethods {
		printMethods(os.Stdout)
		return
	}

	_ = logging.Setup(logging.DefaultLevel, false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := run(ctx, opts, time.Now(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// printMethods prints the table of supported calculation methods.
func printMethods(w io.Writer) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-10s %s\n", "Key", "Name")
	fmt.Fprintf(w, "  %-10s %s\n", "───", "────")
	for _, m := range method.All() {
		fmt.Fprintf(w, "  %-10s %s\n", m.Key, m.Name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --method <key> to select a calculation method.")
}

// toConfig validates the flags into a Config.
func (o options) toConfig() (config.Config, error) {
	var cfg config.Config
	for _, kv := range []struct{ key, value string }{
		{"latitude", o.Latitude},
		{"longitude", o.Longitude},
		{"city", o.City},
		{"timezone", o.Timezone},
		{"method", o.Method},
		{"asr", o.Asr},
		{"high_latitude", o.HighLatitude},
		{"calibration", o.Calibration},
		{"time_format", o.TimeFormat},
		{"prayers", o.Prayers},
		{"cache_dir", o.CacheDir},
	} {
		if kv.value == "" {
			continue
		}
		if err := cfg.Set(kv.key, kv.value); err != nil {
			return config.Config{}, fmt.Errorf("--%s: %w", strings.ReplaceAll(kv.key, "_", "-"), err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg.WithDefaults(), nil
}

func run(ctx context.Context, opts options, now time.Time, w io.Writer) error {
	cfg, err := opts.toConfig()
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	coord, zoneHint, err := resolveLocation(ctx, cfg)
	if err != nil {
		return err
	}
	zone, err := cfg.Zone(zoneHint)
	if err != nil {
		return err
	}
	now = now.In(zone)

	req := prayer.Request{Coordinate: coord}
	settings.Apply(&req)

	// Today and tomorrow, so the next prayer rolls over midnight.
	y, m, d := now.Date()
	plan, err := schedule.Build(ctx, prayer.Calculator{}, req, zone, time.Date(y, m, d, 0, 0, 0, 0, time.UTC), 2)
	if err != nil {
		return err
	}

	names := cfg.PrayerNames()
	var next *prayer.Prayer
	for _, day := range plan.Days {
		prayers, err := prayer.Prayers(day.Times, day.Date, plan.Location(day), names)
		if err != nil {
			return err
		}
		if next = prayer.NextPrayer(prayers, now); next != nil {
			break
		}
	}

	if next == nil {
		// Polar day or night with every tracked prayer undefined: keep the
		// status bar quiet instead of failing.
		fmt.Fprint(w, "--:--")
		return nil
	}

	fmt.Fprint(w, prayer.FormatOutput(*next, now, opts.Format, prayer.LayoutFor(cfg.TimeFormat)))
	return nil
}

// resolveLocation picks coordinates > named place > cached detection > IP
// detection, and returns the location's own zone when one is known.
func resolveLocation(ctx context.Context, cfg config.Config) (geo.Coordinate, *time.Location, error) {
	switch {
	case cfg.Latitude != nil && cfg.Longitude != nil:
		coord := geo.Coordinate{Latitude: *cfg.Latitude, Longitude: *cfg.Longitude}
		return coord, time.Local, coord.Validate()
	case cfg.Latitude != nil || cfg.Longitude != nil:
		return geo.Coordinate{}, nil, fmt.Errorf("--latitude and --longitude must be given together")
	case cfg.City != "":
		p, err := places.Lookup(cfg.City)
		if err != nil {
			return geo.Coordinate{}, nil, fmt.Errorf("%w; known places: %s", err, strings.Join(places.Slugs(), ", "))
		}
		return p.Coordinate, p.Location(), nil
	}

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		log.Warn().Err(err).Msg("[tmux] cache disabled")
		c = nil
	}
	if c != nil {
		if cached := c.LoadGeo(); cached != nil {
			return cached.Coordinate(), zoneFor(cached.Timezone), nil
		}
	}

	detected, err := newDetector().Detect(ctx)
	if err != nil {
		return geo.Coordinate{}, nil, fmt.Errorf("no location specified and auto-detection failed: %w", err)
	}
	if c != nil {
		if err := c.SaveGeo(detected); err != nil {
			log.Warn().Err(err).Msg("[tmux] could not cache detected location")
		}
	}
	return detected.Coordinate(), zoneFor(detected.Timezone), nil
}

func zoneFor(name string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.Local
}
