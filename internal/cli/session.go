package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah/internal/cache"
	"github.com/smokyabdulrahman/salah/internal/config"
	"github.com/smokyabdulrahman/salah/internal/prayer"
	"github.com/smokyabdulrahman/salah/internal/schedule"
)

// session bundles everything a calculating command needs: merged settings,
// the resolved location and its zone, and "now" in that zone.
type session struct {
	cfg      config.Config
	settings config.Settings
	location resolvedLocation
	zone     *time.Location
	now      time.Time
	layout   string
	calc     prayer.Calculator
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg := effectiveConfig()

	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		// Cache init failure is non-fatal; we just skip caching.
		log.Warn().Err(err).Msg("[cli] cache disabled")
		c = nil
	}

	loc, err := resolveLocation(cmd.Context(), cfg, c)
	if err != nil {
		return nil, err
	}

	zone, err := cfg.Zone(loc.Zone())
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("location", loc.Label()).
		Str("source", string(loc.Source)).
		Str("zone", zone.String()).
		Str("method", settings.Method.String()).
		Msg("[cli] session")

	return &session{
		cfg:      cfg,
		settings: settings,
		location: loc,
		zone:     zone,
		now:      nowFunc().In(zone),
		layout:   prayer.LayoutFor(cfg.TimeFormat),
	}, nil
}

// today is the current civil date in the session zone.
func (s *session) today() time.Time {
	y, m, d := s.now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// request is a calculation request for the session's location and settings.
// Date and offset are filled per day by schedule.Build.
func (s *session) request() prayer.Request {
	req := prayer.Request{Coordinate: s.location.Coordinate}
	s.settings.Apply(&req)
	return req
}

// plan computes days consecutive days starting today.
func (s *session) plan(ctx context.Context, days int) (*schedule.Plan, error) {
	plan, err := schedule.Build(ctx, s.calc, s.request(), s.zone, s.today(), days)
	if err != nil {
		return nil, fmt.Errorf("calculating prayer times: %w", err)
	}
	return plan, nil
}

// clock formats t for display, marking high-latitude substitutions.
func (s *session) clock(plan *schedule.Plan, day schedule.Day, t prayer.Time) string {
	if t.Undefined {
		return "--:--"
	}
	out := t.On(day.Date, plan.Location(day)).Format(s.layout)
	if t.Adjusted {
		out += "*"
	}
	return out
}

// zoneLabel renders "Asia/Yangon (UTC+06:30)".
func zoneLabel(zone *time.Location, offset float64) string {
	fixed := prayer.Zone(offset).String()
	if zone.String() == fixed {
		return fixed
	}
	return fmt.Sprintf("%s (%s)", zone, fixed)
}
