package server

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smokyabdulrahman/salah/internal/config"
)

// settingParams are the config keys a request may override.
var settingParams = []string{
	"timezone",
	"method", "fajr_angle", "isha_angle",
	"asr",
	"hijri_offset",
	"calibration", "sunrise_altitude", "sunset_altitude",
	"fajr_buffer", "zawal_buffer", "maghrib_buffer", "isha_buffer",
	"high_latitude",
}

// pointQuery is the location and date part of a calculation request.
type pointQuery struct {
	Lat  *float64 `query:"lat" validate:"required,gte=-90,lte=90"`
	Lon  *float64 `query:"lon" validate:"required,gte=-180,lte=180"`
	Date string   `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Days int      `query:"days" validate:"gte=1,lte=31"`
}

// hijriQuery is the /v1/hijri request.
type hijriQuery struct {
	Date   string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Offset int    `query:"offset" validate:"gte=-3,lte=3"`
}

// coordinateQuery is the /v1/qibla request.
type coordinateQuery struct {
	Lat *float64 `query:"lat" validate:"required,gte=-90,lte=90"`
	Lon *float64 `query:"lon" validate:"required,gte=-180,lte=180"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("query")
	})
	return v
}

func parsePoint(q url.Values, defaultDays int) (pointQuery, error) {
	var p pointQuery
	var err error
	if p.Lat, err = optionalFloat(q, "lat"); err != nil {
		return p, err
	}
	if p.Lon, err = optionalFloat(q, "lon"); err != nil {
		return p, err
	}
	p.Date = q.Get("date")
	if p.Days, err = optionalInt(q, "days", defaultDays); err != nil {
		return p, err
	}
	return p, nil
}

func parseHijri(q url.Values, defaultOffset int) (hijriQuery, error) {
	var h hijriQuery
	var err error
	h.Date = q.Get("date")
	if h.Offset, err = optionalInt(q, "offset", defaultOffset); err != nil {
		return h, err
	}
	return h, nil
}

func parseCoordinate(q url.Values) (coordinateQuery, error) {
	var c coordinateQuery
	var err error
	if c.Lat, err = optionalFloat(q, "lat"); err != nil {
		return c, err
	}
	if c.Lon, err = optionalFloat(q, "lon"); err != nil {
		return c, err
	}
	return c, nil
}

func optionalFloat(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, badRequest("%s must be a number, got %q", key, raw)
	}
	return &v, nil
}

func optionalInt(q url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}

// requestConfig layers the query's setting overrides on the base config.
func (s *Server) requestConfig(q url.Values) (config.Config, error) {
	cfg := s.base
	for _, key := range settingParams {
		if !q.Has(key) {
			continue
		}
		if err := cfg.Set(key, q.Get(key)); err != nil {
			return config.Config{}, rejected(err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, rejected(err)
	}
	return cfg, nil
}

// startDate is the requested civil date, or today in zone.
func (s *Server) startDate(date string, zone *time.Location) time.Time {
	if date != "" {
		if t, err := time.Parse(time.DateOnly, date); err == nil {
			return t
		}
	}
	y, m, d := s.now().In(zone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
