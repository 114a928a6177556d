package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salah/internal/geo"
	"github.com/smokyabdulrahman/salah/internal/hijri"
	"github.com/smokyabdulrahman/salah/internal/method"
	"github.com/smokyabdulrahman/salah/internal/prayer"
	"github.com/smokyabdulrahman/salah/internal/qibla"
	"github.com/smokyabdulrahman/salah/internal/schedule"
)

// hijriDate is a Hijri date with its display forms.
type hijriDate struct {
	hijri.Date
	MonthName string `json:"month_name"`
	Formatted string `json:"formatted"`
}

func newHijriDate(d hijri.Date) hijriDate {
	return hijriDate{Date: d, MonthName: d.MonthName(), Formatted: d.Format()}
}

// timeEntry is one defined prayer. Undefined prayers are encoded as null.
type timeEntry struct {
	Clock    string    `json:"clock"`
	Time     string    `json:"time"`
	Minute   int       `json:"minute"`
	DayShift int       `json:"day_shift,omitempty"`
	Adjusted bool      `json:"adjusted,omitempty"`
	At       time.Time `json:"at"`
}

type dayResponse struct {
	Date      string                `json:"date"`
	UTCOffset float64               `json:"utc_offset"`
	Hijri     hijriDate             `json:"hijri"`
	Event     *hijri.Event          `json:"event,omitempty"`
	Times     map[string]*timeEntry `json:"times"`
	Undefined []string              `json:"undefined"`
}

// settingsResponse echoes the parameters a calculation used.
type settingsResponse struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Timezone     string  `json:"timezone"`
	Method       string  `json:"method"`
	Asr          string  `json:"asr"`
	HighLatitude string  `json:"high_latitude"`
}

type timesResponse struct {
	settingsResponse
	dayResponse
}

type scheduleResponse struct {
	settingsResponse
	Days     []dayResponse      `json:"days"`
	Triggers []schedule.Trigger `json:"triggers"`
}

func newDayResponse(plan *schedule.Plan, day schedule.Day) dayResponse {
	loc := plan.Location(day)
	out := dayResponse{
		Date:      day.Date.Format(time.DateOnly),
		UTCOffset: day.UTCOffset,
		Hijri:     newHijriDate(day.Hijri),
		Event:     day.Event,
		Times:     make(map[string]*timeEntry, 6),
		Undefined: []string{},
	}
	for _, t := range day.Times.All() {
		key := strings.ToLower(t.Name)
		if t.Undefined {
			out.Times[key] = nil
			out.Undefined = append(out.Undefined, t.Name)
			continue
		}
		out.Times[key] = &timeEntry{
			Clock:    t.Clock,
			Time:     t.Format24(),
			Minute:   t.Minute,
			DayShift: t.DayShift,
			Adjusted: t.Adjusted,
			At:       t.On(day.Date, loc),
		}
	}
	return out
}

// buildPlan runs the shared part of /v1/times and /v1/schedule.
func (s *Server) buildPlan(r *http.Request, defaultDays int) (*schedule.Plan, settingsResponse, error) {
	q := r.URL.Query()

	point, err := parsePoint(q, defaultDays)
	if err != nil {
		return nil, settingsResponse{}, err
	}
	if err := s.validate.Struct(point); err != nil {
		return nil, settingsResponse{}, err
	}

	cfg, err := s.requestConfig(q)
	if err != nil {
		return nil, settingsResponse{}, err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return nil, settingsResponse{}, err
	}
	zone, err := cfg.Zone(time.UTC)
	if err != nil {
		return nil, settingsResponse{}, badRequest("%v", err)
	}

	req := prayer.Request{Coordinate: geo.Coordinate{Latitude: *point.Lat, Longitude: *point.Lon}}
	settings.Apply(&req)

	plan, err := schedule.Build(r.Context(), s.calc, req, zone, s.startDate(point.Date, zone), point.Days)
	if err != nil {
		return nil, settingsResponse{}, err
	}

	echo := settingsResponse{
		Latitude:     req.Coordinate.Latitude,
		Longitude:    req.Coordinate.Longitude,
		Timezone:     zone.String(),
		Method:       req.Method.String(),
		Asr:          req.AsrShadow.String(),
		HighLatitude: req.HighLatitude.String(),
	}
	return plan, echo, nil
}

// handleTimes handles GET /v1/times?lat=&lon=[&date=][&timezone=][&method=]...
func (s *Server) handleTimes(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("days") {
		s.writeError(w, r, badRequest("days is only accepted by /v1/schedule"))
		return
	}
	plan, echo, err := s.buildPlan(r, 1)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timesResponse{
		settingsResponse: echo,
		dayResponse:      newDayResponse(plan, plan.Days[0]),
	})
}

// handleSchedule handles GET /v1/schedule?lat=&lon=[&days=]... and returns
// per-day times plus the flattened trigger list.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	plan, echo, err := s.buildPlan(r, schedule.DefaultDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := scheduleResponse{
		settingsResponse: echo,
		Days:             make([]dayResponse, 0, len(plan.Days)),
		Triggers:         plan.Triggers(),
	}
	for _, day := range plan.Days {
		resp.Days = append(resp.Days, newDayResponse(plan, day))
	}
	if resp.Triggers == nil {
		resp.Triggers = []schedule.Trigger{}
	}
	writeJSON(w, http.StatusOK, resp)
}

type hijriResponse struct {
	Date  string       `json:"date"`
	Hijri hijriDate    `json:"hijri"`
	Event *hijri.Event `json:"event,omitempty"`
}

// handleHijri handles GET /v1/hijri[?date=][&offset=].
func (s *Server) handleHijri(w http.ResponseWriter, r *http.Request) {
	defaultOffset := 0
	if s.base.HijriOffset != nil {
		defaultOffset = *s.base.HijriOffset
	}
	hq, err := parseHijri(r.URL.Query(), defaultOffset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validate.Struct(hq); err != nil {
		s.writeError(w, r, err)
		return
	}

	zone, err := s.base.Zone(time.UTC)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	date := s.startDate(hq.Date, zone)
	h := hijri.Convert(date, hq.Offset)

	resp := hijriResponse{Date: date.Format(time.DateOnly), Hijri: newHijriDate(h)}
	if ev, ok := hijri.EventFor(h); ok {
		resp.Event = &ev
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleEvents handles GET /v1/events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"events": hijri.Events})
}

type qiblaResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	qibla.Result
}

// handleQibla handles GET /v1/qibla?lat=&lon=.
func (s *Server) handleQibla(w http.ResponseWriter, r *http.Request) {
	cq, err := parseCoordinate(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validate.Struct(cq); err != nil {
		s.writeError(w, r, err)
		return
	}
	c := geo.Coordinate{Latitude: *cq.Lat, Longitude: *cq.Lon}
	writeJSON(w, http.StatusOK, qiblaResponse{Latitude: c.Latitude, Longitude: c.Longitude, Result: qibla.Compute(c)})
}

type methodResponse struct {
	Key    string        `json:"key"`
	Name   string        `json:"name"`
	Angles method.Angles `json:"angles"`
}

// handleMethods handles GET /v1/methods.
func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	all := method.All()
	out := make([]methodResponse, 0, len(all))
	for _, info := range all {
		out = append(out, methodResponse{Key: info.Key, Name: info.Name, Angles: info.Angles})
	}
	writeJSON(w, http.StatusOK, map[string]any{"methods": out})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
