// Package schedule computes prayer times for a run of consecutive days and
// turns them into absolute, uniquely identified triggers for alarm
// schedulers.
package schedule

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/smokyabdulrahman/salah/internal/hijri"
	"github.com/smokyabdulrahman/salah/internal/method"
	"github.com/smokyabdulrahman/salah/internal/prayer"
)

const (
	// DefaultDays is the usual alarm-scheduling window.
	DefaultDays = 7
	// MaxDays bounds a single plan to one year.
	MaxDays = 366
)

// triggerNamespace roots the name-based trigger IDs.
var triggerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/smokyabdulrahman/salah/trigger"))

// Day is one civil day of a plan.
type Day struct {
	Date      time.Time      `json:"date"`
	UTCOffset float64        `json:"utc_offset"`
	Hijri     hijri.Date     `json:"hijri"`
	Event     *hijri.Event   `json:"event,omitempty"`
	Times     prayer.TimeSet `json:"times"`
}

// Plan is a run of consecutive days computed with the same settings.
type Plan struct {
	Days []Day
	// zone is nil for a fixed UTC offset plan.
	zone    *time.Location
	request prayer.Request
}

// Trigger is a single prayer instant.
type Trigger struct {
	ID       uuid.UUID `json:"id"`
	Prayer   string    `json:"prayer"`
	At       time.Time `json:"at"`
	Adjusted bool      `json:"adjusted,omitempty"`
}

// Build computes days consecutive days starting at the civil date of start.
// When zone is non-nil each day uses the UTC offset zone observes on that
// day; otherwise req.UTCOffset is used throughout. req.Date is ignored.
func Build(ctx context.Context, calc prayer.Calculator, req prayer.Request, zone *time.Location, start time.Time, days int) (*Plan, error) {
	if days < 1 || days > MaxDays {
		return nil, fmt.Errorf("%w: days %d must be between 1 and %d", method.ErrInvalidConfiguration, days, MaxDays)
	}

	y, m, d := start.Date()
	out := make([]Day, days)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < days; i++ {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			date := time.Date(y, m, d+i, 0, 0, 0, 0, time.UTC)
			dayReq := req
			dayReq.Date = date
			if zone != nil {
				dayReq.UTCOffset = prayer.OffsetFor(zone, date)
			}

			times, err := calc.Calculate(dayReq)
			if err != nil {
				return fmt.Errorf("calculating %s: %w", date.Format(time.DateOnly), err)
			}

			h := hijri.Convert(date, req.HijriOffset)
			day := Day{Date: date, UTCOffset: dayReq.UTCOffset, Hijri: h, Times: times}
			if ev, ok := hijri.EventFor(h); ok {
				day.Event = &ev
			}
			out[i] = day
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Plan{Days: out, zone: zone, request: req}, nil
}

// Location returns the location triggers are expressed in for a day.
func (p *Plan) Location(day Day) *time.Location {
	if p.zone != nil {
		return p.zone
	}
	return prayer.Zone(day.UTCOffset)
}

// Triggers returns every defined prayer of the plan as an absolute instant,
// in chronological order.
func (p *Plan) Triggers() []Trigger {
	var out []Trigger
	for _, day := range p.Days {
		loc := p.Location(day)
		for _, t := range day.Times.All() {
			if t.Undefined {
				continue
			}
			out = append(out, Trigger{
				ID:       p.triggerID(day.Date, t.Name),
				Prayer:   t.Name,
				At:       t.On(day.Date, loc),
				Adjusted: t.Adjusted,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// Upcoming returns the triggers strictly after now.
func (p *Plan) Upcoming(now time.Time) []Trigger {
	all := p.Triggers()
	i := sort.Search(len(all), func(i int) bool { return all[i].At.After(now) })
	return all[i:]
}

// Next returns the first trigger after now, if any.
func (p *Plan) Next(now time.Time) (Trigger, bool) {
	up := p.Upcoming(now)
	if len(up) == 0 {
		return Trigger{}, false
	}
	return up[0], true
}

// triggerID is stable for the same place, settings, date and prayer, so a
// scheduler can replace an alarm instead of duplicating it.
func (p *Plan) triggerID(date time.Time, name string) uuid.UUID {
	r := p.request
	key := fmt.Sprintf("%s|%s|%.6f,%.6f|%s|%s|%s",
		date.Format(time.DateOnly), name,
		r.Coordinate.Latitude, r.Coordinate.Longitude,
		r.Method, r.AsrShadow, r.HighLatitude)
	return uuid.NewSHA1(triggerNamespace, []byte(key))
}
