package prayer

import (
	"fmt"
	"math"
	"time"

	"github.com/smokyabdulrahman/salah/internal/astro"
	"github.com/smokyabdulrahman/salah/internal/geo"
	"github.com/smokyabdulrahman/salah/internal/hijri"
	"github.com/smokyabdulrahman/salah/internal/method"
)

// Display names of the six daily times, in chronological order.
const (
	Fajr    = "Fajr"
	Sunrise = "Sunrise"
	Dhuhr   = "Dhuhr"
	Asr     = "Asr"
	Maghrib = "Maghrib"
	Isha    = "Isha"
)

// Ramadan Isha intervals for methods using IshaRamadanInterval, in minutes.
const (
	ishaIntervalMinutes        = 90
	ishaRamadanIntervalMinutes = 120
)

// Request is everything one day's calculation depends on.
type Request struct {
	Coordinate geo.Coordinate
	// Date supplies the civil year, month and day; its clock time is ignored.
	Date time.Time
	// UTCOffset is the local offset in hours, e.g. 6.5 for Myanmar.
	UTCOffset float64

	Method method.Method
	// CustomAngles is required when Method is method.Custom.
	CustomAngles *method.Angles
	AsrShadow    method.AsrShadow
	// HijriOffset shifts the Hijri date used for the Ramadan Isha rule.
	HijriOffset int
	// Calibration defaults to StandardCalibration when nil.
	Calibration  *Calibration
	HighLatitude HighLatitudePolicy
}

// Solver controls the fixed-point refinement of each time. Each iteration
// re-evaluates the sun's position at the current estimate.
type Solver struct {
	Iterations int
	// Tolerance in hours stops refinement early once successive estimates
	// agree. Zero always runs every iteration.
	Tolerance float64
}

// DefaultSolver runs three refinement passes.
var DefaultSolver = Solver{Iterations: 3}

// Calculator computes daily prayer times. The zero value uses DefaultSolver.
type Calculator struct {
	Solver Solver
}

// Calculate computes the prayer times with a zero-value Calculator.
func Calculate(req Request) (TimeSet, error) {
	return Calculator{}.Calculate(req)
}

// Calculate computes the six prayer times for req. Invalid input returns an
// error wrapping geo.ErrInvalidCoordinate or method.ErrInvalidConfiguration.
// A prayer the sun never reaches is returned as an undefined Time, not an
// error.
func (c Calculator) Calculate(req Request) (TimeSet, error) {
	if err := req.Coordinate.Validate(); err != nil {
		return TimeSet{}, err
	}
	if err := ValidateOffset(req.UTCOffset); err != nil {
		return TimeSet{}, err
	}
	angles, err := method.Resolve(req.Method, req.CustomAngles)
	if err != nil {
		return TimeSet{}, err
	}
	if err := req.AsrShadow.Validate(); err != nil {
		return TimeSet{}, err
	}
	cal := StandardCalibration()
	if req.Calibration != nil {
		cal = *req.Calibration
	}
	if err := cal.Validate(); err != nil {
		return TimeSet{}, err
	}
	if err := req.HighLatitude.Validate(); err != nil {
		return TimeSet{}, err
	}
	if req.Date.IsZero() {
		return TimeSet{}, fmt.Errorf("%w: date is required", method.ErrInvalidConfiguration)
	}

	d := day{
		lat:    req.Coordinate.Latitude,
		lon:    req.Coordinate.Longitude,
		tz:     req.UTCOffset,
		doy:    float64(req.Date.YearDay()),
		solver: c.solver(),
	}

	noon := d.solarNoon()
	fajr := d.solve(fixedAltitude(angles.Fajr), beforeNoon)
	sunrise := d.solve(fixedAltitude(cal.SunriseAltitude), beforeNoon)
	asr := d.solve(asrAltitude(d.lat, req.AsrShadow), afterNoon)
	sunset := d.solve(fixedAltitude(cal.SunsetAltitude), afterNoon)

	isha := event{undefined: true}
	if angles.IshaRule == method.IshaByAngle {
		isha = d.solve(fixedAltitude(angles.Isha), afterNoon)
	}
	fajr, isha = req.HighLatitude.substitute(fajr, isha, sunrise, sunset, angles)

	maghrib := sunset.plus(cal.MaghribBuffer)
	if angles.IshaRule == method.IshaRamadanInterval {
		interval := ishaIntervalMinutes
		if hijri.Convert(req.Date, req.HijriOffset).Month == hijri.Ramadan {
			interval = ishaRamadanIntervalMinutes
		}
		isha = maghrib.plus(float64(interval))
	} else {
		isha = isha.plus(cal.IshaBuffer)
	}

	return TimeSet{
		Fajr:    fajr.plus(cal.FajrBuffer).time(Fajr),
		Sunrise: sunrise.time(Sunrise),
		Zawal:   event{hours: noon}.plus(cal.ZawalBuffer).time(Dhuhr),
		Asr:     asr.time(Asr),
		Maghrib: maghrib.time(Maghrib),
		Isha:    isha.time(Isha),
	}, nil
}

func (c Calculator) solver() Solver {
	s := c.Solver
	if s.Iterations <= 0 {
		s.Iterations = DefaultSolver.Iterations
	}
	return s
}

// event is an intermediate time in raw local hours.
type event struct {
	hours     float64
	undefined bool
	adjusted  bool
}

func (e event) plus(minutes float64) event {
	if e.undefined {
		return e
	}
	e.hours += minutes / 60
	return e
}

func (e event) time(name string) Time {
	if e.undefined {
		return undefinedTime(name)
	}
	t := newTime(name, e.hours)
	t.Adjusted = e.adjusted
	return t
}

type direction int

const (
	beforeNoon direction = iota
	afterNoon
)

// altitudeFunc gives the target solar altitude for a declination, or false
// when no altitude is meaningful.
type altitudeFunc func(declDeg float64) (float64, bool)

func fixedAltitude(alt float64) altitudeFunc {
	return func(float64) (float64, bool) { return alt, true }
}

// minAsrNoonAltitude is the lowest noon sun altitude, in degrees, at which
// Asr is defined. Below it the Asr shadow is reached within a minute or two
// of Zawal and the two would share a clock minute.
const minAsrNoonAltitude = 1.0

// asrAltitude is the altitude at which an object's shadow equals shadow times
// its height plus its noon shadow. Asr is undefined when the sun stays below
// minAsrNoonAltitude at noon.
func asrAltitude(lat float64, shadow method.AsrShadow) altitudeFunc {
	return func(decl float64) (float64, bool) {
		zenith := math.Abs(lat - decl)
		if 90-zenith < minAsrNoonAltitude {
			return 0, false
		}
		return astro.RadToDeg(math.Atan(1 / (float64(shadow) + math.Tan(astro.DegToRad(zenith))))), true
	}
}

// day carries the per-day inputs of the solver.
type day struct {
	lat, lon float64
	tz       float64
	doy      float64
	solver   Solver
}

// noonAt returns local solar noon and the declination, evaluated at the
// instant of local time t. Noon is wrapped to within 12 hours of civil noon so
// zones far from their meridian (UTC+14) stay on the requested day.
func (d day) noonAt(t float64) (noon, decl float64) {
	decl, eot := astro.SolarPosition(d.doy + (t-d.tz)/24)
	noon = 12 + d.tz - d.lon/15 - eot/60
	noon -= 24 * math.Round((noon-12)/24)
	return noon, decl
}

func (d day) solarNoon() float64 {
	t := 12.0
	for i := 0; i < d.solver.Iterations; i++ {
		next, _ := d.noonAt(t)
		done := d.solver.Tolerance > 0 && math.Abs(next-t) < d.solver.Tolerance
		t = next
		if done {
			break
		}
	}
	return t
}

// solve finds the local time the sun reaches alt on one side of noon.
//
// The event is undefined if any refinement pass finds no solution. A pass
// that misses feeds a clamped hour angle into the next estimate, so a later
// pass that happens to converge near noon is not trusted.
func (d day) solve(alt altitudeFunc, dir direction) event {
	t := 6.0
	if dir == afterNoon {
		t = 18
	}

	undefined := false
	for i := 0; i < d.solver.Iterations; i++ {
		noon, decl := d.noonAt(t)
		target, defined := alt(decl)
		ha := astro.HourAngle(d.lat, decl, target)

		next := noon + ha.Degrees/15
		if dir == beforeNoon {
			next = noon - ha.Degrees/15
		}
		done := d.solver.Tolerance > 0 && math.Abs(next-t) < d.solver.Tolerance
		t = next
		if !defined || ha.NoSolution {
			undefined = true
		}
		if done {
			break
		}
	}
	return event{hours: t, undefined: undefined}
}
