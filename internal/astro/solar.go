// Package astro implements the low-precision solar model used for prayer times:
// declination and equation of time from the day of year, and the hour angle at
// which the sun reaches a given altitude.
package astro

import "math"

const (
	// obliquityDeg is the amplitude of the declination sine model.
	obliquityDeg = 23.45
	// equinoxDay is the day-of-year offset at which the model declination crosses zero.
	equinoxDay  = 81
	daysPerYear = 365
)

// SolarPosition returns the sun's declination (degrees) and the equation of
// time (minutes) for a fractional, UTC-referenced day of year n.
//
// n is not clamped: callers converting a local time to UTC may pass values
// below 1 or above 366 and the model stays continuous across the boundary.
func SolarPosition(n float64) (declDeg, eotMin float64) {
	declDeg = obliquityDeg * math.Sin(2*math.Pi/daysPerYear*(n-equinoxDay))

	b := DegToRad(360.0 / daysPerYear * (n - equinoxDay))
	eotMin = 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)

	return declDeg, eotMin
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeAngle360 normalizes an angle to [0, 360).
func NormalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}
