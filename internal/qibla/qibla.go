// Package qibla computes the great-circle bearing and distance from an
// observer to the Kaaba.
package qibla

import (
	"math"

	"github.com/smokyabdulrahman/salah/internal/astro"
	"github.com/smokyabdulrahman/salah/internal/geo"
)

// EarthRadiusKm is the mean Earth radius used by the haversine distance.
const EarthRadiusKm = 6371.0

// coincidentKm is the distance under which the observer counts as standing at the Kaaba.
const coincidentKm = 1e-6

// Kaaba is the fixed target coordinate.
var Kaaba = geo.Coordinate{Latitude: 21.4225, Longitude: 39.8262}

// Result is the direction and distance to the Kaaba.
type Result struct {
	// BearingDegrees is measured clockwise from true north, in [0, 360).
	// An observer at the Kaaba gets 0.
	BearingDegrees float64 `json:"bearing_degrees"`
	DistanceKm     float64 `json:"distance_km"`
}

// Compute returns the Qibla for an observer. The coordinate is not validated;
// use Coordinate.Validate first when the input is untrusted.
func Compute(observer geo.Coordinate) Result {
	dist := HaversineKm(observer, Kaaba)
	if dist < coincidentKm {
		return Result{BearingDegrees: 0, DistanceKm: 0}
	}
	return Result{
		BearingDegrees: Bearing(observer, Kaaba),
		DistanceKm:     dist,
	}
}

// Bearing returns the initial great-circle bearing from one point to another,
// atan2(sin Δλ, cos φ1·tan φ2 − sin φ1·cos Δλ), normalized to [0, 360).
func Bearing(from, to geo.Coordinate) float64 {
	phi1 := astro.DegToRad(from.Latitude)
	phi2 := astro.DegToRad(to.Latitude)
	dLambda := astro.DegToRad(to.Longitude - from.Longitude)

	y := math.Sin(dLambda)
	x := math.Cos(phi1)*math.Tan(phi2) - math.Sin(phi1)*math.Cos(dLambda)
	if y == 0 && x == 0 {
		return 0
	}
	return astro.NormalizeAngle360(astro.RadToDeg(math.Atan2(y, x)))
}

// HaversineKm returns the great-circle distance between two points in kilometres.
func HaversineKm(a, b geo.Coordinate) float64 {
	phi1 := astro.DegToRad(a.Latitude)
	phi2 := astro.DegToRad(b.Latitude)
	dPhi := phi2 - phi1
	dLambda := astro.DegToRad(b.Longitude - a.Longitude)

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	if h > 1 {
		h = 1
	}
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
