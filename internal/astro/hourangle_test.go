package astro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHourAngle_EquatorEquinoxHorizon(t *testing.T) {
	// Sun on the equator seen from the equator crosses the geometric horizon
	// exactly six hours from noon.
	got := HourAngle(0, 0, 0)
	assert.False(t, got.NoSolution)
	assert.InDelta(t, 90, got.Degrees, 1e-9)
}

func TestHourAngle_BelowHorizonIsLater(t *testing.T) {
	horizon := HourAngle(30, 10, 0)
	twilight := HourAngle(30, 10, -18)
	assert.False(t, horizon.NoSolution)
	assert.False(t, twilight.NoSolution)
	assert.Greater(t, twilight.Degrees, horizon.Degrees)
}

func TestHourAngle_PolarDay(t *testing.T) {
	// Tromsø at the June solstice: the sun never sets.
	got := HourAngle(69.65, 23.44, -0.833)
	assert.True(t, got.NoSolution)
	assert.Less(t, got.CosH, -1.0)
	assert.InDelta(t, 180, got.Degrees, 1e-9)
}

func TestHourAngle_PolarNight(t *testing.T) {
	// Tromsø at the December solstice: the sun never rises.
	got := HourAngle(69.65, -23.44, -0.833)
	assert.True(t, got.NoSolution)
	assert.Greater(t, got.CosH, 1.0)
	assert.InDelta(t, 0, got.Degrees, 1e-9)
}

func TestHourAngle_TwilightNeverReached(t *testing.T) {
	// London in midsummer: the sun never gets 18 degrees below the horizon.
	got := HourAngle(51.5074, 23.44, -18)
	assert.True(t, got.NoSolution)
}

func TestHourAngle_NeverNaN(t *testing.T) {
	for _, lat := range []float64{-90, -66.5, 0, 45, 89.999, 90} {
		for _, decl := range []float64{-23.45, 0, 23.45} {
			got := HourAngle(lat, decl, -18)
			assert.False(t, math.IsNaN(got.Degrees), "lat=%v decl=%v", lat, decl)
		}
	}
}
