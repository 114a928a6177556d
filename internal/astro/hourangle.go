package astro

import "math"

// HourAngleResult is the outcome of solving for the hour angle of a target altitude.
type HourAngleResult struct {
	// Degrees is acos of the clamped cosine, in [0, 180].
	Degrees float64
	// NoSolution is set when the sun never reaches the target altitude on this
	// day at this latitude (polar day or polar night). Degrees is then the
	// clamped value and must not be used as a time.
	NoSolution bool
	// CosH is the unclamped cosine, kept for diagnostics.
	CosH float64
}

// HourAngle solves cos H = (sin α − sin φ·sin δ) / (cos φ·cos δ) for the hour
// angle H at which the sun sits at altitude altDeg, for an observer at latDeg
// and a solar declination declDeg. All angles are in degrees.
func HourAngle(latDeg, declDeg, altDeg float64) HourAngleResult {
	phi := DegToRad(latDeg)
	delta := DegToRad(declDeg)
	alpha := DegToRad(altDeg)

	cosH := (math.Sin(alpha) - math.Sin(phi)*math.Sin(delta)) / (math.Cos(phi) * math.Cos(delta))

	// NaN (e.g. at the exact pole) is treated as no solution as well.
	noSolution := !(cosH >= -1 && cosH <= 1)

	clamped := cosH
	switch {
	case math.IsNaN(clamped):
		clamped = 1
	case clamped > 1:
		clamped = 1
	case clamped < -1:
		clamped = -1
	}

	return HourAngleResult{
		Degrees:    RadToDeg(math.Acos(clamped)),
		NoSolution: noSolution,
		CosH:       cosH,
	}
}
