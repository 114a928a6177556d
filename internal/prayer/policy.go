package prayer

import (
	"fmt"
	"math"
	"strings"

	"github.com/smokyabdulrahman/salah/internal/method"
)

// HighLatitudePolicy decides what happens to Fajr and Isha when the sun never
// reaches the twilight angle. Sunrise, Maghrib and Asr are never substituted.
type HighLatitudePolicy int

const (
	// PolicyNone leaves unreachable times undefined.
	PolicyNone HighLatitudePolicy = iota
	// PolicyFixedInterval uses Sunrise - 90 min for Fajr and Maghrib + 90 min for Isha.
	PolicyFixedInterval
	// PolicyAngleBased uses angle/60 of the night before Sunrise and after Maghrib.
	PolicyAngleBased
)

// fixedIntervalHours is the nominal twilight length used by PolicyFixedInterval.
const fixedIntervalHours = 1.5

var policyNames = []string{"none", "fixed-interval", "angle-based"}

// String returns the policy key.
func (p HighLatitudePolicy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("policy(%d)", int(p))
	}
	return policyNames[p]
}

// Validate rejects unknown policies.
func (p HighLatitudePolicy) Validate() error {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Errorf("%w: unknown high-latitude policy %d", method.ErrInvalidConfiguration, int(p))
	}
	return nil
}

// ParseHighLatitudePolicy converts a policy key into a HighLatitudePolicy.
func ParseHighLatitudePolicy(s string) (HighLatitudePolicy, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return PolicyNone, nil
	}
	for i, name := range policyNames {
		if name == key {
			return HighLatitudePolicy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown high-latitude policy %q (want %s)",
		method.ErrInvalidConfiguration, s, strings.Join(policyNames, ", "))
}

// substitute fills an undefined Fajr or Isha from sunrise and sunset. It
// returns the events unchanged when the policy is PolicyNone or when sunrise
// or sunset are themselves undefined.
func (p HighLatitudePolicy) substitute(fajr, isha, sunrise, sunset event, angles method.Angles) (event, event) {
	if p == PolicyNone || sunrise.undefined || sunset.undefined {
		return fajr, isha
	}

	night := 24 - (sunset.hours - sunrise.hours)

	fajrGap, ishaGap := fixedIntervalHours, fixedIntervalHours
	if p == PolicyAngleBased {
		fajrGap = night * math.Abs(angles.Fajr) / 60
		ishaGap = night * math.Abs(angles.Isha) / 60
	}

	if fajr.undefined {
		fajr = event{hours: sunrise.hours - fajrGap, adjusted: true}
	}
	if isha.undefined && angles.IshaRule == method.IshaByAngle {
		isha = event{hours: sunset.hours + ishaGap, adjusted: true}
	}
	return fajr, isha
}
