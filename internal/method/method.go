// Package method holds the registry of prayer-time calculation methods and the
// twilight angles each one prescribes.
package method

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfiguration is returned for a method, angle or shadow-factor
// configuration the calculator cannot use.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Method identifies a calculation method. The numeric values match the
// settings store of the mobile app (Karachi is the zero value and default).
type Method int

const (
	Karachi Method = iota
	MWL
	Egypt
	UmmAlQura
	Custom
)

// IshaRule describes how Isha is derived for a method.
type IshaRule int

const (
	// IshaByAngle solves for the sun reaching the Isha twilight angle.
	IshaByAngle IshaRule = iota
	// IshaRamadanInterval places Isha a fixed interval after Maghrib,
	// 90 minutes normally and 120 minutes during Ramadan.
	IshaRamadanInterval
)

// Angles are the solar depression angles (negative = below the horizon) for
// Fajr and Isha.
type Angles struct {
	Fajr float64 `json:"fajr"`
	Isha float64 `json:"isha"`
	// IshaRule is IshaByAngle unless the method uses a fixed interval.
	IshaRule IshaRule `json:"isha_rule"`
}

// Info describes a registered method for listings.
type Info struct {
	Method Method
	Key    string
	Name   string
	Angles Angles
}

// registry is the single immutable method table. Custom has no entry: its
// angles always come from the caller.
var registry = map[Method]Info{
	Karachi:   {Karachi, "karachi", "University of Islamic Sciences, Karachi", Angles{Fajr: -18, Isha: -18}},
	MWL:       {MWL, "mwl", "Muslim World League", Angles{Fajr: -18, Isha: -17}},
	Egypt:     {Egypt, "egypt", "Egyptian General Authority of Survey", Angles{Fajr: -19.5, Isha: -17.5}},
	UmmAlQura: {UmmAlQura, "ummalqura", "Umm Al-Qura University, Makkah", Angles{Fajr: -18.5, IshaRule: IshaRamadanInterval}},
}

// All returns the registered methods in declaration order, followed by Custom.
func All() []Info {
	out := make([]Info, 0, len(registry)+1)
	for _, m := range []Method{Karachi, MWL, Egypt, UmmAlQura} {
		out = append(out, registry[m])
	}
	out = append(out, Info{Method: Custom, Key: "custom", Name: "Custom angles"})
	return out
}

// Resolve returns the angles for m. custom is only consulted for Custom and
// must then be non-nil with both angles set below the horizon.
func Resolve(m Method, custom *Angles) (Angles, error) {
	if m == Custom {
		if custom == nil {
			return Angles{}, fmt.Errorf("%w: custom method requires fajr and isha angles", ErrInvalidConfiguration)
		}
		if err := validateAngle("fajr", custom.Fajr); err != nil {
			return Angles{}, err
		}
		if err := validateAngle("isha", custom.Isha); err != nil {
			return Angles{}, err
		}
		return Angles{Fajr: custom.Fajr, Isha: custom.Isha, IshaRule: IshaByAngle}, nil
	}

	info, ok := registry[m]
	if !ok {
		return Angles{}, fmt.Errorf("%w: unknown method %d", ErrInvalidConfiguration, int(m))
	}
	return info.Angles, nil
}

// validateAngle rejects zero (unset) and non-depression angles.
func validateAngle(name string, v float64) error {
	if !(v < 0 && v >= -30) {
		return fmt.Errorf("%w: %s angle %v must be between -30 and 0 (exclusive)", ErrInvalidConfiguration, name, v)
	}
	return nil
}

// Parse converts a method key such as "mwl" or "UmmAlQura" into a Method.
func Parse(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	for _, info := range All() {
		if info.Key == key {
			return info.Method, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidConfiguration, s)
}

// String returns the method key.
func (m Method) String() string {
	if m == Custom {
		return "custom"
	}
	if info, ok := registry[m]; ok {
		return info.Key
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// Keys lists every accepted method key.
func Keys() []string {
	all := All()
	keys := make([]string, len(all))
	for i, info := range all {
		keys[i] = info.Key
	}
	return keys
}
