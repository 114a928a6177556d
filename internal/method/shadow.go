package method

import (
	"fmt"
	"strconv"
	"strings"
)

// AsrShadow is the shadow-length multiplier used to define Asr.
type AsrShadow int

const (
	Shafi  AsrShadow = 1
	Hanafi AsrShadow = 2
)

// Validate reports whether the factor is one of the two juristic schools.
func (s AsrShadow) Validate() error {
	if s != Shafi && s != Hanafi {
		return fmt.Errorf("%w: asr shadow factor %d must be 1 (Shafi) or 2 (Hanafi)", ErrInvalidConfiguration, int(s))
	}
	return nil
}

// String returns "shafi" or "hanafi".
func (s AsrShadow) String() string {
	switch s {
	case Shafi:
		return "shafi"
	case Hanafi:
		return "hanafi"
	default:
		return "shadow(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseAsrShadow accepts a school name or the numeric factor.
func ParseAsrShadow(v string) (AsrShadow, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "shafi", "standard", "1":
		return Shafi, nil
	case "hanafi", "2":
		return Hanafi, nil
	default:
		return 0, fmt.Errorf("%w: unknown asr school %q (want shafi or hanafi)", ErrInvalidConfiguration, v)
	}
}
