package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata" // IANA zones must validate on hosts without zoneinfo

	"github.com/go-playground/validator/v10"

	"github.com/smokyabdulrahman/salah/internal/geo"
	"github.com/smokyabdulrahman/salah/internal/method"
	"github.com/smokyabdulrahman/salah/internal/prayer"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("timezone_or_offset", func(fl validator.FieldLevel) bool {
		return validTimezone(fl.Field().String())
	})
	_ = v.RegisterValidation("prayer_list", func(fl validator.FieldLevel) bool {
		return validPrayerList(fl.Field().String())
	})
	return v
}

// configError is a rejected config value. It unwraps to the class of the
// failure so callers can tell a bad coordinate from a bad setting.
type configError struct {
	msg  string
	kind error
}

func (e *configError) Error() string { return e.msg }
func (e *configError) Unwrap() error { return e.kind }

func errorKind(key string) error {
	if key == "latitude" || key == "longitude" {
		return geo.ErrInvalidCoordinate
	}
	return method.ErrInvalidConfiguration
}

// Validate checks field ranges and cross-field rules on a merged config.
// Errors unwrap to geo.ErrInvalidCoordinate or method.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			kind := method.ErrInvalidConfiguration
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
				if errorKind(fe.Field()) == geo.ErrInvalidCoordinate {
					kind = geo.ErrInvalidCoordinate
				}
			}
			return &configError{msg: "invalid config: " + strings.Join(msgs, "; "), kind: kind}
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if (c.Latitude == nil) != (c.Longitude == nil) {
		return &configError{msg: "invalid config: latitude and longitude must be set together", kind: geo.ErrInvalidCoordinate}
	}
	if c.Method == "custom" && (c.FajrAngle == nil || c.IshaAngle == nil) {
		return &configError{msg: "invalid config: method custom requires fajr_angle and isha_angle", kind: method.ErrInvalidConfiguration}
	}
	return nil
}

func validTimezone(s string) bool {
	if _, err := prayer.ParseOffset(s); err == nil {
		return true
	}
	// LoadLocation treats "" and "UTC" specially; both are acceptable here.
	_, err := time.LoadLocation(s)
	return err == nil
}
