package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah/internal/display"
	"github.com/smokyabdulrahman/salah/internal/method"
	"github.com/smokyabdulrahman/salah/internal/places"
	"github.com/smokyabdulrahman/salah/internal/prayer"
)

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the supported calculation methods with their twilight angles,\nthe Asr schools, calibration presets and high-latitude policies.",
		Args:  cobra.NoArgs,
		RunE:  runMethods,
	}
}

func newPlacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "places",
		Short: "List the built-in places usable with --city",
		Args:  cobra.NoArgs,
		RunE:  runPlaces,
	}
}

// angleLabel renders a depression angle, or the interval rule for Isha.
func angleLabel(a method.Angles, isha bool) string {
	if isha && a.IshaRule == method.IshaRamadanInterval {
		return "90 min after Maghrib (120 in Ramadan)"
	}
	v := a.Fajr
	if isha {
		v = a.Isha
	}
	if v == 0 {
		return "(your angle)"
	}
	return fmt.Sprintf("%g°", v)
}

func runMethods(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	all := method.All()

	if FlagJSON {
		type methodJSON struct {
			Key    string        `json:"key"`
			Name   string        `json:"name"`
			Angles method.Angles `json:"angles"`
		}
		out := make([]methodJSON, 0, len(all))
		for _, info := range all {
			out = append(out, methodJSON{Key: info.Key, Name: info.Name, Angles: info.Angles})
		}
		return writeJSON(w, out)
	}

	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Key", "Name", "Fajr", "Isha"})
	for _, info := range all {
		tbl.AddRow([]string{info.Key, info.Name, angleLabel(info.Angles, false), angleLabel(info.Angles, true)})
	}
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Asr schools:             %s (shadow 1), %s (shadow 2)\n", method.Shafi, method.Hanafi)
	fmt.Fprintf(w, "Calibration presets:     %s\n", strings.Join(prayer.CalibrationPresets(), ", "))
	fmt.Fprintf(w, "High-latitude policies:  %s, %s, %s\n", prayer.PolicyNone, prayer.PolicyFixedInterval, prayer.PolicyAngleBased)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --method <key> to select a calculation method (default: karachi).")
	fmt.Fprintln(w, "--method custom needs --fajr-angle and --isha-angle.")
	return nil
}

func runPlaces(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	all := places.All()

	if FlagJSON {
		return writeJSON(w, all)
	}

	tbl := display.NewTable([]string{"Slug", "Name", "Country", "Coordinates", "Zone"})
	for _, p := range all {
		tbl.AddRow([]string{p.Slug, p.Name, p.Country, p.Coordinate.String(), p.Zone})
	}
	fmt.Fprint(w, tbl.Render())
	return nil
}
