package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah/internal/display"
	"github.com/smokyabdulrahman/salah/internal/qibla"
)

func newQiblaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qibla",
		Short: "Show the Qibla direction and distance to the Kaaba",
		Args:  cobra.NoArgs,
		RunE:  runQibla,
	}
}

// compassPoints are the 16 named directions, clockwise from north.
var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// compassPoint names a bearing in degrees.
func compassPoint(bearing float64) string {
	i := int(math.Round(bearing/22.5)) % len(compassPoints)
	if i < 0 {
		i += len(compassPoints)
	}
	return compassPoints[i]
}

type qiblaJSON struct {
	Location todayJSONLocation `json:"location"`
	qibla.Result
	Compass string `json:"compass"`
}

func runQibla(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	res := qibla.Compute(s.location.Coordinate)
	w := cmd.OutOrStdout()

	if FlagJSON {
		return writeJSON(w, qiblaJSON{
			Location: todayJSONLocation{
				Name:      s.location.Name,
				Source:    string(s.location.Source),
				Timezone:  s.zone.String(),
				Latitude:  s.location.Coordinate.Latitude,
				Longitude: s.location.Coordinate.Longitude,
			},
			Result:  res,
			Compass: compassPoint(res.BearingDegrees),
		})
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Qibla"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", s.location.Label())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Direction  %s\n", display.Accent(fmt.Sprintf("%.1f° %s", res.BearingDegrees, compassPoint(res.BearingDegrees))))
	fmt.Fprintf(w, "  Distance   %.0f km\n", res.DistanceKm)
	fmt.Fprintln(w)
	return nil
}
