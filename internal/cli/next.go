package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah/internal/prayer"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nSuited to status lines such as tmux.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	// Priority: --prayers flag > config > defaults.
	names := s.cfg.PrayerNames()
	if cmd.Flags().Changed("prayers") && flagPrayers != "" {
		if names, err = parsePrayerList(flagPrayers); err != nil {
			return err
		}
	}

	view, err := buildTodayView(cmd, s, names)
	if err != nil {
		return err
	}
	if view.next == nil {
		return errors.New("no upcoming prayer time in the next two days at this latitude")
	}

	if FlagJSON {
		return writeJSON(cmd.OutOrStdout(), todayJSONNext{
			Prayer:    strings.ToLower(view.next.Name),
			Time:      view.next.Time.Format(s.layout),
			At:        view.next.Time,
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*view.next, s.now)),
		})
	}

	fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(*view.next, s.now, flagFormat, s.layout))
	return nil
}

// parsePrayerList splits and canonicalizes "fajr, Dhuhr,isha".
func parsePrayerList(s string) ([]string, error) {
	var names []string
	for _, raw := range strings.Split(s, ",") {
		name, ok := prayer.CanonicalName(raw)
		if !ok {
			return nil, fmt.Errorf("unknown prayer %q; valid names: %s", strings.TrimSpace(raw), strings.Join(prayer.AllPrayerNames, ", "))
		}
		names = append(names, name)
	}
	return names, nil
}
