package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah/internal/display"
	"github.com/smokyabdulrahman/salah/internal/hijri"
)

var (
	flagHijriDate   string
	flagHijriOffset int
)

// maxHijriOffset bounds the moon-sighting correction.
const maxHijriOffset = 3

func newHijriCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hijri",
		Short: "Show the Hijri date",
		Long:  "Convert today (or --date) to the arithmetic Hijri calendar.\nUse --offset (or the hijri_offset config key) to follow local moon sighting.",
		Args:  cobra.NoArgs,
		RunE:  runHijri,
	}
	cmd.Flags().StringVar(&flagHijriDate, "date", "", "Gregorian date as YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&flagHijriOffset, "offset", 0, "Day correction, -3..3 (default: hijri_offset from config)")
	return cmd
}

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List Islamic occasions and when they next fall",
		Args:  cobra.NoArgs,
		RunE:  runEvents,
	}
}

// hijriSettings returns the reference date and offset shared by hijri and events.
func hijriSettings(cmd *cobra.Command) (time.Time, int, error) {
	cfg := effectiveConfig()

	zone, err := cfg.Zone(time.Local)
	if err != nil {
		return time.Time{}, 0, err
	}
	y, m, d := nowFunc().In(zone).Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	offset := 0
	if cfg.HijriOffset != nil {
		offset = *cfg.HijriOffset
	}
	if f := cmd.Flags().Lookup("offset"); f != nil && f.Changed {
		offset = flagHijriOffset
	}
	if offset < -maxHijriOffset || offset > maxHijriOffset {
		return time.Time{}, 0, fmt.Errorf("invalid --offset %d: must be between -%d and %d", offset, maxHijriOffset, maxHijriOffset)
	}
	return date, offset, nil
}

type hijriJSON struct {
	Gregorian string       `json:"gregorian"`
	Offset    int          `json:"offset"`
	Hijri     hijri.Date   `json:"hijri"`
	MonthName string       `json:"month_name"`
	Formatted string       `json:"formatted"`
	Event     *hijri.Event `json:"event,omitempty"`
}

func runHijri(cmd *cobra.Command, args []string) error {
	date, offset, err := hijriSettings(cmd)
	if err != nil {
		return err
	}
	if flagHijriDate != "" {
		if date, err = time.Parse(time.DateOnly, flagHijriDate); err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", flagHijriDate)
		}
	}

	h := hijri.Convert(date, offset)
	out := hijriJSON{
		Gregorian: date.Format(time.DateOnly),
		Offset:    offset,
		Hijri:     h,
		MonthName: h.MonthName(),
		Formatted: h.Format(),
	}
	if ev, ok := hijri.EventFor(h); ok {
		out.Event = &ev
	}

	w := cmd.OutOrStdout()
	if FlagJSON {
		return writeJSON(w, out)
	}

	fmt.Fprintf(w, "%s\n", out.Formatted)
	if out.Event != nil {
		fmt.Fprintf(w, "%s\n", display.Yellow(out.Event.Name))
	}
	return nil
}

// eventSearchDays covers a full Hijri year plus slack for the offset.
const eventSearchDays = 360

// nextOccurrence returns the first Gregorian date on or after from that
// falls on e.
func nextOccurrence(e hijri.Event, from time.Time, offset int) (time.Time, bool) {
	for i := 0; i <= eventSearchDays; i++ {
		d := from.AddDate(0, 0, i)
		if got, ok := hijri.EventFor(hijri.Convert(d, offset)); ok && got.Key == e.Key {
			return d, true
		}
	}
	return time.Time{}, false
}

// eventSpan renders "10 Muharram" or "21-30 Ramadan".
func eventSpan(e hijri.Event) string {
	month := hijri.Date{Month: e.Month}.MonthName()
	if e.Days > 1 {
		return fmt.Sprintf("%d-%d %s", e.Day, e.Day+e.Days-1, month)
	}
	return fmt.Sprintf("%d %s", e.Day, month)
}

type eventJSON struct {
	hijri.Event
	Next string `json:"next,omitempty"`
}

func runEvents(cmd *cobra.Command, args []string) error {
	today, offset, err := hijriSettings(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if FlagJSON {
		out := make([]eventJSON, 0, len(hijri.Events))
		for _, e := range hijri.Events {
			ej := eventJSON{Event: e}
			if d, ok := nextOccurrence(e, today, offset); ok {
				ej.Next = d.Format(time.DateOnly)
			}
			out = append(out, ej)
		}
		return writeJSON(w, out)
	}

	printEventsTable(w, today, offset)
	return nil
}

func printEventsTable(w io.Writer, today time.Time, offset int) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Islamic Occasions"))
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Hijri", "Occasion", "Next"})
	for _, e := range hijri.Events {
		next := ""
		if d, ok := nextOccurrence(e, today, offset); ok {
			next = d.Format("Mon 02 Jan 2006")
		}
		tbl.AddRow([]string{eventSpan(e), e.Name, next})
	}
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
}
