package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah/internal/display"
	"github.com/smokyabdulrahman/salah/internal/hijri"
	"github.com/smokyabdulrahman/salah/internal/prayer"
	"github.com/smokyabdulrahman/salah/internal/schedule"
)

// todayView is everything the root command renders.
type todayView struct {
	plan    *schedule.Plan
	day     schedule.Day
	names   []string
	current *prayer.Prayer
	next    *prayer.Prayer
	// nextTomorrow is set when next is tomorrow's first prayer.
	nextTomorrow bool
}

func runToday(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	view, err := buildTodayView(cmd, s, s.cfg.PrayerNames())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printTodayJSON(out, s, view)
	}
	printTodayRich(out, s, view)
	return nil
}

// buildTodayView computes today and tomorrow so "next" can roll over midnight.
func buildTodayView(cmd *cobra.Command, s *session, names []string) (*todayView, error) {
	plan, err := s.plan(cmd.Context(), 2)
	if err != nil {
		return nil, err
	}

	today, tomorrow := plan.Days[0], plan.Days[1]
	todays, err := prayer.Prayers(today.Times, today.Date, plan.Location(today), names)
	if err != nil {
		return nil, err
	}

	v := &todayView{
		plan:    plan,
		day:     today,
		names:   names,
		current: prayer.CurrentPrayer(todays, s.now),
		next:    prayer.NextPrayer(todays, s.now),
	}

	if v.next == nil {
		tomorrows, err := prayer.Prayers(tomorrow.Times, tomorrow.Date, plan.Location(tomorrow), names)
		if err != nil {
			return nil, err
		}
		if len(tomorrows) > 0 {
			v.next = &tomorrows[0]
			v.nextTomorrow = true
		}
	}
	return v, nil
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, s *session, v *todayView) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", s.location.Label())
	fmt.Fprintf(w, "  %s\n", zoneLabel(s.zone, v.day.UTCOffset))
	fmt.Fprintf(w, "  %s\n", s.now.Format("Monday, 02 January 2006"))
	fmt.Fprintf(w, "  %s\n", v.day.Hijri.Format())
	if v.day.Event != nil {
		fmt.Fprintf(w, "  %s\n", display.Yellow(v.day.Event.Name))
	}
	fmt.Fprintln(w)

	// Find the max prayer name length for alignment.
	maxNameLen := 0
	for _, name := range v.names {
		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}

	adjusted := false
	for _, name := range v.names {
		t, _ := v.day.Times.Get(name)
		line := fmt.Sprintf("  %s  %s", padRight(name, maxNameLen), s.clock(v.plan, v.day, t))
		adjusted = adjusted || t.Adjusted

		switch {
		case t.Undefined:
			fmt.Fprintln(w, display.Gray(line+"  (sun does not reach this altitude today)"))
		case v.current != nil && name == v.current.Name:
			fmt.Fprintln(w, display.Dim(line))
		case v.next != nil && !v.nextTomorrow && name == v.next.Name:
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(*v.next, s.now))
			fmt.Fprintln(w, display.Accent(line)+display.Accent(fmt.Sprintf("  <- next in %s", remaining)))
		default:
			fmt.Fprintln(w, line)
		}
	}

	if v.next != nil && v.nextTomorrow {
		fmt.Fprintln(w)
		remaining := prayer.FormatRemaining(prayer.TimeRemaining(*v.next, s.now))
		fmt.Fprintln(w, display.Accent(fmt.Sprintf("  Next: %s tomorrow at %s (in %s)", v.next.Name, v.next.Time.Format(s.layout), remaining)))
	}
	if adjusted {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", display.Gray("* estimated with the "+s.settings.HighLatitude.String()+" high-latitude rule"))
	}
	fmt.Fprintln(w)
}

// padRight pads a string to the given width with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location  todayJSONLocation  `json:"location"`
	Date      todayJSONDate      `json:"date"`
	Timings   map[string]*string `json:"timings"`
	Undefined []string           `json:"undefined"`
	Adjusted  []string           `json:"adjusted,omitempty"`
	Current   string             `json:"current"`
	Next      *todayJSONNext     `json:"next"`
}

type todayJSONLocation struct {
	Name      string  `json:"name,omitempty"`
	Source    string  `json:"source"`
	Timezone  string  `json:"timezone"`
	UTCOffset float64 `json:"utc_offset"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type todayJSONDate struct {
	Gregorian string       `json:"gregorian"`
	Hijri     string       `json:"hijri"`
	HijriDate hijri.Date   `json:"hijri_date"`
	Event     *hijri.Event `json:"event,omitempty"`
}

type todayJSONNext struct {
	Prayer    string    `json:"prayer"`
	Time      string    `json:"time"`
	At        time.Time `json:"at"`
	Remaining string    `json:"remaining"`
}

func newTodayJSONLocation(s *session, day schedule.Day) todayJSONLocation {
	return todayJSONLocation{
		Name:      s.location.Name,
		Source:    string(s.location.Source),
		Timezone:  s.zone.String(),
		UTCOffset: day.UTCOffset,
		Latitude:  s.location.Coordinate.Latitude,
		Longitude: s.location.Coordinate.Longitude,
	}
}

// timingsJSON maps lowercase names to clock strings, null when undefined.
func timingsJSON(s *session, plan *schedule.Plan, day schedule.Day, names []string) (map[string]*string, []string, []string) {
	timings := make(map[string]*string, len(names))
	undefined := []string{}
	var adjusted []string
	for _, name := range names {
		t, _ := day.Times.Get(name)
		key := strings.ToLower(name)
		if t.Undefined {
			timings[key] = nil
			undefined = append(undefined, name)
			continue
		}
		clock := t.On(day.Date, plan.Location(day)).Format(s.layout)
		timings[key] = &clock
		if t.Adjusted {
			adjusted = append(adjusted, name)
		}
	}
	return timings, undefined, adjusted
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, s *session, v *todayView) error {
	timings, undefined, adjusted := timingsJSON(s, v.plan, v.day, v.names)

	out := todayJSON{
		Location: newTodayJSONLocation(s, v.day),
		Date: todayJSONDate{
			Gregorian: v.day.Date.Format(time.DateOnly),
			Hijri:     v.day.Hijri.Format(),
			HijriDate: v.day.Hijri,
			Event:     v.day.Event,
		},
		Timings:   timings,
		Undefined: undefined,
		Adjusted:  adjusted,
	}

	if v.current != nil {
		out.Current = strings.ToLower(v.current.Name)
	}
	if v.next != nil {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(v.next.Name),
			Time:      v.next.Time.Format(s.layout),
			At:        v.next.Time,
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*v.next, s.now)),
		}
	}

	return writeJSON(w, out)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
