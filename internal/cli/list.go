package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah/internal/display"
	"github.com/smokyabdulrahman/salah/internal/hijri"
	"github.com/smokyabdulrahman/salah/internal/schedule"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days (default: 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, schedule.DefaultDays)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 30)
		},
	}
}

// parseDays validates a day count argument.
func parseDays(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > schedule.MaxDays {
		return 0, fmt.Errorf("invalid number of days: %q (must be between 1 and %d)", arg, schedule.MaxDays)
	}
	return n, nil
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := parseDays(args[0])
		if err != nil {
			return err
		}
		days = n
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	plan, err := s.plan(cmd.Context(), days)
	if err != nil {
		return err
	}
	names := s.cfg.PrayerNames()

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printListJSON(out, s, plan, names)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("Prayer Times: %d Days", days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", s.location.Label())
	fmt.Fprintln(out)

	headers := []string{"Date", "Hijri"}
	headers = append(headers, names...)
	headers = append(headers, "Event")
	tbl := display.NewTable(headers)

	for _, day := range plan.Days {
		row := []string{day.Date.Format("Mon 02 Jan"), shortHijri(day.Hijri)}
		for _, name := range names {
			t, _ := day.Times.Get(name)
			row = append(row, s.clock(plan, day, t))
		}
		row = append(row, eventName(day.Event))
		tbl.AddRow(row)
	}
	// The plan starts today.
	tbl.SetHighlightRow(0)

	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}

// shortHijri renders "5 Jumada al-Ula".
func shortHijri(d hijri.Date) string {
	return fmt.Sprintf("%d %s", d.Day, d.MonthName())
}

func eventName(e *hijri.Event) string {
	if e == nil {
		return ""
	}
	return e.Name
}

// listJSONOutput is the JSON structure for the list command.
type listJSONOutput struct {
	Location todayJSONLocation `json:"location"`
	Days     []listJSONDay     `json:"days"`
}

type listJSONDay struct {
	Date      string             `json:"date"`
	UTCOffset float64            `json:"utc_offset"`
	Hijri     string             `json:"hijri"`
	Event     *hijri.Event       `json:"event,omitempty"`
	Timings   map[string]*string `json:"timings"`
	Undefined []string           `json:"undefined"`
	Adjusted  []string           `json:"adjusted,omitempty"`
}

func printListJSON(w io.Writer, s *session, plan *schedule.Plan, names []string) error {
	out := listJSONOutput{
		Location: newTodayJSONLocation(s, plan.Days[0]),
		Days:     make([]listJSONDay, 0, len(plan.Days)),
	}

	for _, day := range plan.Days {
		timings, undefined, adjusted := timingsJSON(s, plan, day, names)
		out.Days = append(out.Days, listJSONDay{
			Date:      day.Date.Format(time.DateOnly),
			UTCOffset: day.UTCOffset,
			Hijri:     day.Hijri.Format(),
			Event:     day.Event,
			Timings:   timings,
			Undefined: undefined,
			Adjusted:  adjusted,
		})
	}

	return writeJSON(w, out)
}
