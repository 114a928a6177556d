package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah/internal/display"
	"github.com/smokyabdulrahman/salah/internal/prayer"
	"github.com/smokyabdulrahman/salah/internal/schedule"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long:  "Query a specific prayer time for today, or across multiple days with --days.\n\nValid prayer names: " + strings.Join(prayer.AllPrayerNames, ", ") + " (Zawal and Zuhr are accepted for Dhuhr)",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

// queryDays parses --days: empty means today only.
func queryDays(v string) (int, error) {
	switch v {
	case "":
		return 1, nil
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := parseDays(v)
	if err != nil {
		return 0, fmt.Errorf("invalid --days value %q: must be a positive integer, 'week', or 'month'", v)
	}
	return n, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	name, ok := prayer.CanonicalName(args[0])
	if !ok {
		return fmt.Errorf("unknown prayer %q; valid names: %s", args[0], strings.Join(prayer.AllPrayerNames, ", "))
	}

	days, err := queryDays(flagQueryDays)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	plan, err := s.plan(cmd.Context(), days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if days == 1 {
		return printQuerySingleDay(out, s, plan, name)
	}
	if FlagJSON {
		return printQueryJSON(out, s, plan, name)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("%s Times: %d Days", name, days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", s.location.Label())
	fmt.Fprintln(out)

	tbl := display.NewTable([]string{"Date", name})
	for _, day := range plan.Days {
		t, _ := day.Times.Get(name)
		tbl.AddRow([]string{day.Date.Format("Mon 02 Jan"), s.clock(plan, day, t)})
	}
	tbl.SetHighlightRow(0)

	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}

func printQuerySingleDay(w io.Writer, s *session, plan *schedule.Plan, name string) error {
	day := plan.Days[0]
	t, _ := day.Times.Get(name)
	clock := s.clock(plan, day, t)

	if FlagJSON {
		out := queryJSONSingle{
			Prayer:    strings.ToLower(name),
			Date:      day.Date.Format(time.DateOnly),
			Hijri:     day.Hijri.Format(),
			Undefined: t.Undefined,
			Adjusted:  t.Adjusted,
		}
		if !t.Undefined {
			out.Time = &clock
		}
		return writeJSON(w, out)
	}

	fmt.Fprintf(w, "%s %s\n", name, clock)
	return nil
}

type queryJSONSingle struct {
	Prayer    string  `json:"prayer"`
	Time      *string `json:"time"`
	Date      string  `json:"date"`
	Hijri     string  `json:"hijri"`
	Undefined bool    `json:"undefined,omitempty"`
	Adjusted  bool    `json:"adjusted,omitempty"`
}

type queryJSONMulti struct {
	Location todayJSONLocation `json:"location"`
	Prayer   string            `json:"prayer"`
	Days     []queryJSONDay    `json:"days"`
}

type queryJSONDay struct {
	Date  string  `json:"date"`
	Hijri string  `json:"hijri"`
	Time  *string `json:"time"`
}

func printQueryJSON(w io.Writer, s *session, plan *schedule.Plan, name string) error {
	out := queryJSONMulti{
		Location: newTodayJSONLocation(s, plan.Days[0]),
		Prayer:   strings.ToLower(name),
		Days:     make([]queryJSONDay, 0, len(plan.Days)),
	}

	for _, day := range plan.Days {
		t, _ := day.Times.Get(name)
		d := queryJSONDay{Date: day.Date.Format(time.DateOnly), Hijri: day.Hijri.Format()}
		if !t.Undefined {
			clock := s.clock(plan, day, t)
			d.Time = &clock
		}
		out.Days = append(out.Days, d)
	}

	return writeJSON(w, out)
}
