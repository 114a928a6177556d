package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah/internal/display"
	"github.com/smokyabdulrahman/salah/internal/schedule"
)

var (
	flagScheduleDays int
	flagScheduleAll  bool
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print upcoming prayer instants for alarm schedulers",
		Long: "Print every upcoming prayer instant for the next --days days, one per line,\n" +
			"with a stable ID so a scheduler can replace alarms instead of duplicating them.",
		Args: cobra.NoArgs,
		RunE: runSchedule,
	}
	cmd.Flags().IntVar(&flagScheduleDays, "days", schedule.DefaultDays, fmt.Sprintf("Number of days (1-%d)", schedule.MaxDays))
	cmd.Flags().BoolVar(&flagScheduleAll, "all", false, "Include prayers earlier today")
	return cmd
}

func runSchedule(cmd *cobra.Command, args []string) error {
	if flagScheduleDays < 1 || flagScheduleDays > schedule.MaxDays {
		return fmt.Errorf("invalid --days %d: must be between 1 and %d", flagScheduleDays, schedule.MaxDays)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	plan, err := s.plan(cmd.Context(), flagScheduleDays)
	if err != nil {
		return err
	}

	triggers := plan.Upcoming(s.now)
	if flagScheduleAll {
		triggers = plan.Triggers()
	}

	w := cmd.OutOrStdout()
	if FlagJSON {
		if triggers == nil {
			triggers = []schedule.Trigger{}
		}
		return writeJSON(w, triggers)
	}

	for _, t := range triggers {
		mark := ""
		if t.Adjusted {
			mark = display.Gray(" (estimated)")
		}
		fmt.Fprintf(w, "%s  %-8s %s%s\n", t.At.Format(time.RFC3339), t.Prayer, t.ID, mark)
	}
	return nil
}
