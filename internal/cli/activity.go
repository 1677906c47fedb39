package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	activityJSON  bool
	activitySince string
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Summarize recorded store activity",
	Long: `Summarize the event log: tasks created, updated, completed, deleted
and imported, save failures, and counts per event type.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ActivityCalc == nil {
			return fmt.Errorf("activity calculator not initialized (event logging may be disabled)")
		}

		sinceTime, err := parseSinceDuration(activitySince, Clock.Now())
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		activity, err := ActivityCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating activity: %w", err)
		}

		if activityJSON {
			return writeJSON(cmd.OutOrStdout(), activity)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Activity (since %s)\n\n", sinceTime.Format("2006-01-02"))
		fmt.Fprintf(w, "  %-24s %d\n", "Events recorded:", activity.EventCount)
		fmt.Fprintf(w, "  %-24s %d\n", "Tasks created:", activity.TasksCreated)
		fmt.Fprintf(w, "  %-24s %d\n", "Tasks updated:", activity.TasksUpdated)
		fmt.Fprintf(w, "  %-24s %d\n", "Tasks completed:", activity.TasksCompleted)
		fmt.Fprintf(w, "  %-24s %d\n", "Tasks deleted:", activity.TasksDeleted)
		fmt.Fprintf(w, "  %-24s %d\n", "Tasks imported:", activity.TasksImported)
		fmt.Fprintf(w, "  %-24s %d\n", "Save failures:", activity.SaveFailures)

		if len(activity.EventsByType) > 0 {
			types := make([]string, 0, len(activity.EventsByType))
			for t := range activity.EventsByType {
				types = append(types, t)
			}
			sort.Strings(types)
			fmt.Fprintln(w, "\n  Events by type:")
			for _, t := range types {
				fmt.Fprintf(w, "    %-22s %d\n", t+":", activity.EventsByType[t])
			}
		}

		if activity.OldestEvent != nil {
			fmt.Fprintf(w, "\n  %-24s %s\n", "Oldest event:", activity.OldestEvent.Format(time.RFC3339))
		}
		if activity.NewestEvent != nil {
			fmt.Fprintf(w, "  %-24s %s\n", "Newest event:", activity.NewestEvent.Format(time.RFC3339))
		}
		return nil
	},
}

// parseSinceDuration parses a human-friendly duration string like "7d", "30d",
// or "24h" and returns the corresponding time before now.
func parseSinceDuration(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.AddDate(0, 0, -7), nil
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day duration %q", s)
		}
		return now.AddDate(0, 0, -days), nil
	}

	if strings.HasSuffix(s, "h") {
		hours, err := strconv.Atoi(strings.TrimSuffix(s, "h"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid hour duration %q", s)
		}
		return now.Add(-time.Duration(hours) * time.Hour), nil
	}

	return time.Time{}, fmt.Errorf("unsupported duration format %q (use e.g. 7d, 30d, 24h)", s)
}

func init() {
	activityCmd.Flags().BoolVar(&activityJSON, "json", false, "Output activity as JSON")
	activityCmd.Flags().StringVar(&activitySince, "since", "7d", "Time window (e.g. 7d, 30d, 24h)")
	rootCmd.AddCommand(activityCmd)
}
