package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/smart-task-manager/internal/analytics"
)

var metricsJSON bool

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the productivity report",
	Long: `Display productivity metrics computed from the current tasks.

The report covers completion rate, productivity score, streak, overdue
count, time efficiency, estimation accuracy, category and priority
breakdowns, the last seven days, the last six months, burnout risk, and a
focus-time recommendation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		report := analytics.Compute(Store.Snapshot(), Clock.Now())
		if metricsJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		printReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func printReport(w io.Writer, r analytics.Report) {
	fmt.Fprintln(w, "Productivity Report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-24s %d\n", "Total tasks:", r.TotalTasks)
	fmt.Fprintf(w, "  %-24s %d (%d%%)\n", "Completed:", r.CompletedTasks, r.CompletionRate)
	fmt.Fprintf(w, "  %-24s %d (%s)\n", "Productivity score:", r.ProductivityScore, analytics.ScoreBand(r.ProductivityScore))
	fmt.Fprintf(w, "  %-24s %d day(s)\n", "Streak:", r.StreakDays)
	fmt.Fprintf(w, "  %-24s %d\n", "Overdue:", r.OverdueTasks)
	fmt.Fprintf(w, "  %-24s %d%%\n", "Time efficiency:", r.TimeEfficiency)
	fmt.Fprintf(w, "  %-24s %d%% (%s)\n", "Estimation accuracy:", r.EstimationAccuracy, analytics.ScoreBand(r.EstimationAccuracy))
	fmt.Fprintf(w, "  %-24s %.1fh\n", "Average time per task:", r.AverageTimePerTask)
	fmt.Fprintf(w, "  %-24s %s\n", "Most productive hour:", r.MostProductiveHour)
	fmt.Fprintf(w, "  %-24s %s\n", "Burnout risk:", r.BurnoutRisk)

	if len(r.CategoriesBreakdown) > 0 {
		fmt.Fprintln(w, "\n  By category:")
		for _, c := range r.CategoriesBreakdown {
			fmt.Fprintf(w, "    %-12s %3d  %3d%%\n", c.Category, c.Count, c.Percentage)
		}
	}
	if len(r.PriorityBreakdown) > 0 {
		fmt.Fprintln(w, "\n  By priority:")
		for _, p := range r.PriorityBreakdown {
			fmt.Fprintf(w, "    %-12s %3d  %3d%%\n", p.Priority, p.Count, p.Percentage)
		}
	}
	if len(r.WeeklyProgress) > 0 {
		fmt.Fprintln(w, "\n  Last 7 days (completed/created):")
		for _, d := range r.WeeklyProgress {
			fmt.Fprintf(w, "    %s %s  %2d/%-2d %s\n", d.Day, d.Date, d.Completed, d.Created, strings.Repeat("#", d.Completed))
		}
	}
	if len(r.MonthlyTrends) > 0 {
		fmt.Fprintln(w, "\n  Monthly trends (completed/total):")
		for _, m := range r.MonthlyTrends {
			fmt.Fprintf(w, "    %s %d  %2d/%-2d %3d%%\n", m.Month, m.Year, m.Completed, m.Total, m.Productivity)
		}
	}

	fmt.Fprintf(w, "\n  %s\n", r.FocusTimeRecommendation)
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Output the report as JSON")
	rootCmd.AddCommand(metricsCmd)
}
