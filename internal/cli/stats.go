package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/smart-task-manager/internal/analytics"
	"github.com/valter-silva-au/smart-task-manager/internal/exchange"
)

var statsJSON bool

type statsOutput struct {
	Tasks analytics.TaskStats `json:"tasks"`
	Data  exchange.Stats      `json:"data"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts and stored data size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		tasks := Store.Snapshot()
		size := 0
		if Data != nil {
			n, err := Data.Size()
			if err != nil {
				return fmt.Errorf("measuring stored data: %w", err)
			}
			size = n
		}
		out := statsOutput{
			Tasks: analytics.Stats(tasks, Clock.Now()),
			Data:  exchange.DataStats(tasks, size),
		}

		if statsJSON {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "  %-16s %d\n", "Total:", out.Tasks.Total)
		fmt.Fprintf(w, "  %-16s %d\n", "Pending:", out.Tasks.Pending)
		fmt.Fprintf(w, "  %-16s %d\n", "In progress:", out.Tasks.InProgress)
		fmt.Fprintf(w, "  %-16s %d\n", "Completed:", out.Tasks.Completed)
		fmt.Fprintf(w, "  %-16s %d\n", "Cancelled:", out.Tasks.Cancelled)
		fmt.Fprintf(w, "  %-16s %d\n", "Overdue:", out.Tasks.Overdue)
		fmt.Fprintf(w, "  %-16s %s\n", "Data size:", out.Data.DataSize)
		fmt.Fprintf(w, "  %-16s %s\n", "Last modified:", out.Data.LastModified)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output stats as JSON")
	rootCmd.AddCommand(statsCmd)
}
