package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var subtaskCmd = &cobra.Command{
	Use:   "subtask",
	Short: "Manage the checklist of a task",
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add <task-id> <title>",
	Short: "Append a subtask",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		title := strings.TrimSpace(strings.Join(args[1:], " "))
		if title == "" {
			return fmt.Errorf("subtask title must not be empty")
		}
		if !Store.AddSubtask(id, title) {
			return fmt.Errorf("task %d not found", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added subtask to task %d: %s\n", id, title)
		return persistWarning(cmd)
	},
}

var subtaskToggleCmd = &cobra.Command{
	Use:   "toggle <task-id> <subtask-id>",
	Short: "Flip a subtask between done and open",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		subID, err := parseTaskID(args[1])
		if err != nil {
			return fmt.Errorf("invalid subtask id %q", args[1])
		}
		if !Store.ToggleSubtask(id, subID) {
			return fmt.Errorf("subtask %d of task %d not found", subID, id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Toggled subtask %d of task %d\n", subID, id)
		return persistWarning(cmd)
	},
}

func init() {
	subtaskAddCmd.ValidArgsFunction = completeTaskIDs()
	subtaskToggleCmd.ValidArgsFunction = completeTaskIDs()
	subtaskCmd.AddCommand(subtaskAddCmd, subtaskToggleCmd)
	rootCmd.AddCommand(subtaskCmd)
}
