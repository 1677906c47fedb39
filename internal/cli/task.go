package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/smart-task-manager/internal/core"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// taskFlags holds the field flags of add and update. Each command binds its
// own copy so that their defaults stay independent.
type taskFlags struct {
	title    string
	desc     string
	due      string
	priority string
	status   string
	category string
	tags     string
	est      float64
	act      float64
	clearEst bool
	clearAct bool
}

var (
	addFlags    taskFlags
	updateFlags taskFlags
	showJSON    bool
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new task",
	Long: `Create a new task. The id and creation date are assigned automatically.

Due dates accept YYYY-MM-DD, RFC 3339, or an offset from now such as
+3d, +4h or +30m. The default is one day from now.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		now := Clock.Now()
		due, err := core.ParseDueDate(addFlags.due, now)
		if err != nil {
			return fmt.Errorf("parsing --due: %w", err)
		}
		priority, err := parsePriority(addFlags.priority)
		if err != nil {
			return err
		}
		status, err := parseStatus(addFlags.status)
		if err != nil {
			return err
		}
		category, err := parseCategory(addFlags.category)
		if err != nil {
			return err
		}

		draft := models.TaskDraft{
			Title:       strings.Join(args, " "),
			Description: addFlags.desc,
			DueDate:     due,
			Priority:    priority,
			Status:      status,
			Category:    category,
			Tags:        splitTags(addFlags.tags),
		}
		if cmd.Flags().Changed("est") {
			draft.EstimatedHours = models.Hours(addFlags.est)
		}
		if cmd.Flags().Changed("act") {
			draft.ActualHours = models.Hours(addFlags.act)
		}

		task, err := Store.Add(draft)
		if err != nil {
			return fmt.Errorf("adding task: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created task %d: %s\n", task.ID, task.Title)
		return persistWarning(cmd)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		task, ok := Store.GetByID(id)
		if !ok {
			return fmt.Errorf("task %d not found", id)
		}
		if showJSON {
			return writeJSON(cmd.OutOrStdout(), toRecords([]models.Task{task})[0])
		}
		printTaskDetail(cmd.OutOrStdout(), task)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a task",
	Long: `Change fields of a task. Only the flags given are applied; --tags
replaces the whole tag list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		patch, err := buildPatch(cmd, &updateFlags)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to update: pass at least one field flag")
		}
		if !Store.Update(id, patch) {
			return fmt.Errorf("task %d not found or update rejected", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d\n", id)
		return persistWarning(cmd)
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		status := models.StatusCompleted
		if !Store.Update(id, models.TaskPatch{Status: &status}) {
			return fmt.Errorf("task %d not found", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Completed task %d\n", id)
		return persistWarning(cmd)
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		if !Store.Delete(id) {
			return fmt.Errorf("task %d not found", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
		return persistWarning(cmd)
	},
}

// buildPatch collects the update flags that were set on cmd.
func buildPatch(cmd *cobra.Command, f *taskFlags) (models.TaskPatch, error) {
	var patch models.TaskPatch
	flags := cmd.Flags()

	if flags.Changed("title") {
		patch.Title = &f.title
	}
	if flags.Changed("desc") {
		patch.Description = &f.desc
	}
	if flags.Changed("due") {
		due, err := core.ParseDueDate(f.due, Clock.Now())
		if err != nil {
			return patch, fmt.Errorf("parsing --due: %w", err)
		}
		patch.DueDate = &due
	}
	if flags.Changed("priority") {
		p, err := parsePriority(f.priority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if flags.Changed("status") {
		s, err := parseStatus(f.status)
		if err != nil {
			return patch, err
		}
		patch.Status = &s
	}
	if flags.Changed("category") {
		c, err := parseCategory(f.category)
		if err != nil {
			return patch, err
		}
		patch.Category = &c
	}
	if flags.Changed("tags") {
		patch.Tags = splitTags(f.tags)
	}
	if flags.Changed("est") {
		patch.EstimatedHours = models.Hours(f.est)
	}
	if flags.Changed("act") {
		patch.ActualHours = models.Hours(f.act)
	}
	patch.ClearEstimatedHours = f.clearEst
	patch.ClearActualHours = f.clearAct
	return patch, nil
}

// persistWarning reports a failed write-through without failing the command.
func persistWarning(cmd *cobra.Command) error {
	if err := Store.PersistErr(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: changes were not saved: %v\n", err)
	}
	return nil
}

func init() {
	addCmd.Flags().StringVar(&addFlags.desc, "desc", "", "Task description")
	addCmd.Flags().StringVar(&addFlags.due, "due", "+1d", "Due date (YYYY-MM-DD, RFC 3339, +3d, +4h)")
	addCmd.Flags().StringVar(&addFlags.priority, "priority", "medium", "Priority (low, medium, high, urgent)")
	addCmd.Flags().StringVar(&addFlags.status, "status", "pending", "Status (pending, in-progress, completed, cancelled)")
	addCmd.Flags().StringVar(&addFlags.category, "category", "other", "Category (work, personal, health, learning, other)")
	addCmd.Flags().StringVar(&addFlags.tags, "tags", "", "Comma-separated tags")
	addCmd.Flags().Float64Var(&addFlags.est, "est", 0, "Estimated hours")
	addCmd.Flags().Float64Var(&addFlags.act, "act", 0, "Actual hours")

	updateCmd.Flags().StringVar(&updateFlags.title, "title", "", "New title")
	updateCmd.Flags().StringVar(&updateFlags.desc, "desc", "", "New description")
	updateCmd.Flags().StringVar(&updateFlags.due, "due", "", "New due date")
	updateCmd.Flags().StringVar(&updateFlags.priority, "priority", "", "New priority")
	updateCmd.Flags().StringVar(&updateFlags.status, "status", "", "New status")
	updateCmd.Flags().StringVar(&updateFlags.category, "category", "", "New category")
	updateCmd.Flags().StringVar(&updateFlags.tags, "tags", "", "Replace tags (comma-separated, empty clears)")
	updateCmd.Flags().Float64Var(&updateFlags.est, "est", 0, "Estimated hours")
	updateCmd.Flags().Float64Var(&updateFlags.act, "act", 0, "Actual hours")
	updateCmd.Flags().BoolVar(&updateFlags.clearEst, "clear-est", false, "Remove the estimated hours")
	updateCmd.Flags().BoolVar(&updateFlags.clearAct, "clear-act", false, "Remove the actual hours")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output the task as JSON")

	registerEnumCompletions(addCmd)
	registerEnumCompletions(updateCmd)
	showCmd.ValidArgsFunction = completeTaskIDs()
	updateCmd.ValidArgsFunction = completeTaskIDs()
	doneCmd.ValidArgsFunction = completeTaskIDs(models.StatusCompleted, models.StatusCancelled)
	deleteCmd.ValidArgsFunction = completeTaskIDs()

	rootCmd.AddCommand(addCmd, showCmd, updateCmd, doneCmd, deleteCmd)
}
