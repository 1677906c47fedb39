package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// completeTaskIDs returns a completion function that lists task ids with
// their titles, optionally excluding certain statuses. Only the first
// positional argument is completed.
func completeTaskIDs(excludeStatuses ...models.TaskStatus) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if Store == nil || len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		exclude := make(map[models.TaskStatus]bool)
		for _, s := range excludeStatuses {
			exclude[s] = true
		}

		var ids []string
		for _, task := range Store.Snapshot() {
			if exclude[task.Status] {
				continue
			}
			id := strconv.Itoa(task.ID)
			if toComplete == "" || strings.HasPrefix(id, toComplete) {
				ids = append(ids, id+"\t"+task.Title)
			}
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}

func completePriorities(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return enumValues(models.Priorities), cobra.ShellCompDirectiveNoFileComp
}

func completeStatuses(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return enumValues(models.Statuses), cobra.ShellCompDirectiveNoFileComp
}

func completeCategories(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return enumValues(models.Categories), cobra.ShellCompDirectiveNoFileComp
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// registerEnumCompletions registers value completion on a command's
// --priority, --status and --category flags.
func registerEnumCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("priority", completePriorities)
	_ = cmd.RegisterFlagCompletionFunc("status", completeStatuses)
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategories)
}
