package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/smart-task-manager/internal/core"
)

var (
	listStatus   string
	listPriority string
	listCategory string
	listTags     string
	listSort     string
	listAsc      bool
	listMode     string
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:     "list [query]",
	Aliases: []string{"ls"},
	Short:   "List, search, filter and sort tasks",
	Long: `List tasks. An optional query matches title, description and tags
case-insensitively. Filters combine with AND; --tags matches any of the
given tags.

With --mode filter_overrides any filter replaces the text search instead of
narrowing it. Without --sort tasks keep their stored order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		q, mode, err := buildQuery(cmd, strings.Join(args, " "))
		if err != nil {
			return err
		}
		tasks := core.Apply(Store.Snapshot(), q, mode)

		if listJSON {
			return writeJSON(cmd.OutOrStdout(), toRecords(tasks))
		}
		if len(tasks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
			return nil
		}
		printTaskTable(cmd.OutOrStdout(), tasks)
		fmt.Fprintf(cmd.OutOrStdout(), "\n  %d task(s)\n", len(tasks))
		return nil
	},
}

func buildQuery(cmd *cobra.Command, text string) (core.Query, core.QueryMode, error) {
	q := core.Query{Text: text, Ascending: listAsc}

	if listStatus != "" {
		s, err := parseStatus(listStatus)
		if err != nil {
			return q, "", err
		}
		q.Criteria.Status = &s
	}
	if listPriority != "" {
		p, err := parsePriority(listPriority)
		if err != nil {
			return q, "", err
		}
		q.Criteria.Priority = &p
	}
	if listCategory != "" {
		c, err := parseCategory(listCategory)
		if err != nil {
			return q, "", err
		}
		q.Criteria.Category = &c
	}
	if tags := splitTags(listTags); len(tags) > 0 {
		q.Criteria.Tags = tags
	}
	if listSort != "" {
		key, err := core.ParseSortKey(listSort)
		if err != nil {
			return q, "", err
		}
		q.SortKey = key
	}

	mode := QueryMode
	if cmd.Flags().Changed("mode") {
		m, err := core.ParseMode(listMode)
		if err != nil {
			return q, "", err
		}
		mode = m
	}
	return q, mode, nil
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "Filter by priority")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	listCmd.Flags().StringVar(&listTags, "tags", "", "Filter by any of these comma-separated tags")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort key (dueDate, priority, createdDate, title)")
	listCmd.Flags().BoolVar(&listAsc, "asc", false, "Sort ascending (default descending)")
	listCmd.Flags().StringVar(&listMode, "mode", "", "Query mode (compose, filter_overrides); defaults to query.mode")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output tasks as JSON")
	registerEnumCompletions(listCmd)
	rootCmd.AddCommand(listCmd)
}
