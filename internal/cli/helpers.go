package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/valter-silva-au/smart-task-manager/internal/storage"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

func requireStore() error {
	if Store == nil {
		return fmt.Errorf("task store not initialized")
	}
	return nil
}

func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// splitTags parses a comma-separated tag list, dropping blanks.
func splitTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func parseStatus(s string) (models.TaskStatus, error) {
	status := models.TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid status %q (use pending, in-progress, completed, cancelled)", s)
	}
	return status, nil
}

func parsePriority(s string) (models.Priority, error) {
	priority := models.Priority(strings.ToLower(strings.TrimSpace(s)))
	if !priority.Valid() {
		return "", fmt.Errorf("invalid priority %q (use low, medium, high, urgent)", s)
	}
	return priority, nil
}

func parseCategory(s string) (models.Category, error) {
	category := models.Category(strings.ToLower(strings.TrimSpace(s)))
	if !category.Valid() {
		return "", fmt.Errorf("invalid category %q (use work, personal, health, learning, other)", s)
	}
	return category, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting as JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func toRecords(tasks []models.Task) []storage.TaskRecord {
	out := make([]storage.TaskRecord, len(tasks))
	for i, t := range tasks {
		out[i] = storage.ToRecord(t)
	}
	return out
}

// printTaskTable prints one row per task.
func printTaskTable(w io.Writer, tasks []models.Task) {
	fmt.Fprintf(w, "  %-4s %-7s %-12s %-9s %-11s %s\n", "ID", "PRI", "STATUS", "CATEGORY", "DUE", "TITLE")
	fmt.Fprintf(w, "  %-4s %-7s %-12s %-9s %-11s %s\n", "--", "---", "------", "--------", "---", "-----")
	now := Clock.Now()
	for _, t := range tasks {
		title := t.Title
		if t.IsOverdue(now) {
			title += " (overdue)"
		}
		fmt.Fprintf(w, "  %-4d %-7s %-12s %-9s %-11s %s\n",
			t.ID, t.Priority, t.Status, t.Category, t.DueDate.In(now.Location()).Format("2006-01-02"), title)
	}
}

// printTaskDetail prints every field of t.
func printTaskDetail(w io.Writer, t models.Task) {
	loc := Clock.Now().Location()
	fmt.Fprintf(w, "Task %d: %s\n\n", t.ID, t.Title)
	if t.Description != "" {
		fmt.Fprintf(w, "  %-12s %s\n", "Description:", t.Description)
	}
	fmt.Fprintf(w, "  %-12s %s\n", "Status:", t.Status)
	fmt.Fprintf(w, "  %-12s %s\n", "Priority:", t.Priority)
	fmt.Fprintf(w, "  %-12s %s\n", "Category:", t.Category)
	fmt.Fprintf(w, "  %-12s %s\n", "Due:", t.DueDate.In(loc).Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  %-12s %s\n", "Created:", t.CreatedDate.In(loc).Format("2006-01-02 15:04"))
	if len(t.Tags) > 0 {
		fmt.Fprintf(w, "  %-12s %s\n", "Tags:", strings.Join(t.Tags, ", "))
	}
	if t.EstimatedHours != nil {
		fmt.Fprintf(w, "  %-12s %sh\n", "Estimated:", strconv.FormatFloat(*t.EstimatedHours, 'f', -1, 64))
	}
	if t.ActualHours != nil {
		fmt.Fprintf(w, "  %-12s %sh\n", "Actual:", strconv.FormatFloat(*t.ActualHours, 'f', -1, 64))
	}
	if len(t.Subtasks) > 0 {
		done := 0
		for _, st := range t.Subtasks {
			if st.Completed {
				done++
			}
		}
		fmt.Fprintf(w, "\n  Subtasks (%d/%d):\n", done, len(t.Subtasks))
		for _, st := range t.Subtasks {
			mark := " "
			if st.Completed {
				mark = "x"
			}
			fmt.Fprintf(w, "    [%s] %d. %s\n", mark, st.ID, st.Title)
		}
	}
}
