package storage

import (
	"fmt"
	"time"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// ISOLayout is the persisted timestamp format: ISO-8601 in UTC with
// millisecond precision, e.g. 2025-01-15T10:00:00.000Z.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// SubtaskRecord is the persisted shape of a subtask.
type SubtaskRecord struct {
	ID        int    `json:"id" yaml:"id" toml:"id"`
	Title     string `json:"title" yaml:"title" toml:"title"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed"`
}

// TaskRecord is the persisted shape of a task. Dates are ISO-8601 strings;
// every other field is stored verbatim.
type TaskRecord struct {
	ID             int             `json:"id" yaml:"id" toml:"id"`
	Title          string          `json:"title" yaml:"title" toml:"title"`
	Description    string          `json:"description" yaml:"description" toml:"description"`
	DueDate        string          `json:"dueDate" yaml:"dueDate" toml:"dueDate"`
	CreatedDate    string          `json:"createdDate" yaml:"createdDate" toml:"createdDate"`
	Priority       string          `json:"priority" yaml:"priority" toml:"priority"`
	Status         string          `json:"status" yaml:"status" toml:"status"`
	Category       string          `json:"category" yaml:"category" toml:"category"`
	Tags           []string        `json:"tags" yaml:"tags" toml:"tags"`
	EstimatedHours *float64        `json:"estimatedHours,omitempty" yaml:"estimatedHours,omitempty" toml:"estimatedHours,omitempty"`
	ActualHours    *float64        `json:"actualHours,omitempty" yaml:"actualHours,omitempty" toml:"actualHours,omitempty"`
	Subtasks       []SubtaskRecord `json:"subtasks" yaml:"subtasks" toml:"subtasks"`
}

// FormatTime renders t in the persisted timestamp format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseTime parses a persisted timestamp. Any RFC 3339 value is accepted,
// with or without fractional seconds.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// ToRecord converts a task to its persisted shape.
func ToRecord(t models.Task) TaskRecord {
	rec := TaskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     FormatTime(t.DueDate),
		CreatedDate: FormatTime(t.CreatedDate),
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Category:    string(t.Category),
		Tags:        append([]string{}, t.Tags...),
		Subtasks:    make([]SubtaskRecord, len(t.Subtasks)),
	}
	if t.EstimatedHours != nil {
		rec.EstimatedHours = models.Hours(*t.EstimatedHours)
	}
	if t.ActualHours != nil {
		rec.ActualHours = models.Hours(*t.ActualHours)
	}
	for i, st := range t.Subtasks {
		rec.Subtasks[i] = SubtaskRecord{ID: st.ID, Title: st.Title, Completed: st.Completed}
	}
	return rec
}

// FromRecord converts a persisted record back to a task. Missing tags and
// subtasks become empty sequences.
func FromRecord(rec TaskRecord) (models.Task, error) {
	due, err := ParseTime(rec.DueDate)
	if err != nil {
		return models.Task{}, fmt.Errorf("task %d: parsing dueDate: %w", rec.ID, err)
	}
	created, err := ParseTime(rec.CreatedDate)
	if err != nil {
		return models.Task{}, fmt.Errorf("task %d: parsing createdDate: %w", rec.ID, err)
	}

	t := models.Task{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		DueDate:     due,
		CreatedDate: created,
		Priority:    models.Priority(rec.Priority),
		Status:      models.TaskStatus(rec.Status),
		Category:    models.Category(rec.Category),
		Tags:        append([]string{}, rec.Tags...),
		Subtasks:    make([]models.Subtask, len(rec.Subtasks)),
	}
	if rec.EstimatedHours != nil {
		t.EstimatedHours = models.Hours(*rec.EstimatedHours)
	}
	if rec.ActualHours != nil {
		t.ActualHours = models.Hours(*rec.ActualHours)
	}
	for i, st := range rec.Subtasks {
		t.Subtasks[i] = models.Subtask{ID: st.ID, Title: st.Title, Completed: st.Completed}
	}
	return t, nil
}
