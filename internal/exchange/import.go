package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/valter-silva-au/smart-task-manager/internal/storage"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// Import result messages.
const (
	msgMissingTasks = "Invalid file format: Missing tasks array"
	msgNoValidTasks = "No valid tasks found in the file"
	msgImported     = "Successfully imported %d tasks"
	msgFailed       = "Import failed: %s"
)

// ValidationError reports an import payload that cannot be used at all.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// importCandidate is one untrusted entry of an imported tasks array. Title
// and description are pointers so that absent and empty can be told apart.
type importCandidate struct {
	Title          *string                 `json:"title"`
	Description    *string                 `json:"description"`
	DueDate        string                  `json:"dueDate"`
	CreatedDate    string                  `json:"createdDate"`
	Priority       models.Priority         `json:"priority"`
	Status         models.TaskStatus       `json:"status"`
	Category       models.Category         `json:"category"`
	Tags           []string                `json:"tags"`
	EstimatedHours *float64                `json:"estimatedHours"`
	ActualHours    *float64                `json:"actualHours"`
	Subtasks       []storage.SubtaskRecord `json:"subtasks"`
}

// ParseImport reads a JSON backup and returns its valid tasks along with the
// number of entries skipped as invalid. Returned tasks keep their createdDate;
// their ids are meaningless until the store assigns fresh ones. A
// *ValidationError is returned when the document is not JSON or has no
// tasks array.
func ParseImport(r io.Reader) ([]models.Task, int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, &ValidationError{Message: fmt.Sprintf(msgFailed, err.Error()), Err: err}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, &ValidationError{Message: fmt.Sprintf(msgFailed, err.Error()), Err: err}
	}

	raw, ok := doc["tasks"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, 0, &ValidationError{Message: msgMissingTasks}
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, 0, &ValidationError{Message: msgMissingTasks, Err: err}
	}

	tasks := make([]models.Task, 0, len(entries))
	skipped := 0
	for _, entry := range entries {
		t, ok := candidateTask(entry)
		if !ok {
			skipped++
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, skipped, nil
}

// candidateTask decodes and validates one entry.
func candidateTask(entry json.RawMessage) (models.Task, bool) {
	var c importCandidate
	if err := json.Unmarshal(entry, &c); err != nil {
		return models.Task{}, false
	}
	if c.Title == nil || c.Description == nil || c.DueDate == "" || c.CreatedDate == "" {
		return models.Task{}, false
	}

	due, err := parseImportTime(c.DueDate)
	if err != nil {
		return models.Task{}, false
	}
	created, err := parseImportTime(c.CreatedDate)
	if err != nil {
		return models.Task{}, false
	}

	t := models.Task{
		Title:          *c.Title,
		Description:    *c.Description,
		DueDate:        due,
		CreatedDate:    created,
		Priority:       c.Priority,
		Status:         c.Status,
		Category:       c.Category,
		Tags:           append([]string{}, c.Tags...),
		EstimatedHours: c.EstimatedHours,
		ActualHours:    c.ActualHours,
		Subtasks:       make([]models.Subtask, len(c.Subtasks)),
	}
	for i, st := range c.Subtasks {
		t.Subtasks[i] = models.Subtask{ID: st.ID, Title: st.Title, Completed: st.Completed}
	}
	if err := t.Validate(); err != nil {
		return models.Task{}, false
	}
	return t, true
}

// parseImportTime accepts RFC 3339 timestamps and bare YYYY-MM-DD dates.
func parseImportTime(s string) (time.Time, error) {
	if t, err := storage.ParseTime(s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// TaskImporter appends tasks under fresh ids and returns the stored copies.
// core.TaskStore satisfies it.
type TaskImporter interface {
	Import(tasks []models.Task) []models.Task
}

// Result is the outcome of an import.
type Result struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ImportedCount int    `json:"importedCount,omitempty"`
}

// Importer merges JSON backups into a task collection.
type Importer struct {
	target TaskImporter
}

// NewImporter creates an Importer that appends into target.
func NewImporter(target TaskImporter) *Importer {
	return &Importer{target: target}
}

// Import parses r and appends its valid tasks. Existing tasks are never
// overwritten.
func (im *Importer) Import(r io.Reader) Result {
	tasks, _, err := ParseImport(r)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	if len(tasks) == 0 {
		return Result{Success: false, Message: msgNoValidTasks}
	}

	imported := im.target.Import(tasks)
	if len(imported) == 0 {
		return Result{Success: false, Message: msgNoValidTasks}
	}
	return Result{
		Success:       true,
		Message:       fmt.Sprintf(msgImported, len(imported)),
		ImportedCount: len(imported),
	}
}
