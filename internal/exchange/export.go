package exchange

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/valter-silva-au/smart-task-manager/internal/storage"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

const (
	// BackupVersion is the format version written into JSON backups.
	BackupVersion = "1.0"
	// AppVersion is recorded in backup metadata.
	AppVersion = "1.0.0"
)

// Columns is the fixed header shared by the CSV and XLSX exports.
var Columns = []string{
	"Title", "Description", "Due Date", "Created Date", "Priority",
	"Status", "Category", "Tags", "Estimated Hours", "Actual Hours",
}

// Backup is the JSON backup document.
type Backup struct {
	Version    string               `json:"version"`
	ExportDate string               `json:"exportDate"`
	Tasks      []storage.TaskRecord `json:"tasks"`
	Metadata   BackupMetadata       `json:"metadata"`
}

// BackupMetadata summarizes the backed-up collection.
type BackupMetadata struct {
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	AppVersion     string `json:"appVersion"`
}

// ExportJSON writes a JSON backup of tasks taken at now.
func ExportJSON(w io.Writer, tasks []models.Task, now time.Time) error {
	backup := Backup{
		Version:    BackupVersion,
		ExportDate: storage.FormatTime(now),
		Tasks:      make([]storage.TaskRecord, len(tasks)),
		Metadata: BackupMetadata{
			TotalTasks: len(tasks),
			AppVersion: AppVersion,
		},
	}
	for i, t := range tasks {
		backup.Tasks[i] = storage.ToRecord(t)
		if t.IsCompleted() {
			backup.Metadata.CompletedTasks++
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("writing JSON backup: %w", err)
	}
	return nil
}

// ExportCSV writes tasks as CSV with the Columns header. Text fields are
// always quoted and absent or zero hours are empty. Dates are YYYY-MM-DD
// calendar days in loc, or UTC when loc is nil.
func ExportCSV(w io.Writer, tasks []models.Task, loc *time.Location) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(Columns, ",")); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, t := range tasks {
		fields := []string{
			quote(t.Title),
			quote(t.Description),
			exportDate(t.DueDate, loc),
			exportDate(t.CreatedDate, loc),
			string(t.Priority),
			string(t.Status),
			string(t.Category),
			quote(strings.Join(t.Tags, ", ")),
			formatHours(t.EstimatedHours),
			formatHours(t.ActualHours),
		}
		if _, err := bw.WriteString("\n" + strings.Join(fields, ",")); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}

// BackupFileName returns the download name for an export of the given
// format ("json", "csv", or "xlsx") taken at now.
func BackupFileName(format string, now time.Time) string {
	date := exportDate(now, now.Location())
	if format == "json" {
		return fmt.Sprintf("smart-task-manager-backup-%s.json", date)
	}
	return fmt.Sprintf("smart-task-manager-export-%s.%s", date, format)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func exportDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02")
}

func formatHours(h *float64) string {
	if h == nil || *h == 0 {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', -1, 64)
}
