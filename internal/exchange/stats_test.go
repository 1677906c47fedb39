package exchange

import (
	"testing"
	"time"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1234, "1.21 KB"},
		{2 * 1024 * 1024, "2 MB"},
		{5 * 1024 * 1024 * 1024, "5120 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDataStats(t *testing.T) {
	s := DataStats(exportFixture(), 1536)

	if s.TotalTasks != 2 || s.CompletedTasks != 1 {
		t.Errorf("counts = %d/%d, want 2/1", s.TotalTasks, s.CompletedTasks)
	}
	if s.DataSize != "1.5 KB" {
		t.Errorf("DataSize = %q", s.DataSize)
	}
	if s.LastModified != "2025-03-09T20:00:00Z" {
		t.Errorf("LastModified = %q", s.LastModified)
	}
}

func TestDataStats_Empty(t *testing.T) {
	s := DataStats(nil, 0)
	if s.TotalTasks != 0 || s.DataSize != "0 Bytes" || s.LastModified != "Never" {
		t.Errorf("stats = %+v", s)
	}
}

func TestDataStats_LastModifiedIsNewestCreation(t *testing.T) {
	tasks := []models.Task{
		{CreatedDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{CreatedDate: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{CreatedDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	if got := DataStats(tasks, 10).LastModified; got != "2025-06-01T12:00:00Z" {
		t.Errorf("LastModified = %q", got)
	}
}
