package analytics

import (
	"time"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// TaskStats holds status counts for a snapshot.
type TaskStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Cancelled  int `json:"cancelled"`
	Overdue    int `json:"overdue"`
}

// Stats counts tasks by status, plus those overdue as of now.
func Stats(tasks []models.Task, now time.Time) TaskStats {
	var s TaskStats
	s.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusPending:
			s.Pending++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusCancelled:
			s.Cancelled++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}
	return s
}
