package core

import (
	"time"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// SeedTasks returns the two illustrative tasks a fresh store starts with.
// Due dates are relative to now.
func SeedTasks(now time.Time) []models.Task {
	return []models.Task{
		{
			ID:             1,
			Title:          "Learn Angular",
			Description:    "Master Angular fundamentals and advanced concepts",
			DueDate:        now.Add(7 * 24 * time.Hour),
			CreatedDate:    now,
			Priority:       models.PriorityHigh,
			Status:         models.StatusInProgress,
			Category:       models.CategoryLearning,
			Tags:           []string{"learning", "frontend", "typescript"},
			EstimatedHours: models.Hours(20),
			ActualHours:    models.Hours(5),
			Subtasks: []models.Subtask{
				{ID: 1, Title: "Complete Angular tutorial", Completed: true},
				{ID: 2, Title: "Build practice project"},
				{ID: 3, Title: "Study advanced patterns"},
			},
		},
		{
			ID:             2,
			Title:          "Grocery Shopping",
			Description:    "Buy weekly groceries and household items",
			DueDate:        now.Add(2 * 24 * time.Hour),
			CreatedDate:    now,
			Priority:       models.PriorityMedium,
			Status:         models.StatusPending,
			Category:       models.CategoryPersonal,
			Tags:           []string{"shopping", "weekly"},
			EstimatedHours: models.Hours(2),
			Subtasks:       []models.Subtask{},
		},
	}
}
