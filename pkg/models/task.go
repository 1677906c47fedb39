package models

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus represents the current lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// Statuses lists every known status in lifecycle order.
var Statuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Priority represents the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every known priority, most urgent first.
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Rank maps a priority onto its sort weight: urgent=4, high=3, medium=2, low=1.
// Unknown priorities rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Category groups tasks by area of life.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
	CategoryOther    Category = "other"
)

// Categories lists every known category in display order.
var Categories = []Category{CategoryWork, CategoryPersonal, CategoryHealth, CategoryLearning, CategoryOther}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Subtask is a checklist item scoped to one Task. IDs are unique within the
// parent task only.
type Subtask struct {
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Task represents a unit of work with scheduling, categorization, and
// progress attributes.
type Task struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DueDate        time.Time  `json:"dueDate"`
	CreatedDate    time.Time  `json:"createdDate"`
	Priority       Priority   `json:"priority"`
	Status         TaskStatus `json:"status"`
	Category       Category   `json:"category"`
	Tags           []string   `json:"tags"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	ActualHours    *float64   `json:"actualHours,omitempty"`
	Subtasks       []Subtask  `json:"subtasks"`
}

// Clone returns a deep copy of t. Slices and optional values are never shared
// with the original.
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.Subtasks != nil {
		c.Subtasks = append([]Subtask(nil), t.Subtasks...)
	}
	c.EstimatedHours = cloneHours(t.EstimatedHours)
	c.ActualHours = cloneHours(t.ActualHours)
	return c
}

// IsCompleted reports whether the task has reached the completed status.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsOverdue reports whether the task is not completed and its due date is
// strictly before now.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.IsCompleted() && t.DueDate.Before(now)
}

// Validate checks the invariants a stored task must satisfy.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", t.Priority)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("invalid status %q", t.Status)
	}
	if !t.Category.Valid() {
		return fmt.Errorf("invalid category %q", t.Category)
	}
	if t.EstimatedHours != nil && *t.EstimatedHours < 0 {
		return fmt.Errorf("estimated hours must not be negative")
	}
	if t.ActualHours != nil && *t.ActualHours < 0 {
		return fmt.Errorf("actual hours must not be negative")
	}
	for _, st := range t.Subtasks {
		if strings.TrimSpace(st.Title) == "" {
			return fmt.Errorf("subtask %d: title must not be empty", st.ID)
		}
	}
	return nil
}

// TaskDraft carries every caller-supplied field of a new task. The store
// assigns ID and CreatedDate.
type TaskDraft struct {
	Title          string
	Description    string
	DueDate        time.Time
	Priority       Priority
	Status         TaskStatus
	Category       Category
	Tags           []string
	EstimatedHours *float64
	ActualHours    *float64
	Subtasks       []Subtask
}

// TaskPatch is a partial update. A nil field is absent and leaves the stored
// value untouched; a present field replaces the stored value wholesale, so a
// non-nil empty Tags slice clears the tags.
type TaskPatch struct {
	Title          *string
	Description    *string
	DueDate        *time.Time
	Priority       *Priority
	Status         *TaskStatus
	Category       *Category
	Tags           []string
	EstimatedHours *float64
	ActualHours    *float64
	Subtasks       []Subtask

	// ClearEstimatedHours and ClearActualHours remove the optional values.
	ClearEstimatedHours bool
	ClearActualHours    bool
}

// IsEmpty reports whether the patch carries no fields.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Priority == nil && p.Status == nil && p.Category == nil &&
		p.Tags == nil && p.EstimatedHours == nil && p.ActualHours == nil &&
		p.Subtasks == nil && !p.ClearEstimatedHours && !p.ClearActualHours
}

// ApplyTo merges the patch over t and returns the result. ID and CreatedDate
// are never changed. The returned task shares no memory with t or the patch.
func (p TaskPatch) ApplyTo(t Task) Task {
	out := t.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.DueDate != nil {
		out.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Tags != nil {
		out.Tags = append([]string{}, p.Tags...)
	}
	if p.Subtasks != nil {
		out.Subtasks = append([]Subtask{}, p.Subtasks...)
	}
	if p.ClearEstimatedHours {
		out.EstimatedHours = nil
	} else if p.EstimatedHours != nil {
		out.EstimatedHours = cloneHours(p.EstimatedHours)
	}
	if p.ClearActualHours {
		out.ActualHours = nil
	} else if p.ActualHours != nil {
		out.ActualHours = cloneHours(p.ActualHours)
	}
	return out
}

// Hours returns a pointer to v, for filling the optional hour fields.
func Hours(v float64) *float64 {
	return &v
}

func cloneHours(h *float64) *float64 {
	if h == nil {
		return nil
	}
	v := *h
	return &v
}
