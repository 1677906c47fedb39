package observability

import (
	"fmt"
	"sort"
	"time"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// ReminderKind classifies how close a task is to its due date.
type ReminderKind string

const (
	KindOverdue  ReminderKind = "overdue"
	KindUrgent   ReminderKind = "urgent"
	KindReminder ReminderKind = "reminder"
)

// Reminder is a due-date notice for one task.
type Reminder struct {
	TaskID  int          `json:"task_id"`
	Title   string       `json:"title"`
	Kind    ReminderKind `json:"kind"`
	Heading string       `json:"heading"`
	Message string       `json:"message"`
	DueDate time.Time    `json:"due_date"`
}

// ReminderWindows configures when reminders fire. A task due within Soon is
// urgent; one due within Upcoming gets a plain reminder.
type ReminderWindows struct {
	Soon     time.Duration
	Upcoming time.Duration
}

// DefaultReminderWindows returns one hour and one day.
func DefaultReminderWindows() ReminderWindows {
	return ReminderWindows{Soon: time.Hour, Upcoming: 24 * time.Hour}
}

// ReminderEngine evaluates due-date reminders over a task snapshot.
type ReminderEngine interface {
	Evaluate(tasks []models.Task, now time.Time) []Reminder
}

type reminderEngine struct {
	windows ReminderWindows
}

// NewReminderEngine creates a ReminderEngine with the given windows.
func NewReminderEngine(windows ReminderWindows) ReminderEngine {
	return &reminderEngine{windows: windows}
}

// Evaluate returns reminders for open tasks, overdue first, then urgent,
// then upcoming, each group ordered by due date.
func (re *reminderEngine) Evaluate(tasks []models.Task, now time.Time) []Reminder {
	var out []Reminder
	for _, t := range tasks {
		if t.Status == models.StatusCompleted || t.Status == models.StatusCancelled {
			continue
		}
		r, ok := re.classify(t, now)
		if ok {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return kindOrder(out[i].Kind) < kindOrder(out[j].Kind)
		}
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].TaskID < out[j].TaskID
	})
	return out
}

func (re *reminderEngine) classify(t models.Task, now time.Time) (Reminder, bool) {
	r := Reminder{TaskID: t.ID, Title: t.Title, DueDate: t.DueDate}
	until := t.DueDate.Sub(now)
	switch {
	case until < 0:
		r.Kind = KindOverdue
		r.Heading = "Overdue Task!"
		r.Message = fmt.Sprintf("\"%s\" was due %s", t.Title, timeAgo(-until))
	case until <= re.windows.Soon:
		r.Kind = KindUrgent
		r.Heading = "Task Due Soon!"
		r.Message = fmt.Sprintf("\"%s\" is due %s", t.Title, timeUntil(until))
	case until <= re.windows.Upcoming:
		r.Kind = KindReminder
		r.Heading = "Upcoming Task"
		r.Message = fmt.Sprintf("\"%s\" is due %s", t.Title, timeUntil(until))
	default:
		return Reminder{}, false
	}
	return r, true
}

func kindOrder(k ReminderKind) int {
	switch k {
	case KindOverdue:
		return 0
	case KindUrgent:
		return 1
	default:
		return 2
	}
}

// timeAgo renders a past offset, e.g. "2 days ago" or "just now".
func timeAgo(d time.Duration) string {
	if s := largestUnit(d); s != "" {
		return s + " ago"
	}
	return "just now"
}

// timeUntil renders a future offset, e.g. "in 45 minutes" or "very soon".
func timeUntil(d time.Duration) string {
	if s := largestUnit(d); s != "" {
		return "in " + s
	}
	return "very soon"
}

// largestUnit truncates d to whole days, hours or minutes and picks the
// largest non-zero unit. It returns "" below one minute.
func largestUnit(d time.Duration) string {
	mins := int(d / time.Minute)
	hours := mins / 60
	days := hours / 24
	switch {
	case days > 0:
		return plural(days, "day")
	case hours > 0:
		return plural(hours, "hour")
	case mins > 0:
		return plural(mins, "minute")
	default:
		return ""
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
