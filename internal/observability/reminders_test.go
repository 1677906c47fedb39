package observability

import (
	"testing"
	"time"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

var remindNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func openTask(id int, title string, due time.Time) models.Task {
	return models.Task{ID: id, Title: title, DueDate: due, Status: models.StatusPending}
}

func TestReminderEngine_Classification(t *testing.T) {
	tasks := []models.Task{
		openTask(1, "Far away", remindNow.Add(72*time.Hour)),
		openTask(2, "Tomorrow morning", remindNow.Add(20*time.Hour)),
		openTask(3, "Soon", remindNow.Add(45*time.Minute)),
		openTask(4, "Late", remindNow.Add(-49*time.Hour)),
		openTask(5, "Slightly late", remindNow.Add(-90*time.Minute)),
	}
	done := openTask(6, "Done late", remindNow.Add(-time.Hour))
	done.Status = models.StatusCompleted
	cancelled := openTask(7, "Dropped", remindNow.Add(time.Minute))
	cancelled.Status = models.StatusCancelled
	tasks = append(tasks, done, cancelled)

	got := NewReminderEngine(DefaultReminderWindows()).Evaluate(tasks, remindNow)

	want := []struct {
		id      int
		kind    ReminderKind
		message string
	}{
		{4, KindOverdue, `"Late" was due 2 days ago`},
		{5, KindOverdue, `"Slightly late" was due 1 hour ago`},
		{3, KindUrgent, `"Soon" is due in 45 minutes`},
		{2, KindReminder, `"Tomorrow morning" is due in 20 hours`},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d reminders, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].TaskID != w.id || got[i].Kind != w.kind || got[i].Message != w.message {
			t.Errorf("reminder %d = {%d %s %q}, want {%d %s %q}",
				i, got[i].TaskID, got[i].Kind, got[i].Message, w.id, w.kind, w.message)
		}
	}
}

func TestReminderEngine_WindowBoundaries(t *testing.T) {
	engine := NewReminderEngine(DefaultReminderWindows())
	tests := []struct {
		name  string
		due   time.Time
		want  ReminderKind
		empty bool
	}{
		{"exactly now", remindNow, KindUrgent, false},
		{"one nanosecond ago", remindNow.Add(-time.Nanosecond), KindOverdue, false},
		{"exactly one hour", remindNow.Add(time.Hour), KindUrgent, false},
		{"just past one hour", remindNow.Add(time.Hour + time.Second), KindReminder, false},
		{"exactly one day", remindNow.Add(24 * time.Hour), KindReminder, false},
		{"just past one day", remindNow.Add(24*time.Hour + time.Second), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Evaluate([]models.Task{openTask(1, "t", tt.due)}, remindNow)
			if tt.empty {
				if len(got) != 0 {
					t.Errorf("expected no reminder, got %+v", got)
				}
				return
			}
			if len(got) != 1 || got[0].Kind != tt.want {
				t.Errorf("got %+v, want kind %s", got, tt.want)
			}
		})
	}
}

func TestReminderEngine_CustomWindows(t *testing.T) {
	engine := NewReminderEngine(ReminderWindows{Soon: 0, Upcoming: 2 * time.Hour})
	got := engine.Evaluate([]models.Task{
		openTask(1, "a", remindNow.Add(30*time.Minute)),
		openTask(2, "b", remindNow.Add(3*time.Hour)),
	}, remindNow)
	if len(got) != 1 || got[0].TaskID != 1 || got[0].Kind != KindReminder {
		t.Errorf("got %+v", got)
	}
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		d         time.Duration
		ago, till string
	}{
		{30 * time.Second, "just now", "very soon"},
		{time.Minute, "1 minute ago", "in 1 minute"},
		{59 * time.Minute, "59 minutes ago", "in 59 minutes"},
		{61 * time.Minute, "1 hour ago", "in 1 hour"},
		{23*time.Hour + 59*time.Minute, "23 hours ago", "in 23 hours"},
		{24 * time.Hour, "1 day ago", "in 1 day"},
		{10 * 24 * time.Hour, "10 days ago", "in 10 days"},
	}
	for _, tt := range tests {
		if got := timeAgo(tt.d); got != tt.ago {
			t.Errorf("timeAgo(%v) = %q, want %q", tt.d, got, tt.ago)
		}
		if got := timeUntil(tt.d); got != tt.till {
			t.Errorf("timeUntil(%v) = %q, want %q", tt.d, got, tt.till)
		}
	}
}
