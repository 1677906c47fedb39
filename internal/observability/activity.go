package observability

import (
	"fmt"
	"time"
)

// Activity summarizes store activity recorded in the event log.
type Activity struct {
	TasksCreated   int            `json:"tasks_created"`
	TasksUpdated   int            `json:"tasks_updated"`
	TasksCompleted int            `json:"tasks_completed"`
	TasksDeleted   int            `json:"tasks_deleted"`
	TasksImported  int            `json:"tasks_imported"`
	SaveFailures   int            `json:"save_failures"`
	EventsByType   map[string]int `json:"events_by_type"`
	EventCount     int            `json:"event_count"`
	OldestEvent    *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent    *time.Time     `json:"newest_event,omitempty"`
}

// ActivityCalculator derives activity from the event log.
type ActivityCalculator interface {
	Calculate(since time.Time) (*Activity, error)
}

type activityCalculator struct {
	eventLog EventLog
}

// NewActivityCalculator creates an ActivityCalculator reading from eventLog.
func NewActivityCalculator(eventLog EventLog) ActivityCalculator {
	return &activityCalculator{eventLog: eventLog}
}

// Calculate aggregates every event at or after since.
func (ac *activityCalculator) Calculate(since time.Time) (*Activity, error) {
	events, err := ac.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for activity: %w", err)
	}

	a := &Activity{
		EventsByType: make(map[string]int),
		EventCount:   len(events),
	}
	for _, event := range events {
		t := event.Time
		if a.OldestEvent == nil || t.Before(*a.OldestEvent) {
			a.OldestEvent = &t
		}
		if a.NewestEvent == nil || t.After(*a.NewestEvent) {
			a.NewestEvent = &t
		}
		a.EventsByType[event.Type]++

		switch event.Type {
		case "task.created":
			a.TasksCreated++
		case "task.updated":
			a.TasksUpdated++
		case "task.completed":
			a.TasksCompleted++
		case "task.deleted":
			a.TasksDeleted++
		case "task.imported":
			a.TasksImported += importedCount(event.Data)
		case "store.save_failed":
			a.SaveFailures++
		}
	}
	return a, nil
}

// importedCount reads the "count" field of a task.imported event. JSON
// decoding yields float64, in-process events carry int.
func importedCount(data map[string]any) int {
	switch v := data["count"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
