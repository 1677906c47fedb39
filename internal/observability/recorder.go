package observability

import (
	"strings"
	"time"
)

// Recorder turns store events into log entries. It writes each event to an
// optional EventLog and an optional ConsoleLogger and satisfies the store's
// LogEvent contract.
type Recorder struct {
	log     EventLog
	console *ConsoleLogger
	now     func() time.Time
}

// NewRecorder creates a Recorder. Either sink may be nil; now defaults to
// time.Now.
func NewRecorder(log EventLog, console *ConsoleLogger, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{log: log, console: console, now: now}
}

// LogEvent records one event. Only a failed write to the event log is
// reported.
func (r *Recorder) LogEvent(level, eventType string, data map[string]any) error {
	event := Event{
		Time:    r.now().UTC(),
		Level:   level,
		Type:    eventType,
		Message: messageFor(eventType),
		Data:    data,
	}
	if r.console != nil {
		r.console.Log(event)
	}
	if r.log == nil {
		return nil
	}
	return r.log.Write(event)
}

// messageFor derives a readable message from an event type, so
// "store.save_failed" becomes "store save failed".
func messageFor(eventType string) string {
	return strings.NewReplacer(".", " ", "_", " ").Replace(eventType)
}
