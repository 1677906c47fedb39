package observability

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestLog(t *testing.T) EventLog {
	t.Helper()
	log, err := NewJSONLEventLog(filepath.Join(t.TempDir(), "data", EventLogFileName))
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func writeEvents(t *testing.T, log EventLog, events ...Event) {
	t.Helper()
	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}
}

var logBase = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestEventLog_WriteAndRead(t *testing.T) {
	log := newTestLog(t)
	writeEvents(t, log,
		Event{Time: logBase, Level: "INFO", Type: "task.created", Message: "task created", Data: map[string]any{"id": 1}},
		Event{Time: logBase.Add(time.Second), Level: "ERROR", Type: "store.save_failed", Message: "store save failed"},
	)

	result, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 events, got %d", len(result))
	}
	if result[0].Type != "task.created" || result[0].Message != "task created" {
		t.Errorf("first event = %+v", result[0])
	}
	if id, ok := result[0].Data["id"].(float64); !ok || id != 1 {
		t.Errorf("Data[id] = %v, want 1", result[0].Data["id"])
	}
	if result[1].Level != "ERROR" {
		t.Errorf("expected level ERROR, got %s", result[1].Level)
	}
}

func TestEventLog_Filters(t *testing.T) {
	events := []Event{
		{Time: logBase, Level: "INFO", Type: "task.created", Message: "first"},
		{Time: logBase.Add(time.Hour), Level: "INFO", Type: "task.updated", Message: "second"},
		{Time: logBase.Add(2 * time.Hour), Level: "WARN", Type: "store.load_failed", Message: "third"},
		{Time: logBase.Add(3 * time.Hour), Level: "INFO", Type: "task.created", Message: "fourth"},
	}
	since := logBase.Add(30 * time.Minute)
	until := logBase.Add(2*time.Hour + 30*time.Minute)

	tests := []struct {
		name   string
		filter EventFilter
		want   []string
	}{
		{"all", EventFilter{}, []string{"first", "second", "third", "fourth"}},
		{"type", EventFilter{Type: "task.created"}, []string{"first", "fourth"}},
		{"prefix", EventFilter{TypePrefix: "task."}, []string{"first", "second", "fourth"}},
		{"level", EventFilter{Level: "WARN"}, []string{"third"}},
		{"time range", EventFilter{Since: &since, Until: &until}, []string{"second", "third"}},
		{"combined", EventFilter{Since: &since, TypePrefix: "task."}, []string{"second", "fourth"}},
	}

	backends := map[string]func(t *testing.T) EventLog{
		"jsonl":  newTestLog,
		"memory": func(*testing.T) EventLog { return NewMemoryEventLog() },
	}
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			log := open(t)
			writeEvents(t, log, events...)
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					result, err := log.Read(tt.filter)
					if err != nil {
						t.Fatalf("reading events: %v", err)
					}
					var got []string
					for _, e := range result {
						got = append(got, e.Message)
					}
					if len(got) != len(tt.want) {
						t.Fatalf("got %v, want %v", got, tt.want)
					}
					for i := range got {
						if got[i] != tt.want[i] {
							t.Errorf("got %v, want %v", got, tt.want)
							break
						}
					}
				})
			}
		})
	}
}

func TestEventLog_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), EventLogFileName)
	content := `{"time":"2025-03-10T09:00:00Z","level":"INFO","type":"task.created","msg":"ok"}
not json at all

{"time":"2025-03-10T10:00:00Z","level":"INFO","type":"task.deleted","msg":"also ok"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	result, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(result) != 2 || result[1].Type != "task.deleted" {
		t.Errorf("result = %+v", result)
	}
}

func TestEventLog_EmptyLog(t *testing.T) {
	result, err := newTestLog(t).Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading empty log: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected 0 events from empty log, got %d", len(result))
	}
}

func TestEventLog_ConcurrentWrites(t *testing.T) {
	log := newTestLog(t)

	const goroutines = 10
	const eventsPerGoroutine = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < eventsPerGoroutine; i++ {
				event := Event{
					Time:    time.Now().UTC(),
					Level:   "INFO",
					Type:    "task.updated",
					Message: "concurrent event",
					Data:    map[string]any{"goroutine": id, "index": i},
				}
				if err := log.Write(event); err != nil {
					t.Errorf("concurrent write error: %v", err)
				}
			}
		}(g)
	}
	wg.Wait()

	result, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events after concurrent writes: %v", err)
	}
	if expected := goroutines * eventsPerGoroutine; len(result) != expected {
		t.Errorf("expected %d events, got %d", expected, len(result))
	}
}
