package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/valter-silva-au/smart-task-manager/internal/core"
	"github.com/valter-silva-au/smart-task-manager/internal/observability"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// memPersistence keeps the saved collection in memory.
type memPersistence struct {
	tasks   []models.Task
	saves   int
	saveErr error
}

func (m *memPersistence) Load() ([]models.Task, error) {
	if m.tasks == nil {
		return nil, core.ErrNoStoredTasks
	}
	out := make([]models.Task, len(m.tasks))
	for i, t := range m.tasks {
		out[i] = t.Clone()
	}
	return out, nil
}

func (m *memPersistence) Save(tasks []models.Task) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tasks = tasks
	m.saves++
	return nil
}

func (m *memPersistence) Clear() error {
	m.tasks = nil
	return nil
}

func (m *memPersistence) Size() (int, error) {
	return 64 * len(m.tasks), nil
}

func fixtureTasks() []models.Task {
	return []models.Task{
		{
			ID: 1, Title: "Write report", Description: "Quarterly numbers",
			DueDate: testNow.Add(2 * time.Hour), CreatedDate: testNow.Add(-48 * time.Hour),
			Priority: models.PriorityHigh, Status: models.StatusPending, Category: models.CategoryWork,
			Tags: []string{"finance"}, Subtasks: []models.Subtask{},
		},
		{
			ID: 2, Title: "Gym session",
			DueDate: testNow.Add(-24 * time.Hour), CreatedDate: testNow.Add(-72 * time.Hour),
			Priority: models.PriorityMedium, Status: models.StatusCompleted, Category: models.CategoryHealth,
			Tags: []string{}, Subtasks: []models.Subtask{},
			EstimatedHours: models.Hours(1), ActualHours: models.Hours(1),
		},
		{
			ID: 3, Title: "Read book",
			DueDate: testNow.Add(-3 * time.Hour), CreatedDate: testNow.Add(-24 * time.Hour),
			Priority: models.PriorityLow, Status: models.StatusInProgress, Category: models.CategoryLearning,
			Tags: []string{"books"}, Subtasks: []models.Subtask{{ID: 1, Title: "Chapter 1"}},
		},
	}
}

// setupCLI points the package-level services at a fresh store holding tasks
// and restores the previous values when the test ends.
func setupCLI(t *testing.T, tasks []models.Task) *memPersistence {
	t.Helper()

	origStore, origData, origClock, origMode := Store, Data, Clock, QueryMode
	origLog, origActivity, origReminders, origNotifier := EventLog, ActivityCalc, Reminders, Notifier
	t.Cleanup(func() {
		Store, Data, Clock, QueryMode = origStore, origData, origClock, origMode
		EventLog, ActivityCalc, Reminders, Notifier = origLog, origActivity, origReminders, origNotifier
	})

	persist := &memPersistence{tasks: tasks}
	Clock = core.ClockFunc(func() time.Time { return testNow })
	Store = core.NewTaskStore(persist, Clock, nil)
	Data = persist
	QueryMode = core.ModeCompose
	EventLog = nil
	ActivityCalc = nil
	Reminders = observability.NewReminderEngine(observability.DefaultReminderWindows())
	Notifier = nil
	return persist
}

// resetFlags restores every flag in the tree to its default so that values
// from one Execute do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute()
	return stdout.String(), stderr.String(), err
}

// recordingNotifier captures the reminders it is asked to send.
type recordingNotifier struct {
	sent [][]observability.Reminder
	err  error
}

func (n *recordingNotifier) Notify(reminders []observability.Reminder) error {
	n.sent = append(n.sent, reminders)
	return n.err
}

var errBoom = errors.New("boom")

// --- parse helpers ---

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTaskID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTaskID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseTaskID(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{" a , b ,, c ", []string{"a", "b", "c"}},
		{",,", []string{}},
	}
	for _, tt := range tests {
		got := splitTags(tt.in)
		if got == nil {
			t.Fatalf("splitTags(%q) returned nil", tt.in)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("splitTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitTags(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseEnums(t *testing.T) {
	if s, err := parseStatus(" In-Progress "); err != nil || s != models.StatusInProgress {
		t.Errorf("parseStatus = %q, %v", s, err)
	}
	if _, err := parseStatus("done"); err == nil {
		t.Error("expected error for unknown status")
	}
	if p, err := parsePriority("URGENT"); err != nil || p != models.PriorityUrgent {
		t.Errorf("parsePriority = %q, %v", p, err)
	}
	if _, err := parsePriority("P0"); err == nil {
		t.Error("expected error for unknown priority")
	}
	if c, err := parseCategory("health"); err != nil || c != models.CategoryHealth {
		t.Errorf("parseCategory = %q, %v", c, err)
	}
	if _, err := parseCategory("finance"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestRequireStore_Nil(t *testing.T) {
	orig := Store
	defer func() { Store = orig }()
	Store = nil

	if _, _, err := runCLI(t, "list"); err == nil || err.Error() != "task store not initialized" {
		t.Errorf("expected not-initialized error, got %v", err)
	}
}
