package core

import (
	"testing"
	"time"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

func queryFixture() []models.Task {
	return []models.Task{
		{ID: 1, Title: "Write Report", Description: "quarterly numbers", Priority: models.PriorityUrgent,
			Status: models.StatusPending, Category: models.CategoryWork, Tags: []string{"finance"},
			DueDate: fixedNow.Add(72 * time.Hour), CreatedDate: fixedNow.Add(-3 * time.Hour)},
		{ID: 2, Title: "gym session", Description: "", Priority: models.PriorityLow,
			Status: models.StatusCompleted, Category: models.CategoryHealth, Tags: []string{"fitness", "weekly"},
			DueDate: fixedNow.Add(24 * time.Hour), CreatedDate: fixedNow.Add(-1 * time.Hour)},
		{ID: 3, Title: "Read book", Description: "finish the REPORT chapter", Priority: models.PriorityMedium,
			Status: models.StatusInProgress, Category: models.CategoryLearning, Tags: []string{},
			DueDate: fixedNow.Add(48 * time.Hour), CreatedDate: fixedNow.Add(-2 * time.Hour)},
		{ID: 4, Title: "Budget", Description: "", Priority: models.PriorityHigh,
			Status: models.StatusPending, Category: models.CategoryPersonal, Tags: []string{"Finance-2025"},
			DueDate: fixedNow.Add(24 * time.Hour), CreatedDate: fixedNow.Add(-4 * time.Hour)},
	}
}

func ids(tasks []models.Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func assertIDs(t *testing.T, got []models.Task, want ...int) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("ids = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("ids = %v, want %v", g, want)
		}
	}
}

// --- Search ---

func TestSearch_EmptyQueryReturnsInputUnchanged(t *testing.T) {
	tasks := queryFixture()
	for _, q := range []string{"", "   ", "\t"} {
		assertIDs(t, Search(tasks, q), 1, 2, 3, 4)
	}
}

func TestSearch_MatchesTitleDescriptionAndTags(t *testing.T) {
	tasks := queryFixture()

	assertIDs(t, Search(tasks, "report"), 1, 3)
	assertIDs(t, Search(tasks, "FINANCE"), 1, 4)
	assertIDs(t, Search(tasks, "weekly"), 2)
	assertIDs(t, Search(tasks, "nothing matches"))
}

// --- Filter ---

func TestFilter_Criteria(t *testing.T) {
	pending := models.StatusPending
	work := models.CategoryWork
	low := models.PriorityLow

	tests := []struct {
		name     string
		criteria Criteria
		want     []int
	}{
		{name: "no criteria", criteria: Criteria{}, want: []int{1, 2, 3, 4}},
		{name: "status", criteria: Criteria{Status: &pending}, want: []int{1, 4}},
		{name: "status and category", criteria: Criteria{Status: &pending, Category: &work}, want: []int{1}},
		{name: "priority", criteria: Criteria{Priority: &low}, want: []int{2}},
		{name: "any tag", criteria: Criteria{Tags: []string{"finance", "weekly"}}, want: []int{1, 2}},
		{name: "tags are exact", criteria: Criteria{Tags: []string{"Finance"}}, want: nil},
		{name: "empty tags ignored", criteria: Criteria{Tags: []string{}}, want: []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertIDs(t, Filter(queryFixture(), tt.criteria), tt.want...)
		})
	}
}

// --- Sort ---

func TestSort_PriorityAscendingPutsLowFirst(t *testing.T) {
	tasks := queryFixture()
	assertIDs(t, Sort(tasks, SortByPriority, true), 2, 3, 4, 1)
	assertIDs(t, Sort(tasks, SortByPriority, false), 1, 4, 3, 2)
}

func TestSort_DueDateIsStable(t *testing.T) {
	// Tasks 2 and 4 share a due date and keep their input order.
	assertIDs(t, Sort(queryFixture(), SortByDueDate, true), 2, 4, 3, 1)
}

func TestSort_CreatedDate(t *testing.T) {
	assertIDs(t, Sort(queryFixture(), SortByCreatedDate, true), 4, 1, 3, 2)
}

func TestSort_TitleIgnoresCase(t *testing.T) {
	// Collation puts "gym session" between "Budget" and "Read book".
	assertIDs(t, Sort(queryFixture(), SortByTitle, true), 4, 2, 3, 1)
	assertIDs(t, Sort(queryFixture(), SortByTitle, false), 1, 3, 2, 4)
}

func TestSort_DoesNotModifyInput(t *testing.T) {
	tasks := queryFixture()
	_ = Sort(tasks, SortByPriority, true)
	assertIDs(t, tasks, 1, 2, 3, 4)
}

// --- Apply ---

func TestApply_ComposeIntersects(t *testing.T) {
	pending := models.StatusPending
	q := Query{Text: "report", Criteria: Criteria{Status: &pending}}
	assertIDs(t, Apply(queryFixture(), q, ModeCompose), 1)
}

func TestApply_FilterOverridesDiscardsSearch(t *testing.T) {
	pending := models.StatusPending
	q := Query{Text: "report", Criteria: Criteria{Status: &pending}}
	assertIDs(t, Apply(queryFixture(), q, ModeFilterOverrides), 1, 4)

	// Without criteria the search still applies.
	assertIDs(t, Apply(queryFixture(), Query{Text: "report"}, ModeFilterOverrides), 1, 3)
}

func TestApply_Sorts(t *testing.T) {
	q := Query{SortKey: SortByPriority, Ascending: false}
	assertIDs(t, Apply(queryFixture(), q, ModeCompose), 1, 4, 3, 2)
}

// --- Parsing ---

func TestParseSortKey(t *testing.T) {
	for in, want := range map[string]SortKey{
		"dueDate":     SortByDueDate,
		"duedate":     SortByDueDate,
		"PRIORITY":    SortByPriority,
		"createdDate": SortByCreatedDate,
		"title":       SortByTitle,
	} {
		got, err := ParseSortKey(in)
		if err != nil || got != want {
			t.Errorf("ParseSortKey(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseSortKey("owner"); err == nil {
		t.Error("expected error for unknown sort key")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(""); err != nil || m != ModeCompose {
		t.Errorf("ParseMode(\"\") = %q, %v", m, err)
	}
	if m, err := ParseMode("filter_overrides"); err != nil || m != ModeFilterOverrides {
		t.Errorf("ParseMode(filter_overrides) = %q, %v", m, err)
	}
	if _, err := ParseMode("union"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
