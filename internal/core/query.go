package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names the field a task sequence is ordered by.
type SortKey string

const (
	SortByDueDate     SortKey = "dueDate"
	SortByPriority    SortKey = "priority"
	SortByCreatedDate SortKey = "createdDate"
	SortByTitle       SortKey = "title"
)

// SortKeys lists every supported sort key.
var SortKeys = []SortKey{SortByDueDate, SortByPriority, SortByCreatedDate, SortByTitle}

// ParseSortKey maps user input onto a SortKey. Matching ignores case, so
// "duedate" and "dueDate" are equivalent.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q (use dueDate, priority, createdDate, or title)", s)
}

// QueryMode decides how a text search and filter criteria combine.
type QueryMode string

const (
	// ModeCompose keeps tasks that match both the search text and the criteria.
	ModeCompose QueryMode = "compose"
	// ModeFilterOverrides ignores the search text whenever any criterion is set.
	ModeFilterOverrides QueryMode = "filter_overrides"
)

// ParseMode maps user input onto a QueryMode. Empty input selects ModeCompose.
func ParseMode(s string) (QueryMode, error) {
	switch QueryMode(s) {
	case "", ModeCompose:
		return ModeCompose, nil
	case ModeFilterOverrides:
		return ModeFilterOverrides, nil
	default:
		return "", fmt.Errorf("unknown query mode %q (use compose or filter_overrides)", s)
	}
}

// Criteria constrains a filter. Nil fields and an empty Tags slice impose
// no constraint.
type Criteria struct {
	Status   *models.TaskStatus
	Priority *models.Priority
	Category *models.Category
	Tags     []string
}

// IsEmpty reports whether the criteria impose no constraint.
func (c Criteria) IsEmpty() bool {
	return c.Status == nil && c.Priority == nil && c.Category == nil && len(c.Tags) == 0
}

// Search returns the tasks whose title, description or any tag contains query,
// ignoring case. A blank query returns tasks unchanged.
func Search(tasks []models.Task, query string) []models.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return tasks
	}

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesText(t, q) {
			out = append(out, t)
		}
	}
	return out
}

func matchesText(t models.Task, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Filter returns the tasks satisfying every criterion. Status, priority and
// category match exactly; a task matches Tags when it shares any tag.
func Filter(tasks []models.Task, c Criteria) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesCriteria(t, c) {
			out = append(out, t)
		}
	}
	return out
}

func matchesCriteria(t models.Task, c Criteria) bool {
	if c.Status != nil && t.Status != *c.Status {
		return false
	}
	if c.Priority != nil && t.Priority != *c.Priority {
		return false
	}
	if c.Category != nil && t.Category != *c.Category {
		return false
	}
	if len(c.Tags) == 0 {
		return true
	}
	for _, want := range c.Tags {
		for _, tag := range t.Tags {
			if tag == want {
				return true
			}
		}
	}
	return false
}

// Sort returns a new, stably ordered copy of tasks. Priority ascending puts
// low before urgent; titles use English collation.
func Sort(tasks []models.Task, key SortKey, ascending bool) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)

	var cmp func(a, b models.Task) int
	switch key {
	case SortByPriority:
		cmp = func(a, b models.Task) int { return a.Priority.Rank() - b.Priority.Rank() }
	case SortByCreatedDate:
		cmp = func(a, b models.Task) int { return a.CreatedDate.Compare(b.CreatedDate) }
	case SortByTitle:
		col := collate.New(language.English)
		cmp = func(a, b models.Task) int { return col.CompareString(a.Title, b.Title) }
	default:
		cmp = func(a, b models.Task) int { return a.DueDate.Compare(b.DueDate) }
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if ascending {
			return c < 0
		}
		return c > 0
	})
	return out
}

// Query bundles a full list request.
type Query struct {
	Text      string
	Criteria  Criteria
	SortKey   SortKey
	Ascending bool
}

// Apply runs search, filter and sort over snapshot according to mode. An
// empty SortKey leaves the order unchanged.
func Apply(snapshot []models.Task, q Query, mode QueryMode) []models.Task {
	var result []models.Task
	switch {
	case mode == ModeFilterOverrides && !q.Criteria.IsEmpty():
		result = Filter(snapshot, q.Criteria)
	case q.Criteria.IsEmpty():
		result = Search(snapshot, q.Text)
	default:
		result = Filter(Search(snapshot, q.Text), q.Criteria)
	}

	if q.SortKey == "" {
		return result
	}
	return Sort(result, q.SortKey, q.Ascending)
}
