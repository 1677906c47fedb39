package analytics

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
	"pgregory.net/rapid"
)

func genOptionalHours(t *rapid.T, label string) *float64 {
	if !rapid.Bool().Draw(t, label+"_set") {
		return nil
	}
	return models.Hours(float64(rapid.IntRange(0, 80).Draw(t, label)) / 2)
}

func genSnapshot(t *rapid.T) []models.Task {
	n := rapid.IntRange(0, 25).Draw(t, "n")
	tasks := make([]models.Task, n)
	for i := range tasks {
		label := fmt.Sprintf("task%d", i)
		tasks[i] = models.Task{
			ID:             i + 1,
			Title:          "t",
			DueDate:        now.Add(time.Duration(rapid.IntRange(-60*24, 60*24).Draw(t, label+"_due")) * time.Hour),
			CreatedDate:    now.Add(-time.Duration(rapid.IntRange(0, 60*24).Draw(t, label+"_created")) * time.Hour),
			Priority:       rapid.SampledFrom(models.Priorities).Draw(t, label+"_priority"),
			Status:         rapid.SampledFrom(models.Statuses).Draw(t, label+"_status"),
			Category:       rapid.SampledFrom(models.Categories).Draw(t, label+"_category"),
			EstimatedHours: genOptionalHours(t, label+"_est"),
			ActualHours:    genOptionalHours(t, label+"_act"),
		}
	}
	return tasks
}

// Feature: smart-task-manager, Property 8: Metric Bounds
// For any snapshot, every percentage SHALL stay within its documented range
// and the breakdown counts SHALL sum to the task total.
func TestProperty_MetricBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tasks := genSnapshot(rt)
		r := Compute(tasks, now)

		inRange := func(name string, v, lo, hi int) {
			if v < lo || v > hi {
				rt.Fatalf("%s = %d outside [%d, %d]", name, v, lo, hi)
			}
		}
		inRange("CompletionRate", r.CompletionRate, 0, 100)
		inRange("EstimationAccuracy", r.EstimationAccuracy, 0, 100)
		inRange("TimeEfficiency", r.TimeEfficiency, 0, 200)
		inRange("ProductivityScore", r.ProductivityScore, 0, 120)
		inRange("StreakDays", r.StreakDays, 0, streakWindow)
		inRange("OverdueTasks", r.OverdueTasks, 0, len(tasks))

		if len(tasks) == 0 {
			return
		}
		sum := 0
		for _, c := range r.CategoriesBreakdown {
			if c.Count == 0 {
				rt.Fatalf("zero-count category %q reported", c.Category)
			}
			sum += c.Count
		}
		if sum != len(tasks) {
			rt.Fatalf("category counts sum to %d, want %d", sum, len(tasks))
		}
		if len(r.WeeklyProgress) != 7 || len(r.MonthlyTrends) != trendMonths {
			rt.Fatalf("weekly=%d monthly=%d", len(r.WeeklyProgress), len(r.MonthlyTrends))
		}
		switch r.BurnoutRisk {
		case BurnoutLow, BurnoutMedium, BurnoutHigh:
		default:
			rt.Fatalf("unknown burnout risk %q", r.BurnoutRisk)
		}
	})
}

// Feature: smart-task-manager, Property 9: Deterministic Report
// For any snapshot and now, computing the report twice SHALL return equal
// reports and SHALL NOT modify the snapshot.
func TestProperty_ComputeIsPure(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tasks := genSnapshot(rt)
		before := make([]models.Task, len(tasks))
		for i, task := range tasks {
			before[i] = task.Clone()
		}

		first := Compute(tasks, now)
		second := Compute(tasks, now)
		if !reflect.DeepEqual(first, second) {
			rt.Fatalf("reports differ:\n%+v\n%+v", first, second)
		}
		if !reflect.DeepEqual(before, tasks) {
			rt.Fatal("Compute modified its input")
		}
	})
}
