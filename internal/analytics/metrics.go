package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

const (
	// efficiencyCap bounds a single task's efficiency term.
	efficiencyCap = 200.0
	// streakWindow is how many calendar days the streak scan looks back.
	streakWindow = 30
	// burnoutWindow is the trailing period counted as current workload.
	burnoutWindow = 7 * 24 * time.Hour
)

// Recommendation texts returned in Report.FocusTimeRecommendation.
const (
	RecommendEmpty   = "Start adding tasks to get personalized recommendations!"
	RecommendRest    = "Take a break! Consider reducing your workload and focusing on high-priority tasks."
	RecommendPeak    = "Your peak productivity is around %s. Schedule important tasks during this time!"
	RecommendTrack   = "Track your task completion times to discover your peak productivity hours!"
	noProductiveHour = "N/A"
)

// Compute builds the metrics report for tasks as of now.
func Compute(tasks []models.Task, now time.Time) Report {
	if len(tasks) == 0 {
		return emptyReport()
	}

	completed := countCompleted(tasks)
	overdue := countOverdue(tasks, now)
	hour := mostProductiveHour(tasks, now.Location())
	risk := burnoutRisk(tasks, now, overdue)

	return Report{
		TotalTasks:              len(tasks),
		CompletedTasks:          completed,
		CompletionRate:          percent(completed, len(tasks)),
		AverageTimePerTask:      averageTimePerTask(tasks),
		ProductivityScore:       productivityScore(tasks, now),
		StreakDays:              streakDays(tasks, now),
		OverdueTasks:            overdue,
		TimeEfficiency:          timeEfficiency(tasks),
		MostProductiveHour:      hour,
		CategoriesBreakdown:     categoriesBreakdown(tasks),
		PriorityBreakdown:       priorityBreakdown(tasks),
		WeeklyProgress:          weeklyProgress(tasks, now),
		MonthlyTrends:           monthlyTrends(tasks, now),
		EstimationAccuracy:      estimationAccuracy(tasks),
		BurnoutRisk:             risk,
		FocusTimeRecommendation: focusRecommendation(risk, hour),
	}
}

func emptyReport() Report {
	return Report{
		MostProductiveHour:      noProductiveHour,
		CategoriesBreakdown:     []CategoryShare{},
		PriorityBreakdown:       []PriorityShare{},
		WeeklyProgress:          []DayProgress{},
		MonthlyTrends:           []MonthTrend{},
		BurnoutRisk:             BurnoutLow,
		FocusTimeRecommendation: RecommendEmpty,
	}
}

func countCompleted(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if t.IsCompleted() {
			n++
		}
	}
	return n
}

func countOverdue(tasks []models.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.IsOverdue(now) {
			n++
		}
	}
	return n
}

// percent returns round(part/total*100), or 0 when total is 0.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func averageTimePerTask(tasks []models.Task) float64 {
	var sum float64
	n := 0
	for _, t := range tasks {
		if t.ActualHours != nil && *t.ActualHours > 0 {
			sum += *t.ActualHours
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*10) / 10
}

// estimated returns the tasks carrying both a positive estimate and a
// positive actual.
func estimated(tasks []models.Task) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.EstimatedHours != nil && t.ActualHours != nil && *t.EstimatedHours > 0 && *t.ActualHours > 0 {
			out = append(out, t)
		}
	}
	return out
}

// timeEfficiency is estimated/actual*100 averaged over estimated tasks, each
// term capped at efficiencyCap. With no estimated tasks it is 100.
func timeEfficiency(tasks []models.Task) int {
	qualifying := estimated(tasks)
	if len(qualifying) == 0 {
		return 100
	}
	var sum float64
	for _, t := range qualifying {
		est, act := *t.EstimatedHours, *t.ActualHours
		sum += math.Min(est/act*100, efficiencyCap)
	}
	return int(math.Round(sum / float64(len(qualifying))))
}

func estimationAccuracy(tasks []models.Task) int {
	qualifying := estimated(tasks)
	if len(qualifying) == 0 {
		return 0
	}
	var sum float64
	for _, t := range qualifying {
		est, act := *t.EstimatedHours, *t.ActualHours
		sum += math.Max(0, 100-math.Abs(est-act)/est*100)
	}
	return int(math.Round(sum / float64(len(qualifying))))
}

// timelinessScore is the share of completed tasks whose due date has not
// passed, or 100 when nothing is completed.
func timelinessScore(tasks []models.Task, now time.Time) float64 {
	total, onTime := 0, 0
	for _, t := range tasks {
		if !t.IsCompleted() {
			continue
		}
		total++
		if !t.DueDate.Before(now) {
			onTime++
		}
	}
	if total == 0 {
		return 100
	}
	return float64(onTime) / float64(total) * 100
}

// completionsOn counts completed tasks due on the calendar date starting at day.
func completionsOn(tasks []models.Task, day time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.IsCompleted() && sameDay(t.DueDate, day) {
			n++
		}
	}
	return n
}

// consistencyScore penalizes uneven completions over the trailing seven days.
func consistencyScore(tasks []models.Task, now time.Time) int {
	var counts [7]float64
	var mean float64
	for i := range counts {
		counts[i] = float64(completionsOn(tasks, daysBack(now, i)))
		mean += counts[i]
	}
	mean /= 7

	var variance float64
	for _, c := range counts {
		variance += (c - mean) * (c - mean)
	}
	variance /= 7

	return int(math.Round(math.Max(0, 100-variance*10)))
}

func productivityScore(tasks []models.Task, now time.Time) int {
	completion := float64(countCompleted(tasks)) / float64(len(tasks)) * 100
	score := 0.4*completion +
		0.3*timelinessScore(tasks, now) +
		0.2*float64(timeEfficiency(tasks)) +
		0.1*float64(consistencyScore(tasks, now))
	return int(math.Round(score))
}

// streakDays counts consecutive days with a completion, scanning back from
// today. An empty today does not break the streak.
func streakDays(tasks []models.Task, now time.Time) int {
	streak := 0
	for i := 0; i < streakWindow; i++ {
		if completionsOn(tasks, daysBack(now, i)) > 0 {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// mostProductiveHour is the creation hour with the most tasks, earliest hour
// winning ties, formatted like "9:00 AM".
func mostProductiveHour(tasks []models.Task, loc *time.Location) string {
	var counts [24]int
	for _, t := range tasks {
		counts[t.CreatedDate.In(loc).Hour()]++
	}

	best := 0
	for h := 1; h < 24; h++ {
		if counts[h] > counts[best] {
			best = h
		}
	}
	if counts[best] == 0 {
		return noProductiveHour
	}
	return formatHour(best)
}

func formatHour(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour > 12:
		display = hour - 12
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}

func categoriesBreakdown(tasks []models.Task) []CategoryShare {
	out := []CategoryShare{}
	for _, c := range models.Categories {
		n := 0
		for _, t := range tasks {
			if t.Category == c {
				n++
			}
		}
		if n > 0 {
			out = append(out, CategoryShare{Category: string(c), Count: n, Percentage: percent(n, len(tasks))})
		}
	}
	return out
}

func priorityBreakdown(tasks []models.Task) []PriorityShare {
	out := []PriorityShare{}
	for _, p := range models.Priorities {
		n := 0
		for _, t := range tasks {
			if t.Priority == p {
				n++
			}
		}
		if n > 0 {
			out = append(out, PriorityShare{Priority: string(p), Count: n, Percentage: percent(n, len(tasks))})
		}
	}
	return out
}

func burnoutRisk(tasks []models.Task, now time.Time, overdue int) BurnoutRisk {
	workload := 0
	for _, t := range tasks {
		if now.Sub(t.CreatedDate) <= burnoutWindow {
			workload++
		}
	}
	total := workload + 2*overdue
	switch {
	case total > 15:
		return BurnoutHigh
	case total > 8:
		return BurnoutMedium
	default:
		return BurnoutLow
	}
}

func focusRecommendation(risk BurnoutRisk, hour string) string {
	if risk == BurnoutHigh {
		return RecommendRest
	}
	if hour != noProductiveHour {
		return fmt.Sprintf(RecommendPeak, hour)
	}
	return RecommendTrack
}
