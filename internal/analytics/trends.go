package analytics

import (
	"time"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// trendMonths is the number of calendar months in MonthlyTrends.
const trendMonths = 6

// weeklyProgress covers today and the six days before it, oldest first.
// Each entry is labeled with its real weekday.
func weeklyProgress(tasks []models.Task, now time.Time) []DayProgress {
	out := make([]DayProgress, 0, 7)
	for i := 6; i >= 0; i-- {
		day := daysBack(now, i)
		created := 0
		for _, t := range tasks {
			if sameDay(t.CreatedDate, day) {
				created++
			}
		}
		out = append(out, DayProgress{
			Date:      day.Format("2006-01-02"),
			Day:       day.Format("Mon"),
			Completed: completionsOn(tasks, day),
			Created:   created,
		})
	}
	return out
}

// monthlyTrends summarizes the trailing six calendar months ending with
// now's month, oldest first, grouping tasks by the month they are due.
func monthlyTrends(tasks []models.Task, now time.Time) []MonthTrend {
	loc := now.Location()
	y, m, _ := now.In(loc).Date()

	out := make([]MonthTrend, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		first := time.Date(y, m-time.Month(i), 1, 0, 0, 0, 0, loc)
		trend := MonthTrend{Month: first.Format("Jan"), Year: first.Year()}
		for _, t := range tasks {
			ty, tm, _ := t.DueDate.In(loc).Date()
			if ty != first.Year() || tm != first.Month() {
				continue
			}
			trend.Total++
			if t.IsCompleted() {
				trend.Completed++
			}
		}
		trend.Productivity = percent(trend.Completed, trend.Total)
		out = append(out, trend)
	}
	return out
}
