package analytics

// BurnoutRisk is a coarse classification of workload and overdue pressure.
type BurnoutRisk string

const (
	BurnoutLow    BurnoutRisk = "low"
	BurnoutMedium BurnoutRisk = "medium"
	BurnoutHigh   BurnoutRisk = "high"
)

// CategoryShare is one row of the category breakdown.
type CategoryShare struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// PriorityShare is one row of the priority breakdown.
type PriorityShare struct {
	Priority   string `json:"priority"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// DayProgress counts completions and creations on one calendar day.
type DayProgress struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Day       string `json:"day"`  // Mon, Tue, ...
	Completed int    `json:"completed"`
	Created   int    `json:"created"`
}

// MonthTrend summarizes the tasks due in one calendar month.
type MonthTrend struct {
	Month        string `json:"month"` // Jan, Feb, ...
	Year         int    `json:"year"`
	Total        int    `json:"total"`
	Completed    int    `json:"completed"`
	Productivity int    `json:"productivity"`
}

// Report is the fixed-shape metrics report for one snapshot.
type Report struct {
	TotalTasks              int             `json:"total_tasks"`
	CompletedTasks          int             `json:"completed_tasks"`
	CompletionRate          int             `json:"completion_rate"`
	AverageTimePerTask      float64         `json:"average_time_per_task"`
	ProductivityScore       int             `json:"productivity_score"`
	StreakDays              int             `json:"streak_days"`
	OverdueTasks            int             `json:"overdue_tasks"`
	TimeEfficiency          int             `json:"time_efficiency"`
	MostProductiveHour      string          `json:"most_productive_hour"`
	CategoriesBreakdown     []CategoryShare `json:"categories_breakdown"`
	PriorityBreakdown       []PriorityShare `json:"priority_breakdown"`
	WeeklyProgress          []DayProgress   `json:"weekly_progress"`
	MonthlyTrends           []MonthTrend    `json:"monthly_trends"`
	EstimationAccuracy      int             `json:"estimation_accuracy"`
	BurnoutRisk             BurnoutRisk     `json:"burnout_risk"`
	FocusTimeRecommendation string          `json:"focus_time_recommendation"`
}

// ScoreBand buckets a 0-100 score for display: "good" from 80, "fair" from
// 60, otherwise "poor".
func ScoreBand(score int) string {
	switch {
	case score >= 80:
		return "good"
	case score >= 60:
		return "fair"
	default:
		return "poor"
	}
}
