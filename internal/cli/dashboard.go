package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/smart-task-manager/internal/analytics"
	"github.com/valter-silva-au/smart-task-manager/internal/observability"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// Dashboard panel indices.
const (
	panelOverview = iota
	panelBreakdown
	panelReminders
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Services.
	now       func() time.Time
	snapshot  func() []models.Task
	complete  func(id int) bool
	reminders observability.ReminderEngine

	// Data.
	report   analytics.Report
	stats    analytics.TaskStats
	notices  []observability.Reminder
	cursor   int
	loaded   bool
	lastNote string
}

// snapshotMsg carries a fresh task snapshot into the model, either from the
// initial load or from a store notification.
type snapshotMsg struct {
	tasks []models.Task
}

// completedMsg reports the outcome of completing a task from the dashboard.
type completedMsg struct {
	id int
	ok bool
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	bandGood = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	bandFair = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	bandPoor = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	kindOverdue  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	kindUrgent   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	kindReminder = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	cursorStyle = lipgloss.NewStyle().Reverse(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel(now func() time.Time, snapshot func() []models.Task, complete func(id int) bool, reminders observability.ReminderEngine) dashboardModel {
	return dashboardModel{
		activePanel: panelOverview,
		now:         now,
		snapshot:    snapshot,
		complete:    complete,
		reminders:   reminders,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.load
}

func (m dashboardModel) load() tea.Msg {
	return snapshotMsg{tasks: m.snapshot()}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			return m, m.load
		case "down", "j":
			if m.activePanel == panelReminders && m.cursor < len(m.notices)-1 {
				m.cursor++
			}
			return m, nil
		case "up", "k":
			if m.activePanel == panelReminders && m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "c":
			if m.activePanel != panelReminders || len(m.notices) == 0 || m.complete == nil {
				return m, nil
			}
			id := m.notices[m.cursor].TaskID
			complete := m.complete
			return m, func() tea.Msg {
				return completedMsg{id: id, ok: complete(id)}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		now := m.now()
		m.report = analytics.Compute(msg.tasks, now)
		m.stats = analytics.Stats(msg.tasks, now)
		m.notices = nil
		if m.reminders != nil {
			m.notices = m.reminders.Evaluate(msg.tasks, now)
		}
		if m.cursor >= len(m.notices) {
			m.cursor = max(len(m.notices)-1, 0)
		}
		m.loaded = true
		return m, nil

	case completedMsg:
		if msg.ok {
			m.lastNote = fmt.Sprintf("Completed task %d", msg.id)
		} else {
			m.lastNote = fmt.Sprintf("Task %d could not be completed", msg.id)
		}
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Smart Task Manager ")
	help := helpStyle.Render("tab: switch panel | j/k: select | c: complete | r: refresh | q: quit")

	if !m.loaded {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	overview := m.renderOverviewPanel()
	breakdown := m.renderBreakdownPanel()
	reminders := m.renderRemindersPanel()

	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		colWidth := availableWidth / 3
		overview = m.applyPanelStyle(panelOverview, overview, colWidth-4)
		breakdown = m.applyPanelStyle(panelBreakdown, breakdown, colWidth-4)
		reminders = m.applyPanelStyle(panelReminders, reminders, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, overview, breakdown, reminders)
	} else {
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		overview = m.applyPanelStyle(panelOverview, overview, panelWidth)
		breakdown = m.applyPanelStyle(panelBreakdown, breakdown, panelWidth)
		reminders = m.applyPanelStyle(panelReminders, reminders, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, overview, breakdown, reminders)
	}

	footer := help
	if m.lastNote != "" {
		footer = m.lastNote + "\n" + help
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, footer)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderOverviewPanel() string {
	r := m.report
	var b strings.Builder
	b.WriteString(headerStyle.Render("Overview"))
	b.WriteString("\n")

	if r.TotalTasks == 0 {
		b.WriteString("  No tasks yet.\n\n  ")
		b.WriteString(r.FocusTimeRecommendation)
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %-14s %s\n", "Productivity", scored(r.ProductivityScore)))
	b.WriteString(fmt.Sprintf("  %-14s %s\n", "Completion", scored(r.CompletionRate)+"%"))
	b.WriteString(fmt.Sprintf("  %-14s %s\n", "Accuracy", scored(r.EstimationAccuracy)+"%"))
	b.WriteString(fmt.Sprintf("  %-14s %d%%\n", "Efficiency", r.TimeEfficiency))
	b.WriteString(fmt.Sprintf("  %-14s %d day(s)\n", "Streak", r.StreakDays))
	b.WriteString(fmt.Sprintf("  %-14s %d/%d\n", "Done/Total", m.stats.Completed, m.stats.Total))
	b.WriteString(fmt.Sprintf("  %-14s %d\n", "Overdue", r.OverdueTasks))
	b.WriteString(fmt.Sprintf("  %-14s %s\n", "Burnout risk", r.BurnoutRisk))
	b.WriteString("\n  ")
	b.WriteString(r.FocusTimeRecommendation)
	return b.String()
}

func (m dashboardModel) renderBreakdownPanel() string {
	r := m.report
	var b strings.Builder
	b.WriteString(headerStyle.Render("Breakdown"))
	b.WriteString("\n")

	for _, c := range r.CategoriesBreakdown {
		b.WriteString(fmt.Sprintf("  %-10s %3d%% %s\n", c.Category, c.Percentage, bar(c.Percentage)))
	}
	if len(r.PriorityBreakdown) > 0 {
		b.WriteString("\n")
	}
	for _, p := range r.PriorityBreakdown {
		b.WriteString(fmt.Sprintf("  %-10s %3d%% %s\n", p.Priority, p.Percentage, bar(p.Percentage)))
	}
	if len(r.WeeklyProgress) > 0 {
		b.WriteString("\n  Last 7 days\n")
		for _, d := range r.WeeklyProgress {
			b.WriteString(fmt.Sprintf("  %s %s\n", d.Day, strings.Repeat("#", d.Completed)))
		}
	}
	return b.String()
}

func (m dashboardModel) renderRemindersPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Reminders"))
	b.WriteString("\n")

	if len(m.notices) == 0 {
		b.WriteString("  Nothing due.")
		return b.String()
	}

	for i, n := range m.notices {
		line := fmt.Sprintf("%s %s", styleForKind(n.Kind).Render(fmt.Sprintf("[%s]", strings.ToUpper(string(n.Kind)))), n.Message)
		if i == m.cursor && m.activePanel == panelReminders {
			line = cursorStyle.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString(fmt.Sprintf("\n  Total: %d reminder(s)", len(m.notices)))
	return b.String()
}

// scored renders a score colored by its band.
func scored(score int) string {
	return styleForBand(analytics.ScoreBand(score)).Render(fmt.Sprintf("%d", score))
}

func bar(percentage int) string {
	return strings.Repeat("=", percentage/5)
}

func styleForBand(band string) lipgloss.Style {
	switch band {
	case "good":
		return bandGood
	case "fair":
		return bandFair
	default:
		return bandPoor
	}
}

func styleForKind(kind observability.ReminderKind) lipgloss.Style {
	switch kind {
	case observability.KindOverdue:
		return kindOverdue
	case observability.KindUrgent:
		return kindUrgent
	default:
		return kindReminder
	}
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for metrics and reminders",
	Long: `Launch an interactive terminal dashboard showing the productivity
report, breakdowns, and reminders. It refreshes whenever the task store
changes.

Navigate between panels with Tab, select a reminder with j/k, complete it
with c, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		complete := func(id int) bool {
			status := models.StatusCompleted
			return Store.Update(id, models.TaskPatch{Status: &status})
		}
		m := newDashboardModel(Clock.Now, Store.Snapshot, complete, Reminders)
		p := tea.NewProgram(m, tea.WithAltScreen())

		token := Store.Subscribe(func(tasks []models.Task) {
			p.Send(snapshotMsg{tasks: tasks})
		})
		defer Store.Unsubscribe(token)

		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
