// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the task store, query engine, analytics and reminders as tools for AI
// assistants.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/smart-task-manager/internal/analytics"
	"github.com/valter-silva-au/smart-task-manager/internal/core"
	"github.com/valter-silva-au/smart-task-manager/internal/observability"
	"github.com/valter-silva-au/smart-task-manager/internal/storage"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// Server wraps the task services and exposes them as MCP tools.
type Server struct {
	server    *gomcp.Server
	store     core.TaskStore
	reminders observability.ReminderEngine
	clock     core.Clock
	mode      core.QueryMode
}

// NewServer creates an MCP server over store. reminders may be nil, in which
// case get_reminders reports an error; clock defaults to the system clock.
func NewServer(store core.TaskStore, reminders observability.ReminderEngine, clock core.Clock, mode core.QueryMode, version string) *Server {
	if version == "" {
		version = "dev"
	}
	if clock == nil {
		clock = core.SystemClock{}
	}
	if mode == "" {
		mode = core.ModeCompose
	}

	s := &Server{
		store:     store,
		reminders: reminders,
		clock:     clock,
		mode:      mode,
	}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "stm", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves on stdio until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type subtaskOutput struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type taskOutput struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	DueDate        string          `json:"due_date"`
	CreatedDate    string          `json:"created_date"`
	Priority       string          `json:"priority"`
	Status         string          `json:"status"`
	Category       string          `json:"category"`
	Tags           []string        `json:"tags"`
	EstimatedHours *float64        `json:"estimated_hours,omitempty"`
	ActualHours    *float64        `json:"actual_hours,omitempty"`
	Subtasks       []subtaskOutput `json:"subtasks"`
	Overdue        bool            `json:"overdue"`
}

type listTasksInput struct {
	Query     string   `json:"query,omitempty" jsonschema:"case-insensitive text matched against title, description and tags"`
	Status    string   `json:"status,omitempty" jsonschema:"filter by status (pending, in-progress, completed, cancelled)"`
	Priority  string   `json:"priority,omitempty" jsonschema:"filter by priority (low, medium, high, urgent)"`
	Category  string   `json:"category,omitempty" jsonschema:"filter by category (work, personal, health, learning, other)"`
	Tags      []string `json:"tags,omitempty" jsonschema:"keep tasks carrying any of these tags"`
	Sort      string   `json:"sort,omitempty" jsonschema:"sort key (dueDate, priority, createdDate, title)"`
	Ascending bool     `json:"ascending,omitempty" jsonschema:"sort ascending instead of descending"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type taskIDInput struct {
	ID int `json:"id" jsonschema:"the numeric task id"`
}

type addTaskInput struct {
	Title          string   `json:"title" jsonschema:"task title"`
	Description    string   `json:"description,omitempty" jsonschema:"free-form description"`
	DueDate        string   `json:"due_date" jsonschema:"due date as YYYY-MM-DD, RFC 3339, or an offset such as +3d"`
	Priority       string   `json:"priority,omitempty" jsonschema:"low, medium, high or urgent (default medium)"`
	Status         string   `json:"status,omitempty" jsonschema:"pending, in-progress, completed or cancelled (default pending)"`
	Category       string   `json:"category,omitempty" jsonschema:"work, personal, health, learning or other (default other)"`
	Tags           []string `json:"tags,omitempty" jsonschema:"labels"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty" jsonschema:"planned effort in hours"`
}

type updateTaskStatusInput struct {
	ID     int    `json:"id" jsonschema:"the numeric task id"`
	Status string `json:"status" jsonschema:"the new status (pending, in-progress, completed, cancelled)"`
}

type messageOutput struct {
	Message string `json:"message"`
}

type emptyInput struct{}

type reminderOutput struct {
	TaskID  int    `json:"task_id"`
	Kind    string `json:"kind"`
	Heading string `json:"heading"`
	Message string `json:"message"`
	DueDate string `json:"due_date"`
}

type getRemindersOutput struct {
	Reminders []reminderOutput `json:"reminders"`
	Count     int              `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "Search, filter and sort tasks. Without a sort key tasks keep their stored order.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_task",
		Description: "Get one task by id, including subtasks and hours.",
	}, s.handleGetTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Create a task. The id and creation date are assigned by the store.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "update_task_status",
		Description: "Change a task's status. Valid statuses: pending, in-progress, completed, cancelled.",
	}, s.handleUpdateTaskStatus)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by id.",
	}, s.handleDeleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Compute the productivity report: completion rate, productivity score, streak, breakdowns, weekly progress, monthly trends and burnout risk.",
	}, s.handleGetMetrics)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_reminders",
		Description: "List overdue, soon-due and upcoming open tasks.",
	}, s.handleGetReminders)
}

// --- Tool handlers ---

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	q := core.Query{Text: input.Query, Ascending: input.Ascending}

	if input.Status != "" {
		status := models.TaskStatus(input.Status)
		if !status.Valid() {
			return errorResult(fmt.Sprintf("invalid status %q", input.Status)), listTasksOutput{}, nil
		}
		q.Criteria.Status = &status
	}
	if input.Priority != "" {
		priority := models.Priority(input.Priority)
		if !priority.Valid() {
			return errorResult(fmt.Sprintf("invalid priority %q", input.Priority)), listTasksOutput{}, nil
		}
		q.Criteria.Priority = &priority
	}
	if input.Category != "" {
		category := models.Category(input.Category)
		if !category.Valid() {
			return errorResult(fmt.Sprintf("invalid category %q", input.Category)), listTasksOutput{}, nil
		}
		q.Criteria.Category = &category
	}
	q.Criteria.Tags = input.Tags
	if input.Sort != "" {
		key, err := core.ParseSortKey(input.Sort)
		if err != nil {
			return errorResult(err.Error()), listTasksOutput{}, nil
		}
		q.SortKey = key
	}

	now := s.clock.Now()
	tasks := core.Apply(s.store.Snapshot(), q, s.mode)
	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		out.Tasks[i] = taskToOutput(t, now)
	}
	return nil, out, nil
}

func (s *Server) handleGetTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, taskOutput, error) {
	task, ok := s.store.GetByID(input.ID)
	if !ok {
		return errorResult(fmt.Sprintf("task %d not found", input.ID)), taskOutput{}, nil
	}
	return nil, taskToOutput(task, s.clock.Now()), nil
}

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input addTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	now := s.clock.Now()
	due, err := core.ParseDueDate(input.DueDate, now)
	if err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}

	draft := models.TaskDraft{
		Title:          input.Title,
		Description:    input.Description,
		DueDate:        due,
		Priority:       models.Priority(orDefault(input.Priority, string(models.PriorityMedium))),
		Status:         models.TaskStatus(orDefault(input.Status, string(models.StatusPending))),
		Category:       models.Category(orDefault(input.Category, string(models.CategoryOther))),
		Tags:           input.Tags,
		EstimatedHours: input.EstimatedHours,
	}
	task, err := s.store.Add(draft)
	if err != nil {
		return errorResult(fmt.Sprintf("adding task: %s", err)), taskOutput{}, nil
	}
	return nil, taskToOutput(task, now), nil
}

func (s *Server) handleUpdateTaskStatus(_ context.Context, _ *gomcp.CallToolRequest, input updateTaskStatusInput) (*gomcp.CallToolResult, messageOutput, error) {
	status := models.TaskStatus(input.Status)
	if !status.Valid() {
		return errorResult(fmt.Sprintf("invalid status %q: must be one of pending, in-progress, completed, cancelled", input.Status)), messageOutput{}, nil
	}
	if !s.store.Update(input.ID, models.TaskPatch{Status: &status}) {
		return errorResult(fmt.Sprintf("task %d not found", input.ID)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("task %d status updated to %s", input.ID, status)}, nil
}

func (s *Server) handleDeleteTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, messageOutput, error) {
	if !s.store.Delete(input.ID) {
		return errorResult(fmt.Sprintf("task %d not found", input.ID)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("task %d deleted", input.ID)}, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, analytics.Report, error) {
	return nil, analytics.Compute(s.store.Snapshot(), s.clock.Now()), nil
}

func (s *Server) handleGetReminders(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, getRemindersOutput, error) {
	if s.reminders == nil {
		return errorResult("reminder engine not available"), getRemindersOutput{Reminders: []reminderOutput{}}, nil
	}

	reminders := s.reminders.Evaluate(s.store.Snapshot(), s.clock.Now())
	out := getRemindersOutput{
		Reminders: make([]reminderOutput, len(reminders)),
		Count:     len(reminders),
	}
	for i, r := range reminders {
		out.Reminders[i] = reminderOutput{
			TaskID:  r.TaskID,
			Kind:    string(r.Kind),
			Heading: r.Heading,
			Message: r.Message,
			DueDate: storage.FormatTime(r.DueDate),
		}
	}
	return nil, out, nil
}

// --- Helpers ---

func taskToOutput(t models.Task, now time.Time) taskOutput {
	out := taskOutput{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		DueDate:        storage.FormatTime(t.DueDate),
		CreatedDate:    storage.FormatTime(t.CreatedDate),
		Priority:       string(t.Priority),
		Status:         string(t.Status),
		Category:       string(t.Category),
		Tags:           append([]string{}, t.Tags...),
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		Subtasks:       make([]subtaskOutput, len(t.Subtasks)),
		Overdue:        t.IsOverdue(now),
	}
	for i, st := range t.Subtasks {
		out.Subtasks[i] = subtaskOutput{ID: st.ID, Title: st.Title, Completed: st.Completed}
	}
	return out
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
