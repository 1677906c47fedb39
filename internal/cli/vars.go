package cli

import (
	"github.com/valter-silva-au/smart-task-manager/internal/core"
	"github.com/valter-silva-au/smart-task-manager/internal/observability"
)

// DataStore is the persisted task collection behind the store.
type DataStore interface {
	Clear() error
	Size() (int, error)
}

// Core service instances, set during app initialization in app.go.
var (
	Store     core.TaskStore
	Data      DataStore
	Clock     core.Clock     = core.SystemClock{}
	QueryMode core.QueryMode = core.ModeCompose
)

// Observability service instances, set during app initialization in app.go.
var (
	EventLog     observability.EventLog
	ActivityCalc observability.ActivityCalculator
	Reminders    observability.ReminderEngine
	Notifier     observability.Notifier
)
