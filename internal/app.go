// Package internal provides the App struct that wires all components of the
// Smart Task Manager together and initializes the CLI layer.
package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/valter-silva-au/smart-task-manager/internal/cli"
	"github.com/valter-silva-au/smart-task-manager/internal/core"
	"github.com/valter-silva-au/smart-task-manager/internal/observability"
	"github.com/valter-silva-au/smart-task-manager/internal/storage"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// SQLiteFileName is the database file used by the sqlite backend.
const SQLiteFileName = "tasks.db"

// App holds all service dependencies for the Smart Task Manager.
type App struct {
	BasePath string
	Config   *models.GlobalConfig

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Storage layer
	KV    storage.KVStore
	Tasks storage.TaskRepository

	// Core services
	Store core.TaskStore
	Clock core.Clock

	// Observability
	EventLog     observability.EventLog
	Recorder     *observability.Recorder
	ActivityCalc observability.ActivityCalculator
	Reminders    observability.ReminderEngine
	Notifier     observability.Notifier
}

// NewApp creates and wires all components. basePath is the directory that
// holds .stmconfig, the stored tasks and the event log.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath, Clock: core.SystemClock{}}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Storage layer ---
	codec, err := storage.NewCodec(cfg.Storage.Format)
	if err != nil {
		return nil, err
	}
	app.KV, err = openKV(cfg.Storage.Backend, basePath, codec.Extension())
	if err != nil {
		return nil, err
	}
	app.Tasks = storage.NewTaskRepository(app.KV, codec, cfg.Storage.Key)

	// --- Observability ---
	if cfg.Log.Events {
		if cfg.Storage.Backend == models.BackendMemory {
			app.EventLog = observability.NewMemoryEventLog()
		} else {
			app.EventLog, err = observability.NewJSONLEventLog(filepath.Join(basePath, observability.EventLogFileName))
			if err != nil {
				// Non-fatal: run without the event log.
				app.EventLog = nil
			}
		}
	}
	console := observability.NewConsoleLogger(os.Stderr, cfg.Log.Level)
	app.Recorder = observability.NewRecorder(app.EventLog, console, app.Clock.Now)
	if app.EventLog != nil {
		app.ActivityCalc = observability.NewActivityCalculator(app.EventLog)
	}
	app.Reminders = observability.NewReminderEngine(reminderWindows(cfg.Reminders))
	if cfg.Notifications.Slack.WebhookURL != "" {
		app.Notifier = observability.NewSlackNotifier(cfg.Notifications.Slack.WebhookURL)
	}

	// --- Core services ---
	app.Store = core.NewTaskStore(&repositoryAdapter{repo: app.Tasks}, app.Clock, app.Recorder)
	mode, err := core.ParseMode(cfg.Query.Mode)
	if err != nil {
		return nil, err
	}

	// --- Wire CLI package-level variables ---
	cli.Store = app.Store
	cli.Data = app.Tasks
	cli.Clock = app.Clock
	cli.QueryMode = mode

	cli.EventLog = app.EventLog
	cli.ActivityCalc = app.ActivityCalc
	cli.Reminders = app.Reminders
	cli.Notifier = app.Notifier

	return app, nil
}

// Close releases the event log file handle and the storage backend, which
// frees the data directory lock.
func (a *App) Close() error {
	var errs []error
	if a.EventLog != nil {
		errs = append(errs, a.EventLog.Close())
	}
	if a.KV != nil {
		errs = append(errs, a.KV.Close())
	}
	return errors.Join(errs...)
}

func openKV(backend, basePath, ext string) (storage.KVStore, error) {
	switch backend {
	case models.BackendFile:
		return storage.NewFileKV(basePath, ext)
	case models.BackendSQLite:
		return storage.NewSQLiteKV(filepath.Join(basePath, SQLiteFileName))
	case models.BackendMemory:
		return storage.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func reminderWindows(cfg models.ReminderConfig) observability.ReminderWindows {
	w := observability.DefaultReminderWindows()
	if cfg.SoonMinutes > 0 {
		w.Soon = time.Duration(cfg.SoonMinutes) * time.Minute
	}
	if cfg.UpcomingHours > 0 {
		w.Upcoming = time.Duration(cfg.UpcomingHours) * time.Hour
	}
	return w
}

// ResolveBasePath determines the Smart Task Manager data directory. It checks
// the STM_HOME env var, then walks up from the current directory looking for
// .stmconfig, then falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("STM_HOME"); home != "" {
		return home
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	for dir := cwd; ; {
		if hasConfig(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}

func hasConfig(dir string) bool {
	for _, name := range []string{core.ConfigFileName, core.ConfigFileName + ".yaml", core.ConfigFileName + ".yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// --- Adapters ---

// repositoryAdapter adapts storage.TaskRepository to core.PersistenceAdapter.
type repositoryAdapter struct {
	repo storage.TaskRepository
}

func (a *repositoryAdapter) Load() ([]models.Task, error) {
	tasks, err := a.repo.Load()
	if errors.Is(err, storage.ErrNotFound) {
		return nil, core.ErrNoStoredTasks
	}
	return tasks, err
}

func (a *repositoryAdapter) Save(tasks []models.Task) error {
	return a.repo.Save(tasks)
}

func (a *repositoryAdapter) LoadHighWater() (int, error) {
	return a.repo.LoadHighWater()
}

func (a *repositoryAdapter) SaveHighWater(id int) error {
	return a.repo.SaveHighWater(id)
}
