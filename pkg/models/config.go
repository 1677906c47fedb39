package models

// Storage back-end names accepted by storage.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Persisted encodings accepted by storage.format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// DefaultStorageKey is the single key under which the task collection lives.
const DefaultStorageKey = "smart-task-manager-tasks"

// StorageConfig selects where and how the task collection is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	Format  string `yaml:"format" mapstructure:"format"`
	Key     string `yaml:"key" mapstructure:"key"`
}

// QueryConfig controls how search and filter results combine.
type QueryConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// ReminderConfig sets the due-date windows used by reminders.
type ReminderConfig struct {
	SoonMinutes   int `yaml:"soon_minutes" mapstructure:"soon_minutes"`
	UpcomingHours int `yaml:"upcoming_hours" mapstructure:"upcoming_hours"`
}

// LogConfig controls console logging and the JSONL event log.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Events bool   `yaml:"events" mapstructure:"events"`
}

// SlackConfig holds Slack webhook settings.
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url"`
}

// NotificationConfig holds reminder delivery settings.
type NotificationConfig struct {
	Slack SlackConfig `yaml:"slack" mapstructure:"slack"`
}

// GlobalConfig holds system-wide settings read from .stmconfig via Viper.
type GlobalConfig struct {
	Storage       StorageConfig      `yaml:"storage" mapstructure:"storage"`
	Query         QueryConfig        `yaml:"query" mapstructure:"query"`
	Reminders     ReminderConfig     `yaml:"reminders" mapstructure:"reminders"`
	Log           LogConfig          `yaml:"log" mapstructure:"log"`
	Notifications NotificationConfig `yaml:"notifications" mapstructure:"notifications"`
}
