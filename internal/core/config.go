// Package core contains the business logic for the smart task manager:
// the reactive task store, the query engine, and configuration loading.
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
)

// ConfigFileName is the base name of the YAML configuration file.
const ConfigFileName = ".stmconfig"

// ConfigurationManager loads and validates the .stmconfig file.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	// basePath is the root directory where .stmconfig resides.
	basePath string
}

// NewConfigurationManager creates a new ConfigurationManager that reads
// configuration files relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with sensible defaults.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		Storage: models.StorageConfig{
			Backend: models.BackendFile,
			Format:  models.FormatJSON,
			Key:     models.DefaultStorageKey,
		},
		Query:     models.QueryConfig{Mode: string(ModeCompose)},
		Reminders: models.ReminderConfig{SoonMinutes: 60, UpcomingHours: 24},
		Log:       models.LogConfig{Level: "warn", Events: true},
	}
}

// LoadGlobalConfig reads .stmconfig from the base path using Viper.
// If the file does not exist, defaults are used. Environment variables
// prefixed with STM_ override file values, e.g. STM_STORAGE_BACKEND.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)
	v.SetEnvPrefix("STM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.format", cfg.Storage.Format)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("query.mode", cfg.Query.Mode)
	v.SetDefault("reminders.soon_minutes", cfg.Reminders.SoonMinutes)
	v.SetDefault("reminders.upcoming_hours", cfg.Reminders.UpcomingHours)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.events", cfg.Log.Events)
	v.SetDefault("notifications.slack.webhook_url", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

// validLevels is the set of accepted log.level values.
var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks cfg for invalid values and returns one error
// listing every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	switch cfg.Storage.Backend {
	case models.BackendFile, models.BackendSQLite, models.BackendMemory:
	default:
		errs = append(errs, fmt.Sprintf(
			"storage.backend %q is invalid, must be one of: file, sqlite, memory",
			cfg.Storage.Backend,
		))
	}

	switch cfg.Storage.Format {
	case models.FormatJSON, models.FormatYAML, models.FormatTOML:
	default:
		errs = append(errs, fmt.Sprintf(
			"storage.format %q is invalid, must be one of: json, yaml, toml",
			cfg.Storage.Format,
		))
	}

	if cfg.Storage.Key == "" {
		errs = append(errs, "storage.key must not be empty")
	}

	if _, err := ParseMode(cfg.Query.Mode); err != nil || cfg.Query.Mode == "" {
		errs = append(errs, fmt.Sprintf(
			"query.mode %q is invalid, must be one of: compose, filter_overrides",
			cfg.Query.Mode,
		))
	}

	if cfg.Reminders.SoonMinutes < 0 {
		errs = append(errs, fmt.Sprintf("reminders.soon_minutes must be non-negative, got %d", cfg.Reminders.SoonMinutes))
	}
	if cfg.Reminders.UpcomingHours < 0 {
		errs = append(errs, fmt.Sprintf("reminders.upcoming_hours must be non-negative, got %d", cfg.Reminders.UpcomingHours))
	}

	if !validLevels[strings.ToLower(cfg.Log.Level)] {
		errs = append(errs, fmt.Sprintf(
			"log.level %q is invalid, must be one of: debug, info, warn, error",
			cfg.Log.Level,
		))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
