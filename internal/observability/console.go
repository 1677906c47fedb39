package observability

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ConsoleLogger renders events as human-readable lines, typically on stderr.
type ConsoleLogger struct {
	logger zerolog.Logger
}

// NewConsoleLogger creates a ConsoleLogger writing to w. Events below level
// ("debug", "info", "warn", "error") are dropped; an unknown level means warn.
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	return &ConsoleLogger{logger: zerolog.New(out).Level(lvl)}
}

// Log writes event at the zerolog level matching event.Level.
func (c *ConsoleLogger) Log(event Event) {
	entry := c.logger.WithLevel(zerologLevel(event.Level))
	if !event.Time.IsZero() {
		entry = entry.Time(zerolog.TimestampFieldName, event.Time)
	}
	entry.Str("type", event.Type).Fields(event.Data).Msg(event.Message)
}

func zerologLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "ERROR":
		return zerolog.ErrorLevel
	case "WARN":
		return zerolog.WarnLevel
	case "DEBUG":
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}
