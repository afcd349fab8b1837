package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// logLevels maps the accepted LOG_LEVEL values to slog levels.
var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// NewLogger creates the process logger writing to stdout. Every record
// carries service=processor.
func (c *LoggerConfig) NewLogger() *slog.Logger {
	return c.newLogger(os.Stdout)
}

func (c *LoggerConfig) newLogger(w io.Writer) *slog.Logger {
	level := c.SlogLevel()
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if strings.EqualFold(c.Format, LogFormatText) {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("service", "processor")
}

// SlogLevel returns the configured level, or Info for an unknown value.
func (c *LoggerConfig) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(c.Level)]; ok {
		return level
	}
	return slog.LevelInfo
}
