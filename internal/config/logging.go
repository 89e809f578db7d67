package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogger creates the diagnostic logger: JSON to a rotated log file, and
// text to stderr when verbose. Every record carries a run id.
// Returns the logger and a cleanup function to close the file.
func SetupLogger(lc LogConfig, stderr io.Writer, verbose bool) (*slog.Logger, func() error) {
	level := ParseLogLevel(lc.Level)

	var handlers []slog.Handler
	if verbose {
		handlers = append(handlers, slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	}

	cleanup := func() error { return nil }
	if lc.File != "" {
		if err := os.MkdirAll(filepath.Dir(lc.File), 0755); err == nil {
			rotator := &lumberjack.Logger{
				Filename: lc.File,
				MaxSize:  lc.MaxSizeMB,
				MaxAge:   maxAgeDays(lc.MaxAge),
			}
			handlers = append(handlers, slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: level}))
			cleanup = rotator.Close
		}
	}

	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler), cleanup
	}

	logger := slog.New(slogmulti.Fanout(handlers...)).With("run", uuid.NewString())
	return logger, cleanup
}

// SetupLoggerWithWriters creates a logger with custom writers (for testing).
func SetupLoggerWithWriters(stderr, file io.Writer, level slog.Level) *slog.Logger {
	stderrHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(slogmulti.Fanout(stderrHandler, fileHandler))
}

// ParseLogLevel converts a string log level to slog.Level.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// maxAgeDays rounds a max_age setting to whole days, lumberjack's unit.
// Zero keeps old files forever.
func maxAgeDays(s string) int {
	d, err := ParseDuration(s)
	if err != nil || d <= 0 {
		return 0
	}
	days := int(d.Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}
