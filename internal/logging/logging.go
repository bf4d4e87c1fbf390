// Package logging provides the process-wide logger: a structured slog
// logger writing to a daily-rotating file with bounded retention, plus the
// optional secondary sink used to mirror selected messages to a user
// interface.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// UISink receives the subset of session messages meant for user-facing
// display, in addition to the file log. Implementations must be safe for
// use from the transport's dispatch goroutine.
type UISink interface {
	Info(msg string)
	Error(msg string)
}

// Options configures NewLogger.
type Options struct {
	Level      string // "debug", "info", "warn", "error"
	FilePath   string // empty means stdout, no rotation
	RetainDays int    // rotated files kept; <= 0 uses DefaultRetainDays
}

// NewLogger creates a structured logger using log/slog at the configured
// level, writing text records to a daily-rotating file. Supported levels:
// "debug", "info", "warn", "error"; defaults to "info" if the level string
// is not recognised. The returned closer is nil when logging to stdout.
func NewLogger(opts Options) (*slog.Logger, *RotatingWriter, error) {
	var slevel slog.Level
	switch strings.ToLower(opts.Level) {
	case "debug":
		slevel = slog.LevelDebug
	case "info":
		slevel = slog.LevelInfo
	case "warn":
		slevel = slog.LevelWarn
	case "error":
		slevel = slog.LevelError
	default:
		slevel = slog.LevelInfo
	}

	hopts := &slog.HandlerOptions{Level: slevel}

	if opts.FilePath == "" {
		return slog.New(slog.NewTextHandler(os.Stdout, hopts)), nil, nil
	}

	w, err := NewRotatingWriter(opts.FilePath, opts.RetainDays)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(w, hopts)).With("pid", os.Getpid())
	return logger, w, nil
}

// SetDefault configures the provided logger as the default slog logger.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
