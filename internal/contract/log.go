package contract

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// AppName is attached to every log record.
const AppName = "airspot"

// NewLogger builds the process logger. Text output goes through tint, JSON output
// through the stdlib handler. Source locations are only added at debug level.
func NewLogger(w io.Writer, level slog.Level, format LogFormat) *slog.Logger {
	if format == LogJSON {
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
		return slog.New(h).With("app", AppName)
	}

	h := tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  level <= slog.LevelDebug,
		TimeFormat: time.Kitchen,
	})
	return slog.New(h).With("app", AppName)
}

// ParseLogLevel maps debug, info, warn and error to a slog level. Empty means warn,
// which keeps CLI output quiet.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", s)
	}
}
