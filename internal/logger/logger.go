// internal/logger/logger.go
// Setup slog sesuai LOG_LEVEL / LOG_FORMAT

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel: debug|info|warn|error; selain itu info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New membuat logger ke w (nil = stderr). format "text" atau selain itu JSON.
func New(w io.Writer, level, format, app string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if strings.EqualFold(format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	l := slog.New(h)
	if app != "" {
		l = l.With("app", app)
	}
	return l
}

// Setup = New + slog.SetDefault (log.Printf ikut lewat handler yang sama).
func Setup(level, format, app string) *slog.Logger {
	l := New(nil, level, format, app)
	slog.SetDefault(l)
	return l
}
