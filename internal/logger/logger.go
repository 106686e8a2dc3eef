package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger represents application logger.
type Logger struct {
	*slog.Logger
}

// New creates new Logger instance with the specified level.
func New(level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}

// Printf logs a formatted message at info level.
// Together with Fatalf it lets the logger back the migration tool.
func (l *Logger) Printf(format string, v ...any) {
	l.Logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf is the formatted counterpart of Fatal.
func (l *Logger) Fatalf(format string, v ...any) {
	l.Fatal(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
