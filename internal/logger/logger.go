// Package logger provides process-wide structured logging for the annotator.
// Records are written through log/slog to stderr; stdout is reserved for the
// MCP stdio transport. Output is text on a terminal and JSON otherwise, or
// JSON whenever SetJSON(true) is called.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

var (
	mu        sync.RWMutex
	verbose   bool
	forceJSON bool
	output    io.Writer = os.Stderr
	level               = new(slog.LevelVar)
	current   *slog.Logger
)

func init() {
	level.Set(slog.LevelInfo)
	rebuild()
}

// SetVerbose forces debug output regardless of the configured level.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	rebuild()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	rebuild()
}

// SetJSON forces JSON records. With false the format follows the output:
// text for a terminal, JSON for anything else.
func SetJSON(v bool) {
	mu.Lock()
	defer mu.Unlock()
	forceJSON = v
	rebuild()
}

// SetLevel sets the minimum level from its config name (debug, info, warn, error).
func SetLevel(name string) error {
	l, err := ParseLevel(name)
	if err != nil {
		return err
	}
	level.Set(l)
	return nil
}

// ParseLevel converts a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Debug logs at debug level with key/value attributes.
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Info logs at info level with key/value attributes.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs at warn level with key/value attributes.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs at error level with key/value attributes.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// rebuild replaces the handler. Callers hold mu.
func rebuild() {
	var leveler slog.Leveler = level
	if verbose {
		leveler = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: leveler}

	if forceJSON || !isTerminal(output) {
		current = slog.New(slog.NewJSONHandler(output, opts))
		return
	}
	current = slog.New(slog.NewTextHandler(output, opts))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
