// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/dxbednarczyk/mup/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// messager describes an error that can report its own message without the chain.
type messager interface {
	Message() string
}

// metadataer describes an error that carries key/value context.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	level    *slog.LevelVar
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a Logger writing pretty lines to stderr at info level.
func New() *Logger {
	l := &Logger{
		level:  &slog.LevelVar{},
		output: os.Stderr,
	}
	l.level.Set(slog.LevelInfo)
	l.logger = slog.New(l.handler())
	return l
}

func (l *Logger) handler() slog.Handler {
	opts := &slog.HandlerOptions{Level: l.level}
	if l.jsonMode {
		return slog.NewJSONHandler(l.output, opts)
	}
	return NewPrettyHandler(l.output, opts)
}

// SetOutput updates the logger's output destination, keeping the current mode.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(l.handler())
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.logger = slog.New(l.handler())
}

// SetVerbose lowers the level to debug when enabled and restores info otherwise.
func (l *Logger) SetVerbose(enable bool) {
	if enable {
		l.level.Set(slog.LevelDebug)
		return
	}
	l.level.Set(slog.LevelInfo)
}

// Debug logs a diagnostic message, shown only in verbose mode.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error together with its causes and their metadata.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// collectErrorEntries walks the chain while errors report their own message.
// The first error without one contributes its full text and ends the walk.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entry := ErrorEntry{Message: m.Message(), Metadata: map[string]any{}}
		if md, ok := current.(metadataer); ok {
			maps.Copy(entry.Metadata, md.Metadata())
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders the main error, then a "Caused by:" list.
// Metadata keys are sorted so output is stable.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var head, cont string
		if i == 0 {
			head, cont = "Error: ", "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, cont = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, cont+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", cont, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
