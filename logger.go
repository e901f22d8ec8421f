package mtree

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with mtree-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithTree tags every record with a tree name, useful when several trees
// share one handler.
func (l *Logger) WithTree(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("tree", name),
	}
}

// LogAdd logs an add operation.
func (l *Logger) LogAdd(added bool, size int) {
	if !added {
		l.Debug("add skipped duplicate", "size", size)
		return
	}
	l.Debug("add completed", "size", size)
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(removed bool, size int) {
	if !removed {
		l.Debug("remove found nothing", "size", size)
		return
	}
	l.Debug("remove completed", "size", size)
}

// LogSplit logs a node split.
func (l *Logger) LogSplit(leaf bool, left, right int, leftRadius, rightRadius float64) {
	l.Debug("node split",
		"leaf", leaf,
		"left_entries", left,
		"right_entries", right,
		"left_radius", leftRadius,
		"right_radius", rightRadius,
	)
}

// LogUnderflow logs the repair of an underflowing node.
func (l *Logger) LogUnderflow(repair string, moved int) {
	l.Debug("node underflow repaired",
		"repair", repair,
		"moved_entries", moved,
	)
}

// LogRootChange logs growth or shrinkage of the tree height.
func (l *Logger) LogRootChange(height int, grew bool) {
	if grew {
		l.Debug("root split", "height", height)
		return
	}
	l.Debug("root collapsed", "height", height)
}

// LogQuery logs a completed query execution.
func (l *Logger) LogQuery(kind string, results, computed, cached int) {
	l.Debug("query completed",
		"kind", kind,
		"results", results,
		"distances_computed", computed,
		"distances_cached", cached,
	)
}
