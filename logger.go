package kmerlsh

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with kmerlsh-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithK adds the sequence length to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithBounds adds the sensitivity and diameter parameters to the logger.
func (l *Logger) WithBounds(p, q int) *Logger {
	return &Logger{
		Logger: l.Logger.With("p", p, "q", q),
	}
}

// WithCenters adds the center count to the logger.
func (l *Logger) WithCenters(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("centers", count),
	}
}

// LogPartition logs the outcome of a partition run.
func (l *Logger) LogPartition(ctx context.Context, rounds int, assigned, grayed int64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "partition failed",
			"rounds", rounds,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "partition completed",
			"rounds", rounds,
			"assigned", assigned,
			"grayed", grayed,
			"duration", duration,
		)
	}
}

// LogHashWrite logs a label file write.
func (l *Logger) LogHashWrite(ctx context.Context, filename string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "label file write failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "label file written",
			"filename", filename,
		)
	}
}

// LogSnapshot logs a snapshot operation.
func (l *Logger) LogSnapshot(ctx context.Context, filename string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"filename", filename,
		)
	}
}
