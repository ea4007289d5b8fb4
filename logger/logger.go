// Package logger implements nox's logging sink: a leveled logger over
// either a file or a fixed-size in-memory buffer, grounded on
// original_source/src/logger.h's Logger struct and logger_log/
// logger_extend. No third-party structured-logging library appears
// anywhere in the example pack, so this is built on the standard
// library's log/slog (stable since Go 1.21, the ecosystem's own answer
// to the structured-logging concern) rather than a hand-rolled
// formatter — see DESIGN.md for why stdlib is the right call here.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// Level mirrors original_source's LogLevel enum, including the
// PANIC level above slog's own highest built-in level.
type Level int

const (
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
	LevelPanic Level = Level(slog.LevelError + 4)
)

// ParseLevel maps a config.Config.LogLevel string ("debug", "info",
// "warn", "error", "panic") to a Level, defaulting to LevelInfo for
// anything unrecognized.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "panic":
		return LevelPanic
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelPanic:
		return "PANIC"
	default:
		return "UNKNOWN"
	}
}

// Logger is a leveled sink for one named group, backed by a slog.Handler
// writing to either a file or a bounded memory buffer.
type Logger struct {
	group   string
	level   Level
	handler slog.Handler
}

// NewFile returns a Logger named group, filtering below level, writing
// through w (typically an *os.File), matching logger_make_with_file.
func NewFile(group string, level Level, w *os.File) *Logger {
	return &Logger{group: group, level: level, handler: newLineHandler(w)}
}

// NewMemory returns a Logger named group, filtering below level, writing
// into a fixed-capacity buffer of at most size bytes (bytes past that are
// dropped, not wrapped around), matching
// logger_make_with_memory.
func NewMemory(group string, level Level, size int) *Logger {
	return &Logger{group: group, level: level, handler: NewMemoryHandler(NewMemoryBuffer(size))}
}

// Bytes returns the bytes written so far, if this Logger was built with
// NewMemory. Returns nil for a file-backed Logger.
func (l *Logger) Bytes() []byte {
	if mh, ok := l.handler.(*MemoryHandler); ok {
		if mb, ok := mh.lineHandler.w.(*MemoryBuffer); ok {
			return mb.Bytes()
		}
	}
	return nil
}

func (l *Logger) log(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file, line = "???", 0
	}
	msg := fmt.Sprintf(format, args...)
	rec := slog.NewRecord(time.Now(), slog.Level(level), msg, 0)
	rec.AddAttrs(
		slog.String("group", l.group),
		slog.String("file", file),
		slog.Int("line", line),
	)
	_ = l.handler.Handle(context.Background(), rec)
	if level == LevelPanic {
		os.Exit(2)
	}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(format string, args ...any) { l.log(LevelInfo, format, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(format string, args ...any) { l.log(LevelWarn, format, args...) }

// Error logs at LevelError.
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

// Panic logs at LevelPanic, then terminates the process, matching
// logger_log's `if (logger->level == LOG_LEVEL_PANIC) exit(EXIT_FAILURE)`.
func (l *Logger) Panic(format string, args ...any) { l.log(LevelPanic, format, args...) }
