package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
)

// lineHandler renders each record as a single line in the exact format
// spec.md §6 names: "[LEVEL] (group) file:line: message", matching
// logger_log's `fprintf(logger->file, "[%s] (%s) %s:%d: ", ...)`.
type lineHandler struct {
	w io.Writer
}

func newLineHandler(w io.Writer) *lineHandler { return &lineHandler{w: w} }

// MemoryHandler is the slog.Handler backing a memory-transport Logger
// (see NewMemory). It's the same line rendering a file-backed Logger
// uses, exported under its own name because a fixed-capacity memory
// transport is the one this package's callers most often construct by
// hand outside of NewMemory (e.g. to share one buffer across loggers).
type MemoryHandler struct {
	*lineHandler
}

// NewMemoryHandler wraps buf as a slog.Handler.
func NewMemoryHandler(buf *MemoryBuffer) *MemoryHandler {
	return &MemoryHandler{lineHandler: newLineHandler(buf)}
}

func (h *lineHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *lineHandler) Handle(_ context.Context, rec slog.Record) error {
	var group, file string
	var line int
	rec.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "group":
			group = a.Value.String()
		case "file":
			file = a.Value.String()
		case "line":
			line = int(a.Value.Int64())
		}
		return true
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "[%s] (%s) %s:%d: %s\n", Level(rec.Level), group, file, line, rec.Message)
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h *lineHandler) WithGroup(name string) slog.Handler       { return h }
