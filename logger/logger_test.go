package logger_test

import (
	"strings"
	"testing"

	"github.com/nox-lang/nox/logger"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoggerFormatsLine(t *testing.T) {
	l := logger.NewMemory("checker", logger.LevelInfo, 4096)
	l.Info("hello %s", "world")

	out := string(l.Bytes())
	require.Contains(t, out, "[INFO] (checker) ")
	require.Contains(t, out, "hello world")
}

func TestMemoryLoggerFiltersBelowLevel(t *testing.T) {
	l := logger.NewMemory("checker", logger.LevelWarn, 4096)
	l.Debug("should not appear")
	l.Info("should not appear either")

	require.Empty(t, l.Bytes())
}

func TestMemoryLoggerTruncatesAtCapacity(t *testing.T) {
	l := logger.NewMemory("checker", logger.LevelDebug, 8)
	l.Debug("this message is much longer than eight bytes")

	require.LessOrEqual(t, len(l.Bytes()), 8)
}

func TestLevelStringRoundTrips(t *testing.T) {
	for _, lvl := range []logger.Level{
		logger.LevelDebug, logger.LevelInfo, logger.LevelWarn,
		logger.LevelError, logger.LevelPanic,
	} {
		require.False(t, strings.EqualFold(lvl.String(), "unknown"))
	}
}
