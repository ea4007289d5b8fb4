package config_test

import (
	"testing"

	"github.com/nox-lang/nox/config"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 1024, cfg.StackSize)
	require.False(t, cfg.DisableJIT)
	require.Equal(t, 2, cfg.ArenaGrowthFactor)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NOX_STACK_SIZE", "4096")
	t.Setenv("NOX_DISABLE_JIT", "true")
	t.Setenv("NOX_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 4096, cfg.StackSize)
	require.True(t, cfg.DisableJIT)
	require.Equal(t, "debug", cfg.LogLevel)
}
