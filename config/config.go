// Package config loads nox's runtime-tunable knobs from the process
// environment via github.com/caarlos0/env/v6, already present in the
// teacher's dependency graph (pulled in indirectly there; used directly
// here). Grounded on the `NOX_`-prefixed convention the teacher's own
// `internal/maincmd.Cmd` uses for its `binName + "_"` env var lookups.
package config

import "github.com/caarlos0/env/v6"

// Config holds the pipeline's runtime knobs: interpreter step budget,
// value-stack depth, JIT enable/disable, the arena/pool growth factor and
// the default log level. The CLI's run command reads MaxSteps and
// DisableJIT; nothing reads StackSize, ArenaGrowthFactor or LogLevel.
type Config struct {
	// MaxSteps bounds lang/interp's dispatch loop; 0 means unbounded.
	MaxSteps uint64 `env:"NOX_MAX_STEPS" envDefault:"0"`

	// StackSize is the value-stack depth in 64-bit slots.
	StackSize int `env:"NOX_STACK_SIZE" envDefault:"1024"`

	// DisableJIT forces every program through lang/interp even when
	// jit.Compile would otherwise succeed.
	DisableJIT bool `env:"NOX_DISABLE_JIT" envDefault:"false"`

	// ArenaGrowthFactor names a growth multiplier for alloc.Arena and
	// alloc.Pool. Neither reads it: both always double their capacity
	// (alloc.Arena.grow / alloc.Pool.grow).
	ArenaGrowthFactor int `env:"NOX_ARENA_GROWTH_FACTOR" envDefault:"2"`

	// LogLevel names a default logger.Level ("debug", "info", "warn",
	// "error", "panic"). The CLI driver does not read it; its logger is
	// built at logger.LevelWarn.
	LogLevel string `env:"NOX_LOG_LEVEL" envDefault:"info"`
}

// Load reads Config from the environment, applying envDefault tags for
// anything unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
