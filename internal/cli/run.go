package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mna/mainer"

	"github.com/nox-lang/nox/config"
	"github.com/nox-lang/nox/disasm"
	"github.com/nox-lang/nox/jit"
	"github.com/nox-lang/nox/lang/bytecode"
	"github.com/nox-lang/nox/lang/interp"
)

// Run compiles every named file (or the inline source given to -s) and
// interprets it, printing the program's exit code. It prefers the JIT when
// the program is eligible and config.Config.DisableJIT isn't set, falling
// back to the interpreter otherwise.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "run: loading config: %s\n", err)
		return err
	}

	units, ok := build(ctx, stdio, "run", c.Source, args)
	if !ok {
		return fmt.Errorf("run: compilation failed")
	}

	for _, u := range units {
		if c.Verbose {
			fmt.Fprint(stdio.Stdout, disasm.Format(u.prog))
		}

		start := time.Now()
		result, usedJIT, rerr := execute(ctx, u.prog, cfg)
		elapsed := time.Since(start)

		if rerr != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", u.name, rerr)
			return rerr
		}
		if !c.Quiet {
			fmt.Fprintf(stdio.Stdout, "%s: exit %d\n", u.name, result)
		}
		if c.Verbose {
			engine := "interp"
			if usedJIT {
				engine = "jit"
			}
			fmt.Fprintf(stdio.Stdout, "%s: ran on %s\n", u.name, engine)
		}
		if c.Time {
			fmt.Fprintf(stdio.Stdout, "%s: %s\n", u.name, elapsed)
		}
	}
	return nil
}

// execute runs prog, preferring the JIT (when cfg allows it and prog is
// eligible), falling back to the interpreter otherwise. It returns the
// exit value left in the result register and whether the JIT handled it.
func execute(ctx context.Context, prog *bytecode.Program, cfg *config.Config) (int64, bool, error) {
	if !cfg.DisableJIT {
		if compiled, ok := jit.Compile(prog); ok {
			defer compiled.Release()
			var regs [interp.NumRegisters]int64
			var stack [interp.StackSize]int64
			return compiled.Run(&regs, &stack), true, nil
		}
	}

	th := interp.Thread{MaxSteps: int(cfg.MaxSteps)}
	result, err := th.Run(ctx, prog)
	return result, false, err
}
