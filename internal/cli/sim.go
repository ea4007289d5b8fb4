package cli

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/nox-lang/nox/jit"
	"github.com/nox-lang/nox/lang/interp"
)

// Sim runs every named file (or the inline source given to -s) under both
// the interpreter and the JIT and reports whether their results agree,
// exercising the "same integer result" property spec.md §8 asks of any
// JIT-eligible program. A program the JIT can't compile is reported as
// interpreter-only, not a mismatch.
func (c *Cmd) Sim(ctx context.Context, stdio mainer.Stdio, args []string) error {
	units, ok := build(ctx, stdio, "sim", c.Source, args)
	if !ok {
		return fmt.Errorf("sim: compilation failed")
	}

	mismatch := false
	for _, u := range units {
		interpResult, ierr := interp.Run(ctx, u.prog)
		if ierr != nil {
			fmt.Fprintf(stdio.Stderr, "%s: interp: %s\n", u.name, ierr)
			mismatch = true
			continue
		}

		compiled, eligible := jit.Compile(u.prog)
		if !eligible {
			if !c.Quiet {
				fmt.Fprintf(stdio.Stdout, "%s: interp only (not JIT-eligible), exit %d\n", u.name, interpResult)
			}
			continue
		}
		defer compiled.Release()

		var regs [interp.NumRegisters]int64
		var stack [interp.StackSize]int64
		jitResult := compiled.Run(&regs, &stack)

		if jitResult != interpResult {
			fmt.Fprintf(stdio.Stderr, "%s: mismatch: interp=%d jit=%d\n", u.name, interpResult, jitResult)
			mismatch = true
			continue
		}
		if !c.Quiet {
			fmt.Fprintf(stdio.Stdout, "%s: agree, exit %d\n", u.name, interpResult)
		}
	}

	if mismatch {
		return fmt.Errorf("sim: interp/jit mismatch")
	}
	return nil
}
