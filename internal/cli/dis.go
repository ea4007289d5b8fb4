package cli

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/nox-lang/nox/disasm"
)

// Dis compiles every named file (or the inline source given to -s) and
// prints its bytecode disassembly only; it never runs the program.
func (c *Cmd) Dis(ctx context.Context, stdio mainer.Stdio, args []string) error {
	units, ok := build(ctx, stdio, "dis", c.Source, args)
	if !ok {
		return fmt.Errorf("dis: compilation failed")
	}

	for _, u := range units {
		if len(units) > 1 {
			fmt.Fprintf(stdio.Stdout, "; %s\n", u.name)
		}
		fmt.Fprint(stdio.Stdout, disasm.Format(u.prog))
	}
	return nil
}
