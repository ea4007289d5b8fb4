package cli

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/nox-lang/nox/config"
	"github.com/nox-lang/nox/disasm"
)

// Com compiles every named file (or the inline source given to -s) to
// bytecode, printing its disassembly, then runs it unless -q/--quiet is
// given.
func (c *Cmd) Com(ctx context.Context, stdio mainer.Stdio, args []string) error {
	units, ok := build(ctx, stdio, "com", c.Source, args)
	if !ok {
		return fmt.Errorf("com: compilation failed")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "com: loading config: %s\n", err)
		return err
	}

	for _, u := range units {
		fmt.Fprintf(stdio.Stdout, "; %s\n", u.name)
		fmt.Fprint(stdio.Stdout, disasm.Format(u.prog))

		if c.Quiet {
			continue
		}
		result, _, rerr := execute(ctx, u.prog, cfg)
		if rerr != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", u.name, rerr)
			return rerr
		}
		fmt.Fprintf(stdio.Stdout, "%s: exit %d\n", u.name, result)
	}
	return nil
}
