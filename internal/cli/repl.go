package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/mna/mainer"

	"github.com/nox-lang/nox/config"
)

// Repl reads nox source one line at a time from stdio.Stdin, compiling and
// running the accumulated source after every line. A line that breaks
// compilation is dropped and the prior, last-known-good source is kept,
// per spec.md §7's REPL error-recovery rule; a line that compiles and runs
// successfully becomes part of that accumulated state.
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "repl: loading config: %s\n", err)
		return err
	}

	fmt.Fprintf(stdio.Stdout, "nox repl, one statement per line, ctrl-d to quit\n")

	var good strings.Builder
	sc := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, "> ")
		if !sc.Scan() {
			break
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		candidate := good.String() + line + "\n"
		units, ok := build(ctx, stdio, "repl", true, []string{candidate})
		if !ok {
			// candidate line rejected, good stays as it was
			continue
		}

		result, _, rerr := execute(ctx, units[0].prog, cfg)
		if rerr != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", rerr)
			continue
		}
		good.WriteString(line)
		good.WriteByte('\n')
		fmt.Fprintf(stdio.Stdout, "=> %d\n", result)
	}
	return sc.Err()
}
