// Package cli implements nox's command-line driver: a Cmd struct parsed by
// github.com/mna/mainer's reflective flag parser, dispatching to one of a
// fixed set of subcommand methods discovered by reflection, grounded on
// the teacher's internal/maincmd.Cmd + buildCmds.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "nox"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...]
       %[1]s -h|--help
       %[1]s --version

Compiler and all-in-one tool for the %[1]s expression language.

The <command> can be one of:
       com                       Compile source to bytecode, printing its
                                 disassembly; runs it too unless -q is set.
       dis                       Compile source and print its bytecode
                                 disassembly only.
       dot                       Parse source and print its AST as a
                                 Graphviz dot graph.
       repl                      Start an interactive read-compile-run
                                 loop, one line at a time.
       run                       Compile and run source, printing the
                                 program's exit code.
       sim                       Run source under both the interpreter
                                 and the JIT and report whether their
                                 results agree.
       help                      Show this help and exit.

Valid flag options are:
       -h --help                 Show this help and exit.
       --version                 Print version and exit.
       -q --quiet                Suppress non-error output.
       -t --time                 Print compile/run wall-clock time.
       -v --verbose              Print extra diagnostics (disassembly
                                 before running, JIT eligibility, etc).
       -s --source               Treat the command's sole argument as
                                 inline source text instead of a file path.

More information on the %[1]s repository:
       https://github.com/nox-lang/nox
`, binName)
)

// Cmd is the top-level command, populated from argv by mainer.Parser and
// dispatched to one of the methods buildCmds discovers.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"version"`

	Quiet   bool `flag:"q,quiet"`
	Time    bool `flag:"t,time"`
	Verbose bool `flag:"v,verbose"`
	Source  bool `flag:"s,source"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	if c.Source && len(c.args[1:]) != 1 {
		return fmt.Errorf("%s: -s/--source requires exactly one argument", cmdName)
	}
	if !c.Source && cmdName != "repl" && cmdName != "help" && len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: at least one file must be provided", cmdName)
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		// each command takes care of printing its errors, just return with an error code
		return mainer.Failure
	}
	return mainer.Success
}

// Help prints usage and exits successfully, as a regular subcommand on top
// of the -h/--help flag (so "nox help" works like every other subcommand).
func (c *Cmd) Help_(_ context.Context, stdio mainer.Stdio, _ []string) error {
	fmt.Fprint(stdio.Stdout, longUsage)
	return nil
}

// valid commands are those that take a context.Context, a mainer.Stdio and
// a slice of strings as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		// must take 4 parameters (including receiver) and return 1
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		name := strings.ToLower(strings.TrimSuffix(m.Name, "_"))
		cmds[name] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
