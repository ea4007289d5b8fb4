package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mna/mainer"

	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/intern"
	"github.com/nox-lang/nox/lang/parser"
	"github.com/nox-lang/nox/lang/token"
)

// Dot parses every named file (or the inline source given to -s) and
// prints its AST as a Graphviz dot graph, one digraph per input.
func (c *Cmd) Dot(_ context.Context, stdio mainer.Stdio, args []string) error {
	names := args
	if c.Source {
		names = []string{"<source>"}
	}

	ok := true
	for _, name := range names {
		var src []byte
		if c.Source {
			src = []byte(args[0])
		} else {
			b, err := os.ReadFile(name)
			if err != nil {
				fmt.Fprintf(stdio.Stderr, "%s: %s\n", name, err)
				ok = false
				continue
			}
			src = b
		}

		fset := token.NewFileSet()
		pool := intern.NewPool(64)
		mod, perr := parser.ParseModule(fset, pool, name, src)
		if perr != nil {
			reportErr(stdio, "dot", fset, src, perr)
			ok = false
			continue
		}

		fmt.Fprintf(stdio.Stdout, "digraph %q {\n", name)
		fmt.Fprint(stdio.Stdout, formatDot(mod))
		fmt.Fprint(stdio.Stdout, "}\n")
	}

	if !ok {
		return fmt.Errorf("dot: parsing failed")
	}
	return nil
}

// formatDot walks n with ast.Walk, assigning each node a sequential id and
// emitting a node declaration (labeled the same way ast.Printer labels a
// node, reusing its Format method) plus an edge from its parent.
func formatDot(n ast.Node) string {
	dp := &dotPrinter{}
	ast.Walk(dp, n)
	return dp.b.String()
}

type dotPrinter struct {
	b      strings.Builder
	nextID int
	stack  []int
}

func (dp *dotPrinter) Visit(n ast.Node, dir ast.VisitDirection) ast.Visitor {
	if dir == ast.VisitExit {
		dp.stack = dp.stack[:len(dp.stack)-1]
		return nil
	}

	id := dp.nextID
	dp.nextID++
	label := strings.ReplaceAll(fmt.Sprintf("%v", n), `"`, `\"`)
	fmt.Fprintf(&dp.b, "  n%d [label=%q];\n", id, label)
	if len(dp.stack) > 0 {
		fmt.Fprintf(&dp.b, "  n%s -> n%d;\n", strconv.Itoa(dp.stack[len(dp.stack)-1]), id)
	}
	dp.stack = append(dp.stack, id)
	return dp
}
