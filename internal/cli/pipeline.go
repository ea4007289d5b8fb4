package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/nox-lang/nox/diag"
	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/bytecode"
	"github.com/nox-lang/nox/lang/checker"
	"github.com/nox-lang/nox/lang/codegen"
	"github.com/nox-lang/nox/lang/intern"
	"github.com/nox-lang/nox/lang/parser"
	"github.com/nox-lang/nox/lang/token"
	"github.com/nox-lang/nox/logger"
)

// cliLog is the process-wide diagnostic sink for the driver itself (flag
// handling, I/O failures), separate from the compiler errors a subcommand
// reports through stdio. It writes straight to the real os.Stderr rather
// than through mainer.Stdio, since mainer.Stdio wraps a plain io.Writer and
// logger.NewFile wants a handle it can name in its line format.
var cliLog = logger.NewFile("cli", logger.LevelWarn, os.Stderr)

// compiled is one source, parsed, checked and code-generated all the way
// through to a runnable bytecode.Program.
type compiled struct {
	name string
	src  []byte
	fset *token.FileSet
	mod  *ast.Module
	tree *checker.TypedTree
	prog *bytecode.Program
}

// build runs the full pipeline (parse, check, generate) over either the
// inline source in args[0] (when inline is true) or every file named in
// args, reporting each failure as it's found through stdio.Stderr. It
// returns the programs that made it all the way through; the bool is
// false if any input failed at any stage, matching ParseFiles/CheckFiles'
// "keep going, report everything" approach so a multi-file invocation
// doesn't stop at the first broken file.
func build(ctx context.Context, stdio mainer.Stdio, group string, inline bool, args []string) ([]compiled, bool) {
	var out []compiled
	ok := true

	names := args
	if inline {
		names = []string{"<source>"}
	}

	for _, name := range names {
		var src []byte
		if inline {
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
			reportErr(stdio, group, fset, src, perr)
			ok = false
			if mod == nil {
				continue
			}
		}

		trees, cerr := checker.CheckFiles(ctx, fset, []*ast.Module{mod})
		if cerr != nil {
			reportErr(stdio, group, fset, src, cerr)
			ok = false
			continue
		}

		progs := codegen.CompileTrees(trees)
		out = append(out, compiled{name: name, src: src, fset: fset, mod: mod, tree: trees[0], prog: progs[0]})
	}

	return out, ok
}

// reportErr prints every token.Error in err through diag's excerpt-plus-
// carat rendering. fset is expected to hold exactly the one file src was
// parsed into, registered at the FileSet's starting base (token.NewFileSet
// always begins at 1), so fset.File(1) recovers it without a name lookup.
func reportErr(stdio mainer.Stdio, group string, fset *token.FileSet, src []byte, err error) {
	list, ok := err.(token.ErrorList)
	if !ok {
		fmt.Fprintln(stdio.Stderr, err)
		return
	}

	file := fset.File(token.Pos(1))
	if file == nil {
		fmt.Fprintln(stdio.Stderr, err)
		return
	}

	for _, e := range list {
		start, end := file.LineBounds(e.Pos.Line)
		if e.Pos.Column > 0 {
			start += e.Pos.Column - 1
		}
		if end <= start {
			end = start + 1
		}
		fmt.Fprint(stdio.Stderr, diag.Format(logger.LevelError, group, file, src, file.Pos(start), file.Pos(end), e.Msg))
	}
}
