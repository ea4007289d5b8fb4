// Package parser implements a Pratt (operator-precedence) parser that
// transforms a token stream into an abstract syntax tree rooted at an
// *ast.Module.
package parser

import (
	"context"
	"os"
	"strings"

	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/intern"
	"github.com/nox-lang/nox/lang/lexer"
	"github.com/nox-lang/nox/lang/token"
)

type (
	// Error is a single syntax error.
	Error = lexer.Error
	// ErrorList aggregates Errors in source-position order.
	ErrorList = lexer.ErrorList
)

// ParseFiles parses every named source file into an *ast.Module. On the
// first error encountered, parsing of the failing file stops and a nil
// Module is returned for it; the error is guaranteed to be an ErrorList.
func ParseFiles(ctx context.Context, files ...string) (*token.FileSet, []*ast.Module, *intern.Pool, error) {
	if len(files) == 0 {
		return nil, nil, nil, nil
	}

	var p parser
	p.pool = intern.NewPool(256)
	fset := token.NewFileSet()

	res := make([]*ast.Module, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}

		b, err := os.ReadFile(name)
		if err != nil {
			p.errors.Add(token.Position{Filename: name}, err.Error())
			res = append(res, nil)
			continue
		}

		p.init(fset, name, b)
		mod := p.parseModule()
		if mod != nil {
			mod.Name = name
		}
		res = append(res, mod)
	}
	p.errors.Sort()
	return fset, res, p.pool, p.errors.Err()
}

// ParseModule parses a single module from src, registered in fset under
// filename. The error, if non-nil, is guaranteed to be an ErrorList.
func ParseModule(fset *token.FileSet, pool *intern.Pool, filename string, src []byte) (*ast.Module, error) {
	var p parser
	p.pool = pool
	p.init(fset, filename, src)
	mod := p.parseModule()
	if mod != nil {
		mod.Name = filename
	}
	return mod, p.errors.Err()
}

// parser parses a single source file and generates an AST. On the first
// syntax error it panics with errParse, caught by parseModule, which then
// returns a nil Module: the parser does not attempt synchronisation or
// partial recovery (SPEC_FULL §4.2).
type parser struct {
	pool   *intern.Pool
	lexer  lexer.Lexer
	errors lexer.ErrorList
	file   *token.File
	failed bool

	// noInit suppresses treating a following "{" as a struct-init suffix;
	// set while parsing an if/while condition so "if x {" parses as the
	// block, not "x{}".
	noInit bool

	tok token.Token
	val token.Value
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.file = fset.AddFile(filename, -1, len(src))
	p.lexer.Init(p.file, src, p.pool, p.errors.Add)
	p.failed = false
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.lexer.Scan(&p.val)
}

// errParse is panicked by expect/error to unwind to parseModule's recover,
// which turns it into the failure-sentinel (nil) return value.
type errParse struct{}

func (p *parser) error(pos token.Pos, msg string) {
	if p.failed {
		return
	}
	p.failed = true
	p.errors.Add(p.file.Position(pos), msg)
	panic(errParse{})
}

func (p *parser) errorExpected(pos token.Pos, want string) {
	got := p.tok.GoString()
	if p.val.Raw != "" && p.tok != token.STRING {
		got = p.val.Raw
	}
	p.error(pos, "expected "+want+", found "+got)
}

// expect consumes the current token if it matches any of toks, returning
// its position; otherwise it reports a syntax error and unwinds parsing.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos
	for _, want := range toks {
		if p.tok == want {
			p.advance()
			return pos
		}
	}

	var b strings.Builder
	for i, want := range toks {
		if i > 0 {
			b.WriteString(" or ")
		}
		b.WriteString(want.GoString())
	}
	p.errorExpected(pos, b.String())
	panic(errParse{}) // unreachable, errorExpected always panics
}
