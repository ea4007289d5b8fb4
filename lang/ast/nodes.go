package ast

import (
	"fmt"

	"github.com/nox-lang/nox/lang/token"
)

// Module is the root of a parsed file: a flat block of top-level
// declarations and statements, plus the EOF position so an empty file
// still has a valid span.
type Module struct {
	Name  string // filename, may be empty
	Block *Block
	EOF   token.Pos
}

func (n *Module) Format(f fmt.State, verb rune) {
	lbl := "module"
	if n.Name != "" {
		lbl += " " + n.Name
	}
	format(f, verb, n, lbl, nil)
}
func (n *Module) Span() (start, end token.Pos) {
	if n.Block != nil {
		return n.Block.Span()
	}
	return n.EOF, n.EOF
}
func (n *Module) Walk(v Visitor) {
	if n.Block != nil {
		Walk(v, n.Block)
	}
}

// Block is a sequence of statements delimited by '{' '}' (or, for a
// Module, the whole file). Declarations (FunDecl, Struct) are stably
// partitioned to the front: Stmts[:DeclCount] holds only declarations,
// Stmts[DeclCount:] holds only non-declarations, each partition keeping
// source order.
type Block struct {
	Start, End token.Pos
	Stmts      []Stmt
	DeclCount  int
}

func (n *Block) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts), "decls": n.DeclCount})
}
func (n *Block) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *Block) Decl() bool { return false }

// Type is an identifier referring to a named type (a builtin scalar or a
// struct name). A missing Type (e.g. an omitted function return type)
// is represented by a nil *Type, meaning void.
type Type struct {
	NamePos token.Pos
	Name    string
}

func (n *Type) Format(f fmt.State, verb rune) { format(f, verb, n, "type "+n.Name, nil) }
func (n *Type) Span() (start, end token.Pos) {
	return n.NamePos, n.NamePos + token.Pos(len(n.Name))
}
func (n *Type) Walk(_ Visitor) {}

// FunBody is a function's block of statements, carrying its own scope
// distinct from the block it is lexically nested in.
type FunBody struct {
	*Block
}

func (n *FunBody) Format(f fmt.State, verb rune) {
	format(f, verb, n, "fun body", map[string]int{"stmts": len(n.Stmts)})
}

// IsBuiltinType reports whether name is one of nox's built-in scalar
// types (as opposed to a user-declared struct name).
func IsBuiltinType(name string) bool {
	switch name {
	case "int", "real", "str", "bool", "void":
		return true
	default:
		return false
	}
}

func joinTypeName(t *Type) string {
	if t == nil {
		return "void"
	}
	return t.Name
}
