package ast

import (
	"fmt"

	"github.com/nox-lang/nox/lang/intern"
	"github.com/nox-lang/nox/lang/token"
)

type (
	// Literal is an int, real, string or bool constant.
	Literal struct {
		Kind token.Token // INT, FLOAT, STRING, TRUE or FALSE
		Pos  token.Pos
		ID   intern.ID // interned textual form; unused for TRUE/FALSE
		Raw  string
	}

	// Identifier is a name reference, either a variable, function or
	// struct name, resolved by the checker against a surrounding scope.
	Identifier struct {
		NamePos token.Pos
		Name    string
		ID      intern.ID
	}

	// Unary is a prefix operator expression: -x, !x or not x.
	Unary struct {
		OpPos token.Pos
		Op    token.Token
		X     Expr
	}

	// Binary is an infix operator expression.
	Binary struct {
		Left  Expr
		OpPos token.Pos
		Op    token.Token
		Right Expr
	}

	// Call is a function call, e.g. f(a, b).
	Call struct {
		Fun    Expr
		Lparen token.Pos
		Args   []Expr
		Rparen token.Pos
	}

	// Access is a field access, e.g. x.f.
	Access struct {
		X       Expr
		Dot     token.Pos
		Name    string
		NamePos token.Pos
	}

	// Init is a struct literal, e.g. Point{x = 1, y = 2} or Point{1, 2}.
	Init struct {
		Type   *Type
		Lbrace token.Pos
		Args   []*InitArg
		Rbrace token.Pos
	}

	// InitArg is one argument of a struct Init, either positional (Name
	// empty) or named (Name set from "name = expr").
	InitArg struct {
		Name    string
		NamePos token.Pos // zero if positional
		Eq      token.Pos // zero if positional
		Value   Expr
	}
)

func (*Literal) expr()    {}
func (*Identifier) expr() {}
func (*Unary) expr()      {}
func (*Binary) expr()     {}
func (*Call) expr()       {}
func (*Access) expr()     {}
func (*Init) expr()       {}

func (n *Literal) Format(f fmt.State, verb rune) { format(f, verb, n, "lit "+n.Raw, nil) }
func (n *Literal) Span() (start, end token.Pos) {
	return n.Pos, n.Pos + token.Pos(len(n.Raw))
}
func (n *Literal) Walk(_ Visitor) {}

func (n *Identifier) Format(f fmt.State, verb rune) { format(f, verb, n, "ident "+n.Name, nil) }
func (n *Identifier) Span() (start, end token.Pos) {
	return n.NamePos, n.NamePos + token.Pos(len(n.Name))
}
func (n *Identifier) Walk(_ Visitor) {}

func (n *Unary) Format(f fmt.State, verb rune) { format(f, verb, n, "unary "+n.Op.String(), nil) }
func (n *Unary) Span() (start, end token.Pos) {
	_, xend := n.X.Span()
	return n.OpPos, xend
}
func (n *Unary) Walk(v Visitor) { Walk(v, n.X) }

func (n *Binary) Format(f fmt.State, verb rune) { format(f, verb, n, "binary "+n.Op.String(), nil) }
func (n *Binary) Span() (start, end token.Pos) {
	lstart, _ := n.Left.Span()
	_, rend := n.Right.Span()
	return lstart, rend
}
func (n *Binary) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

func (n *Call) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *Call) Span() (start, end token.Pos) {
	fstart, _ := n.Fun.Span()
	return fstart, n.Rparen
}
func (n *Call) Walk(v Visitor) {
	Walk(v, n.Fun)
	for _, a := range n.Args {
		Walk(v, a)
	}
}

func (n *Access) Format(f fmt.State, verb rune) { format(f, verb, n, "access "+n.Name, nil) }
func (n *Access) Span() (start, end token.Pos) {
	xstart, _ := n.X.Span()
	return xstart, n.NamePos + token.Pos(len(n.Name))
}
func (n *Access) Walk(v Visitor) { Walk(v, n.X) }

func (n *Init) Format(f fmt.State, verb rune) {
	format(f, verb, n, "init "+joinTypeName(n.Type), map[string]int{"args": len(n.Args)})
}
func (n *Init) Span() (start, end token.Pos) {
	start = n.Lbrace
	if n.Type != nil {
		start, _ = n.Type.Span()
	}
	return start, n.Rbrace + 1
}
func (n *Init) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a)
	}
}

func (n *InitArg) Format(f fmt.State, verb rune) {
	lbl := "init arg"
	if n.Name != "" {
		lbl += " " + n.Name
	}
	format(f, verb, n, lbl, nil)
}
func (n *InitArg) Span() (start, end token.Pos) {
	start = n.NamePos
	if start == token.NoPos {
		start, _ = n.Value.Span()
	}
	_, end = n.Value.Span()
	return start, end
}
func (n *InitArg) Walk(v Visitor) { Walk(v, n.Value) }
func (n *InitArg) Decl() bool     { return false }
