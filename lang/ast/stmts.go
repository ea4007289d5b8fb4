package ast

import (
	"fmt"

	"github.com/nox-lang/nox/lang/token"
)

type (
	// ExprStmt is an expression used as a statement for its side effect,
	// e.g. a bare call "f(x)".
	ExprStmt struct {
		X Expr
	}

	// Assign is "name = expr".
	Assign struct {
		Left  *Identifier
		Eq    token.Pos
		Right Expr
	}

	// VarDecl is "name := expr". The declared type is inferred from
	// Right's type by the checker, there is no explicit annotation.
	VarDecl struct {
		Left    *Identifier
		ColonEq token.Pos
		Right   Expr
	}

	// FunParam is one "name : type" entry in a FunDecl's parameter list.
	FunParam struct {
		Name    string
		NamePos token.Pos
		Colon   token.Pos
		Type    *Type
	}

	// FunDecl is "fun name ( params ) return_type? body".
	FunDecl struct {
		Fun        token.Pos
		Name       string
		NamePos    token.Pos
		Lparen     token.Pos
		Params     []*FunParam
		Rparen     token.Pos
		ReturnType *Type // nil means void
		Body       *FunBody
	}

	// Return is "return expr?".
	Return struct {
		ReturnPos token.Pos
		X         Expr // nil for a bare "return"
	}

	// If is "if cond then_stmt (else else_stmt)?" or
	// "if cond { ... } (else ...)?"; Then/Else may be any Stmt in
	// then-form (after "then"), and must be a *Block otherwise.
	If struct {
		IfPos token.Pos
		Cond  Expr
		Then  Stmt
		Else  Stmt // nil, a *Block, or a nested *If for "else if"
	}

	// While is "while cond then_stmt" or "while cond { ... }".
	While struct {
		WhilePos token.Pos
		Cond     Expr
		Body     Stmt
	}

	// StructField is "name : type (= default_expr)?" inside a Struct.
	// Slot is the 0-based declaration offset used as the field's
	// in-memory slot index.
	StructField struct {
		Name    string
		NamePos token.Pos
		Colon   token.Pos
		Type    *Type
		Eq      token.Pos // zero if no default
		Default Expr      // nil if no default
		Slot    int
	}

	// Struct is "struct Name { field_decl* }".
	Struct struct {
		StructPos token.Pos
		Name      string
		NamePos   token.Pos
		Lbrace    token.Pos
		Fields    []*StructField
		Rbrace    token.Pos
	}
)

func (*ExprStmt) Decl() bool    { return false }
func (*Assign) Decl() bool      { return false }
func (*VarDecl) Decl() bool     { return false }
func (*FunParam) Decl() bool    { return false }
func (*FunDecl) Decl() bool     { return true }
func (*Return) Decl() bool      { return false }
func (*If) Decl() bool          { return false }
func (*While) Decl() bool       { return false }
func (*StructField) Decl() bool { return false }
func (*Struct) Decl() bool      { return true }

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExprStmt) Span() (start, end token.Pos)  { return n.X.Span() }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.X) }

func (n *Assign) Format(f fmt.State, verb rune) { format(f, verb, n, "assign "+n.Left.Name, nil) }
func (n *Assign) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *Assign) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

func (n *VarDecl) Format(f fmt.State, verb rune) { format(f, verb, n, "var decl "+n.Left.Name, nil) }
func (n *VarDecl) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *VarDecl) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

func (n *FunParam) Format(f fmt.State, verb rune) {
	format(f, verb, n, "param "+n.Name+" : "+joinTypeName(n.Type), nil)
}
func (n *FunParam) Span() (start, end token.Pos) {
	_, end = n.Type.Span()
	return n.NamePos, end
}
func (n *FunParam) Walk(v Visitor) {
	if n.Type != nil {
		Walk(v, n.Type)
	}
}

func (n *FunDecl) Format(f fmt.State, verb rune) {
	format(f, verb, n, "fun "+n.Name, map[string]int{"params": len(n.Params)})
}
func (n *FunDecl) Span() (start, end token.Pos) {
	_, bodyEnd := n.Body.Span()
	return n.Fun, bodyEnd
}
func (n *FunDecl) Walk(v Visitor) {
	for _, p := range n.Params {
		Walk(v, p)
	}
	if n.ReturnType != nil {
		Walk(v, n.ReturnType)
	}
	Walk(v, n.Body)
}

func (n *Return) Format(f fmt.State, verb rune) { format(f, verb, n, "return", nil) }
func (n *Return) Span() (start, end token.Pos) {
	end = n.ReturnPos + token.Pos(len("return"))
	if n.X != nil {
		_, end = n.X.Span()
	}
	return n.ReturnPos, end
}
func (n *Return) Walk(v Visitor) {
	if n.X != nil {
		Walk(v, n.X)
	}
}

func (n *If) Format(f fmt.State, verb rune) { format(f, verb, n, "if", nil) }
func (n *If) Span() (start, end token.Pos) {
	_, end = n.Then.Span()
	if n.Else != nil {
		_, end = n.Else.Span()
	}
	return n.IfPos, end
}
func (n *If) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}

func (n *While) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *While) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.WhilePos, end
}
func (n *While) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}

func (n *StructField) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("field %s : %s [%d]", n.Name, joinTypeName(n.Type), n.Slot), nil)
}
func (n *StructField) Span() (start, end token.Pos) {
	end = n.NamePos + token.Pos(len(n.Name))
	if n.Type != nil {
		_, end = n.Type.Span()
	}
	if n.Default != nil {
		_, end = n.Default.Span()
	}
	return n.NamePos, end
}
func (n *StructField) Walk(v Visitor) {
	if n.Type != nil {
		Walk(v, n.Type)
	}
	if n.Default != nil {
		Walk(v, n.Default)
	}
}

func (n *Struct) Format(f fmt.State, verb rune) {
	format(f, verb, n, "struct "+n.Name, map[string]int{"fields": len(n.Fields)})
}
func (n *Struct) Span() (start, end token.Pos) { return n.StructPos, n.Rbrace + 1 }
func (n *Struct) Walk(v Visitor) {
	for _, fld := range n.Fields {
		Walk(v, fld)
	}
}
