package checker

import "github.com/nox-lang/nox/lang/ast"

// checkStmt checks a single non-declaration statement. FunDecl and Struct
// never reach here: the parser's declaration-first partitioning keeps them
// in the decls portion of their Block, handled by checkBlockIn directly.
func (c *checker) checkStmt(s ast.Stmt, scope *scopeTable) {
	switch n := s.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(n, scope)
	case *ast.Assign:
		c.checkAssign(n, scope)
	case *ast.ExprStmt:
		c.checkExpr(n.X, scope)
	case *ast.If:
		c.checkIf(n, scope)
	case *ast.While:
		c.checkWhile(n, scope)
	case *ast.Return:
		c.checkReturn(n, scope)
	case *ast.Block:
		c.checkBlock(n, scope)
	default:
		c.error(0, "cannot check statement of type %T", s)
	}
}

func (c *checker) checkVarDecl(n *ast.VarDecl, scope *scopeTable) {
	t := c.checkExpr(n.Right, scope)
	if !scope.define(n.Left.Name, &Binding{Scope: Local, Type: t, Decl: n}) {
		start, _ := n.Left.Span()
		c.error(start, "%s redeclared in this block", n.Left.Name)
	}
	c.setType(n.Left, t)
}

func (c *checker) checkAssign(n *ast.Assign, scope *scopeTable) {
	start, _ := n.Left.Span()
	b, ok := scope.lookup(n.Left.Name)
	if !ok {
		c.error(start, "undefined: %s", n.Left.Name)
	}
	if b.Scope != Local {
		c.error(start, "cannot assign to %s %s", b.Scope, n.Left.Name)
	}

	rt := c.checkExpr(n.Right, scope)
	if !sameType(rt, b.Type) {
		c.error(n.Eq, "cannot assign %s to %s (%s)", rt, n.Left.Name, b.Type)
	}
	c.setType(n.Left, b.Type)
}

// checkStmtAsBody checks a then-form (bare statement) or block-form body of
// an if/while, opening a fresh child scope either way so a then-form
// single-statement body cannot leak a declaration into the enclosing block.
func (c *checker) checkStmtAsBody(s ast.Stmt, parent *scopeTable) {
	if b, ok := s.(*ast.Block); ok {
		c.checkBlock(b, parent)
		return
	}
	inner := newScope(parent)
	c.checkStmt(s, inner)
}

func (c *checker) checkIf(n *ast.If, scope *scopeTable) {
	ct := c.checkExpr(n.Cond, scope)
	if ct.Kind != Bool {
		start, _ := n.Cond.Span()
		c.error(start, "if condition must be bool, got %s", ct)
	}
	c.checkStmtAsBody(n.Then, scope)
	if n.Else != nil {
		c.checkStmtAsBody(n.Else, scope)
	}
}

func (c *checker) checkWhile(n *ast.While, scope *scopeTable) {
	ct := c.checkExpr(n.Cond, scope)
	if ct.Kind != Bool {
		start, _ := n.Cond.Span()
		c.error(start, "while condition must be bool, got %s", ct)
	}
	c.checkStmtAsBody(n.Body, scope)
}

func (c *checker) checkReturn(n *ast.Return, scope *scopeTable) {
	if c.currentFunc == nil {
		// A return at module scope halts the program rather than a function,
		// per the program-result contract (spec.md §6): the exit value must
		// be an int, matching Exit's reg[2] being interpreted as i64.
		if n.X == nil {
			return
		}
		t := c.checkExpr(n.X, scope)
		if t.Kind != Int {
			start, _ := n.X.Span()
			c.error(start, "top-level return must be int, got %s", t)
		}
		return
	}

	if n.X == nil {
		if c.currentFunc.Return.Kind != Void {
			c.error(n.ReturnPos, "missing return value, want %s", c.currentFunc.Return)
		}
		return
	}

	t := c.checkExpr(n.X, scope)
	if !sameType(t, c.currentFunc.Return) {
		start, _ := n.X.Span()
		c.error(start, "cannot return %s as %s", t, c.currentFunc.Return)
	}
}
