package checker

import (
	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/token"
)

// checkExpr infers and records the type of x, recursing into its operands.
func (c *checker) checkExpr(x ast.Expr, scope *scopeTable) Type {
	switch n := x.(type) {
	case *ast.Literal:
		return c.checkLiteral(n)
	case *ast.Identifier:
		return c.checkIdentifier(n, scope)
	case *ast.Unary:
		return c.checkUnary(n, scope)
	case *ast.Binary:
		return c.checkBinary(n, scope)
	case *ast.Call:
		return c.checkCall(n, scope)
	case *ast.Access:
		return c.checkAccess(n, scope)
	case *ast.Init:
		return c.checkInit(n, scope)
	default:
		start, _ := x.Span()
		c.error(start, "cannot check expression of type %T", x)
		return Type{Kind: Invalid}
	}
}

func (c *checker) checkLiteral(n *ast.Literal) Type {
	var t Type
	switch n.Kind {
	case token.INT:
		t = IntType
	case token.FLOAT:
		t = RealType
	case token.STRING:
		t = StrType
	case token.TRUE, token.FALSE:
		t = BoolType
	default:
		c.error(n.Pos, "unrecognized literal kind %s", n.Kind)
		t = Type{Kind: Invalid}
	}
	return c.setType(n, t)
}

func (c *checker) checkIdentifier(n *ast.Identifier, scope *scopeTable) Type {
	b, ok := scope.lookup(n.Name)
	if !ok {
		c.error(n.NamePos, "undefined: %s", n.Name)
	}
	return c.setType(n, b.Type)
}

func (c *checker) checkUnary(n *ast.Unary, scope *scopeTable) Type {
	xt := c.checkExpr(n.X, scope)
	var t Type
	switch n.Op {
	case token.MINUS:
		if !xt.numeric() {
			c.error(n.OpPos, "unary - requires a numeric operand, got %s", xt)
		} else if xt.Kind == Real {
			c.error(n.OpPos, "unary - is not supported for real operands")
		}
		t = xt
	case token.BANG, token.NOT:
		if xt.Kind != Bool {
			c.error(n.OpPos, "%s requires a bool operand, got %s", n.Op, xt)
		}
		t = BoolType
	default:
		c.error(n.OpPos, "unrecognized unary operator %s", n.Op)
		t = Type{Kind: Invalid}
	}
	return c.setType(n, t)
}

func (c *checker) checkBinary(n *ast.Binary, scope *scopeTable) Type {
	lt := c.checkExpr(n.Left, scope)
	rt := c.checkExpr(n.Right, scope)

	var t Type
	switch {
	case n.Op.IsArithOp():
		if !lt.numeric() || !sameType(lt, rt) {
			c.error(n.OpPos, "operator %s requires matching numeric operands, got %s and %s", n.Op, lt, rt)
			t = lt
			break
		}
		// The register machine has no float opcodes (spec.md §3/§4.6): a
		// real's bits are carried in an int64 register and codegen lowers
		// arithmetic straight to Add/Sub/Mul/Div, which would reinterpret
		// those bits as an integer. Reject here rather than miscompile.
		if lt.Kind == Real {
			c.error(n.OpPos, "operator %s is not supported for real operands", n.Op)
		}
		t = lt

	case n.Op.IsCompareOp():
		if !sameType(lt, rt) {
			c.error(n.OpPos, "operator %s requires matching operand types, got %s and %s", n.Op, lt, rt)
		} else if lt.Kind == Real && n.Op != token.EQEQ && n.Op != token.NEQ {
			// Ordering compiles to a signed int64 Lt/Le/Ge/Gt, which
			// misorders negative reals (IEEE-754 is sign-magnitude, two's
			// complement isn't); only bit-exact == and != are safe.
			c.error(n.OpPos, "operator %s is not supported for real operands", n.Op)
		}
		t = BoolType

	case n.Op.IsLogicOp():
		if lt.Kind != Bool || rt.Kind != Bool {
			c.error(n.OpPos, "operator %s requires bool operands, got %s and %s", n.Op, lt, rt)
		}
		t = BoolType

	default:
		c.error(n.OpPos, "unrecognized binary operator %s", n.Op)
		t = Type{Kind: Invalid}
	}
	return c.setType(n, t)
}

func (c *checker) checkCall(n *ast.Call, scope *scopeTable) Type {
	ident, ok := n.Fun.(*ast.Identifier)
	if !ok {
		start, _ := n.Fun.Span()
		c.error(start, "call target must be a function name")
		return Type{Kind: Invalid}
	}

	b, ok := scope.lookup(ident.Name)
	if !ok {
		c.error(ident.NamePos, "undefined: %s", ident.Name)
	}
	if b.Scope != FuncScope {
		c.error(ident.NamePos, "%s is not a function", ident.Name)
		return Type{Kind: Invalid}
	}

	fd := b.Decl.(*ast.FunDecl)
	sig := c.funcs[fd]
	c.setType(ident, FuncType)

	if len(n.Args) != len(sig.Params) {
		c.error(ident.NamePos, "%s takes %d argument(s), got %d", ident.Name, len(sig.Params), len(n.Args))
	}
	for i, a := range n.Args {
		at := c.checkExpr(a, scope)
		if i < len(sig.Params) && !sameType(at, sig.Params[i]) {
			start, _ := a.Span()
			c.error(start, "argument %d of %s: cannot use %s as %s", i+1, ident.Name, at, sig.Params[i])
		}
	}

	return c.setType(n, sig.Return)
}

func (c *checker) checkAccess(n *ast.Access, scope *scopeTable) Type {
	xt := c.checkExpr(n.X, scope)
	if xt.Kind != StructKind {
		start, _ := n.X.Span()
		c.error(start, "cannot access field %s of non-struct type %s", n.Name, xt)
		return Type{Kind: Invalid}
	}

	sd := c.structs[xt.Name]
	fd, ok := sd.Fields[n.Name]
	if !ok {
		c.error(n.NamePos, "%s has no field %s", xt.Name, n.Name)
		return Type{Kind: Invalid}
	}
	return c.setType(n, fd.Type)
}

func (c *checker) checkInit(n *ast.Init, scope *scopeTable) Type {
	t := c.resolveTypeName(n.Type)
	if t.Kind != StructKind {
		start, _ := n.Span()
		c.error(start, "%s is not a struct type", t)
		return c.setType(n, Type{Kind: Invalid})
	}

	sd := c.structs[t.Name]
	seen := make(map[string]bool, len(n.Args))
	for i, a := range n.Args {
		name := a.Name
		if name == "" {
			if i >= len(sd.Order) {
				c.error(a.NamePos, "too many positional fields for struct %s", t.Name)
				continue
			}
			name = sd.Order[i]
		}

		fd, ok := sd.Fields[name]
		if !ok {
			start, _ := a.Span()
			c.error(start, "%s has no field %s", t.Name, name)
			continue
		}
		if seen[name] {
			start, _ := a.Span()
			c.error(start, "duplicate value for field %s", name)
		}
		seen[name] = true

		vt := c.checkExpr(a.Value, scope)
		if !sameType(vt, fd.Type) {
			start, _ := a.Value.Span()
			c.error(start, "cannot use %s as %s for field %s", vt, fd.Type, name)
		}
	}
	for _, name := range sd.Order {
		if !seen[name] && sd.Fields[name].Default == nil {
			c.error(n.Lbrace, "missing value for field %s of struct %s", name, t.Name)
		}
	}

	return c.setType(n, t)
}
