package checker

import "github.com/nox-lang/nox/lang/ast"

// checkBlock opens a fresh scope chained to parent and checks block inside
// it. Used for every block that introduces new lexical nesting: the module
// body, if/while bodies, and bare nested blocks.
func (c *checker) checkBlock(block *ast.Block, parent *scopeTable) {
	c.checkBlockIn(block, newScope(parent))
}

// checkBlockIn checks block using scope directly, without opening a further
// child scope. Used for function bodies, whose parameters must share a
// scope with the body's own statements.
func (c *checker) checkBlockIn(block *ast.Block, scope *scopeTable) {
	decls := block.Stmts[:block.DeclCount]
	rest := block.Stmts[block.DeclCount:]

	// Declarations are registered in two passes so that struct and function
	// names are all visible before any field or parameter type is resolved:
	// this is what lets structs and functions forward-reference each other
	// within the same block, matching the parser's declaration-first
	// partitioning (SPEC_FULL §4.2, §4.4).
	for _, s := range decls {
		c.declareName(s, scope)
	}
	for _, s := range decls {
		c.resolveSignature(s, scope)
	}
	for _, s := range decls {
		if fd, ok := s.(*ast.FunDecl); ok {
			c.checkFuncBody(fd, scope)
		}
	}

	for _, s := range rest {
		c.checkStmt(s, scope)
	}
}

func (c *checker) declareName(s ast.Stmt, scope *scopeTable) {
	switch d := s.(type) {
	case *ast.FunDecl:
		if !scope.define(d.Name, &Binding{Scope: FuncScope, Type: FuncType, Decl: d}) {
			c.error(d.NamePos, "%s redeclared in this block", d.Name)
		}
	case *ast.Struct:
		if !scope.define(d.Name, &Binding{Scope: StructScope, Type: StructType(d.Name), Decl: d}) {
			c.error(d.NamePos, "%s redeclared in this block", d.Name)
		}
		c.structs[d.Name] = &StructDef{Name: d.Name, Fields: make(map[string]*FieldDef)}
	}
}

func (c *checker) resolveSignature(s ast.Stmt, scope *scopeTable) {
	switch d := s.(type) {
	case *ast.FunDecl:
		params := make([]Type, len(d.Params))
		for i, p := range d.Params {
			params[i] = c.resolveTypeName(p.Type)
		}
		ret := VoidType
		if d.ReturnType != nil {
			ret = c.resolveTypeName(d.ReturnType)
		}
		c.funcs[d] = &FuncSig{Params: params, Return: ret}

	case *ast.Struct:
		sd := c.structs[d.Name]
		sd.Order = make([]string, 0, len(d.Fields))
		for _, f := range d.Fields {
			if _, dup := sd.Fields[f.Name]; dup {
				c.error(f.NamePos, "duplicate field %q in struct %s", f.Name, d.Name)
			}
			ft := c.resolveTypeName(f.Type)
			sd.Fields[f.Name] = &FieldDef{Type: ft, Slot: f.Slot, Default: f.Default}
			sd.Order = append(sd.Order, f.Name)
		}
		// Defaults are checked in the scope the struct is declared in;
		// nothing restricts them to constant expressions.
		for _, f := range d.Fields {
			if f.Default == nil {
				continue
			}
			dt := c.checkExpr(f.Default, scope)
			if !sameType(dt, sd.Fields[f.Name].Type) {
				c.error(f.Eq, "cannot use %s as default for field %s (%s)", dt, f.Name, sd.Fields[f.Name].Type)
			}
		}
	}
}

func (c *checker) checkFuncBody(fd *ast.FunDecl, enclosing *scopeTable) {
	sig := c.funcs[fd]
	body := newScope(enclosing)
	for i, p := range fd.Params {
		if !body.define(p.Name, &Binding{Scope: Local, Type: sig.Params[i], Decl: p}) {
			c.error(p.NamePos, "%s redeclared in this block", p.Name)
		}
	}

	prev := c.currentFunc
	c.currentFunc = sig
	c.checkBlockIn(fd.Body.Block, body)
	c.currentFunc = prev
}

// resolveTypeName resolves t to a Type, reporting an error for an unknown
// name. A nil t (an omitted function return type) means void.
func (c *checker) resolveTypeName(t *ast.Type) Type {
	if t == nil {
		return VoidType
	}
	switch t.Name {
	case "int":
		return IntType
	case "real":
		return RealType
	case "str":
		return StrType
	case "bool":
		return BoolType
	case "void":
		return VoidType
	default:
		if _, ok := c.structs[t.Name]; ok {
			return StructType(t.Name)
		}
		c.error(t.NamePos, "unknown type %s", t.Name)
		return Type{Kind: Invalid}
	}
}
