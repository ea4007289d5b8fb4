package checker

import (
	"fmt"

	"github.com/nox-lang/nox/lang/ast"
)

// Scope indicates the kind of thing a Binding names. Unlike the teacher's
// closure-aware {Local, Cell, Free, Predeclared, Universal} set, nox has no
// closures (Non-goal) and no predeclared/universe environment, so the set
// is reduced to what the language actually has names for.
type Scope uint8

const (
	Undefined Scope = iota
	Local             // a variable declared by VarDecl or a function parameter
	FuncScope         // a function name declared by FunDecl
	StructScope       // a struct name declared by Struct
)

var scopeNames = [...]string{
	Undefined:   "undefined",
	Local:       "local",
	FuncScope:   "function",
	StructScope: "struct",
}

func (s Scope) String() string {
	if int(s) >= len(scopeNames) {
		return fmt.Sprintf("<invalid Scope %d>", s)
	}
	return scopeNames[s]
}

// Binding ties an identifier to the declaration that introduced it, its
// Scope kind and its Type.
type Binding struct {
	Scope Scope
	Type  Type
	Decl  ast.Stmt // *ast.VarDecl, *ast.FunParam, *ast.FunDecl or *ast.Struct
}

// scopeTable is a single block's symbol table, chained to its parent block's
// table, mirroring SPEC_FULL §4.4 "hierarchical by block id".
type scopeTable struct {
	parent *scopeTable
	syms   map[string]*Binding
}

func newScope(parent *scopeTable) *scopeTable {
	return &scopeTable{parent: parent, syms: make(map[string]*Binding)}
}

// define adds name to s's own table, returning false if name is already
// bound in this exact scope (shadowing an outer scope is fine, a duplicate
// in the same one is not).
func (s *scopeTable) define(name string, b *Binding) bool {
	if _, ok := s.syms[name]; ok {
		return false
	}
	s.syms[name] = b
	return true
}

func (s *scopeTable) lookup(name string) (*Binding, bool) {
	for t := s; t != nil; t = t.parent {
		if b, ok := t.syms[name]; ok {
			return b, true
		}
	}
	return nil, false
}
