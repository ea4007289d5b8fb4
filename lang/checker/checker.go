// Package checker implements nox's type checker: it walks a parsed
// *ast.Module, resolving every identifier to a Binding and inferring or
// verifying the type of every expression, producing a TypedTree or a
// failure.
package checker

import (
	"context"
	"fmt"

	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/token"
)

// FuncSig is the parameter and return types of a checked FunDecl.
type FuncSig struct {
	Params []Type
	Return Type
}

// FieldDef is a checked struct field: its type, its 0-based slot (matching
// ast.StructField.Slot, used later for in-memory layout) and its optional
// default value expression.
type FieldDef struct {
	Type    Type
	Slot    int
	Default ast.Expr
}

// StructDef is a checked struct declaration.
type StructDef struct {
	Name   string
	Fields map[string]*FieldDef
	Order  []string // field names in declaration order
}

// TypedTree is the output of a successful check: the module it was built
// from, the type of every expression node in it, and the resolved
// signatures of every function and struct it declares.
type TypedTree struct {
	Module  *ast.Module
	Types   map[ast.Expr]Type
	Funcs   map[*ast.FunDecl]*FuncSig
	Structs map[string]*StructDef
}

// TypeOf returns the checked type of x, or the zero Type if x was never
// checked (e.g. it belongs to a different tree).
func (t *TypedTree) TypeOf(x ast.Expr) Type { return t.Types[x] }

// CheckFiles type-checks each module independently: nox programs are
// single-file (SPEC_FULL §4.4), so no symbol is visible across modules.
// On the first error in a module, that module's entry in the returned
// slice is nil; the returned error, if non-nil, is guaranteed to be a
// token.ErrorList aggregating every module's errors.
func CheckFiles(ctx context.Context, fset *token.FileSet, modules []*ast.Module) ([]*TypedTree, error) {
	trees := make([]*TypedTree, len(modules))
	var all token.ErrorList

	for i, mod := range modules {
		if mod == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var c checker
		c.file = fset.File(mod.EOF)
		c.types = make(map[ast.Expr]Type)
		c.funcs = make(map[*ast.FunDecl]*FuncSig)
		c.structs = make(map[string]*StructDef)

		if c.run(mod) {
			trees[i] = &TypedTree{Module: mod, Types: c.types, Funcs: c.funcs, Structs: c.structs}
		}
		all = append(all, c.errors...)
	}

	all.Sort()
	return trees, all.Err()
}

// errCheck is panicked by checker.error to unwind to run's recover, per the
// sentinel-on-first-error convention used throughout this toolchain.
type errCheck struct{}

type checker struct {
	file        *token.File
	errors      token.ErrorList
	failed      bool
	types       map[ast.Expr]Type
	funcs       map[*ast.FunDecl]*FuncSig
	structs     map[string]*StructDef
	currentFunc *FuncSig
}

func (c *checker) error(pos token.Pos, format string, args ...interface{}) {
	if c.failed {
		return
	}
	c.failed = true
	c.errors.Add(c.file.Position(pos), fmt.Sprintf(format, args...))
	panic(errCheck{})
}

func (c *checker) setType(x ast.Expr, t Type) Type {
	c.types[x] = t
	return t
}

// run checks mod's top-level block, returning true on success. It recovers
// from the errCheck sentinel, converting it into a false result.
func (c *checker) run(mod *ast.Module) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isErr := r.(errCheck); isErr {
				ok = false
				return
			}
			panic(r)
		}
	}()

	c.checkBlock(mod.Block, nil)
	return true
}
