package parser_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/parser"
	"github.com/nox-lang/nox/lang/token"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, src string) (*ast.Module, error) {
	t.Helper()
	dir := t.TempDir()
	name := filepath.Join(dir, "in.nox")
	require.NoError(t, os.WriteFile(name, []byte(src), 0o644))

	_, mods, _, err := parser.ParseFiles(context.Background(), name)
	if len(mods) == 0 {
		return nil, err
	}
	return mods[0], err
}

func stmtKinds(stmts []ast.Stmt) []string {
	kinds := make([]string, len(stmts))
	for i, s := range stmts {
		switch s.(type) {
		case *ast.VarDecl:
			kinds[i] = "vardecl"
		case *ast.Assign:
			kinds[i] = "assign"
		case *ast.If:
			kinds[i] = "if"
		case *ast.While:
			kinds[i] = "while"
		case *ast.FunDecl:
			kinds[i] = "fundecl"
		case *ast.Struct:
			kinds[i] = "struct"
		case *ast.Return:
			kinds[i] = "return"
		case *ast.ExprStmt:
			kinds[i] = "exprstmt"
		case *ast.Block:
			kinds[i] = "block"
		default:
			kinds[i] = "other"
		}
	}
	return kinds
}

func TestParseVarDeclAndAssign(t *testing.T) {
	mod, err := parseString(t, `x := 1
x = 2
`)
	require.NoError(t, err)
	require.Equal(t, []string{"vardecl", "assign"}, stmtKinds(mod.Block.Stmts))
}

func TestParseExprPrecedence(t *testing.T) {
	mod, err := parseString(t, `x := 1 + 2 * 3
`)
	require.NoError(t, err)
	vd := mod.Block.Stmts[0].(*ast.VarDecl)
	bin := vd.Right.(*ast.Binary)
	require.Equal(t, token.PLUS, bin.Op)
	rhs := bin.Right.(*ast.Binary)
	require.Equal(t, token.STAR, rhs.Op)
}

func TestParseComparisonAndLogic(t *testing.T) {
	mod, err := parseString(t, `x := 1 < 2 and 3 <= 4 or not 5 == 6
`)
	require.NoError(t, err)
	vd := mod.Block.Stmts[0].(*ast.VarDecl)
	top := vd.Right.(*ast.Binary)
	require.Equal(t, token.OR, top.Op)
}

func TestParseUnary(t *testing.T) {
	mod, err := parseString(t, `x := -1
y := !true
`)
	require.NoError(t, err)
	vd := mod.Block.Stmts[0].(*ast.VarDecl)
	u := vd.Right.(*ast.Unary)
	require.Equal(t, token.MINUS, u.Op)
}

func TestParseCallAndAccess(t *testing.T) {
	mod, err := parseString(t, `y := f(1, 2).field
`)
	require.NoError(t, err)
	vd := mod.Block.Stmts[0].(*ast.VarDecl)
	acc := vd.Right.(*ast.Access)
	require.Equal(t, "field", acc.Name)
	call := acc.X.(*ast.Call)
	require.Len(t, call.Args, 2)
	require.Equal(t, "f", call.Fun.(*ast.Identifier).Name)
}

func TestParseStructInit(t *testing.T) {
	mod, err := parseString(t, `p := Point{x = 1, y = 2}
`)
	require.NoError(t, err)
	vd := mod.Block.Stmts[0].(*ast.VarDecl)
	init := vd.Right.(*ast.Init)
	require.Equal(t, "Point", init.Type.Name)
	require.Len(t, init.Args, 2)
	require.Equal(t, "x", init.Args[0].Name)
}

func TestParseIfThenElse(t *testing.T) {
	mod, err := parseString(t, `if x < 1 then y = 1 else y = 2
`)
	require.NoError(t, err)
	n := mod.Block.Stmts[0].(*ast.If)
	require.IsType(t, &ast.Assign{}, n.Then)
	require.IsType(t, &ast.Assign{}, n.Else)
}

func TestParseIfBlockFormSuppressesInit(t *testing.T) {
	mod, err := parseString(t, `if x {
	y = 1
}
`)
	require.NoError(t, err)
	n := mod.Block.Stmts[0].(*ast.If)
	require.IsType(t, &ast.Identifier{}, n.Cond)
	block := n.Then.(*ast.Block)
	require.Len(t, block.Stmts, 1)
}

func TestParseWhile(t *testing.T) {
	mod, err := parseString(t, `while x < 10 {
	x = x + 1
}
`)
	require.NoError(t, err)
	n := mod.Block.Stmts[0].(*ast.While)
	block := n.Body.(*ast.Block)
	require.Len(t, block.Stmts, 1)
}

func TestParseFunDecl(t *testing.T) {
	mod, err := parseString(t, `fun add(a: int, b: int) int {
	return a + b
}
`)
	require.NoError(t, err)
	fd := mod.Block.Stmts[0].(*ast.FunDecl)
	require.Equal(t, "add", fd.Name)
	require.Len(t, fd.Params, 2)
	require.Equal(t, "int", fd.ReturnType.Name)
	require.Len(t, fd.Body.Stmts, 1)
}

func TestParseStructDecl(t *testing.T) {
	mod, err := parseString(t, `struct Point {
	x: int,
	y: int = 0,
}
`)
	require.NoError(t, err)
	s := mod.Block.Stmts[0].(*ast.Struct)
	require.Equal(t, "Point", s.Name)
	require.Len(t, s.Fields, 2)
	require.Equal(t, 0, s.Fields[0].Slot)
	require.Equal(t, 1, s.Fields[1].Slot)
	require.NotNil(t, s.Fields[1].Default)
}

func TestDeclarationsPartitionedToFront(t *testing.T) {
	mod, err := parseString(t, `x := 1
fun f() { return x }
y := 2
struct S { z: int }
`)
	require.NoError(t, err)
	b := mod.Block
	require.Equal(t, 2, b.DeclCount)
	require.Equal(t, []string{"fundecl", "struct", "vardecl", "vardecl"}, stmtKinds(b.Stmts))
}

func TestParseStructDeclWithoutCommas(t *testing.T) {
	// spec.md §8 scenario 6's struct has no commas between fields.
	mod, err := parseString(t, `struct Foo { a: int b: int }
`)
	require.NoError(t, err)
	s := mod.Block.Stmts[0].(*ast.Struct)
	require.Len(t, s.Fields, 2)
	require.Equal(t, "a", s.Fields[0].Name)
	require.Equal(t, "b", s.Fields[1].Name)
}

func TestParseInitWithoutCommas(t *testing.T) {
	mod, err := parseString(t, `struct Foo { a: int b: int }
foo := Foo { a = 35 b = 34 }
`)
	require.NoError(t, err)
	vd := mod.Block.Stmts[1].(*ast.VarDecl)
	init := vd.Right.(*ast.Init)
	require.Len(t, init.Args, 2)
	require.Equal(t, "a", init.Args[0].Name)
	require.Equal(t, "b", init.Args[1].Name)
}

func TestParseErrorReturnsNilModule(t *testing.T) {
	mod, err := parseString(t, `x := `)
	require.Error(t, err)
	require.Nil(t, mod)
}

func TestParseExprStatement(t *testing.T) {
	mod, err := parseString(t, `f(1)
`)
	require.NoError(t, err)
	es := mod.Block.Stmts[0].(*ast.ExprStmt)
	require.IsType(t, &ast.Call{}, es.X)
}

func TestInterningAcrossParse(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "in.nox")
	require.NoError(t, os.WriteFile(name, []byte("x := 1\ny := 1\n"), 0o644))

	_, mods, pool, err := parser.ParseFiles(context.Background(), name)
	require.NoError(t, err)
	mod := mods[0]

	a := mod.Block.Stmts[0].(*ast.VarDecl).Right.(*ast.Literal)
	b := mod.Block.Stmts[1].(*ast.VarDecl).Right.(*ast.Literal)
	require.Equal(t, a.ID, b.ID)
	require.Equal(t, "1", pool.Lookup(a.ID))
}
