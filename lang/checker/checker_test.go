package checker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/checker"
	"github.com/nox-lang/nox/lang/parser"
	"github.com/stretchr/testify/require"
)

func checkString(t *testing.T, src string) (*checker.TypedTree, error) {
	t.Helper()
	dir := t.TempDir()
	name := filepath.Join(dir, "in.nox")
	require.NoError(t, os.WriteFile(name, []byte(src), 0o644))

	fset, mods, _, err := parser.ParseFiles(context.Background(), name)
	require.NoError(t, err)

	trees, err := checker.CheckFiles(context.Background(), fset, mods)
	if len(trees) == 0 {
		return nil, err
	}
	return trees[0], err
}

func TestCheckVarDeclInfersType(t *testing.T) {
	tree, err := checkString(t, `x := 1
y := x + 2
`)
	require.NoError(t, err)
	vd := tree.Module.Block.Stmts[1].(*ast.VarDecl)
	require.Equal(t, checker.IntType, tree.TypeOf(vd.Right))
}

func TestCheckAssignTypeMismatch(t *testing.T) {
	_, err := checkString(t, `x := 1
x = "oops"
`)
	require.Error(t, err)
}

func TestCheckUndefinedIdentifier(t *testing.T) {
	_, err := checkString(t, `y := x + 1
`)
	require.Error(t, err)
}

func TestCheckFunDeclAndCall(t *testing.T) {
	tree, err := checkString(t, `fun add(a: int, b: int) int {
	return a + b
}
x := add(1, 2)
`)
	require.NoError(t, err)
	fd := tree.Module.Block.Stmts[0].(*ast.FunDecl)
	sig := tree.Funcs[fd]
	require.Equal(t, checker.IntType, sig.Return)
	require.Equal(t, []checker.Type{checker.IntType, checker.IntType}, sig.Params)
}

func TestCheckCallArgCountMismatch(t *testing.T) {
	_, err := checkString(t, `fun add(a: int, b: int) int {
	return a + b
}
x := add(1)
`)
	require.Error(t, err)
}

func TestCheckCallArgTypeMismatch(t *testing.T) {
	_, err := checkString(t, `fun add(a: int, b: int) int {
	return a + b
}
x := add(1, "two")
`)
	require.Error(t, err)
}

func TestCheckReturnTypeMismatch(t *testing.T) {
	_, err := checkString(t, `fun f() int {
	return "nope"
}
`)
	require.Error(t, err)
}

func TestCheckTopLevelReturnMustBeInt(t *testing.T) {
	_, err := checkString(t, `return true
`)
	require.Error(t, err)
}

func TestCheckTopLevelReturnIntIsValid(t *testing.T) {
	// A return at module scope halts the program with an exit value rather
	// than returning from a function (see checker.checkReturn), so a bare
	// int return at the top level is allowed.
	_, err := checkString(t, `x := 1
return x
`)
	require.NoError(t, err)
}

func TestCheckIfConditionMustBeBool(t *testing.T) {
	_, err := checkString(t, `x := 1
if x {
	y := 2
}
`)
	require.Error(t, err)
}

func TestCheckWhileConditionMustBeBool(t *testing.T) {
	_, err := checkString(t, `x := 1
while x {
	x = x - 1
}
`)
	require.Error(t, err)
}

func TestCheckStructFieldsAndInit(t *testing.T) {
	tree, err := checkString(t, `struct Point {
	x: int,
	y: int = 0,
}
p := Point{x = 1, y = 2}
q := p.x
`)
	require.NoError(t, err)
	sd := tree.Structs["Point"]
	require.Len(t, sd.Fields, 2)
	require.Equal(t, checker.IntType, sd.Fields["x"].Type)

	s := tree.Module.Block.Stmts[0].(*ast.Struct)
	require.True(t, s.Decl())

	vd := tree.Module.Block.Stmts[2].(*ast.VarDecl)
	require.Equal(t, checker.IntType, tree.TypeOf(vd.Right))
}

func TestCheckInitUnknownField(t *testing.T) {
	_, err := checkString(t, `struct Point {
	x: int,
}
p := Point{z = 1}
`)
	require.Error(t, err)
}

func TestCheckForwardReferenceBetweenFunctions(t *testing.T) {
	_, err := checkString(t, `fun isEven(n: int) bool {
	if n == 0 then return true
	return isOdd(n - 1)
}
fun isOdd(n: int) bool {
	if n == 0 then return false
	return isEven(n - 1)
}
`)
	require.NoError(t, err)
}

func TestCheckThenFormBodyScopeIsolated(t *testing.T) {
	_, err := checkString(t, `x := 1
if x == 1 then y := 2
z := y
`)
	require.Error(t, err)
}

func TestCheckDuplicateStructRedeclared(t *testing.T) {
	_, err := checkString(t, `struct Point { x: int }
struct Point { y: int }
`)
	require.Error(t, err)
}

func TestCheckBinaryArithMismatch(t *testing.T) {
	_, err := checkString(t, `x := 1 + 2.0
`)
	require.Error(t, err)
}

func TestCheckLogicalOperatorRequiresBool(t *testing.T) {
	_, err := checkString(t, `x := 1 and 2
`)
	require.Error(t, err)
}

func TestCheckRealArithmeticRejected(t *testing.T) {
	_, err := checkString(t, `x := 1.5 + 2.5
`)
	require.Error(t, err)
}

func TestCheckRealUnaryMinusRejected(t *testing.T) {
	_, err := checkString(t, `x := 1.5
y := -x
`)
	require.Error(t, err)
}

func TestCheckRealOrderingRejected(t *testing.T) {
	_, err := checkString(t, `x := 1.5
y := x < 2.5
`)
	require.Error(t, err)
}

func TestCheckRealEqualityAllowed(t *testing.T) {
	_, err := checkString(t, `x := 1.5
y := x == 1.5
`)
	require.NoError(t, err)
}
