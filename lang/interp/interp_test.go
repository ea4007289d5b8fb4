package interp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nox-lang/nox/lang/checker"
	"github.com/nox-lang/nox/lang/codegen"
	"github.com/nox-lang/nox/lang/interp"
	"github.com/nox-lang/nox/lang/parser"
	"github.com/stretchr/testify/require"
)

func runString(t *testing.T, src string) (int64, error) {
	t.Helper()
	dir := t.TempDir()
	name := filepath.Join(dir, "in.nox")
	require.NoError(t, os.WriteFile(name, []byte(src), 0o644))

	fset, mods, _, err := parser.ParseFiles(context.Background(), name)
	require.NoError(t, err)

	trees, err := checker.CheckFiles(context.Background(), fset, mods)
	require.NoError(t, err)

	progs := codegen.CompileTrees(trees)
	require.Len(t, progs, 1)

	return interp.Run(context.Background(), progs[0])
}

func TestRunArithmetic(t *testing.T) {
	result, err := runString(t, `x := 1 + 2 * 3
return x
`)
	require.NoError(t, err)
	require.Equal(t, int64(7), result)
}

func TestRunIfElse(t *testing.T) {
	result, err := runString(t, `x := 10
if x > 5 {
	x = 1
} else {
	x = 2
}
return x
`)
	require.NoError(t, err)
	require.Equal(t, int64(1), result)
}

func TestRunWhileLoop(t *testing.T) {
	result, err := runString(t, `sum := 0
i := 0
while i < 5 {
	sum = sum + i
	i = i + 1
}
return sum
`)
	require.NoError(t, err)
	require.Equal(t, int64(10), result)
}

func TestRunFunctionCall(t *testing.T) {
	result, err := runString(t, `fun add(a: int, b: int) int {
	return a + b
}
return add(3, 4)
`)
	require.NoError(t, err)
	require.Equal(t, int64(7), result)
}

// TestRunMutualRecursionRestoresCallerBP exercises the caller-side bp
// save/restore around Call: isEven and isOdd each push their own bp before
// calling the other and pop it back after, so by the time either function's
// own return statement reads its parameter again, bp is exactly what it was
// before the nested call.
func TestRunMutualRecursionRestoresCallerBP(t *testing.T) {
	result, err := runString(t, `fun isEven(n: int) int {
	if n == 0 then return 1
	return isOdd(n - 1)
}
fun isOdd(n: int) int {
	if n == 0 then return 0
	return isEven(n - 1)
}
return isEven(10)
`)
	require.NoError(t, err)
	require.Equal(t, int64(1), result)
}

func TestRunRecursiveFactorial(t *testing.T) {
	result, err := runString(t, `fun fact(n: int) int {
	if n == 0 then return 1
	return n * fact(n - 1)
}
return fact(5)
`)
	require.NoError(t, err)
	require.Equal(t, int64(120), result)
}

func TestRunDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := runString(t, `x := 1
y := 0
return x / y
`)
	require.Error(t, err)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
}

func TestRunModuloByZeroIsRuntimeError(t *testing.T) {
	_, err := runString(t, `x := 1
y := 0
return x % y
`)
	require.Error(t, err)
}

func TestRunLogicalAndShortCircuit(t *testing.T) {
	result, err := runString(t, `x := 0 == 1 and 1 == 1
return x
`)
	require.NoError(t, err)
	require.Equal(t, int64(0), result)
}

func TestRunLogicalOrShortCircuit(t *testing.T) {
	result, err := runString(t, `x := 1 == 1 or 0 == 1
return x
`)
	require.NoError(t, err)
	require.Equal(t, int64(1), result)
}

// TestRunStructInitAndAccess is spec.md §8 scenario 6: a struct literal's
// fields round-trip through consecutive stack slots and back out again via
// field access.
func TestRunStructInitAndAccess(t *testing.T) {
	result, err := runString(t, `struct Foo {
	a: int
	b: int
}
foo := Foo { a = 35 b = 34 }
return foo.a + foo.b
`)
	require.NoError(t, err)
	require.Equal(t, int64(69), result)
}

func TestRunStructAssignCopiesFields(t *testing.T) {
	result, err := runString(t, `struct Point {
	x: int
	y: int
}
a := Point { x = 1 y = 2 }
b := a
return a.x + b.y
`)
	require.NoError(t, err)
	require.Equal(t, int64(3), result)
}
