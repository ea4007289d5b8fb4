package codegen_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nox-lang/nox/lang/bytecode"
	"github.com/nox-lang/nox/lang/checker"
	"github.com/nox-lang/nox/lang/codegen"
	"github.com/nox-lang/nox/lang/parser"
	"github.com/stretchr/testify/require"
)

func compileString(t *testing.T, src string) *bytecode.Program {
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
	return progs[0]
}

func opcodes(prog *bytecode.Program) []bytecode.Opcode {
	ops := make([]bytecode.Opcode, len(prog.Code))
	for i, in := range prog.Code {
		ops[i] = in.Op
	}
	return ops
}

func TestCompileVarDeclEndsWithExit(t *testing.T) {
	prog := compileString(t, `x := 1
`)
	ops := opcodes(prog)
	require.Equal(t, bytecode.MovImm64, ops[0])
	require.Equal(t, bytecode.Push, ops[1])
	require.Equal(t, bytecode.Exit, ops[len(ops)-1])
}

func TestCompileArithmeticPlacesResultInLeftRegister(t *testing.T) {
	prog := compileString(t, `x := 1 + 2
`)
	// MovImm64 r3, 1 ; MovImm64 r4, 2 ; Add r3, r4 -- the left operand's
	// register (r3) is reused as the Add's destination.
	require.Equal(t, bytecode.MovImm64, prog.Code[0].Op)
	require.Equal(t, bytecode.MovImm64, prog.Code[1].Op)
	require.Equal(t, bytecode.Add, prog.Code[2].Op)
	require.Equal(t, prog.Code[0].Dst, prog.Code[2].Dst)
}

func TestCompileIfEmitsJmpZero(t *testing.T) {
	prog := compileString(t, `x := 1
if x == 1 then x = 2
`)
	require.Contains(t, opcodes(prog), bytecode.JmpZero)
}

func TestCompileWhileJumpsBackward(t *testing.T) {
	prog := compileString(t, `x := 0
while x < 10 {
	x = x + 1
}
`)
	var jmpCount int
	for _, in := range prog.Code {
		if in.Op == bytecode.Jmp {
			jmpCount++
			require.LessOrEqual(t, int(in.Addr), len(prog.Code))
		}
	}
	require.Equal(t, 1, jmpCount)
}

func TestCompileFunctionCallPushesArgsAndCalls(t *testing.T) {
	prog := compileString(t, `fun add(a: int, b: int) int {
	return a + b
}
x := add(1, 2)
`)
	require.Len(t, prog.Functions, 2)
	require.Equal(t, "add", prog.Functions[1].Name)

	var sawCall bool
	for _, in := range prog.Code {
		if in.Op == bytecode.Call {
			sawCall = true
			require.Equal(t, prog.Functions[1].Addr, in.Addr)
		}
	}
	require.True(t, sawCall)
}

func TestCompileForwardCallPatchesAddress(t *testing.T) {
	prog := compileString(t, `fun isEven(n: int) bool {
	if n == 0 then return true
	return isOdd(n - 1)
}
fun isOdd(n: int) bool {
	if n == 0 then return false
	return isEven(n - 1)
}
`)
	byName := make(map[string]int32)
	for _, fn := range prog.Functions {
		byName[fn.Name] = fn.Addr
	}
	for _, in := range prog.Code {
		if in.Op == bytecode.Call {
			require.Contains(t, []int32{byName["isEven"], byName["isOdd"]}, in.Addr)
		}
	}
}

func TestCompileLogicalAndShortCircuits(t *testing.T) {
	prog := compileString(t, `x := 1 == 1 and 2 == 2
`)
	require.Contains(t, opcodes(prog), bytecode.JmpZero)
	require.Contains(t, opcodes(prog), bytecode.Mov)
}

func TestCompileStructInitStoresFieldsAndAccessLoadsThem(t *testing.T) {
	// spec.md §8 scenario 6.
	prog := compileString(t, `struct Foo { a: int b: int }
foo := Foo { a = 35 b = 34 }
return foo.a + foo.b
`)
	var stores, loads int
	for _, in := range prog.Code {
		switch in.Op {
		case bytecode.Store:
			stores++
		case bytecode.Load:
			loads++
		}
	}
	// Two field stores for the Init, two field loads for the two Access
	// expressions in "foo.a + foo.b".
	require.Equal(t, 2, stores)
	require.Equal(t, 2, loads)
	require.Contains(t, opcodes(prog), bytecode.Add)
}
