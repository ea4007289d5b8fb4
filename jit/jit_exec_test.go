//go:build amd64 || arm64

package jit_test

import (
	"testing"

	"github.com/nox-lang/nox/jit"
	"github.com/nox-lang/nox/lang/bytecode"
	"github.com/nox-lang/nox/lang/interp"
	"github.com/stretchr/testify/require"
)

// TestCompileAndRunArithmetic exercises the native encoder end to end on
// whichever of amd64/arm64 this test binary targets: literal load, a Store
// to and Load from the value stack, an Add, a Mul, then Exit.
func TestCompileAndRunArithmetic(t *testing.T) {
	prog := &bytecode.Program{
		Code: []bytecode.Instruction{
			{Op: bytecode.MovImm64, Dst: 3, Imm: 6},
			{Op: bytecode.MovImm64, Dst: 4, Imm: 7},
			{Op: bytecode.Store, Dst: 0, Src: 3}, // stack[0] = 6
			{Op: bytecode.Load, Dst: 5, Src: 0},  // regs[5] = stack[0] == 6
			{Op: bytecode.Mul, Dst: 5, Src: 4},   // regs[5] = 6*7 = 42
			{Op: bytecode.Mov, Dst: bytecode.ResultReg, Src: 5},
			{Op: bytecode.Exit},
		},
	}

	compiled, ok := jit.Compile(prog)
	require.True(t, ok)
	defer compiled.Release()

	var regs [interp.NumRegisters]int64
	var stack [interp.StackSize]int64
	got := compiled.Run(&regs, &stack)
	require.Equal(t, int64(42), got)
}
