package jit_test

import (
	"testing"

	"github.com/nox-lang/nox/jit"
	"github.com/nox-lang/nox/lang/bytecode"
	"github.com/stretchr/testify/require"
)

func TestCompileRejectsControlFlow(t *testing.T) {
	// JmpZero falls outside the JIT-eligible subset (spec.md §4.7 names only
	// MovImm64, Mov, Add, Mul, Store, Load, Exit), so any program using it
	// must fail Compile and let the caller fall back to lang/interp.
	prog := &bytecode.Program{
		Code: []bytecode.Instruction{
			{Op: bytecode.MovImm64, Dst: 3, Imm: 0},
			{Op: bytecode.JmpZero, Src: 3, Addr: 2},
			{Op: bytecode.Exit},
		},
	}
	_, ok := jit.Compile(prog)
	require.False(t, ok)
}

func TestCompileRejectsCall(t *testing.T) {
	prog := &bytecode.Program{
		Code: []bytecode.Instruction{
			{Op: bytecode.Call, Addr: 0},
			{Op: bytecode.Exit},
		},
	}
	_, ok := jit.Compile(prog)
	require.False(t, ok)
}
