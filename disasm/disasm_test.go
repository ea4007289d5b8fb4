package disasm_test

import (
	"strings"
	"testing"

	"github.com/nox-lang/nox/disasm"
	"github.com/nox-lang/nox/lang/bytecode"
	"github.com/stretchr/testify/require"
)

func TestFormatLabelsAndFunctionHeader(t *testing.T) {
	prog := &bytecode.Program{
		Code: []bytecode.Instruction{
			{Op: bytecode.MovImm64, Dst: 3, Imm: 41},
			{Op: bytecode.Jmp, Addr: 2},
			{Op: bytecode.Exit},
		},
		Functions: []*bytecode.Function{
			{Name: "main", Addr: 0, NumParams: 0},
		},
	}

	out := disasm.Format(prog)
	require.Contains(t, out, "function: main params=0")
	require.Contains(t, out, "L0")
	require.Contains(t, out, "movimm64 r3, #41")
	require.Contains(t, out, "jmp      L2")
	require.True(t, strings.Contains(out, "exit"))
}
