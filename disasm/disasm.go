// Package disasm pretty-prints a bytecode.Program back to a textual
// pseudo-assembly, grounded on lang/compiler/asm.go's Dasm (per-function
// text with `opcode dst, src`/`opcode dst, #imm`/`opcode label` payload
// shapes) and original_source/src/code_generator/disassembler.c's
// per-opcode column layout (`disassemble_instruction`'s `%-10s r%-9x
// r%-9x` formatting, one mnemonic plus its operands per line).
package disasm

import (
	"fmt"
	"strings"

	"github.com/nox-lang/nox/lang/bytecode"
)

// Format renders prog as one line per instruction, each prefixed with a
// synthesized label "L<pc>" (spec.md §6.5's naming), and a "function:"
// header immediately before the first instruction of each Function.
func Format(prog *bytecode.Program) string {
	funcAt := make(map[int32]*bytecode.Function, len(prog.Functions))
	for _, fn := range prog.Functions {
		funcAt[fn.Addr] = fn
	}

	var b strings.Builder
	for i, in := range prog.Code {
		addr := int32(i)
		if fn, ok := funcAt[addr]; ok {
			fmt.Fprintf(&b, "function: %s params=%d\n", fn.Name, fn.NumParams)
		}
		fmt.Fprintf(&b, "  L%-5d %s\n", addr, formatInstruction(in))
	}
	return b.String()
}

// formatInstruction mirrors bytecode.Instruction.String()'s per-ArgKind
// dispatch, but spells jump targets as "L<addr>" labels instead of bare
// integers, since that's this package's whole job.
func formatInstruction(in bytecode.Instruction) string {
	switch in.Op.ArgKind() {
	case bytecode.KindImm:
		return fmt.Sprintf("%-8s r%d, #%d", in.Op, in.Dst, in.Imm)
	case bytecode.KindJump:
		switch in.Op {
		case bytecode.Jmp, bytecode.Call:
			return fmt.Sprintf("%-8s L%d", in.Op, in.Addr)
		case bytecode.JmpZero:
			return fmt.Sprintf("%-8s r%d, L%d", in.Op, in.Src, in.Addr)
		default:
			return in.Op.String()
		}
	default:
		switch in.Op {
		case bytecode.Push, bytecode.Print:
			return fmt.Sprintf("%-8s r%d", in.Op, in.Src)
		case bytecode.Pop:
			return fmt.Sprintf("%-8s r%d", in.Op, in.Dst)
		case bytecode.Ret, bytecode.Exit:
			return in.Op.String()
		default:
			return fmt.Sprintf("%-8s r%d, r%d", in.Op, in.Dst, in.Src)
		}
	}
}
