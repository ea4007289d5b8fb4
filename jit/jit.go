// Package jit selects one of jit/amd64 or jit/arm64 at build time to
// compile a *bytecode.Program directly to native machine code, per spec.md
// §4.7. Only a fixed opcode subset is eligible (MovImm64, Mov, Add, Mul,
// Store, Load, Exit); a program using anything else — including every
// control-flow and call opcode — fails Compile and the caller falls back
// to lang/interp.
package jit

import (
	"unsafe"

	"github.com/nox-lang/nox/lang/bytecode"
	"github.com/nox-lang/nox/lang/interp"
	"github.com/nox-lang/nox/jit/memory"
)

// eligible reports whether op belongs to the JIT's supported subset.
func eligible(op bytecode.Opcode) bool {
	switch op {
	case bytecode.MovImm64, bytecode.Mov, bytecode.Add, bytecode.Mul,
		bytecode.Store, bytecode.Load, bytecode.Exit:
		return true
	default:
		return false
	}
}

// archEncoder is the shape jit/amd64.Encoder and jit/arm64.Encoder both
// satisfy; defined here rather than imported, since the two packages have
// no common dependency of their own and this package selects between them
// per build tag.
type archEncoder interface {
	Code() []byte
	MovImm64(dst int32, imm int64)
	Mov(dst, src int32)
	Add(dst, src int32)
	Mul(dst, src int32)
	Load(dst, src int32)
	Store(dst, src int32)
	Exit()
}

func encode(enc archEncoder, prog *bytecode.Program) ([]byte, bool) {
	for _, in := range prog.Code {
		if !eligible(in.Op) {
			return nil, false
		}
	}
	for _, in := range prog.Code {
		switch in.Op {
		case bytecode.MovImm64:
			enc.MovImm64(in.Dst, in.Imm)
		case bytecode.Mov:
			enc.Mov(in.Dst, in.Src)
		case bytecode.Add:
			enc.Add(in.Dst, in.Src)
		case bytecode.Mul:
			enc.Mul(in.Dst, in.Src)
		case bytecode.Load:
			enc.Load(in.Dst, in.Src)
		case bytecode.Store:
			enc.Store(in.Dst, in.Src)
		case bytecode.Exit:
			enc.Exit()
		}
	}
	return enc.Code(), true
}

// Compiled is a native function compiled from a bytecode.Program, ready to
// be invoked with a register bank and value stack.
type Compiled struct {
	page *memory.Page
}

// Release frees the underlying executable page. The Compiled value must
// not be Run again afterward.
func (c *Compiled) Release() error { return c.page.Free() }

// nativeFn is the calling convention both jit/amd64 and jit/arm64 target:
// the register bank pointer, then the value-stack pointer, returning the
// value left in the result register.
type nativeFn func(regs *[interp.NumRegisters]int64, stack *[interp.StackSize]int64) int64

// Run invokes the compiled native code against regs/stack, exactly as
// lang/interp's own dispatch loop would have. Grounded on
// other_examples/launix-de-memcp's OptimizeForValues: constructing a Go
// func value whose only field is the raw code pointer is unsafe and relies
// on the current func-value representation, acknowledged there as such.
func (c *Compiled) Run(regs *[interp.NumRegisters]int64, stack *[interp.StackSize]int64) int64 {
	addr := c.page.Addr()
	fnVal := struct{ code uintptr }{code: addr}
	fn := *(*nativeFn)(unsafe.Pointer(&fnVal))
	return fn(regs, stack)
}

// Compile attempts to JIT-compile prog. ok is false if prog uses any
// opcode outside the JIT-eligible subset, or if the current build's
// architecture has no backend (see jit_amd64.go / jit_arm64.go /
// jit_other.go), and the caller should fall back to lang/interp.
func Compile(prog *bytecode.Program) (compiled *Compiled, ok bool) {
	code, ok := encodeForArch(prog)
	if !ok {
		return nil, false
	}
	page, err := memory.Alloc(code)
	if err != nil {
		return nil, false
	}
	return &Compiled{page: page}, true
}
