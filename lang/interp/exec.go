package interp

import (
	"context"
	"fmt"

	"github.com/nox-lang/nox/lang/bytecode"
)

func run(th *Thread, prog *bytecode.Program) (int64, error) {
	var regs [NumRegisters]int64
	var stack [StackSize]int64

	code := prog.Code
	var ip int32

loop:
	for {
		th.steps++
		if th.steps >= th.maxSteps {
			th.ctxCancel()
			return 0, &RuntimeError{IP: ip, Msg: "step limit exceeded"}
		}
		if th.cancelled.Load() {
			return 0, &RuntimeError{IP: ip, Msg: fmt.Sprintf("cancelled: %v", context.Cause(th.ctx))}
		}

		if ip < 0 || int(ip) >= len(code) {
			return 0, &RuntimeError{IP: ip, Msg: "instruction pointer out of range"}
		}
		in := code[ip]
		pc := ip
		ip++

		bp := &regs[bytecode.BaseReg]
		sp := &regs[bytecode.StackReg]

		switch in.Op {
		case bytecode.MovImm64:
			regs[in.Dst] = in.Imm

		case bytecode.Mov:
			regs[in.Dst] = regs[in.Src]

		case bytecode.Add:
			regs[in.Dst] += regs[in.Src]
		case bytecode.Sub:
			regs[in.Dst] -= regs[in.Src]
		case bytecode.Mul:
			regs[in.Dst] *= regs[in.Src]
		case bytecode.Div:
			if regs[in.Src] == 0 {
				return 0, &RuntimeError{Op: in.Op, IP: pc, Msg: "division by zero"}
			}
			regs[in.Dst] /= regs[in.Src]
		case bytecode.Mod:
			if regs[in.Src] == 0 {
				return 0, &RuntimeError{Op: in.Op, IP: pc, Msg: "modulo by zero"}
			}
			regs[in.Dst] %= regs[in.Src]

		case bytecode.Lt:
			regs[in.Dst] = b2i(regs[in.Dst] < regs[in.Src])
		case bytecode.Le:
			regs[in.Dst] = b2i(regs[in.Dst] <= regs[in.Src])
		case bytecode.Eq:
			regs[in.Dst] = b2i(regs[in.Dst] == regs[in.Src])
		case bytecode.Ne:
			regs[in.Dst] = b2i(regs[in.Dst] != regs[in.Src])
		case bytecode.Ge:
			regs[in.Dst] = b2i(regs[in.Dst] >= regs[in.Src])
		case bytecode.Gt:
			regs[in.Dst] = b2i(regs[in.Dst] > regs[in.Src])

		case bytecode.Load:
			idx := *bp + int64(in.Src)
			if idx < 0 || int(idx) >= len(stack) {
				return 0, &RuntimeError{Op: in.Op, IP: pc, Msg: "stack load out of range"}
			}
			regs[in.Dst] = stack[idx]
		case bytecode.Store:
			idx := *bp + int64(in.Dst)
			if idx < 0 || int(idx) >= len(stack) {
				return 0, &RuntimeError{Op: in.Op, IP: pc, Msg: "stack store out of range"}
			}
			stack[idx] = regs[in.Src]

		case bytecode.Jmp:
			ip = in.Addr
		case bytecode.JmpZero:
			if regs[in.Src] == 0 {
				ip = in.Addr
			}

		case bytecode.Print:
			fmt.Fprintln(th.stdout, regs[in.Src])

		case bytecode.Call:
			if int(*sp) >= len(stack) {
				return 0, &RuntimeError{Op: in.Op, IP: pc, Msg: "stack overflow"}
			}
			stack[*sp] = int64(ip)
			*sp++
			ip = in.Addr
		case bytecode.Ret:
			if *sp <= 0 {
				return 0, &RuntimeError{Op: in.Op, IP: pc, Msg: "stack underflow"}
			}
			*sp--
			ip = int32(stack[*sp])

		case bytecode.Push:
			if int(*sp) >= len(stack) {
				return 0, &RuntimeError{Op: in.Op, IP: pc, Msg: "stack overflow"}
			}
			stack[*sp] = regs[in.Src]
			*sp++
		case bytecode.Pop:
			if *sp <= 0 {
				return 0, &RuntimeError{Op: in.Op, IP: pc, Msg: "stack underflow"}
			}
			*sp--
			regs[in.Dst] = stack[*sp]

		case bytecode.Exit:
			// spec.md §4.6's Exit assertion only covers bp, not sp: module-
			// level locals (see DESIGN.md) deliberately stay resident on the
			// value stack for the program's lifetime, so sp != 0 at a clean
			// exit is expected, not an error.
			if *bp != 0 {
				return 0, &RuntimeError{Op: in.Op, IP: pc, Msg: "base pointer not restored at exit"}
			}
			break loop

		default:
			return 0, &RuntimeError{Op: in.Op, IP: pc, Msg: "unsupported opcode"}
		}
	}

	return regs[bytecode.ResultReg], nil
}

func b2i(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
