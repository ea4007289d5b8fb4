// Package interp executes a *bytecode.Program on a register+stack virtual
// machine. Grounded on original_source/src/interpreter/interpreter.c's
// dispatch loop (fetch, advance ip, switch on opcode) and on the teacher's
// own machine.Thread/run split in lang/machine: a Thread carries the
// execution knobs (step budget, cancellation, output sink) and owns nothing
// about a particular run, while run (in exec.go) holds the actual registers
// and stack for one Program.
package interp

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/nox-lang/nox/lang/bytecode"
)

// NumRegisters is the size of the register bank. spec.md §4.6 requires at
// least 32; nox doesn't need more since codegen never allocates past what a
// single statement's expression tree needs.
const NumRegisters = bytecode.MinRegisters

// StackSize is the number of value-stack slots. spec.md §4.6 requires at
// least 1024.
const StackSize = 1024

// Thread holds the execution knobs for running a Program, mirroring the
// teacher's machine.Thread: reusable across runs, but only one Run at a
// time.
type Thread struct {
	// Stdout is where the Print instruction writes. Defaults to os.Stdout.
	Stdout io.Writer

	// MaxSteps bounds the number of dispatched instructions before the run
	// is cancelled as runaway. A value <= 0 means no limit.
	MaxSteps int

	ctx       context.Context
	ctxCancel func()
	cancelled atomic.Bool
	steps     uint64
	maxSteps  uint64
	stdout    io.Writer
}

func (th *Thread) init(ctx context.Context) {
	if th.MaxSteps <= 0 {
		th.maxSteps-- // wraps to math.MaxUint64: no limit
	} else {
		th.maxSteps = uint64(th.MaxSteps)
	}
	if th.Stdout != nil {
		th.stdout = th.Stdout
	} else {
		th.stdout = os.Stdout
	}
	ctx, cancel := context.WithCancel(ctx)
	th.ctx = ctx
	th.ctxCancel = cancel
	go func() {
		<-th.ctx.Done()
		th.cancelled.Store(true)
	}()
}

// Run executes prog to completion and returns the value left in the result
// register (register 2) at Exit, or an error if the program never reached
// Exit cleanly.
func (th *Thread) Run(ctx context.Context, prog *bytecode.Program) (int64, error) {
	th.init(ctx)
	defer th.ctxCancel()
	return run(th, prog)
}

// Run is a convenience entry point for a one-shot interpretation with no
// step limit and output to os.Stdout.
func Run(ctx context.Context, prog *bytecode.Program) (int64, error) {
	var th Thread
	return th.Run(ctx, prog)
}

// RuntimeError is a failure raised by the interpreter itself rather than a
// Go panic, per spec.md §7's "Runtime" error kind (division by zero, stack
// over/underflow, the Exit assertion).
type RuntimeError struct {
	Op  bytecode.Opcode
	IP  int32
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("interp: %s at ip=%d: %s", e.Op, e.IP, e.Msg)
}
