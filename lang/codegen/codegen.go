// Package codegen lowers a checked *checker.TypedTree into a
// *bytecode.Program: a flat, fully patched instruction sequence ready for
// the interpreter or the JIT.
//
// Grounded on the teacher's `lang/compiler/compiler.go` two-pass
// pcomp/fcomp split (one compiler-wide pass over constants/functions, one
// per-function pass over its body), simplified from the teacher's CFG/
// basic-block linearization to direct backpatching: since nox's register
// machine has no need for the teacher's jump-threading (no defer/catch
// blocks, no iterators), every jump target is known either immediately
// (a backward while-loop jump) or by remembering the instruction's index
// and patching it once the target position is reached.
package codegen

import (
	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/bytecode"
	"github.com/nox-lang/nox/lang/checker"
)

// CompileTrees lowers each TypedTree into a Program. A nil entry (a module
// that failed type checking) produces a nil Program at the same index.
func CompileTrees(trees []*checker.TypedTree) []*bytecode.Program {
	if len(trees) == 0 {
		return nil
	}
	progs := make([]*bytecode.Program, len(trees))
	for i, t := range trees {
		if t == nil {
			continue
		}
		progs[i] = compileModule(t)
	}
	return progs
}

// callPatch records a Call instruction whose target function hadn't been
// emitted yet at the point it was generated.
type callPatch struct {
	pc   int32
	name string
}

// cg holds state shared across an entire Program's generation.
type cg struct {
	tree     *checker.TypedTree
	prog     *bytecode.Program
	code     []bytecode.Instruction
	funcAddr map[string]int32
	patches  []callPatch

	// exitPatches holds the Jmp instructions emitted for a module-scope
	// return (see funcGen.returnStmt); each is patched to the module's Exit
	// instruction once it's emitted, since a top-level return halts the
	// program rather than popping a call frame.
	exitPatches []int32
}

func compileModule(tree *checker.TypedTree) *bytecode.Program {
	c := &cg{
		tree:     tree,
		prog:     &bytecode.Program{Filename: tree.Module.Name},
		funcAddr: make(map[string]int32),
	}

	mod := tree.Module
	top := &bytecode.Function{Name: "", Addr: int32(len(c.code))}
	c.prog.Functions = append(c.prog.Functions, top)

	fc := newFuncGen(c, nil)
	for _, s := range mod.Block.Stmts[mod.Block.DeclCount:] {
		fc.stmt(s)
	}
	exitAddr := c.emit(bytecode.Instruction{Op: bytecode.Exit})
	for _, pc := range c.exitPatches {
		c.patch(pc, exitAddr)
	}

	for _, s := range mod.Block.Stmts[:mod.Block.DeclCount] {
		if fd, ok := s.(*ast.FunDecl); ok {
			c.compileFunc(fd)
		}
	}

	for _, p := range c.patches {
		addr, ok := c.funcAddr[p.name]
		if !ok {
			panic("codegen: unresolved call target " + p.name)
		}
		c.code[p.pc].Addr = addr
	}

	c.prog.Code = c.code
	return c.prog
}

func (c *cg) compileFunc(fd *ast.FunDecl) {
	addr := int32(len(c.code))
	c.funcAddr[fd.Name] = addr
	c.prog.Functions = append(c.prog.Functions, &bytecode.Function{
		Name: fd.Name, Addr: addr, NumParams: len(fd.Params),
	})

	// Prologue: bp := sp. At this point sp sits just above the return
	// address Call pushed, with the caller's args below that in order, so
	// bp becomes the fixed point every bp-relative Load/Store in this
	// function's body is addressed from.
	c.emit(bytecode.Instruction{Op: bytecode.Mov, Dst: bytecode.BaseReg, Src: bytecode.StackReg})

	fc := newFuncGen(c, fd)
	for i, p := range fd.Params {
		// Params sit below the return address, at negative offsets from bp:
		// arg i is at bp-(N+1-i), matching spec.md §4.5's calling convention
		// (caller pushes args in order, Call pushes the return address).
		fc.locals.define(p.Name, int32(i-(len(fd.Params)+1)))
	}

	for _, s := range fd.Body.Block.Stmts[fd.Body.Block.DeclCount:] {
		fc.stmt(s)
	}
	// A function whose body doesn't end in an explicit return still needs a
	// Ret so control returns to the caller instead of falling into the next
	// function's code.
	c.emit(bytecode.Instruction{Op: bytecode.Ret})
}

func (c *cg) emit(in bytecode.Instruction) int32 {
	pc := int32(len(c.code))
	c.code = append(c.code, in)
	return pc
}

// here returns the address the next emitted instruction will have.
func (c *cg) here() int32 { return int32(len(c.code)) }

// patch sets the Addr of the jump/call instruction at pc to target.
func (c *cg) patch(pc int32, target int32) { c.code[pc].Addr = target }
