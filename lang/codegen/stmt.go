package codegen

import (
	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/bytecode"
	"github.com/nox-lang/nox/lang/checker"
)

func (f *funcGen) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		f.varDecl(n)
	case *ast.Assign:
		f.assign(n)
	case *ast.ExprStmt:
		f.expr(n.X)
	case *ast.If:
		f.ifStmt(n)
	case *ast.While:
		f.whileStmt(n)
	case *ast.Return:
		f.returnStmt(n)
	case *ast.Block:
		f.block(n)
	}
	f.resetRegs()
}

func (f *funcGen) block(b *ast.Block) {
	f.pushScope()
	for _, s := range b.Stmts[b.DeclCount:] {
		f.stmt(s)
	}
	f.popScope()
}

// bodyStmt runs s as an if/while body, which may be a then-form bare
// statement or a block; either way it gets its own scope so a then-form
// local doesn't outlive the statement, mirroring checker.checkStmtAsBody.
func (f *funcGen) bodyStmt(s ast.Stmt) {
	if b, ok := s.(*ast.Block); ok {
		f.block(b)
		return
	}
	f.pushScope()
	f.stmt(s)
	f.popScope()
}

func (f *funcGen) varDecl(n *ast.VarDecl) {
	if t := f.c.tree.TypeOf(n.Left); t.Kind == checker.StructKind {
		f.structVarDecl(n, t)
		return
	}
	r := f.expr(n.Right)
	slot := f.nextSlot
	f.nextSlot++
	f.c.emit(bytecode.Instruction{Op: bytecode.Push, Src: r})
	f.locals.define(n.Left.Name, slot)
}

// structVarDecl materializes a struct-typed local as a run of consecutive
// stack slots, one per field (spec.md §4.2's field declaration offsets),
// reserved with one Push per field so the rest of the frame's slot
// accounting (funcGen.nextSlot) stays correct for locals declared after it.
func (f *funcGen) structVarDecl(n *ast.VarDecl, t checker.Type) {
	sd := f.c.tree.Structs[t.Name]
	base := f.nextSlot
	zero := f.allocReg()
	f.c.emit(bytecode.Instruction{Op: bytecode.MovImm64, Dst: zero, Imm: 0})
	for range sd.Order {
		f.c.emit(bytecode.Instruction{Op: bytecode.Push, Src: zero})
		f.nextSlot++
	}
	f.storeStruct(base, n.Right, sd)
	f.locals.define(n.Left.Name, base)
}

func (f *funcGen) assign(n *ast.Assign) {
	slot, ok := f.locals.lookup(n.Left.Name)
	if !ok {
		panic("codegen: assign to unresolved name " + n.Left.Name)
	}
	if t := f.c.tree.TypeOf(n.Left); t.Kind == checker.StructKind {
		f.storeStruct(slot, n.Right, f.c.tree.Structs[t.Name])
		return
	}
	r := f.expr(n.Right)
	f.c.emit(bytecode.Instruction{Op: bytecode.Store, Dst: slot, Src: r})
}

func (f *funcGen) ifStmt(n *ast.If) {
	cond := f.expr(n.Cond)
	jz := f.c.emit(bytecode.Instruction{Op: bytecode.JmpZero, Src: cond})

	f.bodyStmt(n.Then)

	if n.Else == nil {
		f.c.patch(jz, f.c.here())
		return
	}

	jmpEnd := f.c.emit(bytecode.Instruction{Op: bytecode.Jmp})
	f.c.patch(jz, f.c.here())
	f.bodyStmt(n.Else)
	f.c.patch(jmpEnd, f.c.here())
}

func (f *funcGen) whileStmt(n *ast.While) {
	condAddr := f.c.here()
	cond := f.expr(n.Cond)
	jz := f.c.emit(bytecode.Instruction{Op: bytecode.JmpZero, Src: cond})

	f.bodyStmt(n.Body)
	f.c.emit(bytecode.Instruction{Op: bytecode.Jmp, Addr: condAddr})

	f.c.patch(jz, f.c.here())
}

func (f *funcGen) returnStmt(n *ast.Return) {
	if n.X != nil {
		r := f.expr(n.X)
		if r != bytecode.ResultReg {
			f.c.emit(bytecode.Instruction{Op: bytecode.Mov, Dst: bytecode.ResultReg, Src: r})
		}
	}
	if f.fn == nil {
		// A module-scope return halts the program outright; there is no call
		// frame to pop, so jump straight to Exit instead of Ret. The target
		// isn't known yet (Exit is emitted once the whole module body has
		// been generated), so record this Jmp for compileModule to patch.
		pc := f.c.emit(bytecode.Instruction{Op: bytecode.Jmp})
		f.c.exitPatches = append(f.c.exitPatches, pc)
		return
	}
	f.c.emit(bytecode.Instruction{Op: bytecode.Ret})
}
