package codegen

import "github.com/nox-lang/nox/lang/ast"

// localScope is a block's variable-to-slot table, chained to its parent
// block's table. Mirrors checker.scopeTable's shape but maps a name to its
// stack-relative slot (an offset from bp) instead of a Binding, since by
// codegen time every name has already been validated by the checker.
type localScope struct {
	parent *localScope
	slots  map[string]int32
}

func newLocalScope(parent *localScope) *localScope {
	return &localScope{parent: parent, slots: make(map[string]int32)}
}

func (s *localScope) define(name string, slot int32) { s.slots[name] = slot }

func (s *localScope) lookup(name string) (int32, bool) {
	for t := s; t != nil; t = t.parent {
		if slot, ok := t.slots[name]; ok {
			return slot, true
		}
	}
	return 0, false
}

// funcGen holds the per-function state of code generation: the next free
// register (spec.md §4.5's "running counter... bottom up"), the locals
// scope chain, and the next free frame slot for a new local (locals are
// materialized with Push immediately after their initializer is computed,
// so slot N is always the Nth local pushed since the function prologue).
type funcGen struct {
	c        *cg
	fn       *ast.FunDecl // nil for the top-level module body
	locals   *localScope
	nextReg  int32
	nextSlot int32
}

func newFuncGen(c *cg, fn *ast.FunDecl) *funcGen {
	return &funcGen{c: c, fn: fn, locals: newLocalScope(nil), nextReg: firstTempReg}
}

// firstTempReg is the first register available for expression temporaries;
// 0 and 1 are bp/sp, 2 is the reserved result register.
const firstTempReg = 3

// allocReg returns the next free temporary register, wrapping back to
// firstTempReg at the end of every statement, nested ones included, via
// resetRegs. Nox
// has no register allocator (Non-goal per spec.md §1): expressions simply
// burn registers bottom-up and release them all at once between
// statements, which is sufficient since no statement's temporaries need to
// outlive it.
func (f *funcGen) allocReg() int32 {
	r := f.nextReg
	f.nextReg++
	return r
}

func (f *funcGen) resetRegs() { f.nextReg = firstTempReg }

func (f *funcGen) pushScope() { f.locals = newLocalScope(f.locals) }
func (f *funcGen) popScope()  { f.locals = f.locals.parent }
