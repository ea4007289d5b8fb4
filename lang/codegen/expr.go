package codegen

import (
	"math"
	"strconv"

	"github.com/nox-lang/nox/lang/ast"
	"github.com/nox-lang/nox/lang/bytecode"
	"github.com/nox-lang/nox/lang/checker"
	"github.com/nox-lang/nox/lang/token"
)

// arithOp and compareOp map a token operator to its bytecode opcode; both
// ranges are contiguous and in the same relative order in both enums, but
// kept as explicit tables rather than arithmetic on the token value so a
// reordering of either enum can't silently desync the other.
var arithOp = map[token.Token]bytecode.Opcode{
	token.PLUS:    bytecode.Add,
	token.MINUS:   bytecode.Sub,
	token.STAR:    bytecode.Mul,
	token.SLASH:   bytecode.Div,
	token.PERCENT: bytecode.Mod,
}

var compareOp = map[token.Token]bytecode.Opcode{
	token.LT:   bytecode.Lt,
	token.LE:   bytecode.Le,
	token.EQEQ: bytecode.Eq,
	token.NEQ:  bytecode.Ne,
	token.GE:   bytecode.Ge,
	token.GT:   bytecode.Gt,
}

// expr generates code to evaluate x, returning the register holding its
// result. Registers are never reused within a statement (funcGen.allocReg
// only ever counts up, reset between statements by resetRegs). A callee
// allocates its own temporaries from firstTempReg as well, so funcGen.call
// saves the registers already in use around the call.
func (f *funcGen) expr(x ast.Expr) int32 {
	switch n := x.(type) {
	case *ast.Literal:
		return f.literal(n)
	case *ast.Identifier:
		return f.identifier(n)
	case *ast.Unary:
		return f.unary(n)
	case *ast.Binary:
		return f.binary(n)
	case *ast.Call:
		return f.call(n)
	case *ast.Access:
		return f.access(n)
	case *ast.Init:
		return f.init(n)
	default:
		panic("codegen: cannot generate expression of unknown type")
	}
}

func (f *funcGen) literal(n *ast.Literal) int32 {
	r := f.allocReg()
	var imm int64
	switch n.Kind {
	case token.INT:
		v, _ := strconv.ParseInt(n.Raw, 10, 64)
		imm = v
	case token.FLOAT:
		// Stored as raw IEEE-754 bits in an otherwise-int64 register. The
		// register machine has no float opcodes to operate on those bits
		// correctly (Add/Sub/Mul/Div/ordering all treat the register as a
		// two's-complement int64), so checker.checkBinary/checkUnary refuse
		// arithmetic and ordering on a real operand before it ever reaches
		// here; a real literal still lowers fine as an opaque value for
		// assignment, equality, Print, and struct fields.
		v, _ := strconv.ParseFloat(n.Raw, 64)
		imm = int64(math.Float64bits(v))
	case token.STRING:
		// The register machine has no string type (spec.md §4.6 only
		// specifies integer/real arithmetic); a string literal lowers to
		// its interned id so Print and equality still have something
		// concrete to operate on.
		imm = int64(n.ID)
	case token.TRUE:
		imm = 1
	case token.FALSE:
		imm = 0
	}
	f.c.emit(bytecode.Instruction{Op: bytecode.MovImm64, Dst: r, Imm: imm})
	return r
}

func (f *funcGen) identifier(n *ast.Identifier) int32 {
	slot, ok := f.locals.lookup(n.Name)
	if !ok {
		panic("codegen: unresolved identifier " + n.Name)
	}
	r := f.allocReg()
	f.c.emit(bytecode.Instruction{Op: bytecode.Load, Dst: r, Src: slot})
	return r
}

func (f *funcGen) unary(n *ast.Unary) int32 {
	x := f.expr(n.X)
	switch n.Op {
	case token.MINUS:
		zero := f.allocReg()
		f.c.emit(bytecode.Instruction{Op: bytecode.MovImm64, Dst: zero, Imm: 0})
		f.c.emit(bytecode.Instruction{Op: bytecode.Sub, Dst: zero, Src: x})
		return zero
	case token.BANG, token.NOT:
		zero := f.allocReg()
		f.c.emit(bytecode.Instruction{Op: bytecode.MovImm64, Dst: zero, Imm: 0})
		f.c.emit(bytecode.Instruction{Op: bytecode.Eq, Dst: zero, Src: x})
		return zero
	default:
		panic("codegen: unrecognized unary operator " + n.Op.String())
	}
}

func (f *funcGen) binary(n *ast.Binary) int32 {
	if n.Op == token.AND {
		return f.logicalAnd(n)
	}
	if n.Op == token.OR {
		return f.logicalOr(n)
	}

	l := f.expr(n.Left)
	r := f.expr(n.Right)
	if op, ok := arithOp[n.Op]; ok {
		f.c.emit(bytecode.Instruction{Op: op, Dst: l, Src: r})
		return l
	}
	if op, ok := compareOp[n.Op]; ok {
		f.c.emit(bytecode.Instruction{Op: op, Dst: l, Src: r})
		return l
	}
	panic("codegen: unrecognized binary operator " + n.Op.String())
}

// logicalAnd short-circuits: if Left is false, Right is never evaluated and
// the result (Left's register) stays 0.
func (f *funcGen) logicalAnd(n *ast.Binary) int32 {
	l := f.expr(n.Left)
	skip := f.c.emit(bytecode.Instruction{Op: bytecode.JmpZero, Src: l})
	r := f.expr(n.Right)
	f.c.emit(bytecode.Instruction{Op: bytecode.Mov, Dst: l, Src: r})
	f.c.patch(skip, f.c.here())
	return l
}

// logicalOr short-circuits: if Left is true, Right is never evaluated and
// the result (Left's register, already 1) is kept.
func (f *funcGen) logicalOr(n *ast.Binary) int32 {
	l := f.expr(n.Left)
	evalRight := f.c.emit(bytecode.Instruction{Op: bytecode.JmpZero, Src: l})
	skip := f.c.emit(bytecode.Instruction{Op: bytecode.Jmp})
	f.c.patch(evalRight, f.c.here())
	r := f.expr(n.Right)
	f.c.emit(bytecode.Instruction{Op: bytecode.Mov, Dst: l, Src: r})
	f.c.patch(skip, f.c.here())
	return l
}

func (f *funcGen) call(n *ast.Call) int32 {
	ident := n.Fun.(*ast.Identifier)

	// Registers already holding a sibling subexpression's value (the left
	// operand of "n * fact(n - 1)") would be overwritten by the callee's own
	// temporaries; push them here and pop them back after the call.
	live := f.nextReg
	for r := int32(firstTempReg); r < live; r++ {
		f.c.emit(bytecode.Instruction{Op: bytecode.Push, Src: r})
	}

	// The callee's prologue overwrites bp with its own frame pointer and
	// never restores it (Ret only pops the return address), so the caller
	// saves its own bp here and restores it once the callee returns. Pushed
	// below the arguments, this doesn't shift any bp-relative offset the
	// callee computes for its params, since those are still measured from
	// the return address up.
	f.c.emit(bytecode.Instruction{Op: bytecode.Push, Src: bytecode.BaseReg})

	for _, a := range n.Args {
		r := f.expr(a)
		f.c.emit(bytecode.Instruction{Op: bytecode.Push, Src: r})
	}

	pc := f.c.emit(bytecode.Instruction{Op: bytecode.Call})
	if addr, ok := f.c.funcAddr[ident.Name]; ok {
		f.c.patch(pc, addr)
	} else {
		f.c.patches = append(f.c.patches, callPatch{pc: pc, name: ident.Name})
	}

	// The stack discipline requires every Push to be balanced by a Pop
	// before Exit; the callee only reads the arguments via bp-relative
	// Load, it never pops them itself.
	scratch := f.allocReg()
	for range n.Args {
		f.c.emit(bytecode.Instruction{Op: bytecode.Pop, Dst: scratch})
	}
	f.c.emit(bytecode.Instruction{Op: bytecode.Pop, Dst: bytecode.BaseReg})
	for r := live - 1; r >= firstTempReg; r-- {
		f.c.emit(bytecode.Instruction{Op: bytecode.Pop, Dst: r})
	}

	result := f.allocReg()
	f.c.emit(bytecode.Instruction{Op: bytecode.Mov, Dst: result, Src: bytecode.ResultReg})
	return result
}

// access loads a single scalar field out of a struct value that already
// lives on the stack (a local or a param): the register machine has no
// aggregate value, so a struct is never materialized into a register, only
// its individual fields are. structBase resolves n.X down to the base slot
// of that stack-resident struct, and fd.Slot (checker.FieldDef.Slot) is
// this field's offset within it.
func (f *funcGen) access(n *ast.Access) int32 {
	xt := f.c.tree.TypeOf(n.X)
	sd := f.c.tree.Structs[xt.Name]
	fd := sd.Fields[n.Name]
	base := f.structBase(n.X)
	r := f.allocReg()
	f.c.emit(bytecode.Instruction{Op: bytecode.Load, Dst: r, Src: base + int32(fd.Slot)})
	return r
}

// structBase resolves a struct-typed expression to the stack slot its first
// field lives in. Only an identifier naming a local or param is supported:
// a struct value is always introduced by a var declaration (funcGen.varDecl)
// or an assignment (funcGen.assign), both of which give it a slot run of
// its own, so by the time it's read back here it's always just a name.
func (f *funcGen) structBase(x ast.Expr) int32 {
	ident, ok := x.(*ast.Identifier)
	if !ok {
		panic("codegen: struct-valued expression has no stack address")
	}
	slot, ok := f.locals.lookup(ident.Name)
	if !ok {
		panic("codegen: unresolved identifier " + ident.Name)
	}
	return slot
}

// init lowers a struct literal reached directly through expr()'s dispatch,
// i.e. anywhere other than the RHS of a var declaration or assignment (a
// call argument, a return value, ...). Neither spec.md §8's scenarios nor
// its grammar's var-decl/assign-only Init positions exercise that, and
// there's no stack slot run to materialize into at an arbitrary expression
// site, so it remains unsupported. Struct construction itself compiles
// through initStruct, called from funcGen.varDecl and funcGen.assign.
func (f *funcGen) init(n *ast.Init) int32 {
	panic("codegen: struct literal in expression position is not supported")
}

// initStruct emits a Store per field of n into the consecutive slot run
// starting at destBase, ordered and offset by sd's FieldDef.Slot (spec.md
// §4.2's "0-based declaration offset used as its in-memory slot index").
// Positional args are paired with sd.Order by index; named args look up
// their field directly; an omitted field falls back to its declared
// default (already verified present and type-checked by checker.checkInit).
func (f *funcGen) initStruct(destBase int32, sd *checker.StructDef, n *ast.Init) {
	vals := make([]ast.Expr, len(sd.Order))
	for i, a := range n.Args {
		name := a.Name
		if name == "" {
			name = sd.Order[i]
		}
		vals[sd.Fields[name].Slot] = a.Value
	}
	for _, name := range sd.Order {
		fd := sd.Fields[name]
		val := vals[fd.Slot]
		if val == nil {
			val = fd.Default
		}
		r := f.expr(val)
		f.c.emit(bytecode.Instruction{Op: bytecode.Store, Dst: destBase + int32(fd.Slot), Src: r})
	}
}

// storeStruct materializes rhs, a struct-typed expression, into the slot
// run starting at destBase: a struct literal lowers field-by-field via
// initStruct, anything else (a bare identifier naming another struct
// variable) is copied slot-by-slot via a Load/Store round trip through a
// scratch register.
func (f *funcGen) storeStruct(destBase int32, rhs ast.Expr, sd *checker.StructDef) {
	if init, ok := rhs.(*ast.Init); ok {
		f.initStruct(destBase, sd, init)
		return
	}
	srcBase := f.structBase(rhs)
	tmp := f.allocReg()
	for i := int32(0); i < int32(len(sd.Order)); i++ {
		f.c.emit(bytecode.Instruction{Op: bytecode.Load, Dst: tmp, Src: srcBase + i})
		f.c.emit(bytecode.Instruction{Op: bytecode.Store, Dst: destBase + i, Src: tmp})
	}
}
