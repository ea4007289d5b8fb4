// Package amd64 hand-encodes the subset of nox's bytecode instruction set
// spec.md §4.7 names as JIT-eligible (MovImm64, Mov, Add, Mul, Store, Load,
// Exit) into raw x86-64 machine code. Grounded on
// other_examples/launix-de-memcp's scm-jit_amd64.go: no external assembler,
// just hand-rolled REX/ModRM byte sequences appended to a []byte buffer.
//
// The compiled function's calling convention is fixed rather than mirroring
// the bytecode's own register+stack machine: System V AMD64 passes the
// register bank pointer in RDI and the value-stack pointer in RSI, and the
// result comes back in RAX, matching `func(regs *[32]int64, stack
// *[1024]int64) int64`. Since the JIT-eligible subset excludes Call/Push/Pop
// (and therefore bp is always 0, never having been changed by a function
// call), Load/Store address the stack slice directly rather than needing a
// base-pointer register of their own.
package amd64

// physical register encodings used as scratch; RDI/RSI hold the incoming
// arguments and are never clobbered.
const (
	regRAX = 0
	regRCX = 1
	regRSI = 6
	regRDI = 7
)

// Encoder accumulates emitted machine code for one function body.
type Encoder struct {
	code []byte
}

// Code returns the bytes emitted so far.
func (e *Encoder) Code() []byte { return e.code }

func (e *Encoder) emit(b ...byte) { e.code = append(e.code, b...) }

// modRM builds a ModRM byte for a register-indirect operand with the given
// mod (01 = disp8, 10 = disp32) and the reg/rm 3-bit fields.
func modRM(mod, reg, rm byte) byte { return mod<<6 | reg<<3 | rm }

// dispMod picks disp8 vs disp32 addressing and returns the mod bits and the
// little-endian displacement bytes to follow the ModRM byte.
func dispMod(disp int32) (byte, []byte) {
	if disp >= -128 && disp <= 127 {
		return 0b01, []byte{byte(int8(disp))}
	}
	return 0b10, []byte{byte(disp), byte(disp >> 8), byte(disp >> 16), byte(disp >> 24)}
}

// loadMem emits `mov reg, [base+disp]` (opcode 0x8B).
func (e *Encoder) loadMem(reg, base byte, disp int32) {
	mod, db := dispMod(disp)
	e.emit(0x48, 0x8B, modRM(mod, reg, base))
	e.emit(db...)
}

// storeMem emits `mov [base+disp], reg` (opcode 0x89).
func (e *Encoder) storeMem(base byte, disp int32, reg byte) {
	mod, db := dispMod(disp)
	e.emit(0x48, 0x89, modRM(mod, reg, base))
	e.emit(db...)
}

// MovImm64 emits code for `regs[dst] = imm`.
func (e *Encoder) MovImm64(dst int32, imm int64) {
	// movabs rax, imm64
	e.emit(0x48, 0xB8,
		byte(imm), byte(imm >> 8), byte(imm >> 16), byte(imm >> 24),
		byte(imm >> 32), byte(imm >> 40), byte(imm >> 48), byte(imm >> 56))
	e.storeMem(regRDI, 8*dst, regRAX)
}

// Mov emits code for `regs[dst] = regs[src]`.
func (e *Encoder) Mov(dst, src int32) {
	e.loadMem(regRAX, regRDI, 8*src)
	e.storeMem(regRDI, 8*dst, regRAX)
}

// Add emits code for `regs[dst] += regs[src]`.
func (e *Encoder) Add(dst, src int32) {
	e.loadMem(regRAX, regRDI, 8*dst)
	e.loadMem(regRCX, regRDI, 8*src)
	e.emit(0x48, 0x03, modRM(0b11, regRAX, regRCX)) // add rax, rcx
	e.storeMem(regRDI, 8*dst, regRAX)
}

// Mul emits code for `regs[dst] *= regs[src]`.
func (e *Encoder) Mul(dst, src int32) {
	e.loadMem(regRAX, regRDI, 8*dst)
	e.loadMem(regRCX, regRDI, 8*src)
	e.emit(0x48, 0x0F, 0xAF, modRM(0b11, regRAX, regRCX)) // imul rax, rcx
	e.storeMem(regRDI, 8*dst, regRAX)
}

// Load emits code for `regs[dst] = stack[src]` (bp is always 0 in the
// JIT-eligible subset, since it excludes Call).
func (e *Encoder) Load(dst, src int32) {
	e.loadMem(regRAX, regRSI, 8*src)
	e.storeMem(regRDI, 8*dst, regRAX)
}

// Store emits code for `stack[dst] = regs[src]`.
func (e *Encoder) Store(dst, src int32) {
	e.loadMem(regRAX, regRDI, 8*src)
	e.storeMem(regRSI, 8*dst, regRAX)
}

// Exit emits code to load regs[2] into RAX (the System V return register)
// and return.
func (e *Encoder) Exit() {
	e.loadMem(regRAX, regRDI, 8*2)
	e.emit(0xC3) // ret
}
