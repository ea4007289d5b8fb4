// Package transpile declares the boundary contract for emitting a
// bytecode.Program to an external target representation (e.g. C, as the
// original toolchain's transpiler does). spec.md's Non-goals exclude
// implementing a transpiler; this interface exists only to name the
// boundary, per SPEC_FULL.md §6.7 ("external only").
package transpile

import (
	"io"

	"github.com/nox-lang/nox/lang/bytecode"
)

// Target emits prog in some external representation to w. There are
// intentionally zero implementations of this interface in this module.
type Target interface {
	Emit(w io.Writer, prog *bytecode.Program) error
}
