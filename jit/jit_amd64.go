//go:build amd64

package jit

import (
	"github.com/nox-lang/nox/jit/amd64"
	"github.com/nox-lang/nox/lang/bytecode"
)

func encodeForArch(prog *bytecode.Program) ([]byte, bool) {
	var enc amd64.Encoder
	return encode(&enc, prog)
}
