//go:build arm64

package jit

import (
	"github.com/nox-lang/nox/jit/arm64"
	"github.com/nox-lang/nox/lang/bytecode"
)

func encodeForArch(prog *bytecode.Program) ([]byte, bool) {
	var enc arm64.Encoder
	return encode(&enc, prog)
}
