//go:build !amd64 && !arm64

package jit

import "github.com/nox-lang/nox/lang/bytecode"

// encodeForArch always fails on an unsupported build architecture, per
// spec.md §4.7: "otherwise the JIT is disabled and the driver falls back
// to the interpreter."
func encodeForArch(_ *bytecode.Program) ([]byte, bool) { return nil, false }
