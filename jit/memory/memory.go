// Package memory provides the OS-level executable-page shim the JIT needs:
// obtain a writable page, copy emitted machine code into it, flip it to
// read+execute, and release it once the compiled function is no longer
// needed. Grounded on other_examples/launix-de-memcp's scm-jit.go
// allocExec/makeRX pair (mmap PROT_WRITE → copy → mprotect PROT_EXEC),
// generalized with a Windows VirtualAlloc/VirtualProtect backend per
// spec.md §4.7's documented two-OS-family contract.
package memory

import "fmt"

// Page is an executable memory page owned by its allocator. Callers must
// call Free exactly once.
type Page struct {
	addr uintptr
	size int
}

// Addr is the page's base address, usable to build a callable function
// pointer once the page has been made executable.
func (p *Page) Addr() uintptr { return p.addr }

// errPageTooLarge guards against a caller passing a size that would
// silently truncate when copied into the page.
func errPageTooLarge(want, got int) error {
	return fmt.Errorf("jit/memory: code is %d bytes, page only holds %d", want, got)
}
