//go:build windows

package memory

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Alloc obtains a committed region via VirtualAlloc, copies code into it,
// and flips it from PAGE_READWRITE to PAGE_EXECUTE_READ, per spec.md
// §4.7's Windows sequence.
func Alloc(code []byte) (*Page, error) {
	size := len(code)
	if size == 0 {
		size = 1
	}

	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	copy(dst, code)

	var oldProtect uint32
	if err := windows.VirtualProtect(addr, uintptr(size), windows.PAGE_EXECUTE_READ, &oldProtect); err != nil {
		windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		return nil, err
	}

	return &Page{addr: addr, size: size}, nil
}

// Free releases the page obtained from Alloc.
func (p *Page) Free() error {
	return windows.VirtualFree(p.addr, 0, windows.MEM_RELEASE)
}
