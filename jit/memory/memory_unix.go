//go:build !windows

package memory

import (
	"syscall"
	"unsafe"
)

// Alloc obtains a page-aligned, page-rounded region, copies code into it,
// and flips it from PROT_WRITE to PROT_READ|PROT_EXEC, per spec.md §4.7's
// POSIX/Darwin sequence. Grounded on other_examples/launix-de-memcp's
// allocExec/makeRX.
func Alloc(code []byte) (*Page, error) {
	pageSize := syscall.Getpagesize()
	size := (len(code) + pageSize - 1) &^ (pageSize - 1)
	if size == 0 {
		size = pageSize
	}

	b, err := syscall.Mmap(-1, 0, size, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_PRIVATE|syscall.MAP_ANON)
	if err != nil {
		return nil, err
	}
	if len(code) > len(b) {
		syscall.Munmap(b)
		return nil, errPageTooLarge(len(code), len(b))
	}
	copy(b, code)

	if err := syscall.Mprotect(b, syscall.PROT_READ|syscall.PROT_EXEC); err != nil {
		syscall.Munmap(b)
		return nil, err
	}

	return &Page{addr: uintptr(unsafe.Pointer(&b[0])), size: size}, nil
}

// Free releases the page obtained from Alloc.
func (p *Page) Free() error {
	b := unsafe.Slice((*byte)(unsafe.Pointer(p.addr)), p.size)
	return syscall.Munmap(b)
}
