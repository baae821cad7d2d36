//go:build windows
// +build windows

package jitmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// allocRW reserves and commits size bytes as PAGE_READWRITE, the
// Windows analog of the POSIX path's initial mmap(PROT_READ|PROT_WRITE).
func allocRW(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("jitmem: VirtualAlloc: %w", err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// protectRX flips the region to PAGE_EXECUTE_READ.
func protectRX(mem []byte) error {
	var old uint32
	addr := uintptr(unsafe.Pointer(&mem[0]))
	if err := windows.VirtualProtect(addr, uintptr(len(mem)), windows.PAGE_EXECUTE_READ, &old); err != nil {
		return fmt.Errorf("jitmem: VirtualProtect: %w", err)
	}
	return nil
}

// freeMem releases the region with MEM_RELEASE, matching the original
// JIT's VirtualFree(addr, 0, MEM_RELEASE) call.
func freeMem(mem []byte) error {
	addr := uintptr(unsafe.Pointer(&mem[0]))
	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("jitmem: VirtualFree: %w", err)
	}
	return nil
}

// clearInstructionCache is a documented no-op on amd64; see the unix
// build's comment for why it stays as an explicit step.
func clearInstructionCache(mem []byte) {}
