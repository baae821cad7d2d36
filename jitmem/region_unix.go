//go:build unix
// +build unix

package jitmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// allocRW maps an anonymous, private region of size bytes, initially
// read-write, the same PROT_READ|PROT_WRITE starting point the original
// JIT's mprotect call establishes before filling the region.
func allocRW(size int) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("jitmem: mmap: %w", err)
	}
	return mem, nil
}

// protectRX flips the region to read+execute, enforcing W^X: the
// mapping is never both writable and executable at once.
func protectRX(mem []byte) error {
	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return fmt.Errorf("jitmem: mprotect: %w", err)
	}
	return nil
}

// freeMem unmaps the region.
func freeMem(mem []byte) error {
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("jitmem: munmap: %w", err)
	}
	return nil
}

// clearInstructionCache is a documented no-op on amd64: the
// architecture keeps the instruction cache coherent with writes from
// the same core, so there is nothing to flush. Kept as an explicit step
// (rather than omitted) so a future non-amd64 backend has an obvious
// place to call the platform's real cache-invalidation primitive,
// mirroring the original JIT's llvm.clear_cache call.
func clearInstructionCache(mem []byte) {}
