package jitmem

import "unsafe"

// callNative invokes the compiled function at fn, passing ctx as its
// sole argument using the host OS's native calling convention (SysV on
// unix, Microsoft x64 on Windows). Implemented in invoke_unix_amd64.s
// and invoke_windows_amd64.s.
func callNative(fn uintptr, ctx unsafe.Pointer)
