//go:build unix && amd64
// +build unix,amd64

package dmo

// trampolinePrint, trampolineExit, trampolineDraw and trampolineClear
// are implemented in trampoline_unix_amd64.s. Each has a SysV-ABI entry
// point; the empty Go signature here is only a type-safe handle whose
// address reflect.ValueOf(...).Pointer() resolves to that entry point —
// the functions are never called through ordinary Go calling
// conventions.
func trampolinePrint()
func trampolineExit()
func trampolineDraw()
func trampolineClear()
