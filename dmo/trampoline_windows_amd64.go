package dmo

// trampolinePrint, trampolineExit, trampolineDraw and trampolineClear
// are implemented in trampoline_windows_amd64.s, with a Microsoft x64
// ABI entry point. See trampoline_unix_amd64.go for why the Go
// signature is empty.
func trampolinePrint()
func trampolineExit()
func trampolineDraw()
func trampolineClear()
