package dmo

import "reflect"

// printTarget, exitTarget, drawTarget and clearTarget are the plain Go
// functions the assembly trampolines call into. They exist as free
// functions rather than direct references to the Context methods so the
// trampoline assembly always has a stable, unexported ABI0 symbol name
// to CALL regardless of how the methods themselves are compiled.
func printTarget(ctx *Context) { ctx.Print() }

func exitTarget(ctx *Context, limit float32) { ctx.Exit(limit) }

func drawTarget(ctx *Context, spriteIdx, offset uint8, speed float32) {
	ctx.Draw(spriteIdx, offset, speed)
}

// clearTarget discards Context.Clear's error. compiler.Compile validates
// every Clear operator's charcode against utf8.ValidRune before emitting
// a single instruction, so by the time compiled code runs, the charcode
// baked into this call is already known good.
func clearTarget(ctx *Context, charcode uint32) { _ = ctx.Clear(charcode) }

// Trampolines holds the native-ABI-callable entry points compiled code
// invokes instead of calling the dmo.Context methods directly.
type Trampolines struct {
	Print uintptr
	Exit  uintptr
	Draw  uintptr
	Clear uintptr
}

// NewTrampolines resolves the addresses of the assembly trampolines
// declared in trampoline_unix_amd64.go / trampoline_windows_amd64.go.
func NewTrampolines() Trampolines {
	return Trampolines{
		Print: reflect.ValueOf(trampolinePrint).Pointer(),
		Exit:  reflect.ValueOf(trampolineExit).Pointer(),
		Draw:  reflect.ValueOf(trampolineDraw).Pointer(),
		Clear: reflect.ValueOf(trampolineClear).Pointer(),
	}
}
