// Package compiler turns a dmo.Program into a runnable
// jitmem.ExecutableFn by emitting one straight-line x86-64 function:
// a prologue, one calling sequence per operator, and an epilogue.
package compiler

import (
	"fmt"
	"math"
	"os"
	"unicode/utf8"
	"unsafe"

	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/dmo"
	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/emitter"
	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/jitmem"
)

// Verbose gates diagnostic tracing of each operator's emitted calling
// sequence to stderr. Off by default; cmd/fishjit and cmd/drawprint
// turn it on via -v/-verbose.
var Verbose bool

func trace(format string, args ...interface{}) {
	if Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// ExecutableFn is a compiled dmo.Program, ready to run against the
// dmo.Context it was compiled for.
type ExecutableFn struct {
	fn  *jitmem.ExecutableFn
	ctx *dmo.Context
}

// Invoke runs one pass of the compiled program against its context.
func (e *ExecutableFn) Invoke() error {
	return e.fn.Invoke(unsafe.Pointer(e.ctx))
}

// Release frees the underlying executable memory. Safe to call once.
func (e *ExecutableFn) Release() error {
	return e.fn.Release()
}

// Compile assembles program into native code that operates on ctx. ctx
// must not be moved after this call: its address is baked directly
// into the emitted code as a 64-bit immediate.
func Compile(program dmo.Program, ctx *dmo.Context) (*ExecutableFn, error) {
	for _, op := range program.Operators {
		if op.Kind == dmo.KindClear && !utf8.ValidRune(rune(op.Charcode)) {
			return nil, fmt.Errorf("compiler: operand 0x%x of a Clear operator is not a valid unicode scalar value", op.Charcode)
		}
	}

	abi := DefaultABI()

	region, err := jitmem.NewRegion(1)
	if err != nil {
		return nil, fmt.Errorf("compiler: %w", err)
	}
	em := emitter.New(region)
	tramp := dmo.NewTrampolines()
	ctxAddr := uint64(uintptr(unsafe.Pointer(ctx)))

	if err := abi.Prologue(em); err != nil {
		return nil, fmt.Errorf("compiler: prologue: %w", err)
	}

	for _, op := range program.Operators {
		if err := emitOperator(em, abi, tramp, ctxAddr, op); err != nil {
			return nil, err
		}
	}

	if err := abi.Epilogue(em); err != nil {
		return nil, fmt.Errorf("compiler: epilogue: %w", err)
	}

	fn, err := region.Finalize()
	if err != nil {
		return nil, fmt.Errorf("compiler: %w", err)
	}

	return &ExecutableFn{fn: fn, ctx: ctx}, nil
}

func emitOperator(em *emitter.Emitter, abi ABI, tramp dmo.Trampolines, ctxAddr uint64, op dmo.Operator) error {
	switch op.Kind {
	case dmo.KindNOOP:
		trace("NOOP")
		return nil

	case dmo.KindExit:
		trace("Exit(%v)", op.Limit)
		if err := em.MovAbs(abi.CtxReg, ctxAddr); err != nil {
			return err
		}
		if err := em.MovssXmmImm32(abi.ExitXMM, math.Float32bits(op.Limit)); err != nil {
			return err
		}
		if err := em.MovAbs("rax", uint64(tramp.Exit)); err != nil {
			return err
		}
		return em.CallRax()

	case dmo.KindPrint:
		trace("Print")
		if err := em.MovAbs(abi.CtxReg, ctxAddr); err != nil {
			return err
		}
		if err := em.MovAbs("rax", uint64(tramp.Print)); err != nil {
			return err
		}
		return em.CallRax()

	case dmo.KindDraw:
		trace("Draw(%d, %d, %v)", op.SpriteIdx, op.Offset, op.Speed)
		if err := em.MovAbs(abi.CtxReg, ctxAddr); err != nil {
			return err
		}
		if err := em.MovAbs(abi.IntArgRegs[0], uint64(op.SpriteIdx)); err != nil {
			return err
		}
		if err := em.MovAbs(abi.IntArgRegs[1], uint64(op.Offset)); err != nil {
			return err
		}
		if err := em.MovssXmmImm32(abi.DrawXMM, math.Float32bits(op.Speed)); err != nil {
			return err
		}
		if err := em.MovAbs("rax", uint64(tramp.Draw)); err != nil {
			return err
		}
		return em.CallRax()

	case dmo.KindClear:
		trace("Clear(0x%x)", op.Charcode)
		if err := em.MovAbs(abi.CtxReg, ctxAddr); err != nil {
			return err
		}
		if err := em.MovAbs(abi.IntArgRegs[0], uint64(op.Charcode)); err != nil {
			return err
		}
		if err := em.MovAbs("rax", uint64(tramp.Clear)); err != nil {
			return err
		}
		return em.CallRax()

	default:
		return fmt.Errorf("compiler: unknown operator kind %v", op.Kind)
	}
}
