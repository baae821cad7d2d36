package compiler

import (
	"runtime"

	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/emitter"
)

// ABI describes how to call a 4-argument-or-fewer native helper on a
// given platform: which integer register carries the context pointer
// and which integer arguments, which xmm register carries the lone
// float argument an operator might have, and how to open/close the
// compiled function's stack frame.
type ABI struct {
	Name string

	// CtxReg is the integer register the context pointer goes in.
	CtxReg string
	// IntArgRegs are the integer registers for the arguments after the
	// context pointer: [0] carries Draw's spriteIdx or Clear's charcode,
	// [1] carries Draw's offset.
	IntArgRegs []string
	// ExitXMM, DrawXMM are the xmm register indices used for Exit's
	// limit and Draw's speed argument respectively.
	ExitXMM int
	DrawXMM int

	Prologue func(*emitter.Emitter) error
	Epilogue func(*emitter.Emitter) error
}

// SysV is the POSIX (Linux, macOS, BSD) calling convention: integer
// args in rdi, rsi, rdx, ...; float args always in xmm0 since every
// operator here has at most one float argument; a standard
// push-rbp/mov-rbp,rsp frame.
var SysV = ABI{
	Name:       "sysv64",
	CtxReg:     "rdi",
	IntArgRegs: []string{"rsi", "rdx"},
	ExitXMM:    0,
	DrawXMM:    0,
	Prologue: func(e *emitter.Emitter) error {
		if err := e.PushRbp(); err != nil {
			return err
		}
		return e.MovRbpRsp()
	},
	Epilogue: func(e *emitter.Emitter) error {
		if err := e.MovRspRbp(); err != nil {
			return err
		}
		if err := e.PopRbp(); err != nil {
			return err
		}
		return e.Ret()
	},
}

// Win64 is the Microsoft x64 calling convention: integer args in rcx,
// rdx, r8, ...; float args in the xmm register matching the argument's
// position, so Exit's limit (second argument overall) lands in xmm1 and
// Draw's speed (fourth argument overall) lands in xmm3. The prologue
// reserves 32 bytes of shadow space plus 8 bytes of padding to keep rsp
// 16-byte aligned across the call, the detail the original Rust JIT got
// wrong by reserving only 8 bytes.
var Win64 = ABI{
	Name:       "win64",
	CtxReg:     "rcx",
	IntArgRegs: []string{"rdx", "r8"},
	ExitXMM:    1,
	DrawXMM:    3,
	Prologue: func(e *emitter.Emitter) error {
		return e.SubRspImm8(40)
	},
	Epilogue: func(e *emitter.Emitter) error {
		if err := e.AddRspImm8(40); err != nil {
			return err
		}
		return e.Ret()
	},
}

// DefaultABI picks SysV or Win64 by the host's GOOS.
func DefaultABI() ABI {
	if runtime.GOOS == "windows" {
		return Win64
	}
	return SysV
}
