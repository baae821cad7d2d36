// Package emitter writes raw x86-64 machine code, one instruction at a
// time, into a jitmem.Region. Every method here mirrors one hand-picked
// opcode sequence — there is no general instruction encoder or operand
// table, just the handful of forms the compiler package actually needs.
package emitter

import (
	"fmt"

	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/jitmem"
)

// Emitter wraps a jitmem.Region with the small set of x86-64 encodings
// the compiler needs to assemble a straight-line calling sequence.
type Emitter struct {
	Region *jitmem.Region
}

func New(r *jitmem.Region) *Emitter {
	return &Emitter{Region: r}
}

// Ret emits a bare `ret` (0xC3).
func (e *Emitter) Ret() error { return e.Region.PushU8(0xc3) }

// PushRbp emits `push rbp`.
func (e *Emitter) PushRbp() error { return e.Region.PushU8(0x55) }

// PopRbp emits `pop rbp`.
func (e *Emitter) PopRbp() error { return e.Region.PushU8(0x5d) }

// MovRbpRsp emits `mov rbp, rsp`.
func (e *Emitter) MovRbpRsp() error {
	return e.write(0x48, 0x89, 0xe5)
}

// MovRspRbp emits `mov rsp, rbp`.
func (e *Emitter) MovRspRbp() error {
	return e.write(0x48, 0x89, 0xec)
}

// AddRspImm8 emits `add rsp, imm8`.
func (e *Emitter) AddRspImm8(v uint8) error {
	return e.write(0x48, 0x83, 0xc4, v)
}

// SubRspImm8 emits `sub rsp, imm8`.
func (e *Emitter) SubRspImm8(v uint8) error {
	return e.write(0x48, 0x83, 0xec, v)
}

// CallRax emits `call rax`.
func (e *Emitter) CallRax() error {
	return e.write(0xff, 0xd0)
}

// movabsOpcode is the REX+opcode pair for `movabs reg, imm64` per
// destination register, taken straight from the original JIT's
// movabs_r*_u64 family.
var movabsOpcode = map[string][2]byte{
	"rax": {0x48, 0xb8},
	"rdi": {0x48, 0xbf},
	"rsi": {0x48, 0xbe},
	"rdx": {0x48, 0xba},
	"rcx": {0x48, 0xb9},
	"r8":  {0x49, 0xb8}, // REX.B selects r8 in place of rax
}

// MovAbs emits `movabs reg, imm64` for the registers the compiler uses
// to pass arguments and hold the callee address.
func (e *Emitter) MovAbs(reg string, value uint64) error {
	op, ok := movabsOpcode[reg]
	if !ok {
		return fmt.Errorf("emitter: unsupported movabs destination register %q", reg)
	}
	if err := e.Region.PushU8(op[0]); err != nil {
		return err
	}
	if err := e.Region.PushU8(op[1]); err != nil {
		return err
	}
	return e.Region.PushU64(value)
}

// movssModRM is the ModRM+SIB byte pair for `movss xmmN, [rsp]`, per
// xmm register index.
var movssModRM = [8][2]byte{
	{0x04, 0x24}, // xmm0
	{0x0c, 0x24}, // xmm1
	{0x14, 0x24}, // xmm2
	{0x1c, 0x24}, // xmm3
	{0x24, 0x24}, // xmm4
	{0x2c, 0x24}, // xmm5
	{0x34, 0x24}, // xmm6
	{0x3c, 0x24}, // xmm7
}

// MovssXmmImm32 loads a float32 immediate into xmmN by pushing it onto
// the stack and reloading it with `movss xmmN, [rsp]`, then restoring
// rsp — there is no direct load-immediate-into-xmm encoding, so this
// three-instruction idiom stands in for one.
func (e *Emitter) MovssXmmImm32(xmmN int, bits uint32) error {
	if xmmN < 0 || xmmN > 7 {
		return fmt.Errorf("emitter: xmm register index %d out of range 0-7", xmmN)
	}

	if err := e.Region.PushU8(0x68); err != nil { // push imm32
		return err
	}
	if err := e.Region.PushU32(bits); err != nil {
		return err
	}

	modrm := movssModRM[xmmN]
	if err := e.write(0xf3, 0x0f, 0x10, modrm[0], modrm[1]); err != nil {
		return err
	}

	return e.AddRspImm8(8)
}

func (e *Emitter) write(bs ...byte) error {
	for _, b := range bs {
		if err := e.Region.PushU8(b); err != nil {
			return err
		}
	}
	return nil
}
