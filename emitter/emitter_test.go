package emitter

import (
	"testing"

	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/jitmem"
)

func newEmitter(t *testing.T) *Emitter {
	t.Helper()
	r, err := jitmem.NewRegion(1)
	if err != nil {
		t.Fatalf("jitmem.NewRegion: %v", err)
	}
	return New(r)
}

func TestRetEmitsOneByte(t *testing.T) {
	e := newEmitter(t)
	if err := e.Ret(); err != nil {
		t.Fatalf("Ret: %v", err)
	}
	if e.Region.Offset() != 1 {
		t.Fatalf("Offset() = %d, want 1", e.Region.Offset())
	}
}

func TestMovAbsRejectsUnknownRegister(t *testing.T) {
	e := newEmitter(t)
	if err := e.MovAbs("r15", 0); err == nil {
		t.Fatal("MovAbs accepted an unsupported register")
	}
}

func TestMovAbsEmitsTenBytes(t *testing.T) {
	e := newEmitter(t)
	before := e.Region.Offset()
	if err := e.MovAbs("rax", 0x1122334455667788); err != nil {
		t.Fatalf("MovAbs: %v", err)
	}
	if got := e.Region.Offset() - before; got != 10 {
		t.Fatalf("MovAbs wrote %d bytes, want 10 (2 opcode + 8 immediate)", got)
	}
}

func TestMovssXmmImm32RejectsOutOfRangeIndex(t *testing.T) {
	e := newEmitter(t)
	if err := e.MovssXmmImm32(8, 0); err == nil {
		t.Fatal("MovssXmmImm32 accepted xmm index 8")
	}
	if err := e.MovssXmmImm32(-1, 0); err == nil {
		t.Fatal("MovssXmmImm32 accepted a negative xmm index")
	}
}

func TestMovssXmmImm32RestoresStackPointer(t *testing.T) {
	e := newEmitter(t)
	before := e.Region.Offset()
	if err := e.MovssXmmImm32(0, 0x3f800000); err != nil {
		t.Fatalf("MovssXmmImm32: %v", err)
	}
	// push imm32 (5) + movss xmm0, [rsp] (5) + add rsp, 8 (4) = 14 bytes
	if got := e.Region.Offset() - before; got != 14 {
		t.Fatalf("MovssXmmImm32 wrote %d bytes, want 14", got)
	}
}
