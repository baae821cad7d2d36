package bytecode

import (
	"testing"

	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/dmo"
)

func TestRoundTrip(t *testing.T) {
	blob := Blob{
		Sprites: []string{"fish", "><(([°>"},
		Program: dmo.Program{Operators: []dmo.Operator{
			dmo.Draw(0, 2, 1.5),
			dmo.Print(),
			dmo.Clear('*'),
			dmo.Exit(3.0),
		}},
	}

	data, err := Serialize(blob)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if len(got.Sprites) != len(blob.Sprites) {
		t.Fatalf("got %d sprites, want %d", len(got.Sprites), len(blob.Sprites))
	}
	for i := range blob.Sprites {
		if got.Sprites[i] != blob.Sprites[i] {
			t.Fatalf("sprite %d = %q, want %q", i, got.Sprites[i], blob.Sprites[i])
		}
	}

	if len(got.Program.Operators) != len(blob.Program.Operators) {
		t.Fatalf("got %d operators, want %d", len(got.Program.Operators), len(blob.Program.Operators))
	}
	for i, op := range blob.Program.Operators {
		gotOp := got.Program.Operators[i]
		if gotOp.Kind != op.Kind {
			t.Fatalf("operator %d kind = %v, want %v", i, gotOp.Kind, op.Kind)
		}
	}
}

func TestOpcodeStability(t *testing.T) {
	cases := []struct {
		kind dmo.Kind
		code opcode
	}{
		{dmo.KindNOOP, opNOOP},
		{dmo.KindExit, opExit},
		{dmo.KindDraw, opDraw},
		{dmo.KindClear, opClear},
		{dmo.KindPrint, opPrint},
	}
	for _, c := range cases {
		if got := opFor(c.kind); got != c.code {
			t.Fatalf("opFor(%v) = 0x%x, want 0x%x", c.kind, got, c.code)
		}
	}
}

func TestNOOPOperatorsAreElided(t *testing.T) {
	blob := Blob{Program: dmo.Program{Operators: []dmo.Operator{
		dmo.NOOP(),
		dmo.Print(),
		dmo.NOOP(),
	}}}

	data, err := Serialize(blob)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if len(got.Program.Operators) != 1 {
		t.Fatalf("got %d operators, want 1 (NOOPs elided)", len(got.Program.Operators))
	}
	if got.Program.Operators[0].Kind != dmo.KindPrint {
		t.Fatalf("surviving operator kind = %v, want Print", got.Program.Operators[0].Kind)
	}
}

func TestUnknownOpcodeDecodesAsElidedNOOP(t *testing.T) {
	// One sprite count byte (0), one operator count byte (1), one
	// unrecognized opcode byte.
	data := []byte{0x00, 0x01, 0xAB}

	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if len(got.Program.Operators) != 0 {
		t.Fatalf("got %d operators, want 0 (unknown opcode elided)", len(got.Program.Operators))
	}
}

func TestDeserializeTruncatedDataErrors(t *testing.T) {
	data := []byte{0x01} // claims one sprite, but no sprite data follows
	if _, err := Deserialize(data); err == nil {
		t.Fatal("Deserialize accepted truncated data")
	}
}
