// Package dmo holds the data model shared by every stage of the
// compiler: the operator program, the running context the compiled
// function mutates, and the assembly trampolines that let JIT-emitted
// machine code call back into ordinary Go.
package dmo

// Kind distinguishes the five operator cases. Operator is a flattened
// struct rather than an interface so a Program can be built and walked
// without per-operator heap allocation.
type Kind uint8

const (
	KindNOOP Kind = iota
	KindExit
	KindPrint
	KindDraw
	KindClear
)

func (k Kind) String() string {
	switch k {
	case KindNOOP:
		return "NOOP"
	case KindExit:
		return "Exit"
	case KindPrint:
		return "Print"
	case KindDraw:
		return "Draw"
	case KindClear:
		return "Clear"
	default:
		return "unknown"
	}
}

// Operator is one instruction of a Program. Only the fields relevant to
// Kind are meaningful; the rest are zero.
type Operator struct {
	Kind Kind

	Limit float32 // Exit

	SpriteIdx uint8   // Draw
	Offset    uint8   // Draw
	Speed     float32 // Draw

	Charcode uint32 // Clear
}

func NOOP() Operator { return Operator{Kind: KindNOOP} }

func Exit(limit float32) Operator { return Operator{Kind: KindExit, Limit: limit} }

func Print() Operator { return Operator{Kind: KindPrint} }

func Draw(spriteIdx, offset uint8, speed float32) Operator {
	return Operator{Kind: KindDraw, SpriteIdx: spriteIdx, Offset: offset, Speed: speed}
}

func Clear(charcode uint32) Operator { return Operator{Kind: KindClear, Charcode: charcode} }

// Program is the straight-line instruction list compiled into one
// native function. NOOP and unrecognized opcodes never appear in a
// Program decoded from bytecode (see the bytecode package) but may
// appear in one built by hand; the compiler skips them either way.
type Program struct {
	Operators []Operator
}
