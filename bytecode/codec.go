// Package bytecode implements the on-disk wire format for a dmo.Program
// plus the sprite list of its dmo.Context: a compact binary blob an
// on-disk program can be frozen to and reloaded from without the YAML
// loader.
package bytecode

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/dmo"
)

// opcode is the single byte identifying an operator on the wire.
type opcode uint8

const (
	opNOOP  opcode = 0x00
	opExit  opcode = 0x01
	opDraw  opcode = 0x02
	opClear opcode = 0x03
	opPrint opcode = 0xFF
)

func opFor(k dmo.Kind) opcode {
	switch k {
	case dmo.KindExit:
		return opExit
	case dmo.KindDraw:
		return opDraw
	case dmo.KindClear:
		return opClear
	case dmo.KindPrint:
		return opPrint
	default:
		return opNOOP
	}
}

// Blob is a decoded bytecode document: a sprite list and an operator
// program, the two halves dmo.Context/dmo.Program split between them.
type Blob struct {
	Sprites []string
	Program dmo.Program
}

// Serialize encodes blob into the wire format described in the
// instruction set reference: sprite_count, then per-sprite
// [char_count, chars...], then operator_count, then per-operator
// [opcode, payload]. NOOP operators are dropped rather than written.
func Serialize(blob Blob) ([]byte, error) {
	if len(blob.Sprites) > 255 {
		return nil, fmt.Errorf("bytecode: %d sprites exceeds the 255 a single byte count can address", len(blob.Sprites))
	}

	var out []byte
	out = append(out, uint8(len(blob.Sprites)))

	for _, sprite := range blob.Sprites {
		chars := []rune(sprite)
		if len(chars) > 255 {
			return nil, fmt.Errorf("bytecode: sprite %q has %d characters, exceeding the 255 a single byte count can address", sprite, len(chars))
		}
		out = append(out, uint8(len(chars)))
		for _, ch := range chars {
			out = appendU32(out, uint32(ch))
		}
	}

	kept := make([]dmo.Operator, 0, len(blob.Program.Operators))
	for _, op := range blob.Program.Operators {
		if op.Kind != dmo.KindNOOP {
			kept = append(kept, op)
		}
	}
	if len(kept) > 255 {
		return nil, fmt.Errorf("bytecode: %d operators exceeds the 255 a single byte count can address", len(kept))
	}
	out = append(out, uint8(len(kept)))

	for _, op := range kept {
		out = append(out, uint8(opFor(op.Kind)))
		switch op.Kind {
		case dmo.KindExit:
			out = appendF32(out, op.Limit)
		case dmo.KindDraw:
			out = append(out, op.SpriteIdx, op.Offset)
			out = appendF32(out, op.Speed)
		case dmo.KindClear:
			out = appendU32(out, op.Charcode)
		case dmo.KindPrint:
			// no payload
		}
	}

	return out, nil
}

// Deserialize decodes data produced by Serialize back into a Blob.
// Unknown opcodes decode to NOOP and are then elided, the same as a
// NOOP operator written by hand would be.
func Deserialize(data []byte) (Blob, error) {
	r := &reader{data: data}

	nSprites, err := r.readU8()
	if err != nil {
		return Blob{}, err
	}

	sprites := make([]string, 0, nSprites)
	for i := uint8(0); i < nSprites; i++ {
		length, err := r.readU8()
		if err != nil {
			return Blob{}, err
		}
		runes := make([]rune, 0, length)
		for j := uint8(0); j < length; j++ {
			code, err := r.readU32()
			if err != nil {
				return Blob{}, err
			}
			if !utf8.ValidRune(rune(code)) {
				return Blob{}, fmt.Errorf("bytecode: sprite %d char %d (0x%x) is not a valid unicode scalar value", i, j, code)
			}
			runes = append(runes, rune(code))
		}
		sprites = append(sprites, string(runes))
	}

	nOps, err := r.readU8()
	if err != nil {
		return Blob{}, err
	}

	operators := make([]dmo.Operator, 0, nOps)
	for i := uint8(0); i < nOps; i++ {
		code, err := r.readU8()
		if err != nil {
			return Blob{}, err
		}

		var op dmo.Operator
		switch opcode(code) {
		case opExit:
			limit, err := r.readF32()
			if err != nil {
				return Blob{}, err
			}
			op = dmo.Exit(limit)
		case opPrint:
			op = dmo.Print()
		case opDraw:
			idx, err := r.readU8()
			if err != nil {
				return Blob{}, err
			}
			offset, err := r.readU8()
			if err != nil {
				return Blob{}, err
			}
			speed, err := r.readF32()
			if err != nil {
				return Blob{}, err
			}
			op = dmo.Draw(idx, offset, speed)
		case opClear:
			charcode, err := r.readU32()
			if err != nil {
				return Blob{}, err
			}
			op = dmo.Clear(charcode)
		default:
			op = dmo.NOOP()
		}

		if op.Kind != dmo.KindNOOP {
			operators = append(operators, op)
		}
	}

	return Blob{Sprites: sprites, Program: dmo.Program{Operators: operators}}, nil
}

func appendU32(out []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(out, buf[:]...)
}

func appendF32(out []byte, v float32) []byte {
	return appendU32(out, math.Float32bits(v))
}

// reader is a cursor over an undifferentiated byte blob, the Go analog
// of the original codec's DataBlob.
type reader struct {
	data []byte
	idx  int
}

func (r *reader) readU8() (uint8, error) {
	if r.idx+1 > len(r.data) {
		return 0, fmt.Errorf("bytecode: unexpected end of data reading a byte at offset %d", r.idx)
	}
	v := r.data[r.idx]
	r.idx++
	return v, nil
}

func (r *reader) readU32() (uint32, error) {
	if r.idx+4 > len(r.data) {
		return 0, fmt.Errorf("bytecode: unexpected end of data reading a u32 at offset %d", r.idx)
	}
	v := binary.LittleEndian.Uint32(r.data[r.idx : r.idx+4])
	r.idx += 4
	return v, nil
}

func (r *reader) readF32() (float32, error) {
	v, err := r.readU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}
