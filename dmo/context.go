package dmo

import (
	"fmt"
	"math"
	"os"
	"unicode/utf8"
)

// BufferSize is the width of the demo's text buffer, fixed at 50
// characters as the animation format requires.
const BufferSize = 50

// Context holds everything a compiled Program reads or mutates while
// running. A Context is heap-allocated by NewContext and its address is
// taken exactly once, by the compiler, when baking the JIT-emitted
// calling sequences; it must never be moved or copied afterward.
type Context struct {
	Sprites   []string
	Buffer    [BufferSize]rune
	IsRunning bool
	Time      float32
}

// NewContext returns a fresh Context with the buffer filled with '_'
// and IsRunning set, mirroring the original Dmo's default Context.
func NewContext(sprites []string) *Context {
	ctx := &Context{
		Sprites:   sprites,
		IsRunning: true,
	}
	for i := range ctx.Buffer {
		ctx.Buffer[i] = '_'
	}
	return ctx
}

// Print writes the text buffer to stdout, five leading spaces and a
// trailing carriage return so a terminal driving the animation loop
// overwrites the same line every frame.
func (c *Context) Print() {
	fmt.Fprintf(os.Stdout, "     %s\r", string(c.Buffer[:]))
}

// Exit stops the run loop once Time exceeds limit. The comparison is
// strict: a Time exactly equal to limit keeps running one more frame.
func (c *Context) Exit(limit float32) {
	if c.Time > limit {
		c.IsRunning = false
	}
}

// Draw writes sprite spriteIdx into the buffer starting at offset and
// sliding forward as Time advances, at the given speed. Out-of-range
// sprite indices are a no-op. The starting offset wraps around the
// buffer; a speed/time product that pushes the offset negative
// saturates to 0, matching the float-to-integer cast it is ported from.
func (c *Context) Draw(spriteIdx, offset uint8, speed float32) {
	if int(spriteIdx) >= len(c.Sprites) {
		return
	}

	total := math.Mod(float64(offset)+float64(c.Time)*float64(speed), float64(len(c.Buffer)))
	start := 0
	if total > 0 {
		start = int(total)
	}

	sprite := []rune(c.Sprites[spriteIdx])
	for i, ch := range sprite {
		n := (start + i) % len(c.Buffer)
		c.Buffer[n] = ch
	}
}

// Clear fills the buffer with charcode, which must be a valid Unicode
// scalar value. An invalid charcode is a fatal condition for the
// invoking operator and is returned as an error instead of panicking.
func (c *Context) Clear(charcode uint32) error {
	r := rune(charcode)
	if !utf8.ValidRune(r) {
		return fmt.Errorf("dmo: %d is not a valid unicode scalar value", charcode)
	}
	for i := range c.Buffer {
		c.Buffer[i] = r
	}
	return nil
}
