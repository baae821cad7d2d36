// Package demo bundles a dmo.Context, a dmo.Program and (once compiled)
// a compiler.ExecutableFn into one runnable animation, the Go analog of
// the original crate's Dmo struct. It sits above dmo, bytecode and
// compiler so that none of those three has to import back up into it —
// the split this module's package layout needed to avoid the import
// cycle a single combined dmo/demo package would otherwise create
// between the context type and the compiler that consumes it.
package demo

import (
	"fmt"
	"os"

	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/bytecode"
	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/compiler"
	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/dmo"
)

// Dmo is a loaded (and, after Build, compiled) animation program.
type Dmo struct {
	Context *dmo.Context
	Program dmo.Program

	fn *compiler.ExecutableFn
}

// New wraps a context and program into a Dmo. Call Build before Run.
func New(ctx *dmo.Context, program dmo.Program) *Dmo {
	return &Dmo{Context: ctx, Program: program}
}

// Build compiles the program against its context. Must be called after
// the Dmo (and therefore its Context) has settled at its final address,
// since Compile bakes that address into the emitted code.
func (d *Dmo) Build() error {
	fn, err := compiler.Compile(d.Program, d.Context)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	d.fn = fn
	return nil
}

// Run invokes the compiled function once, i.e. one frame.
func (d *Dmo) Run() error {
	if d.fn == nil {
		return fmt.Errorf("demo: Run called before Build")
	}
	return d.fn.Invoke()
}

// IsRunning reports the context's run flag, the break condition for the
// frame loop in cmd/fishjit.
func (d *Dmo) IsRunning() bool { return d.Context.IsRunning }

// AddTime advances the context's clock by dt, mirroring the original's
// add_to_time.
func (d *Dmo) AddTime(dt float32) { d.Context.Time += dt }

// Release frees the compiled function's executable memory. Safe to
// call on a Dmo that was never built.
func (d *Dmo) Release() error {
	if d.fn == nil {
		return nil
	}
	return d.fn.Release()
}

// ToBlob encodes the Dmo's sprites and program into a bytecode blob.
func (d *Dmo) ToBlob() ([]byte, error) {
	return bytecode.Serialize(bytecode.Blob{
		Sprites: d.Context.Sprites,
		Program: d.Program,
	})
}

// WriteBlob writes the Dmo's bytecode blob to path, mirroring
// write_to_blob in the original crate.
func (d *Dmo) WriteBlob(path string) error {
	data, err := d.ToBlob()
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("demo: write blob: %w", err)
	}
	return nil
}

// FromBlob decodes a bytecode blob into a freshly built Dmo (not yet
// compiled — call Build before Run).
func FromBlob(data []byte) (*Dmo, error) {
	blob, err := bytecode.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	ctx := dmo.NewContext(blob.Sprites)
	return New(ctx, blob.Program), nil
}
