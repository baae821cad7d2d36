// Command drawprint compiles and runs a single inline demo program once:
// draw one sprite into the buffer and print it. It is the Go port of
// the original crate's src/bin/draw_and_print.rs, kept as a minimal
// smoke test of the compile/run path that doesn't need a YAML file on
// disk.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/compiler"
	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/demo"
)

const inlineProgram = `
operators:
  - Draw: [ 0, 2, 1.5 ]
  - Print

context:
  sprites:
    - " ><(([°> "
`

func main() {
	verbose := flag.Bool("v", false, "enable verbose compiler tracing")
	flag.BoolVar(verbose, "verbose", false, "enable verbose compiler tracing")
	flag.Parse()
	compiler.Verbose = *verbose

	d, err := demo.LoadYAML([]byte(inlineProgram))
	if err != nil {
		log.Fatalf("drawprint: %v", err)
	}

	if err := d.Build(); err != nil {
		log.Fatalf("drawprint: %v", err)
	}
	defer d.Release()

	fmt.Println()
	if err := d.Run(); err != nil {
		log.Fatalf("drawprint: %v", err)
	}
	fmt.Println()
}
