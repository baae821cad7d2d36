// Command fishjit loads a YAML (or bytecode blob) demo program, compiles
// it, and runs the outer frame loop until the program's Exit operator
// clears context.IsRunning — the Go port of examples/fish-jit.rs.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/compiler"
	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/demo"
)

func main() {
	program := flag.String("program", "testdata/fish-demo.yml", "path to a YAML program or .dmo bytecode blob")
	blobOut := flag.String("blob", "", "optional path to also write the compiled program's bytecode blob")
	tick := flag.Duration("tick", 10*time.Millisecond, "duration of one frame")
	dt := flag.Float64("dt", 0.01, "time added to the context clock each frame")
	verbose := flag.Bool("v", false, "enable verbose compiler tracing")
	flag.BoolVar(verbose, "verbose", false, "enable verbose compiler tracing")
	flag.Parse()

	compiler.Verbose = *verbose

	d, err := demo.Load(*program)
	if err != nil {
		log.Fatalf("fishjit: %v", err)
	}

	if *blobOut != "" {
		if err := d.WriteBlob(*blobOut); err != nil {
			log.Fatalf("fishjit: %v", err)
		}
	}

	if err := d.Build(); err != nil {
		log.Fatalf("fishjit: %v", err)
	}
	defer d.Release()

	fmt.Println()
	for d.IsRunning() {
		if err := d.Run(); err != nil {
			log.Fatalf("fishjit: %v", err)
		}
		time.Sleep(*tick)
		d.AddTime(float32(*dt))
	}
	fmt.Println()
}
