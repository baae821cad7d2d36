package demo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/dmo"
)

func TestLoadYAMLParsesScalarAndMappedOperators(t *testing.T) {
	text := []byte(`
operators:
  - Draw: [1, 2, 1.5]
  - Print
  - NOOP
  - Clear: 42
  - Exit: 3.0

context:
  sprites:
    - "fish"
`)

	d, err := LoadYAML(text)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}

	want := []dmo.Kind{dmo.KindDraw, dmo.KindPrint, dmo.KindNOOP, dmo.KindClear, dmo.KindExit}
	if len(d.Program.Operators) != len(want) {
		t.Fatalf("got %d operators, want %d", len(d.Program.Operators), len(want))
	}
	for i, k := range want {
		if got := d.Program.Operators[i].Kind; got != k {
			t.Fatalf("operator %d kind = %v, want %v", i, got, k)
		}
	}

	draw := d.Program.Operators[0]
	if draw.SpriteIdx != 1 || draw.Offset != 2 || draw.Speed != 1.5 {
		t.Fatalf("Draw operator = %+v, want {SpriteIdx:1 Offset:2 Speed:1.5}", draw)
	}
	if clear := d.Program.Operators[3]; clear.Charcode != 42 {
		t.Fatalf("Clear charcode = %d, want 42", clear.Charcode)
	}
	if exit := d.Program.Operators[4]; exit.Limit != 3.0 {
		t.Fatalf("Exit limit = %v, want 3.0", exit.Limit)
	}

	if len(d.Context.Sprites) != 1 || d.Context.Sprites[0] != "fish" {
		t.Fatalf("Sprites = %v, want [fish]", d.Context.Sprites)
	}
}

func TestLoadYAMLRejectsUnrecognizedScalarOperator(t *testing.T) {
	text := []byte(`
operators:
  - Bogus
context:
  sprites: []
`)
	if _, err := LoadYAML(text); err == nil {
		t.Fatal("LoadYAML accepted an unrecognized bare operator")
	}
}

func TestLoadYAMLRejectsUnrecognizedMappedOperator(t *testing.T) {
	text := []byte(`
operators:
  - Bogus: 1
context:
  sprites: []
`)
	if _, err := LoadYAML(text); err == nil {
		t.Fatal("LoadYAML accepted an unrecognized mapped operator key")
	}
}

func TestLoadYAMLRejectsMalformedDraw(t *testing.T) {
	text := []byte(`
operators:
  - Draw: [1, 2]
context:
  sprites: []
`)
	if _, err := LoadYAML(text); err == nil {
		t.Fatal("LoadYAML accepted a Draw operator with the wrong argument count")
	}
}

func TestLoadYAMLRejectsInvalidFloat(t *testing.T) {
	text := []byte(`
operators:
  - Exit: not-a-number
context:
  sprites: []
`)
	if _, err := LoadYAML(text); err == nil {
		t.Fatal("LoadYAML accepted a non-numeric Exit limit")
	}
}

func TestLoadYAMLEmptyDocument(t *testing.T) {
	d, err := LoadYAML([]byte(``))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if len(d.Program.Operators) != 0 {
		t.Fatalf("got %d operators from an empty document, want 0", len(d.Program.Operators))
	}
	if len(d.Context.Sprites) != 0 {
		t.Fatalf("got %d sprites from an empty document, want 0", len(d.Context.Sprites))
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "prog.yml")
	yamlText := []byte(`
operators:
  - Print
context:
  sprites: []
`)
	if err := os.WriteFile(yamlPath, yamlText, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fromYAML, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load(%s): %v", yamlPath, err)
	}
	if len(fromYAML.Program.Operators) != 1 {
		t.Fatalf("got %d operators from yaml path, want 1", len(fromYAML.Program.Operators))
	}

	blobPath := filepath.Join(dir, "prog.dmo")
	if err := fromYAML.WriteBlob(blobPath); err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}

	fromBlob, err := Load(blobPath)
	if err != nil {
		t.Fatalf("Load(%s): %v", blobPath, err)
	}
	if len(fromBlob.Program.Operators) != 1 {
		t.Fatalf("got %d operators from blob path, want 1", len(fromBlob.Program.Operators))
	}
	if fromBlob.Program.Operators[0].Kind != dmo.KindPrint {
		t.Fatalf("blob-loaded operator kind = %v, want Print", fromBlob.Program.Operators[0].Kind)
	}
}

func TestLoadYAMLFileMissing(t *testing.T) {
	if _, err := LoadYAMLFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatal("LoadYAMLFile accepted a missing path")
	}
}
