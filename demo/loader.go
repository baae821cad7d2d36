package demo

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/make-a-demo-tool-in-rust/fish-in-a-jit/dmo"
)

// yamlDoc mirrors the shape new_from_yml_str expects: a context block
// (right now just the sprite list, since the rest of Context is runtime
// state that never round-trips through YAML) and an operator list.
type yamlDoc struct {
	Context struct {
		Sprites []string `yaml:"sprites"`
	} `yaml:"context"`
	Operators []yaml.Node `yaml:"operators"`
}

// LoadYAML parses a YAML program document (see testdata/fish-demo.yml)
// into a Dmo. Each entry under operators: is either a bare scalar
// ("Print", "NOOP") or a single-key map ("Draw: [idx, offset, speed]",
// "Exit: limit", "Clear: charcode"), the YAML analog of the original
// crate's serde-derived Operator enum encoding.
func LoadYAML(text []byte) (*Dmo, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(text, &doc); err != nil {
		return nil, fmt.Errorf("demo: parsing yaml: %w", err)
	}

	operators := make([]dmo.Operator, 0, len(doc.Operators))
	for i, node := range doc.Operators {
		op, err := decodeOperator(&node)
		if err != nil {
			return nil, fmt.Errorf("demo: operator %d: %w", i, err)
		}
		operators = append(operators, op)
	}

	ctx := dmo.NewContext(doc.Context.Sprites)
	return New(ctx, dmo.Program{Operators: operators}), nil
}

// LoadYAMLFile reads path and parses it with LoadYAML.
func LoadYAMLFile(path string) (*Dmo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("demo: reading %s: %w", path, err)
	}
	return LoadYAML(data)
}

// Load dispatches on path's extension: ".dmo" is treated as a bytecode
// blob (see bytecode.Deserialize), anything else as a YAML program.
func Load(path string) (*Dmo, error) {
	if strings.EqualFold(filepath.Ext(path), ".dmo") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("demo: reading %s: %w", path, err)
		}
		return FromBlob(data)
	}
	return LoadYAMLFile(path)
}

func decodeOperator(node *yaml.Node) (dmo.Operator, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Value {
		case "NOOP":
			return dmo.NOOP(), nil
		case "Print":
			return dmo.Print(), nil
		default:
			return dmo.Operator{}, fmt.Errorf("unrecognized bare operator %q", node.Value)
		}

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return dmo.Operator{}, fmt.Errorf("operator map must have exactly one key")
		}
		key := node.Content[0].Value
		val := node.Content[1]

		switch key {
		case "Exit":
			limit, err := parseFloat(val)
			if err != nil {
				return dmo.Operator{}, fmt.Errorf("Exit: %w", err)
			}
			return dmo.Exit(limit), nil

		case "Clear":
			code, err := parseUint(val)
			if err != nil {
				return dmo.Operator{}, fmt.Errorf("Clear: %w", err)
			}
			return dmo.Clear(uint32(code)), nil

		case "Draw":
			if val.Kind != yaml.SequenceNode || len(val.Content) != 3 {
				return dmo.Operator{}, fmt.Errorf("Draw expects [spriteIdx, offset, speed]")
			}
			idx, err := parseUint(val.Content[0])
			if err != nil {
				return dmo.Operator{}, fmt.Errorf("Draw spriteIdx: %w", err)
			}
			offset, err := parseUint(val.Content[1])
			if err != nil {
				return dmo.Operator{}, fmt.Errorf("Draw offset: %w", err)
			}
			speed, err := parseFloat(val.Content[2])
			if err != nil {
				return dmo.Operator{}, fmt.Errorf("Draw speed: %w", err)
			}
			return dmo.Draw(uint8(idx), uint8(offset), speed), nil

		default:
			return dmo.Operator{}, fmt.Errorf("unrecognized operator key %q", key)
		}

	default:
		return dmo.Operator{}, fmt.Errorf("unexpected yaml node kind for an operator entry")
	}
}

func parseFloat(node *yaml.Node) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(node.Value), 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

func parseUint(node *yaml.Node) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(node.Value), 10, 64)
}
