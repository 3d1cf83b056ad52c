package yaml_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/agentstation/lazy/yaml"
)

const magnitudeYAML = `name: magnitude
description: sqrt(x^2 + y^2)
version: "1.0.0"
expr:
  op: script
  source: return math.sqrt(input)
  expr:
    op: add
    left:
      op: mul
      left: {op: param, name: x}
      right: {op: param, name: x}
    right:
      op: mul
      left: {op: param, name: y}
      right: {op: param, name: y}
`

func TestParserParse(t *testing.T) {
	p := yaml.NewParser()

	def, err := p.ParseString(magnitudeYAML)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if def.Name != "magnitude" {
		t.Errorf("Name = %q, want %q", def.Name, "magnitude")
	}
	if def.Expr == nil {
		t.Fatal("Expr = nil")
	}
	if def.Expr.Op != yaml.OpScript {
		t.Errorf("root op = %q, want %q", def.Expr.Op, yaml.OpScript)
	}
	if def.Expr.Expr == nil || def.Expr.Expr.Op != yaml.OpAdd {
		t.Errorf("script child op missing or wrong: %+v", def.Expr.Expr)
	}
	if err := def.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParserSchemaRejections(t *testing.T) {
	p := yaml.NewParser()

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown op",
			doc: `name: bad
expr:
  op: exponentiate
  left: {op: value, value: 2}
  right: {op: value, value: 3}
`,
		},
		{
			name: "unknown field",
			doc: `name: bad
expr:
  op: value
  value: 1
  bogus: field
`,
		},
		{
			name: "missing name",
			doc: `expr:
  op: value
  value: 1
`,
		},
		{
			name: "non-numeric value",
			doc: `name: bad
expr:
  op: value
  value: "two"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.ParseString(tt.doc); err == nil {
				t.Error("ParseString() error = nil, want schema violation")
			}
		})
	}
}

func TestDefinitionValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     yaml.Definition
		wantErr string
	}{
		{
			name:    "missing expr",
			def:     yaml.Definition{Name: "x"},
			wantErr: "no expression",
		},
		{
			name: "value without value",
			def: yaml.Definition{
				Name: "x",
				Expr: &yaml.NodeDefinition{Op: yaml.OpValue},
			},
			wantErr: "missing its value",
		},
		{
			name: "param without name",
			def: yaml.Definition{
				Name: "x",
				Expr: &yaml.NodeDefinition{Op: yaml.OpParam},
			},
			wantErr: "missing its name",
		},
		{
			name: "add without right operand",
			def: yaml.Definition{
				Name: "x",
				Expr: &yaml.NodeDefinition{
					Op:   yaml.OpAdd,
					Left: &yaml.NodeDefinition{Op: yaml.OpParam, Name: "a"},
				},
			},
			wantErr: "both left and right",
		},
		{
			name: "script without source",
			def: yaml.Definition{
				Name: "x",
				Expr: &yaml.NodeDefinition{
					Op:   yaml.OpScript,
					Expr: &yaml.NodeDefinition{Op: yaml.OpParam, Name: "a"},
				},
			},
			wantErr: "missing its source",
		},
		{
			name: "jsonpath without doc",
			def: yaml.Definition{
				Name: "x",
				Expr: &yaml.NodeDefinition{Op: yaml.OpJSONPath, Path: "$.a"},
			},
			wantErr: "missing its document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}

	t.Run("missing expr sentinel", func(t *testing.T) {
		def := yaml.Definition{Name: "x"}
		if err := def.Validate(); !errors.Is(err, yaml.ErrMissingExpression) {
			t.Errorf("Validate() error = %v, want ErrMissingExpression", err)
		}
	})
}

func TestParserMarshalRoundTrip(t *testing.T) {
	p := yaml.NewParser()

	def, err := p.ParseString(magnitudeYAML)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	data, err := p.Marshal(def)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	again, err := p.Parse(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("re-Parse() error = %v", err)
	}
	if again.Name != def.Name {
		t.Errorf("round-tripped Name = %q, want %q", again.Name, def.Name)
	}
}
