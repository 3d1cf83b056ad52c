package yaml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	goyaml "github.com/goccy/go-yaml"
	"github.com/xeipuuv/gojsonschema"
)

// Parser reads YAML expression definitions, validating them against the
// definition schema before unmarshaling.
type Parser struct{}

// NewParser creates a new definition parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a definition from a reader.
func (p *Parser) Parse(r io.Reader) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}

	if err := ValidateSchema(data); err != nil {
		return nil, err
	}

	var def Definition
	if err := goyaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &def, nil
}

// ParseFile reads a definition from a file.
func (p *Parser) ParseFile(filename string) (*Definition, error) {
	// #nosec G304 - definitions are user-supplied files by design
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return p.Parse(file)
}

// ParseString reads a definition from a string.
func (p *Parser) ParseString(s string) (*Definition, error) {
	return p.Parse(bytes.NewReader([]byte(s)))
}

// Marshal converts a definition back to YAML.
func (p *Parser) Marshal(def *Definition) ([]byte, error) {
	data, err := goyaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal YAML: %w", err)
	}
	return data, nil
}

// ValidateSchema checks a raw YAML definition document against the
// definition JSON Schema. Structural checks beyond the schema's reach
// (per-op field requirements) live in Definition.Validate.
func ValidateSchema(data []byte) error {
	// Round-trip through a generic value so the document can be handed to
	// the JSON Schema validator.
	var doc any
	if err := goyaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse YAML: %w", err)
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert definition to JSON: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(definitionSchema)
	documentLoader := gojsonschema.NewBytesLoader(docJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		var errMsg string
		for i, verr := range result.Errors() {
			if i > 0 {
				errMsg += "; "
			}
			errMsg += verr.String()
		}
		return fmt.Errorf("definition validation failed: %s", errMsg)
	}

	return nil
}
