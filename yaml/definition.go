// Package yaml loads declarative lazy expression definitions.
//
// A definition describes a numeric (float64) expression tree in YAML:
//
//	name: magnitude
//	expr:
//	  op: add
//	  left:
//	    op: mul
//	    left: {op: param, name: x}
//	    right: {op: param, name: x}
//	  right:
//	    op: mul
//	    left: {op: param, name: y}
//	    right: {op: param, name: y}
//
// Loading a definition produces an unevaluated graph plus named bindings
// for its parameters and documents; callers bind values and evaluate the
// graph exactly once.
package yaml

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrMissingExpression is returned when a definition has no expression.
	ErrMissingExpression = errors.New("yaml: definition has no expression")

	// ErrUnboundDocument is returned when a jsonpath node is evaluated
	// before its document has been bound.
	ErrUnboundDocument = errors.New("yaml: document not provided")
)

// Node operation names accepted in definitions.
const (
	OpValue    = "value"
	OpParam    = "param"
	OpAdd      = "add"
	OpSub      = "sub"
	OpMul      = "mul"
	OpDiv      = "div"
	OpNeg      = "neg"
	OpScript   = "script"
	OpJSONPath = "jsonpath"
)

// Definition is a named, declarative expression.
type Definition struct {
	// Name identifies the expression.
	Name string `yaml:"name"`

	// Description is optional documentation.
	Description string `yaml:"description,omitempty"`

	// Version is an optional definition version.
	Version string `yaml:"version,omitempty"`

	// Expr is the root of the expression tree.
	Expr *NodeDefinition `yaml:"expr"`
}

// NodeDefinition describes one node of the expression tree. Which fields
// apply depends on Op.
type NodeDefinition struct {
	// Op selects the node kind: value, param, add, sub, mul, div, neg,
	// script, or jsonpath.
	Op string `yaml:"op"`

	// Value is the literal for op: value.
	Value *float64 `yaml:"value,omitempty"`

	// Name is the parameter name for op: param.
	Name string `yaml:"name,omitempty"`

	// Left and Right are the operands of binary arithmetic ops.
	Left  *NodeDefinition `yaml:"left,omitempty"`
	Right *NodeDefinition `yaml:"right,omitempty"`

	// Expr is the single child of neg and script nodes.
	Expr *NodeDefinition `yaml:"expr,omitempty"`

	// Source is the Lua source for op: script.
	Source string `yaml:"source,omitempty"`

	// Path is the JSONPath expression for op: jsonpath.
	Path string `yaml:"path,omitempty"`

	// Doc names the document a jsonpath node reads from.
	Doc string `yaml:"doc,omitempty"`
}

// Validate checks the definition for structural problems: a missing root,
// unknown ops, and missing per-op fields.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("yaml: definition has no name")
	}
	if d.Expr == nil {
		return ErrMissingExpression
	}
	return d.Expr.validate()
}

func (n *NodeDefinition) validate() error {
	switch n.Op {
	case OpValue:
		if n.Value == nil {
			return fmt.Errorf("yaml: value node is missing its value")
		}
		return nil

	case OpParam:
		if n.Name == "" {
			return fmt.Errorf("yaml: param node is missing its name")
		}
		return nil

	case OpAdd, OpSub, OpMul, OpDiv:
		if n.Left == nil || n.Right == nil {
			return fmt.Errorf("yaml: %s node needs both left and right operands", n.Op)
		}
		if err := n.Left.validate(); err != nil {
			return err
		}
		return n.Right.validate()

	case OpNeg:
		if n.Expr == nil {
			return fmt.Errorf("yaml: neg node is missing its child expression")
		}
		return n.Expr.validate()

	case OpScript:
		if n.Expr == nil {
			return fmt.Errorf("yaml: script node is missing its child expression")
		}
		if n.Source == "" {
			return fmt.Errorf("yaml: script node is missing its source")
		}
		return n.Expr.validate()

	case OpJSONPath:
		if n.Path == "" {
			return fmt.Errorf("yaml: jsonpath node is missing its path")
		}
		if n.Doc == "" {
			return fmt.Errorf("yaml: jsonpath node is missing its document name")
		}
		return nil

	default:
		return fmt.Errorf("yaml: unknown op %q", n.Op)
	}
}
