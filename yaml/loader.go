package yaml

import (
	"context"
	"fmt"
	"log"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/agentstation/lazy"
	"github.com/agentstation/lazy/script"
)

// Loader builds evaluatable graphs from definitions.
type Loader struct {
	verbose bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithVerbose enables load-time logging.
func WithVerbose() LoaderOption {
	return func(l *Loader) {
		l.verbose = true
	}
}

// NewLoader creates a new graph loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Graph is a loaded, unevaluated expression together with the external
// bindings it needs: one Binding per parameter name and one Document per
// document name. Like every lazy expression it is single-use.
type Graph struct {
	// Name is the definition name.
	Name string

	// Expr is the root expression.
	Expr lazy.Lazy[float64]

	// Params maps parameter names to their write-side bindings.
	Params map[string]*Binding

	// Docs maps document names to their bindable JSON documents.
	Docs map[string]*Document
}

// Evaluate consumes the graph and returns its value.
func (g *Graph) Evaluate(ctx context.Context) (float64, error) {
	return g.Expr.Evaluate(ctx)
}

// SetParam binds a value to a named parameter.
func (g *Graph) SetParam(name string, value float64) error {
	binding, ok := g.Params[name]
	if !ok {
		return fmt.Errorf("yaml: unknown parameter %q", name)
	}
	binding.Set(value)
	return nil
}

// Binding is the write side of one named parameter. A parameter name may
// appear at several places in a definition; each occurrence owns its own
// single-use slot, and Set fills them all.
type Binding struct {
	contents []lazy.ParameterContent[float64]
}

// Set binds a value to every occurrence of the parameter, overwriting any
// value bound earlier.
func (b *Binding) Set(value float64) {
	for _, c := range b.contents {
		c.Set(value)
	}
}

// Document is a bindable JSON document read by jsonpath nodes. Unlike a
// parameter slot it is not consumed on read: several jsonpath nodes may
// extract from the same document during one evaluation.
type Document struct {
	data  any
	bound bool
}

// Set binds already-parsed document data.
func (d *Document) Set(data any) {
	d.data = data
	d.bound = true
}

// SetJSON parses raw JSON and binds the result.
func (d *Document) SetJSON(raw []byte) error {
	data, err := oj.Parse(raw)
	if err != nil {
		return fmt.Errorf("yaml: parse document JSON: %w", err)
	}
	d.Set(data)
	return nil
}

// Load validates a definition and builds its graph. JSONPath expressions
// are compiled at load time so malformed paths fail before evaluation.
func (l *Loader) Load(def *Definition) (*Graph, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	g := &Graph{
		Name:   def.Name,
		Params: make(map[string]*Binding),
		Docs:   make(map[string]*Document),
	}

	expr, err := l.build(def.Expr, g)
	if err != nil {
		return nil, err
	}
	g.Expr = expr

	if l.verbose {
		log.Printf("loaded graph %q: %d parameters, %d documents", g.Name, len(g.Params), len(g.Docs))
	}

	return g, nil
}

func (l *Loader) build(nd *NodeDefinition, g *Graph) (lazy.Lazy[float64], error) {
	switch nd.Op {
	case OpValue:
		return lazy.Value(*nd.Value), nil

	case OpParam:
		param, content := lazy.NewParameter[float64]()
		binding, ok := g.Params[nd.Name]
		if !ok {
			binding = &Binding{}
			g.Params[nd.Name] = binding
		}
		binding.contents = append(binding.contents, content)
		return lazy.Wrap[float64](param), nil

	case OpAdd, OpSub, OpMul, OpDiv:
		left, err := l.build(nd.Left, g)
		if err != nil {
			return lazy.Lazy[float64]{}, err
		}
		right, err := l.build(nd.Right, g)
		if err != nil {
			return lazy.Lazy[float64]{}, err
		}
		switch nd.Op {
		case OpAdd:
			return lazy.Add[float64](left, right), nil
		case OpSub:
			return lazy.Sub[float64](left, right), nil
		case OpMul:
			return lazy.Mul[float64](left, right), nil
		default:
			return lazy.Div[float64](left, right), nil
		}

	case OpNeg:
		child, err := l.build(nd.Expr, g)
		if err != nil {
			return lazy.Lazy[float64]{}, err
		}
		return lazy.Neg[float64](child), nil

	case OpScript:
		child, err := l.build(nd.Expr, g)
		if err != nil {
			return lazy.Lazy[float64]{}, err
		}
		return script.Map(child, nd.Source), nil

	case OpJSONPath:
		return l.buildJSONPath(nd, g)

	default:
		// Validate rejects unknown ops before build runs.
		return lazy.Lazy[float64]{}, fmt.Errorf("yaml: unknown op %q", nd.Op)
	}
}

func (l *Loader) buildJSONPath(nd *NodeDefinition, g *Graph) (lazy.Lazy[float64], error) {
	pathExpr, err := jp.ParseString(nd.Path)
	if err != nil {
		return lazy.Lazy[float64]{}, fmt.Errorf("yaml: invalid JSONPath %q: %w", nd.Path, err)
	}

	doc, ok := g.Docs[nd.Doc]
	if !ok {
		doc = &Document{}
		g.Docs[nd.Doc] = doc
	}

	docName, path := nd.Doc, nd.Path
	return lazy.TryFunc(func(ctx context.Context) (float64, error) {
		if !doc.bound {
			return 0, fmt.Errorf("%w: %q", ErrUnboundDocument, docName)
		}

		results := pathExpr.Get(doc.data)
		if len(results) == 0 {
			return 0, fmt.Errorf("yaml: JSONPath %q matched nothing in document %q", path, docName)
		}

		n, err := toNumber(results[0])
		if err != nil {
			return 0, fmt.Errorf("yaml: JSONPath %q in document %q: %w", path, docName, err)
		}
		return n, nil
	}), nil
}

// toNumber coerces a JSONPath match into a float64. ojg yields float64 for
// JSON decimals and int64 for JSON integers.
func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("matched value %T is not a number", v)
	}
}
