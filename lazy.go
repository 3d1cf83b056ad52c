package lazy

import (
	"context"
	"errors"
)

// Common errors.
var (
	// ErrUnboundParameter is returned when a parameter is evaluated before
	// a value has been bound to its slot.
	ErrUnboundParameter = errors.New("lazy: parameter value not provided")
)

// Expression is the core contract for all nodes in an expression tree.
//
// Evaluate walks the node and its children depth-first and returns the
// computed value. Children are always evaluated before their parent;
// binary combinators evaluate their left operand before the right one.
//
// Every expression is single-use: Evaluate consumes the node and,
// transitively, its children. Evaluating the same node twice is undefined
// (for parameter-backed trees it fails with ErrUnboundParameter unless the
// parameter was re-bound in between).
type Expression[T any] interface {
	Evaluate(ctx context.Context) (T, error)
}

// Lazy is a transparent wrapper around an Expression. It carries no state
// of its own; it exists so user-facing expression handles share a uniform
// type with chainable methods regardless of the node variant they wrap.
type Lazy[T any] struct {
	expr Expression[T]
}

// Wrap lifts an expression into a Lazy handle.
func Wrap[T any](expr Expression[T]) Lazy[T] {
	return Lazy[T]{expr: expr}
}

// Evaluate forwards to the wrapped expression.
func (l Lazy[T]) Evaluate(ctx context.Context) (T, error) {
	return l.expr.Evaluate(ctx)
}

// Map defers a same-type transform over the wrapped expression, enabling
// method chaining. For transforms that change the value type, use the
// package-level Map function (methods cannot introduce type parameters).
func (l Lazy[T]) Map(f func(T) T) Lazy[T] {
	return Map[T, T](l.expr, f)
}

// Clone returns a handle over the same expression tree. Nodes are
// immutable, so the clone shares them; parameter slots in particular remain
// shared, which is what allows a graph to be built once, cloned, and each
// copy evaluated with different bindings.
func (l Lazy[T]) Clone() Lazy[T] {
	return l
}

// valueExpr holds one immediate value.
type valueExpr[T any] struct {
	value T
}

func (e valueExpr[T]) Evaluate(ctx context.Context) (T, error) {
	return e.value, nil
}

// Value creates an expression that evaluates to the given value.
func Value[T any](value T) Lazy[T] {
	return Wrap[T](valueExpr[T]{value: value})
}

// funcExpr holds a zero-argument function, invoked once on evaluation.
type funcExpr[T any] struct {
	fn func(ctx context.Context) (T, error)
}

func (e funcExpr[T]) Evaluate(ctx context.Context) (T, error) {
	return e.fn(ctx)
}

// Func creates an expression from a pure zero-argument function. The
// function runs exactly once, when the expression is evaluated.
func Func[T any](f func() T) Lazy[T] {
	return Wrap[T](funcExpr[T]{fn: func(context.Context) (T, error) {
		return f(), nil
	}})
}

// TryFunc creates an expression from a fallible zero-argument function.
// An error from the function propagates unmodified to the Evaluate caller.
func TryFunc[T any](f func(ctx context.Context) (T, error)) Lazy[T] {
	return Wrap[T](funcExpr[T]{fn: f})
}

// mapExpr applies a transform to the result of an inner expression.
type mapExpr[T, U any] struct {
	inner Expression[T]
	fn    func(ctx context.Context, v T) (U, error)
}

func (e mapExpr[T, U]) Evaluate(ctx context.Context) (U, error) {
	v, err := e.inner.Evaluate(ctx)
	if err != nil {
		var zero U
		return zero, err
	}
	return e.fn(ctx, v)
}

// Map defers a pure transform over an expression. The inner expression is
// evaluated first, then the transform is applied to its result. Nothing
// runs until the returned expression is evaluated.
func Map[T, U any](e Expression[T], f func(T) U) Lazy[U] {
	return Wrap[U](mapExpr[T, U]{
		inner: e,
		fn: func(_ context.Context, v T) (U, error) {
			return f(v), nil
		},
	})
}

// TryMap defers a fallible transform over an expression. An error from the
// transform propagates unmodified; an error from the inner expression
// short-circuits the transform entirely.
func TryMap[T, U any](e Expression[T], f func(ctx context.Context, v T) (U, error)) Lazy[U] {
	return Wrap[U](mapExpr[T, U]{inner: e, fn: f})
}
