package lazy

import (
	"context"

	"golang.org/x/exp/constraints"
)

// Number covers every built-in numeric type the arithmetic combinators
// accept.
type Number interface {
	constraints.Integer | constraints.Float
}

// binaryExpr combines two child expressions of the same numeric type with
// an operator. The left operand is evaluated before the right one, each
// exactly once.
type binaryExpr[T Number] struct {
	left  Expression[T]
	right Expression[T]
	op    func(a, b T) T
}

func (e binaryExpr[T]) Evaluate(ctx context.Context) (T, error) {
	var zero T
	a, err := e.left.Evaluate(ctx)
	if err != nil {
		return zero, err
	}
	b, err := e.right.Evaluate(ctx)
	if err != nil {
		return zero, err
	}
	return e.op(a, b), nil
}

func combine[T Number](left, right Expression[T], op func(a, b T) T) Lazy[T] {
	return Wrap[T](binaryExpr[T]{left: left, right: right, op: op})
}

// Add defers the sum of two numeric expressions.
func Add[T Number](left, right Expression[T]) Lazy[T] {
	return combine(left, right, func(a, b T) T { return a + b })
}

// Sub defers the difference of two numeric expressions.
func Sub[T Number](left, right Expression[T]) Lazy[T] {
	return combine(left, right, func(a, b T) T { return a - b })
}

// Mul defers the product of two numeric expressions.
func Mul[T Number](left, right Expression[T]) Lazy[T] {
	return combine(left, right, func(a, b T) T { return a * b })
}

// Div defers the quotient of two numeric expressions. The division itself
// follows Go semantics: integer division by zero panics at evaluation time,
// floating-point division by zero yields an infinity.
func Div[T Number](left, right Expression[T]) Lazy[T] {
	return combine(left, right, func(a, b T) T { return a / b })
}

// Mod defers the remainder of two integer expressions.
func Mod[T constraints.Integer](left, right Expression[T]) Lazy[T] {
	return Wrap[T](binaryExpr[T]{left: left, right: right, op: func(a, b T) T {
		return a % b
	}})
}

// Neg defers the negation of a numeric expression.
func Neg[T Number](e Expression[T]) Lazy[T] {
	return Map(e, func(v T) T { return -v })
}
