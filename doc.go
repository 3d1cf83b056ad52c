/*
Package lazy provides deferred computation through composable, single-use
expression trees.

Key features:
  - Small, composable Expression interface
  - Type-safe composition with generics
  - Deferred arithmetic over numeric expressions
  - Parameters bound after construction, before evaluation
  - Zero external dependencies in core

An Expression represents a computation that has not happened yet. Leaf
expressions wrap an immediate value or a zero-argument function; combinators
wrap child expressions together with a transform or arithmetic operator.
Nothing runs until Evaluate is called, which walks the tree depth-first and
returns the final typed value.

Basic usage:

	// Wrap an immediate value
	two := lazy.Value(2)

	// Defer a transform; nothing runs yet
	cubed := lazy.Map(two, func(n int) int { return n * n * n })

	// Trigger the computation
	result, err := cubed.Evaluate(context.Background())
	// result == 8

Deferred arithmetic:

	area := lazy.Mul[float64](lazy.Value(3.0), lazy.Value(4.0))
	total, err := area.Evaluate(ctx)

Parameters:

Parameters are placeholders bound after the expression referencing them has
been built. Each NewParameter call returns a read handle (used inside the
tree) and a write handle (used outside to bind the value):

	x, setX := lazy.NewParameter[float64]()
	y, setY := lazy.NewParameter[float64]()

	square := func(n float64) float64 { return n * n }
	magnitude := lazy.Add[float64](lazy.Map(x, square), lazy.Map(y, square)).Map(math.Sqrt)
	spare := magnitude.Clone()

	setX.Set(5)
	setY.Set(12)
	m, err := magnitude.Evaluate(ctx) // 13

	setX.Set(5)
	setY.Set(3)
	m, err = spare.Evaluate(ctx) // ~5.83

Every expression is single-use: evaluating it consumes it and, transitively,
its children. Build a fresh tree (or clone one up front) for each evaluation.

Subpackages build on the core: batch evaluates independent graphs
concurrently, yaml loads declarative expression definitions, script supplies
Lua-backed thunks and transforms, and cmd/lazycalc wraps it all in a CLI.
*/
package lazy
