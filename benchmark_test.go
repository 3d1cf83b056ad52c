package lazy_test

import (
	"context"
	"math"
	"testing"

	"github.com/agentstation/lazy"
)

// Benchmark leaf construction.
func BenchmarkValue(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = lazy.Value(i)
	}
}

// Benchmark building and evaluating a map chain.
func BenchmarkMapEvaluate(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		expr := lazy.Map(lazy.Value(2), func(n int) int { return n * n * n })
		_, _ = expr.Evaluate(ctx)
	}
}

// Benchmark a parameter-backed arithmetic tree; graphs are single-use, so
// each iteration builds a fresh one.
func BenchmarkParameterGraph(b *testing.B) {
	ctx := context.Background()
	square := func(n float64) float64 { return n * n }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, setX := lazy.NewParameter[float64]()
		y, setY := lazy.NewParameter[float64]()
		magnitude := lazy.Add[float64](lazy.Map(x, square), lazy.Map(y, square)).Map(math.Sqrt)

		setX.Set(5)
		setY.Set(12)
		_, _ = magnitude.Evaluate(ctx)
	}
}
