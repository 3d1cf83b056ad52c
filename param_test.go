package lazy_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/agentstation/lazy"
)

func TestParameterRoundTrip(t *testing.T) {
	ctx := context.Background()

	param, setter := lazy.NewParameter[uint32]()
	expr := lazy.Map(param, func(n uint32) uint32 { return n * n * n })

	setter.Set(10)

	got, err := expr.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got != 1000 {
		t.Errorf("Evaluate() = %v, want 1000", got)
	}
}

func TestParameterPrefilled(t *testing.T) {
	ctx := context.Background()

	param, _ := lazy.NewParameterWith[uint32](10)
	expr := lazy.Map(param, func(n uint32) uint32 { return n * n * n })

	got, err := expr.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got != 1000 {
		t.Errorf("Evaluate() = %v, want 1000", got)
	}
}

func TestParameterOverwrite(t *testing.T) {
	ctx := context.Background()

	param, setter := lazy.NewParameterWith[uint32](10)
	expr := lazy.Map(param, func(n uint32) uint32 { return n * n * n })

	// Overwrites silently drop the previous value.
	setter.Set(2)

	got, err := expr.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got != 8 {
		t.Errorf("Evaluate() = %v, want 8", got)
	}
}

func TestParameterUnbound(t *testing.T) {
	ctx := context.Background()

	param, _ := lazy.NewParameter[uint32]()
	expr := lazy.Map(param, func(n uint32) uint32 { return n * n * n })

	_, err := expr.Evaluate(ctx)
	if !errors.Is(err, lazy.ErrUnboundParameter) {
		t.Errorf("Evaluate() error = %v, want ErrUnboundParameter", err)
	}
}

func TestParameterConsumedOnEvaluate(t *testing.T) {
	ctx := context.Background()

	param, setter := lazy.NewParameter[int]()
	setter.Set(1)

	if _, err := param.Evaluate(ctx); err != nil {
		t.Fatalf("first Evaluate() error = %v", err)
	}

	// The slot was drained by the first evaluation.
	_, err := param.Evaluate(ctx)
	if !errors.Is(err, lazy.ErrUnboundParameter) {
		t.Errorf("second Evaluate() error = %v, want ErrUnboundParameter", err)
	}
}

func TestParameterSharedWriteHandles(t *testing.T) {
	ctx := context.Background()

	param, setter := lazy.NewParameter[int]()

	// Copies of the write handle share the slot.
	other := setter
	other.Set(5)
	setter.Set(6)

	got, err := param.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got != 6 {
		t.Errorf("Evaluate() = %v, want 6", got)
	}
}

func TestParameterFreshSlots(t *testing.T) {
	ctx := context.Background()

	// Separate NewParameter calls never share binding state.
	a, setA := lazy.NewParameter[int]()
	b, _ := lazy.NewParameter[int]()

	setA.Set(1)

	if _, err := a.Evaluate(ctx); err != nil {
		t.Fatalf("Evaluate(a) error = %v", err)
	}
	if _, err := b.Evaluate(ctx); !errors.Is(err, lazy.ErrUnboundParameter) {
		t.Errorf("Evaluate(b) error = %v, want ErrUnboundParameter", err)
	}
}

func TestParameterComplexExpression(t *testing.T) {
	ctx := context.Background()

	square := func(n float64) float64 { return n * n }

	x, setX := lazy.NewParameter[float64]()
	y, setY := lazy.NewParameter[float64]()

	magnitude := lazy.Add[float64](lazy.Map(x, square), lazy.Map(y, square)).Map(math.Sqrt)
	magnitude2 := magnitude.Clone()

	setX.Set(5)
	setY.Set(12)
	got, err := magnitude.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got != 13.0 {
		t.Errorf("Evaluate() = %v, want 13", got)
	}

	// Re-bind and evaluate the clone with different inputs.
	setX.Set(5)
	setY.Set(3)
	got, err = magnitude2.Evaluate(ctx)
	if err != nil {
		t.Fatalf("clone Evaluate() error = %v", err)
	}
	if math.Abs(got-5.8309518948453) > 1e-12 {
		t.Errorf("clone Evaluate() = %v, want ~5.8309518948453", got)
	}
}
