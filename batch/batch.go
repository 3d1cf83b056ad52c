// Package batch evaluates independent lazy expression graphs concurrently.
//
// A single graph must never be evaluated from more than one goroutine, but
// separate graphs share no state (unless they were built over the same
// parameter slots), so a set of them can be evaluated in parallel safely.
package batch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/lazy"
)

// Option configures batch evaluation.
type Option func(*options)

type options struct {
	maxConcurrency int
}

// WithConcurrency sets the maximum number of concurrent workers.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.maxConcurrency = n
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		maxConcurrency: 10, // default
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Evaluate evaluates each expression exactly once and returns the results
// in input order. Evaluation is fail-fast: the first error cancels the
// remaining work and is returned to the caller.
//
// The expressions must be independent graphs. Passing two expressions that
// share a node or a parameter slot violates the single-use contract.
func Evaluate[T any](ctx context.Context, exprs []lazy.Expression[T], opts ...Option) ([]T, error) {
	if len(exprs) == 0 {
		return nil, nil
	}

	o := applyOptions(opts)
	if o.maxConcurrency <= 1 {
		return evaluateSequential(ctx, exprs)
	}
	return evaluateConcurrent(ctx, exprs, o.maxConcurrency)
}

// Sweep builds one fresh graph per input and evaluates them concurrently.
// Graphs are consumed by evaluation, so a sweep cannot reuse a single
// graph; the build function is invoked once per input to produce it.
func Sweep[P, T any](ctx context.Context, inputs []P, build func(P) lazy.Expression[T], opts ...Option) ([]T, error) {
	exprs := make([]lazy.Expression[T], len(inputs))
	for i, input := range inputs {
		exprs[i] = build(input)
	}
	return Evaluate(ctx, exprs, opts...)
}

// evaluateSequential evaluates graphs one by one.
func evaluateSequential[T any](ctx context.Context, exprs []lazy.Expression[T]) ([]T, error) {
	results := make([]T, len(exprs))

	for i, expr := range exprs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := expr.Evaluate(ctx)
		if err != nil {
			return nil, fmt.Errorf("expression %d: %w", i, err)
		}
		results[i] = result
	}

	return results, nil
}

// evaluateConcurrent evaluates graphs with a worker pool.
func evaluateConcurrent[T any](ctx context.Context, exprs []lazy.Expression[T], maxConcurrency int) ([]T, error) {
	g, ctx := errgroup.WithContext(ctx)

	results := make([]T, len(exprs))
	var mu sync.Mutex

	work := make(chan int, len(exprs))
	for i := range exprs {
		work <- i
	}
	close(work)

	for w := 0; w < maxConcurrency && w < len(exprs); w++ {
		g.Go(func() error {
			for idx := range work {
				result, err := exprs[idx].Evaluate(ctx)
				if err != nil {
					return fmt.Errorf("expression %d: %w", idx, err)
				}

				mu.Lock()
				results[idx] = result
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
