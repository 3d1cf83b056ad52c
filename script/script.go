// Package script creates lazy expressions backed by sandboxed Lua.
//
// A script receives its input through the global `input` and produces its
// output either by defining a `transform(input)` function or by returning a
// value directly:
//
//	-- as a transform function
//	function transform(input)
//	    return input * 2
//	end
//
//	-- or as a plain return
//	return input * 2
package script

import (
	"context"
	"fmt"

	"github.com/Shopify/go-lua"

	"github.com/agentstation/lazy"
)

// Eval runs a Lua script in a sandboxed state with the given input bound to
// the global `input`. If the script defines a `transform` function it is
// called with the input; otherwise the script's returned value is used. A
// script that produces nothing yields the input unchanged.
func Eval(ctx context.Context, source string, input any) (any, error) {
	l := lua.NewState()
	setupSandbox(l)

	pushValue(l, input)
	l.SetGlobal("input")

	if err := lua.DoString(l, source); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	// Prefer an explicit transform function if the script defined one.
	l.Global("transform")
	if l.TypeOf(-1) == lua.TypeFunction {
		pushValue(l, input)
		if err := l.ProtectedCall(1, 1, 0); err != nil {
			return nil, fmt.Errorf("script: transform: %w", err)
		}
		result := pullValue(l, -1)
		l.Pop(1)
		return result, nil
	}
	l.Pop(1)

	// Otherwise use whatever the script returned.
	if l.Top() > 0 {
		result := pullValue(l, -1)
		l.Pop(1)
		return result, nil
	}

	return input, nil
}

// Func creates a numeric thunk from a Lua script. The script runs once,
// when the expression is evaluated, and must produce a number.
func Func(source string) lazy.Lazy[float64] {
	return lazy.TryFunc(func(ctx context.Context) (float64, error) {
		out, err := Eval(ctx, source, nil)
		if err != nil {
			return 0, err
		}
		return Number(out)
	})
}

// Map defers a Lua transform over a numeric expression. The child's value
// is exposed to the script as `input`; the script must produce a number.
func Map(e lazy.Expression[float64], source string) lazy.Lazy[float64] {
	return lazy.TryMap(e, func(ctx context.Context, v float64) (float64, error) {
		out, err := Eval(ctx, source, v)
		if err != nil {
			return 0, err
		}
		return Number(out)
	})
}

// Number coerces a script result into a float64.
func Number(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("script: result %T is not a number", v)
	}
}
