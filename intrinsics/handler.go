package intrinsics

import (
	"context"
)

// Intrinsic is the common signature every host dispatches through.
// Kaleidoscope has a single value type, so arguments and result are float64.
type Intrinsic func(ctx context.Context, args []float64) (float64, error)

// UnaryFunc is a one-argument intrinsic body.
type UnaryFunc func(ctx context.Context, x float64) (float64, error)

// Definition pairs an Intrinsic with the number of arguments it takes.
type Definition struct {
	Fn    Intrinsic
	Arity int
}

// Unary adapts a UnaryFunc to a Definition with arity 1.
//
// Usage:
//
//	def := intrinsics.Unary(func(ctx context.Context, x float64) (float64, error) {
//	    return math.Sin(x), nil
//	})
func Unary(fn UnaryFunc) Definition {
	return Definition{
		Arity: 1,
		Fn: func(ctx context.Context, args []float64) (float64, error) {
			return fn(ctx, args[0])
		},
	}
}
