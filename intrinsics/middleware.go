package intrinsics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kaleidort/kaleidort/domain/errors"
)

// Middleware wraps an Intrinsic to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
//
// Example usage:
//
//	counting := func(next Intrinsic) Intrinsic {
//	    return func(ctx context.Context, args []float64) (float64, error) {
//	        calls.Add(1)
//	        return next(ctx, args)
//	    }
//	}
type Middleware func(next Intrinsic) Intrinsic

// PanicRecoveryMiddleware returns a middleware that turns a panic inside an
// intrinsic into an *errors.IntrinsicError instead of unwinding into the
// calling program.
func PanicRecoveryMiddleware() Middleware {
	return func(next Intrinsic) Intrinsic {
		return func(ctx context.Context, args []float64) (result float64, err error) {
			defer func() {
				if r := recover(); r != nil {
					cause, ok := r.(error)
					if !ok {
						cause = fmt.Errorf("%v", r)
					}
					result = 0
					err = &errors.IntrinsicError{Name: nameFrom(ctx), Err: cause, Panic: true}
				}
			}()
			return next(ctx, args)
		}
	}
}

// LoggingMiddleware returns a middleware that logs every call at debug level
// and failures at warn level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next Intrinsic) Intrinsic {
		return func(ctx context.Context, args []float64) (float64, error) {
			name := nameFrom(ctx)
			logger.DebugContext(ctx, "invoking intrinsic", "intrinsic", name, "args", args)
			result, err := next(ctx, args)
			if err != nil {
				logger.WarnContext(ctx, "intrinsic failed", "intrinsic", name, "error", err)
			} else {
				logger.DebugContext(ctx, "intrinsic completed", "intrinsic", name, "result", result)
			}
			return result, err
		}
	}
}
