package intrinsics

import (
	"context"
	"log/slog"

	"github.com/kaleidort/kaleidort/domain/errors"
)

// Bundle is a pre-configured set of related intrinsics.
type Bundle interface {
	// Definitions returns the intrinsics keyed by name.
	Definitions() map[string]Definition
}

// WriteErrorHandler observes write failures that the intrinsics swallow.
// It never changes the value returned to the program.
type WriteErrorHandler func(ctx context.Context, err *errors.WriteError)

// BundleOption configures a bundle.
type BundleOption func(*bundleConfig)

type bundleConfig struct {
	onWriteError WriteErrorHandler
}

// WithWriteErrorHandler installs an observer for swallowed write failures.
func WithWriteErrorHandler(h WriteErrorHandler) BundleOption {
	return func(c *bundleConfig) {
		c.onWriteError = h
	}
}

// LogWriteErrors returns a WriteErrorHandler that logs through logger.
func LogWriteErrors(logger *slog.Logger) WriteErrorHandler {
	return func(ctx context.Context, err *errors.WriteError) {
		logger.WarnContext(ctx, "intrinsic output dropped", "stream", err.Stream, "error", err.Err)
	}
}

type staticBundle struct {
	definitions map[string]Definition
}

func (b *staticBundle) Definitions() map[string]Definition {
	return b.definitions
}

// IOBundle returns the standard I/O intrinsics bound to streams:
// putchard (writes to streams.Stderr) and printd (writes to streams.Stdout).
func IOBundle(streams Streams, opts ...BundleOption) Bundle {
	var cfg bundleConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	report := func(ctx context.Context, stream string, err error) {
		if err != nil && cfg.onWriteError != nil {
			cfg.onWriteError(ctx, &errors.WriteError{Stream: stream, Err: err})
		}
	}

	return &staticBundle{
		definitions: map[string]Definition{
			"putchard": Unary(func(ctx context.Context, x float64) (float64, error) {
				report(ctx, "stderr", EmitChar(streams.Stderr, x))
				return 0, nil
			}),
			"printd": Unary(func(ctx context.Context, x float64) (float64, error) {
				report(ctx, "stdout", PrintDouble(streams.Stdout, x))
				return 0, nil
			}),
		},
	}
}

// compositeBundle combines multiple bundles into one.
// Later bundles override earlier ones on name clashes.
type compositeBundle struct {
	bundles []Bundle
}

func (b *compositeBundle) Definitions() map[string]Definition {
	result := make(map[string]Definition)
	for _, bundle := range b.bundles {
		for name, def := range bundle.Definitions() {
			result[name] = def
		}
	}
	return result
}

// Combine merges bundles into one.
func Combine(bundles ...Bundle) Bundle {
	return &compositeBundle{bundles: bundles}
}

// WithBundle registers every intrinsic from a bundle.
func WithBundle(bundle Bundle) RegistryOption {
	return func(b *registryBuilder) {
		for name, def := range bundle.Definitions() {
			if err := b.add(name, def); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}
