package host

import (
	"io"
	"log/slog"

	"github.com/kaleidort/kaleidort/intrinsics"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithIntrinsics configures the executor with an intrinsic registry.
func WithIntrinsics(registry *intrinsics.Registry) Option {
	return func(e *Executor) {
		e.registry = registry
	}
}

// WithModuleName sets the import module name programs resolve externs against.
func WithModuleName(name string) Option {
	return func(e *Executor) {
		e.moduleName = name
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithWASIOutput routes WASI fd_write on stdout/stderr. Default: the process streams.
func WithWASIOutput(stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.wasiStdout = stdout
		e.wasiStderr = stderr
	}
}
