package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kaleidort/kaleidort/domain/entities"
	"github.com/kaleidort/kaleidort/domain/policy"
	"github.com/kaleidort/kaleidort/intrinsics"
	"github.com/kaleidort/kaleidort/log"
)

// Runtime is the set of collaborators a Config describes.
type Runtime struct {
	Config   entities.Config
	Registry *intrinsics.Registry
	Logger   *slog.Logger
	Streams  intrinsics.Streams

	// Captured holds program output when MaxCaptureBytes > 0, nil otherwise.
	Captured *Captured

	closers []func() error
}

// Captured holds bounded copies of what the intrinsics wrote.
type Captured struct {
	Stdout *intrinsics.BoundedBuffer
	Stderr *intrinsics.BoundedBuffer
}

// Assemble opens the configured streams and log sink and builds the
// intrinsic registry. Callers must Close the Runtime.
func Assemble(cfg entities.Config) (*Runtime, error) {
	rt := &Runtime{Config: cfg}

	logger, err := rt.openLogger()
	if err != nil {
		return nil, err
	}
	rt.Logger = logger

	if cfg.MaxCaptureBytes > 0 {
		rt.Captured = &Captured{
			Stdout: intrinsics.NewBoundedBuffer(cfg.MaxCaptureBytes),
			Stderr: intrinsics.NewBoundedBuffer(cfg.MaxCaptureBytes),
		}
		rt.Streams = intrinsics.Streams{Stdout: rt.Captured.Stdout, Stderr: rt.Captured.Stderr}
	} else {
		streams, closeStreams, err := intrinsics.OpenStreams(cfg.Stdout, cfg.Stderr)
		if err != nil {
			_ = rt.Close()
			return nil, err
		}
		rt.closers = append(rt.closers, closeStreams)
		rt.Streams = streams
	}

	allow, err := policy.New(cfg.Allow)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}

	var bundleOpts []intrinsics.BundleOption
	if cfg.ReportWriteErrors {
		bundleOpts = append(bundleOpts, intrinsics.WithWriteErrorHandler(intrinsics.LogWriteErrors(logger)))
	}

	registry, err := intrinsics.NewRegistry(
		intrinsics.WithMiddleware(
			intrinsics.PanicRecoveryMiddleware(),
			intrinsics.LoggingMiddleware(logger),
		),
		intrinsics.WithPolicy(allow),
		intrinsics.WithBundle(intrinsics.IOBundle(rt.Streams, bundleOpts...)),
	)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("failed to build intrinsic registry: %w", err)
	}
	rt.Registry = registry

	return rt, nil
}

func (rt *Runtime) openLogger() (*slog.Logger, error) {
	level := log.WithLevel(log.ParseLevel(rt.Config.LogLevel))

	var sink io.Writer
	switch rt.Config.LogFile {
	case "":
		sink = io.Discard
	case entities.StreamProcess:
		sink = os.Stderr
	default:
		f, err := os.OpenFile(rt.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		rt.closers = append(rt.closers, f.Close)
		sink = f
	}
	return log.New(sink, level), nil
}

// Close releases files opened by Assemble.
func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i]())
	}
	rt.closers = nil
	return errors.Join(errs...)
}
