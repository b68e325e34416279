package host

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync/atomic"

	"github.com/kaleidort/kaleidort/domain/entities"
	kwazero "github.com/kaleidort/kaleidort/infrastructure/wazero"
	"github.com/kaleidort/kaleidort/intrinsics"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Executor manages the wazero runtime that compiled programs run in.
type Executor struct {
	runtime    wazero.Runtime
	registry   *intrinsics.Registry
	logger     *slog.Logger
	wasiStdout io.Writer
	wasiStderr io.Writer
	moduleName string
	loaded     atomic.Uint64
}

// NewExecutor creates a new executor with the given options.
// Without WithIntrinsics the executor exposes putchard and printd on the
// process streams.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{
		moduleName: entities.DefaultModuleName,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		wasiStdout: os.Stdout,
		wasiStderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		reg, err := intrinsics.NewRegistry(
			intrinsics.WithMiddleware(intrinsics.PanicRecoveryMiddleware()),
			intrinsics.WithBundle(intrinsics.IOBundle(intrinsics.DefaultStreams())),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create default registry: %w", err)
		}
		e.registry = reg
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if _, err := kwazero.RegisterWithRuntime(ctx, rt, e.registry,
		kwazero.WithModuleName(e.moduleName),
		kwazero.WithLogger(e.logger),
	); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register intrinsics: %w", err)
	}

	return e, nil
}

// Registry returns the intrinsics exposed to programs.
func (e *Executor) Registry() *intrinsics.Registry {
	return e.registry
}

// Close releases the runtime and every program loaded into it.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Program is an instantiated compiled program.
type Program struct {
	module api.Module
	logger *slog.Logger
}

// LoadProgram instantiates a compiled program under name. An empty name is
// replaced by a generated one. Exported `_initialize` runs before returning.
func (e *Executor) LoadProgram(ctx context.Context, name string, wasmBytes []byte) (*Program, error) {
	n := e.loaded.Add(1)
	if name == "" {
		name = fmt.Sprintf("program-%d", n)
	}

	cfg := wazero.NewModuleConfig().
		WithName(name).
		WithStartFunctions().
		WithStdout(e.wasiStdout).
		WithStderr(e.wasiStderr)

	mod, err := e.runtime.InstantiateWithConfig(kwazero.WithProgramName(ctx, name), wasmBytes, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate program %s: %w", name, err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(kwazero.WithProgramName(ctx, name)); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	e.logger.DebugContext(ctx, "host: program loaded", "program", name)
	return &Program{module: mod, logger: e.logger}, nil
}

// Name returns the program's module name.
func (p *Program) Name() string {
	return p.module.Name()
}

// Functions returns the sorted names of the program's exported functions.
func (p *Program) Functions() []string {
	defs := p.module.ExportedFunctionDefinitions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes an exported function that takes only f64 params and returns one f64.
func (p *Program) Call(ctx context.Context, fn string, args ...float64) (float64, error) {
	f := p.module.ExportedFunction(fn)
	if f == nil {
		return 0, fmt.Errorf("program %s has no exported function %q", p.Name(), fn)
	}

	def := f.Definition()
	if err := checkSignature(fn, def, len(args)); err != nil {
		return 0, fmt.Errorf("program %s: %w", p.Name(), err)
	}

	params := make([]uint64, len(args))
	for i, a := range args {
		params[i] = api.EncodeF64(a)
	}

	results, err := f.Call(kwazero.WithProgramName(ctx, p.Name()), params...)
	if err != nil {
		return 0, fmt.Errorf("program %s: %s trapped: %w", p.Name(), fn, err)
	}

	result := api.DecodeF64(results[0])
	p.logger.DebugContext(ctx, "host: program call returned", "program", p.Name(), "function", fn, "result", result)
	return result, nil
}

// Close releases the program's module.
func (p *Program) Close(ctx context.Context) error {
	return p.module.Close(ctx)
}

func checkSignature(fn string, def api.FunctionDefinition, argc int) error {
	params := def.ParamTypes()
	if len(params) != argc {
		return fmt.Errorf("%s expects %d argument(s), got %d", fn, len(params), argc)
	}
	for i, t := range params {
		if t != api.ValueTypeF64 {
			return fmt.Errorf("%s param %d is %s, want f64", fn, i, api.ValueTypeName(t))
		}
	}
	results := def.ResultTypes()
	if len(results) != 1 || results[0] != api.ValueTypeF64 {
		return fmt.Errorf("%s must return a single f64", fn)
	}
	return nil
}
