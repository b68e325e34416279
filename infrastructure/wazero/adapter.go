package wazero

import (
	"context"
	"io"
	"log/slog"

	"github.com/kaleidort/kaleidort/domain/entities"
	"github.com/kaleidort/kaleidort/intrinsics"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// AdapterConfig holds configuration for the wazero adapter.
type AdapterConfig struct {
	// Logger receives intrinsic failures. Default discards.
	Logger *slog.Logger

	// ModuleName is the import module name (default: "env").
	ModuleName string
}

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithModuleName sets the host module name.
func WithModuleName(name string) AdapterOption {
	return func(c *AdapterConfig) {
		c.ModuleName = name
	}
}

// WithLogger sets the logger for intrinsic failures.
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(c *AdapterConfig) {
		c.Logger = logger
	}
}

func defaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		ModuleName: entities.DefaultModuleName,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// RegisterWithRuntime instantiates a host module exporting every intrinsic in
// registry and returns it. Host functions are called through a guest that
// imports them; the returned module only describes their signatures.
//
// Example:
//
//	mod, err := wazero.RegisterWithRuntime(ctx, runtime, registry)
//	sig := mod.ExportedFunctionDefinitions()["putchard"]
//	prog, err := runtime.Instantiate(ctx, programWasm) // imports env.putchard
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, registry *intrinsics.Registry, opts ...AdapterOption) (api.Module, error) {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	builder := runtime.NewHostModuleBuilder(cfg.ModuleName)

	for _, name := range registry.Names() {
		arity, _ := registry.Arity(name)
		params := make([]api.ValueType, arity)
		for i := range params {
			params[i] = api.ValueTypeF64
		}

		funcName := name
		builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
				handleIntrinsicCall(ctx, mod, stack, registry, funcName, arity, cfg.Logger)
			}), params, []api.ValueType{api.ValueTypeF64}).
			WithName(funcName).
			Export(funcName)
	}

	return builder.Instantiate(ctx)
}

// handleIntrinsicCall decodes f64 arguments from the stack, invokes the
// intrinsic and writes its result back to stack[0].
func handleIntrinsicCall(ctx context.Context, mod api.Module, stack []uint64, registry *intrinsics.Registry, name string, arity int, logger *slog.Logger) {
	args := make([]float64, arity)
	for i := range args {
		args[i] = api.DecodeF64(stack[i])
	}

	program := GetProgramName(ctx, mod)
	result, err := registry.Invoke(WithProgramName(ctx, program), name, args...)
	if err != nil {
		logger.ErrorContext(ctx, "wazero: intrinsic failed", "intrinsic", name, "program", program, "error", err)
		result = 0
	}

	stack[0] = api.EncodeF64(result)
}
