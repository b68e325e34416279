package wazero

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/kaleidort/kaleidort/domain/policy"
	"github.com/kaleidort/kaleidort/intrinsics"
	"github.com/kaleidort/kaleidort/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

func TestDefaultAdapterConfig(t *testing.T) {
	cfg := defaultAdapterConfig()

	assert.Equal(t, "env", cfg.ModuleName)
	assert.NotNil(t, cfg.Logger)
}

func TestAdapterOptions(t *testing.T) {
	cfg := defaultAdapterConfig()
	logger := slog.Default()
	WithModuleName("kaleido")(&cfg)
	WithLogger(logger)(&cfg)

	assert.Equal(t, "kaleido", cfg.ModuleName)
	assert.Same(t, logger, cfg.Logger)
}

func newIORegistry(t *testing.T, stdout, stderr *bytes.Buffer, opts ...intrinsics.RegistryOption) *intrinsics.Registry {
	t.Helper()
	opts = append(opts, intrinsics.WithBundle(intrinsics.IOBundle(intrinsics.Streams{Stdout: stdout, Stderr: stderr})))
	reg, err := intrinsics.NewRegistry(opts...)
	require.NoError(t, err)
	return reg
}

func TestRegisterWithRuntime_Definitions(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	var stdout, stderr bytes.Buffer
	mod, err := RegisterWithRuntime(ctx, rt, newIORegistry(t, &stdout, &stderr))
	require.NoError(t, err)
	assert.Equal(t, "env", mod.Name())

	defs := mod.ExportedFunctionDefinitions()
	require.Len(t, defs, 2)
	for _, name := range []string{"putchard", "printd"} {
		def, ok := defs[name]
		require.True(t, ok, name)
		assert.Equal(t, []api.ValueType{api.ValueTypeF64}, def.ParamTypes(), name)
		assert.Equal(t, []api.ValueType{api.ValueTypeF64}, def.ResultTypes(), name)
	}

	guest := testutil.Forwarders(
		testutil.WasmImport{Module: "env", Name: "putchard", Arity: 1},
		testutil.WasmImport{Module: "env", Name: "printd", Arity: 1},
	).Encode()
	prog, err := rt.Instantiate(ctx, guest)
	require.NoError(t, err)

	results, err := prog.ExportedFunction("call_putchard").Call(ctx, api.EncodeF64(65))
	require.NoError(t, err)
	assert.Equal(t, 0.0, api.DecodeF64(results[0]))

	results, err = prog.ExportedFunction("call_printd").Call(ctx, api.EncodeF64(3.14))
	require.NoError(t, err)
	assert.Equal(t, 0.0, api.DecodeF64(results[0]))

	assert.Equal(t, "A\n", stderr.String())
	assert.Equal(t, "\"3.140000\"\n", stdout.String())
}

func TestRegisterWithRuntime_GuestProgram(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	var stdout, stderr bytes.Buffer
	_, err := RegisterWithRuntime(ctx, rt, newIORegistry(t, &stdout, &stderr))
	require.NoError(t, err)

	guest := testutil.Forwarders(
		testutil.WasmImport{Module: "env", Name: "putchard", Arity: 1},
		testutil.WasmImport{Module: "env", Name: "printd", Arity: 1},
	).Encode()
	prog, err := rt.InstantiateWithConfig(ctx, guest, wazero.NewModuleConfig().WithName("guest"))
	require.NoError(t, err)

	for _, x := range []float64{10.7, 10.0} {
		results, err := prog.ExportedFunction("call_putchard").Call(ctx, api.EncodeF64(x))
		require.NoError(t, err)
		assert.Equal(t, 0.0, api.DecodeF64(results[0]))
	}
	for _, x := range []float64{0, -2.5} {
		results, err := prog.ExportedFunction("call_printd").Call(ctx, api.EncodeF64(x))
		require.NoError(t, err)
		assert.Equal(t, 0.0, api.DecodeF64(results[0]))
	}

	assert.Equal(t, "\n\n\n\n", stderr.String())
	assert.Equal(t, "\"0.000000\"\n\"-2.500000\"\n", stdout.String())
}

func TestRegisterWithRuntime_CustomModuleAndArity(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	reg, err := intrinsics.NewRegistry(
		intrinsics.WithIntrinsic("hypot2", 2, func(ctx context.Context, args []float64) (float64, error) {
			return args[0]*args[0] + args[1]*args[1], nil
		}),
	)
	require.NoError(t, err)

	_, err = RegisterWithRuntime(ctx, rt, reg, WithModuleName("kaleido"))
	require.NoError(t, err)

	guest := testutil.Forwarders(testutil.WasmImport{Module: "kaleido", Name: "hypot2", Arity: 2}).Encode()
	prog, err := rt.Instantiate(ctx, guest)
	require.NoError(t, err)

	results, err := prog.ExportedFunction("call_hypot2").Call(ctx, api.EncodeF64(3), api.EncodeF64(4))
	require.NoError(t, err)
	assert.Equal(t, 25.0, api.DecodeF64(results[0]))
}

func TestRegisterWithRuntime_ErrorYieldsZero(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	var logs bytes.Buffer
	reg, err := intrinsics.NewRegistry(
		intrinsics.WithUnary("fails", func(ctx context.Context, x float64) (float64, error) {
			return 99, errors.New("intrinsic broke")
		}),
	)
	require.NoError(t, err)

	_, err = RegisterWithRuntime(ctx, rt, reg, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)

	guest := testutil.Forwarders(testutil.WasmImport{Module: "env", Name: "fails", Arity: 1}).Encode()
	prog, err := rt.Instantiate(ctx, guest)
	require.NoError(t, err)

	results, err := prog.ExportedFunction("call_fails").Call(ctx, api.EncodeF64(1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, api.DecodeF64(results[0]))
	assert.Contains(t, logs.String(), "intrinsic broke")
	assert.Contains(t, logs.String(), "intrinsic=fails")
}

func TestRegisterWithRuntime_PolicyHidesImport(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	allow, err := policy.New([]string{"printd"})
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	_, err = RegisterWithRuntime(ctx, rt, newIORegistry(t, &stdout, &stderr, intrinsics.WithPolicy(allow)))
	require.NoError(t, err)

	guest := testutil.Forwarders(testutil.WasmImport{Module: "env", Name: "putchard", Arity: 1}).Encode()
	_, err = rt.Instantiate(ctx, guest)
	require.Error(t, err)
}

func TestGetProgramName(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetProgramName(ctx, nil))

	name, ok := ProgramNameFromContext(WithProgramName(ctx, "fib"))
	assert.True(t, ok)
	assert.Equal(t, "fib", name)
	assert.Equal(t, "fib", GetProgramName(WithProgramName(ctx, "fib"), nil))
}
