// Package wazero exposes an intrinsic registry to WebAssembly programs through
// the wazero runtime.
//
// A Kaleidoscope program compiled for wasm32 turns each `extern` into a
// function import. This package builds the host module those imports resolve
// against:
//
//   - every allowed intrinsic becomes an export with one f64 param per
//     argument and a single f64 result
//   - arguments and the result travel as raw IEEE-754 bits on the wazero stack
//   - intrinsic errors are logged and the program receives 0.0
//
// # Basic Usage
//
//	registry, err := intrinsics.NewRegistry(
//	    intrinsics.WithBundle(intrinsics.IOBundle(intrinsics.DefaultStreams())),
//	)
//	if err != nil {
//	    return err
//	}
//
//	runtime := wazero.NewRuntime(ctx)
//	_, err = kwazero.RegisterWithRuntime(ctx, runtime, registry,
//	    kwazero.WithModuleName("env"),
//	)
package wazero
