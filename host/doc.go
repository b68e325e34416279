// Package host runs Kaleidoscope programs compiled to WebAssembly.
//
// It owns the wazero runtime, instantiates WASI, registers the intrinsic
// registry as the import module programs link against, and calls exported
// program functions with float64 arguments.
package host
