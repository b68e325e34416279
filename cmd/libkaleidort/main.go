// Command libkaleidort builds the putchard and printd intrinsics as a C
// shared library for native hosts that JIT or link compiled programs:
//
//	go build -buildmode=c-shared -o libkaleidort.so ./cmd/libkaleidort
//
// cgo writes the matching libkaleidort.h next to the library.
//
// putchard and printd write straight to file descriptors 2 and 1, bypassing
// C stdio buffers, so a host mixing its own printf with printd may see lines
// in a different order unless it flushes stdout before each call.
package main

// main is required by -buildmode=c-shared and never runs.
func main() {}
