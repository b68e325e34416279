// Package intrinsics provides the pure Go implementations of the runtime
// functions that compiled Kaleidoscope programs call through `extern`.
//
// The two core intrinsics are putchard, which writes a character code and a
// line feed to the error stream, and printd, which writes a quoted
// six-digit decimal and a line feed to the standard stream. Both return 0.0
// and never report write failures to the calling program.
//
// Nothing here depends on a particular host: the cgo shared library, the
// wazero host module and the CLI all dispatch through a Registry.
package intrinsics
