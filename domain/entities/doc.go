// Package entities provides core domain types for the kaleidort runtime.
// They carry no runtime dependencies and are shared by the intrinsics,
// the hosts and the configuration layer.
package entities
