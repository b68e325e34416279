package main

import (
	"github.com/kaleidort/kaleidort/intrinsics"
)

// streams are the process streams. Tests swap them for buffers.
var streams = intrinsics.DefaultStreams()

func emitChar(x float64) float64 {
	return intrinsics.Putchard(streams.Stderr, x)
}

func printDouble(x float64) float64 {
	return intrinsics.Printd(streams.Stdout, x)
}
