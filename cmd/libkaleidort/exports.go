//go:build cgo

package main

import "C"

//export putchard
func putchard(x C.double) C.double {
	return C.double(emitChar(float64(x)))
}

//export printd
func printd(x C.double) C.double {
	return C.double(printDouble(float64(x)))
}
