package testutil

import (
	"encoding/binary"
	"math"
)

// WebAssembly encoding constants used by the module builder.
const (
	sectionType     = 0x01
	sectionImport   = 0x02
	sectionFunction = 0x03
	sectionExport   = 0x07
	sectionCode     = 0x0a

	valueTypeF64 = 0x7c
	funcTypeTag  = 0x60
	externFunc   = 0x00
	opEnd        = 0x0b
)

// WasmImport is an imported function taking Arity f64 params and returning f64.
type WasmImport struct {
	Module string
	Name   string
	Arity  int
}

// WasmFunc is an exported function taking Params f64 params and returning f64.
// Body holds the instructions without the trailing end opcode.
type WasmFunc struct {
	Export string
	Params int
	Body   []byte
}

// WasmModule describes a tiny module in the shape a Kaleidoscope compiler
// emits: f64-only imports resolved by the host and f64-only exports.
// Function indices count imports first, then Funcs in order.
type WasmModule struct {
	Imports []WasmImport
	Funcs   []WasmFunc
}

// Encode returns the module in WebAssembly binary format.
func (m WasmModule) Encode() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	var types []byte
	types = appendULEB(types, uint64(len(m.Imports)+len(m.Funcs)))
	for _, imp := range m.Imports {
		types = appendFuncType(types, imp.Arity)
	}
	for _, fn := range m.Funcs {
		types = appendFuncType(types, fn.Params)
	}
	out = appendSection(out, sectionType, types)

	if len(m.Imports) > 0 {
		var imports []byte
		imports = appendULEB(imports, uint64(len(m.Imports)))
		for i, imp := range m.Imports {
			imports = appendName(imports, imp.Module)
			imports = appendName(imports, imp.Name)
			imports = append(imports, externFunc)
			imports = appendULEB(imports, uint64(i))
		}
		out = appendSection(out, sectionImport, imports)
	}

	if len(m.Funcs) == 0 {
		return out
	}

	var funcs, exports, code []byte
	funcs = appendULEB(funcs, uint64(len(m.Funcs)))
	exports = appendULEB(exports, uint64(len(m.Funcs)))
	code = appendULEB(code, uint64(len(m.Funcs)))
	for j, fn := range m.Funcs {
		index := uint64(len(m.Imports) + j)
		funcs = appendULEB(funcs, index)

		exports = appendName(exports, fn.Export)
		exports = append(exports, externFunc)
		exports = appendULEB(exports, index)

		body := append([]byte{0x00}, fn.Body...) // no locals
		body = append(body, opEnd)
		code = appendULEB(code, uint64(len(body)))
		code = append(code, body...)
	}
	out = appendSection(out, sectionFunction, funcs)
	out = appendSection(out, sectionExport, exports)
	out = appendSection(out, sectionCode, code)
	return out
}

// Forwarders returns a module importing each intrinsic and exporting
// "call_<name>", which passes its params straight to the import.
func Forwarders(imports ...WasmImport) WasmModule {
	m := WasmModule{Imports: imports}
	for i, imp := range imports {
		var body []byte
		for p := 0; p < imp.Arity; p++ {
			body = append(body, LocalGet(p)...)
		}
		body = append(body, Call(i)...)
		m.Funcs = append(m.Funcs, WasmFunc{Export: "call_" + imp.Name, Params: imp.Arity, Body: body})
	}
	return m
}

// LocalGet encodes local.get i.
func LocalGet(i int) []byte {
	return appendULEB([]byte{0x20}, uint64(i))
}

// Call encodes call funcIndex.
func Call(funcIndex int) []byte {
	return appendULEB([]byte{0x10}, uint64(funcIndex))
}

// F64Const encodes f64.const v.
func F64Const(v float64) []byte {
	return binary.LittleEndian.AppendUint64([]byte{0x44}, math.Float64bits(v))
}

// Drop encodes drop.
func Drop() []byte {
	return []byte{0x1a}
}

// F64Add encodes f64.add.
func F64Add() []byte {
	return []byte{0xa0}
}

// Concat joins instruction sequences.
func Concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func appendFuncType(b []byte, params int) []byte {
	b = append(b, funcTypeTag)
	b = appendULEB(b, uint64(params))
	for i := 0; i < params; i++ {
		b = append(b, valueTypeF64)
	}
	return append(b, 0x01, valueTypeF64)
}

func appendSection(b []byte, id byte, content []byte) []byte {
	b = append(b, id)
	b = appendULEB(b, uint64(len(content)))
	return append(b, content...)
}

func appendName(b []byte, name string) []byte {
	b = appendULEB(b, uint64(len(name)))
	return append(b, name...)
}

func appendULEB(b []byte, v uint64) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		b = append(b, c)
		if v == 0 {
			return b
		}
	}
}
