package main

import (
	"bytes"
	"testing"

	"github.com/kaleidort/kaleidort/intrinsics"
	"github.com/kaleidort/kaleidort/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func captureStreams(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	saved := streams
	streams = intrinsics.Streams{Stdout: stdout, Stderr: stderr}
	t.Cleanup(func() { streams = saved })
	return stdout, stderr
}

func TestEmitChar(t *testing.T) {
	stdout, stderr := captureStreams(t)

	assert.Equal(t, 0.0, emitChar(65.0))
	assert.Equal(t, 0.0, emitChar(10.7))

	testutil.AssertOutput(t, "A\n\n\n", stderr)
	assert.Empty(t, stdout.String())
}

func TestPrintDouble(t *testing.T) {
	stdout, stderr := captureStreams(t)

	for _, x := range []float64{3.14, 0.0, -2.5} {
		assert.Equal(t, 0.0, printDouble(x))
	}

	testutil.AssertOutput(t, "\"3.140000\"\n\"0.000000\"\n\"-2.500000\"\n", stdout)
	assert.Empty(t, stderr.String())
}

func TestDefaultStreams(t *testing.T) {
	assert.Equal(t, intrinsics.DefaultStreams(), streams)
}
