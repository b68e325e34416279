// Package testutil provides common test utilities and assertions for runtime tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Output is anything that exposes what was written to it.
type Output interface {
	String() string
}

// AssertIntrinsicResult asserts that an intrinsic call returned exactly 0.0 without error.
func AssertIntrinsicResult(t *testing.T, got float64, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
	assert.Equal(t, 0.0, got, msgAndArgs...)
}

// AssertOutput asserts the exact text an intrinsic stream received.
func AssertOutput(t *testing.T, expected string, out Output, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, expected, out.String(), msgAndArgs...)
}

// PrintdLine returns the line printd writes for a value that formats as text.
func PrintdLine(text string) string {
	return fmt.Sprintf("%q\n", text)
}

// PutchardLine returns the bytes putchard writes for character c.
func PutchardLine(c byte) string {
	return string([]byte{c, '\n'})
}

// RequireNoError is a convenience wrapper for require.NoError
func RequireNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}
