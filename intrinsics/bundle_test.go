package intrinsics

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kaleidort/kaleidort/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIOBundle_Definitions(t *testing.T) {
	defs := IOBundle(Streams{Stdout: io.Discard, Stderr: io.Discard}).Definitions()

	names := make([]string, 0, len(defs))
	for name, def := range defs {
		names = append(names, name)
		assert.Equal(t, 1, def.Arity, name)
	}
	sort.Strings(names)

	if diff := cmp.Diff([]string{"printd", "putchard"}, names); diff != "" {
		t.Errorf("IOBundle names mismatch (-want +got):\n%s", diff)
	}
}

func TestIOBundle_Streams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	reg, err := NewRegistry(WithBundle(IOBundle(Streams{Stdout: &stdout, Stderr: &stderr})))
	require.NoError(t, err)

	ctx := context.Background()
	calls := []struct {
		name string
		arg  float64
	}{
		{"putchard", 65},
		{"printd", 3.14},
		{"putchard", 10.7},
		{"printd", 0},
		{"printd", -2.5},
	}
	for _, c := range calls {
		got, err := reg.Invoke(ctx, c.name, c.arg)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	}

	assert.Equal(t, "\"3.140000\"\n\"0.000000\"\n\"-2.500000\"\n", stdout.String())
	assert.Equal(t, "A\n\n\n", stderr.String())
}

func TestIOBundle_WriteErrorHandler(t *testing.T) {
	failing := &mockWriter{}
	failing.On("Write", mock.Anything).Return(0, io.ErrClosedPipe)

	var reported []*errors.WriteError
	reg, err := NewRegistry(WithBundle(IOBundle(
		Streams{Stdout: failing, Stderr: failing},
		WithWriteErrorHandler(func(ctx context.Context, err *errors.WriteError) {
			reported = append(reported, err)
		}),
	)))
	require.NoError(t, err)

	got, err := reg.Invoke(context.Background(), "putchard", 65)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = reg.Invoke(context.Background(), "printd", 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	require.Len(t, reported, 2)
	assert.Equal(t, "stderr", reported[0].Stream)
	assert.Equal(t, "stdout", reported[1].Stream)
	assert.ErrorIs(t, reported[0], io.ErrClosedPipe)
}

func TestIOBundle_WriteErrorsSilentByDefault(t *testing.T) {
	failing := &mockWriter{}
	failing.On("Write", mock.Anything).Return(0, io.ErrClosedPipe)

	reg, err := NewRegistry(WithBundle(IOBundle(Streams{Stdout: failing, Stderr: failing})))
	require.NoError(t, err)

	got, err := reg.Invoke(context.Background(), "printd", 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestLogWriteErrors(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	LogWriteErrors(logger)(context.Background(), &errors.WriteError{Stream: "stdout", Err: io.ErrClosedPipe})

	assert.Contains(t, logs.String(), "intrinsic output dropped")
	assert.Contains(t, logs.String(), "stream=stdout")
}

func TestCombine(t *testing.T) {
	extra := &staticBundle{definitions: map[string]Definition{"id": Unary(identity)}}
	combined := Combine(IOBundle(Streams{Stdout: io.Discard, Stderr: io.Discard}), extra)

	reg, err := NewRegistry(WithBundle(combined))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "printd", "putchard"}, reg.Names())
}

func TestWithBundle_Duplicate(t *testing.T) {
	streams := Streams{Stdout: io.Discard, Stderr: io.Discard}
	_, err := NewRegistry(
		WithBundle(IOBundle(streams)),
		WithUnary("printd", identity),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate intrinsic name")
}
