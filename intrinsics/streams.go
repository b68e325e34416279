package intrinsics

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kaleidort/kaleidort/domain/entities"
)

// Streams holds the two output channels the intrinsics write to.
type Streams struct {
	// Stdout receives printd output.
	Stdout io.Writer

	// Stderr receives putchard output.
	Stderr io.Writer
}

// DefaultStreams returns the process's standard output and error streams.
func DefaultStreams() Streams {
	return Streams{Stdout: os.Stdout, Stderr: os.Stderr}
}

// OpenStreams resolves configured stream targets. "-" selects the process
// stream, anything else is a file opened for appending.
// The returned close function releases any files that were opened.
func OpenStreams(stdoutPath, stderrPath string) (Streams, func() error, error) {
	var files []*os.File
	closeAll := func() error {
		var errs []error
		for _, f := range files {
			errs = append(errs, f.Close())
		}
		return errors.Join(errs...)
	}

	open := func(path string, fallback *os.File) (io.Writer, error) {
		if path == "" || path == entities.StreamProcess {
			return fallback, nil
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open stream %s: %w", path, err)
		}
		files = append(files, f)
		return f, nil
	}

	stdout, err := open(stdoutPath, os.Stdout)
	if err != nil {
		return Streams{}, nil, err
	}
	stderr, err := open(stderrPath, os.Stderr)
	if err != nil {
		_ = closeAll()
		return Streams{}, nil, err
	}

	return Streams{Stdout: stdout, Stderr: stderr}, closeAll, nil
}
