package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/subcommands"
	"github.com/kaleidort/kaleidort/application/config"
	"github.com/kaleidort/kaleidort/domain/entities"
)

// app holds state shared by every subcommand.
type app struct {
	configPath string
	out        io.Writer
	errOut     io.Writer
}

func newCommander(a *app, fs *flag.FlagSet) *subcommands.Commander {
	cdr := subcommands.NewCommander(fs, "kaleidort")
	cdr.Output = a.out
	cdr.Error = a.errOut

	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.FlagsCommand(), "")
	cdr.Register(&listCmd{app: a}, "")
	cdr.Register(&callCmd{app: a}, "")
	cdr.Register(&runCmd{app: a}, "")
	cdr.Register(&schemaCmd{app: a}, "")
	return cdr
}

// assemble loads the config file and builds the runtime it describes.
// Without a log_file, diagnostics go to the process stderr.
func (a *app) assemble() (*config.Runtime, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.LogFile == "" {
		cfg.LogFile = entities.StreamProcess
	}
	return config.Assemble(*cfg)
}

// flush copies captured program output to the command's writers.
func (a *app) flush(rt *config.Runtime) {
	if rt.Captured == nil {
		return
	}
	_, _ = a.out.Write(rt.Captured.Stdout.Bytes())
	_, _ = a.errOut.Write(rt.Captured.Stderr.Bytes())
	if rt.Captured.Stdout.Truncated() || rt.Captured.Stderr.Truncated() {
		rt.Logger.Warn("program output truncated", slog.Int("max_capture_bytes", rt.Config.MaxCaptureBytes))
	}
}

// fail reports err on errOut and returns a failure status.
func (a *app) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(a.errOut, "kaleidort: %v\n", err)
	return subcommands.ExitFailure
}
