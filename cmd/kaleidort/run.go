package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	"github.com/kaleidort/kaleidort/host"
)

type runCmd struct {
	app   *app
	entry string
	args  string
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Run a compiled WebAssembly program." }
func (*runCmd) Usage() string {
	return "kaleidort run [-entry main] [-args a,b] <program.wasm>\n"
}

func (cmd *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.entry, "entry", "main", "exported function to call")
	f.StringVar(&cmd.args, "args", "", "comma separated numeric arguments for the entry function")
}

func (cmd *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(cmd.app.errOut, cmd.Usage())
		return subcommands.ExitUsageError
	}
	if err := cmd.execute(ctx, f.Arg(0)); err != nil {
		return cmd.app.fail(err)
	}
	return subcommands.ExitSuccess
}

func (cmd *runCmd) execute(ctx context.Context, path string) error {
	var raw []string
	if cmd.args != "" {
		raw = strings.Split(cmd.args, ",")
		for i := range raw {
			raw[i] = strings.TrimSpace(raw[i])
		}
	}
	args, err := parseArgs(raw)
	if err != nil {
		return err
	}

	wasmBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read program: %w", err)
	}

	rt, err := cmd.app.assemble()
	if err != nil {
		return err
	}
	defer rt.Close()
	defer cmd.app.flush(rt)

	executor, err := host.NewExecutor(ctx,
		host.WithIntrinsics(rt.Registry),
		host.WithModuleName(rt.Config.ModuleName),
		host.WithLogger(rt.Logger),
		host.WithWASIOutput(rt.Streams.Stdout, rt.Streams.Stderr),
	)
	if err != nil {
		return err
	}
	defer executor.Close(ctx)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	prog, err := executor.LoadProgram(ctx, name, wasmBytes)
	if err != nil {
		return err
	}

	result, err := prog.Call(ctx, cmd.entry, args...)
	if err != nil {
		return err
	}
	rt.Logger.InfoContext(ctx, "program returned", "program", name, "function", cmd.entry, "result", result)
	return nil
}
