package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"
)

type callCmd struct {
	app *app
}

func (*callCmd) Name() string     { return "call" }
func (*callCmd) Synopsis() string { return "Invoke an intrinsic with numeric arguments." }
func (*callCmd) Usage() string {
	return "kaleidort call <name> [args...]\n"
}

func (*callCmd) SetFlags(*flag.FlagSet) {}

func (cmd *callCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Fprint(cmd.app.errOut, cmd.Usage())
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	args, err := parseArgs(f.Args()[1:])
	if err != nil {
		return cmd.app.fail(err)
	}

	rt, err := cmd.app.assemble()
	if err != nil {
		return cmd.app.fail(err)
	}
	defer rt.Close()

	result, err := rt.Registry.Invoke(ctx, name, args...)
	cmd.app.flush(rt)
	if err != nil {
		return cmd.app.fail(err)
	}
	rt.Logger.DebugContext(ctx, "intrinsic returned", "intrinsic", name, "result", result)
	return subcommands.ExitSuccess
}

func parseArgs(raw []string) ([]float64, error) {
	args := make([]float64, 0, len(raw))
	for _, s := range raw {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid argument %q: %w", s, err)
		}
		args = append(args, x)
	}
	return args, nil
}
