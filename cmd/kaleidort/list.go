package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type listCmd struct {
	app *app
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "List the intrinsics exposed to programs." }
func (*listCmd) Usage() string    { return "kaleidort list\n" }

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (cmd *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rt, err := cmd.app.assemble()
	if err != nil {
		return cmd.app.fail(err)
	}
	defer rt.Close()

	w := tabwriter.NewWriter(cmd.app.out, 0, 4, 2, ' ', 0)
	for _, name := range rt.Registry.Names() {
		arity, _ := rt.Registry.Arity(name)
		fmt.Fprintf(w, "%s\t%d\n", name, arity)
	}
	if err := w.Flush(); err != nil {
		return cmd.app.fail(err)
	}
	return subcommands.ExitSuccess
}
