package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/kaleidort/kaleidort/application/schema"
)

type schemaCmd struct {
	app *app
}

func (*schemaCmd) Name() string     { return "schema" }
func (*schemaCmd) Synopsis() string { return "Print the JSON schema of the config file." }
func (*schemaCmd) Usage() string    { return "kaleidort schema\n" }

func (*schemaCmd) SetFlags(*flag.FlagSet) {}

func (cmd *schemaCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	data, err := schema.ConfigSchema()
	if err != nil {
		return cmd.app.fail(err)
	}
	fmt.Fprintf(cmd.app.out, "%s\n", data)
	return subcommands.ExitSuccess
}
