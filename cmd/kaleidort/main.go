// Command kaleidort runs compiled Kaleidoscope programs and invokes the
// runtime intrinsics directly.
package main

import (
	"context"
	"flag"
	"os"
)

func main() {
	a := &app{out: os.Stdout, errOut: os.Stderr}
	flag.StringVar(&a.configPath, "config", "", "path to a YAML runtime config file")

	cdr := newCommander(a, flag.CommandLine)
	flag.Parse()
	os.Exit(int(cdr.Execute(context.Background())))
}
