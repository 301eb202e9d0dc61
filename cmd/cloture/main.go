// Command cloture drives the monthly period close of a farm from a terminal.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&loginCmd{}, "session")
	commander.Register(&logoutCmd{}, "session")

	commander.Register(&listCmd{}, "clotures")
	commander.Register(&showCmd{}, "clotures")
	commander.Register(&createCmd{}, "clotures")
	commander.Register(&validateCmd{}, "clotures")
	commander.Register(&closeCmd{}, "clotures")
	commander.Register(&exportCmd{}, "clotures")

	flag.Parse()
	slog.SetDefault(newLogger(os.Stderr, *verbose))
	os.Exit(int(commander.Execute(context.Background())))
}
