// Command fxledger-cli talks to a running fxledger server.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/amirasaad/fxledger/pkg/config"
	"github.com/fatih/color"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	addr := flag.String("addr", config.GetEnv("FXLEDGER_ADDR", "http://localhost:3000"), "Base URL of the fxledger server")

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	register(commander, &env{addr: addr, out: os.Stdout, errOut: os.Stderr})

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
