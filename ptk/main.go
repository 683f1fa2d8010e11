package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/davret/tracker/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completer := &complete.Command{
		Flags: map[string]complete.Predictor{
			"db":   predict.Files("*.db"),
			"user": predict.Nothing,
		},
		Sub: map[string]*complete.Command{},
	}
	for _, c := range cmd.Commands {
		completer.Sub[c.Name()] = &complete.Command{}
	}
	completer.Complete("ptk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
