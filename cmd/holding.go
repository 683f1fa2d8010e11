package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/davret/tracker/renderer"
	"github.com/google/subcommands"
)

type holdingCmd struct{}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the user's priced portfolio" }
func (*holdingCmd) Usage() string {
	return `ptk holding

  Displays the user's open positions with their average cost, current
  price, and market value. Symbols whose price cannot be fetched are
  reported in the log and omitted from the table.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, err := OpenRepository()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	service, err := NewService(repo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	rows, err := service.Portfolio(ctx, *userName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HoldingMarkdown(*userName, rows))
	return subcommands.ExitSuccess
}
