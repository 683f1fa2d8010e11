package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/davret/tracker/renderer"
	"github.com/google/subcommands"
)

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "refresh prices and evaluate alert rules" }
func (*checkCmd) Usage() string {
	return `ptk check

  Prices the user's portfolio and evaluates every active alert rule
  against the fresh prices. Triggered alerts are delivered through the
  configured notifier.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	rows, err := service.Refresh(ctx, *userName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HoldingMarkdown(*userName, rows))
	fmt.Printf("Evaluated alert rules on %d priced positions.\n", len(rows))
	return subcommands.ExitSuccess
}
