package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/davret/tracker"
	"github.com/davret/tracker/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	symbol string
	head   int
	tail   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the user's transactions" }
func (*txCmd) Usage() string {
	return `ptk tx [-s <symbol>] [-head <n>] [-tail <n>]

  Lists the user's transactions in chronological order, with options for
  filtering and limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Only list transactions for this symbol.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	repo, err := OpenRepository()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	var txs []tracker.Transaction
	if c.symbol != "" {
		txs, err = repo.Transactions(*userName, c.symbol)
	} else {
		txs, err = repo.UserTransactions(*userName)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.head > 0 && len(txs) > c.head {
		txs = txs[:c.head]
	}
	if c.tail > 0 && len(txs) > c.tail {
		txs = txs[len(txs)-c.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(txs))
	return subcommands.ExitSuccess
}
