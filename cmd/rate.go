package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type rateCmd struct {
	base    string
	counter string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "aggregate an exchange rate across providers" }
func (*rateCmd) Usage() string {
	return `ptk rate -base <currency> -counter <currency>

  Queries every configured forex provider concurrently and prints the
  weighted mean of the quotes that arrived.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.base, "base", "USD", "Base currency of the pair.")
	f.StringVar(&c.counter, "counter", "EUR", "Counter currency of the pair.")
}

func (c *rateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	base := strings.ToUpper(c.base)
	counter := strings.ToUpper(c.counter)

	rate, err := NewRateSource().Aggregate(ctx, base, counter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("1 %s = %.6f %s\n", base, rate, counter)
	return subcommands.ExitSuccess
}
