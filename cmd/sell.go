package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type sellCmd struct {
	symbol   string
	class    string
	quantity float64
	price    float64
	currency string
	date     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of an asset" }
func (*sellCmd) Usage() string {
	return `ptk sell -s <symbol> -q <quantity> -p <price> [-c <currency>] [-d <date>]

  Records a disposal in the ledger. The quantity is given positive and
  stored negated.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to sell.")
	f.StringVar(&c.class, "class", "equity", "Asset class of the symbol (equity, crypto, fx-pair).")
	f.Float64Var(&c.quantity, "q", 0, "Quantity sold.")
	f.Float64Var(&c.price, "p", 0, "Unit price received.")
	f.StringVar(&c.currency, "c", "USD", "Currency of the price.")
	f.StringVar(&c.date, "d", "", "Date of the transaction (2006-01-02). Defaults to now.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return recordTransaction(c.symbol, c.class, c.quantity, c.price, c.currency, c.date, false)
}
