package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/davret/tracker"
	"github.com/davret/tracker/renderer"
	"github.com/google/subcommands"
)

type buyCmd struct {
	symbol   string
	class    string
	quantity float64
	price    float64
	currency string
	date     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of an asset" }
func (*buyCmd) Usage() string {
	return `ptk buy -s <symbol> -q <quantity> -p <price> [-c <currency>] [-class <class>] [-d <date>]

  Records an acquisition in the ledger. The symbol is registered on first
  use with the given asset class.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to buy.")
	f.StringVar(&c.class, "class", "equity", "Asset class of the symbol (equity, crypto, fx-pair).")
	f.Float64Var(&c.quantity, "q", 0, "Quantity bought.")
	f.Float64Var(&c.price, "p", 0, "Unit price paid.")
	f.StringVar(&c.currency, "c", "USD", "Currency of the price.")
	f.StringVar(&c.date, "d", "", "Date of the transaction (2006-01-02). Defaults to now.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return recordTransaction(c.symbol, c.class, c.quantity, c.price, c.currency, c.date, true)
}

// recordTransaction appends one buy or sell to the repository, registering
// the user and symbol on first use.
func recordTransaction(symbol, class string, quantity, price float64, currency, date string, acquisition bool) subcommands.ExitStatus {
	assetClass, err := tracker.ParseAssetClass(class)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	when := time.Now()
	if date != "" {
		when, err = time.Parse("2006-01-02", date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	repo, err := OpenRepository()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	if _, err := repo.User(*userName); err != nil {
		if err := repo.AddUser(tracker.User{Name: *userName}); err != nil {
			fmt.Fprintf(os.Stderr, "Error registering user %q: %v\n", *userName, err)
			return subcommands.ExitFailure
		}
	}
	if err := repo.AddSymbol(tracker.Symbol{Name: symbol, Class: assetClass}); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering symbol %q: %v\n", symbol, err)
		return subcommands.ExitFailure
	}

	var tx tracker.Transaction
	if acquisition {
		tx = tracker.NewBuy(*userName, symbol, tracker.Q(quantity), tracker.M(price, currency), when)
	} else {
		tx = tracker.NewSell(*userName, symbol, tracker.Q(quantity), tracker.M(price, currency), when)
	}

	if err := repo.AppendTransaction(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println(renderer.TransactionOneLiner(tx))
	return subcommands.ExitSuccess
}
