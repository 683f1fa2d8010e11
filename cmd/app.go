// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/davret/tracker"
	"github.com/davret/tracker/fxrate"
	"github.com/davret/tracker/notify"
	"github.com/davret/tracker/quote"
	"github.com/davret/tracker/store"
	"github.com/google/subcommands"
)

// Commands lists every subcommand. A main package registers them on a
// commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&txCmd{},
	&holdingCmd{},
	&rateCmd{},
	&alertCmd{},
	&checkCmd{},
	&exportCmd{},
	&importCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dbPath = flag.String("db", "tracker.db", "Path to the portfolio database file")
var userName = flag.String("user", "demo", "User the command operates on behalf of")

// OpenRepository opens the app database, creating it on first use.
func OpenRepository() (*store.SQLite, error) {
	repo, err := store.Open(*dbPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %q: %w", *dbPath, err)
	}
	return repo, nil
}

// LoadLedger rebuilds the user's ledger from the repository.
func LoadLedger(repo tracker.Repository) (*tracker.Ledger, error) {
	txs, err := repo.UserTransactions(*userName)
	if err != nil {
		return nil, fmt.Errorf("cannot load transactions for %q: %w", *userName, err)
	}
	return tracker.NewLedger(txs...), nil
}

// NewRateSource builds the fx aggregator from the environment. Providers
// whose key is not set are skipped; exchangerate.host needs no key and is
// always registered.
func NewRateSource() *fxrate.Aggregator {
	agg := fxrate.NewAggregator(0)
	agg.Register(fxrate.NewExchangerateHost(""), 1.0)
	if key := os.Getenv("EXCHANGERATE_API_KEY"); key != "" {
		agg.Register(fxrate.NewExchangerateAPI("", key), 0.8)
	}
	if appID := os.Getenv("OPENEXCHANGERATES_APP_ID"); appID != "" {
		agg.Register(fxrate.NewOpenExchangeRates("", appID), 0.9)
	}
	return agg
}

// NewNotifier delivers alerts by email when SMTP_HOST is set, and to the
// log otherwise.
func NewNotifier() tracker.Notifier {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return notify.Log{}
	}
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}
	return notify.SMTP{
		Host:     host,
		Port:     port,
		From:     os.Getenv("SMTP_FROM"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
}

// NewService wires the portfolio orchestrator around the repository.
func NewService(repo tracker.Repository) (*tracker.PortfolioService, error) {
	ledger, err := LoadLedger(repo)
	if err != nil {
		return nil, err
	}
	return tracker.NewPortfolioService(
		repo,
		ledger,
		quote.NewYahoo(""),
		quote.NewCoinGecko(""),
		NewRateSource(),
		NewNotifier(),
	), nil
}
