package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davret/tracker"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the user's ledger as JSONL" }
func (*exportCmd) Usage() string {
	return `ptk export [-o <file>]

  Writes the user's transactions in JSONL format, one transaction per
  line, to the given file or to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Destination file. Defaults to stdout.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, err := OpenRepository()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	ledger, err := LoadLedger(repo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	if err := tracker.EncodeLedger(w, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type importCmd struct {
	input string
	class string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a JSONL ledger" }
func (*importCmd) Usage() string {
	return `ptk import [-i <file>] [-class <class>]

  Reads transactions in JSONL format from the given file or from stdin
  and appends them to the database. Unknown symbols are registered with
  the given asset class.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Source file. Defaults to stdin.")
	f.StringVar(&c.class, "class", "equity", "Asset class for symbols seen for the first time.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	class, err := tracker.ParseAssetClass(c.class)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var r io.Reader = os.Stdin
	if c.input != "" {
		file, err := os.Open(c.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.input, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	ledger, err := tracker.DecodeLedger(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	repo, err := OpenRepository()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	count := 0
	for _, tx := range ledger.Transactions(tracker.AcceptAll) {
		if err := repo.AddSymbol(tracker.Symbol{Name: tx.Symbol, Class: class}); err != nil {
			fmt.Fprintf(os.Stderr, "Error registering symbol %q: %v\n", tx.Symbol, err)
			return subcommands.ExitFailure
		}
		if err := repo.AppendTransaction(tx); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing transaction: %v\n", err)
			return subcommands.ExitFailure
		}
		count++
	}

	fmt.Printf("Imported %d transactions.\n", count)
	return subcommands.ExitSuccess
}
