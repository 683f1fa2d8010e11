package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/davret/tracker"
	"github.com/davret/tracker/renderer"
	"github.com/google/subcommands"
)

type alertCmd struct {
	symbol string
	upper  string
	lower  string
	list   bool
	off    bool
}

func (*alertCmd) Name() string     { return "alert" }
func (*alertCmd) Synopsis() string { return "manage price alert rules" }
func (*alertCmd) Usage() string {
	return `ptk alert -s <symbol> [-upper <price>] [-lower <price>]
ptk alert -list
ptk alert -s <symbol> -off

  Adds a price alert rule, lists the user's rules, or deactivates the
  rules on a symbol. At least one threshold is required when adding.
`
}

func (c *alertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol the rule watches.")
	f.StringVar(&c.upper, "upper", "", "Trigger when the price is at or above this threshold.")
	f.StringVar(&c.lower, "lower", "", "Trigger when the price is at or below this threshold.")
	f.BoolVar(&c.list, "list", false, "List the user's alert rules.")
	f.BoolVar(&c.off, "off", false, "Deactivate the rules on the symbol.")
}

func (c *alertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, err := OpenRepository()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	if c.list {
		rules, err := repo.Rules(*userName)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.RulesMarkdown(rules))
		return subcommands.ExitSuccess
	}

	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s <symbol> is required.")
		return subcommands.ExitUsageError
	}

	if c.off {
		if err := repo.DeactivateRules(*userName, c.symbol); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deactivated alert rules on %s\n", c.symbol)
		return subcommands.ExitSuccess
	}

	rule := tracker.AlertRule{User: *userName, Symbol: c.symbol, Active: true}
	if rule.Upper, err = parseThreshold(c.upper); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if rule.Lower, err = parseThreshold(c.lower); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if rule.Upper == nil && rule.Lower == nil {
		fmt.Fprintln(os.Stderr, "Error: at least one of -upper or -lower is required.")
		return subcommands.ExitUsageError
	}

	if err := repo.AddRule(rule); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Watching %s (upper: %s, lower: %s)\n", c.symbol, c.upper, c.lower)
	return subcommands.ExitSuccess
}

func parseThreshold(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid threshold %q: %w", s, err)
	}
	return &v, nil
}
