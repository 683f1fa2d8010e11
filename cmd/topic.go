package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/davret/tracker/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `ptk topic <topic>

Show documentation for a given topic. Use "*" to read everything.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}

	doc, err := docs.Topics(names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)

	return subcommands.ExitSuccess
}
