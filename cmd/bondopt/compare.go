package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/guttosm/bond-optimizer/internal/dataset"
	"github.com/guttosm/bond-optimizer/internal/service"
)

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	file   string
	funds  int
	format string
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "run every algorithm on a CSV file and time them" }
func (*compareCmd) Usage() string {
	return `bondopt compare -f <file.csv> [-funds 500] [-format markdown|json]

  Runs each algorithm on the same assets and reports profit, duration and agreement.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "CSV file with name,price,yield rows")
	f.IntVar(&c.funds, "funds", dataset.DefaultFunds, "Budget")
	f.StringVar(&c.format, "format", formatMarkdown, "Output format: markdown or json")
}

func (c *compareCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" || !validFormat(c.format) {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	assets, err := dataset.LoadFile(c.file)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	optimizer := service.NewOptimizerService()
	defer optimizer.Stop()

	cmp, err := optimizer.Compare(ctx, assets, c.funds)
	if err != nil {
		fmt.Fprintf(stderr, "Error comparing: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := write(c.format, cmp, comparisonMarkdown(cmp)); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
