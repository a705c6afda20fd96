package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/guttosm/bond-optimizer/internal/dataset"
	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/guttosm/bond-optimizer/internal/service"
)

// solveCmd holds the flags for the 'solve' subcommand.
type solveCmd struct {
	file      string
	funds     int
	algorithm string
	format    string
}

func (*solveCmd) Name() string     { return "solve" }
func (*solveCmd) Synopsis() string { return "select the most profitable assets from a CSV file" }
func (*solveCmd) Usage() string {
	return `bondopt solve -f <file.csv> [-funds 500] [-algo dynamic] [-format markdown|json]

  Reads name,price,yield rows and prints the most profitable subset within the funds.
`
}

func (c *solveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "CSV file with name,price,yield rows")
	f.IntVar(&c.funds, "funds", dataset.DefaultFunds, "Budget")
	f.StringVar(&c.algorithm, "algo", model.AlgorithmDynamic, "Algorithm: dynamic, bruteforce-combinations or bruteforce-bitmask")
	f.StringVar(&c.format, "format", formatMarkdown, "Output format: markdown or json")
}

func (c *solveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	sel, err := optimizer.Optimize(ctx, assets, c.funds, c.algorithm)
	if err != nil {
		fmt.Fprintf(stderr, "Error optimizing: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := write(c.format, sel, selectionMarkdown(filepath.Base(c.file), sel)); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
