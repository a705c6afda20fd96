package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/guttosm/bond-optimizer/internal/dataset"
	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/guttosm/bond-optimizer/internal/solver"
)

// backtestCmd holds the flags for the 'backtest' subcommand.
type backtestCmd struct {
	manifest string
	format   string
}

func (*backtestCmd) Name() string     { return "backtest" }
func (*backtestCmd) Synopsis() string { return "run dynamic programming over every dataset of a manifest" }
func (*backtestCmd) Usage() string {
	return `bondopt backtest [-manifest data/datasets.yaml] [-format markdown|json]

  Solves each dataset with its own funds and prints the bought assets with profit and total cost.
`
}

func (c *backtestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.manifest, "manifest", defaultManifest, "Datasets manifest")
	f.StringVar(&c.format, "format", formatMarkdown, "Output format: markdown or json")
}

// backtestResult is one dataset's selection.
type backtestResult struct {
	Dataset   string          `json:"dataset"`
	Selection model.Selection `json:"selection"`
}

func (c *backtestCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !validFormat(c.format) {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	catalog, err := dataset.NewCatalog(c.manifest)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading manifest %q: %v\n", c.manifest, err)
		return subcommands.ExitFailure
	}

	results, err := backtest(catalog.List())
	if err != nil {
		fmt.Fprintf(stderr, "Error running backtest: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := write(c.format, results, backtestMarkdown(results)); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// backtest solves every dataset with dynamic programming. Selected assets are listed
// in the order they appear in the dataset.
func backtest(datasets []dataset.Dataset) ([]backtestResult, error) {
	results := make([]backtestResult, 0, len(datasets))
	for _, d := range datasets {
		sel, err := solver.Dynamic{}.Solve(d.Assets, d.Funds)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", d.Name, err)
		}
		results = append(results, backtestResult{Dataset: d.Name, Selection: sel.Reversed()})
	}
	return results, nil
}

func backtestMarkdown(results []backtestResult) string {
	var b strings.Builder
	for _, r := range results {
		b.WriteString(selectionMarkdown("Assets bought from "+r.Dataset, r.Selection))
		b.WriteString("\n")
	}
	return b.String()
}
