package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/guttosm/bond-optimizer/internal/dataset"
	"github.com/guttosm/bond-optimizer/internal/domain/dto"
)

const defaultManifest = "data/datasets.yaml"

// datasetsCmd holds the flags for the 'datasets' subcommand.
type datasetsCmd struct {
	manifest string
	format   string
}

func (*datasetsCmd) Name() string     { return "datasets" }
func (*datasetsCmd) Synopsis() string { return "list the datasets declared in a manifest" }
func (*datasetsCmd) Usage() string {
	return `bondopt datasets [-manifest data/datasets.yaml] [-format markdown|json]

  Loads every dataset of the manifest and lists name, funds and asset count.
`
}

func (c *datasetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.manifest, "manifest", defaultManifest, "Datasets manifest")
	f.StringVar(&c.format, "format", formatMarkdown, "Output format: markdown or json")
}

func (c *datasetsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !validFormat(c.format) {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	catalog, err := dataset.NewCatalog(c.manifest)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading manifest %q: %v\n", c.manifest, err)
		return subcommands.ExitFailure
	}

	datasets := catalog.List()
	summaries := make([]dto.DatasetSummary, 0, len(datasets))
	for _, d := range datasets {
		summaries = append(summaries, dto.DatasetSummary{
			Name:        d.Name,
			Description: d.Description,
			Funds:       d.Funds,
			Assets:      len(d.Assets),
		})
	}

	if err := write(c.format, summaries, datasetsMarkdown(summaries)); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func datasetsMarkdown(summaries []dto.DatasetSummary) string {
	var b strings.Builder
	b.WriteString("# Datasets\n\n")
	b.WriteString("| Name | Description | Funds | Assets |\n")
	b.WriteString("|:-----|:------------|------:|-------:|\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", s.Name, s.Description, s.Funds, s.Assets)
	}
	return b.String()
}
