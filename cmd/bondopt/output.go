package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/guttosm/bond-optimizer/internal/domain/model"
)

// as a short lived CLI, output goes through package-level writers that tests swap.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

func validFormat(format string) bool {
	return format == formatMarkdown || format == formatJSON
}

// write prints v as indented JSON, or md rendered for the terminal.
func write(format string, v any, md string) error {
	if format == formatJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	printMarkdown(md)
	return nil
}

func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// fall back to the raw markdown
		out = md
	}
	fmt.Fprint(stdout, out)
}

func selectionMarkdown(title string, sel model.Selection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Algorithm: **%s**  \nFunds: **%d**  \n", sel.Algorithm, sel.Funds)
	fmt.Fprintf(&b, "Profit: **%.2f**  \nTotal cost: **%.2f**\n\n", sel.Profit, sel.ExactCost)

	if len(sel.Assets) == 0 {
		b.WriteString("_No asset fits the funds._\n")
		return b.String()
	}

	b.WriteString("| Asset | Price | Yield | Profit |\n")
	b.WriteString("|:------|------:|------:|-------:|\n")
	for _, a := range sel.Assets {
		fmt.Fprintf(&b, "| %s | %.2f | %.2f%% | %.2f |\n", a.Name, a.ExactPrice(), a.Yield, a.Profit)
	}
	return b.String()
}

func comparisonMarkdown(cmp model.Comparison) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Comparison\n\n%d assets, funds **%d**\n\n", cmp.Assets, cmp.Funds)

	b.WriteString("| Algorithm | Profit | Cost | Seconds | Error |\n")
	b.WriteString("|:----------|-------:|-----:|--------:|:------|\n")
	for _, t := range cmp.Timings {
		profit, cost := "-", "-"
		if t.Selection != nil {
			profit = fmt.Sprintf("%.2f", t.Selection.Profit)
			cost = fmt.Sprintf("%.2f", t.Selection.ExactCost)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %.6f | %s |\n", t.Algorithm, profit, cost, t.Duration.Seconds(), t.Error)
	}

	agree := "no"
	if cmp.Agree {
		agree = "yes"
	}
	fmt.Fprintf(&b, "\nAlgorithms agree: **%s**\n", agree)
	return b.String()
}
