package main

import (
	"testing"
	"time"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestSelectionMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		sel      model.Selection
		contains []string
	}{
		{
			name: "lists chosen assets",
			sel: model.NewSelection(model.AlgorithmDynamic, 500, []model.Asset{
				model.NewAsset("Action-4", 70, 20),
				model.NewAsset("Share-GRUT", 498.76, 39.42),
			}, 210.6),
			contains: []string{"# bonds", "**dynamic**", "| Asset | Price | Yield | Profit |", "Action-4", "| Share-GRUT | 498.76 | 39.42% |", "Profit: **210.60**"},
		},
		{
			name:     "empty selection",
			sel:      model.Empty(model.AlgorithmBruteForceBitmask, 0),
			contains: []string{"_No asset fits the funds._", "Total cost: **0.00**"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := selectionMarkdown("bonds", tt.sel)
			for _, s := range tt.contains {
				assert.Contains(t, md, s)
			}
		})
	}
}

func TestComparisonMarkdown(t *testing.T) {
	sel := model.NewSelection(model.AlgorithmDynamic, 500, []model.Asset{model.NewAsset("A", 100, 5)}, 5)
	cmp := model.Comparison{
		Funds:  500,
		Assets: 30,
		Timings: []model.Timing{
			{Algorithm: model.AlgorithmDynamic, Selection: &sel, Duration: 1500 * time.Microsecond},
			{Algorithm: model.AlgorithmBruteForceBitmask, Error: "too many assets for exhaustive search"},
		},
		Agree: true,
	}

	md := comparisonMarkdown(cmp)

	assert.Contains(t, md, "30 assets, funds **500**")
	assert.Contains(t, md, "| dynamic | 5.00 | 100.00 | 0.001500 |")
	assert.Contains(t, md, "| bruteforce-bitmask | - | - | 0.000000 | too many assets for exhaustive search |")
	assert.Contains(t, md, "Algorithms agree: **yes**")
}

func TestValidFormat(t *testing.T) {
	assert.True(t, validFormat(formatMarkdown))
	assert.True(t, validFormat(formatJSON))
	assert.False(t, validFormat("xml"))
}
