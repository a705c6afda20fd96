package solver

import "github.com/guttosm/bond-optimizer/internal/domain/model"

// Dynamic solves the knapsack with a (n+1) x (funds+1) profit table indexed by the
// number of assets considered and the budget consumed. Runs in O(n * funds) time and space.
type Dynamic struct{}

// Name returns the algorithm name of the dynamic programming solver.
func (Dynamic) Name() string { return model.AlgorithmDynamic }

// Solve fills the table and backtracks to recover the chosen assets.
// The selection lists the most recently included asset first.
func (d Dynamic) Solve(assets []model.Asset, funds int) (model.Selection, error) {
	if err := validate(assets, funds); err != nil {
		return model.Selection{}, err
	}

	dp := buildTable(assets, funds)
	chosen := backtrack(dp, assets, funds)

	return model.NewSelection(d.Name(), funds, chosen, dp[len(assets)][funds]), nil
}

// buildTable computes dp[i][j], the best profit using the first i assets within budget j.
// Row 0 and column 0 stay zero.
func buildTable(assets []model.Asset, funds int) [][]float64 {
	n := len(assets)
	dp := make([][]float64, n+1)
	for i := range dp {
		dp[i] = make([]float64, funds+1)
	}

	for i := 1; i <= n; i++ {
		asset := assets[i-1]
		prev, row := dp[i-1], dp[i]
		for j := 0; j <= funds; j++ {
			if asset.Price <= j {
				included := asset.Profit + prev[j-asset.Price]
				row[j] = max(prev[j], included)
			} else {
				row[j] = prev[j]
			}
		}
	}
	return dp
}

// backtrack walks the table from (n, funds): a value change between rows i-1 and i means
// asset i-1 was taken.
func backtrack(dp [][]float64, assets []model.Asset, funds int) []model.Asset {
	chosen := make([]model.Asset, 0)
	i, j := len(assets), funds
	for i > 0 && j > 0 {
		if dp[i][j] != dp[i-1][j] {
			chosen = append(chosen, assets[i-1])
			j -= assets[i-1].Price
		}
		i--
	}
	return chosen
}
