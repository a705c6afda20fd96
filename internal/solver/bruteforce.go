package solver

import (
	"fmt"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
)

// MaxBruteForceAssets bounds the input size of the exhaustive solvers.
const MaxBruteForceAssets = 30

// BruteForce evaluates every subset produced by its Enumerator and keeps the first
// feasible subset with the strictly highest profit.
type BruteForce struct {
	enumerator Enumerator
}

// NewBruteForce creates a brute-force solver over the given subset strategy.
func NewBruteForce(e Enumerator) BruteForce {
	return BruteForce{enumerator: e}
}

// Name returns the name of the underlying enumeration strategy.
func (b BruteForce) Name() string {
	return b.enumerator.Name()
}

// Solve returns the best feasible subset. Ties keep the subset found first in
// enumeration order.
func (b BruteForce) Solve(assets []model.Asset, funds int) (model.Selection, error) {
	if err := validate(assets, funds); err != nil {
		return model.Selection{}, err
	}
	if len(assets) > MaxBruteForceAssets {
		return model.Selection{}, fmt.Errorf("%w: %d > %d", ErrTooManyAssets, len(assets), MaxBruteForceAssets)
	}

	var (
		best       []int
		bestProfit float64
	)
	b.enumerator.Enumerate(len(assets), func(indices []int) {
		totalPrice := 0
		totalProfit := 0.0
		for _, idx := range indices {
			totalPrice += assets[idx].Price
			totalProfit += assets[idx].Profit
		}
		if totalPrice <= funds && totalProfit > bestProfit {
			best = append(best[:0], indices...)
			bestProfit = totalProfit
		}
	})

	chosen := make([]model.Asset, len(best))
	for i, idx := range best {
		chosen[i] = assets[idx]
	}
	return model.NewSelection(b.Name(), funds, chosen, bestProfit), nil
}
