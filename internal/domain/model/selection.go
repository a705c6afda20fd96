package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Algorithm names accepted by the optimizer.
const (
	AlgorithmDynamic                = "dynamic"
	AlgorithmBruteForceCombinations = "bruteforce-combinations"
	AlgorithmBruteForceBitmask      = "bruteforce-bitmask"
)

// Selection is the result of one optimization run.
//
// Assets are returned in the order the solver produced them. The dynamic
// programming solver reports the most recently included asset first.
//
// @Description Optimal subset of assets within the funds
type Selection struct {
	// Algorithm is the solver that produced the selection
	Algorithm string `json:"algorithm" example:"dynamic"`
	// Funds is the budget the selection was computed for
	Funds int `json:"funds" example:"500"`
	// Assets is the chosen subset
	Assets []Asset `json:"assets"`
	// Profit is the total profit of the chosen subset
	Profit float64 `json:"profit" example:"99.08"`
	// Cost is the sum of rounded prices
	Cost int `json:"cost" example:"498"`
	// ExactCost is the sum of exact prices, rounded to cents
	ExactCost float64 `json:"exact_cost" example:"498"`
} // @name Selection

// Empty returns a selection with no assets and zero profit.
func Empty(algorithm string, funds int) Selection {
	return Selection{
		Algorithm: algorithm,
		Funds:     funds,
		Assets:    []Asset{},
	}
}

// NewSelection builds a selection from the chosen assets, deriving the cost totals.
// The profit is passed in so that solvers report the value they optimized on.
func NewSelection(algorithm string, funds int, assets []Asset, profit float64) Selection {
	if assets == nil {
		assets = []Asset{}
	}
	cost, exact := Totals(assets)
	return Selection{
		Algorithm: algorithm,
		Funds:     funds,
		Assets:    assets,
		Profit:    profit,
		Cost:      cost,
		ExactCost: exact,
	}
}

// Totals returns the rounded and exact price sums of the given assets.
// The exact sum is accumulated in decimal and rounded to cents.
func Totals(assets []Asset) (cost int, exactCost float64) {
	exact := decimal.Zero
	for _, a := range assets {
		cost += a.Price
		exact = exact.Add(decimal.NewFromInt(int64(a.Price))).Add(decimal.NewFromFloat(a.PriceDifference))
	}
	return cost, exact.Round(2).InexactFloat64()
}

// TotalProfit returns the summed profit of the given assets.
func TotalProfit(assets []Asset) float64 {
	var total float64
	for _, a := range assets {
		total += a.Profit
	}
	return total
}

// Reversed returns a copy of the selection with the asset order reversed.
func (s Selection) Reversed() Selection {
	out := s
	out.Assets = make([]Asset, len(s.Assets))
	for i, a := range s.Assets {
		out.Assets[len(s.Assets)-1-i] = a
	}
	return out
}

// Names returns the asset names in selection order.
func (s Selection) Names() []string {
	names := make([]string, len(s.Assets))
	for i, a := range s.Assets {
		names[i] = a.Name
	}
	return names
}

// Timing is a solver run measured by the benchmark harness.
//
// @Description Solver result with its wall-clock duration
type Timing struct {
	Algorithm string        `json:"algorithm" example:"dynamic"`
	Selection *Selection    `json:"selection,omitempty"`
	Duration  time.Duration `json:"duration_ns" swaggertype:"integer" example:"1200000"`
	Error     string        `json:"error,omitempty"`
} // @name Timing

// Comparison holds the timings of several solvers over the same input.
//
// @Description Side-by-side solver results
type Comparison struct {
	Funds   int      `json:"funds" example:"500"`
	Assets  int      `json:"assets" example:"20"`
	Timings []Timing `json:"timings"`
	// Agree reports whether every successful solver found the same profit
	Agree bool `json:"agree" example:"true"`
} // @name Comparison
