// Package solver implements the 0-1 knapsack solvers used to pick assets within a budget.
//
// All solvers share one contract: given assets and integral funds they return the subset
// with the highest total profit whose rounded price sum does not exceed the funds.
// The dynamic programming solver is exact and pseudo-polynomial; the brute-force solvers
// enumerate every subset and serve as correctness oracles for small inputs.
package solver

import (
	"errors"
	"fmt"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
)

var (
	// ErrNegativeFunds is returned when funds are below zero.
	ErrNegativeFunds = errors.New("funds must not be negative")
	// ErrInvalidPrice is returned when an asset has a non-positive rounded price.
	ErrInvalidPrice = errors.New("asset price must be positive")
	// ErrTooManyAssets is returned when a brute-force solver is given too many assets.
	ErrTooManyAssets = errors.New("too many assets for exhaustive search")
	// ErrUnknownAlgorithm is returned by New for unregistered algorithm names.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// Solver selects the most profitable subset of assets within funds.
type Solver interface {
	Name() string
	Solve(assets []model.Asset, funds int) (model.Selection, error)
}

// Algorithms returns the registered algorithm names.
func Algorithms() []string {
	return []string{
		model.AlgorithmDynamic,
		model.AlgorithmBruteForceCombinations,
		model.AlgorithmBruteForceBitmask,
	}
}

// New returns the solver registered under algorithm.
func New(algorithm string) (Solver, error) {
	switch algorithm {
	case model.AlgorithmDynamic:
		return Dynamic{}, nil
	case model.AlgorithmBruteForceCombinations:
		return NewBruteForce(Combinations{}), nil
	case model.AlgorithmBruteForceBitmask:
		return NewBruteForce(Bitmask{}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// All returns one solver per registered algorithm.
func All() []Solver {
	names := Algorithms()
	solvers := make([]Solver, 0, len(names))
	for _, name := range names {
		s, _ := New(name)
		solvers = append(solvers, s)
	}
	return solvers
}

// validate checks the caller-side preconditions shared by every solver.
func validate(assets []model.Asset, funds int) error {
	if funds < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeFunds, funds)
	}
	for _, a := range assets {
		if a.Price <= 0 {
			return fmt.Errorf("%w: %q has price %d", ErrInvalidPrice, a.Name, a.Price)
		}
	}
	return nil
}
