package solver

import (
	"math"
	"time"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
)

// profitTolerance absorbs floating-point drift between summation orders.
const profitTolerance = 1e-9

// Measure runs fn and returns its result unchanged along with the elapsed wall-clock time.
func Measure[T any](fn func() T) (T, time.Duration) {
	start := time.Now()
	result := fn()
	return result, time.Since(start)
}

// Run solves with s and records how long it took.
func Run(s Solver, assets []model.Asset, funds int) model.Timing {
	type outcome struct {
		selection model.Selection
		err       error
	}

	out, elapsed := Measure(func() outcome {
		sel, err := s.Solve(assets, funds)
		return outcome{selection: sel, err: err}
	})

	timing := model.Timing{Algorithm: s.Name(), Duration: elapsed}
	if out.err != nil {
		timing.Error = out.err.Error()
		return timing
	}
	timing.Selection = &out.selection
	return timing
}

// Compare runs every solver sequentially on the same input.
// When no solver is given, all registered solvers are used.
func Compare(assets []model.Asset, funds int, solvers ...Solver) model.Comparison {
	if len(solvers) == 0 {
		solvers = All()
	}

	cmp := model.Comparison{
		Funds:   funds,
		Assets:  len(assets),
		Timings: make([]model.Timing, 0, len(solvers)),
	}
	for _, s := range solvers {
		cmp.Timings = append(cmp.Timings, Run(s, assets, funds))
	}
	cmp.Agree = Agree(cmp.Timings)
	return cmp
}

// Agree reports whether all successful timings found the same profit.
func Agree(timings []model.Timing) bool {
	var (
		reference float64
		seen      bool
	)
	for _, t := range timings {
		if t.Selection == nil {
			continue
		}
		if !seen {
			reference, seen = t.Selection.Profit, true
			continue
		}
		if math.Abs(t.Selection.Profit-reference) > profitTolerance {
			return false
		}
	}
	return true
}
