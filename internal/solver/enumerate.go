package solver

import "github.com/guttosm/bond-optimizer/internal/domain/model"

// Enumerator generates every non-empty subset of n positions.
//
// The slice passed to visit is reused between calls and must not be retained.
type Enumerator interface {
	Name() string
	Enumerate(n int, visit func(indices []int))
}

// Combinations enumerates subsets by increasing size k, and within a size in
// lexicographic order of positions.
type Combinations struct{}

// Name returns the algorithm name of the combinatorial brute force.
func (Combinations) Name() string { return model.AlgorithmBruteForceCombinations }

// Enumerate visits every k-combination for k = 1..n.
func (Combinations) Enumerate(n int, visit func(indices []int)) {
	indices := make([]int, n)
	for k := 1; k <= n; k++ {
		comb := indices[:k]
		for i := range comb {
			comb[i] = i
		}
		for {
			visit(comb)

			// Find the rightmost position that can still move right.
			i := k - 1
			for i >= 0 && comb[i] == n-k+i {
				i--
			}
			if i < 0 {
				break
			}
			comb[i]++
			for j := i + 1; j < k; j++ {
				comb[j] = comb[j-1] + 1
			}
		}
	}
}

// Bitmask enumerates subsets by counting masks from 1 to 2^n - 1; bit j selects position j.
type Bitmask struct{}

// Name returns the algorithm name of the bitmask brute force.
func (Bitmask) Name() string { return model.AlgorithmBruteForceBitmask }

// Enumerate visits the subset of every mask in increasing order.
func (Bitmask) Enumerate(n int, visit func(indices []int)) {
	indices := make([]int, 0, n)
	limit := uint64(1) << uint(n)
	for mask := uint64(1); mask < limit; mask++ {
		indices = indices[:0]
		for j := 0; j < n; j++ {
			if (mask>>uint(j))&1 == 1 {
				indices = append(indices, j)
			}
		}
		visit(indices)
	}
}
