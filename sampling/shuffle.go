package sampling

import (
	"github.com/lixenwraith/evocore/random"
)

// Shuffle returns a uniformly random permutation of xs; xs is not modified.
//
// Swap targets r_i in [0, i] are drawn for i = len-1 down to 1 before any element
// moves, then applied as transpositions (Fisher-Yates).
func Shuffle[T any](xs []T) random.Rand[[]T] {
	return func(s random.State) ([]T, random.State) {
		swaps, s := swapTargets(len(xs))(s)

		out := make([]T, len(xs))
		copy(out, xs)
		for n, j := range swaps {
			i := len(xs) - 1 - n
			out[i], out[j] = out[j], out[i]
		}
		return out, s
	}
}

// swapTargets draws the transposition sequence for a length-n permutation
func swapTargets(n int) random.Rand[[]int] {
	if n < 2 {
		return random.Pure([]int{})
	}
	draws := make([]random.Rand[int], 0, n-1)
	for i := n - 1; i >= 1; i-- {
		draws = append(draws, random.Range(0, i))
	}
	return random.Sequence(draws)
}

// Permutation draws a uniformly random ordering of 0..n-1
func Permutation(n int) random.Rand[[]int] {
	idx := make([]int, max(n, 0))
	for i := range idx {
		idx[i] = i
	}
	return Shuffle(idx)
}
