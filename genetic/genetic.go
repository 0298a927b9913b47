// Package genetic generates constraint-satisfying starting populations and
// selects survivors with constraint awareness. Operators follow the
// state-passing convention of package random: nothing here owns a generator.
package genetic

import (
	"slices"

	"github.com/lixenwraith/evocore/random"
	"github.com/lixenwraith/evocore/sampling"
)

// --- Selectors ---

// TournamentSelector runs one tournament per selected candidate and keeps the winner
type TournamentSelector[G any, F random.Numeric] struct {
	// TournamentSize is the number of contestants per tournament; values below 1 mean 2
	TournamentSize int
	// WithReplacement lets a candidate appear more than once in the same tournament
	WithReplacement bool
}

// Select implements Selector
func (ts *TournamentSelector[G, F]) Select(pool []Candidate[G, F], size int, compare Compare[G, F]) random.Rand[[]Candidate[G, F]] {
	poolSize := len(pool)
	if poolSize == 0 || size <= 0 {
		return random.Pure([]Candidate[G, F]{})
	}

	tournSize := ts.TournamentSize
	if tournSize < 1 {
		tournSize = 2
	}
	if !ts.WithReplacement {
		tournSize = min(tournSize, poolSize)
	}
	contestants := ts.contestants(tournSize, poolSize)

	return func(s random.State) ([]Candidate[G, F], random.State) {
		selected := make([]Candidate[G, F], 0, size)
		var idx []int
		for len(selected) < size {
			idx, s = contestants(s)
			winner := pool[idx[0]]
			for _, i := range idx[1:] {
				if compare(pool[i], winner) < 0 {
					winner = pool[i]
				}
			}
			selected = append(selected, winner)
		}
		return selected, s
	}
}

func (ts *TournamentSelector[G, F]) contestants(k, n int) random.Rand[[]int] {
	if ts.WithReplacement {
		return random.Replicate(k, random.IntN(n))
	}
	return random.Bind(sampling.SampleIndices(k, n), sampling.Shuffle[int])
}

// ElitistSelector deterministically keeps the size best candidates.
// Ties keep pool order. Returns fewer than size when the pool is smaller.
type ElitistSelector[G any, F random.Numeric] struct{}

// Select implements Selector without consuming draws
func (ElitistSelector[G, F]) Select(pool []Candidate[G, F], size int, compare Compare[G, F]) random.Rand[[]Candidate[G, F]] {
	ranked := slices.Clone(pool)
	slices.SortStableFunc(ranked, compare)
	return random.Pure(ranked[:min(max(size, 0), len(ranked))])
}

// --- Combiners ---

// UniformCombiner performs uniform crossover of the first two parents
type UniformCombiner[S ~[]T, T any, F random.Numeric] struct {
	// MixProbability is the chance the first child takes a gene from the first parent
	MixProbability float64
}

// Combine creates two offspring, one Float64 draw per gene
func (uc *UniformCombiner[S, T, F]) Combine(parents []Candidate[S, F]) random.Rand[[]S] {
	if len(parents) < 2 {
		return random.Pure(passThrough(parents))
	}

	parent1, parent2 := parents[0].Genome, parents[1].Genome
	length := min(len(parent1), len(parent2))
	mix := uc.MixProbability

	return random.Map(random.Replicate(length, random.Float64()), func(coins []float64) []S {
		offspring1 := make(S, length)
		offspring2 := make(S, length)
		for i, t := range coins {
			if t < mix {
				offspring1[i], offspring2[i] = parent1[i], parent2[i]
			} else {
				offspring1[i], offspring2[i] = parent2[i], parent1[i]
			}
		}
		return []S{offspring1, offspring2}
	})
}

// NPointCombiner splits the parents at Points distinct cut positions and alternates segments
type NPointCombiner[S ~[]T, T any, F random.Numeric] struct {
	Points int
}

// Combine creates two offspring
func (nc *NPointCombiner[S, T, F]) Combine(parents []Candidate[S, F]) random.Rand[[]S] {
	if len(parents) < 2 {
		return random.Pure(passThrough(parents))
	}

	parent1, parent2 := parents[0].Genome, parents[1].Genome
	length := min(len(parent1), len(parent2))
	if length < 2 || nc.Points < 1 {
		return random.Pure([]S{slices.Clone(parent1[:length]), slices.Clone(parent2[:length])})
	}

	// Cut positions are 1..length-1, drawn without repetition and already sorted
	cuts := sampling.SampleIndices(min(nc.Points, length-1), length-1)

	return random.Map(cuts, func(idx []int) []S {
		offspring1 := make(S, length)
		offspring2 := make(S, length)

		bounds := make([]int, 0, len(idx)+2)
		bounds = append(bounds, 0)
		for _, c := range idx {
			bounds = append(bounds, c+1)
		}
		bounds = append(bounds, length)

		useParent1 := true
		for i := 0; i < len(bounds)-1; i++ {
			for j := bounds[i]; j < bounds[i+1]; j++ {
				if useParent1 {
					offspring1[j], offspring2[j] = parent1[j], parent2[j]
				} else {
					offspring1[j], offspring2[j] = parent2[j], parent1[j]
				}
			}
			useParent1 = !useParent1
		}
		return []S{offspring1, offspring2}
	})
}

func passThrough[S ~[]T, T any, F random.Numeric](parents []Candidate[S, F]) []S {
	if len(parents) == 1 {
		return []S{slices.Clone(parents[0].Genome)}
	}
	return []S{}
}
