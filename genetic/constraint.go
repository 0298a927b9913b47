package genetic

import (
	"cmp"
	"fmt"
	"math"

	"github.com/lixenwraith/evocore/constraint"
	"github.com/lixenwraith/evocore/random"
	"github.com/lixenwraith/evocore/sampling"
)

// Bounds is the inclusive admissible range of one decision variable
type Bounds[T random.Numeric] struct {
	Min, Max T
}

// Clamp pulls v into [Min, Max]
func (b Bounds[T]) Clamp(v T) T {
	return min(max(v, b.Min), b.Max)
}

func checkBounds[T random.Numeric](bounds []Bounds[T]) error {
	for i, b := range bounds {
		if !(b.Min <= b.Max) {
			return fmt.Errorf("genetic: bounds[%d] has Min %v > Max %v", i, b.Min, b.Max)
		}
	}
	return nil
}

// --- Constraint-aware selection ---

// ConstrainedCompare orders candidates by violation score first, lower wins,
// and by objective in dir when the scores tie
func ConstrainedCompare[G any, F random.Numeric](cs []constraint.Constraint[G], metric constraint.Metric[G], dir Direction) Compare[G, F] {
	byObjective := ObjectiveCompare[G, F](dir)
	return func(a, b Candidate[G, F]) int {
		if c := cmp.Compare(metric(cs, a.Genome), metric(cs, b.Genome)); c != 0 {
			return c
		}
		return byObjective(a, b)
	}
}

// WithConstraints wraps base so that it ranks by violation before objective.
// The number of candidates returned and the draws consumed are those of base.
func WithConstraints[G any, F random.Numeric](cs []constraint.Constraint[G], metric constraint.Metric[G], dir Direction, base Selector[G, F]) SelectionOp[G, F] {
	compare := ConstrainedCompare[G, F](cs, metric, dir)
	return func(pool []Candidate[G, F], size int) random.Rand[[]Candidate[G, F]] {
		return base.Select(pool, size, compare)
	}
}

// Unconstrained adapts base to rank by objective only
func Unconstrained[G any, F random.Numeric](dir Direction, base Selector[G, F]) SelectionOp[G, F] {
	compare := ObjectiveCompare[G, F](dir)
	return func(pool []Candidate[G, F], size int) random.Rand[[]Candidate[G, F]] {
		return base.Select(pool, size, compare)
	}
}

// DeathPenalty returns the feasible members of pool in their original order
func DeathPenalty[G any, F random.Numeric](cs []constraint.Constraint[G], pool []Candidate[G, F]) []Candidate[G, F] {
	out := make([]Candidate[G, F], 0, len(pool))
	for _, c := range pool {
		if constraint.IsFeasible(cs, c.Genome) {
			out = append(out, c)
		}
	}
	return out
}

// --- Bounded perturbation ---

// BoundedPerturbator adds Gaussian noise scaled by each variable's range and
// clamps the result back into bounds. Genes past len(Bounds) are left alone.
type BoundedPerturbator[T random.Numeric] struct {
	Bounds            []Bounds[T]
	StandardDeviation float64
}

// Perturb implements Perturbator
func (bp *BoundedPerturbator[T]) Perturb(genome []T, rate float64) random.Rand[[]T] {
	n := min(len(genome), len(bp.Bounds))
	steps := make([]random.Rand[T], n)
	for i := 0; i < n; i++ {
		b := bp.Bounds[i]
		scale := bp.StandardDeviation * (float64(b.Max) - float64(b.Min))
		nudge := func(v T) random.Rand[T] {
			return random.Map(sampling.Normal(), func(z float64) T {
				x := float64(v) + z*scale
				return T(math.Min(math.Max(x, float64(b.Min)), float64(b.Max)))
			})
		}
		steps[i] = sampling.WithProbability(rate, nudge)(genome[i])
	}

	return random.Map(random.Sequence(steps), func(head []T) []T {
		out := make([]T, len(genome))
		copy(out, genome)
		copy(out, head)
		return out
	})
}

// Clamp returns a copy of genome with every bounded gene pulled into range
func (bp *BoundedPerturbator[T]) Clamp(genome []T) []T {
	out := make([]T, len(genome))
	for i, v := range genome {
		if i < len(bp.Bounds) {
			v = bp.Bounds[i].Clamp(v)
		}
		out[i] = v
	}
	return out
}
