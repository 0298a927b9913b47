package genetic

import (
	"cmp"
	"fmt"

	"github.com/lixenwraith/evocore/random"
)

// --- Core Data Structures ---

// Candidate is a genome paired with its evaluated objective value.
// G is the genome type, F the objective type.
type Candidate[G any, F random.Numeric] struct {
	Genome    G
	Objective F
}

// Direction states whether lower or higher objective values are preferred
type Direction uint8

const (
	Minimizing Direction = iota
	Maximizing
)

func (d Direction) String() string {
	switch d {
	case Minimizing:
		return "minimize"
	case Maximizing:
		return "maximize"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// ParseDirection maps "minimize" or "maximize" to a Direction; empty selects Minimizing
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "", "minimize", "min":
		return Minimizing, nil
	case "maximize", "max":
		return Maximizing, nil
	default:
		return Minimizing, fmt.Errorf("genetic: unknown direction %q", name)
	}
}

// Pool is the working set of candidates for one generation
type Pool[G any, F random.Numeric] struct {
	Members []Candidate[G, F]
	// Generation is 0 for the initial pool
	Generation int
	Stats      PoolStats[F]
}

// PoolStats summarizes a pool. Best and Worst follow the engine's ranking,
// so with constraints active the best candidate is the least violating one.
type PoolStats[F random.Numeric] struct {
	Size           int
	BestObjective  F
	WorstObjective F
	MeanObjective  float64
	// Feasible counts members satisfying every constraint; equals Size without constraints
	Feasible int
}

// FeasibleFraction returns Feasible/Size, 0 for an empty pool
func (ps PoolStats[F]) FeasibleFraction() float64 {
	if ps.Size == 0 {
		return 0
	}
	return float64(ps.Feasible) / float64(ps.Size)
}

// --- Function Types ---

// EvaluatorFunc computes the objective value of a genome
type EvaluatorFunc[G any, F random.Numeric] func(genome G) F

// Report describes the work an initializer performed
type Report struct {
	Accepted int
	// Attempts counts every candidate drawn, accepted or rejected
	Attempts int
}

// Rejected returns the number of drawn candidates that were discarded
func (r Report) Rejected() int {
	return r.Attempts - r.Accepted
}

// InitializerFunc produces n starting genomes from s
type InitializerFunc[G any] func(n int, s random.State) ([]G, random.State, Report, error)

// TerminationFunc reports whether the run should stop before evolving the given iteration
type TerminationFunc[G any, F random.Numeric] func(pool *Pool[G, F], iteration int) bool

// Compare orders two candidates: negative when a is preferred, positive when b is,
// zero when neither is
type Compare[G any, F random.Numeric] func(a, b Candidate[G, F]) int

// ObjectiveCompare orders candidates by objective value alone
func ObjectiveCompare[G any, F random.Numeric](dir Direction) Compare[G, F] {
	if dir == Maximizing {
		return func(a, b Candidate[G, F]) int { return cmp.Compare(b.Objective, a.Objective) }
	}
	return func(a, b Candidate[G, F]) int { return cmp.Compare(a.Objective, b.Objective) }
}

// SelectionOp picks size candidates from pool
type SelectionOp[G any, F random.Numeric] func(pool []Candidate[G, F], size int) random.Rand[[]Candidate[G, F]]

// --- Core Operators ---

// Selector is a base selection strategy parameterized by the comparison it ranks with
type Selector[G any, F random.Numeric] interface {
	// Select returns size candidates drawn from pool. Randomness flows only through the returned Rand.
	Select(pool []Candidate[G, F], size int, compare Compare[G, F]) random.Rand[[]Candidate[G, F]]
}

// Combiner recombines parent genomes into offspring
type Combiner[G any, F random.Numeric] interface {
	Combine(parents []Candidate[G, F]) random.Rand[[]G]
}

// Perturbator introduces variation into a genome. Implementations return a new
// genome and leave the input untouched. rate is the per-gene probability (0-1).
type Perturbator[G any] interface {
	Perturb(genome G, rate float64) random.Rand[G]
}
