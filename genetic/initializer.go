package genetic

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/evocore/constraint"
	"github.com/lixenwraith/evocore/random"
)

// ErrAttemptsExhausted is returned when a capped initializer runs out of draws
var ErrAttemptsExhausted = errors.New("genetic: rejection attempts exhausted")

// UniformGenome draws one value per variable, uniformly within its bounds, in variable order
func UniformGenome[T random.Numeric](bounds []Bounds[T]) random.Rand[[]T] {
	draws := make([]random.Rand[T], len(bounds))
	for i, b := range bounds {
		draws[i] = random.Range(b.Min, b.Max)
	}
	return random.Sequence(draws)
}

// ConstrainedGenomes produces exactly n genomes that satisfy every constraint.
// Each candidate is drawn with UniformGenome and discarded until feasible, so
// an empty feasible region never terminates. Panics if any bound has Min > Max.
func ConstrainedGenomes[T random.Numeric](cs []constraint.Constraint[[]T], n int, bounds []Bounds[T]) random.Rand[[][]T] {
	if err := checkBounds(bounds); err != nil {
		panic(err.Error())
	}
	feasible := random.Until(UniformGenome(bounds), func(g []T) bool {
		return constraint.IsFeasible(cs, g)
	})
	return random.Replicate(n, feasible)
}

// ConstrainedBinaryGenomes produces exactly n feasible bit strings of the given length
func ConstrainedBinaryGenomes(cs []constraint.Constraint[[]bool], n, length int) random.Rand[[][]bool] {
	feasible := random.Until(random.Replicate(length, random.Bool()), func(g []bool) bool {
		return constraint.IsFeasible(cs, g)
	})
	return random.Replicate(n, feasible)
}

// Initializer is the checked form of ConstrainedGenomes. With MaxAttempts 0 it
// consumes exactly the same draws and returns the same genomes.
type Initializer[T random.Numeric] struct {
	Constraints []constraint.Constraint[[]T]
	Bounds      []Bounds[T]
	// MaxAttempts caps the total number of candidates drawn; 0 means no cap
	MaxAttempts int
}

// Generate draws n feasible genomes starting at s. When the cap is hit it
// returns the genomes accepted so far together with ErrAttemptsExhausted.
func (in *Initializer[T]) Generate(n int, s random.State) ([][]T, random.State, Report, error) {
	var rep Report
	if err := checkBounds(in.Bounds); err != nil {
		return nil, s, rep, err
	}

	draw := UniformGenome(in.Bounds)
	out := make([][]T, 0, max(n, 0))
	var g []T
	for len(out) < n {
		if in.MaxAttempts > 0 && rep.Attempts >= in.MaxAttempts {
			return out, s, rep, fmt.Errorf("%w: %d of %d genomes after %d attempts",
				ErrAttemptsExhausted, rep.Accepted, n, rep.Attempts)
		}
		g, s = draw(s)
		rep.Attempts++
		if constraint.IsFeasible(in.Constraints, g) {
			out = append(out, g)
			rep.Accepted++
		}
	}
	return out, s, rep, nil
}

// Func adapts the initializer for Engine
func (in *Initializer[T]) Func() InitializerFunc[[]T] {
	return in.Generate
}

// FromRand builds an InitializerFunc that runs r once per genome without rejection
func FromRand[G any](r random.Rand[G]) InitializerFunc[G] {
	return func(n int, s random.State) ([]G, random.State, Report, error) {
		gs, s := random.Replicate(n, r)(s)
		return gs, s, Report{Accepted: len(gs), Attempts: len(gs)}, nil
	}
}
