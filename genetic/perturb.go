package genetic

import (
	"github.com/lixenwraith/evocore/random"
	"github.com/lixenwraith/evocore/sampling"
)

// GaussianPerturbator adds N(0, StandardDeviation) noise to each gene with probability rate
type GaussianPerturbator[S ~[]F, F random.Numeric] struct {
	StandardDeviation float64
}

// Perturb implements Perturbator
func (gp *GaussianPerturbator[S, F]) Perturb(genome S, rate float64) random.Rand[S] {
	noise := sampling.NormalWith(0, gp.StandardDeviation)
	nudge := sampling.WithProbability(rate, func(v F) random.Rand[F] {
		return random.Map(noise, func(z float64) F { return F(float64(v) + z) })
	})

	steps := make([]random.Rand[F], len(genome))
	for i, v := range genome {
		steps[i] = nudge(v)
	}
	return random.Map(random.Sequence(steps), func(out []F) S { return S(out) })
}

// BitFlipPerturbator flips each bit of a binary genome with probability rate
type BitFlipPerturbator struct{}

// Perturb implements Perturbator
func (BitFlipPerturbator) Perturb(genome []bool, rate float64) random.Rand[[]bool] {
	flip := sampling.WithProbability(rate, func(b bool) random.Rand[bool] {
		return random.Pure(!b)
	})

	steps := make([]random.Rand[bool], len(genome))
	for i, b := range genome {
		steps[i] = flip(b)
	}
	return random.Sequence(steps)
}
