package sampling

import (
	"github.com/lixenwraith/evocore/random"
)

// WithProbability lifts transform so it runs with probability p.
// One uniform t is drawn; t < p applies transform and consumes its draws,
// otherwise the input comes back unchanged with no further draws.
func WithProbability[T any](p float64, transform func(T) random.Rand[T]) func(T) random.Rand[T] {
	coin := random.Float64()
	return func(x T) random.Rand[T] {
		return func(s random.State) (T, random.State) {
			t, s := coin(s)
			if t < p {
				return transform(x)(s)
			}
			return x, s
		}
	}
}

// Bernoulli draws true with probability p
func Bernoulli(p float64) random.Rand[bool] {
	return random.Map(random.Float64(), func(t float64) bool { return t < p })
}
