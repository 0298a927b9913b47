package sampling

import (
	"math"

	"github.com/lixenwraith/evocore/random"
)

// NormalPair draws two independent standard-normal values with the Box-Muller
// transform of two uniforms on (0, 1)
func NormalPair() random.Rand[[2]float64] {
	open := random.Float64Open()
	return func(s random.State) ([2]float64, random.State) {
		u, s := open(s)
		v, s := open(s)
		r := math.Sqrt(-2 * math.Log(u))
		theta := 2 * math.Pi * v
		return [2]float64{r * math.Cos(theta), r * math.Sin(theta)}, s
	}
}

// Normal draws one standard-normal value. Both uniforms of the pair are
// consumed, so subsequent draws match a NormalPair call.
func Normal() random.Rand[float64] {
	return random.Map(NormalPair(), func(p [2]float64) float64 { return p[0] })
}

// NormalWith draws from N(mean, stddev^2)
func NormalWith(mean, stddev float64) random.Rand[float64] {
	return random.Map(Normal(), func(z float64) float64 { return mean + stddev*z })
}
