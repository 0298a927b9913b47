package constraint

import (
	"fmt"

	"github.com/lixenwraith/evocore/random"
)

// Head projects the first decision variable
func Head[T random.Numeric]() Projection[[]T] {
	return At[T](0)
}

// At projects the decision variable at index i.
// Projecting past the genome's length panics.
func At[T random.Numeric](i int) Projection[[]T] {
	if i < 0 {
		panic(fmt.Sprintf("constraint: negative projection index %d", i))
	}
	return func(g []T) float64 {
		if i >= len(g) {
			panic(fmt.Sprintf("constraint: projection index %d out of range for genome of length %d", i, len(g)))
		}
		return float64(g[i])
	}
}

// Sum projects the sum of all decision variables
func Sum[T random.Numeric]() Projection[[]T] {
	return func(g []T) float64 {
		total := 0.0
		for _, v := range g {
			total += float64(v)
		}
		return total
	}
}

// Linear projects the dot product of coeffs with the genome.
// The genome length must equal the number of coefficients.
func Linear[T random.Numeric](coeffs ...float64) Projection[[]T] {
	coeffs = append([]float64(nil), coeffs...)
	return func(g []T) float64 {
		if len(g) != len(coeffs) {
			panic(fmt.Sprintf("constraint: linear projection of %d coefficients applied to genome of length %d", len(coeffs), len(g)))
		}
		total := 0.0
		for i, v := range g {
			total += coeffs[i] * float64(v)
		}
		return total
	}
}

// Neg negates a projection
func Neg[G any](f Projection[G]) Projection[G] {
	return func(g G) float64 { return -f(g) }
}

// Scale multiplies a projection by k
func Scale[G any](k float64, f Projection[G]) Projection[G] {
	return func(g G) float64 { return k * f(g) }
}

// Add sums projections
func Add[G any](fs ...Projection[G]) Projection[G] {
	return func(g G) float64 {
		total := 0.0
		for _, f := range fs {
			total += f(g)
		}
		return total
	}
}

// Ones projects the number of set bits of a binary genome
func Ones() Projection[[]bool] {
	return func(g []bool) float64 {
		n := 0
		for _, b := range g {
			if b {
				n++
			}
		}
		return float64(n)
	}
}

// Bit projects bit i of a binary genome as 0 or 1
func Bit(i int) Projection[[]bool] {
	if i < 0 {
		panic(fmt.Sprintf("constraint: negative projection index %d", i))
	}
	return func(g []bool) float64 {
		if i >= len(g) {
			panic(fmt.Sprintf("constraint: projection index %d out of range for genome of length %d", i, len(g)))
		}
		if g[i] {
			return 1
		}
		return 0
	}
}
