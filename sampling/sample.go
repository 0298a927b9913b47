package sampling

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/evocore/random"
)

// SampleWithoutReplacement picks min(n, len(xs)) elements of xs, never the same
// position twice, keeping their original relative order.
//
// Each step draws an offset k in [0, m-n] into the remaining window of size m,
// takes the element there and continues past it.
func SampleWithoutReplacement[T any](n int, xs []T) random.Rand[[]T] {
	return func(s random.State) ([]T, random.State) {
		n := min(max(n, 0), len(xs))
		out := make([]T, 0, n)
		rest := xs
		var k int
		for n > 0 && len(rest) > 0 {
			k, s = random.Range(0, len(rest)-n)(s)
			out = append(out, rest[k])
			rest = rest[k+1:]
			n--
		}
		return out, s
	}
}

// SampleIndices draws sampleSize distinct indices from [0, populationSize),
// returned in ascending order. Duplicates are redrawn, so sampleSize close to
// populationSize gets expensive. Panics when sampleSize > populationSize,
// which could never terminate.
func SampleIndices(sampleSize, populationSize int) random.Rand[[]int] {
	if sampleSize > populationSize {
		panic(fmt.Sprintf("sampling: cannot draw %d distinct indices from %d", sampleSize, populationSize))
	}
	if sampleSize <= 0 {
		return random.Pure([]int{})
	}
	draw := random.IntN(populationSize)
	return func(s random.State) ([]int, random.State) {
		set := make(map[int]struct{}, sampleSize)
		var i int
		for len(set) < sampleSize {
			i, s = draw(s)
			set[i] = struct{}{}
		}

		out := make([]int, 0, sampleSize)
		for i := range set {
			out = append(out, i)
		}
		slices.Sort(out)
		return out, s
	}
}

// Choice draws one element of xs uniformly. Panics on an empty slice.
func Choice[T any](xs []T) random.Rand[T] {
	if len(xs) == 0 {
		panic("sampling: Choice from empty slice")
	}
	return random.Map(random.IntN(len(xs)), func(i int) T { return xs[i] })
}
