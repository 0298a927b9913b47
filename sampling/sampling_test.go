package sampling

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lixenwraith/evocore/random"
)

func seq(n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = i
	}
	return xs
}

// chiSquareP returns the goodness-of-fit p-value of observed counts against a flat expectation
func chiSquareP(obs []float64) float64 {
	total := 0.0
	for _, o := range obs {
		total += o
	}
	exp := make([]float64, len(obs))
	for i := range exp {
		exp[i] = total / float64(len(obs))
	}
	chi := stat.ChiSquare(obs, exp)
	return 1 - distuv.ChiSquared{K: float64(len(obs) - 1)}.CDF(chi)
}

// --- Normal ---

func TestNormalPair_BoxMuller(t *testing.T) {
	s := random.New(1)

	u, s1 := random.Float64Open()(s)
	v, s2 := random.Float64Open()(s1)
	r := math.Sqrt(-2 * math.Log(u))
	want := [2]float64{r * math.Cos(2*math.Pi*v), r * math.Sin(2*math.Pi*v)}

	got, end := NormalPair()(s)
	assert.InDelta(t, want[0], got[0], 1e-12)
	assert.InDelta(t, want[1], got[1], 1e-12)
	assert.Equal(t, random.Eval(random.Uint64(), s2), random.Eval(random.Uint64(), end))
}

func TestNormal_ConsumesBothDraws(t *testing.T) {
	s := random.New(2)
	pair, afterPair := NormalPair()(s)
	x, afterNormal := Normal()(s)

	assert.Equal(t, pair[0], x)
	assert.Equal(t,
		random.Eval(random.Uint64(), afterPair),
		random.Eval(random.Uint64(), afterNormal))
}

func TestNormal_Moments(t *testing.T) {
	xs := random.Seeded(3, random.Replicate(20000, Normal()))
	mean, std := stat.MeanStdDev(xs, nil)
	assert.InDelta(t, 0, mean, 0.03)
	assert.InDelta(t, 1, std, 0.03)

	ys := random.Seeded(4, random.Replicate(20000, NormalWith(10, 2)))
	mean, std = stat.MeanStdDev(ys, nil)
	assert.InDelta(t, 10, mean, 0.06)
	assert.InDelta(t, 2, std, 0.06)
}

// --- Sample Without Replacement ---

func TestSampleWithoutReplacement_CountAndOrder(t *testing.T) {
	tests := []struct {
		n, m int
		want int
	}{
		{0, 10, 0},
		{-2, 10, 0},
		{1, 10, 1},
		{5, 10, 5},
		{10, 10, 10},
		{15, 10, 10},
		{3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d,m=%d", tt.n, tt.m), func(t *testing.T) {
			xs := seq(tt.m)
			for seed := uint64(0); seed < 20; seed++ {
				ys := random.Seeded(seed, SampleWithoutReplacement(tt.n, xs))
				require.Len(t, ys, tt.want)
				for i := 1; i < len(ys); i++ {
					require.Less(t, ys[i-1], ys[i], "order or distinctness broken: %v", ys)
				}
			}
			assert.Equal(t, seq(tt.m), xs, "input must not be modified")
		})
	}
}

func TestSampleWithoutReplacement_EveryElementReachable(t *testing.T) {
	xs := []string{"a", "b", "c", "d", "e", "f"}
	seen := make(map[string]bool)
	s := random.New(5)
	var ys []string
	for i := 0; i < 200; i++ {
		ys, s = SampleWithoutReplacement(2, xs)(s)
		for _, y := range ys {
			seen[y] = true
		}
	}
	assert.Len(t, seen, len(xs))
}

// --- Sample Indices ---

func TestSampleIndices_DistinctAscending(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		idx := random.Seeded(seed, SampleIndices(8, 100))
		require.Len(t, idx, 8)
		require.True(t, slices.IsSorted(idx))
		for i, v := range idx {
			require.GreaterOrEqual(t, v, 0)
			require.Less(t, v, 100)
			if i > 0 {
				require.NotEqual(t, idx[i-1], v)
			}
		}
	}
}

func TestSampleIndices_Edges(t *testing.T) {
	assert.Equal(t, seq(6), random.Seeded(9, SampleIndices(6, 6)))
	assert.Empty(t, random.Seeded(9, SampleIndices(0, 6)))
	assert.Panics(t, func() { SampleIndices(7, 6) })
}

func TestSampleIndices_Deterministic(t *testing.T) {
	a := random.Seeded(77, SampleIndices(10, 1000))
	b := random.Seeded(77, SampleIndices(10, 1000))
	assert.Equal(t, a, b)
}

// --- Shuffle ---

func TestShuffle_PreservesMultiset(t *testing.T) {
	xs := []int{5, 1, 1, 4, 9, 2, 2, 2}
	orig := slices.Clone(xs)

	ys := random.Seeded(11, Shuffle(xs))
	assert.Equal(t, orig, xs, "input must not be modified")
	assert.ElementsMatch(t, xs, ys)
}

func TestShuffle_Small(t *testing.T) {
	assert.Empty(t, random.Seeded(1, Shuffle([]int{})))
	assert.Equal(t, []int{42}, random.Seeded(1, Shuffle([]int{42})))
}

func TestShuffle_AllPermutationsReachable(t *testing.T) {
	seen := make(map[string]int)
	for seed := uint64(0); seed < 600; seed++ {
		p := random.Seeded(seed, Shuffle([]string{"a", "b", "c"}))
		seen[fmt.Sprint(p)]++
	}
	require.Len(t, seen, 6, "all 3! permutations should occur")

	counts := make([]float64, 0, len(seen))
	for _, c := range seen {
		counts = append(counts, float64(c))
	}
	assert.Greater(t, chiSquareP(counts), 0.001)
}

func TestShuffle_PositionMappingUniform(t *testing.T) {
	const n = 5
	// mapping[i*n+j] counts element i landing at position j
	mapping := make([]float64, n*n)
	for seed := uint64(0); seed < 5000; seed++ {
		p := random.Seeded(seed, Permutation(n))
		for pos, elem := range p {
			mapping[elem*n+pos]++
		}
	}
	for i := 0; i < n; i++ {
		assert.Greater(t, chiSquareP(mapping[i*n:(i+1)*n]), 0.001, "element %d", i)
	}
}

// --- With Probability ---

func TestWithProbability_Never(t *testing.T) {
	double := func(x int) random.Rand[int] { return random.Pure(2 * x) }
	s := random.New(13)

	v, next := WithProbability(0, double)(21)(s)
	assert.Equal(t, 21, v)
	assert.Equal(t,
		random.Eval(random.Uint64(), random.Exec(random.Float64(), s)),
		random.Eval(random.Uint64(), next),
		"exactly one draw consumed")
}

func TestWithProbability_AlwaysConsumesTransformDraws(t *testing.T) {
	jitter := func(x float64) random.Rand[float64] {
		return random.Map(Normal(), func(z float64) float64 { return x + z })
	}
	s := random.New(17)

	_, expectEnd := random.Float64()(s)
	z, expectEnd := Normal()(expectEnd)

	v, end := WithProbability(1, jitter)(1.0)(s)
	assert.Equal(t, 1.0+z, v)
	assert.Equal(t, random.Eval(random.Uint64(), expectEnd), random.Eval(random.Uint64(), end))
}

func TestWithProbability_Frequency(t *testing.T) {
	inc := func(x int) random.Rand[int] { return random.Pure(x + 1) }
	op := WithProbability(0.3, inc)

	s := random.New(19)
	applied := 0
	var v int
	for i := 0; i < 10000; i++ {
		v, s = op(0)(s)
		applied += v
	}
	assert.InDelta(t, 3000, applied, 200)
}

func TestBernoulliAndChoice(t *testing.T) {
	hits := 0
	for _, b := range random.Seeded(23, random.Replicate(10000, Bernoulli(0.25))) {
		if b {
			hits++
		}
	}
	assert.InDelta(t, 2500, hits, 200)

	picks := random.Seeded(29, random.Replicate(300, Choice([]string{"x", "y", "z"})))
	assert.Contains(t, picks, "x")
	assert.Contains(t, picks, "y")
	assert.Contains(t, picks, "z")
	assert.Panics(t, func() { Choice([]int{}) })
}
