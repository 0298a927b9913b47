package random

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var allAlgorithms = []Algorithm{PCG, ChaCha8, MT19937, Xoshiro256, SplitMix64}

func TestState_Replay(t *testing.T) {
	for _, alg := range allAlgorithms {
		t.Run(alg.String(), func(t *testing.T) {
			s := NewWith(alg, 7)

			first, end1 := Replicate(64, Uint64())(s)
			second, end2 := Replicate(64, Uint64())(s)

			assert.Equal(t, first, second, "reusing a state must replay its draws")

			after1, _ := end1.Uint64()
			after2, _ := end2.Uint64()
			assert.Equal(t, after1, after2, "final states must match")
		})
	}
}

func TestState_SeedsDiverge(t *testing.T) {
	for _, alg := range allAlgorithms {
		a := Eval(Replicate(8, Uint64()), NewWith(alg, 1))
		b := Eval(Replicate(8, Uint64()), NewWith(alg, 2))
		assert.NotEqual(t, a, b, "%s: seeds 1 and 2 produced the same stream", alg)
	}
}

func TestState_AlgorithmsDiffer(t *testing.T) {
	seen := make(map[uint64]Algorithm)
	for _, alg := range allAlgorithms {
		v := Eval(Uint64(), NewWith(alg, 99))
		if prev, ok := seen[v]; ok {
			t.Errorf("%s and %s produced the same first word", prev, alg)
		}
		seen[v] = alg
	}
}

func TestState_ZeroPanics(t *testing.T) {
	var s State
	assert.False(t, s.Valid())
	assert.PanicsWithValue(t, "random: draw from uninitialized State", func() {
		s.Uint64()
	})
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range allAlgorithms {
		got, err := ParseAlgorithm(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, got)
	}

	got, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, PCG, got)

	_, err = ParseAlgorithm("lcg")
	assert.Error(t, err)
}

func TestFromEntropy_ReplaysWithSeed(t *testing.T) {
	s, seed := FromEntropy(Xoshiro256)
	assert.Equal(t, Xoshiro256, s.Algorithm())
	assert.Equal(t, Eval(Uint64(), NewWith(Xoshiro256, seed)), Eval(Uint64(), s))
}

func TestBind_SequencesLeftToRight(t *testing.T) {
	s := New(3)

	a, s1 := Uint64()(s)
	b, _ := Uint64()(s1)

	pair := Bind(Uint64(), func(x uint64) Rand[[2]uint64] {
		return Map(Uint64(), func(y uint64) [2]uint64 { return [2]uint64{x, y} })
	})
	assert.Equal(t, [2]uint64{a, b}, Eval(pair, s))

	assert.Equal(t, b, Eval(Then(Uint64(), Uint64()), s))
}

func TestSequence_MatchesManualThreading(t *testing.T) {
	s := New(11)
	got, end := Sequence([]Rand[int]{IntN(10), IntN(100), IntN(1000)})(s)

	x, s := IntN(10)(s)
	y, s := IntN(100)(s)
	z, s := IntN(1000)(s)

	assert.Equal(t, []int{x, y, z}, got)
	assert.Equal(t, Eval(Uint64(), s), Eval(Uint64(), end))
}

func TestPure_ConsumesNothing(t *testing.T) {
	s := New(5)
	v, next := Pure("x")(s)
	assert.Equal(t, "x", v)
	assert.Equal(t, Eval(Uint64(), s), Eval(Uint64(), next))
}

func TestUntil_RetriesUntilAccepted(t *testing.T) {
	even := Until(IntN(1000), func(v int) bool { return v%2 == 0 })
	for seed := uint64(0); seed < 50; seed++ {
		assert.Zero(t, Seeded(seed, even)%2)
	}
}

func TestRange_IntegerBounds(t *testing.T) {
	s := New(17)
	var v int
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		v, s = Range(-3, 3)(s)
		require.GreaterOrEqual(t, v, -3)
		require.LessOrEqual(t, v, 3)
		seen[v] = true
	}
	assert.Len(t, seen, 7, "every value of [-3, 3] should appear")
}

func TestRange_NarrowTypes(t *testing.T) {
	s := New(23)
	var lo, hi bool
	var v8 int8
	for i := 0; i < 5000; i++ {
		v8, s = Range[int8](math.MinInt8, math.MaxInt8)(s)
		lo = lo || v8 == math.MinInt8
		hi = hi || v8 == math.MaxInt8
	}
	assert.True(t, lo && hi, "full int8 range should reach both ends")

	var u uint64
	for i := 0; i < 100; i++ {
		u, s = Range[uint64](math.MaxUint64-4, math.MaxUint64)(s)
		require.GreaterOrEqual(t, u, uint64(math.MaxUint64-4))
	}

	var i64 int64
	var neg, pos bool
	for i := 0; i < 100; i++ {
		i64, s = Range[int64](math.MinInt64, math.MaxInt64)(s)
		neg = neg || i64 < 0
		pos = pos || i64 > 0
	}
	assert.True(t, neg && pos, "full int64 range should produce both signs")
}

func TestRange_Floats(t *testing.T) {
	s := New(29)
	var f float64
	var f32 float32
	for i := 0; i < 2000; i++ {
		f, s = Range(-2.5, 7.25)(s)
		require.GreaterOrEqual(t, f, -2.5)
		require.LessOrEqual(t, f, 7.25)

		f32, s = Range[float32](0.5, 1.5)(s)
		require.GreaterOrEqual(t, f32, float32(0.5))
		require.LessOrEqual(t, f32, float32(1.5))
	}

	extreme := Seeded(1, Range(-math.MaxFloat64, math.MaxFloat64))
	assert.False(t, math.IsInf(extreme, 0), "interpolation must not overflow")
}

func TestRange_DegenerateConsumesNothing(t *testing.T) {
	s := New(31)
	v, next := Range(4, 4)(s)
	assert.Equal(t, 4, v)
	assert.Equal(t, Eval(Uint64(), s), Eval(Uint64(), next))
}

func TestRange_MalformedPanics(t *testing.T) {
	assert.Panics(t, func() { Range(5, 4) })
	assert.Panics(t, func() { Range(1.0, math.NaN()) })
	assert.Panics(t, func() { Range(math.Inf(-1), math.Inf(1)) })
	assert.Panics(t, func() { Range(0, math.Inf(1)) })
	assert.Panics(t, func() { Range(float32(math.Inf(-1)), 0) })
	assert.Panics(t, func() { Range(math.Inf(1), math.Inf(1)) })
	assert.Panics(t, func() { IntN(0) })
}

func TestFloat64_UnitIntervals(t *testing.T) {
	s := New(37)
	var f, o, c float64
	for i := 0; i < 10000; i++ {
		f, s = Float64()(s)
		require.True(t, f >= 0 && f < 1)
		o, s = Float64Open()(s)
		require.True(t, o > 0 && o < 1)
		c, s = Float64Closed()(s)
		require.True(t, c >= 0 && c <= 1)
	}
}

func TestIntN_Uniform(t *testing.T) {
	const (
		buckets = 10
		draws   = 20000
	)
	obs := make([]float64, buckets)
	exp := make([]float64, buckets)
	for i := range exp {
		exp[i] = draws / buckets
	}

	vals := Seeded(41, Replicate(draws, IntN(buckets)))
	for _, v := range vals {
		obs[v]++
	}

	chi := stat.ChiSquare(obs, exp)
	p := 1 - distuv.ChiSquared{K: buckets - 1}.CDF(chi)
	assert.Greater(t, p, 0.001, "chi-square %.2f rejects uniformity", chi)
}

func TestBool_Balanced(t *testing.T) {
	vals := Seeded(43, Replicate(10000, Bool()))
	trues := 0
	for _, v := range vals {
		if v {
			trues++
		}
	}
	assert.InDelta(t, 5000, trues, 300)
}

func TestZip_DrawsInOrder(t *testing.T) {
	s := New(11)
	a, s1 := Uint64()(s)
	b, s2 := Int()(s1)

	p, got := Zip(Uint64(), Int())(s)
	assert.Equal(t, a, p.First)
	assert.Equal(t, b, p.Second)
	assert.Equal(t, Eval(Uint64(), s2), Eval(Uint64(), got))
}
