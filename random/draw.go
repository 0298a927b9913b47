package random

import (
	"fmt"
	"math"
)

// Numeric constrains types that can be drawn from a range
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

const (
	float64Unit = 1.0 / (1 << 53)
	float32Unit = 1.0 / (1 << 24)
)

// --- Primitive Draws ---

// Uint64 draws a uniform 64-bit word
func Uint64() Rand[uint64] {
	return State.Uint64
}

// Uint draws a uniform default-width unsigned integer
func Uint() Rand[uint] {
	return Map(Uint64(), func(v uint64) uint { return uint(v) })
}

// Int64 draws a uniform signed 64-bit integer over its full range
func Int64() Rand[int64] {
	return Map(Uint64(), func(v uint64) int64 { return int64(v) })
}

// Int draws a uniform default-width signed integer over its full range
func Int() Rand[int] {
	return Map(Uint64(), func(v uint64) int { return int(v) })
}

// Bool draws a fair coin from the top bit of one word
func Bool() Rand[bool] {
	return Map(Uint64(), func(v uint64) bool { return v>>63 == 1 })
}

// Float64 draws from [0, 1) with 53 bits of precision
func Float64() Rand[float64] {
	return State.Float64
}

// Float64 draws from [0, 1) with 53 bits of precision
func (s State) Float64() (float64, State) {
	v, next := s.Uint64()
	return float64(v>>11) * float64Unit, next
}

// Float64Closed draws from [0, 1], both ends reachable
func Float64Closed() Rand[float64] {
	return func(s State) (float64, State) {
		v, next := s.Uint64()
		return float64(v>>11) / float64((1<<53)-1), next
	}
}

// Float64Open draws from (0, 1), neither end reachable.
// Exactly one word is consumed, so draw counts stay fixed.
func Float64Open() Rand[float64] {
	return func(s State) (float64, State) {
		v, next := s.Uint64()
		return (float64(v>>11) + 0.5) * float64Unit, next
	}
}

// Float32 draws from [0, 1) with 24 bits of precision
func Float32() Rand[float32] {
	return Map(Uint64(), func(v uint64) float32 { return float32(v>>40) * float32Unit })
}

// IntN draws from [0, n). Panics if n <= 0.
func IntN(n int) Rand[int] {
	if n <= 0 {
		panic(fmt.Sprintf("random: IntN with non-positive n %d", n))
	}
	return Range(0, n-1)
}

// --- Ranges ---

// Range draws uniformly from the inclusive range [lo, hi].
// Integer kinds use unbiased bounded draws; float kinds interpolate a draw
// from [0, 1]. lo == hi consumes no draw. Panics if lo > hi or a bound is NaN
// or infinite.
func Range[T Numeric](lo, hi T) Rand[T] {
	if !(lo <= hi) {
		panic(fmt.Sprintf("random: Range with lo %v > hi %v", lo, hi))
	}
	if isFloat[T]() && (math.IsInf(float64(lo), 0) || math.IsInf(float64(hi), 0)) {
		panic(fmt.Sprintf("random: Range with infinite bound [%v, %v]", lo, hi))
	}
	if lo == hi {
		return Pure(lo)
	}

	if isFloat[T]() {
		closed := Float64Closed()
		return func(s State) (T, State) {
			u, next := closed(s)
			// Interpolating avoids overflow of hi-lo for extreme bounds
			v := T(1-u)*lo + T(u)*hi
			if v < lo {
				v = lo
			} else if v > hi {
				v = hi
			}
			return v, next
		}
	}

	span := integerSpan(lo, hi)
	return func(s State) (T, State) {
		v, next := s.uint64Inclusive(span)
		// Wraparound addition is exact modulo the width of T
		return lo + T(v), next
	}
}

func isFloat[T Numeric]() bool {
	var one T = 1
	return one/2 != 0
}

func integerSpan[T Numeric](lo, hi T) uint64 {
	var zero T
	if zero-1 < zero {
		return uint64(int64(hi)) - uint64(int64(lo))
	}
	return uint64(hi) - uint64(lo)
}

// uint64Inclusive draws from [0, n] without modulo bias
func (s State) uint64Inclusive(n uint64) (uint64, State) {
	var v uint64
	switch {
	// n+1 is a power of two, masking is exact
	case n&(n+1) == 0:
		v, s = s.Uint64()
		return v & n, s

	// More than half the word range, reject values above n
	case n > math.MaxInt64:
		v, s = s.Uint64()
		for v > n {
			v, s = s.Uint64()
		}
		return v, s

	// Reject from [0, k*(n+1)) on 63 bits, then reduce
	default:
		maximum := uint64((1<<63)-1) - (1<<63)%(n+1)
		v, s = s.Uint64()
		v &= math.MaxInt64
		for v > maximum {
			v, s = s.Uint64()
			v &= math.MaxInt64
		}
		return v % (n + 1), s
	}
}
