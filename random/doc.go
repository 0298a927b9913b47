// Package random provides a pure, reproducible random-computation abstraction.
//
// Generator state is an immutable value. A Rand[T] consumes one State and returns a
// value with the successor State, so there is no hidden or global generator: a run
// seeded identically replays bit-for-bit.
//
//	s := random.New(42)
//	pick := random.Bind(random.IntN(10), func(i int) random.Rand[float64] {
//	    return random.Range(0.0, float64(i))
//	})
//	v, next := pick(s)
//
// Several generator algorithms are available through NewWith; PCG is the default.
package random
