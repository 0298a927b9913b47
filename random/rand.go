package random

// Rand is a random computation: given a state it produces a value and the
// successor state. All randomness in the module flows through this type.
type Rand[T any] func(State) (T, State)

// Pure returns v without consuming any draws
func Pure[T any](v T) Rand[T] {
	return func(s State) (T, State) {
		return v, s
	}
}

// Map transforms the result of r
func Map[A, B any](r Rand[A], f func(A) B) Rand[B] {
	return func(s State) (B, State) {
		a, next := r(s)
		return f(a), next
	}
}

// Bind sequences r and the computation chosen from its result, left to right
func Bind[A, B any](r Rand[A], f func(A) Rand[B]) Rand[B] {
	return func(s State) (B, State) {
		a, next := r(s)
		return f(a)(next)
	}
}

// Then runs r for its draws only, then next
func Then[A, B any](r Rand[A], next Rand[B]) Rand[B] {
	return func(s State) (B, State) {
		_, s = r(s)
		return next(s)
	}
}

// Zip runs a then b and pairs their results
func Zip[A, B any](a Rand[A], b Rand[B]) Rand[Pair[A, B]] {
	return func(s State) (Pair[A, B], State) {
		var p Pair[A, B]
		p.First, s = a(s)
		p.Second, s = b(s)
		return p, s
	}
}

// Pair holds the results of Zip
type Pair[A, B any] struct {
	First  A
	Second B
}

// Sequence runs rs in order and collects their results
func Sequence[T any](rs []Rand[T]) Rand[[]T] {
	return func(s State) ([]T, State) {
		out := make([]T, len(rs))
		for i, r := range rs {
			out[i], s = r(s)
		}
		return out, s
	}
}

// Replicate runs r n times
func Replicate[T any](n int, r Rand[T]) Rand[[]T] {
	return func(s State) ([]T, State) {
		if n <= 0 {
			return []T{}, s
		}
		out := make([]T, n)
		for i := range out {
			out[i], s = r(s)
		}
		return out, s
	}
}

// Until repeats r until accept holds for its result.
// There is no retry cap; an unsatisfiable predicate never returns.
func Until[T any](r Rand[T], accept func(T) bool) Rand[T] {
	return func(s State) (T, State) {
		for {
			v, next := r(s)
			s = next
			if accept(v) {
				return v, s
			}
		}
	}
}

// Run executes r from s and returns the value and final state
func Run[T any](r Rand[T], s State) (T, State) {
	return r(s)
}

// Eval executes r from s and discards the final state
func Eval[T any](r Rand[T], s State) T {
	v, _ := r(s)
	return v
}

// Exec executes r from s and returns only the final state
func Exec[T any](r Rand[T], s State) State {
	_, next := r(s)
	return next
}

// Seeded evaluates r from a fresh PCG state for seed
func Seeded[T any](seed uint64, r Rand[T]) T {
	return Eval(r, New(seed))
}
