package constraint

import (
	"fmt"
)

// Kind tags the comparison a constraint performs
type Kind uint8

const (
	LessThan Kind = iota
	LessEqual
	GreaterThan
	GreaterEqual
	Equal
	// Within is the non-strict range lo <= f <= hi
	Within
	// WithinStrict is the strict range lo < f < hi
	WithinStrict
)

var kindSymbols = [...]string{
	LessThan:     "<",
	LessEqual:    "<=",
	GreaterThan:  ">",
	GreaterEqual: ">=",
	Equal:        "==",
	Within:       "<=..<=",
	WithinStrict: "<..<",
}

func (k Kind) String() string {
	if int(k) < len(kindSymbols) {
		return kindSymbols[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Strict reports whether the comparison rejects values equal to a bound
func (k Kind) Strict() bool {
	return k == LessThan || k == GreaterThan || k == WithinStrict
}

// DoubleBound reports whether the kind compares against two thresholds
func (k Kind) DoubleBound() bool {
	return k == Within || k == WithinStrict
}

// Projection maps a genome to the scalar a constraint compares
type Projection[G any] func(G) float64

// Constraint is an immutable predicate over genomes of type G.
// Single-bound kinds keep their threshold in lo.
type Constraint[G any] struct {
	kind    Kind
	project Projection[G]
	lo, hi  float64
	label   string
}

func single[G any](kind Kind, f Projection[G], threshold float64) Constraint[G] {
	if f == nil {
		panic("constraint: nil projection")
	}
	return Constraint[G]{kind: kind, project: f, lo: threshold, hi: threshold}
}

func double[G any](kind Kind, lo float64, f Projection[G], hi float64) Constraint[G] {
	if f == nil {
		panic("constraint: nil projection")
	}
	if !(lo <= hi) {
		panic(fmt.Sprintf("constraint: range with lo %v > hi %v", lo, hi))
	}
	return Constraint[G]{kind: kind, project: f, lo: lo, hi: hi}
}

// --- Constructors ---

// Less builds f(g) < t
func Less[G any](f Projection[G], t float64) Constraint[G] {
	return single(LessThan, f, t)
}

// LessEq builds f(g) <= t
func LessEq[G any](f Projection[G], t float64) Constraint[G] {
	return single(LessEqual, f, t)
}

// Greater builds f(g) > t
func Greater[G any](f Projection[G], t float64) Constraint[G] {
	return single(GreaterThan, f, t)
}

// GreaterEq builds f(g) >= t
func GreaterEq[G any](f Projection[G], t float64) Constraint[G] {
	return single(GreaterEqual, f, t)
}

// Eq builds f(g) == t
func Eq[G any](f Projection[G], t float64) Constraint[G] {
	return single(Equal, f, t)
}

// Between builds lo <= f(g) <= hi. Panics if lo > hi.
func Between[G any](lo float64, f Projection[G], hi float64) Constraint[G] {
	return double(Within, lo, f, hi)
}

// BetweenStrict builds lo < f(g) < hi. Panics if lo > hi.
func BetweenStrict[G any](lo float64, f Projection[G], hi float64) Constraint[G] {
	return double(WithinStrict, lo, f, hi)
}

// Named returns a copy of c carrying a label for diagnostics
func (c Constraint[G]) Named(label string) Constraint[G] {
	c.label = label
	return c
}

// Kind returns the comparison kind
func (c Constraint[G]) Kind() Kind {
	return c.kind
}

// Bounds returns the thresholds; single-bound kinds return the threshold twice
func (c Constraint[G]) Bounds() (lo, hi float64) {
	return c.lo, c.hi
}

// Label returns the diagnostic label, empty if unnamed
func (c Constraint[G]) Label() string {
	return c.label
}

// Value applies the projection
func (c Constraint[G]) Value(g G) float64 {
	return c.project(g)
}

// Holds evaluates the constraint for g
func (c Constraint[G]) Holds(g G) bool {
	return c.holdsAt(c.project(g))
}

func (c Constraint[G]) holdsAt(v float64) bool {
	switch c.kind {
	case LessThan:
		return v < c.lo
	case LessEqual:
		return v <= c.lo
	case GreaterThan:
		return v > c.lo
	case GreaterEqual:
		return v >= c.lo
	case Equal:
		return v == c.lo
	case Within:
		return c.lo <= v && v <= c.hi
	case WithinStrict:
		return c.lo < v && v < c.hi
	default:
		panic(fmt.Sprintf("constraint: unknown kind %d", uint8(c.kind)))
	}
}

func (c Constraint[G]) String() string {
	name := c.label
	if name == "" {
		name = "f"
	}
	switch c.kind {
	case Within:
		return fmt.Sprintf("%g <= %s <= %g", c.lo, name, c.hi)
	case WithinStrict:
		return fmt.Sprintf("%g < %s < %g", c.lo, name, c.hi)
	default:
		return fmt.Sprintf("%s %s %g", name, c.kind, c.lo)
	}
}
