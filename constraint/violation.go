package constraint

import (
	"math"
)

// IsFeasible reports whether g satisfies every constraint
func IsFeasible[G any](cs []Constraint[G], g G) bool {
	for _, c := range cs {
		if !c.Holds(g) {
			return false
		}
	}
	return true
}

// NumberOfViolations counts the constraints g violates
func NumberOfViolations[G any](cs []Constraint[G], g G) int {
	n := 0
	for _, c := range cs {
		if !c.Holds(g) {
			n++
		}
	}
	return n
}

// ViolationCounts applies NumberOfViolations to each genome
func ViolationCounts[G any](cs []Constraint[G], gs []G) []int {
	out := make([]int, len(gs))
	for i, g := range gs {
		out[i] = NumberOfViolations(cs, g)
	}
	return out
}

// Violated returns the constraints g violates, in order
func Violated[G any](cs []Constraint[G], g G) []Constraint[G] {
	var out []Constraint[G]
	for _, c := range cs {
		if !c.Holds(g) {
			out = append(out, c)
		}
	}
	return out
}

// DegreeOfViolation sums, over the constraints g violates, the distance to the
// admissible region raised to exponent, plus boundaryPenalty for every violated
// strict constraint. A strict bound touched exactly at its threshold scores
// boundaryPenalty alone. Satisfied constraints contribute 0; a NaN projection
// contributes +Inf.
func DegreeOfViolation[G any](exponent, boundaryPenalty float64, cs []Constraint[G], g G) float64 {
	total := 0.0
	for _, c := range cs {
		total += c.degree(c.project(g), exponent, boundaryPenalty)
	}
	return total
}

func (c Constraint[G]) degree(v, exponent, boundaryPenalty float64) float64 {
	if math.IsNaN(v) {
		return math.Inf(1)
	}
	if c.holdsAt(v) {
		return 0
	}
	d := c.distance(v)
	out := 0.0
	if d > 0 {
		out = math.Pow(d, exponent)
	}
	if c.kind.Strict() {
		out += boundaryPenalty
	}
	return out
}

// distance from v to the nearest value the constraint admits (ignoring strictness)
func (c Constraint[G]) distance(v float64) float64 {
	switch c.kind {
	case LessThan, LessEqual:
		return math.Max(0, v-c.lo)
	case GreaterThan, GreaterEqual:
		return math.Max(0, c.lo-v)
	case Equal:
		return math.Abs(v - c.lo)
	default:
		return math.Max(0, c.lo-v) + math.Max(0, v-c.hi)
	}
}

// Metric scores how badly a genome violates a constraint set; lower is better
type Metric[G any] func(cs []Constraint[G], g G) float64

// CountMetric scores by NumberOfViolations
func CountMetric[G any]() Metric[G] {
	return func(cs []Constraint[G], g G) float64 {
		return float64(NumberOfViolations(cs, g))
	}
}

// DegreeMetric scores by DegreeOfViolation with fixed weights
func DegreeMetric[G any](exponent, boundaryPenalty float64) Metric[G] {
	return func(cs []Constraint[G], g G) float64 {
		return DegreeOfViolation(exponent, boundaryPenalty, cs, g)
	}
}
