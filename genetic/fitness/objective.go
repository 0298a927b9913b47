// Package fitness provides benchmark objectives over real-valued genomes and
// weighted composition of named objectives.
package fitness

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrUnknownObjective is returned by Lookup for unregistered names
var ErrUnknownObjective = errors.New("fitness: unknown objective")

// Objective scores a real-valued genome; benchmarks here are minimized
type Objective func(x []float64) float64

// Sphere is the sum of squares, minimum 0 at the origin
func Sphere(x []float64) float64 {
	total := 0.0
	for _, v := range x {
		total += v * v
	}
	return total
}

// Rastrigin is 10n + sum(x^2 - 10cos(2πx)), minimum 0 at the origin
func Rastrigin(x []float64) float64 {
	total := 10 * float64(len(x))
	for _, v := range x {
		total += v*v - 10*math.Cos(2*math.Pi*v)
	}
	return total
}

// Rosenbrock is the banana valley, minimum 0 at (1, ..., 1)
func Rosenbrock(x []float64) float64 {
	total := 0.0
	for i := 0; i+1 < len(x); i++ {
		a := x[i+1] - x[i]*x[i]
		b := 1 - x[i]
		total += 100*a*a + b*b
	}
	return total
}

// Ackley has minimum 0 at the origin; 0 for an empty genome
func Ackley(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	n := float64(len(x))
	sq, cs := 0.0, 0.0
	for _, v := range x {
		sq += v * v
		cs += math.Cos(2 * math.Pi * v)
	}
	return -20*math.Exp(-0.2*math.Sqrt(sq/n)) - math.Exp(cs/n) + 20 + math.E
}

// Sum adds the coordinates
func Sum(x []float64) float64 {
	total := 0.0
	for _, v := range x {
		total += v
	}
	return total
}

// Linear returns the dot product with the first len(x) coefficients, so it
// can express sum(x) or a single coordinate as an objective term
func Linear(coeffs ...float64) Objective {
	coeffs = slices.Clone(coeffs)
	return func(x []float64) float64 {
		total := 0.0
		for i, v := range x {
			if i < len(coeffs) {
				total += coeffs[i] * v
			}
		}
		return total
	}
}

var registry = map[string]Objective{
	"sphere":     Sphere,
	"rastrigin":  Rastrigin,
	"rosenbrock": Rosenbrock,
	"ackley":     Ackley,
	"sum":        Sum,
}

// Lookup returns the registered objective for name
func Lookup(name string) (Objective, error) {
	obj, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObjective, name)
	}
	return obj, nil
}

// Names lists registered objectives in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
