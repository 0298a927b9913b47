package fitness

import "fmt"

// Term is one weighted component of a composite objective
type Term struct {
	Name      string
	Weight    float64
	Objective Objective
}

// Weighted scores a genome as the weighted sum of its terms
type Weighted struct {
	Terms []Term
}

// NewWeighted resolves each name through Lookup
func NewWeighted(weights map[string]float64) (*Weighted, error) {
	w := &Weighted{Terms: make([]Term, 0, len(weights))}
	for _, name := range Names() {
		weight, ok := weights[name]
		if !ok {
			continue
		}
		w.Terms = append(w.Terms, Term{Name: name, Weight: weight, Objective: registry[name]})
	}
	for name := range weights {
		if _, ok := registry[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownObjective, name)
		}
	}
	return w, nil
}

// Calculate returns sum(weight * objective(x)) over the terms
func (w *Weighted) Calculate(x []float64) float64 {
	var total float64
	for _, t := range w.Terms {
		total += t.Weight * t.Objective(x)
	}
	return total
}

// Objective exposes Calculate as an Objective
func (w *Weighted) Objective() Objective {
	return w.Calculate
}
