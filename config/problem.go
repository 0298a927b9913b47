package config

import (
	"fmt"

	"github.com/lixenwraith/evocore/constraint"
	"github.com/lixenwraith/evocore/genetic"
	"github.com/lixenwraith/evocore/genetic/fitness"
	"github.com/lixenwraith/evocore/random"
)

// Genome is the real-valued genome every experiment file describes
type Genome = []float64

// Problem is the search space an experiment describes
type Problem struct {
	Variables   []string
	Bounds      []genetic.Bounds[float64]
	Constraints []constraint.Constraint[Genome]
	Metric      constraint.Metric[Genome]
	Objective   fitness.Objective
	Direction   genetic.Direction
}

// Problem builds bounds, constraints and the objective
func (e *Experiment) Problem() (*Problem, error) {
	dir, err := genetic.ParseDirection(e.Direction)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	obj, err := fitness.NewWeighted(e.Objective)
	if err != nil {
		return nil, fmt.Errorf("config: objective: %w", err)
	}

	p := &Problem{
		Variables: make([]string, len(e.Variables)),
		Bounds:    make([]genetic.Bounds[float64], len(e.Variables)),
		Objective: obj.Objective(),
		Direction: dir,
	}
	for i, v := range e.Variables {
		p.Variables[i] = v.Name
		p.Bounds[i] = genetic.Bounds[float64]{Min: v.Min, Max: v.Max}
	}

	for i, spec := range e.Constraints {
		if len(spec.Coefficients) != len(e.Variables) {
			return nil, fmt.Errorf("config: constraints[%d] has %d coefficients for %d variables",
				i, len(spec.Coefficients), len(e.Variables))
		}
		c, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("config: constraints[%d]: %w", i, err)
		}
		p.Constraints = append(p.Constraints, c)
	}

	switch e.Selection.Metric {
	case "degree":
		p.Metric = constraint.DegreeMetric[Genome](e.Violation.Exponent, e.Violation.BoundaryPenalty)
	default:
		p.Metric = constraint.CountMetric[Genome]()
	}
	return p, nil
}

func (c ConstraintSpec) build() (constraint.Constraint[Genome], error) {
	if (c.Kind == "between" || c.Kind == "between_strict") && !(c.Lo <= c.Hi) {
		return constraint.Constraint[Genome]{}, fmt.Errorf("lo %v > hi %v", c.Lo, c.Hi)
	}

	f := constraint.Linear[float64](c.Coefficients...)
	var out constraint.Constraint[Genome]
	switch c.Kind {
	case "lt":
		out = constraint.Less(f, c.Threshold)
	case "le":
		out = constraint.LessEq(f, c.Threshold)
	case "gt":
		out = constraint.Greater(f, c.Threshold)
	case "ge":
		out = constraint.GreaterEq(f, c.Threshold)
	case "eq":
		out = constraint.Eq(f, c.Threshold)
	case "between":
		out = constraint.Between(c.Lo, f, c.Hi)
	case "between_strict":
		out = constraint.BetweenStrict(c.Lo, f, c.Hi)
	default:
		return out, fmt.Errorf("unknown kind %q", c.Kind)
	}
	if c.Name != "" {
		out = out.Named(c.Name)
	}
	return out, nil
}

// EngineConfig translates the engine section
func (e *Experiment) EngineConfig() (genetic.EngineConfig, error) {
	alg, err := random.ParseAlgorithm(e.Algorithm)
	if err != nil {
		return genetic.EngineConfig{}, fmt.Errorf("config: %w", err)
	}
	dir, err := genetic.ParseDirection(e.Direction)
	if err != nil {
		return genetic.EngineConfig{}, fmt.Errorf("config: %w", err)
	}
	return genetic.EngineConfig{
		PoolSize:             e.Engine.PoolSize,
		EliteCount:           e.Engine.EliteCount,
		PerturbationRate:     e.Engine.PerturbationRate,
		PerturbationStrength: e.Engine.PerturbationStrength,
		MaxIterations:        e.Engine.MaxIterations,
		Seed:                 e.Seed,
		Algorithm:            alg,
		Direction:            dir,
	}, nil
}

// NewEngine wires a constrained engine for the experiment. Selection and
// elitism rank by the configured violation metric before the objective.
func (e *Experiment) NewEngine() (*genetic.Engine[Genome, float64], *Problem, error) {
	p, err := e.Problem()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := e.EngineConfig()
	if err != nil {
		return nil, nil, err
	}

	var base genetic.Selector[Genome, float64]
	switch e.Selection.Method {
	case "elitist":
		base = genetic.ElitistSelector[Genome, float64]{}
	default:
		base = &genetic.TournamentSelector[Genome, float64]{
			TournamentSize:  e.Selection.TournamentSize,
			WithReplacement: e.Selection.WithReplacement,
		}
	}

	var combiner genetic.Combiner[Genome, float64]
	switch e.Crossover.Method {
	case "npoint":
		combiner = &genetic.NPointCombiner[Genome, float64, float64]{Points: e.Crossover.Points}
	default:
		combiner = &genetic.UniformCombiner[Genome, float64, float64]{MixProbability: e.Crossover.MixProbability}
	}

	initializer := &genetic.Initializer[float64]{
		Constraints: p.Constraints,
		Bounds:      p.Bounds,
		MaxAttempts: e.Engine.MaxAttempts,
	}

	eng := genetic.NewEngine(
		genetic.EvaluatorFunc[Genome, float64](p.Objective),
		initializer.Func(),
		genetic.WithConstraints(p.Constraints, p.Metric, p.Direction, base),
		combiner,
		genetic.Perturbator[Genome](&genetic.BoundedPerturbator[float64]{
			Bounds:            p.Bounds,
			StandardDeviation: e.Engine.PerturbationStdDev,
		}),
		cfg,
	)
	eng.SetConstraints(p.Constraints, p.Metric)
	return eng, p, nil
}
