// Package config loads experiment descriptions from TOML files.
//
// An experiment names its decision variables, linear constraints over them,
// the objective terms and the engine tunables. Fields left at their zero
// value take the defaults in package parameter.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/evocore/genetic/fitness"
	"github.com/lixenwraith/evocore/parameter"
)

// ErrUnknownObjective is returned when an objective term names no registered objective
var ErrUnknownObjective = fitness.ErrUnknownObjective

var validate = validator.New(validator.WithRequiredStructEnabled())

// Experiment is the root of an experiment file
type Experiment struct {
	Name      string `toml:"name"`
	Seed      uint64 `toml:"seed"`
	Algorithm string `toml:"algorithm" validate:"oneof=pcg chacha8 mt19937 xoshiro256 splitmix64"`
	Direction string `toml:"direction" validate:"oneof=min minimize max maximize"`

	Engine    EngineSection    `toml:"engine"`
	Selection SelectionSection `toml:"selection"`
	Crossover CrossoverSection `toml:"crossover"`
	Violation ViolationSection `toml:"violation"`

	Variables   []Variable         `toml:"variables" validate:"required,min=1,dive"`
	Constraints []ConstraintSpec   `toml:"constraints" validate:"dive"`
	Objective   map[string]float64 `toml:"objective" validate:"required,min=1"`
}

// EngineSection mirrors genetic.EngineConfig
type EngineSection struct {
	PoolSize             int     `toml:"pool_size" validate:"gte=2"`
	EliteCount           int     `toml:"elite_count" validate:"gte=0,ltfield=PoolSize"`
	PerturbationRate     float64 `toml:"perturbation_rate" validate:"gte=0,lte=1"`
	PerturbationStrength float64 `toml:"perturbation_strength" validate:"gte=0,lte=1"`
	PerturbationStdDev   float64 `toml:"perturbation_stddev" validate:"gt=0"`
	MaxIterations        int     `toml:"max_iterations" validate:"gte=1"`
	// MaxAttempts caps rejection sampling of the initial pool; 0 is unbounded
	MaxAttempts int `toml:"max_attempts" validate:"gte=0"`
}

// SelectionSection picks the base selector and the violation metric
type SelectionSection struct {
	Method          string `toml:"method" validate:"oneof=tournament elitist"`
	TournamentSize  int    `toml:"tournament_size" validate:"gte=1"`
	WithReplacement bool   `toml:"with_replacement"`
	Metric          string `toml:"metric" validate:"oneof=count degree"`
}

// CrossoverSection picks the recombination operator
type CrossoverSection struct {
	Method         string  `toml:"method" validate:"oneof=uniform npoint"`
	Points         int     `toml:"points" validate:"gte=1"`
	MixProbability float64 `toml:"mix_probability" validate:"gte=0,lte=1"`
}

// ViolationSection weights the degree metric
type ViolationSection struct {
	Exponent        float64 `toml:"exponent" validate:"gt=0"`
	BoundaryPenalty float64 `toml:"boundary_penalty" validate:"gte=0"`
}

// Variable is one real-valued decision variable with inclusive bounds
type Variable struct {
	Name string  `toml:"name" validate:"required"`
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max" validate:"gtefield=Min"`
}

// ConstraintSpec is a linear constraint sum(coefficients[i] * x[i]) compared
// against threshold, or against [lo, hi] for the between kinds
type ConstraintSpec struct {
	Name         string    `toml:"name"`
	Kind         string    `toml:"kind" validate:"required,oneof=lt le gt ge eq between between_strict"`
	Coefficients []float64 `toml:"coefficients" validate:"required,min=1"`
	Threshold    float64   `toml:"threshold"`
	Lo           float64   `toml:"lo"`
	Hi           float64   `toml:"hi"`
}

// Load reads, defaults and validates an experiment file
func Load(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	exp, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return exp, nil
}

// Parse decodes an experiment from TOML. Unknown keys are rejected.
func Parse(data []byte) (*Experiment, error) {
	var exp Experiment
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&exp); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	exp.ApplyDefaults()
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return &exp, nil
}

// ApplyDefaults fills zero-valued tunables from package parameter
func (e *Experiment) ApplyDefaults() {
	setDefault(&e.Algorithm, parameter.DefaultAlgorithm)
	setDefault(&e.Direction, "minimize")

	setDefault(&e.Engine.PoolSize, parameter.GAPoolSize)
	setDefault(&e.Engine.EliteCount, parameter.GAEliteCount)
	setDefault(&e.Engine.PerturbationRate, parameter.GAPerturbationRate)
	setDefault(&e.Engine.PerturbationStrength, parameter.GAPerturbationStrength)
	setDefault(&e.Engine.PerturbationStdDev, parameter.GAPerturbationStdDev)
	setDefault(&e.Engine.MaxIterations, parameter.GAMaxIterations)
	setDefault(&e.Engine.MaxAttempts, parameter.InitMaxAttempts)

	setDefault(&e.Selection.Method, "tournament")
	setDefault(&e.Selection.TournamentSize, parameter.GATournamentSize)
	setDefault(&e.Selection.Metric, "count")

	setDefault(&e.Crossover.Method, "uniform")
	setDefault(&e.Crossover.Points, parameter.GACrossoverPoints)
	setDefault(&e.Crossover.MixProbability, parameter.GACrossoverMixProbability)

	setDefault(&e.Violation.Exponent, parameter.ViolationExponent)
	setDefault(&e.Violation.BoundaryPenalty, parameter.ViolationBoundaryPenalty)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// Validate checks struct tags and the cross-field rules tags cannot express
func (e *Experiment) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for i, c := range e.Constraints {
		if len(c.Coefficients) != len(e.Variables) {
			return fmt.Errorf("config: constraints[%d] has %d coefficients for %d variables",
				i, len(c.Coefficients), len(e.Variables))
		}
		if (c.Kind == "between" || c.Kind == "between_strict") && !(c.Lo <= c.Hi) {
			return fmt.Errorf("config: constraints[%d] has lo %v > hi %v", i, c.Lo, c.Hi)
		}
	}
	for name := range e.Objective {
		if _, err := fitness.Lookup(name); err != nil {
			return fmt.Errorf("config: objective: %w", err)
		}
	}
	return nil
}
