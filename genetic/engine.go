package genetic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/lixenwraith/evocore/constraint"
	"github.com/lixenwraith/evocore/parameter"
	"github.com/lixenwraith/evocore/random"
	"github.com/lixenwraith/evocore/sampling"
)

// ErrEmptyPool is returned when selection yields no parents to recombine
var ErrEmptyPool = errors.New("genetic: selection returned no parents")

// --- Algorithm Engine ---

// Engine runs a sequential generational loop. It owns its generator state
// and is not safe for concurrent use.
type Engine[G any, F random.Numeric] struct {
	// Core operators
	evaluator   EvaluatorFunc[G, F]
	initializer InitializerFunc[G]
	selection   SelectionOp[G, F]
	combiner    Combiner[G, F]
	perturbator Perturbator[G]
	terminator  TerminationFunc[G, F]
	ranking     Compare[G, F]
	constraints []constraint.Constraint[G]

	config   EngineConfig
	logger   *slog.Logger
	observer Observer[F]
	runID    string
	seed     uint64

	// State
	rng         random.State
	currentPool *Pool[G, F]
	history     []PoolStats[F]
}

// EngineConfig holds configuration parameters for the algorithm
type EngineConfig struct {
	// PoolSize is the number of candidates maintained in each generation
	PoolSize int
	// EliteCount is the number of best candidates carried over unchanged
	EliteCount int
	// PerturbationRate is the probability an offspring is perturbed at all (0-1)
	PerturbationRate float64
	// PerturbationStrength is the per-gene rate passed to the Perturbator (0-1)
	PerturbationStrength float64
	// MaxIterations is the maximum number of generations to run
	MaxIterations int
	// Seed for the generator; 0 draws one from entropy
	Seed      uint64
	Algorithm random.Algorithm
	Direction Direction
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		PoolSize:             parameter.GAPoolSize,
		EliteCount:           parameter.GAEliteCount,
		PerturbationRate:     parameter.GAPerturbationRate,
		PerturbationStrength: parameter.GAPerturbationStrength,
		MaxIterations:        parameter.GAMaxIterations,
		Seed:                 0,
		Algorithm:            random.PCG,
		Direction:            Minimizing,
	}
}

// Observer receives pool summaries as a run progresses
type Observer[F random.Numeric] interface {
	Initialized(runID string, report Report, stats PoolStats[F])
	Generation(runID string, generation int, stats PoolStats[F])
}

// NewEngine creates an engine with the specified operators. Elitism and
// statistics rank by objective in config.Direction until SetConstraints is called.
func NewEngine[G any, F random.Numeric](
	evaluator EvaluatorFunc[G, F],
	initializer InitializerFunc[G],
	selection SelectionOp[G, F],
	combiner Combiner[G, F],
	perturbator Perturbator[G],
	config EngineConfig,
) *Engine[G, F] {
	var rng random.State
	seed := config.Seed
	if seed == 0 {
		rng, seed = random.FromEntropy(config.Algorithm)
	} else {
		rng = random.NewWith(config.Algorithm, seed)
	}

	return &Engine[G, F]{
		evaluator:   evaluator,
		initializer: initializer,
		selection:   selection,
		combiner:    combiner,
		perturbator: perturbator,
		ranking:     ObjectiveCompare[G, F](config.Direction),
		config:      config,
		logger:      slog.Default(),
		runID:       uuid.NewString(),
		seed:        seed,
		rng:         rng,
		history:     make([]PoolStats[F], 0, max(config.MaxIterations, 0)),
	}
}

// SetTerminator sets a custom termination condition
func (e *Engine[G, F]) SetTerminator(terminator TerminationFunc[G, F]) {
	e.terminator = terminator
}

// SetConstraints makes elitism and statistics rank by metric before objective
// and enables feasibility counts. Selection is configured separately through
// the SelectionOp, normally built with WithConstraints.
func (e *Engine[G, F]) SetConstraints(cs []constraint.Constraint[G], metric constraint.Metric[G]) {
	e.constraints = cs
	e.ranking = ConstrainedCompare[G, F](cs, metric, e.config.Direction)
}

// SetLogger replaces the logger; nil restores slog.Default
func (e *Engine[G, F]) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	e.logger = logger
}

// SetObserver registers a receiver for pool summaries
func (e *Engine[G, F]) SetObserver(observer Observer[F]) {
	e.observer = observer
}

// RunID identifies this engine in logs and metrics
func (e *Engine[G, F]) RunID() string {
	return e.runID
}

// Seed returns the seed in use, including one drawn from entropy
func (e *Engine[G, F]) Seed() uint64 {
	return e.seed
}

// State returns the current generator state
func (e *Engine[G, F]) State() random.State {
	return e.rng
}

// Pool returns the current pool, nil before initialization
func (e *Engine[G, F]) Pool() *Pool[G, F] {
	return e.currentPool
}

// Run initializes the pool and evolves it until MaxIterations, the terminator
// or ctx stops it. Cancellation is checked between generations.
func (e *Engine[G, F]) Run(ctx context.Context) (*Pool[G, F], error) {
	e.logger.Info("run started",
		"run_id", e.runID,
		"seed", e.seed,
		"algorithm", e.config.Algorithm.String(),
		"pool_size", e.config.PoolSize,
		"max_iterations", e.config.MaxIterations)

	if err := e.Initialize(); err != nil {
		return nil, err
	}

	for iteration := 0; iteration < e.config.MaxIterations; iteration++ {
		select {
		case <-ctx.Done():
			e.logger.Warn("run cancelled", "run_id", e.runID, "generation", e.currentPool.Generation)
			return e.currentPool, ctx.Err()
		default:
		}

		if e.terminator != nil && e.terminator(e.currentPool, iteration) {
			break
		}

		if err := e.Step(); err != nil {
			return e.currentPool, err
		}
	}

	stats := e.currentPool.Stats
	e.logger.Info("run finished",
		"run_id", e.runID,
		"generations", e.currentPool.Generation,
		"best", stats.BestObjective,
		"feasible", stats.Feasible)
	return e.currentPool, nil
}

// Initialize draws and evaluates the initial pool, replacing any current one
func (e *Engine[G, F]) Initialize() error {
	if e.config.PoolSize < 1 {
		return fmt.Errorf("genetic: pool size %d must be positive", e.config.PoolSize)
	}

	genomes, rng, report, err := e.initializer(e.config.PoolSize, e.rng)
	if err != nil {
		return fmt.Errorf("initialize pool: %w", err)
	}
	e.rng = rng

	members := make([]Candidate[G, F], len(genomes))
	for i, g := range genomes {
		members[i] = Candidate[G, F]{Genome: g, Objective: e.evaluator(g)}
	}

	e.currentPool = &Pool[G, F]{
		Members:    members,
		Generation: 0,
		Stats:      e.calculateStats(members),
	}
	e.history = append(e.history[:0], e.currentPool.Stats)

	e.logger.Debug("pool initialized",
		"run_id", e.runID,
		"accepted", report.Accepted,
		"rejected", report.Rejected())
	if e.observer != nil {
		e.observer.Initialized(e.runID, report, e.currentPool.Stats)
	}
	return nil
}

// Step evolves one generation, initializing the pool first if needed
func (e *Engine[G, F]) Step() error {
	if e.currentPool == nil {
		if err := e.Initialize(); err != nil {
			return err
		}
	}
	if err := e.evolveGeneration(); err != nil {
		return err
	}
	e.history = append(e.history, e.currentPool.Stats)

	stats := e.currentPool.Stats
	e.logger.Debug("generation",
		"run_id", e.runID,
		"generation", e.currentPool.Generation,
		"best", stats.BestObjective,
		"mean", stats.MeanObjective,
		"feasible", stats.Feasible)
	if e.observer != nil {
		e.observer.Generation(e.runID, e.currentPool.Generation, stats)
	}
	return nil
}

// evolveGeneration creates the next generation of candidates
func (e *Engine[G, F]) evolveGeneration() error {
	nextGen := make([]Candidate[G, F], 0, e.config.PoolSize)
	nextGen = append(nextGen, e.selectElite()...)

	perturb := sampling.WithProbability(e.config.PerturbationRate, func(g G) random.Rand[G] {
		return e.perturbator.Perturb(g, e.config.PerturbationStrength)
	})

	var (
		parents   []Candidate[G, F]
		offspring []G
	)
	for len(nextGen) < e.config.PoolSize {
		parents, e.rng = e.selection(e.currentPool.Members, 2)(e.rng)
		if len(parents) == 0 {
			return ErrEmptyPool
		}

		offspring, e.rng = e.combiner.Combine(parents)(e.rng)
		if len(offspring) == 0 {
			return ErrEmptyPool
		}

		for _, child := range offspring {
			child, e.rng = perturb(child)(e.rng)
			nextGen = append(nextGen, Candidate[G, F]{Genome: child, Objective: e.evaluator(child)})
			if len(nextGen) >= e.config.PoolSize {
				break
			}
		}
	}

	members := nextGen[:e.config.PoolSize]
	e.currentPool = &Pool[G, F]{
		Members:    members,
		Generation: e.currentPool.Generation + 1,
		Stats:      e.calculateStats(members),
	}
	return nil
}

// selectElite returns the best ranked candidates for preservation
func (e *Engine[G, F]) selectElite() []Candidate[G, F] {
	if e.config.EliteCount <= 0 {
		return nil
	}
	ranked := slices.Clone(e.currentPool.Members)
	slices.SortStableFunc(ranked, e.ranking)
	return ranked[:min(e.config.EliteCount, len(ranked), e.config.PoolSize)]
}

// calculateStats computes statistical measures for a candidate pool
func (e *Engine[G, F]) calculateStats(candidates []Candidate[G, F]) PoolStats[F] {
	if len(candidates) == 0 {
		return PoolStats[F]{}
	}

	best, worst := candidates[0], candidates[0]
	total := 0.0
	feasible := 0
	for _, c := range candidates {
		if e.ranking(c, best) < 0 {
			best = c
		}
		if e.ranking(c, worst) > 0 {
			worst = c
		}
		total += float64(c.Objective)
		if constraint.IsFeasible(e.constraints, c.Genome) {
			feasible++
		}
	}

	return PoolStats[F]{
		Size:           len(candidates),
		BestObjective:  best.Objective,
		WorstObjective: worst.Objective,
		MeanObjective:  total / float64(len(candidates)),
		Feasible:       feasible,
	}
}

// GetHistory returns pool statistics from initialization onward
func (e *Engine[G, F]) GetHistory() []PoolStats[F] {
	return e.history
}

// GetBest returns the best ranked candidate of the current pool
func (e *Engine[G, F]) GetBest() (Candidate[G, F], error) {
	if e.currentPool == nil || len(e.currentPool.Members) == 0 {
		return Candidate[G, F]{}, errors.New("no candidates available")
	}

	best := e.currentPool.Members[0]
	for _, c := range e.currentPool.Members[1:] {
		if e.ranking(c, best) < 0 {
			best = c
		}
	}
	return best, nil
}
