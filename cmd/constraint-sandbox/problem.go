package main

import (
	"io"
	"log/slog"

	"github.com/lixenwraith/evocore/constraint"
	"github.com/lixenwraith/evocore/genetic"
	"github.com/lixenwraith/evocore/genetic/fitness"
	"github.com/lixenwraith/evocore/parameter"
)

type genome = []float64

const extent = 5.0

var (
	plane = []genetic.Bounds[float64]{{Min: -extent, Max: extent}, {Min: -extent, Max: extent}}

	region = []constraint.Constraint[genome]{
		constraint.LessEq(constraint.Projection[genome](fitness.Sphere), 16).Named("x²+y²"),
		constraint.GreaterEq(constraint.Linear[float64](1, 1), -2).Named("x+y"),
		constraint.Less(constraint.At[float64](1), 3).Named("y"),
	}

	// target lies outside the feasible region so the pool has to settle on its boundary
	target = genome{4, 4}
)

func distanceToTarget(g genome) float64 {
	dx, dy := g[0]-target[0], g[1]-target[1]
	return dx*dx + dy*dy
}

type metricMode int

const (
	countMode metricMode = iota
	degreeMode
)

func (m metricMode) String() string {
	if m == degreeMode {
		return "degree"
	}
	return "count"
}

func (m metricMode) metric() constraint.Metric[genome] {
	if m == degreeMode {
		return constraint.DegreeMetric[genome](parameter.ViolationExponent, parameter.ViolationBoundaryPenalty)
	}
	return constraint.CountMetric[genome]()
}

// newEngine seeds an unconstrained starting pool so infeasible candidates are
// visible, then lets constraint-aware selection pull it into the region
func newEngine(seed uint64, mode metricMode, poolSize int) *genetic.Engine[genome, float64] {
	cfg := genetic.DefaultConfig()
	cfg.Seed = seed
	cfg.PoolSize = poolSize
	cfg.EliteCount = 2
	cfg.PerturbationRate = 0.6
	cfg.PerturbationStrength = 0.5

	metric := mode.metric()
	eng := genetic.NewEngine[genome, float64](
		distanceToTarget,
		genetic.FromRand(genetic.UniformGenome(plane)),
		genetic.WithConstraints[genome, float64](region, metric, genetic.Minimizing,
			&genetic.TournamentSelector[genome, float64]{TournamentSize: parameter.GATournamentSize}),
		&genetic.UniformCombiner[genome, float64, float64]{MixProbability: parameter.GACrossoverMixProbability},
		&genetic.BoundedPerturbator[float64]{Bounds: plane, StandardDeviation: parameter.GAPerturbationStdDev},
		cfg,
	)
	eng.SetConstraints(region, metric)
	eng.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return eng
}

// viewport maps between screen cells and problem coordinates
type viewport struct {
	left, top, width, height int
}

func (v viewport) toPlane(cx, cy int) (x, y float64) {
	x = -extent + (float64(cx-v.left)+0.5)*2*extent/float64(v.width)
	y = extent - (float64(cy-v.top)+0.5)*2*extent/float64(v.height)
	return x, y
}

func (v viewport) toCell(x, y float64) (cx, cy int, ok bool) {
	cx = v.left + int((x+extent)/(2*extent)*float64(v.width))
	cy = v.top + int((extent-y)/(2*extent)*float64(v.height))
	cx = min(cx, v.left+v.width-1)
	cy = min(cy, v.top+v.height-1)
	ok = cx >= v.left && cy >= v.top
	return cx, cy, ok
}
