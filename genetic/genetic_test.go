package genetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/evocore/constraint"
	"github.com/lixenwraith/evocore/random"
)

type (
	vec  = []float64
	cand = Candidate[vec, float64]
)

var (
	head  = constraint.Head[float64]()
	count = constraint.CountMetric[vec]()
)

func tournament(size int, withReplacement bool) Selector[vec, float64] {
	return &TournamentSelector[vec, float64]{TournamentSize: size, WithReplacement: withReplacement}
}

func TestWithConstraints_FewerViolationsWin(t *testing.T) {
	cs := []constraint.Constraint[vec]{constraint.GreaterEq(head, 0), constraint.GreaterEq(head, -1)}
	twoViolations := cand{Genome: vec{-2}, Objective: 0}
	oneViolation := cand{Genome: vec{-1}, Objective: 100}
	pool := []cand{twoViolations, oneViolation}

	op := WithConstraints(cs, count, Minimizing, tournament(2, false))
	for seed := uint64(1); seed <= 200; seed++ {
		got := random.Seeded(seed, op(pool, 1))
		require.Len(t, got, 1)
		require.Equal(t, oneViolation, got[0], "seed %d", seed)
	}
}

func TestWithConstraints_FeasibleBeatsInfeasible(t *testing.T) {
	cs := []constraint.Constraint[vec]{constraint.Between(0, head, 1)}
	infeasible := cand{Genome: vec{3}, Objective: -1000}
	feasible := cand{Genome: vec{0.5}, Objective: 1000}

	for _, metric := range []constraint.Metric[vec]{count, constraint.DegreeMetric[vec](2, 0.5)} {
		for _, dir := range []Direction{Minimizing, Maximizing} {
			op := WithConstraints(cs, metric, dir, tournament(2, false))
			for seed := uint64(1); seed <= 50; seed++ {
				got := random.Seeded(seed, op([]cand{infeasible, feasible}, 1))
				require.Equal(t, feasible, got[0])
			}
		}
	}
}

func TestWithConstraints_DegreePrefersBoundaryTouch(t *testing.T) {
	cs := []constraint.Constraint[vec]{constraint.Less(head, 3)}
	touching := cand{Genome: vec{3}, Objective: 10}
	past := cand{Genome: vec{3.1}, Objective: 0}

	op := WithConstraints(cs, constraint.DegreeMetric[vec](2, 0.5), Minimizing, tournament(2, false))
	for seed := uint64(1); seed <= 50; seed++ {
		got := random.Seeded(seed, op([]cand{past, touching}, 1))
		require.Equal(t, touching, got[0], "seed %d", seed)
	}
}

func TestWithConstraints_TiesFallBackToObjective(t *testing.T) {
	cs := []constraint.Constraint[vec]{constraint.GreaterEq(head, 0)}
	low := cand{Genome: vec{1}, Objective: 1}
	high := cand{Genome: vec{2}, Objective: 2}
	pool := []cand{low, high}

	minimize := WithConstraints(cs, count, Minimizing, tournament(2, false))
	maximize := WithConstraints(cs, count, Maximizing, tournament(2, false))

	assert.Equal(t, low, random.Seeded(3, minimize(pool, 1))[0])
	assert.Equal(t, high, random.Seeded(3, maximize(pool, 1))[0])
}

func TestWithConstraints_PreservesCardinalityAndDraws(t *testing.T) {
	cs := []constraint.Constraint[vec]{constraint.Less(head, 0.5)}
	pool := make([]cand, 10)
	for i := range pool {
		pool[i] = cand{Genome: vec{float64(i) / 10}, Objective: float64(i)}
	}

	s := random.New(9)
	for _, base := range []Selector[vec, float64]{tournament(3, false), tournament(3, true), ElitistSelector[vec, float64]{}} {
		wrapped, s1 := WithConstraints(cs, count, Maximizing, base)(pool, 7)(s)
		plain, s2 := Unconstrained(Maximizing, base)(pool, 7)(s)

		assert.Len(t, wrapped, 7)
		assert.Len(t, plain, 7)
		assert.Equal(t, random.Eval(random.Uint64(), s2), random.Eval(random.Uint64(), s1))
	}
}

func TestTournamentSelector_FullPoolPicksBest(t *testing.T) {
	pool := []cand{{Genome: vec{0}, Objective: 5}, {Genome: vec{1}, Objective: 2}, {Genome: vec{2}, Objective: 9}}
	op := Unconstrained(Minimizing, tournament(3, false))

	got := random.Seeded(4, op(pool, 5))
	require.Len(t, got, 5)
	for _, c := range got {
		assert.Equal(t, 2.0, c.Objective)
	}
}

func TestTournamentSelector_EmptyInputs(t *testing.T) {
	op := Unconstrained(Minimizing, tournament(3, false))
	s := random.New(1)

	got, next := op(nil, 3)(s)
	assert.Empty(t, got)
	assert.Equal(t, s, next)

	got, _ = op([]cand{{Genome: vec{1}}}, 0)(s)
	assert.Empty(t, got)
}

func TestTournamentSelector_SinglePoolMember(t *testing.T) {
	only := cand{Genome: vec{1}, Objective: 1}
	for _, withReplacement := range []bool{false, true} {
		got := random.Seeded(2, Unconstrained(Minimizing, tournament(0, withReplacement))([]cand{only}, 3))
		assert.Equal(t, []cand{only, only, only}, got)
	}
}

func TestElitistSelector_StableBestK(t *testing.T) {
	pool := []cand{
		{Genome: vec{0}, Objective: 3},
		{Genome: vec{1}, Objective: 1},
		{Genome: vec{2}, Objective: 1},
		{Genome: vec{3}, Objective: 2},
	}
	s := random.New(5)

	got, next := Unconstrained(Minimizing, Selector[vec, float64](ElitistSelector[vec, float64]{}))(pool, 3)(s)
	assert.Equal(t, []cand{pool[1], pool[2], pool[3]}, got)
	assert.Equal(t, s, next)
	assert.Equal(t, 3.0, pool[0].Objective, "input pool reordered")

	got = random.Eval(Unconstrained(Minimizing, Selector[vec, float64](ElitistSelector[vec, float64]{}))(pool, 10), s)
	assert.Len(t, got, 4)
}

func TestDeathPenalty(t *testing.T) {
	cs := []constraint.Constraint[vec]{constraint.GreaterEq(head, 0)}
	pool := []cand{{Genome: vec{-1}}, {Genome: vec{2}}, {Genome: vec{-3}}, {Genome: vec{0}}}

	assert.Equal(t, []cand{pool[1], pool[3]}, DeathPenalty(cs, pool))
	assert.Empty(t, DeathPenalty(cs, pool[:1]))
}

func TestObjectiveCompare(t *testing.T) {
	a := cand{Objective: 1}
	b := cand{Objective: 2}

	assert.Negative(t, ObjectiveCompare[vec, float64](Minimizing)(a, b))
	assert.Positive(t, ObjectiveCompare[vec, float64](Maximizing)(a, b))
	assert.Zero(t, ObjectiveCompare[vec, float64](Maximizing)(a, a))
}

func TestParseDirection(t *testing.T) {
	for name, want := range map[string]Direction{"": Minimizing, "minimize": Minimizing, "max": Maximizing, "maximize": Maximizing} {
		got, err := ParseDirection(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseDirection("sideways")
	assert.Error(t, err)
	assert.Equal(t, "maximize", Maximizing.String())
}
