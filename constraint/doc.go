// Package constraint represents constraints over candidate solutions and scores
// feasibility and violation.
//
// A constraint pairs a projection (genome to scalar) with a comparison:
//
//	cs := []constraint.Constraint[[]float64]{
//	    constraint.GreaterEq(constraint.Head[float64](), 0),
//	    constraint.Less(constraint.Neg(constraint.Head[float64]()), 1),
//	    constraint.Between(0, constraint.Sum[float64](), 10),
//	}
//	ok := constraint.IsFeasible(cs, genome)
//
// Constraint sets are plain slices; order never changes any result.
package constraint
