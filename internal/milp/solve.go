package milp

import (
	"context"
	"errors"

	"gonum.org/v1/gonum/mat"
)

// milpProblem is the concrete numerical form of a MILP:
//
//	minimize  c^T x
//	s.t.      A x = b
//	          G x <= h
//	          x integer where integralityConstraints[i] is true
type milpProblem struct {
	c []float64
	A *mat.Dense
	b []float64
	G *mat.Dense
	h []float64

	integralityConstraints []bool
	branchingHeuristic     BranchHeuristic
}

// ErrNoIntegerFeasibleSolution is returned when the branch-and-bound search
// exhausts the tree without finding any integer-feasible solution - whether
// because the root relaxation itself was infeasible or because no
// integer-feasible point exists below it.
var ErrNoIntegerFeasibleSolution = errors.New("milp: no integer-feasible solution found")

func (p milpProblem) toInitialSubproblem() subProblem {
	c, A, b := p.c, p.A, p.b
	integrality := p.integralityConstraints
	if p.G != nil {
		c, A, b = convertToEqualities(p.c, p.A, p.b, p.G, p.h)
		// convertToEqualities appends one slack column per inequality row;
		// pad the integrality vector to match so branching.go's length
		// check against len(c) doesn't panic on the first fractional node.
		padded := make([]bool, len(c))
		copy(padded, p.integralityConstraints)
		integrality = padded
	}

	return subProblem{
		id:                     0,
		c:                      c,
		A:                      A,
		b:                      b,
		integralityConstraints: integrality,
		branchHeuristic:        p.branchingHeuristic,
	}
}

// solve runs branch-and-bound to completion (or until ctx is done),
// returning the incumbent solution in terms of the problem's original
// variables (any slack variables introduced to eliminate inequalities are
// stripped back out).
func (p milpProblem) solve(ctx context.Context, workers int, instrumentation BnbMiddleware) (solution, error) {
	if len(p.integralityConstraints) != len(p.c) {
		panic("milp: integrality constraints vector length does not match number of variables")
	}

	root := p.toInitialSubproblem()
	tree := newEnumerationTree(root, instrumentation)
	incumbent := tree.startSearch(ctx, workers)

	if err := ctx.Err(); err != nil {
		if incumbent != nil {
			trimmed := *incumbent
			trimmed.x = trimmed.x[:len(p.c)]
			return trimmed, err
		}
		return solution{}, err
	}

	if incumbent == nil {
		return solution{}, ErrNoIntegerFeasibleSolution
	}

	result := *incumbent
	result.x = result.x[:len(p.c)]
	return result, nil
}
