package milp

import (
	"context"
	"math"

	"gonum.org/v1/gonum/optimize/convex/lp"
)

// bnbDecision records why the branch-and-bound procedure treated a node the
// way it did. Kept as a string enum so a TreeLogger can render it directly.
type bnbDecision string

const (
	decisionSubproblemDegenerate bnbDecision = "subproblem has a singular/degenerate relaxation"
	decisionSubproblemInfeasible bnbDecision = "subproblem relaxation is infeasible"
	decisionWorseThanIncumbent   bnbDecision = "worse than incumbent, pruned"
	decisionBranching            bnbDecision = "fractional and better than incumbent, branching"
	decisionNewIncumbent         bnbDecision = "integer-feasible and better than incumbent"
	decisionRootInfeasible       bnbDecision = "initial relaxation is infeasible"
)

const integralityTolerance = 1e-6

// feasibleForIP reports whether every integrality-constrained entry of x is
// within tolerance of an integer.
func feasibleForIP(integralityConstraints []bool, x []float64) bool {
	for i, constrained := range integralityConstraints {
		if !constrained {
			continue
		}
		_, frac := math.Modf(x[i])
		if frac < 0 {
			frac += 1
		}
		if frac > integralityTolerance && frac < 1-integralityTolerance {
			return false
		}
	}
	return true
}

// enumerationTree drives the branch-and-bound search: a stack of pending
// subproblems (last-in-first-out, which keeps memory proportional to tree
// depth rather than tree breadth). startSearch keeps the best
// integer-feasible solution found so far.
type enumerationTree struct {
	pending         []subProblem
	instrumentation BnbMiddleware
	nextID          int64
}

func newEnumerationTree(root subProblem, instrumentation BnbMiddleware) *enumerationTree {
	if instrumentation == nil {
		instrumentation = dummyMiddleware{}
	}
	t := &enumerationTree{
		instrumentation: instrumentation,
		nextID:          1,
	}
	instrumentation.NewSubProblem(root)
	t.pending = append(t.pending, root)
	return t
}

// startSearch explores the tree depth-first until it runs out of pending
// nodes or the context is cancelled. workers must be at least 1 but is not
// otherwise used: the search is single threaded and does not explore
// subtrees concurrently.
func (t *enumerationTree) startSearch(ctx context.Context, workers int) *solution {
	if workers <= 0 {
		panic("milp: workers must be >= 1")
	}

	var incumbent *solution

	for len(t.pending) > 0 {
		if err := ctx.Err(); err != nil {
			return incumbent
		}

		node := t.pending[len(t.pending)-1]
		t.pending = t.pending[:len(t.pending)-1]

		candidate := node.solve()

		if candidate.err != nil {
			decision := decisionSubproblemInfeasible
			if candidate.err == lp.ErrSingular {
				decision = decisionSubproblemDegenerate
			} else if node.id == 0 {
				decision = decisionRootInfeasible
			}
			t.instrumentation.ProcessDecision(candidate, decision)
			continue
		}

		if incumbent != nil && !betterObjective(candidate.z, incumbent.z) {
			t.instrumentation.ProcessDecision(candidate, decisionWorseThanIncumbent)
			continue
		}

		if feasibleForIP(node.integralityConstraints, candidate.x) {
			t.instrumentation.ProcessDecision(candidate, decisionNewIncumbent)
			incumbentCopy := candidate
			incumbent = &incumbentCopy
			continue
		}

		t.instrumentation.ProcessDecision(candidate, decisionBranching)

		left, right := candidate.branch()
		left.id = t.nextID
		t.nextID++
		right.id = t.nextID
		t.nextID++

		t.instrumentation.NewSubProblem(left)
		t.instrumentation.NewSubProblem(right)

		t.pending = append(t.pending, left, right)
	}

	return incumbent
}

// betterObjective compares a relaxation's objective value against the
// incumbent's. Because toSolveable negates the objective up front for
// maximization problems, lower is always better here regardless of the
// user-facing Maximize()/Minimize() choice.
func betterObjective(candidateZ, incumbentZ float64) bool {
	return candidateZ < incumbentZ-integralityTolerance
}
