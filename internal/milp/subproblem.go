package milp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// subProblem is one node of the branch-and-bound enumeration tree: the
// original LP relaxation plus whatever additional bounding inequalities
// branching has accumulated on the path from the root.
type subProblem struct {
	id     int64
	parent int64

	// inherited from the root problem and never modified in place.
	c []float64
	A *mat.Dense
	b []float64
	G *mat.Dense
	h []float64

	integralityConstraints []bool
	branchHeuristic        BranchHeuristic

	// additional inequality constraints accumulated by branching.
	bnbConstraints []bnbConstraint
}

// bnbConstraint is one branch-and-bound bounding inequality: gsharp^T x <= hsharp.
type bnbConstraint struct {
	branchedVariable int
	hsharp           float64
	gsharp           []float64
}

type solution struct {
	problem *subProblem
	x       []float64
	z       float64
	err     error
}

// combineInequalities merges the root problem's G/h with whatever
// branch-and-bound bounds this node has accumulated.
func (p subProblem) combineInequalities() (*mat.Dense, []float64) {
	if len(p.bnbConstraints) == 0 {
		if p.G != nil {
			return mat.DenseCopyOf(p.G), p.h
		}
		return nil, nil
	}

	h := append([]float64{}, p.h...)
	var bnbGdata []float64
	for _, constr := range p.bnbConstraints {
		bnbGdata = append(bnbGdata, constr.gsharp...)
		h = append(h, constr.hsharp)
	}
	bnbG := mat.NewDense(len(p.bnbConstraints), len(p.c), bnbGdata)

	if p.G == nil || p.G.IsZero() {
		return bnbG, h
	}

	origRows, _ := p.G.Dims()
	bnbRows, _ := bnbG.Dims()
	combined := mat.NewDense(origRows+bnbRows, len(p.c), nil)
	combined.Stack(p.G, bnbG)

	return combined, h
}

// convertToEqualities rewrites a problem with inequalities (G, h) into one
// with only equalities (A, b) by adding one nonnegative slack variable per
// inequality row.
func convertToEqualities(c []float64, A *mat.Dense, b []float64, G *mat.Dense, h []float64) (cNew []float64, aNew *mat.Dense, bNew []float64) {
	if G == nil {
		panic("convertToEqualities: G must not be nil")
	}
	if err := sanityCheckDimensions(c, A, b, G, h); err != nil {
		panic(err)
	}

	nVar := len(c)
	nCons := len(b)
	nIneq := len(h)
	nNewVar := nVar + nIneq
	nNewCons := nCons + nIneq

	cNew = make([]float64, nNewVar)
	copy(cNew, c)

	bNew = make([]float64, nNewCons)
	copy(bNew, b)
	copy(bNew[nCons:], h)

	aNew = mat.NewDense(nNewCons, nNewVar, nil)
	if A != nil {
		aNew.Slice(0, nCons, 0, nVar).(*mat.Dense).Copy(A)
	}
	aNew.Slice(nCons, nNewCons, 0, nVar).(*mat.Dense).Copy(G)

	slackBlock := aNew.Slice(nCons, nNewCons, nVar, nVar+nIneq).(*mat.Dense)
	for i := 0; i < nIneq; i++ {
		slackBlock.Set(i, i, 1)
	}

	return
}

// solve runs the simplex method on this node's LP relaxation (inequalities
// folded into slack-variable equalities first, if any are present).
func (p subProblem) solve() solution {
	G, h := p.combineInequalities()

	var z float64
	var x []float64
	var err error

	if G != nil {
		c, A, b := convertToEqualities(p.c, p.A, p.b, G, h)
		z, x, err = lp.Simplex(c, A, b, 0, nil)
		if err == nil && len(x) > len(p.c) {
			x = x[:len(p.c)]
		}
	} else {
		z, x, err = lp.Simplex(p.c, p.A, p.b, 0, nil)
	}

	return solution{problem: &p, x: x, z: z, err: err}
}

// branch splits a fractional solution into two child subproblems that each
// add a bound on the chosen branching variable, one rounding its relaxed
// value down and the other rounding it up.
func (s solution) branch() (p1, p2 subProblem) {
	// Only integer variables whose relaxed value is still fractional are
	// eligible: branching on an integral value would leave one child with
	// exactly the parent's relaxation.
	eligible := make([]bool, len(s.problem.integralityConstraints))
	for i, constrained := range s.problem.integralityConstraints {
		eligible[i] = constrained && !feasibleForIP([]bool{true}, s.x[i:i+1])
	}

	var branchOn int
	switch s.problem.branchHeuristic {
	case BranchMaxFun:
		branchOn = maxFunBranchPoint(s.problem.c, eligible)
	case BranchMostInfeasible:
		branchOn = mostInfeasibleBranchPoint(s.x, eligible)
	case BranchNaive:
		masked := *s.problem
		masked.integralityConstraints = eligible
		branchOn = solution{problem: &masked}.naiveBranchPoint()
	default:
		panic("unknown branching heuristic")
	}

	currentValue := s.x[branchOn]

	// x[branchOn] <= floor(currentValue)
	p1 = s.problem.getChild(branchOn, 1, math.Floor(currentValue))

	// x[branchOn] >= floor(currentValue)+1, restated as -x[branchOn] <= -(floor(currentValue)+1)
	p2 = s.problem.getChild(branchOn, -1, -(math.Floor(currentValue) + 1))

	return
}

// getChild produces a child subproblem inheriting everything from the
// parent, plus one extra bounding inequality: factor*x[branchOn] <= rhs.
func (p subProblem) getChild(branchOn int, factor float64, rhs float64) subProblem {
	child := p.copy()

	gsharp := make([]float64, len(p.c))
	gsharp[branchOn] = factor

	child.bnbConstraints = append(child.bnbConstraints, bnbConstraint{
		branchedVariable: branchOn,
		hsharp:           rhs,
		gsharp:           gsharp,
	})

	return child
}

// copy duplicates a subproblem's own bnbConstraints slice so that sibling
// branches never alias each other's bounds, while leaving the large,
// read-only c/A/b/G/h slices shared with the parent.
func (p *subProblem) copy() subProblem {
	dup := subProblem{
		id:                     p.id,
		parent:                 p.id,
		c:                      p.c,
		A:                      p.A,
		b:                      p.b,
		G:                      p.G,
		h:                      p.h,
		integralityConstraints: p.integralityConstraints,
		branchHeuristic:        p.branchHeuristic,
		bnbConstraints:         make([]bnbConstraint, len(p.bnbConstraints)),
	}
	copy(dup.bnbConstraints, p.bnbConstraints)
	return dup
}

func sanityCheckDimensions(c []float64, A *mat.Dense, b []float64, G *mat.Dense, h []float64) error {
	if G == nil && A == nil {
		return errors.New("milp: no constraint matrices provided")
	}

	if G != nil {
		if h == nil {
			return errors.New("milp: h vector is nil while G matrix is provided")
		}
		rG, cG := G.Dims()
		if rG != len(h) {
			return errors.New("milp: number of rows in G does not match length of h")
		}
		if cG != len(c) {
			return errors.New("milp: number of columns in G does not match number of variables")
		}
	} else if h != nil {
		return errors.New("milp: h vector provided without a G matrix")
	}

	if A != nil {
		rA, cA := A.Dims()
		if rA != len(b) {
			return errors.New("milp: number of rows in A does not match length of b")
		}
		if cA != len(c) {
			return errors.New("milp: number of columns in A does not match number of variables")
		}
	} else if b != nil {
		return errors.New("milp: b vector provided without an A matrix")
	}

	return nil
}
