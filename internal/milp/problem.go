// Package milp is a small mixed-integer linear programming solver: build an
// abstract Problem out of Variables and linear Constraints, then Solve it
// with branch-and-bound over a simplex relaxation.
package milp

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Problem is the abstract (name-addressed) representation of a MILP. Build
// one with NewProblem, AddVariable, and AddConstraint, then call Solve.
type Problem struct {
	// minimizes by default.
	maximize bool

	variables   []*Variable
	constraints []*Constraint

	branchingHeuristic BranchHeuristic
	instrumentation    BnbMiddleware

	// number of workers available to the branch-and-bound search.
	workers int
}

// Variable is one decision variable of the MILP problem.
type Variable struct {
	name        string
	coefficient float64
	integer     bool
	upper       float64
	lower       float64
}

// expression is a coefficient attached to a variable, e.g. "3 * x1", used to
// build up the left-hand side of a Constraint.
type expression struct {
	coef     float64
	variable *Variable
}

// Constraint is a linear (in)equality: the sum of its expressions compared
// against a right-hand side.
type Constraint struct {
	expressions []expression
	rhs         float64
	inequality  bool
	problem     *Problem
}

// NewProblem returns an empty MILP problem that minimizes by default, with
// a single branch-and-bound worker.
func NewProblem() Problem {
	return Problem{workers: 1, branchingHeuristic: BranchMaxFun}
}

// AddVariable declares a new variable with no objective contribution, no
// integrality constraint, and bounds [0, +Inf).
func (p *Problem) AddVariable(name string) *Variable {
	v := &Variable{
		name:  name,
		upper: math.Inf(1),
		lower: 0,
	}
	p.variables = append(p.variables, v)
	return v
}

// SetCoeff sets the variable's coefficient in the objective function.
func (v *Variable) SetCoeff(coef float64) *Variable {
	v.coefficient = coef
	return v
}

// IsInteger marks the variable as integer-constrained.
func (v *Variable) IsInteger() *Variable {
	v.integer = true
	return v
}

// UpperBound sets the variable's inclusive upper bound.
func (v *Variable) UpperBound(bound float64) *Variable {
	v.upper = bound
	return v
}

// LowerBound sets the variable's inclusive lower bound.
func (v *Variable) LowerBound(bound float64) *Variable {
	v.lower = bound
	return v
}

// Binary marks the variable as an integer variable bounded to {0, 1} - the
// decision variables used throughout the scheduling core are all of this
// shape.
func (v *Variable) Binary() *Variable {
	return v.IsInteger().LowerBound(0).UpperBound(1)
}

// AddConstraint starts a new constraint attached to this problem.
func (p *Problem) AddConstraint() *Constraint {
	c := &Constraint{problem: p}
	p.constraints = append(p.constraints, c)
	return c
}

// EqualTo finalizes the constraint as an equality with the given right-hand
// side.
func (c *Constraint) EqualTo(val float64) *Constraint {
	c.inequality = false
	c.rhs = val
	return c
}

// SmallerThanOrEqualTo finalizes the constraint as a <= inequality with the
// given right-hand side.
func (c *Constraint) SmallerThanOrEqualTo(val float64) *Constraint {
	c.inequality = true
	c.rhs = val
	return c
}

// AddExpression appends coef*v to the left-hand side of the constraint. v
// must already have been added to the same Problem.
func (c *Constraint) AddExpression(coef float64, v *Variable) *Constraint {
	c.problem.getVariableIndex(v) // panics if v is foreign to this problem
	c.expressions = append(c.expressions, expression{coef: coef, variable: v})
	return c
}

// Maximize sets the problem to maximize its objective (the default is to
// minimize).
func (p *Problem) Maximize() { p.maximize = true }

// Minimize sets the problem to minimize its objective.
func (p *Problem) Minimize() { p.maximize = false }

// SetBranchingHeuristic selects which integrality-constrained variable to
// branch on first at each split. The default is BranchMaxFun.
func (p *Problem) SetBranchingHeuristic(h BranchHeuristic) { p.branchingHeuristic = h }

// SetInstrumentation attaches a BnbMiddleware that observes the
// branch-and-bound search as it runs.
func (p *Problem) SetInstrumentation(m BnbMiddleware) { p.instrumentation = m }

// SetWorkers configures how many workers the branch-and-bound search may
// use. The reference search is single-threaded; this is accepted for API
// parity with a concurrent exploration strategy that this solver does not
// yet implement.
func (p *Problem) SetWorkers(n int) { p.workers = n }

func (p *Problem) getVariableIndex(v *Variable) int {
	for i, candidate := range p.variables {
		if candidate == v {
			return i
		}
	}
	panic("milp: variable does not belong to this problem")
}

// toSolveable converts the name-addressed Problem into the concrete
// numerical form the simplex solver expects: minimize c^T x subject to
// A x = b, G x <= h, x >= 0.
func (p *Problem) toSolveable() *milpProblem {
	c := make([]float64, len(p.variables))
	integrality := make([]bool, len(p.variables))
	for i, v := range p.variables {
		k := v.coefficient
		if p.maximize {
			// gonum's lp.Simplex only minimizes; negate to maximize.
			k = -k
		}
		c[i] = k
		integrality[i] = v.integer
	}

	var b, h []float64
	var Adata, Gdata []float64
	for _, constraint := range p.constraints {
		row := make([]float64, len(p.variables))
		for _, e := range constraint.expressions {
			row[p.getVariableIndex(e.variable)] = e.coef
		}

		if constraint.inequality {
			Gdata = append(Gdata, row...)
			h = append(h, constraint.rhs)
		} else {
			Adata = append(Adata, row...)
			b = append(b, constraint.rhs)
		}
	}

	var A *mat.Dense
	if len(b) > 0 {
		A = mat.NewDense(len(b), len(p.variables), Adata)
	}

	for i, v := range p.variables {
		if !math.IsInf(v.upper, 1) {
			row := make([]float64, len(p.variables))
			row[i] = 1
			Gdata = append(Gdata, row...)
			h = append(h, v.upper)
		}
		if v.lower > 0 {
			row := make([]float64, len(p.variables))
			row[i] = -1
			Gdata = append(Gdata, row...)
			h = append(h, -v.lower)
		}
	}

	var G *mat.Dense
	if len(h) > 0 {
		G = mat.NewDense(len(h), len(p.variables), Gdata)
	}

	return &milpProblem{
		c:                      c,
		A:                      A,
		b:                      b,
		G:                      G,
		h:                      h,
		integralityConstraints: integrality,
		branchingHeuristic:     p.branchingHeuristic,
	}
}

// Solve presolves, builds, and solves the MILP, returning the optimal
// variable assignment. It honors ctx for cancellation/timeout of the
// branch-and-bound search.
func (p *Problem) Solve(ctx context.Context) (*Solution, error) {
	prepper := newPreprocessor()
	filtered := prepper.preSolve(*p)

	milpProb := filtered.toSolveable()

	workers := filtered.workers
	if workers <= 0 {
		workers = 1
	}

	soln, err := milpProb.solve(ctx, workers, filtered.instrumentation)
	if err != nil {
		return nil, err
	}

	raw := make(rawSolution, len(filtered.variables))
	for i, v := range filtered.variables {
		raw[v.name] = soln.x[i]
	}

	return prepper.postSolve(*p, raw), nil
}

// Solution contains the values a solved Problem's variables took, keyed by
// the names they were given via AddVariable.
type Solution struct {
	// Objective is the objective function value under the original
	// (unnegated, user-facing) sense of the problem - i.e. what was
	// actually being maximized or minimized.
	Objective float64

	byName map[string]float64
}

// GetValueFor retrieves the solved value of the named variable.
func (s *Solution) GetValueFor(name string) (float64, error) {
	val, ok := s.byName[name]
	if !ok {
		return 0, fmt.Errorf("milp: variable %q not found in solution", name)
	}
	return val, nil
}
