package milp

// rawSolution maps variable names to their solved values. It only contains
// variables that survived presolving; preProcessor.postSolve fills in the
// ones that were removed.
type rawSolution map[string]float64

// preProcessor accumulates the undo steps needed to map a solution of the
// presolved problem back onto the original problem's variables.
type preProcessor struct {
	fixed map[string]float64
}

func newPreprocessor() *preProcessor {
	return &preProcessor{fixed: make(map[string]float64)}
}

// isFixed reports whether a variable's bounds pin it to a single value.
func isFixed(v *Variable) bool {
	return v.lower == v.upper
}

// preSolve returns a copy of p with every fixed variable (lower == upper
// bound) removed from the variable list and folded out of every
// constraint's left-hand side by moving its contribution to the right-hand
// side. This shrinks the branch-and-bound search space: a fixed variable
// can never be fractional, so branching on it would be wasted work.
func (prepper *preProcessor) preSolve(p Problem) Problem {
	var kept []*Variable
	for _, v := range p.variables {
		if isFixed(v) {
			prepper.fixed[v.name] = v.lower
		} else {
			kept = append(kept, v)
		}
	}

	var constraints []*Constraint
	for _, c := range p.constraints {
		rhs := c.rhs
		var keptExprs []expression
		for _, e := range c.expressions {
			if isFixed(e.variable) {
				rhs -= e.coef * e.variable.lower
			} else {
				keptExprs = append(keptExprs, e)
			}
		}
		constraints = append(constraints, &Constraint{
			expressions: keptExprs,
			rhs:         rhs,
			inequality:  c.inequality,
			problem:     &p,
		})
	}

	p.variables = kept
	p.constraints = constraints
	return p
}

// postSolve reintroduces the variables preSolve removed and computes the
// final objective value under the original problem's user-facing
// coefficients (i.e. undoing the internal minimize-only negation).
func (prepper *preProcessor) postSolve(original Problem, raw rawSolution) *Solution {
	solved := Solution{byName: make(map[string]float64, len(original.variables))}

	for _, v := range original.variables {
		val, ok := raw[v.name]
		if !ok {
			val = prepper.fixed[v.name]
		}
		solved.byName[v.name] = val
		solved.Objective += v.coefficient * val
	}

	return &solved
}
