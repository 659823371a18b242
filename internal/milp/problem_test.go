package milp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestProblem_getVariableIndex(t *testing.T) {
	prob := NewProblem()
	v := prob.AddVariable("v1").SetCoeff(1)

	assert.Equal(t, 0, prob.getVariableIndex(v))

	foreign := &Variable{}
	assert.Panics(t, func() { prob.getVariableIndex(foreign) })
}

func TestProblem_toSolveable(t *testing.T) {
	prob := NewProblem()

	v1 := prob.AddVariable("v1").SetCoeff(-1)
	v2 := prob.AddVariable("v2").SetCoeff(-2)
	v3 := prob.AddVariable("v3").SetCoeff(1)
	v4 := prob.AddVariable("v4").SetCoeff(3)

	prob.AddConstraint().AddExpression(1, v1).EqualTo(5)
	prob.AddConstraint().AddExpression(3, v2).EqualTo(2)
	prob.AddConstraint().AddExpression(1, v3).EqualTo(2)
	prob.AddConstraint().AddExpression(1, v4).SmallerThanOrEqualTo(2)

	got := prob.toSolveable()
	want := &milpProblem{
		c: []float64{-1, -2, 1, 3},
		A: mat.NewDense(3, 4, []float64{
			1, 0, 0, 0,
			0, 3, 0, 0,
			0, 0, 1, 0,
		}),
		b: []float64{5, 2, 2},
		G: mat.NewDense(1, 4, []float64{
			0, 0, 0, 1,
		}),
		h:                      []float64{2},
		integralityConstraints: []bool{false, false, false, false},
	}

	assert.Equal(t, want, got)
}

func TestProblem_Solve_continuous(t *testing.T) {
	prob := NewProblem()

	v1 := prob.AddVariable("v1").SetCoeff(-1)
	v2 := prob.AddVariable("v2").SetCoeff(-2)
	v3 := prob.AddVariable("v3").SetCoeff(1)
	v4 := prob.AddVariable("v4").SetCoeff(3)

	prob.AddConstraint().AddExpression(1, v1).EqualTo(5)
	prob.AddConstraint().AddExpression(3, v2).EqualTo(2)
	prob.AddConstraint().AddExpression(1, v3).EqualTo(2)
	prob.AddConstraint().AddExpression(1, v4).SmallerThanOrEqualTo(2)

	soln, err := prob.Solve(context.Background())
	require.NoError(t, err)

	getVal := func(name string) float64 {
		v, err := soln.GetValueFor(name)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, 5.0, getVal("v1"))
	assert.InDelta(t, 0.6666666666666666, getVal("v2"), 1e-9)
	assert.Equal(t, 2.0, getVal("v3"))
	assert.Equal(t, 0.0, getVal("v4"))
}

func TestProblem_Solve_binaryKnapsack(t *testing.T) {
	// classic 0/1 knapsack: maximize value subject to a weight budget.
	prob := NewProblem()
	prob.Maximize()

	values := []float64{6, 10, 12}
	weights := []float64{1, 2, 3}

	vars := make([]*Variable, len(values))
	weightConstraint := prob.AddConstraint()
	for i := range values {
		vars[i] = prob.AddVariable(string(rune('a' + i))).SetCoeff(values[i]).Binary()
		weightConstraint.AddExpression(weights[i], vars[i])
	}
	weightConstraint.SmallerThanOrEqualTo(5)

	soln, err := prob.Solve(context.Background())
	require.NoError(t, err)

	// optimal: take items b and c (weight 5, value 22), beats any other
	// combination within the weight budget.
	assert.InDelta(t, 22.0, soln.Objective, 1e-6)
}

func TestSolution_GetValueFor_unknown(t *testing.T) {
	soln := Solution{byName: map[string]float64{"x": 1}}
	_, err := soln.GetValueFor("y")
	assert.Error(t, err)
}
