package milp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

func TestSimplex_sanityCheck(t *testing.T) {
	// minimize -x1 - 2x2 s.t. -x1+2x2+x3=4, 3x1+x2+x4=9, x>=0
	c := []float64{-1, -2, 0, 0}
	A := mat.NewDense(2, 4, []float64{
		-1, 2, 1, 0,
		3, 1, 0, 1,
	})
	b := []float64{4, 9}

	z, x, err := lp.Simplex(c, A, b, 0, nil)
	require.NoError(t, err)
	assert.InDelta(t, -8, z, 1e-9)
	assert.InDeltaSlice(t, []float64{2, 3, 0, 0}, x, 1e-9)
}

func Test_subProblem_combineInequalities(t *testing.T) {
	base := subProblem{
		c: []float64{-1, -2, 0, 0},
		A: mat.NewDense(2, 4, []float64{
			-1, 2, 1, 0,
			3, 1, 0, 1,
		}),
		b: []float64{4, 9},
	}

	t.Run("no bnb constraints, no G", func(t *testing.T) {
		G, h := base.combineInequalities()
		assert.Nil(t, G)
		assert.Nil(t, h)
	})

	t.Run("one bnb constraint", func(t *testing.T) {
		withConstraint := base
		withConstraint.bnbConstraints = []bnbConstraint{
			{branchedVariable: 0, hsharp: 3, gsharp: []float64{1, 0, 0, 0}},
		}
		G, h := withConstraint.combineInequalities()
		require.NotNil(t, G)
		rows, cols := G.Dims()
		assert.Equal(t, 1, rows)
		assert.Equal(t, 4, cols)
		assert.Equal(t, []float64{3}, h)
	})
}

func Test_convertToEqualities(t *testing.T) {
	c := []float64{1, 1}
	G := mat.NewDense(1, 2, []float64{1, 1})
	h := []float64{10}

	cNew, aNew, bNew := convertToEqualities(c, nil, nil, G, h)

	assert.Equal(t, []float64{1, 1, 0}, cNew)
	assert.Equal(t, []float64{10}, bNew)

	rows, cols := aNew.Dims()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 1.0, aNew.At(0, 2)) // slack variable column
}

func Test_subProblem_branchAndGetChild(t *testing.T) {
	s := solution{
		problem: &subProblem{
			c:                      []float64{1, 1},
			integralityConstraints: []bool{true, true},
			branchHeuristic:        BranchMaxFun,
		},
		x: []float64{1.4, 2.0},
	}

	p1, p2 := s.branch()

	require.Len(t, p1.bnbConstraints, 1)
	require.Len(t, p2.bnbConstraints, 1)

	// x[0] <= floor(1.4) = 1
	assert.Equal(t, 1.0, p1.bnbConstraints[0].hsharp)
	assert.Equal(t, []float64{1, 0}, p1.bnbConstraints[0].gsharp)

	// -x[0] <= -(floor(1.4)+1) = -2
	assert.Equal(t, -2.0, p2.bnbConstraints[0].hsharp)
	assert.Equal(t, []float64{-1, 0}, p2.bnbConstraints[0].gsharp)
}

func Test_subProblem_copy_isolatesBnbConstraints(t *testing.T) {
	parent := subProblem{
		id:             1,
		bnbConstraints: []bnbConstraint{{branchedVariable: 0}},
	}

	child := parent.copy()
	child.bnbConstraints = append(child.bnbConstraints, bnbConstraint{branchedVariable: 1})

	assert.Len(t, parent.bnbConstraints, 1)
	assert.Len(t, child.bnbConstraints, 2)
	assert.Equal(t, parent.id, child.parent)
}

func Test_sanityCheckDimensions(t *testing.T) {
	assert.Error(t, sanityCheckDimensions([]float64{1}, nil, nil, nil, nil))

	G := mat.NewDense(1, 2, []float64{1, 1})
	assert.Error(t, sanityCheckDimensions([]float64{1}, nil, nil, G, nil))
	assert.NoError(t, sanityCheckDimensions([]float64{1, 1}, nil, nil, G, []float64{1}))
}
