package milp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreeLogger_recordsNodesAndDecisions(t *testing.T) {
	logger := NewTreeLogger()

	root := subProblem{id: 0, parent: 0}
	logger.NewSubProblem(root)

	logger.ProcessDecision(solution{problem: &root, x: []float64{1, 2}, z: 3.5}, decisionNewIncumbent)

	node, ok := logger.nodes[0]
	assert.True(t, ok)
	assert.True(t, node.solved)
	assert.Equal(t, decisionNewIncumbent, node.decision)
	assert.Equal(t, 3.5, node.z)
}

func TestTreeLogger_ToDOT_producesGraph(t *testing.T) {
	logger := NewTreeLogger()

	root := subProblem{id: 0, parent: 0}
	child := subProblem{id: 1, parent: 0}
	logger.NewSubProblem(root)
	logger.NewSubProblem(child)
	logger.ProcessDecision(solution{problem: &root, x: nil, z: 1}, decisionBranching)
	logger.ProcessDecision(solution{problem: &child, x: nil, z: 2}, decisionNewIncumbent)

	var buf bytes.Buffer
	logger.ToDOT(&buf)

	out := buf.String()
	assert.Contains(t, out, "digraph enumtree")
	assert.Contains(t, out, "0 -> 1")
}

func TestDummyMiddleware_isNoOp(t *testing.T) {
	var m BnbMiddleware = dummyMiddleware{}
	assert.NotPanics(t, func() {
		m.NewSubProblem(subProblem{})
		m.ProcessDecision(solution{}, decisionBranching)
	})
}
