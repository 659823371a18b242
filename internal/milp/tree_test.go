package milp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeasibleForIP(t *testing.T) {
	tests := []struct {
		name        string
		constraints []bool
		solution    []float64
		want        bool
	}{
		{"no constraints", []bool{false, false, false, false}, []float64{1, 2, 3, 4.5}, true},
		{"one fractional constrained var", []bool{false, false, false, true}, []float64{1, 2, 3, 4.5}, false},
		{"mixed, one fractional", []bool{true, false, false, true}, []float64{1, 2, 3, 4.5}, false},
		{"all integral", []bool{true, true, true, true}, []float64{1, 2, 3, 4}, true},
		{"within tolerance", []bool{true}, []float64{2.0000000001}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, feasibleForIP(tt.constraints, tt.solution))
		})
	}
}

func TestBetterObjective(t *testing.T) {
	assert.True(t, betterObjective(1.0, 2.0))
	assert.False(t, betterObjective(2.0, 1.0))
	assert.False(t, betterObjective(1.0, 1.0))
}
