package knapsack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_ReferenceSubsets(t *testing.T) {
	p := ReferenceProblem()

	tests := []struct {
		genes    []bool
		weight   int
		value    int
		fitness  int
		feasible bool
	}{
		{[]bool{false, false, false}, 0, 0, 0, true},
		{[]bool{true, false, false}, 20, 120, 120, true},
		{[]bool{false, true, false}, 40, 200, 200, true},
		{[]bool{false, false, true}, 60, 240, 240, true},
		{[]bool{true, true, false}, 60, 320, 320, true},
		{[]bool{true, false, true}, 80, 360, 360, true},
		{[]bool{false, true, true}, 100, 440, 440, true}, // exactly at capacity
		{[]bool{true, true, true}, 120, 560, 0, false},
	}

	for _, tt := range tests {
		c, err := p.Evaluate(tt.genes)
		require.NoError(t, err)

		assert.Equal(t, tt.weight, c.Weight(), "weight of %v", tt.genes)
		assert.Equal(t, tt.value, c.Value(), "value of %v", tt.genes)
		assert.Equal(t, tt.fitness, c.Fitness(), "fitness of %v", tt.genes)
		assert.Equal(t, tt.feasible, c.Feasible(), "feasibility of %v", tt.genes)
		assert.Equal(t, 3, c.Len())
	}
}

func TestEvaluate_ZeroValueItemsStayFeasible(t *testing.T) {
	p := Problem{Capacity: 5, Items: []Item{{3, 0}, {4, 0}}}

	fits, err := p.Evaluate([]bool{true, false})
	require.NoError(t, err)
	assert.True(t, fits.Feasible())
	assert.Equal(t, 0, fits.Fitness())

	over, err := p.Evaluate([]bool{true, true})
	require.NoError(t, err)
	assert.False(t, over.Feasible())
	assert.Equal(t, 0, over.Fitness())
}

func TestEvaluate_GenomeLengthMismatch(t *testing.T) {
	p := ReferenceProblem()

	_, err := p.Evaluate([]bool{true})
	assert.ErrorIs(t, err, ErrGenomeLength)

	_, err = p.Evaluate([]bool{true, true, true, true})
	assert.ErrorIs(t, err, ErrGenomeLength)
}

func TestEvaluate_EmptyProblem(t *testing.T) {
	c, err := Problem{Capacity: 0}.Evaluate(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Fitness())
	assert.True(t, c.Feasible())
}

func TestChromosome_Immutable(t *testing.T) {
	p := ReferenceProblem()
	genes := []bool{true, false, true}

	c, err := p.Evaluate(genes)
	require.NoError(t, err)

	genes[1] = true
	assert.False(t, c.Gene(1), "caller's slice leaked into chromosome")

	out := c.Genes()
	out[0] = false
	assert.True(t, c.Gene(0), "Genes() exposed internal storage")
	assert.Equal(t, 360, c.Fitness())
}

func TestChromosome_Accessors(t *testing.T) {
	c, err := ReferenceProblem().Evaluate([]bool{true, false, true})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, c.Selected())
	assert.True(t, c.Gene(2))
	assert.False(t, c.Gene(-1))
	assert.False(t, c.Gene(3))
	assert.Equal(t, "101 (360)", c.String())

	var zero Chromosome
	assert.Nil(t, zero.Selected())
	assert.Equal(t, " (0)", zero.String())
}
