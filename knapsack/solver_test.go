package knapsack

import (
	"bytes"
	"context"
	"log"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceOptimum is items 2 and 3: weight 100 at capacity 100, value 440
const referenceOptimum = 440

func seededConfig(seed uint64) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.PopulationSize)
	assert.Equal(t, 0.8, cfg.CrossoverRate)
	assert.Equal(t, 0.05, cfg.MutationRate)
	assert.Equal(t, 100, cfg.Generations)
	assert.Equal(t, 0, cfg.EliteCount)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"zero population", func(c *Config) { c.PopulationSize = 0 }},
		{"crossover above one", func(c *Config) { c.CrossoverRate = 1.1 }},
		{"crossover below zero", func(c *Config) { c.CrossoverRate = -0.1 }},
		{"mutation above one", func(c *Config) { c.MutationRate = 2 }},
		{"negative generations", func(c *Config) { c.Generations = -1 }},
		{"elite equals population", func(c *Config) { c.EliteCount = c.PopulationSize }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(&cfg)

			_, err := NewSolver(ReferenceProblem(), cfg)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestNewSolver_RejectsInvalidProblem(t *testing.T) {
	_, err := NewSolver(Problem{Capacity: -1}, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestSolver_ConvergesOnReference(t *testing.T) {
	const runs = 20
	found := 0

	for seed := uint64(1); seed <= runs; seed++ {
		solver, err := NewSolver(ReferenceProblem(), seededConfig(seed))
		require.NoError(t, err)

		best := solver.Run()
		if best.Fitness() == referenceOptimum {
			found++
			assert.Equal(t, []int{1, 2}, best.Selected())
		}
	}

	assert.GreaterOrEqual(t, found, 15, "optimum found in %d of %d runs", found, runs)
}

func TestSolver_RepeatedRunsAreIdentical(t *testing.T) {
	solver, err := NewSolver(ReferenceProblem(), seededConfig(77))
	require.NoError(t, err)

	first, err := solver.RunContext(context.Background())
	require.NoError(t, err)
	second, err := solver.RunContext(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Best.Genes(), second.Best.Genes())
	assert.Equal(t, first.Best.Fitness(), second.Best.Fitness())
	assert.Equal(t, first.History, second.History)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestSolver_InjectedRandIsDeterministic(t *testing.T) {
	problem := Problem{Capacity: 50, Items: []Item{
		{10, 60}, {20, 100}, {30, 120}, {5, 30}, {15, 45}, {25, 80}, {8, 20}, {12, 70},
	}}

	run := func() Result {
		solver, err := NewSolver(problem, DefaultConfig(), WithRand(rand.New(rand.NewPCG(2024, 10))))
		require.NoError(t, err)
		res, err := solver.RunContext(context.Background())
		require.NoError(t, err)
		return res
	}

	a, b := run(), run()
	assert.Equal(t, a.Best.Genes(), b.Best.Genes())
	assert.Equal(t, a.History, b.History)
}

func TestSolver_ObserverInvariants(t *testing.T) {
	problem := ReferenceProblem()
	cfg := seededConfig(5)
	cfg.PopulationSize = 7 // odd: one offspring per generation is dropped
	cfg.Generations = 30

	var reports []GenerationReport
	solver, err := NewSolver(problem, cfg, WithObserver(func(r GenerationReport) {
		reports = append(reports, r)
	}))
	require.NoError(t, err)

	res, err := solver.RunContext(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, cfg.Generations+1)
	require.Len(t, res.History, cfg.Generations+1)

	for i, r := range reports {
		assert.Equal(t, i, r.Generation)
		assert.Equal(t, res.RunID, r.RunID)
		assert.Equal(t, cfg.PopulationSize, r.Stats.Size, "population size at generation %d", i)
		assert.Equal(t, len(problem.Items), r.Best.Len(), "genome length at generation %d", i)
		assert.Equal(t, r.Stats.BestScore, r.Best.Fitness())

		if r.Best.Weight() <= problem.Capacity {
			assert.Equal(t, r.Best.Value(), r.Best.Fitness())
		} else {
			assert.Equal(t, 0, r.Best.Fitness())
		}
	}

	assert.Equal(t, reports[len(reports)-1].Best.Genes(), res.Best.Genes())
}

func TestSolver_ZeroGenerations(t *testing.T) {
	cfg := seededConfig(9)
	cfg.Generations = 0

	solver, err := NewSolver(ReferenceProblem(), cfg)
	require.NoError(t, err)

	res, err := solver.RunContext(context.Background())
	require.NoError(t, err)
	require.Len(t, res.History, 1)
	assert.Equal(t, res.History[0].BestScore, res.Best.Fitness())
	assert.Equal(t, 3, res.Best.Len())
}

func TestSolver_EmptyItems(t *testing.T) {
	solver, err := NewSolver(Problem{Capacity: 10}, seededConfig(3))
	require.NoError(t, err)

	best := solver.Run()
	assert.Equal(t, 0, best.Len())
	assert.Equal(t, 0, best.Fitness())
	assert.True(t, best.Feasible())
}

func TestSolver_EliteCarryoverNeverRegresses(t *testing.T) {
	problem := Problem{Capacity: 60, Items: []Item{
		{10, 10}, {20, 30}, {30, 25}, {15, 40}, {25, 35}, {5, 5}, {35, 60}, {40, 50},
	}}
	cfg := seededConfig(31)
	cfg.EliteCount = 1
	cfg.MutationRate = 0.3

	solver, err := NewSolver(problem, cfg)
	require.NoError(t, err)

	res, err := solver.RunContext(context.Background())
	require.NoError(t, err)

	for i := 1; i < len(res.History); i++ {
		assert.GreaterOrEqual(t, res.History[i].BestScore, res.History[i-1].BestScore, "regressed at generation %d", i)
	}
	assert.True(t, res.Best.Feasible())
}

func TestSolver_Cancelled(t *testing.T) {
	solver, err := NewSolver(ReferenceProblem(), seededConfig(4))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := solver.RunContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotEqual(t, uuid.Nil, res.RunID)
	assert.Len(t, res.History, 1)
	assert.Equal(t, 3, res.Best.Len(), "best of the initial population is still reported")
}

func TestSolver_ProblemIsCopied(t *testing.T) {
	problem := ReferenceProblem()
	solver, err := NewSolver(problem, seededConfig(1))
	require.NoError(t, err)

	problem.Items[0].Weight = 1000
	assert.Equal(t, 20, solver.Problem().Items[0].Weight)
}

func TestSolver_ProblemAccessorReturnsCopy(t *testing.T) {
	solver, err := NewSolver(ReferenceProblem(), seededConfig(1))
	require.NoError(t, err)

	exposed := solver.Problem()
	exposed.Items[0].Weight = 1000
	exposed.Items = append(exposed.Items, Item{Weight: 1, Value: 1})
	assert.Equal(t, 20, solver.Problem().Items[0].Weight)
	assert.Len(t, solver.Problem().Items, 3)

	// Rewriting items from inside a run leaves fitness untouched
	solver, err = NewSolver(ReferenceProblem(), seededConfig(1), WithObserver(func(GenerationReport) {
		p := solver.Problem()
		p.Items[1].Value = 1
	}))
	require.NoError(t, err)
	best := solver.Run()
	want, err := ReferenceProblem().Evaluate(best.Genes())
	require.NoError(t, err)
	assert.Equal(t, want.Fitness(), best.Fitness())
	assert.Equal(t, ReferenceProblem(), solver.Problem())
}

func TestSolver_LogsOnlyRunBoundaries(t *testing.T) {
	var buf bytes.Buffer
	prevOutput, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOutput)
		log.SetFlags(prevFlags)
	})

	solver, err := NewSolver(ReferenceProblem(), seededConfig(3))
	require.NoError(t, err)
	solver.Run()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "start")
	assert.Contains(t, lines[1], "done")
}
