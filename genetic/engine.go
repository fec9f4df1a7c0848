package genetic

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/lixenwraith/knapsack-ga/parameter"
)

// ErrInvalidConfig is wrapped by every engine configuration error
var ErrInvalidConfig = errors.New("invalid engine configuration")

// errNoOffspring guards the offspring loop against a combiner that produces nothing
var errNoOffspring = errors.New("combiner produced no offspring")

// --- Algorithm Engine ---

// Engine is the generational genetic algorithm execution engine
// It coordinates all operators and manages the evolution process
type Engine[S Solution, F Numeric] struct {
	// Core operators
	evaluator   EvaluatorFunc[S, F]
	initializer InitializerFunc[S]
	selector    Selector[S, F]
	combiner    Combiner[S, F]
	perturbator Perturbator[S]
	observer    ObserverFunc[S, F]

	// Configuration
	config EngineConfig

	// State
	rng         *rand.Rand
	currentPool *Pool[S, F]
	history     []PoolStats[F]
}

// EngineConfig holds configuration parameters for the algorithm
type EngineConfig struct {
	// PoolSize is the number of candidates maintained in each generation
	PoolSize int
	// EliteCount is the number of best candidates carried into the next generation
	// Zero means pure generational replacement
	EliteCount int
	// MutationRate is the per-gene perturbation probability applied to every offspring (0-1)
	MutationRate float64
	// MaxIterations is the exact number of generations to run
	MaxIterations int
	// Seed for random number generation (0 for random seed)
	Seed uint64
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		PoolSize:      parameter.GAPoolSize,
		EliteCount:    parameter.GAEliteCount,
		MutationRate:  parameter.GAMutationRate,
		MaxIterations: parameter.GAMaxIterations,
		Seed:          0,
	}
}

// Validate reports the first out-of-range field
func (c EngineConfig) Validate() error {
	switch {
	case c.PoolSize < 1:
		return fmt.Errorf("%w: pool size %d < 1", ErrInvalidConfig, c.PoolSize)
	case c.EliteCount < 0 || c.EliteCount >= c.PoolSize:
		return fmt.Errorf("%w: elite count %d outside [0, %d)", ErrInvalidConfig, c.EliteCount, c.PoolSize)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("%w: mutation rate %v outside [0, 1]", ErrInvalidConfig, c.MutationRate)
	case c.MaxIterations < 0:
		return fmt.Errorf("%w: max iterations %d < 0", ErrInvalidConfig, c.MaxIterations)
	}
	return nil
}

// NewRand returns a PCG-backed generator; seed 0 draws a random seed
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// NewEngine creates a new genetic algorithm engine with the specified operators
func NewEngine[S Solution, F Numeric](
	evaluator EvaluatorFunc[S, F],
	initializer InitializerFunc[S],
	selector Selector[S, F],
	combiner Combiner[S, F],
	perturbator Perturbator[S],
	config EngineConfig,
) (*Engine[S, F], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if evaluator == nil || initializer == nil || selector == nil || combiner == nil || perturbator == nil {
		return nil, fmt.Errorf("%w: nil operator", ErrInvalidConfig)
	}

	return &Engine[S, F]{
		evaluator:   evaluator,
		initializer: initializer,
		selector:    selector,
		combiner:    combiner,
		perturbator: perturbator,
		config:      config,
		rng:         NewRand(config.Seed),
		history:     make([]PoolStats[F], 0, config.MaxIterations+1),
	}, nil
}

// SetRand replaces the engine's random source, ignoring the configured seed
func (e *Engine[S, F]) SetRand(rng *rand.Rand) {
	if rng != nil {
		e.rng = rng
	}
}

// SetObserver registers a callback invoked after every evaluated generation
func (e *Engine[S, F]) SetObserver(observer ObserverFunc[S, F]) {
	e.observer = observer
}

// Run executes exactly MaxIterations generations and returns the final pool
// On cancellation the last complete pool is returned with ctx.Err()
func (e *Engine[S, F]) Run(ctx context.Context) (*Pool[S, F], error) {
	e.history = e.history[:0]

	// Initialize population
	e.initializePool()
	e.record()

	// Main evolution loop
	for iteration := 0; iteration < e.config.MaxIterations; iteration++ {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return e.currentPool, ctx.Err()
		default:
		}

		if err := e.evolveGeneration(); err != nil {
			return e.currentPool, err
		}
		e.record()
	}

	return e.currentPool, nil
}

// initializePool creates and evaluates the initial population
func (e *Engine[S, F]) initializePool() {
	candidates := make([]Candidate[S, F], e.config.PoolSize)

	for i := range candidates {
		solution := e.initializer(e.rng)
		candidates[i] = Candidate[S, F]{
			Data:  solution,
			Score: e.evaluator(solution),
		}
	}

	e.currentPool = &Pool[S, F]{
		Members:    candidates,
		Generation: 0,
		Stats:      calculateStats(candidates, 0),
	}
}

// evolveGeneration replaces the current pool with the best of its offspring
// Offspring come in batches from the combiner, so the pool may overshoot before truncation
func (e *Engine[S, F]) evolveGeneration() error {
	elite := e.selectElite()
	target := e.config.PoolSize - len(elite)

	offspring := make([]Candidate[S, F], 0, target+1)
	for len(offspring) < target {
		parents := e.selector.Select(e.currentPool, 2, e.rng)
		children := e.combiner.Combine(parents, e.rng)
		if len(children) == 0 {
			return errNoOffspring
		}

		for i := range children {
			e.perturbator.Perturb(&children[i], e.config.MutationRate, e.rng)
			offspring = append(offspring, Candidate[S, F]{Data: children[i]})
		}
	}

	for i := range offspring {
		offspring[i].Score = e.evaluator(offspring[i].Data)
	}

	// Elites lead so they win ties under the stable sort
	nextGen := append(elite, offspring...)
	sortByScore(nextGen)
	nextGen = nextGen[:e.config.PoolSize]

	generation := e.currentPool.Generation + 1
	e.currentPool = &Pool[S, F]{
		Members:    nextGen,
		Generation: generation,
		Stats:      calculateStats(nextGen, generation),
	}

	return nil
}

// selectElite returns copies of the best performing candidates for carryover
func (e *Engine[S, F]) selectElite() []Candidate[S, F] {
	if e.config.EliteCount <= 0 {
		return make([]Candidate[S, F], 0, e.config.PoolSize+1)
	}

	ranked := slices.Clone(e.currentPool.Members)
	sortByScore(ranked)

	eliteCount := min(e.config.EliteCount, len(ranked))
	elite := make([]Candidate[S, F], eliteCount, e.config.PoolSize+1)
	copy(elite, ranked[:eliteCount])
	return elite
}

func (e *Engine[S, F]) record() {
	e.history = append(e.history, e.currentPool.Stats)
	if e.observer != nil {
		e.observer(e.currentPool)
	}
}

// sortByScore orders candidates by descending score, preserving order among equals
func sortByScore[S Solution, F Numeric](candidates []Candidate[S, F]) {
	slices.SortStableFunc(candidates, func(a, b Candidate[S, F]) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// calculateStats computes statistical measures for a candidate pool
func calculateStats[S Solution, F Numeric](candidates []Candidate[S, F], generation int) PoolStats[F] {
	if len(candidates) == 0 {
		return PoolStats[F]{Generation: generation}
	}

	stats := PoolStats[F]{
		Generation: generation,
		Size:       len(candidates),
		BestScore:  candidates[0].Score,
		WorstScore: candidates[0].Score,
	}

	var total float64
	for _, c := range candidates {
		if c.Score > stats.BestScore {
			stats.BestScore = c.Score
		}
		if c.Score < stats.WorstScore {
			stats.WorstScore = c.Score
		}
		total += float64(c.Score)
	}

	stats.AverageScore = total / float64(len(candidates))

	return stats
}

// History returns per-generation statistics of the last run, generation 0 first
func (e *Engine[S, F]) History() []PoolStats[F] {
	return slices.Clone(e.history)
}

// Best returns the best candidate of the current pool
func (e *Engine[S, F]) Best() (Candidate[S, F], error) {
	best, ok := e.currentPool.Best()
	if !ok {
		return Candidate[S, F]{}, errors.New("no candidates available")
	}
	return best, nil
}
