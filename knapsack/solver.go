package knapsack

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/knapsack-ga/genetic"
	"github.com/lixenwraith/knapsack-ga/parameter"
)

// Config holds the genetic algorithm settings for a solver run
type Config struct {
	// PopulationSize is the number of chromosomes kept per generation; even sizes avoid a wasted offspring
	PopulationSize int
	// CrossoverRate is the probability that a parent pair recombines (0-1)
	CrossoverRate float64
	// MutationRate is the per-gene flip probability (0-1)
	MutationRate float64
	// Generations is the exact number of generations to run
	Generations int
	// EliteCount carries the best chromosomes of each generation forward; 0 keeps offspring only
	EliteCount int
	// Seed for random number generation (0 for random seed)
	Seed uint64
}

// DefaultConfig returns the reference settings
func DefaultConfig() Config {
	engine := genetic.DefaultConfig()
	return Config{
		PopulationSize: engine.PoolSize,
		CrossoverRate:  parameter.GACrossoverRate,
		MutationRate:   engine.MutationRate,
		Generations:    engine.MaxIterations,
		EliteCount:     engine.EliteCount,
		Seed:           engine.Seed,
	}
}

// Validate reports the first out-of-range setting
func (c Config) Validate() error {
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("%w: crossover rate %v outside [0, 1]", ErrInvalidConfiguration, c.CrossoverRate)
	}
	if err := c.engineConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}

func (c Config) engineConfig() genetic.EngineConfig {
	return genetic.EngineConfig{
		PoolSize:      c.PopulationSize,
		EliteCount:    c.EliteCount,
		MutationRate:  c.MutationRate,
		MaxIterations: c.Generations,
		Seed:          c.Seed,
	}
}

// GenerationReport is a snapshot delivered to observers after each evaluated generation
type GenerationReport struct {
	RunID      uuid.UUID
	Generation int
	Stats      genetic.PoolStats[int]
	Best       Chromosome
}

// Result is the outcome of a solver run
type Result struct {
	RunID uuid.UUID
	Best  Chromosome
	// History holds one entry per generation, the initial population first
	History []genetic.PoolStats[int]
	Elapsed time.Duration
}

// Option customizes a Solver
type Option func(*Solver)

// WithRand injects the random source; every run continues drawing from it and Config.Seed is ignored
func WithRand(rng *rand.Rand) Option {
	return func(s *Solver) {
		s.rng = rng
	}
}

// WithObserver registers a per-generation callback, called synchronously on the solver goroutine
func WithObserver(fn func(GenerationReport)) Option {
	return func(s *Solver) {
		s.observer = fn
	}
}

// Solver runs the genetic algorithm over one problem instance
type Solver struct {
	problem  Problem
	config   Config
	rng      *rand.Rand
	observer func(GenerationReport)
}

// NewSolver validates problem and configuration up front
func NewSolver(problem Problem, cfg Config, opts ...Option) (*Solver, error) {
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Solver{
		problem: Problem{Capacity: problem.Capacity, Items: slices.Clone(problem.Items)},
		config:  cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Problem returns a copy of the instance being solved
func (s *Solver) Problem() Problem {
	return Problem{Capacity: s.problem.Capacity, Items: slices.Clone(s.problem.Items)}
}

// Run evolves the population and returns the best chromosome of the final generation
// With a non-zero seed and no injected source, repeated calls return identical results
func (s *Solver) Run() Chromosome {
	// Background is never cancelled and the built-in operators always yield offspring
	res, _ := s.RunContext(context.Background())
	return res.Best
}

// RunContext is Run with cancellation between generations
// On cancellation the best chromosome of the last complete generation is returned with ctx.Err()
func (s *Solver) RunContext(ctx context.Context) (Result, error) {
	runID := uuid.New()

	engine, err := genetic.NewEngine[[]bool, int](
		s.problem.fitness,
		s.randomGenes,
		&genetic.TournamentSelector[[]bool, int]{
			TournamentSize:  parameter.GATournamentSize,
			WithReplacement: true,
		},
		&genetic.SinglePointCombiner[[]bool, bool, int]{
			Rate: s.config.CrossoverRate,
		},
		&genetic.BitFlipPerturbator[[]bool]{},
		s.config.engineConfig(),
	)
	if err != nil {
		return Result{RunID: runID}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if s.rng != nil {
		engine.SetRand(s.rng)
	}

	if s.observer != nil {
		engine.SetObserver(func(pool *genetic.Pool[[]bool, int]) {
			report := GenerationReport{
				RunID:      runID,
				Generation: pool.Generation,
				Stats:      pool.Stats,
			}
			if best, ok := pool.Best(); ok {
				report.Best, _ = s.problem.Evaluate(best.Data)
			}
			s.observer(report)
		})
	}

	log.Printf("run %s: start items=%d capacity=%d pop=%d crossover=%v mutation=%v generations=%d elite=%d",
		runID, len(s.problem.Items), s.problem.Capacity, s.config.PopulationSize,
		s.config.CrossoverRate, s.config.MutationRate, s.config.Generations, s.config.EliteCount)

	start := time.Now()
	pool, runErr := engine.Run(ctx)

	result := Result{
		RunID:   runID,
		History: engine.History(),
		Elapsed: time.Since(start),
	}

	if best, ok := pool.Best(); ok {
		chromosome, err := s.problem.Evaluate(best.Data)
		if err != nil {
			return result, err
		}
		result.Best = chromosome
	}

	if runErr != nil {
		log.Printf("run %s: stopped at generation %d: %v", runID, pool.Generation, runErr)
		return result, runErr
	}

	log.Printf("run %s: done best=%d weight=%d elapsed=%v",
		runID, result.Best.Fitness(), result.Best.Weight(), result.Elapsed)
	return result, nil
}

// randomGenes sets each gene independently with the initial gene probability
func (s *Solver) randomGenes(rng *rand.Rand) []bool {
	genes := make([]bool, len(s.problem.Items))
	for i := range genes {
		genes[i] = rng.Float64() < parameter.GAInitialGeneProbability
	}
	return genes
}
