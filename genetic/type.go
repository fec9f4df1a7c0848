package genetic

import (
	"math/rand/v2"
)

// --- Core Type Constraints ---

// Solution represents any type that can be used as a solution encoding
type Solution any

// Numeric constrains types to numeric values for fitness scores
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// --- Core Data Structures ---

// Candidate represents a potential solution with its evaluated quality score
// S is the solution type, F is the fitness/quality score type
type Candidate[S Solution, F Numeric] struct {
	// Data holds the encoded solution representation
	Data S
	// Score represents the quality/fitness of this solution (higher = better)
	Score F
}

// Pool represents a collection of solution candidates
// This is the working set of solutions at any given iteration
type Pool[S Solution, F Numeric] struct {
	// Members contains all candidates in this pool
	Members []Candidate[S, F]
	// Generation tracks the iteration number this pool represents
	Generation int
	// Stats holds statistical information about this pool
	Stats PoolStats[F]
}

// Best returns the highest scoring member, first in pool order on ties
func (p *Pool[S, F]) Best() (Candidate[S, F], bool) {
	if p == nil || len(p.Members) == 0 {
		return Candidate[S, F]{}, false
	}

	best := p.Members[0]
	for _, c := range p.Members[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, true
}

// PoolStats contains statistical information about a candidate pool
type PoolStats[F Numeric] struct {
	Generation   int
	Size         int
	BestScore    F
	WorstScore   F
	AverageScore float64
}

// --- Function Types for Flexibility ---

// EvaluatorFunc defines a function that calculates the quality score for a solution
type EvaluatorFunc[S Solution, F Numeric] func(solution S) F

// InitializerFunc creates an initial solution candidate
type InitializerFunc[S Solution] func(rng *rand.Rand) S

// ObserverFunc receives each pool once it has been evaluated, generation 0 included
// The pool must not be modified or retained past the call
type ObserverFunc[S Solution, F Numeric] func(pool *Pool[S, F])

// --- Core Operators as Interfaces ---

// Selector defines the selection operator for choosing candidates for reproduction
type Selector[S Solution, F Numeric] interface {
	// Select chooses candidates from the pool for reproduction
	// The size parameter indicates how many candidates to select
	Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F]
}

// Combiner defines the recombination operator for creating new solutions
type Combiner[S Solution, F Numeric] interface {
	// Combine creates offspring from parent solutions
	// Returned solutions never alias parent data
	Combine(parents []Candidate[S, F], rng *rand.Rand) []S
}

// Perturbator defines the mutation operator for introducing variation
type Perturbator[S Solution] interface {
	// Perturb modifies a solution in-place to introduce variation
	// The rate parameter is the per-element perturbation probability (0-1)
	Perturb(solution *S, rate float64, rng *rand.Rand)
}
