package genetic

// Package genetic provides a generic-first generational genetic algorithm framework
// 1. Has zero knowledge of problem-specific types; solutions and scores are type parameters
// 2. Operators (selection, recombination, perturbation) are swappable through interfaces
// 3. All randomness flows through a single *rand.Rand owned by the engine, so runs are reproducible

import (
	"math/rand/v2"
	"slices"
)

// --- Concrete Operator Implementations ---

// TournamentSelector implements tournament selection
// Randomly samples small groups and selects the best from each group
type TournamentSelector[S Solution, F Numeric] struct {
	// TournamentSize is the number of candidates to compete in each tournament
	TournamentSize int
	// WithReplacement allows the same member to be drawn more than once per tournament
	WithReplacement bool
}

// Select implements the Selector interface using tournament selection
// The first drawn candidate among equal best scores wins
func (ts *TournamentSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	selected := make([]Candidate[S, F], 0, size)
	poolSize := len(pool.Members)
	if poolSize == 0 {
		return selected
	}

	tournSize := ts.TournamentSize
	if tournSize < 1 {
		tournSize = 2 // Default minimum
	}
	// Distinct draws cannot exceed the pool
	if !ts.WithReplacement && tournSize > poolSize {
		tournSize = poolSize
	}

	var indices []int
	if !ts.WithReplacement {
		indices = make([]int, poolSize)
	}

	for len(selected) < size {
		var winner Candidate[S, F]
		if ts.WithReplacement {
			winner = pool.Members[rng.IntN(poolSize)]
			for i := 1; i < tournSize; i++ {
				contender := pool.Members[rng.IntN(poolSize)]
				if contender.Score > winner.Score {
					winner = contender
				}
			}
		} else {
			// Partial Fisher-Yates over member indices
			for i := range indices {
				indices[i] = i
			}
			for i := 0; i < tournSize; i++ {
				j := i + rng.IntN(poolSize-i)
				indices[i], indices[j] = indices[j], indices[i]
			}
			winner = pool.Members[indices[0]]
			for _, idx := range indices[1:tournSize] {
				if pool.Members[idx].Score > winner.Score {
					winner = pool.Members[idx]
				}
			}
		}

		selected = append(selected, winner)
	}

	return selected
}

// SinglePointCombiner performs single-point crossover between two solutions
// With probability 1-Rate the parents are copied through unchanged
type SinglePointCombiner[S ~[]T, T any, F Numeric] struct {
	// Rate is the probability that recombination happens at all (0-1)
	Rate float64
}

// Combine creates two offspring, recombined at a random cut in [0, length)
func (sc *SinglePointCombiner[S, T, F]) Combine(parents []Candidate[S, F], rng *rand.Rand) []S {
	if len(parents) < 2 {
		if len(parents) == 1 {
			return []S{slices.Clone(parents[0].Data)}
		}
		return []S{}
	}

	parent1, parent2 := parents[0].Data, parents[1].Data

	if rng.Float64() >= sc.Rate {
		return []S{slices.Clone(parent1), slices.Clone(parent2)}
	}

	length := min(len(parent1), len(parent2))
	cut := 0
	if length > 0 {
		cut = rng.IntN(length)
	}

	offspring1, offspring2 := SinglePointCrossover(parent1, parent2, cut)
	return []S{offspring1, offspring2}
}

// SinglePointCrossover swaps the segments of two parents after cut
// offspring1 = parent1[:cut] + parent2[cut:], offspring2 = parent2[:cut] + parent1[cut:]
// Offspring length is the shorter parent's length; cut is clamped to it
func SinglePointCrossover[S ~[]T, T any](parent1, parent2 S, cut int) (S, S) {
	length := min(len(parent1), len(parent2))
	cut = max(0, min(cut, length))

	offspring1 := make(S, length)
	offspring2 := make(S, length)

	copy(offspring1[:cut], parent1[:cut])
	copy(offspring1[cut:], parent2[cut:length])
	copy(offspring2[:cut], parent2[:cut])
	copy(offspring2[cut:], parent1[cut:length])

	return offspring1, offspring2
}

// BitFlipPerturbator flips genes of binary-encoded solutions
type BitFlipPerturbator[S ~[]bool] struct{}

// Perturb flips each gene independently with probability rate
func (bfp *BitFlipPerturbator[S]) Perturb(solution *S, rate float64, rng *rand.Rand) {
	if solution == nil {
		return
	}

	for i := range *solution {
		if rng.Float64() < rate {
			(*solution)[i] = !(*solution)[i]
		}
	}
}
