package parameter

// Genetic Algorithm - Engine Configuration
const (
	// GAPoolSize is the number of candidates in each population
	GAPoolSize = 10

	// GAEliteCount is preserved best performers per generation (0 = pure generational replacement)
	GAEliteCount = 0

	// GACrossoverRate is probability that two parents recombine instead of being copied (0.0-1.0)
	GACrossoverRate = 0.8

	// GAMutationRate is per-gene flip probability (0.0-1.0)
	GAMutationRate = 0.05

	// GAMaxIterations is the fixed number of generations per run
	GAMaxIterations = 100

	// GATournamentSize for selection pressure
	GATournamentSize = 3

	// GAInitialGeneProbability is the chance a gene starts set in generation 0
	GAInitialGeneProbability = 0.5
)

// Knapsack - Reference Instance
const (
	KnapsackReferenceCapacity = 100
)

// KnapsackReferenceItems lists (weight, value) pairs in gene order
var KnapsackReferenceItems = [][2]int{
	{20, 120},
	{40, 200},
	{60, 240},
}

