// Package knapsack solves the 0/1 knapsack problem heuristically with a generational genetic algorithm
package knapsack

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/knapsack-ga/parameter"
)

var (
	// ErrInvalidConfiguration is wrapped by problem and solver configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrGenomeLength reports a gene count that differs from the item count
	ErrGenomeLength = errors.New("genome length does not match item count")
)

// Item is an immutable (weight, value) pair
type Item struct {
	Weight int
	Value  int
}

// Problem is a knapsack capacity plus ordered items; item order defines gene positions
type Problem struct {
	Capacity int
	Items    []Item
}

// NewProblem copies items so later changes by the caller cannot alter the instance
func NewProblem(capacity int, items []Item) (Problem, error) {
	p := Problem{
		Capacity: capacity,
		Items:    append([]Item(nil), items...),
	}
	if err := p.Validate(); err != nil {
		return Problem{}, err
	}
	return p, nil
}

// ReferenceProblem returns the built-in three item instance
func ReferenceProblem() Problem {
	items := make([]Item, len(parameter.KnapsackReferenceItems))
	for i, wv := range parameter.KnapsackReferenceItems {
		items[i] = Item{Weight: wv[0], Value: wv[1]}
	}
	return Problem{
		Capacity: parameter.KnapsackReferenceCapacity,
		Items:    items,
	}
}

// Validate rejects negative capacity, weights and values
// An empty item list is accepted and yields zero-length genomes
func (p Problem) Validate() error {
	if p.Capacity < 0 {
		return fmt.Errorf("%w: capacity %d < 0", ErrInvalidConfiguration, p.Capacity)
	}
	for i, item := range p.Items {
		if item.Weight < 0 || item.Value < 0 {
			return fmt.Errorf("%w: item %d has negative weight or value (%d, %d)",
				ErrInvalidConfiguration, i, item.Weight, item.Value)
		}
	}
	return nil
}

// GenomeLength is the number of genes every chromosome carries
func (p Problem) GenomeLength() int {
	return len(p.Items)
}

// totals sums weight and value over set genes; genes beyond the item list are ignored
func (p Problem) totals(genes []bool) (weight, value int) {
	for i, included := range genes {
		if included && i < len(p.Items) {
			weight += p.Items[i].Weight
			value += p.Items[i].Value
		}
	}
	return weight, value
}

// fitness is total value when the selection fits, zero otherwise
func (p Problem) fitness(genes []bool) int {
	weight, value := p.totals(genes)
	if weight > p.Capacity {
		return 0
	}
	return value
}
