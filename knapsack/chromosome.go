package knapsack

import (
	"fmt"
	"strings"
)

// Chromosome is an evaluated item selection; it cannot drift out of sync with its fitness
// The zero value is an empty, unevaluated selection with fitness 0
type Chromosome struct {
	genes    []bool
	weight   int
	value    int
	fitness  int
	feasible bool
}

// Evaluate builds a chromosome from genes, copying them
func (p Problem) Evaluate(genes []bool) (Chromosome, error) {
	if len(genes) != len(p.Items) {
		return Chromosome{}, fmt.Errorf("%w: %d genes for %d items", ErrGenomeLength, len(genes), len(p.Items))
	}

	weight, value := p.totals(genes)
	c := Chromosome{
		genes:  append([]bool(nil), genes...),
		weight: weight,
		value:  value,
	}
	if weight <= p.Capacity {
		c.fitness = value
		c.feasible = true
	}
	return c, nil
}

// Len returns the number of genes
func (c Chromosome) Len() int { return len(c.genes) }

// Gene reports whether item i is included; out of range indices report false
func (c Chromosome) Gene(i int) bool {
	return i >= 0 && i < len(c.genes) && c.genes[i]
}

// Genes returns a copy of the gene vector
func (c Chromosome) Genes() []bool {
	return append([]bool(nil), c.genes...)
}

// Fitness is Value when the selection fits the capacity and 0 otherwise
func (c Chromosome) Fitness() int { return c.fitness }

// Weight is the total weight of included items, feasible or not
func (c Chromosome) Weight() int { return c.weight }

// Value is the total value of included items, feasible or not
func (c Chromosome) Value() int { return c.value }

// Feasible reports whether the selection fits the capacity
func (c Chromosome) Feasible() bool { return c.feasible }

// Selected returns the indices of included items in gene order
func (c Chromosome) Selected() []int {
	var idx []int
	for i, g := range c.genes {
		if g {
			idx = append(idx, i)
		}
	}
	return idx
}

// String renders genes as a bit string followed by the fitness, e.g. "101 (360)"
func (c Chromosome) String() string {
	var sb strings.Builder
	for _, g := range c.genes {
		if g {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	fmt.Fprintf(&sb, " (%d)", c.fitness)
	return sb.String()
}
