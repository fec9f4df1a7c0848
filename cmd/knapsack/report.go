package main

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lixenwraith/knapsack-ga/knapsack"
)

// printReport lists the included items in gene order followed by the total fitness
func printReport(w io.Writer, problem knapsack.Problem, best knapsack.Chromosome) {
	p := message.NewPrinter(language.English)

	p.Fprintln(w, "Best solution:")
	for _, i := range best.Selected() {
		item := problem.Items[i]
		p.Fprintf(w, "Item %d: weight = %d, value = %d\n", i+1, item.Weight, item.Value)
	}
	p.Fprintf(w, "Total value: %d\n", best.Fitness())
}
