package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/lixenwraith/knapsack-ga/knapsack"
	"github.com/lixenwraith/knapsack-ga/parameter"
)

var (
	popFlag        = flag.Int("pop", parameter.GAPoolSize, "Population size (even sizes avoid a wasted offspring)")
	crossoverFlag  = flag.Float64("crossover", parameter.GACrossoverRate, "Crossover probability per parent pair (0-1)")
	mutationFlag   = flag.Float64("mutation", parameter.GAMutationRate, "Mutation probability per gene (0-1)")
	generationFlag = flag.Int("generations", parameter.GAMaxIterations, "Number of generations")
	eliteFlag      = flag.Int("elite", parameter.GAEliteCount, "Best chromosomes carried into each next generation (0 = offspring only)")
	seedFlag       = flag.Uint64("seed", 0, "Random seed (0 = random)")
	debugFlag      = flag.Bool("debug", false, "Write debug log to "+logDir+"/"+logFileName)
	watchFlag      = flag.Bool("watch", false, "Show evolution progress in a terminal view")
	soundFlag      = flag.Bool("sound", false, "Chime on a new best fitness (with -watch)")
)

// Crash handling hooks, replaced in tests
var (
	exit                  = os.Exit
	crashOutput io.Writer = os.Stderr
)

func main() {
	flag.Parse()
	os.Exit(run(os.Stdout, os.Stderr))
}

func run(stdout, stderr io.Writer) int {
	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := knapsack.Config{
		PopulationSize: *popFlag,
		CrossoverRate:  *crossoverFlag,
		MutationRate:   *mutationFlag,
		Generations:    *generationFlag,
		EliteCount:     *eliteFlag,
		Seed:           *seedFlag,
	}
	problem := knapsack.ReferenceProblem()

	var (
		best knapsack.Chromosome
		err  error
	)
	if *watchFlag {
		best, err = runWatch(problem, cfg, *soundFlag)
	} else {
		best, err = runPlain(problem, cfg)
	}
	if err != nil {
		fmt.Fprintf(stderr, "knapsack: %v\n", err)
		return 1
	}

	printReport(stdout, problem, best)
	return 0
}

// runPlain solves without a view; Ctrl-C stops between generations and still reports the best so far
func runPlain(problem knapsack.Problem, cfg knapsack.Config) (knapsack.Chromosome, error) {
	solver, err := knapsack.NewSolver(problem, cfg, knapsack.WithObserver(logGeneration))
	if err != nil {
		return knapsack.Chromosome{}, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := solver.RunContext(ctx)
	if err != nil && ctx.Err() == nil {
		return knapsack.Chromosome{}, err
	}
	if err != nil {
		log.Printf("interrupted, reporting best of generation %d", len(res.History)-1)
	}
	return res.Best, nil
}

// recoverTerminal is deferred on every goroutine that runs while the live view owns the terminal
func recoverTerminal(fini func()) {
	if r := recover(); r != nil {
		fini()
		fmt.Fprintf(crashOutput, "\n\x1b[31mKNAPSACK CRASHED: %v\x1b[0m\n", r)
		fmt.Fprintf(crashOutput, "Stack Trace:\n%s\n", debug.Stack())
		exit(1)
	}
}
