package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/knapsack-ga/knapsack"
	"github.com/lixenwraith/knapsack-ga/parameter"
)

// runWatch solves on a background goroutine and renders every generation until the user quits
func runWatch(problem knapsack.Problem, cfg knapsack.Config, sound bool) (knapsack.Chromosome, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return knapsack.Chromosome{}, err
	}
	if err := screen.Init(); err != nil {
		return knapsack.Chromosome{}, err
	}
	defer screen.Fini()
	defer recoverTerminal(screen.Fini)

	var bell *chime
	if sound {
		bell = newChime()
		defer bell.close()
	}

	return watch(screen, problem, cfg, bell)
}

// runner is the part of the solver the live view drives
type runner interface {
	RunContext(ctx context.Context) (knapsack.Result, error)
}

type outcome struct {
	res knapsack.Result
	err error
}

// startSolver runs r on its own goroutine; a panic there restores the terminal through fini
func startSolver(ctx context.Context, r runner, fini func()) <-chan outcome {
	done := make(chan outcome, 1)
	go func() {
		defer recoverTerminal(fini)
		res, err := r.RunContext(ctx)
		done <- outcome{res: res, err: err}
	}()
	return done
}

// watch drives the view on an initialized screen; the caller owns Fini
func watch(screen tcell.Screen, problem knapsack.Problem, cfg knapsack.Config, bell *chime) (knapsack.Chromosome, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan knapsack.GenerationReport, parameter.WatchReportBuffer)
	solver, err := knapsack.NewSolver(problem, cfg, knapsack.WithObserver(func(r knapsack.GenerationReport) {
		logGeneration(r)
		select {
		case reports <- r:
		case <-ctx.Done():
			return
		}
		select {
		case <-time.After(parameter.WatchFrameDelay):
		case <-ctx.Done():
		}
	}))
	if err != nil {
		return knapsack.Chromosome{}, err
	}

	done := startSolver(ctx, solver, screen.Fini)

	quit := make(chan struct{})
	defer close(quit)
	events := make(chan tcell.Event, 16)
	go func() {
		defer recoverTerminal(screen.Fini)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	view := newWatchView(screen, problem, cfg.Generations)
	view.draw()

	var (
		result   knapsack.Result
		running  = true
		quitting bool
	)
	for {
		select {
		case r := <-reports:
			if view.update(r) {
				bell.play(parameter.ChimeImproveHz)
			}
			view.draw()

		case o := <-done:
			running = false
			result = o.res
			for drained := false; !drained; {
				select {
				case r := <-reports:
					view.update(r)
				default:
					drained = true
				}
			}
			if o.err != nil && !errors.Is(o.err, context.Canceled) {
				return knapsack.Chromosome{}, o.err
			}
			if quitting {
				return result.Best, nil
			}
			view.finish(o.err)
			bell.play(parameter.ChimeDoneHz)
			view.draw()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					if !running {
						return result.Best, nil
					}
					// Solver stops at the next generation boundary and reports through done
					quitting = true
					cancel()
				}
			case *tcell.EventResize:
				screen.Sync()
				view.draw()
			}
		}
	}
}

// watchView renders solver progress onto a tcell screen
type watchView struct {
	screen      tcell.Screen
	problem     knapsack.Problem
	generations int

	last     knapsack.GenerationReport
	bests    []int
	bestSeen int
	started  bool
	finished bool
	err      error
}

func newWatchView(screen tcell.Screen, problem knapsack.Problem, generations int) *watchView {
	return &watchView{
		screen:      screen,
		problem:     problem,
		generations: generations,
		bests:       make([]int, 0, generations+1),
	}
}

// update records a report and returns true when it beats every earlier generation
// Generation 0 only sets the baseline
func (v *watchView) update(r knapsack.GenerationReport) bool {
	improved := v.started && r.Stats.BestScore > v.bestSeen
	if !v.started || improved {
		v.bestSeen = r.Stats.BestScore
	}
	v.started = true
	v.last = r
	v.bests = append(v.bests, r.Stats.BestScore)
	return improved
}

func (v *watchView) finish(err error) {
	v.finished = true
	v.err = err
}

func (v *watchView) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()

	plain := tcell.StyleDefault
	header := plain.Bold(true)
	dim := plain.Foreground(tcell.ColorGray)
	good := plain.Foreground(tcell.ColorGreen)

	y := parameter.TopMargin
	y = v.line(y, header, "Knapsack GA  capacity %d  items %d", v.problem.Capacity, len(v.problem.Items))

	if v.started {
		r := v.last
		y = v.line(y, dim, "Run %s", r.RunID)
		y = v.line(y, plain, "Generation %d / %d", r.Generation, v.generations)
		y = v.line(y, plain, "Best %d  Avg %.1f  Worst %d", r.Stats.BestScore, r.Stats.AverageScore, r.Stats.WorstScore)
		y = v.line(y, plain, "Genes %s  weight %d / %d", r.Best, r.Best.Weight(), v.problem.Capacity)
		y++
		y = v.line(y, good, "%s", sparkline(v.bests, width-2*parameter.LeftMargin))
		y++

		for i, item := range v.problem.Items {
			if y >= height-1 {
				break
			}
			mark, style := "[ ]", plain
			if r.Best.Gene(i) {
				mark, style = "[x]", good
			}
			y = v.line(y, style, "%s Item %d: weight = %d, value = %d", mark, i+1, item.Weight, item.Value)
		}
	}

	status := "running, q to stop"
	switch {
	case v.finished && v.err != nil:
		status = fmt.Sprintf("stopped: %v, q to exit", v.err)
	case v.finished:
		status = "done, q to exit"
	case !v.started:
		status = "starting"
	}
	v.text(parameter.LeftMargin, height-1, dim, status)

	v.screen.Show()
}

func (v *watchView) line(y int, style tcell.Style, format string, args ...any) int {
	v.text(parameter.LeftMargin, y, style, fmt.Sprintf(format, args...))
	return y + 1
}

func (v *watchView) text(x, y int, style tcell.Style, s string) {
	width, height := v.screen.Size()
	if y < 0 || y >= height {
		return
	}
	for _, r := range s {
		if x >= width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// sparkline renders the most recent width values scaled to the largest of them
func sparkline(values []int, width int) string {
	if width <= 0 || len(values) == 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	levels := []rune(parameter.SparklineRunes)
	peak := 0
	for _, v := range values {
		peak = max(peak, v)
	}

	var sb strings.Builder
	for _, v := range values {
		idx := 0
		if peak > 0 && v > 0 {
			idx = v * (len(levels) - 1) / peak
		}
		sb.WriteRune(levels[idx])
	}
	return sb.String()
}
