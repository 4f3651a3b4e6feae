package experiment

import (
	"sort"
	"time"

	"github.com/emergent-ai/neatcore/neat/genetics"
)

// Trial holds statistics about one experiment run: one independently
// constructed population stepped generation by generation until it
// either solves the caller's problem or exhausts its generation budget.
type Trial struct {
	// Id is the trial number within its experiment.
	Id int
	// Generations holds this trial's per-generation statistics in order.
	Generations Generations
	// WinnerGeneration is the first generation that solved the problem,
	// or nil if the trial never solved it.
	WinnerGeneration *Generation

	// Duration is the wall-clock time the whole trial took.
	Duration time.Duration
}

// AvgEpochDuration returns the mean duration of this trial's
// generations, or EmptyDuration if it has none.
func (t *Trial) AvgEpochDuration() time.Duration {
	if len(t.Generations) == 0 {
		return EmptyDuration
	}
	var total time.Duration
	for _, g := range t.Generations {
		total += g.Duration
	}
	return total / time.Duration(len(t.Generations))
}

// BestGenome returns the most fit genome across all of this trial's
// generations. If onlySolvers is true, only genomes from generations
// that met the solving criterion are considered.
func (t *Trial) BestGenome(onlySolvers bool) (*genetics.Genome, bool) {
	var candidates []*genetics.Genome
	for _, g := range t.Generations {
		if g.Best == nil {
			continue
		}
		if onlySolvers && !g.Solved {
			continue
		}
		candidates = append(candidates, g.Best)
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].RawFitness > candidates[j].RawFitness
	})
	return candidates[0], true
}

// Solved reports whether any generation in this trial solved the
// problem.
func (t *Trial) Solved() bool {
	for _, g := range t.Generations {
		if g.Solved {
			return true
		}
	}
	return false
}

// BestFitness returns the best genome's fitness for each generation.
func (t *Trial) BestFitness() Floats {
	x := make(Floats, len(t.Generations))
	for i, g := range t.Generations {
		if g.Best != nil {
			x[i] = g.Best.RawFitness
		}
	}
	return x
}

// Diversity returns the species count for each generation.
func (t *Trial) Diversity() Floats {
	x := make(Floats, len(t.Generations))
	for i, g := range t.Generations {
		x[i] = float64(g.Diversity)
	}
	return x
}

// Average returns the mean fitness and complexity for each generation.
func (t *Trial) Average() (fitness, complexity Floats) {
	fitness = make(Floats, len(t.Generations))
	complexity = make(Floats, len(t.Generations))
	for i, g := range t.Generations {
		fitness[i], complexity[i] = g.Average()
	}
	return fitness, complexity
}

// Trials is a sortable collection of experiment runs by their most
// recent generation's execution time and Id.
type Trials []Trial

func (ts Trials) Len() int      { return len(ts) }
func (ts Trials) Swap(i, j int) { ts[i], ts[j] = ts[j], ts[i] }
func (ts Trials) Less(i, j int) bool {
	ui := ts[i].recentEpochEvalTime()
	uj := ts[j].recentEpochEvalTime()
	if ui.Equal(uj) {
		return ts[i].Id < ts[j].Id
	}
	return ui.Before(uj)
}

func (t *Trial) recentEpochEvalTime() time.Time {
	var u time.Time
	for _, g := range t.Generations {
		if u.Before(g.Executed) {
			u = g.Executed
		}
	}
	return u
}
