package experiment

import (
	"sort"
	"time"

	"github.com/emergent-ai/neatcore/neat/genetics"
)

// Generation holds the statistics collected for one generation of one
// trial: fitness/complexity spread across the population's current
// species, and whether this generation's best genome met the solving
// criterion the caller supplied to Execute.
type Generation struct {
	// Id is the generation number within its trial.
	Id int
	// Executed is when this generation's evaluation completed.
	Executed time.Time
	// Duration is the wall-clock time this generation's Step took.
	Duration time.Duration
	// Best is the fittest genome across every species this generation.
	Best *genetics.Genome
	// Solved reports whether Best met the caller's solving criterion.
	Solved bool

	// Fitness holds each species' best raw fitness this generation.
	Fitness Floats
	// Complexity holds each species' best genome's connection count.
	Complexity Floats

	// Diversity is the number of species present at generation end.
	Diversity int

	// TrialId is the trial this generation was evaluated in.
	TrialId int
}

// FillPopulationStatistics records per-species fitness/complexity
// spread from pop's current state, and identifies this generation's
// best genome across all species.
func (g *Generation) FillPopulationStatistics(pop *genetics.Population) {
	g.Diversity = len(pop.Species)
	g.Fitness = make(Floats, g.Diversity)
	g.Complexity = make(Floats, g.Diversity)

	var best *genetics.Genome
	for i, sp := range pop.Species {
		if len(sp.Members) == 0 {
			continue
		}
		members := append([]*genetics.Genome(nil), sp.Members...)
		sort.Slice(members, func(a, b int) bool {
			return members[a].RawFitness > members[b].RawFitness
		})
		g.Fitness[i] = members[0].RawFitness
		g.Complexity[i] = float64(len(members[0].Connections))
		if best == nil || members[0].RawFitness > best.RawFitness {
			best = members[0]
		}
	}
	g.Best = best
}

// Average returns the mean fitness and complexity across this
// generation's species.
func (g *Generation) Average() (fitness, complexity float64) {
	return g.Fitness.Mean(), g.Complexity.Mean()
}

// Generations is a sortable collection of generations by execution time
// and Id.
type Generations []Generation

func (gs Generations) Len() int      { return len(gs) }
func (gs Generations) Swap(i, j int) { gs[i], gs[j] = gs[j], gs[i] }
func (gs Generations) Less(i, j int) bool {
	if gs[i].Executed.Equal(gs[j].Executed) {
		return gs[i].Id < gs[j].Id
	}
	return gs[i].Executed.Before(gs[j].Executed)
}
