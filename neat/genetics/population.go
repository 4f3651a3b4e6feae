package genetics

import (
	"github.com/emergent-ai/neatcore/neat"
	gmath "github.com/emergent-ai/neatcore/neat/math"
	"github.com/pkg/errors"
)

// FitnessFunc scores a genome; it must be pure with respect to the
// genome other than through Evaluate/ClearNodes, and must return a
// non-negative scalar.
type FitnessFunc func(*Genome) (float64, error)

// GenerationStats is the snapshot Population.Step appends to History on
// every call: enough to drive telemetry (experiment package) without
// requiring callers to keep their own bookkeeping.
type GenerationStats struct {
	Generation      int
	BestFitness     float64
	AverageFitness  float64
	SpeciesCount    int
	GlobalStaleness int
}

// Population owns the full genome list, the current species
// partitioning, and the single innovation registry shared across every
// genetic operator. Its Step method runs exactly one generation's
// twelve-stage pipeline.
type Population struct {
	Options  *neat.Options
	Registry *Registry

	Genomes []*Genome
	Species []*Species

	Generation      int
	GlobalBest      *Genome
	GlobalStaleness int

	History []GenerationStats

	nextGenomeID  int
	nextSpeciesID int
	evaluator     FitnessEvaluator
}

// NewPopulation constructs a founding population of opts.Demography
// genomes, all built with the same initial topology, sharing a single
// fresh innovation registry. evaluator controls whether fitness
// evaluation (stage 1 of Step) runs sequentially or across a worker
// pool; pass nil for SequentialFitnessEvaluator.
func NewPopulation(opts *neat.Options, evaluator FitnessEvaluator) (*Population, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options for population construction")
	}
	if evaluator == nil {
		evaluator = SequentialFitnessEvaluator{}
	}

	var registry *Registry
	if opts.Seed != 0 {
		registry = NewSeededRegistry(opts.TotalSensors(), opts.Output, opts.Seed)
	} else {
		registry = NewRegistry(opts.TotalSensors(), opts.Output)
	}
	p := &Population{
		Options:   opts,
		Registry:  registry,
		evaluator: evaluator,
	}

	for i := 0; i < opts.Demography; i++ {
		g, err := NewGenome(p.nextGenomeID, opts, registry)
		if err != nil {
			return nil, errors.Wrapf(err, "constructing founding genome %d", i)
		}
		p.nextGenomeID++
		p.Genomes = append(p.Genomes, g)
	}
	return p, nil
}

// BestSoFar returns the best genome ever seen by this population, or
// nil if Step has never been called.
func (p *Population) BestSoFar() *Genome {
	return p.GlobalBest
}

// Evaluate feeds inputs through every genome in the population without
// recording fitness, purely for interactive debugging of a population's
// current behavior spread; it does not mutate Genomes, Species, or
// History.
func (p *Population) Evaluate(inputs []float64) error {
	for _, g := range p.Genomes {
		if _, err := g.Evaluate(inputs); err != nil {
			return err
		}
		g.ClearNodes()
	}
	return nil
}

// Step runs one full generation: fitness evaluation, speciation,
// fitness sharing, champion/staleness bookkeeping, purge, stagnation
// recovery, mascot refresh, and reproduction, in that strictly ordered
// sequence. If fitnessFn returns an error for any genome, Step returns
// it immediately and leaves Population state exactly as it was before
// the call (the current generation is abandoned, per the caller-raises
// error policy).
func (p *Population) Step(fitnessFn FitnessFunc) error {
	scored, err := p.evaluator.Evaluate(p.Genomes, fitnessFn)
	if err != nil {
		return err
	}
	for i, g := range p.Genomes {
		g.RawFitness = scored[i]
	}

	p.speciate()

	for _, sp := range p.Species {
		sp.ShareFitness()
	}

	var globalImproved bool
	for _, sp := range p.Species {
		if p.GlobalBest == nil || sp.BestFitness > p.GlobalBest.RawFitness {
			p.GlobalBest = sp.Champion
			globalImproved = true
		}
	}
	if globalImproved {
		p.GlobalStaleness = 0
	} else {
		p.GlobalStaleness++
	}

	// Elite champions are snapshotted here, by value, because
	// purgeStaleSpecies/Purge/recoverFromStagnation below can drop the
	// species that earned elitism; once a champion is captured its
	// elitism is unconditional regardless of what happens to its species.
	var elite []*Genome
	var weightedSum, weightTotal float64
	for _, sp := range p.Species {
		if len(sp.Members) >= ElitismMinSpeciesSize {
			elite = append(elite, sp.Champion)
		}
		weightedSum += sp.AverageFitness * float64(len(sp.Members))
		weightTotal += float64(len(sp.Members))
	}
	var weightedAverage float64
	if weightTotal > 0 {
		weightedAverage = weightedSum / weightTotal
	}

	p.purgeStaleSpecies()
	for _, sp := range p.Species {
		sp.Purge()
	}

	if p.GlobalStaleness > PopulationStalenessLimit {
		p.recoverFromStagnation()
		p.GlobalStaleness = 0
	}

	for _, sp := range p.Species {
		sp.RefreshMascot(p.Registry)
	}

	next, err := p.reproduce(elite)
	if err != nil {
		return err
	}
	p.Genomes = next

	p.Generation++
	p.History = append(p.History, GenerationStats{
		Generation:      p.Generation,
		BestFitness:     p.GlobalBest.RawFitness,
		AverageFitness:  weightedAverage,
		SpeciesCount:    len(p.Species),
		GlobalStaleness: p.GlobalStaleness,
	})
	return nil
}

// speciate clears every species' member list and re-partitions
// p.Genomes in insertion order, placing each genome into the first
// species whose mascot it matches; genomes matching none start a new
// species. Empty species (no genome matched this round) are dropped.
func (p *Population) speciate() {
	for _, sp := range p.Species {
		sp.Members = nil
	}
	for _, g := range p.Genomes {
		placed := false
		for _, sp := range p.Species {
			if sp.Match(g) {
				sp.Add(g)
				placed = true
				break
			}
		}
		if !placed {
			p.nextSpeciesID++
			p.Species = append(p.Species, NewSpecies(p.nextSpeciesID, g))
		}
	}
	var kept []*Species
	for _, sp := range p.Species {
		if len(sp.Members) > 0 {
			kept = append(kept, sp)
		}
	}
	p.Species = kept
}

// purgeStaleSpecies drops every species whose staleness exceeds
// SpeciesStalenessLimit, except the one (if any) currently holding the
// all-time global best genome -- stagnation pressure must never delete
// the population's best-known solution out from under it.
func (p *Population) purgeStaleSpecies() {
	var kept []*Species
	for _, sp := range p.Species {
		if sp.IsStale() && !speciesHolds(sp, p.GlobalBest) {
			continue
		}
		kept = append(kept, sp)
	}
	p.Species = kept
}

func speciesHolds(sp *Species, g *Genome) bool {
	if g == nil {
		return false
	}
	for _, m := range sp.Members {
		if m == g {
			return true
		}
	}
	return false
}

// recoverFromStagnation keeps only the top StagnationSurvivorSpecies
// species by average fitness, dropping the rest, when the population as
// a whole has gone PopulationStalenessLimit generations without
// improvement.
func (p *Population) recoverFromStagnation() {
	if len(p.Species) <= StagnationSurvivorSpecies {
		return
	}
	ranked := append([]*Species(nil), p.Species...)
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].AverageFitness > ranked[j-1].AverageFitness; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	p.Species = ranked[:StagnationSurvivorSpecies]
}

// reproduce fills a new generation of size Options.Demography: elite
// champions (snapshotted by Step before purge/stagnation-recovery could
// drop their species) are copied in verbatim first, then the remainder
// is filled by clone-and-mutate (CloneAndMutateRate of the time, drawn
// proportionally from the whole population's shared fitness) or
// crossover (the rest), with InterspeciesMateRate probability of
// drawing both crossover parents from the whole population instead of
// one species.
func (p *Population) reproduce(elite []*Genome) ([]*Genome, error) {
	var next []*Genome
	for _, champion := range elite {
		next = append(next, champion.Clone(p.nextGenomeID))
		p.nextGenomeID++
	}

	for len(next) < p.Options.Demography {
		var child *Genome
		if p.Registry.Rng.Float64() < CloneAndMutateRate {
			parent := p.selectFromWholePopulation()
			if parent == nil {
				break
			}
			child = parent.Clone(p.nextGenomeID)
		} else {
			var p1, p2 *Genome
			if p.Registry.Rng.Float64() < InterspeciesMateRate {
				p1 = p.selectFromWholePopulation()
				p2 = p.selectFromWholePopulation()
			} else {
				sp := p.selectSpeciesByAverageFitness()
				if sp == nil {
					p1 = p.selectFromWholePopulation()
					p2 = p.selectFromWholePopulation()
				} else {
					p1 = selectFromSpecies(sp, p.Registry)
					p2 = selectFromSpecies(sp, p.Registry)
				}
			}
			if p1 == nil || p2 == nil {
				break
			}
			child = p1.Crossover(p2, p.nextGenomeID, p.Registry)
		}
		p.nextGenomeID++
		if err := child.Mutate(p.Registry); err != nil {
			return nil, err
		}
		next = append(next, child)
	}
	return next, nil
}

// selectFromWholePopulation performs fitness-proportional sampling over
// every genome's SharedFitness, falling back to uniform selection if
// every genome's shared fitness is zero (the degenerate-selection
// policy).
func (p *Population) selectFromWholePopulation() *Genome {
	if len(p.Genomes) == 0 {
		return nil
	}
	weights := make([]float64, len(p.Genomes))
	for i, g := range p.Genomes {
		weights[i] = g.SharedFitness
	}
	idx := weightedChoice(weights, p.Registry)
	return p.Genomes[idx]
}

// selectSpeciesByAverageFitness performs fitness-proportional sampling
// over species AverageFitness, falling back to uniform selection if
// every species has zero average fitness.
func (p *Population) selectSpeciesByAverageFitness() *Species {
	if len(p.Species) == 0 {
		return nil
	}
	weights := make([]float64, len(p.Species))
	for i, sp := range p.Species {
		weights[i] = sp.AverageFitness
	}
	idx := weightedChoice(weights, p.Registry)
	return p.Species[idx]
}

// selectFromSpecies performs fitness-proportional sampling over a
// single species' members, falling back to uniform selection if every
// member's shared fitness is zero.
func selectFromSpecies(sp *Species, registry *Registry) *Genome {
	if len(sp.Members) == 0 {
		return nil
	}
	weights := make([]float64, len(sp.Members))
	for i, m := range sp.Members {
		weights[i] = m.SharedFitness
	}
	idx := weightedChoice(weights, registry)
	return sp.Members[idx]
}

// weightedChoice performs fitness-proportional sampling over weights via
// SingleRouletteThrow, falling back to a uniform draw on the
// degenerate-selection case (every weight zero).
func weightedChoice(weights []float64, registry *Registry) int {
	idx := gmath.SingleRouletteThrow(registry.Rng, weights)
	if idx < 0 {
		return registry.Rng.Intn(len(weights))
	}
	return idx
}
