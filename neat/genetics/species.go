package genetics

import (
	"sort"
)

// Species clusters genomes that are mutually compatible (within
// CompatThreshold of a representative "mascot" genome). A species
// persists across generations together with its BestFitness and
// Staleness: at the start of every epoch Population clears each
// species' member list and re-assigns genomes by walking them against
// each species' mascot in turn (first-match wins), per spec §4.5 stage 2,
// dropping species that end up with no members.
type Species struct {
	ID int

	Mascot  *Genome
	Members []*Genome

	BestFitness    float64
	AverageFitness float64
	Champion       *Genome

	Staleness int
}

// NewSpecies starts a species with founder as both its mascot and
// first member.
func NewSpecies(id int, founder *Genome) *Species {
	return &Species{
		ID:      id,
		Mascot:  founder,
		Members: []*Genome{founder},
	}
}

// Match reports whether candidate belongs in this species, i.e. is
// within CompatThreshold of the mascot.
func (s *Species) Match(candidate *Genome) bool {
	return s.Mascot.SameSpecies(candidate)
}

// Add appends candidate to the species' member list.
func (s *Species) Add(candidate *Genome) {
	s.Members = append(s.Members, candidate)
}

// ShareFitness applies explicit fitness sharing: every member's
// SharedFitness becomes its RawFitness divided by the species size, so
// that a large species does not dominate reproduction purely by virtue
// of being large. It also refreshes AverageFitness and Champion from the
// current member set, and raises BestFitness when the champion improves
// on it.
func (s *Species) ShareFitness() {
	if len(s.Members) == 0 {
		return
	}
	var sum float64
	best := s.Members[0]
	for _, m := range s.Members {
		m.SharedFitness = m.RawFitness / float64(len(s.Members))
		sum += m.RawFitness
		if m.RawFitness > best.RawFitness {
			best = m
		}
	}
	s.AverageFitness = sum / float64(len(s.Members))
	s.updateChampion(best)
}

// updateChampion records best as this generation's champion, raises
// BestFitness when best improves on it, and resets Staleness to zero on
// strict improvement only -- a tie does not count as progress, which is
// what keeps a genuinely stagnant species' staleness counter climbing
// even while its best member is re-selected as champion generation after
// generation.
func (s *Species) updateChampion(best *Genome) {
	first := s.Champion == nil
	s.Champion = best
	if first || best.RawFitness > s.BestFitness {
		s.BestFitness = best.RawFitness
		s.Staleness = 0
		return
	}
	s.Staleness++
}

// RefreshMascot replaces the mascot with a uniformly random current
// member, so the next generation's compatibility test is not anchored
// to a genome that may no longer exist once reproduction replaces the
// whole population.
func (s *Species) RefreshMascot(registry *Registry) {
	if len(s.Members) == 0 {
		return
	}
	s.Mascot = s.Members[registry.Rng.Intn(len(s.Members))]
}

// Purge culls the species' member list down to its fitter half, sorted
// by RawFitness descending, ready for the next generation's
// reproduction pool. A species of size 1 is left untouched: halving a
// singleton would empty it, silently erasing what might be the
// population's sole representative of a valuable niche.
func (s *Species) Purge() {
	if len(s.Members) <= 1 {
		return
	}
	sort.Slice(s.Members, func(i, j int) bool {
		return s.Members[i].RawFitness > s.Members[j].RawFitness
	})
	keep := (len(s.Members) + 1) / 2
	if keep < 1 {
		keep = 1
	}
	s.Members = s.Members[:keep]
}

// IsStale reports whether the species has gone more than
// SpeciesStalenessLimit generations without a strict fitness improvement.
func (s *Species) IsStale() bool {
	return s.Staleness > SpeciesStalenessLimit
}
