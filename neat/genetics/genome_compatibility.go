package genetics

import (
	"math"
	"sort"

	"github.com/emergent-ai/neatcore/neat/network"
)

// Distance computes the compatibility distance between g and other per
// the disjoint/excess/matching-weight-difference formula. The formula is
// not symmetric in the genomes: the fitter of the two (ties keep g as
// fit) plays the "genome1" role — every one of ITS unmatched genes counts
// as disjoint, never excess — while the less-fit genome's unmatched genes
// split on whether their innovation number falls below the fitter
// genome's maximum (disjoint) or above it (excess). N is taken from the
// fitter genome's connection count alone. The result is
//
//	c1*E/N + c2*D/N + c3*W̄
//
// with N = max(len(fit.Connections)-20, 1). Because fit/less is derived
// from RawFitness rather than call order, g.Distance(other) and
// other.Distance(g) agree whenever the two RawFitness values differ; on
// a tie the receiver is taken as fit, so the two calls can differ.
func (g *Genome) Distance(other *Genome) float64 {
	fit, less := g, other
	if other.RawFitness > g.RawFitness {
		fit, less = other, g
	}

	lessIndex := make(map[int64]*network.Connection, len(less.Connections))
	for _, c := range less.Connections {
		lessIndex[c.InnovationNum] = c
	}
	fitIndex := make(map[int64]*network.Connection, len(fit.Connections))
	for _, c := range fit.Connections {
		fitIndex[c.InnovationNum] = c
	}

	var maxInnovFit int64
	for _, c := range fit.Connections {
		if c.InnovationNum > maxInnovFit {
			maxInnovFit = c.InnovationNum
		}
	}

	var disjoint, excess, matching, weightDiffSum float64

	// fit's unmatched genes are always disjoint, never excess.
	for _, c1 := range fit.Connections {
		if c2, ok := lessIndex[c1.InnovationNum]; ok {
			matching++
			weightDiffSum += math.Abs(c1.Weight - c2.Weight)
		} else {
			disjoint++
		}
	}
	// less's unmatched genes are excess only beyond fit's max innovation.
	for _, c2 := range less.Connections {
		if _, ok := fitIndex[c2.InnovationNum]; ok {
			continue
		}
		if c2.InnovationNum < maxInnovFit {
			disjoint++
		} else {
			excess++
		}
	}

	n := float64(len(fit.Connections)) - CompatLongGenomeOffset
	if n < 1 {
		n = 1
	}

	var meanWeightDiff float64
	if matching > 0 {
		meanWeightDiff = weightDiffSum / matching
	}

	return CompatExcessCoeff*excess/n + CompatDisjointCoeff*disjoint/n + CompatWeightCoeff*meanWeightDiff
}

// SameSpecies reports whether g and other are within the compatibility
// threshold of each other.
func (g *Genome) SameSpecies(other *Genome) bool {
	return g.Distance(other) < CompatThreshold
}

// byInnovation returns conns sorted by ascending innovation number,
// leaving the original slice untouched.
func byInnovation(conns []*network.Connection) []*network.Connection {
	sorted := make([]*network.Connection, len(conns))
	copy(sorted, conns)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].InnovationNum < sorted[j].InnovationNum
	})
	return sorted
}

func maxInnovation(sorted []*network.Connection) int64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)-1].InnovationNum
}
