package genetics

import (
	"github.com/emergent-ai/neatcore/neat/network"
)

// Crossover produces a child genome from g and other by static
// multipoint crossover: the fitter parent is treated as the primary
// donor of structure, matching genes are inherited from either parent
// with equal probability (and disabled with probability
// DisabledInheritanceProb if either parent had them disabled), and
// disjoint/excess genes are inherited only from the fitter parent. When
// both parents have equal fitness, disjoint/excess genes are inherited
// from both (the union), since neither parent can claim to be "more
// fit" structure to prefer.
//
// This is the one genetic operator where parent order matters for
// correctness, not just convention: callers must not swap g and other
// expecting an identical result unless RawFitness is tied. Every
// stochastic choice draws from registry.Rng.
func (g *Genome) Crossover(other *Genome, childID int, registry *Registry) *Genome {
	p1, p2 := g, other
	sameFitness := p1.RawFitness == p2.RawFitness
	if p2.RawFitness > p1.RawFitness {
		p1, p2 = p2, p1
	}

	child := &Genome{
		ID:          childID,
		sensorCount: p1.sensorCount,
		outputCount: p1.outputCount,
		hasBias:     p1.hasBias,
	}

	nodeSet := make(map[network.NodeID]*network.Node)
	for _, n := range p1.Nodes {
		nodeSet[n.ID] = n.Clone()
	}
	if sameFitness {
		for _, n := range p2.Nodes {
			if _, ok := nodeSet[n.ID]; !ok {
				nodeSet[n.ID] = n.Clone()
			}
		}
	}
	// Preserve p1's node ordering (sensor/output prefix first), then
	// append any additional nodes contributed by p2 under equal fitness.
	seen := make(map[network.NodeID]bool, len(nodeSet))
	for _, n := range p1.Nodes {
		child.Nodes = append(child.Nodes, nodeSet[n.ID])
		seen[n.ID] = true
	}
	if sameFitness {
		for _, n := range p2.Nodes {
			if !seen[n.ID] {
				child.Nodes = append(child.Nodes, nodeSet[n.ID])
				seen[n.ID] = true
			}
		}
	}

	a := byInnovation(p1.Connections)
	b := byInnovation(p2.Connections)
	maxInnovB := maxInnovation(b)
	maxInnovA := maxInnovation(a)

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		switch {
		case ca.InnovationNum == cb.InnovationNum:
			chosen := ca
			if registry.Rng.Float64() < 0.5 {
				chosen = cb
			}
			enabled := chosen.Enabled
			if !ca.Enabled || !cb.Enabled {
				enabled = registry.Rng.Float64() >= DisabledInheritanceProb
			}
			child.Connections = append(child.Connections, cloneConnectionFor(chosen, enabled, nodeSet))
			i++
			j++
		case ca.InnovationNum < cb.InnovationNum:
			if ca.InnovationNum <= maxInnovB || sameFitness {
				child.Connections = append(child.Connections, cloneConnectionFor(ca, ca.Enabled, nodeSet))
			}
			i++
		default:
			if sameFitness {
				child.Connections = append(child.Connections, cloneConnectionFor(cb, cb.Enabled, nodeSet))
			}
			j++
		}
	}
	for ; i < len(a); i++ {
		child.Connections = append(child.Connections, cloneConnectionFor(a[i], a[i].Enabled, nodeSet))
	}
	if sameFitness {
		for ; j < len(b); j++ {
			if b[j].InnovationNum > maxInnovA {
				child.Connections = append(child.Connections, cloneConnectionFor(b[j], b[j].Enabled, nodeSet))
			}
		}
	}

	child.rebind()
	return child
}

// cloneConnectionFor clones src with the given enabled flag, using
// nodeSet (by NodeID) to resolve endpoints if the child's node set
// already has the relevant nodes; Crossover's final rebind() pass
// corrects any endpoint not yet present at clone time.
func cloneConnectionFor(src *network.Connection, enabled bool, nodeSet map[network.NodeID]*network.Node) *network.Connection {
	source := src.Source
	target := src.Target
	if s, ok := nodeSet[src.Source.ID]; ok {
		source = s
	}
	if t, ok := nodeSet[src.Target.ID]; ok {
		target = t
	}
	c := network.NewConnection(source, target, src.Weight, src.InnovationNum)
	c.Enabled = enabled
	return c
}
