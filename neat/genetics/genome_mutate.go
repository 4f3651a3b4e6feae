package genetics

import (
	"fmt"

	"github.com/emergent-ai/neatcore/neat"
	gmath "github.com/emergent-ai/neatcore/neat/math"
	"github.com/emergent-ai/neatcore/neat/network"
)

/* ******* MUTATORS ******* */

// Mutate applies the three structural/weight mutation operators to g,
// each independently gated by its own probability, in the order weight
// mutation, add-connection mutation, add-node mutation. This is the
// entry point Population's reproduction stage calls on every freshly
// produced child. Every stochastic draw comes from registry.Rng, so a
// run is reproducible given the same seed.
func (g *Genome) Mutate(registry *Registry) error {
	if registry.Rng.Float64() < WeightMutationProb {
		g.WeightMutation(registry)
	}
	if registry.Rng.Float64() < AddConnectionMutationProb {
		if _, err := g.AddConnectionMutation(registry); err != nil {
			return err
		}
	}
	if registry.Rng.Float64() < AddNodeMutationProb {
		if _, err := g.AddNodeMutation(registry); err != nil {
			return err
		}
	}
	return nil
}

// WeightMutation perturbs or replaces each connection's weight
// independently: with probability WeightPerturbProb the weight is
// nudged by a uniform sample from [-WeightPerturbRange,
// WeightPerturbRange] and clamped to [-1, 1]; otherwise it is replaced
// outright by a fresh uniform sample from [-1, 1].
func (g *Genome) WeightMutation(registry *Registry) {
	for _, c := range g.Connections {
		if registry.Rng.Float64() < WeightPerturbProb {
			delta := gmath.RandFloatRange(registry.Rng, -WeightPerturbRange, WeightPerturbRange)
			c.Weight = gmath.ClampWeight(c.Weight + delta)
		} else {
			c.Weight = gmath.RandFloatRange(registry.Rng, -1, 1)
		}
	}
}

// AddConnectionMutation picks a uniformly random (u, v) pair with u not
// an output, v not a sensor, u != v, and (u, v) not already an enabled
// connection, and inserts a new enabled connection with a random
// weight, consulting registry for its innovation number. If every such
// pair is already connected, this is a no-op (the "fully connected"
// case of spec §7) and returns false without error.
func (g *Genome) AddConnectionMutation(registry *Registry) (bool, error) {
	var candidates [][2]*network.Node
	for _, u := range g.Nodes {
		if u.IsOutput() {
			continue
		}
		for _, v := range g.Nodes {
			if v.IsSensor() || u == v {
				continue
			}
			if g.HasEnabledConnection(u.ID, v.ID) {
				continue
			}
			candidates = append(candidates, [2]*network.Node{u, v})
		}
	}
	if len(candidates) == 0 {
		neat.DebugLog(fmt.Sprintf("genetics: genome %d is fully connected, add-connection mutation is a no-op", g.ID))
		return false, nil
	}

	pick := candidates[registry.Rng.Intn(len(candidates))]
	u, v := pick[0], pick[1]
	innov := registry.Obtain(u.ID, v.ID)
	weight := gmath.RandFloatRange(registry.Rng, -1, 1)
	g.Connections = append(g.Connections, network.NewConnection(u, v, weight, innov))
	return true, nil
}

// AddNodeMutation picks a uniformly random enabled connection, disables
// it, and splits it with a new hidden node: the node's historical
// identifier is the disabled connection's innovation number (the
// disambiguation counter distinguishes repeated splits of the same edge
// within one genome), and two new enabled connections are inserted --
// source->new with weight 1, new->target with the disabled connection's
// original weight -- each drawing a fresh innovation number from
// registry. If no enabled connection exists, this falls through to
// AddConnectionMutation per spec §7.
func (g *Genome) AddNodeMutation(registry *Registry) (bool, error) {
	var enabled []*network.Connection
	for _, c := range g.Connections {
		if c.Enabled {
			enabled = append(enabled, c)
		}
	}
	if len(enabled) == 0 {
		return g.AddConnectionMutation(registry)
	}

	split := enabled[registry.Rng.Intn(len(enabled))]
	split.Enabled = false

	dup := 0
	for _, n := range g.Nodes {
		if n.ID.Historical == split.InnovationNum {
			dup++
		}
	}
	newID := network.NodeID{Historical: split.InnovationNum, Dup: dup}
	newNode := network.NewNode(newID, network.HiddenNeuron)
	if err := g.addHiddenNode(newNode); err != nil {
		return false, err
	}

	inInnov := registry.Obtain(split.Source.ID, newNode.ID)
	outInnov := registry.Obtain(newNode.ID, split.Target.ID)
	g.Connections = append(g.Connections,
		network.NewConnection(split.Source, newNode, 1.0, inInnov),
		network.NewConnection(newNode, split.Target, split.Weight, outInnov),
	)
	return true, nil
}
