// Package genetics implements the genome, its mutation and crossover
// operators, speciation, and the population reproduction loop of the
// NEAT core.
package genetics

import (
	"fmt"

	"github.com/emergent-ai/neatcore/neat"
	gmath "github.com/emergent-ai/neatcore/neat/math"
	"github.com/emergent-ai/neatcore/neat/network"
	"github.com/pkg/errors"
)

// Genome is the primary unit of selection: an ordered node list with
// sensors first (including an optional bias sensor as the last sensor),
// then outputs, then hidden nodes appended as they arise, plus an
// unordered connection set. The sensor prefix length and output block
// length are fixed at construction and never change afterward.
type Genome struct {
	ID int

	Nodes       []*network.Node
	Connections []*network.Connection

	RawFitness    float64
	SharedFitness float64

	sensorCount int // includes the bias sensor, if any
	outputCount int
	hasBias     bool
}

// NewGenome constructs a founding genome for the given Options, drawing
// any new-connection innovation numbers from registry. initState selects
// the genesis topology: TopologyNone leaves the connection set empty,
// TopologyOneLink performs a single add-connection
// mutation, and TopologyAllLinked connects every sensor (including bias)
// to every output with a random weight in [-1, 1].
func NewGenome(id int, opts *neat.Options, registry *Registry) (*Genome, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options for genome construction")
	}

	g := &Genome{
		ID:          id,
		sensorCount: opts.TotalSensors(),
		outputCount: opts.Output,
		hasBias:     opts.Bias,
	}

	var historical int64
	for i := 0; i < opts.Sensor; i++ {
		historical++
		name := ""
		if i < len(opts.SensorName) {
			name = opts.SensorName[i]
		}
		g.Nodes = append(g.Nodes, network.NewNamedNode(network.NodeID{Historical: historical}, network.SensorNeuron, name))
	}
	if opts.Bias {
		historical++
		g.Nodes = append(g.Nodes, network.NewNamedNode(network.NodeID{Historical: historical}, network.SensorNeuron, "bias"))
	}
	for i := 0; i < opts.Output; i++ {
		historical++
		name := ""
		if i < len(opts.OutputName) {
			name = opts.OutputName[i]
		}
		g.Nodes = append(g.Nodes, network.NewNamedNode(network.NodeID{Historical: historical}, network.OutputNeuron, name))
	}

	switch opts.InitState {
	case neat.TopologyNone:
		// leave disconnected
	case neat.TopologyAllLinked:
		for _, s := range g.Sensors() {
			for _, o := range g.Outputs() {
				innov := registry.Obtain(s.ID, o.ID)
				weight := gmath.RandFloatRange(registry.Rng, -1, 1)
				g.Connections = append(g.Connections, network.NewConnection(s, o, weight, innov))
			}
		}
	case neat.TopologyOneLink:
		if _, err := g.AddConnectionMutation(registry); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unknown initState: %q", opts.InitState)
	}

	return g, nil
}

// Sensors returns the genome's sensor prefix, bias last if present.
func (g *Genome) Sensors() []*network.Node {
	return g.Nodes[:g.sensorCount]
}

// Outputs returns the genome's output block.
func (g *Genome) Outputs() []*network.Node {
	return g.Nodes[g.sensorCount : g.sensorCount+g.outputCount]
}

// Hidden returns nodes introduced by add-node mutations.
func (g *Genome) Hidden() []*network.Node {
	return g.Nodes[g.sensorCount+g.outputCount:]
}

// HasBias reports whether this genome's last sensor is the bias sensor.
func (g *Genome) HasBias() bool {
	return g.hasBias
}

// NodeByID returns the node with the given identifier, or nil.
func (g *Genome) NodeByID(id network.NodeID) *network.Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// ConnectionByInnovation returns the connection with the given
// innovation number, or nil.
func (g *Genome) ConnectionByInnovation(innov int64) *network.Connection {
	for _, c := range g.Connections {
		if c.InnovationNum == innov {
			return c
		}
	}
	return nil
}

// HasEnabledConnection reports whether an enabled connection already
// exists from source to target.
func (g *Genome) HasEnabledConnection(source, target network.NodeID) bool {
	for _, c := range g.Connections {
		if c.Enabled && c.Source.ID == source && c.Target.ID == target {
			return true
		}
	}
	return false
}

// Evaluate forward-propagates inputs through the genome's phenotype and
// returns the output values in declaration order. See
// network.Evaluate for the evaluation algorithm and its statefulness
// contract across calls.
func (g *Genome) Evaluate(inputs []float64) ([]float64, error) {
	return network.Evaluate(g.Connections, g.Sensors(), g.Outputs(), inputs, g.hasBias)
}

// ClearNodes zeroes every node's transient input accumulator. Callers
// that do not rely on recurrent state across Evaluate calls must invoke
// this between calls.
func (g *Genome) ClearNodes() {
	network.ClearNodes(g.Nodes)
}

// Clone returns a deep copy of the genome: every node and connection is
// duplicated and connection endpoints are rebound to the clone's own
// node instances.
func (g *Genome) Clone(newID int) *Genome {
	clone := &Genome{
		ID:          newID,
		sensorCount: g.sensorCount,
		outputCount: g.outputCount,
		hasBias:     g.hasBias,
	}
	for _, n := range g.Nodes {
		clone.Nodes = append(clone.Nodes, n.Clone())
	}
	for _, c := range g.Connections {
		cc := c.Clone()
		clone.Connections = append(clone.Connections, cc)
	}
	clone.rebind()
	return clone
}

// rebind rewrites every connection's Source/Target pointers to point
// into this genome's own node instances, looked up by NodeID. This is
// the identifier-keyed rebinding step spec §9 calls for after any copy
// or crossover, so that connections never retain a dangling reference
// into a different genome.
func (g *Genome) rebind() {
	index := make(map[network.NodeID]*network.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		index[n.ID] = n
	}
	for _, c := range g.Connections {
		if s, ok := index[c.Source.ID]; ok {
			c.Source = s
		}
		if t, ok := index[c.Target.ID]; ok {
			c.Target = t
		}
	}
}

// addHiddenNode appends a hidden node to the node list, preserving the
// invariant that hidden nodes always come after the sensor/output
// prefix. It returns an error if a node with the same identifier
// already exists in this genome (hidden-node identifiers must be
// unique within the genome).
func (g *Genome) addHiddenNode(n *network.Node) error {
	if g.NodeByID(n.ID) != nil {
		return fmt.Errorf("genetics: duplicate hidden node id %s in genome %d", n.ID, g.ID)
	}
	g.Nodes = append(g.Nodes, n)
	return nil
}

// randomNode returns a uniformly random node from the genome, drawing
// from registry's seeded random source.
func (g *Genome) randomNode(registry *Registry) *network.Node {
	return g.Nodes[registry.Rng.Intn(len(g.Nodes))]
}

func (g *Genome) String() string {
	return fmt.Sprintf("Genome(%d) nodes=%d connections=%d fitness=%.4f/%.4f",
		g.ID, len(g.Nodes), len(g.Connections), g.RawFitness, g.SharedFitness)
}
