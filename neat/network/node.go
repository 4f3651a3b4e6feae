// Package network implements the phenotype side of NEAT: nodes,
// connections, and the priority-driven forward-propagation evaluator
// that turns a genome's topology into output values.
package network

import "fmt"

// NeuronType classifies the role a Node plays in the network.
type NeuronType byte

const (
	// SensorNeuron is an input node, including the bias sensor.
	SensorNeuron NeuronType = iota
	// OutputNeuron produces one component of the network's result vector.
	OutputNeuron
	// HiddenNeuron arises from an add-node mutation.
	HiddenNeuron
)

func (t NeuronType) String() string {
	switch t {
	case SensorNeuron:
		return "SENSOR"
	case OutputNeuron:
		return "OUTPUT"
	case HiddenNeuron:
		return "HIDDEN"
	default:
		return "UNKNOWN"
	}
}

// NodeID is a node's identity within its owning genome: a historical
// integer (the innovation number of the connection split that created
// it, or a small sequential value for genesis sensors/outputs) plus a
// disambiguation counter distinguishing repeated splits of the same
// connection within one genome. Two nodes compare equal iff their
// NodeIDs are equal.
type NodeID struct {
	Historical int64
	Dup        int
}

func (id NodeID) String() string {
	if id.Dup == 0 {
		return fmt.Sprintf("%d", id.Historical)
	}
	return fmt.Sprintf("%d.%d", id.Historical, id.Dup)
}

// Node is a single neuron: identity, kind, an optional display name, and
// the two transient scalars used only during evaluation. A Node is
// owned by exactly one genome; copies must be deep.
type Node struct {
	ID   NodeID
	Kind NeuronType
	Name string

	// InputValue accumulates incoming weighted signals between activations.
	InputValue float64
	// OutputValue holds the node's activation result from its last firing.
	OutputValue float64
}

// NewNode creates a Node with the given identity and kind.
func NewNode(id NodeID, kind NeuronType) *Node {
	return &Node{ID: id, Kind: kind}
}

// NewNamedNode creates a Node with a debug display name.
func NewNamedNode(id NodeID, kind NeuronType, name string) *Node {
	return &Node{ID: id, Kind: kind, Name: name}
}

// Clone returns a deep copy of the node, preserving identity and kind
// but resetting the transient evaluation scalars.
func (n *Node) Clone() *Node {
	return &Node{ID: n.ID, Kind: n.Kind, Name: n.Name}
}

// IsSensor reports whether this node is a sensor (including bias).
func (n *Node) IsSensor() bool {
	return n.Kind == SensorNeuron
}

// IsOutput reports whether this node is an output node.
func (n *Node) IsOutput() bool {
	return n.Kind == OutputNeuron
}

func (n *Node) String() string {
	name := n.Name
	if name == "" {
		name = n.ID.String()
	}
	return fmt.Sprintf("[%s node %s]", n.Kind, name)
}
