package network

import "fmt"

// Connection is a directed, weighted edge between two nodes within the
// owning genome, keyed by its historical innovation number. Ownership:
// a Connection belongs to exactly one genome; the Source/Target node
// pointers must be rewritten to the owning genome's own node instances
// after any copy or crossover — callers should prefer resolving
// Connection.Source/Target by NodeID through the owning genome's node
// table rather than trusting a stale pointer across genomes.
type Connection struct {
	Source *Node
	Target *Node

	Weight        float64
	Enabled       bool
	InnovationNum int64
}

// NewConnection creates an enabled connection between source and target.
func NewConnection(source, target *Node, weight float64, innovationNum int64) *Connection {
	return &Connection{
		Source:        source,
		Target:        target,
		Weight:        weight,
		Enabled:       true,
		InnovationNum: innovationNum,
	}
}

// Clone returns a copy of the connection. The Source/Target pointers
// still point at the original genome's nodes; the caller is responsible
// for rebinding them into the new owning genome (see Genome.rebind).
func (c *Connection) Clone() *Connection {
	clone := *c
	return &clone
}

func (c *Connection) String() string {
	enabled := ""
	if !c.Enabled {
		enabled = " DISABLED"
	}
	return fmt.Sprintf("[Conn (%s -> %s) innov=%d weight=%.3f%s]",
		c.Source.ID, c.Target.ID, c.InnovationNum, c.Weight, enabled)
}
