package genetics

import (
	"testing"

	"github.com/emergent-ai/neatcore/neat/network"
	"github.com/stretchr/testify/assert"
)

func TestRegistryObtainIsStableAndDeduped(t *testing.T) {
	r := NewRegistry(2, 1)
	a := network.NodeID{Historical: 1}
	b := network.NodeID{Historical: 2}
	c := network.NodeID{Historical: 3}

	n1 := r.Obtain(a, b)
	n2 := r.Obtain(a, b)
	assert.Equal(t, n1, n2)

	n3 := r.Obtain(a, c)
	assert.NotEqual(t, n1, n3)

	// order matters: (b, a) is a distinct pair from (a, b)
	n4 := r.Obtain(b, a)
	assert.NotEqual(t, n1, n4)

	assert.Equal(t, 3, r.Size())
}

func TestRegistryInitialCounter(t *testing.T) {
	r := NewRegistry(3, 2)
	first := r.Obtain(network.NodeID{Historical: 1}, network.NodeID{Historical: 2})
	assert.Equal(t, int64(6), first)
}
