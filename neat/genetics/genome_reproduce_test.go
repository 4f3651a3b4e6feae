package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossoverIdentityWithSelf(t *testing.T) {
	registry := NewRegistry(3, 1)
	g, err := NewGenome(1, testOptions(), registry)
	require.NoError(t, err)
	g.RawFitness = 1.0

	child := g.Crossover(g, 2, registry)
	assert.Equal(t, len(g.Nodes), len(child.Nodes))
	assert.Equal(t, len(g.Connections), len(child.Connections))
	for _, c := range child.Connections {
		assert.NotNil(t, g.ConnectionByInnovation(c.InnovationNum))
	}
}

func TestCrossoverChildHasValidSensorOutputPrefix(t *testing.T) {
	registry := NewRegistry(3, 1)
	g1, err := NewGenome(1, testOptions(), registry)
	require.NoError(t, err)
	g2, err := NewGenome(2, testOptions(), registry)
	require.NoError(t, err)
	g1.RawFitness = 2.0
	g2.RawFitness = 1.0

	_, err = g2.AddNodeMutation(registry)
	require.NoError(t, err)

	child := g1.Crossover(g2, 3, registry)
	assert.Len(t, child.Sensors(), len(g1.Sensors()))
	assert.Len(t, child.Outputs(), len(g1.Outputs()))
	for _, c := range child.Connections {
		assert.NotNil(t, child.NodeByID(c.Source.ID))
		assert.NotNil(t, child.NodeByID(c.Target.ID))
	}
}

func TestCrossoverEvaluatesWithoutError(t *testing.T) {
	registry := NewRegistry(3, 1)
	g1, err := NewGenome(1, testOptions(), registry)
	require.NoError(t, err)
	g2, err := NewGenome(2, testOptions(), registry)
	require.NoError(t, err)
	g1.RawFitness = 1.0
	g2.RawFitness = 1.0

	child := g1.Crossover(g2, 3, registry)
	out, err := child.Evaluate([]float64{0.5, 0.5})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestCrossoverEqualFitnessUnionsDisjointGenes(t *testing.T) {
	registry := NewRegistry(3, 1)
	g1, err := NewGenome(1, testOptions(), registry)
	require.NoError(t, err)
	g2 := g1.Clone(2)
	g1.RawFitness = 1.0
	g2.RawFitness = 1.0

	_, err = g2.AddNodeMutation(registry)
	require.NoError(t, err)

	child := g1.Crossover(g2, 3, registry)
	assert.GreaterOrEqual(t, len(child.Connections), len(g1.Connections))
}
