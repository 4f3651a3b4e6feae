package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeciesMatchUsesMascotDistance(t *testing.T) {
	registry := NewRegistry(3, 1)
	founder, err := NewGenome(1, testOptions(), registry)
	require.NoError(t, err)
	sp := NewSpecies(1, founder)

	sibling := founder.Clone(2)
	assert.True(t, sp.Match(sibling))

	stranger := founder.Clone(3)
	_, err = stranger.AddNodeMutation(registry)
	require.NoError(t, err)
	_, err = stranger.AddNodeMutation(registry)
	require.NoError(t, err)
	_, err = stranger.AddNodeMutation(registry)
	require.NoError(t, err)
	assert.False(t, sp.Match(stranger))
}

func TestShareFitnessDividesByMemberCount(t *testing.T) {
	registry := NewRegistry(3, 1)
	founder, err := NewGenome(1, testOptions(), registry)
	require.NoError(t, err)
	sibling := founder.Clone(2)
	founder.RawFitness = 4.0
	sibling.RawFitness = 2.0

	sp := NewSpecies(1, founder)
	sp.Add(sibling)
	sp.ShareFitness()

	assert.Equal(t, 2.0, founder.SharedFitness)
	assert.Equal(t, 1.0, sibling.SharedFitness)
	assert.Equal(t, 3.0, sp.AverageFitness)
	assert.Equal(t, founder, sp.Champion)
}

func TestUpdateChampionResetsStalenessOnlyOnStrictImprovement(t *testing.T) {
	registry := NewRegistry(3, 1)
	founder, err := NewGenome(1, testOptions(), registry)
	require.NoError(t, err)
	founder.RawFitness = 1.0
	sp := NewSpecies(1, founder)

	sp.ShareFitness()
	assert.Equal(t, 0, sp.Staleness)

	sp.ShareFitness() // same best fitness again: no improvement
	assert.Equal(t, 1, sp.Staleness)

	founder.RawFitness = 2.0
	sp.ShareFitness()
	assert.Equal(t, 0, sp.Staleness)
}

func TestPurgeHalvesMembersButPreservesSingleton(t *testing.T) {
	registry := NewRegistry(3, 1)
	founder, err := NewGenome(1, testOptions(), registry)
	require.NoError(t, err)
	sp := NewSpecies(1, founder)
	sp.Purge()
	assert.Len(t, sp.Members, 1)

	for i := 0; i < 5; i++ {
		clone := founder.Clone(i + 2)
		clone.RawFitness = float64(i)
		sp.Add(clone)
	}
	before := len(sp.Members)
	sp.Purge()
	assert.Less(t, len(sp.Members), before)
	assert.GreaterOrEqual(t, len(sp.Members), 1)
}

func TestIsStaleUsesStalenessLimit(t *testing.T) {
	registry := NewRegistry(3, 1)
	founder, err := NewGenome(1, testOptions(), registry)
	require.NoError(t, err)
	founder.RawFitness = 1.0
	sp := NewSpecies(1, founder)
	for i := 0; i <= SpeciesStalenessLimit+1; i++ {
		sp.ShareFitness()
	}
	assert.True(t, sp.IsStale())
}
