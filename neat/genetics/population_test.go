package genetics

import (
	"math"
	"testing"

	"github.com/emergent-ai/neatcore/neat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallPopulationOptions() *neat.Options {
	opts := neat.DefaultOptions()
	opts.Demography = 20
	opts.Sensor = 2
	opts.Output = 1
	opts.Bias = true
	opts.InitState = neat.TopologyAllLinked
	return opts
}

func constantFitness(score float64) FitnessFunc {
	return func(g *Genome) (float64, error) {
		return score, nil
	}
}

func TestNewPopulationHasConfiguredSize(t *testing.T) {
	p, err := NewPopulation(smallPopulationOptions(), nil)
	require.NoError(t, err)
	assert.Len(t, p.Genomes, 20)
}

func TestStepPreservesPopulationSize(t *testing.T) {
	p, err := NewPopulation(smallPopulationOptions(), nil)
	require.NoError(t, err)

	for gen := 0; gen < 5; gen++ {
		err := p.Step(func(g *Genome) (float64, error) {
			out, err := g.Evaluate([]float64{1, 0})
			g.ClearNodes()
			if err != nil {
				return 0, err
			}
			return out[0], nil
		})
		require.NoError(t, err)
		assert.Len(t, p.Genomes, 20)
	}
}

func TestStepConnectionsReferenceOwnNodes(t *testing.T) {
	p, err := NewPopulation(smallPopulationOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, p.Step(constantFitness(1.0)))

	for _, g := range p.Genomes {
		for _, c := range g.Connections {
			assert.NotNil(t, g.NodeByID(c.Source.ID))
			assert.NotNil(t, g.NodeByID(c.Target.ID))
		}
	}
}

func TestStepSensorOutputCountsStable(t *testing.T) {
	p, err := NewPopulation(smallPopulationOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, p.Step(constantFitness(1.0)))

	for _, g := range p.Genomes {
		assert.Len(t, g.Sensors(), 3) // 2 sensors + bias
		assert.Len(t, g.Outputs(), 1)
	}
}

func TestStepPropagatesFitnessFunctionError(t *testing.T) {
	p, err := NewPopulation(smallPopulationOptions(), nil)
	require.NoError(t, err)

	sentinel := assert.AnError
	err = p.Step(func(g *Genome) (float64, error) {
		return 0, sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestEvaluateClearsNodes(t *testing.T) {
	p, err := NewPopulation(smallPopulationOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, p.Evaluate([]float64{1, 0}))

	for _, g := range p.Genomes {
		for _, n := range g.Nodes {
			assert.Equal(t, 0.0, n.InputValue)
		}
	}
}

func TestBestSoFarTracksGlobalBest(t *testing.T) {
	p, err := NewPopulation(smallPopulationOptions(), nil)
	require.NoError(t, err)
	assert.Nil(t, p.BestSoFar())

	require.NoError(t, p.Step(constantFitness(3.0)))
	require.NotNil(t, p.BestSoFar())
	assert.Equal(t, 3.0, p.BestSoFar().RawFitness)
}

func TestInnovationRegistryConsistentAcrossPopulation(t *testing.T) {
	p, err := NewPopulation(smallPopulationOptions(), nil)
	require.NoError(t, err)

	seen := make(map[int64]struct{})
	for _, g := range p.Genomes {
		for _, c := range g.Connections {
			seen[c.InnovationNum] = struct{}{}
		}
	}
	// allLinked genesis connects the same (sensor, output) pairs in every
	// genome, so the whole founding population should share one small
	// set of innovation numbers rather than minting new ones per genome.
	assert.LessOrEqual(t, len(seen), 3)
}

func TestParallelFitnessEvaluatorStepPreservesPopulationSize(t *testing.T) {
	p, err := NewPopulation(smallPopulationOptions(), nil)
	require.NoError(t, err)
	p.evaluator = ParallelFitnessEvaluator{Workers: 4}

	require.NoError(t, p.Step(func(g *Genome) (float64, error) {
		out, err := g.Evaluate([]float64{1, 0})
		g.ClearNodes()
		if err != nil {
			return 0, err
		}
		return math.Abs(out[0]), nil
	}))
	assert.Len(t, p.Genomes, 20)
}

func TestStagnationRecoveryTrimsSpeciesAfterPopulationStalenessLimit(t *testing.T) {
	p, err := NewPopulation(smallPopulationOptions(), nil)
	require.NoError(t, err)

	// Force extra species so there is something to trim.
	for i := 0; i < 5 && i < len(p.Genomes); i++ {
		_, _ = p.Genomes[i].AddNodeMutation(p.Registry)
	}

	for gen := 0; gen <= PopulationStalenessLimit+1; gen++ {
		require.NoError(t, p.Step(constantFitness(1.0)))
	}
	assert.LessOrEqual(t, len(p.Species), StagnationSurvivorSpecies+1)
}

// TestEliteChampionSurvivesSpeciesPurge is a regression test for
// elitism being lost when the champion's own species is dropped by
// purgeStaleSpecies before reproduce runs: the champion must still be
// copied into the next generation because elite is now a snapshot of
// genomes, not a set of species pointers re-checked after the purge.
func TestEliteChampionSurvivesSpeciesPurge(t *testing.T) {
	p, err := NewPopulation(smallPopulationOptions(), nil)
	require.NoError(t, err)

	sp := NewSpecies(1, p.Genomes[0])
	for i := 1; i < ElitismMinSpeciesSize; i++ {
		sp.Add(p.Genomes[i])
	}
	for i, g := range sp.Members {
		g.RawFitness = float64(i + 1)
	}
	sp.ShareFitness()
	champion := sp.Champion
	sp.Staleness = SpeciesStalenessLimit + 1
	p.Species = []*Species{sp}
	p.GlobalBest = nil

	elite := []*Genome{champion}
	p.purgeStaleSpecies()
	require.Empty(t, p.Species, "stale species carrying the champion should be dropped")

	next, err := p.reproduce(elite)
	require.NoError(t, err)
	require.NotEmpty(t, next)
	assert.Len(t, next[0].Nodes, len(champion.Nodes))
	assert.Len(t, next[0].Connections, len(champion.Connections))
}

// TestSeededRunsAreReproducible checks the determinism requirement: two
// populations built from the same Options.Seed, stepped with the same
// fitness function, must produce genomes with identical topology and
// weights generation over generation -- every mutation/crossover/
// selection draw has to come from the same seeded stream.
func TestSeededRunsAreReproducible(t *testing.T) {
	fitness := func(g *Genome) (float64, error) {
		out, err := g.Evaluate([]float64{1, 0})
		g.ClearNodes()
		if err != nil {
			return 0, err
		}
		return out[0], nil
	}

	run := func(seed int64) []*Genome {
		opts := smallPopulationOptions()
		opts.Seed = seed
		p, err := NewPopulation(opts, nil)
		require.NoError(t, err)
		for gen := 0; gen < 3; gen++ {
			require.NoError(t, p.Step(fitness))
		}
		return p.Genomes
	}

	a := run(42)
	b := run(42)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, len(a[i].Connections), len(b[i].Connections))
		assert.Equal(t, len(a[i].Nodes), len(b[i].Nodes))
		for j := range a[i].Connections {
			assert.InDelta(t, a[i].Connections[j].Weight, b[i].Connections[j].Weight, 1e-12)
		}
	}
}
