package genetics

// The mutation, crossover, and speciation probabilities below are fixed
// per spec §6: they are documented constants, not Options fields, so
// that runs are comparable across configurations.
const (
	// WeightMutationProb is the probability that a genome's connection
	// weights are mutated at all in a given mutation pass.
	WeightMutationProb = 0.80
	// WeightPerturbProb is, conditioned on weight mutation firing, the
	// probability that an individual connection's weight is perturbed
	// (vs. replaced outright) by a uniform sample.
	WeightPerturbProb = 0.90
	// WeightPerturbRange bounds the uniform perturbation added to a
	// weight: a sample from [-WeightPerturbRange, WeightPerturbRange].
	WeightPerturbRange = 0.5

	// AddConnectionMutationProb is the probability a genome gains a new
	// connection in a given mutation pass.
	AddConnectionMutationProb = 0.05
	// AddNodeMutationProb is the probability a genome gains a new hidden
	// node (by splitting an existing connection) in a given mutation pass.
	AddNodeMutationProb = 0.03

	// DisabledInheritanceProb is the probability a crossover child
	// inherits a matching gene as disabled, given that gene was disabled
	// in either parent.
	DisabledInheritanceProb = 0.75

	// InterspeciesMateRate is the probability reproduction draws both
	// parents from the whole population rather than from one species.
	InterspeciesMateRate = 0.001
	// CloneAndMutateRate is the probability a new-generation slot is
	// filled by cloning-and-mutating a single genome rather than by
	// crossover.
	CloneAndMutateRate = 0.25

	// ElitismMinSpeciesSize is the minimum species size for its champion
	// to be carried over to the next generation unmutated.
	ElitismMinSpeciesSize = 5

	// SpeciesStalenessLimit is the number of generations without
	// improvement after which a species is dropped.
	SpeciesStalenessLimit = 15
	// PopulationStalenessLimit is the number of generations without a
	// global-best improvement after which stagnation recovery trims the
	// population down to its top two species.
	PopulationStalenessLimit = 20
	// StagnationSurvivorSpecies is how many species survive a stagnation
	// recovery event.
	StagnationSurvivorSpecies = 2

	// CompatExcessCoeff, CompatDisjointCoeff, and CompatWeightCoeff are
	// the c1, c2, c3 coefficients of the compatibility distance formula.
	CompatDisjointCoeff = 1.0
	CompatExcessCoeff   = 1.0
	CompatWeightCoeff   = 0.4
	// CompatThreshold (τ) is the distance below which two genomes are
	// considered the same species.
	CompatThreshold = 3.0
	// CompatLongGenomeOffset is the normalizer offset N = max(|C1|-20, 1).
	CompatLongGenomeOffset = 20
)
