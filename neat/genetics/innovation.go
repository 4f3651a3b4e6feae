package genetics

import (
	"math/rand"
	"sync"
	"time"

	"github.com/emergent-ai/neatcore/neat/network"
)

// innovationRecord remembers that an (source, target) edge was assigned
// a given innovation number the first time it was proposed anywhere in
// the run.
type innovationRecord struct {
	source network.NodeID
	target network.NodeID
	number int64
}

// Registry is the explicit, threaded innovation-tracking object: for any
// ordered (source, target) pair ever presented to Obtain, it returns the
// same innovation number for the remainder of the run. It replaces the
// process-wide global the original design used (see spec §9): a
// Population owns exactly one Registry and passes it through every
// genetic operator that might create a new connection or node.
//
// Registry is the sole piece of shared mutable state in the core. Its
// Obtain method is safe for concurrent use, but per spec §5 it must
// never be called concurrently with itself during mutation/reproduction
// — callers parallelize fitness evaluation only, which never touches
// the registry.
// Registry is also where every genetic operator's *rand.Rand comes from:
// per spec §5/§9 a run MUST be reproducible given the same seed, so
// Rng is the single source every stochastic draw in mutation, crossover
// and selection is threaded through, instead of the unseedable global
// math/rand functions.
type Registry struct {
	mu      sync.Mutex
	history []innovationRecord
	counter int64

	Rng *rand.Rand
}

// NewRegistry creates a Registry whose counter starts at sensors+outputs,
// so that node identifiers and connection innovation numbers share an
// initial numeric space without colliding (§4.1's "historical
// convenience"). Its random source is seeded from the current time, so
// two calls produce independent, non-reproducible streams; use
// NewSeededRegistry for a reproducible run.
func NewRegistry(sensors, outputs int) *Registry {
	return NewSeededRegistry(sensors, outputs, time.Now().UnixNano())
}

// NewSeededRegistry creates a Registry exactly like NewRegistry, but with
// its random source seeded deterministically from seed: two registries
// built with the same seed produce identical draw sequences from Rng,
// which is what makes a NEAT run reproducible end to end.
func NewSeededRegistry(sensors, outputs int, seed int64) *Registry {
	return &Registry{
		counter: int64(sensors + outputs),
		Rng:     rand.New(rand.NewSource(seed)),
	}
}

// Obtain returns the innovation number for the (source, target) pair,
// assigning a new one if this is the first time the pair has been seen.
func (r *Registry) Obtain(source, target network.NodeID) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.history {
		if rec.source == source && rec.target == target {
			return rec.number
		}
	}
	r.counter++
	r.history = append(r.history, innovationRecord{source: source, target: target, number: r.counter})
	return r.counter
}

// Size returns the number of distinct innovations recorded so far.
// Exposed for tests and telemetry, not consulted by any invariant.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.history)
}
