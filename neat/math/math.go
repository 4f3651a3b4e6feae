// Package math defines standard mathematical primitives used by the NEAT
// algorithm: random sampling helpers used throughout mutation, crossover
// and fitness-proportional selection. Every helper here takes its
// *rand.Rand explicitly rather than drawing from the global source, so a
// caller that seeds one Rand gets fully reproducible draws end to end.
package math

import (
	"math/rand"
)

// RandSign returns a random positive or negative integer value (1 or -1)
// to randomize value sign.
func RandSign(r *rand.Rand) int {
	v := r.Int()
	if (v % 2) == 0 {
		return -1
	} else {
		return 1
	}
}

// RandFloatRange returns a uniform sample from the half-open interval [lo, hi).
func RandFloatRange(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// SingleRouletteThrow performs a single throw onto a roulette wheel where
// the wheel's space is unevenly divided. The probability that a segment
// will be selected is given by that segment's value in the probabilities
// array. Returns the segment index, or -1 if every weight is zero (the
// degenerate-selection case, left for the caller to handle by falling
// back to uniform selection).
func SingleRouletteThrow(r *rand.Rand, probabilities []float64) int {
	total := 0.0

	// collect all probabilities
	for _, v := range probabilities {
		total += v
	}
	if total <= 0 {
		return -1
	}

	// throw the ball and collect result
	throwValue := r.Float64() * total

	accumulator := 0.0
	for i, v := range probabilities {
		accumulator += v
		if throwValue <= accumulator {
			return i
		}
	}
	return -1
}
