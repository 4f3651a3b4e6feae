package math

import "math"

// SteepenedSigmoidSlope is the steepness constant of the logistic
// activation function used to compute a node's output from its
// accumulated input. The spec pins this to 4.9, making the curve close
// to a step function while remaining differentiable.
const SteepenedSigmoidSlope = 4.9

// Sigmoid is the logistic activation function: σ(x) = 1 / (1 + exp(-4.9x)).
// It is strictly increasing, σ(0) = 0.5, and σ(x) lies in the open
// interval (0, 1) for every finite x.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-SteepenedSigmoidSlope*x))
}

// ClampWeight restricts a connection weight to the [-1, 1] domain
// mandated for every Connection in the genome's data model.
func ClampWeight(w float64) float64 {
	if w > 1 {
		return 1
	}
	if w < -1 {
		return -1
	}
	return w
}
