// Package experiment wires the core engine up to repeatable,
// observable trial runs: it drives a Population through its generations,
// collects per-generation statistics with gonum, and exposes them for
// reporting or NPZ export.
package experiment

import "time"

// EmptyDuration is returned when an average duration cannot be
// estimated (no generations evaluated yet).
const EmptyDuration = time.Duration(-1)

// SolvingCriterion decides whether a generation's best genome counts as
// having solved the experiment's problem. Execute stops a trial early
// the first generation this returns true.
type SolvingCriterion func(best *Generation) bool

// TrialRunObserver is notified about an experiment's trial lifecycle.
// All methods are optional to implement meaningfully; Execute accepts a
// nil observer.
type TrialRunObserver interface {
	// TrialRunStarted is invoked before any generation of a new trial.
	TrialRunStarted(trial *Trial)
	// TrialRunFinished is invoked after a trial's last generation.
	TrialRunFinished(trial *Trial)
	// EpochEvaluated is invoked after each generation is stepped.
	EpochEvaluated(trial *Trial, epoch *Generation)
}
