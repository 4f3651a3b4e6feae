package experiment

import (
	"context"
	"time"

	"github.com/emergent-ai/neatcore/neat"
	"github.com/emergent-ai/neatcore/neat/genetics"
)

// Experiment collects the trials run against one Options configuration.
type Experiment struct {
	Trials Trials
}

// Execute runs opts.NumRuns independent trials, each spawning a fresh
// population and stepping it for up to opts.NumGenerations generations
// via fitnessFn, stopping a trial early the first generation solved
// satisfies. Execute returns early if ctx is cancelled between
// generations, or if a genome's fitness function returns an error.
func (e *Experiment) Execute(ctx context.Context, opts *neat.Options, fitnessFn genetics.FitnessFunc, solved SolvingCriterion, observer TrialRunObserver) error {
	if e.Trials == nil {
		e.Trials = make(Trials, opts.NumRuns)
	}

	var evaluator genetics.FitnessEvaluator
	if opts.EpochExecutorType == neat.EpochExecutorTypeParallel {
		evaluator = genetics.ParallelFitnessEvaluator{}
	} else {
		evaluator = genetics.SequentialFitnessEvaluator{}
	}

	for run := 0; run < opts.NumRuns; run++ {
		trialStart := time.Now()

		neat.InfoLog("spawning new population")
		pop, err := genetics.NewPopulation(opts, evaluator)
		if err != nil {
			return err
		}

		trial := Trial{Id: run}
		if observer != nil {
			observer.TrialRunStarted(&trial)
		}

		for genID := 0; genID < opts.NumGenerations; genID++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			genStart := time.Now()
			if err := pop.Step(fitnessFn); err != nil {
				return err
			}

			generation := Generation{Id: genID, TrialId: run, Executed: time.Now()}
			generation.FillPopulationStatistics(pop)
			if solved != nil {
				generation.Solved = solved(&generation)
			}
			generation.Duration = generation.Executed.Sub(genStart)
			trial.Generations = append(trial.Generations, generation)

			if observer != nil {
				observer.EpochEvaluated(&trial, &generation)
			}

			if generation.Solved {
				if trial.WinnerGeneration == nil {
					g := generation
					trial.WinnerGeneration = &g
				}
				break
			}
		}

		trial.Duration = time.Since(trialStart)
		e.Trials[run] = trial

		if observer != nil {
			observer.TrialRunFinished(&trial)
		}
	}

	return nil
}
