package experiment

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio/npz"
)

// ExportTrialNPZ writes a trial's per-generation telemetry to an NPZ
// archive at path: one 1-D array per named series (best fitness,
// mean fitness, mean complexity, diversity), indexed by generation.
// This is a telemetry dump only -- it is not a population save format
// and cannot be used to reconstruct a Population.
func ExportTrialNPZ(path string, trial *Trial) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating NPZ output file")
	}
	defer f.Close()

	out := npz.NewWriter(f)

	n := len(trial.Generations)
	best := make(Floats, n)
	meanFitness, meanComplexity := trial.Average()
	diversity := trial.Diversity()
	for i, g := range trial.Generations {
		if g.Best != nil {
			best[i] = g.Best.RawFitness
		}
	}

	series := map[string]Floats{
		"best_fitness":    best,
		"mean_fitness":    meanFitness,
		"mean_complexity": meanComplexity,
		"diversity":       diversity,
	}
	for name, values := range series {
		if err := out.Write(name, []float64(values)); err != nil {
			return errors.Wrapf(err, "writing NPZ series %q", name)
		}
	}
	return out.Close()
}
