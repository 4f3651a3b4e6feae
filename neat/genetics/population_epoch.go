package genetics

import "sync"

// FitnessEvaluator scores every genome in genomes against fn, returning
// a fitness value per genome in the same order. It is the sole stage of
// the generation pipeline the spec permits to run concurrently, since
// fitness evaluation does not touch the innovation registry or mutate
// population/species state.
type FitnessEvaluator interface {
	Evaluate(genomes []*Genome, fn FitnessFunc) ([]float64, error)
}

// SequentialFitnessEvaluator scores genomes one at a time, in order.
// This is the default: correct for any fitness function, including
// ones with shared mutable state the caller has not made goroutine-safe.
type SequentialFitnessEvaluator struct{}

func (SequentialFitnessEvaluator) Evaluate(genomes []*Genome, fn FitnessFunc) ([]float64, error) {
	scores := make([]float64, len(genomes))
	for i, g := range genomes {
		score, err := fn(g)
		if err != nil {
			return nil, err
		}
		scores[i] = score
	}
	return scores, nil
}

// ParallelFitnessEvaluator scores genomes across a fixed-size worker
// pool. Workers share nothing but the genome list and fn; callers must
// supply a fitness function safe for concurrent invocation on distinct
// genomes. The innovation registry is never touched by this stage, so
// running it concurrently with itself across genomes cannot violate the
// single shared-mutable-state rule.
type ParallelFitnessEvaluator struct {
	Workers int
}

func (e ParallelFitnessEvaluator) Evaluate(genomes []*Genome, fn FitnessFunc) ([]float64, error) {
	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(genomes) {
		workers = len(genomes)
	}
	if workers == 0 {
		return nil, nil
	}

	scores := make([]float64, len(genomes))
	jobs := make(chan int)
	errs := make(chan error, len(genomes))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				score, err := fn(genomes[i])
				if err != nil {
					errs <- err
					continue
				}
				scores[i] = score
			}
		}()
	}

	for i := range genomes {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(errs)

	if err, ok := <-errs; ok {
		return nil, err
	}
	return scores, nil
}
