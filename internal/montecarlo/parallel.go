package montecarlo

import (
	"context"
	"math/rand"
	"runtime"
	"sync"

	"PriceSentinel/internal/model"
)

// ParallelOptions configures RunTrialsParallel.
type ParallelOptions struct {
	// Workers is the number of goroutines. <= 0 uses GOMAXPROCS.
	Workers int
	// Seed is the base seed from which every worker stream is split.
	// nil seeds from the clock.
	Seed *int64
}

// RunTrialsParallel runs numTrials GBM trials across worker goroutines. Each
// worker owns its own random stream split from the base seed and fills a
// disjoint contiguous range of the batch, so the result is reproducible for a
// fixed seed and worker count. ctx is checked between trials.
func RunTrialsParallel(ctx context.Context, startPrice float64, stats model.ReturnStats, horizon, numTrials int, opts ParallelOptions) (*model.TrialBatch, error) {
	if err := validateTrialInputs(startPrice, stats, horizon, numTrials); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > numTrials {
		workers = numTrials
	}
	base := resolveSeed(opts.Seed)

	batch := &model.TrialBatch{
		StartPrice: startPrice,
		Horizon:    horizon,
		Outcomes:   make([]model.TrialOutcome, numTrials),
	}

	chunk := (numTrials + workers - 1) / workers
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, numTrials)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(w int, out []model.TrialOutcome) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(SplitSeed(base, w)))
			for i := range out {
				select {
				case <-ctx.Done():
					errs[w] = ctx.Err()
					return
				default:
				}
				path, err := simulate(startPrice, stats.Drift, stats.Volatility, horizon, rng)
				if err != nil {
					errs[w] = err
					return
				}
				out[i] = outcome(startPrice, path.Terminal())
			}
		}(w, batch.Outcomes[lo:hi])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return batch, nil
}
