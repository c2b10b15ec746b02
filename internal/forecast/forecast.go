// Package forecast runs one end-to-end evaluation: estimate returns from a
// price series, simulate trials from the last close and summarize them.
package forecast

import (
	"context"
	"fmt"
	"time"

	"PriceSentinel/internal/calculator"
	"PriceSentinel/internal/model"
	"PriceSentinel/internal/montecarlo"
	"PriceSentinel/internal/pathstore"

	"github.com/google/uuid"
)

// Params configures one evaluation run.
type Params struct {
	Horizon   int
	NumTrials int
	// Seed makes the run reproducible; nil seeds from the clock.
	Seed *int64
	// Workers > 1 runs trials in parallel with split random streams.
	Workers int
	// SamplePaths is the number of full paths retained for plotting.
	// Identical paths are each kept.
	SamplePaths int
	// StartPrice overrides the last close unless it is 0. Negative or NaN
	// values fail validation.
	StartPrice float64
}

// Result is the outcome of one evaluation run. All fields are read-only.
type Result struct {
	RunID       string
	Symbol      string
	StartPrice  float64
	Stats       model.ReturnStats
	LogReturns  []float64
	High52w     float64
	Low52w      float64
	Position52w float64
	Batch       *model.TrialBatch
	Report      model.SummaryReport
	Samples     *pathstore.Archive
	Params      Params
	CreatedAt   time.Time
	Elapsed     time.Duration
}

// Evaluate runs the full pipeline over series.
func Evaluate(ctx context.Context, series *model.PriceSeries, p Params) (*Result, error) {
	started := time.Now()
	if series == nil {
		return nil, model.Invalid("series", nil, "must not be nil")
	}

	logs, err := calculator.LogReturns(series.Closes)
	if err != nil {
		return nil, fmt.Errorf("log returns: %w", err)
	}
	stats, err := calculator.StatsFromLogReturns(logs)
	if err != nil {
		return nil, fmt.Errorf("estimate returns: %w", err)
	}

	start := series.Last()
	if p.StartPrice != 0 {
		start = p.StartPrice
	}

	var seed int64
	if p.Seed != nil {
		seed = *p.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	var batch *model.TrialBatch
	if p.Workers > 1 {
		batch, err = montecarlo.RunTrialsParallel(ctx, start, stats, p.Horizon, p.NumTrials,
			montecarlo.ParallelOptions{Workers: p.Workers, Seed: &seed})
	} else {
		batch, err = montecarlo.RunTrials(start, stats, p.Horizon, p.NumTrials, montecarlo.NewRandomSource(&seed))
	}
	if err != nil {
		return nil, fmt.Errorf("run trials: %w", err)
	}

	report, err := montecarlo.Summarize(batch)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	res := &Result{
		RunID:      uuid.NewString(),
		Symbol:     series.Symbol,
		StartPrice: start,
		Stats:      stats,
		LogReturns: logs,
		Batch:      batch,
		Report:     report,
		Samples:    pathstore.NewArchive(),
		Params:     p,
		CreatedAt:  started,
	}

	if p.SamplePaths > 0 {
		// Sample paths use their own stream so retaining them never shifts the batch.
		sampleSeed := montecarlo.SplitSeed(seed, -1)
		paths, err := montecarlo.SimulatePaths(start, stats, p.Horizon, p.SamplePaths, montecarlo.NewRandomSource(&sampleSeed))
		if err != nil {
			return nil, fmt.Errorf("sample paths: %w", err)
		}
		for _, path := range paths {
			if _, err := res.Samples.Put(path); err != nil {
				return nil, fmt.Errorf("archive sample path: %w", err)
			}
		}
	}

	if h, l, err := calculator.CalculateRange(series.Closes, calculator.TradingDays52w); err == nil {
		res.High52w, res.Low52w = h, l
		if pos, err := calculator.RangePosition(start, h, l); err == nil {
			res.Position52w = pos
		}
	}

	res.Elapsed = time.Since(started)
	return res, nil
}
