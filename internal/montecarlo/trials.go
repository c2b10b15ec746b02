package montecarlo

import (
	"PriceSentinel/internal/model"
)

// OutcomeFromPath derives the terminal outcome of a path relative to its
// first element.
func OutcomeFromPath(path model.SimulatedPath) (model.TrialOutcome, error) {
	if len(path) == 0 {
		return model.TrialOutcome{}, model.Invalid("path", 0, "must contain the start price")
	}
	start := path[0]
	if !(start > 0) {
		return model.TrialOutcome{}, model.Invalid("path[0]", start, "must be positive")
	}
	return outcome(start, path.Terminal()), nil
}

func outcome(start, terminal float64) model.TrialOutcome {
	change := terminal - start
	return model.TrialOutcome{
		TerminalPrice:  terminal,
		AbsoluteChange: change,
		PercentChange:  100 * change / start,
	}
}

// RunTrials runs numTrials independent GBM paths sequentially, drawing every
// step from the same advancing rng, and returns one outcome per trial in
// invocation order.
func RunTrials(startPrice float64, stats model.ReturnStats, horizon, numTrials int, rng RandomSource) (*model.TrialBatch, error) {
	if err := validateTrialInputs(startPrice, stats, horizon, numTrials); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, model.Invalid("rng", nil, "must not be nil")
	}

	batch := &model.TrialBatch{
		StartPrice: startPrice,
		Horizon:    horizon,
		Outcomes:   make([]model.TrialOutcome, numTrials),
	}
	for t := range numTrials {
		path, err := simulate(startPrice, stats.Drift, stats.Volatility, horizon, rng)
		if err != nil {
			return nil, err
		}
		batch.Outcomes[t] = outcome(startPrice, path.Terminal())
	}
	return batch, nil
}

func validateTrialInputs(startPrice float64, stats model.ReturnStats, horizon, numTrials int) error {
	if numTrials < 1 {
		return model.Invalid("numTrials", numTrials, "must be >= 1")
	}
	return validatePathInputs(startPrice, stats.Drift, stats.Volatility, horizon)
}

// SimulatePaths draws n full paths from rng, for plotting a sample of the
// trial distribution.
func SimulatePaths(startPrice float64, stats model.ReturnStats, horizon, n int, rng RandomSource) ([]model.SimulatedPath, error) {
	if n < 0 {
		return nil, model.Invalid("n", n, "must be >= 0")
	}
	if err := validatePathInputs(startPrice, stats.Drift, stats.Volatility, horizon); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, model.Invalid("rng", nil, "must not be nil")
	}
	paths := make([]model.SimulatedPath, n)
	for i := range paths {
		path, err := simulate(startPrice, stats.Drift, stats.Volatility, horizon, rng)
		if err != nil {
			return nil, err
		}
		paths[i] = path
	}
	return paths, nil
}
