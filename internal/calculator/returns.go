package calculator

import (
	"fmt"
	"math"

	"PriceSentinel/internal/model"

	"gonum.org/v1/gonum/stat"
)

// LogReturns converts prices into per-period log returns ln(1 + r_i), where
// r_i = p_i/p_{i-1} - 1. Requires at least 2 strictly positive, finite prices.
func LogReturns(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, model.Invalid("prices", len(prices), "must contain at least 2 prices")
	}
	for i, p := range prices {
		if !(p > 0) || math.IsInf(p, 0) {
			return nil, model.Invalid(fmt.Sprintf("prices[%d]", i), p, "must be positive and finite")
		}
	}

	logs := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		r := prices[i]/prices[i-1] - 1
		logs[i-1] = math.Log(1 + r)
	}
	return logs, nil
}

// EstimateReturns computes drift (mean log return) and volatility (sample
// standard deviation of log returns) from a price series.
func EstimateReturns(prices []float64) (model.ReturnStats, error) {
	logs, err := LogReturns(prices)
	if err != nil {
		return model.ReturnStats{}, err
	}
	return StatsFromLogReturns(logs)
}

// StatsFromLogReturns computes drift and volatility from an already computed
// log-return series.
func StatsFromLogReturns(logs []float64) (model.ReturnStats, error) {
	if len(logs) == 0 {
		return model.ReturnStats{}, model.Invalid("logReturns", 0, "must contain at least 1 return")
	}
	for i, r := range logs {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return model.ReturnStats{}, model.Invalid(fmt.Sprintf("logReturns[%d]", i), r, "must be finite")
		}
	}

	mean := stat.Mean(logs, nil)
	vol := 0.0
	// Sample std-dev needs n >= 2; a single return has no dispersion estimate.
	if len(logs) > 1 {
		vol = stat.StdDev(logs, nil)
	}
	return model.ReturnStats{
		Drift:        mean,
		Volatility:   vol,
		Observations: len(logs),
	}, nil
}

// EstimateFromSeries is EstimateReturns over the closes of a PriceSeries.
func EstimateFromSeries(series *model.PriceSeries) (model.ReturnStats, error) {
	if series == nil {
		return model.ReturnStats{}, model.Invalid("series", nil, "must not be nil")
	}
	return EstimateReturns(series.Closes)
}
