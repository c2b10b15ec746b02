package montecarlo

import (
	"sort"

	"PriceSentinel/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summarize reduces a batch into profit/loss counts, percentages, means and
// terminal-price percentiles. An outcome with exactly 0% change counts as
// neither profit nor loss.
func Summarize(batch *model.TrialBatch) (model.SummaryReport, error) {
	n := batch.Len()
	if n == 0 {
		return model.SummaryReport{}, model.ErrEmptyBatch
	}

	rep := model.SummaryReport{NumTrials: n}
	changes := make([]float64, n)
	pcts := make([]float64, n)
	for i, o := range batch.Outcomes {
		switch {
		case o.PercentChange > 0:
			rep.NumProfit++
		case o.PercentChange < 0:
			rep.NumLoss++
		default:
			rep.NumFlat++
		}
		changes[i] = o.AbsoluteChange
		pcts[i] = o.PercentChange
	}

	ends := batch.TerminalPrices()
	rep.PctProfit = 100 * float64(rep.NumProfit) / float64(n)
	rep.PctLoss = 100 * float64(rep.NumLoss) / float64(n)
	rep.MeanEnd = stat.Mean(ends, nil)
	rep.MeanChange = stat.Mean(changes, nil)
	rep.MeanPctChange = stat.Mean(pcts, nil)
	rep.MinEnd = floats.Min(ends)
	rep.MaxEnd = floats.Max(ends)
	if n > 1 {
		rep.StdDevEnd = stat.StdDev(ends, nil)
	}

	sort.Float64s(ends)
	rep.P5End = stat.Quantile(0.05, stat.Empirical, ends, nil)
	rep.P50End = stat.Quantile(0.50, stat.Empirical, ends, nil)
	rep.P95End = stat.Quantile(0.95, stat.Empirical, ends, nil)
	return rep, nil
}
