// Package chart renders simulation data as PNG images. It only reads the
// data it is given and never feeds back into a simulation.
package chart

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"PriceSentinel/internal/model"

	"github.com/vicanso/go-charts/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultBins is the histogram bin count used when none is given.
const DefaultBins = 30

// Histogram buckets x into bins equal-width bins covering [min, max].
// It returns bin centers and counts.
func Histogram(x []float64, bins int) (centers, counts []float64, err error) {
	if len(x) == 0 {
		return nil, nil, errors.New("no values to bin")
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.01, 0.5)
		lo, hi = lo-pad, hi+pad
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// Last bin is half-open; nudge so the maximum lands inside it.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts = stat.Histogram(nil, dividers, sorted, nil)
	centers = make([]float64, bins)
	for i := range centers {
		centers[i] = (dividers[i] + dividers[i+1]) / 2
	}
	return centers, counts, nil
}

func labels(values []float64, prec int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'f', prec, 64)
	}
	return out
}

// RenderOutcomeHistogram draws the distribution of terminal prices.
func RenderOutcomeHistogram(symbol string, batch *model.TrialBatch, bins int) ([]byte, error) {
	if batch.Len() == 0 {
		return nil, model.ErrEmptyBatch
	}
	centers, counts, err := Histogram(batch.TerminalPrices(), bins)
	if err != nil {
		return nil, err
	}

	painter, err := charts.BarRender([][]float64{counts},
		charts.TitleTextOptionFunc(fmt.Sprintf("%s • terminal price after %d steps", symbol, batch.Horizon),
			fmt.Sprintf("%d trials • start %.2f", batch.Len(), batch.StartPrice)),
		charts.XAxisDataOptionFunc(labels(centers, 2)),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.PNGTypeOption(),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// RenderSamplePaths draws retained sample paths as lines over the horizon.
func RenderSamplePaths(symbol string, paths []model.SimulatedPath) ([]byte, error) {
	if len(paths) == 0 {
		return nil, errors.New("no paths to plot")
	}
	values := make([][]float64, len(paths))
	names := make([]string, len(paths))
	for i, p := range paths {
		values[i] = p
		names[i] = "path " + strconv.Itoa(i+1)
	}
	steps := make([]string, len(paths[0]))
	for i := range steps {
		steps[i] = strconv.Itoa(i)
	}

	painter, err := charts.LineRender(values,
		charts.TitleTextOptionFunc(symbol+" • simulated paths"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: steps, BoundaryGap: charts.FalseFlag(), SplitNumber: 10}),
		charts.LegendLabelsOptionFunc(names),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.PNGTypeOption(),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// RenderLogReturnHistogram draws the density of historical log returns with
// the normal distribution implied by stats overlaid.
func RenderLogReturnHistogram(symbol string, logReturns []float64, stats model.ReturnStats, bins int) ([]byte, error) {
	centers, counts, err := Histogram(logReturns, bins)
	if err != nil {
		return nil, err
	}
	width := 1.0
	if len(centers) > 1 {
		width = centers[1] - centers[0]
	}
	density := make([]float64, len(counts))
	for i, c := range counts {
		density[i] = c / (float64(len(logReturns)) * width)
	}

	seriesList := charts.NewSeriesListDataFromValues([][]float64{density}, charts.ChartTypeBar)
	names := []string{"log returns"}
	if stats.Volatility > 0 {
		normal := distuv.Normal{Mu: stats.Drift, Sigma: stats.Volatility}
		pdf := make([]float64, len(centers))
		for i, x := range centers {
			pdf[i] = normal.Prob(x)
		}
		seriesList = append(seriesList, charts.NewSeriesListDataFromValues([][]float64{pdf}, charts.ChartTypeLine)...)
		names = append(names, "normal fit")
	}

	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(symbol+" • log returns vs normal approximation"),
		charts.XAxisDataOptionFunc(labels(centers, 4)),
		charts.LegendLabelsOptionFunc(names),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.PNGTypeOption(),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
