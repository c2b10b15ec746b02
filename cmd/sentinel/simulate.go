package main

import (
	"fmt"

	"PriceSentinel/internal/chart"
	"PriceSentinel/internal/forecast"
	"PriceSentinel/internal/notifier"

	"github.com/spf13/cobra"
)

type simulateOptions struct {
	horizon    int
	trials     int
	seed       int64
	workers    int
	samples    int
	startPrice float64
	chartDir   string
}

func newSimulateCmd(root *rootOptions) *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run GBM Monte-Carlo trials from the last close and summarize outcomes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("horizon") {
				cfg.Simulation.Horizon = opts.horizon
			}
			if flags.Changed("trials") {
				cfg.Simulation.NumTrials = opts.trials
			}
			if flags.Changed("seed") {
				cfg.Simulation.Seed = &opts.seed
			}
			if flags.Changed("workers") {
				cfg.Simulation.Workers = opts.workers
			}
			if flags.Changed("samples") {
				cfg.Simulation.SamplePaths = opts.samples
			}
			if opts.chartDir != "" {
				cfg.Chart.OutputDir = opts.chartDir
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}

			col, closeFn, err := root.newCollector(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			series, err := col.Collect(cmd.Context())
			if err != nil {
				return err
			}
			res, err := forecast.Evaluate(cmd.Context(), series, forecast.Params{
				Horizon:     cfg.Simulation.Horizon,
				NumTrials:   cfg.Simulation.NumTrials,
				Seed:        cfg.Simulation.Seed,
				Workers:     cfg.Simulation.Workers,
				SamplePaths: cfg.Simulation.SamplePaths,
				StartPrice:  opts.startPrice,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), notifier.FormatSummaryReport(res, notifier.Plain))

			if cfg.Chart.OutputDir == "" {
				return nil
			}
			return writeCharts(cfg.Chart.OutputDir, cfg.Chart.Bins, res)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.horizon, "horizon", 0, "number of steps (trading days) to simulate")
	f.IntVar(&opts.trials, "trials", 0, "number of independent trials")
	f.Int64Var(&opts.seed, "seed", 0, "random seed for reproducible runs")
	f.IntVar(&opts.workers, "workers", 0, "parallel workers (<= 1 runs sequentially)")
	f.IntVar(&opts.samples, "samples", 0, "sample paths retained for plotting")
	f.Float64Var(&opts.startPrice, "start", 0, "start price (0 uses the last close)")
	f.StringVar(&opts.chartDir, "chart-dir", "", "write PNG charts into this directory")
	return cmd
}

func writeCharts(dir string, bins int, res *forecast.Result) error {
	img, err := chart.RenderOutcomeHistogram(res.Symbol, res.Batch, bins)
	if err != nil {
		return fmt.Errorf("render histogram: %w", err)
	}
	if err := writeImage(dir, res.Symbol+"_terminal.png", img); err != nil {
		return err
	}

	if res.Samples.Len() > 0 {
		paths, err := res.Samples.All()
		if err != nil {
			return fmt.Errorf("load sample paths: %w", err)
		}
		img, err := chart.RenderSamplePaths(res.Symbol, paths)
		if err != nil {
			return fmt.Errorf("render sample paths: %w", err)
		}
		if err := writeImage(dir, res.Symbol+"_paths.png", img); err != nil {
			return err
		}
	}

	img, err = chart.RenderLogReturnHistogram(res.Symbol, res.LogReturns, res.Stats, bins)
	if err != nil {
		return fmt.Errorf("render log returns: %w", err)
	}
	return writeImage(dir, res.Symbol+"_log_returns.png", img)
}
