package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"PriceSentinel/internal/calculator"
	"PriceSentinel/internal/chart"
	"PriceSentinel/internal/notifier"

	"github.com/spf13/cobra"
)

func newEstimateCmd(root *rootOptions) *cobra.Command {
	var chartDir string
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate drift and volatility of daily log returns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
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
			logs, err := calculator.LogReturns(series.Closes)
			if err != nil {
				return err
			}
			stats, err := calculator.EstimateReturns(series.Closes)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), notifier.FormatReturnStats(series.Symbol, stats, notifier.Plain))

			if chartDir == "" {
				return nil
			}
			img, err := chart.RenderLogReturnHistogram(series.Symbol, logs, stats, cfg.Chart.Bins)
			if err != nil {
				return fmt.Errorf("render log returns: %w", err)
			}
			return writeImage(chartDir, series.Symbol+"_log_returns.png", img)
		},
	}
	cmd.Flags().StringVar(&chartDir, "chart-dir", "", "write a log-return histogram PNG into this directory")
	return cmd
}

func writeImage(dir, name string, img []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, img, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	log.Printf("[INFO] chart written: %s", p)
	return nil
}
