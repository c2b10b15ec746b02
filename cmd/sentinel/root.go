package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"PriceSentinel/internal/collector"
	"PriceSentinel/internal/config"
	"PriceSentinel/internal/recorder"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	symbol     string
	provider   string
	csvPath    string
	lookback   int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "sentinel",
		Short:         "Monte-Carlo GBM price forecasts from historical closes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", defaultCfg, "path to YAML config")
	pf.StringVarP(&opts.symbol, "symbol", "s", "", "ticker symbol (overrides config)")
	pf.StringVar(&opts.provider, "provider", "", "data provider: yahoo, csv or mock")
	pf.StringVar(&opts.csvPath, "csv", "", "read closes from this CSV file (implies --provider csv)")
	pf.IntVar(&opts.lookback, "lookback", 0, "trading days of history to use")

	cmd.AddCommand(newEstimateCmd(opts), newSimulateCmd(opts), newWatchCmd(opts))
	return cmd
}

// loadConfig loads the config file and applies persistent flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.symbol != "" {
		cfg.DataSource.Symbol = o.symbol
	}
	if o.provider != "" {
		cfg.DataSource.Provider = o.provider
	}
	if o.csvPath != "" {
		cfg.DataSource.Provider = "csv"
	}
	if o.lookback > 0 {
		cfg.DataSource.Lookback = o.lookback
	}
	return cfg, nil
}

// newCollector builds the configured fetcher. The returned close func
// releases the bar cache.
func (o *rootOptions) newCollector(cfg *config.Config) (*collector.Collector, func(), error) {
	closeFn := func() {}
	var fetcher collector.Fetcher

	switch cfg.DataSource.Provider {
	case "mock":
		fetcher = &collector.MockFetcher{Price: 100}
	case "csv":
		f := collector.NewCSVFetcher(cfg.DataSource.CSVDir)
		f.Path = o.csvPath
		fetcher = f
	default:
		var cache recorder.BarCache = recorder.NewNoopCache()
		if cfg.Database.SQLitePath != "" {
			_ = os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755)
			sc, err := recorder.NewSQLiteCache(cfg.Database.SQLitePath)
			if err != nil {
				log.Printf("[WARN] init sqlite bar cache failed, using noop: %v", err)
			} else {
				cache = sc
				closeFn = func() { sc.Close() }
			}
		}
		fetcher = collector.NewCachedFetcher(collector.NewYahooFetcher(cfg.Proxy), cache, cfg.Database.CacheTTL)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	return collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.Lookback), closeFn, nil
}
